package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/bnema/jacai-cli/internal/domain"
	"github.com/bnema/jacai-cli/internal/ports"
)

const (
	DefaultGeneratePath = "/api/generate"
	DefaultHealthPath   = "/api/health"
	maxResponseBytes    = 1 << 20
)

var ErrUnexpectedStatus = errors.New("unexpected response status")

// Client talks to the generation service over JSON/HTTP.
type Client struct {
	BaseURL      string
	GeneratePath string
	HealthPath   string
	APIKey       string
	HTTPClient   *http.Client
}

var _ ports.Generator = (*Client)(nil)

type generateRequest struct {
	Topic    string `json:"topic"`
	Platform string `json:"platform"`
	Style    string `json:"style"`
}

type postPayload struct {
	Caption     string `json:"caption"`
	Hashtags    string `json:"hashtags"`
	ImagePrompt string `json:"image_prompt"`
}

type generateResponse struct {
	Success bool         `json:"success"`
	Post    *postPayload `json:"post,omitempty"`
	Error   string       `json:"error,omitempty"`
}

type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

func (c *Client) Generate(ctx context.Context, request domain.GenerationRequest) (ports.GenerationResponse, error) {
	body, err := json.Marshal(generateRequest{
		Topic:    request.Topic,
		Platform: string(request.Platform),
		Style:    string(request.Style),
	})
	if err != nil {
		return ports.GenerationResponse{}, fmt.Errorf("encode request: %w", err)
	}

	data, err := c.do(ctx, http.MethodPost, pathOrDefault(c.GeneratePath, DefaultGeneratePath), body)
	if err != nil {
		// The service reports its own failures as an error status with a
		// success=false body. Anything else is a transport failure.
		if payload, ok := serviceFailure(err, data); ok {
			return ports.GenerationResponse{Success: false, Error: payload.Error}, nil
		}
		return ports.GenerationResponse{}, err
	}

	var payload generateResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		return ports.GenerationResponse{}, fmt.Errorf("decode response: %w", err)
	}

	response := ports.GenerationResponse{
		Success: payload.Success,
		Error:   payload.Error,
	}
	if payload.Post != nil {
		response.Post = &domain.GeneratedPost{
			Caption:     payload.Post.Caption,
			Hashtags:    payload.Post.Hashtags,
			ImagePrompt: payload.Post.ImagePrompt,
		}
	}

	return response, nil
}

func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	data, err := c.do(ctx, http.MethodGet, pathOrDefault(c.HealthPath, DefaultHealthPath), nil)
	if err != nil {
		return HealthStatus{}, err
	}

	var status HealthStatus
	if err := json.Unmarshal(data, &status); err != nil {
		return HealthStatus{}, fmt.Errorf("decode health response: %w", err)
	}

	return status, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	endpoint, err := buildURL(c.BaseURL, path)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	request, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", "jacai")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if c.APIKey != "" {
		request.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	response, err := client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("perform request: %w", err)
	}
	defer response.Body.Close()

	data, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return data, fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, response.StatusCode, strings.TrimSpace(string(data)))
	}

	return data, nil
}

func serviceFailure(err error, data []byte) (generateResponse, bool) {
	if !errors.Is(err, ErrUnexpectedStatus) || len(data) == 0 {
		return generateResponse{}, false
	}

	var payload struct {
		Success *bool  `json:"success"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(data, &payload) != nil || payload.Success == nil || *payload.Success {
		return generateResponse{}, false
	}

	return generateResponse{Success: false, Error: payload.Error}, true
}

func buildURL(baseURL, path string) (string, error) {
	if strings.TrimSpace(baseURL) == "" {
		return "", errors.New("generation service url is empty")
	}

	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("parse generation service url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("generation service url %q must be absolute", baseURL)
	}

	return base.String() + "/" + strings.TrimLeft(path, "/"), nil
}

func pathOrDefault(path, fallback string) string {
	if strings.TrimSpace(path) == "" {
		return fallback
	}
	return path
}
