package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/jacai-cli/internal/domain"
	"github.com/bnema/jacai-cli/internal/ports"
)

// Credential names an API key the generation providers can use.
type Credential string

const (
	CredentialOpenAI Credential = "openai"
	CredentialHTTP   Credential = "service"
)

func Credentials() []Credential {
	return []Credential{CredentialOpenAI, CredentialHTTP}
}

func ParseCredential(raw string) (Credential, error) {
	credential := Credential(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Credentials() {
		if credential == known {
			return credential, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownCredential, raw)
}

func (c Credential) secretKey() string {
	return "jacai/" + string(c) + "/api_key"
}

type CredentialService struct {
	store ports.SecretStore
}

func NewCredentialService(store ports.SecretStore) *CredentialService {
	return &CredentialService{store: store}
}

func (s *CredentialService) Set(ctx context.Context, credential Credential, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return domain.ErrEmptySecret
	}

	if err := s.store.Put(ctx, credential.secretKey(), value); err != nil {
		return fmt.Errorf("store %s api key: %w", credential, err)
	}
	return nil
}

func (s *CredentialService) Delete(ctx context.Context, credential Credential) error {
	if err := s.store.Delete(ctx, credential.secretKey()); err != nil {
		return fmt.Errorf("delete %s api key: %w", credential, err)
	}
	return nil
}

// Resolve prefers a configured key and otherwise reads the stored one. A key
// that was never stored resolves to "".
func (s *CredentialService) Resolve(ctx context.Context, credential Credential, configured string) (string, error) {
	if configured = strings.TrimSpace(configured); configured != "" {
		return configured, nil
	}

	value, err := s.store.Get(ctx, credential.secretKey())
	if errors.Is(err, domain.ErrSecretNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s api key: %w", credential, err)
	}

	return strings.TrimSpace(value), nil
}
