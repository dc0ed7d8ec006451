package ports

import (
	"context"

	"github.com/bnema/jacai-cli/internal/domain"
)

// GenerationResponse mirrors the service payload. Post is only meaningful when Success is true.
type GenerationResponse struct {
	Success bool
	Post    *domain.GeneratedPost
	Error   string
}

// Generator calls the generation service once. A non-nil error means the call itself
// could not complete (network, non-2xx status, undecodable body).
type Generator interface {
	Generate(ctx context.Context, request domain.GenerationRequest) (GenerationResponse, error)
}
