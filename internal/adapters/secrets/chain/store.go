// Package chain combines a primary and a fallback secret store.
package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/bnema/jacai-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/jacai-cli/internal/adapters/secrets/pass"
	"github.com/bnema/jacai-cli/internal/ports"
)

const (
	BackendAuto = "auto"
	BackendPass = "pass"
	BackendFile = "file"
)

var (
	ErrUnknownBackend   = errors.New("unknown secret backend")
	errNilPrimaryStore  = errors.New("primary secret store is nil")
	errNilFallbackStore = errors.New("fallback secret store is nil")
)

// Store tries the primary backend first and falls back on any failure other
// than cancellation.
type Store struct {
	primary  ports.SecretStore
	fallback ports.SecretStore
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(primary ports.SecretStore, fallback ports.SecretStore) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	return &Store{primary: primary, fallback: fallback}, nil
}

// ForBackend builds the store named by the secrets.backend setting. fileRoot
// is where the file backend keeps its entries.
func ForBackend(backend string, fileRoot string) (ports.SecretStore, error) {
	switch backend {
	case BackendAuto, "":
		return NewStore(passstore.NewStore(), filestore.NewStore(fileRoot))
	case BackendPass:
		return passstore.NewStore(), nil
	case BackendFile:
		return filestore.NewStore(fileRoot), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownBackend, backend)
	}
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	err := s.primary.Put(ctx, key, value)
	if err == nil || skipFallback(err) {
		return err
	}

	if fallbackErr := s.fallback.Put(ctx, key, value); fallbackErr != nil {
		return fmt.Errorf("primary secret backend: %w; fallback secret backend: %w", err, fallbackErr)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.primary.Get(ctx, key)
	if err == nil || skipFallback(err) {
		return value, err
	}

	value, fallbackErr := s.fallback.Get(ctx, key)
	if fallbackErr != nil {
		return "", fmt.Errorf("primary secret backend: %w; fallback secret backend: %w", err, fallbackErr)
	}
	return value, nil
}

// Delete removes key from both backends so a stale copy cannot resurface.
func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.primary.Delete(ctx, key)
	if skipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Delete(ctx, key)
	if err != nil && fallbackErr != nil {
		return fmt.Errorf("primary secret backend: %w; fallback secret backend: %w", err, fallbackErr)
	}
	return nil
}

func skipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
