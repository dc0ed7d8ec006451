package ports

import "context"

// SecretStore keeps credentials outside the config file. Get wraps
// domain.ErrSecretNotFound when nothing is stored under key.
type SecretStore interface {
	Put(ctx context.Context, key string, value string) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}
