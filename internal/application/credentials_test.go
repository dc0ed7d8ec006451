package application

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bnema/jacai-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inMemorySecretStore struct {
	values map[string]string
	getErr error
}

func newInMemorySecretStore() *inMemorySecretStore {
	return &inMemorySecretStore{values: map[string]string{}}
}

func (s *inMemorySecretStore) Put(_ context.Context, key string, value string) error {
	s.values[key] = value
	return nil
}

func (s *inMemorySecretStore) Get(_ context.Context, key string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	value, ok := s.values[key]
	if !ok {
		return "", fmt.Errorf("memory secret %q: %w", key, domain.ErrSecretNotFound)
	}
	return value, nil
}

func (s *inMemorySecretStore) Delete(_ context.Context, key string) error {
	delete(s.values, key)
	return nil
}

func TestParseCredential(t *testing.T) {
	t.Parallel()

	credential, err := ParseCredential(" OpenAI ")
	require.NoError(t, err)
	assert.Equal(t, CredentialOpenAI, credential)

	_, err = ParseCredential("github")
	require.ErrorIs(t, err, domain.ErrUnknownCredential)
}

func TestCredentialServiceSetResolveDelete(t *testing.T) {
	t.Parallel()

	store := newInMemorySecretStore()
	svc := NewCredentialService(store)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, CredentialOpenAI, "  sk-stored\n"))
	assert.Equal(t, "sk-stored", store.values["jacai/openai/api_key"])

	value, err := svc.Resolve(ctx, CredentialOpenAI, "")
	require.NoError(t, err)
	assert.Equal(t, "sk-stored", value)

	value, err = svc.Resolve(ctx, CredentialOpenAI, "sk-configured")
	require.NoError(t, err)
	assert.Equal(t, "sk-configured", value)

	require.NoError(t, svc.Delete(ctx, CredentialOpenAI))
	value, err = svc.Resolve(ctx, CredentialOpenAI, "")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestCredentialServiceRejectsEmptySecret(t *testing.T) {
	t.Parallel()

	store := newInMemorySecretStore()
	err := NewCredentialService(store).Set(context.Background(), CredentialHTTP, "   ")
	require.ErrorIs(t, err, domain.ErrEmptySecret)
	assert.Empty(t, store.values)
}

func TestCredentialServiceResolveSurfacesBackendErrors(t *testing.T) {
	t.Parallel()

	store := newInMemorySecretStore()
	store.getErr = errors.New("gpg: decryption failed")

	_, err := NewCredentialService(store).Resolve(context.Background(), CredentialHTTP, "")
	require.Error(t, err)
	assert.ErrorContains(t, err, "read service api key")
}
