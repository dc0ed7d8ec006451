package application

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	tomlrepo "github.com/bnema/jacai-cli/internal/adapters/repo/toml"
	"github.com/bnema/jacai-cli/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryServiceConcurrentRecordsKeepEveryEntry(t *testing.T) {
	t.Parallel()

	historyPath := filepath.Join(t.TempDir(), "history.toml")
	newService := func() *HistoryService {
		cfg := viper.New()
		cfg.Set(tomlrepo.HistoryPathKey, historyPath)
		repo, err := tomlrepo.NewRepository(cfg)
		require.NoError(t, err)
		return NewHistoryService(repo, nil)
	}
	cli, page := newService(), newService()

	const perService = 20
	var wg sync.WaitGroup
	errCh := make(chan error, perService*2)
	record := func(svc *HistoryService) {
		defer wg.Done()
		for i := 0; i < perService; i++ {
			_, err := svc.Record(context.Background(), instagramCasual, domain.GeneratedPost{Caption: "C"})
			errCh <- err
		}
	}

	wg.Add(2)
	go record(cli)
	go record(page)
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	entries, err := cli.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, perService*2)

	ids := map[domain.HistoryID]struct{}{}
	for _, entry := range entries {
		ids[entry.ID] = struct{}{}
	}
	assert.Len(t, ids, perService*2)
}
