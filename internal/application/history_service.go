package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/bnema/jacai-cli/internal/domain"
	"github.com/bnema/jacai-cli/internal/ports"
)

type HistoryService struct {
	repo  ports.HistoryRepository
	clock ports.Clock
}

func NewHistoryService(repo ports.HistoryRepository, clock ports.Clock) *HistoryService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &HistoryService{repo: repo, clock: clock}
}

func (s *HistoryService) Record(ctx context.Context, request domain.GenerationRequest, post domain.GeneratedPost) (domain.HistoryEntry, error) {
	entry, err := s.repo.SaveNew(ctx, domain.HistoryEntry{
		Request:   request,
		Post:      post,
		CreatedAt: s.clock.Now().UTC(),
	}, nextHistoryID)
	if err != nil {
		return domain.HistoryEntry{}, fmt.Errorf("save history entry: %w", err)
	}

	return entry, nil
}

func (s *HistoryService) Get(ctx context.Context, id domain.HistoryID) (domain.HistoryEntry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.HistoryEntry{}, fmt.Errorf("get history entry %s: %w", id, err)
	}

	return entry, nil
}

// List returns entries newest first.
func (s *HistoryService) List(ctx context.Context) ([]domain.HistoryEntry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		}
		return historyOrdinal(entries[i].ID) > historyOrdinal(entries[j].ID)
	})

	return entries, nil
}

func (s *HistoryService) Latest(ctx context.Context) (domain.HistoryEntry, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return domain.HistoryEntry{}, err
	}
	if len(entries) == 0 {
		return domain.HistoryEntry{}, domain.ErrEntryNotFound
	}

	return entries[0], nil
}

func nextHistoryID(entries []domain.HistoryEntry) domain.HistoryID {
	used := make(map[int]struct{}, len(entries))
	for _, entry := range entries {
		n := historyOrdinal(entry.ID)
		if n <= 0 {
			continue
		}
		used[n] = struct{}{}
	}

	for i := 1; ; i++ {
		if _, ok := used[i]; !ok {
			return domain.HistoryID(strconv.Itoa(i))
		}
	}
}

func historyOrdinal(id domain.HistoryID) int {
	n, err := strconv.Atoi(string(id))
	if err != nil {
		return 0
	}
	return n
}

// IsNotFound reports whether err means the requested history entry does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrEntryNotFound)
}
