package ports

import (
	"context"

	"github.com/bnema/jacai-cli/internal/domain"
)

type HistoryRepository interface {
	GetByID(ctx context.Context, id domain.HistoryID) (domain.HistoryEntry, error)
	List(ctx context.Context) ([]domain.HistoryEntry, error)
	Save(ctx context.Context, entry domain.HistoryEntry) error
	// SaveNew assigns entry the ID chosen by nextID from the stored entries
	// and saves it in one step.
	SaveNew(ctx context.Context, entry domain.HistoryEntry, nextID func([]domain.HistoryEntry) domain.HistoryID) (domain.HistoryEntry, error)
}
