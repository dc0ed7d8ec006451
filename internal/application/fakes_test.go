package application

import (
	"context"
	"errors"
	"sync"

	"github.com/bnema/jacai-cli/internal/domain"
	"github.com/bnema/jacai-cli/internal/ports"
	"github.com/stretchr/testify/mock"
)

type stubGenerator struct {
	mu       sync.Mutex
	response ports.GenerationResponse
	err      error
	hook     func(ctx context.Context, request domain.GenerationRequest)
	requests []domain.GenerationRequest
}

func (g *stubGenerator) Generate(ctx context.Context, request domain.GenerationRequest) (ports.GenerationResponse, error) {
	g.mu.Lock()
	g.requests = append(g.requests, request)
	hook := g.hook
	g.mu.Unlock()

	if hook != nil {
		hook(ctx, request)
	}

	return g.response, g.err
}

func (g *stubGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.requests)
}

func successResponse(post domain.GeneratedPost) ports.GenerationResponse {
	return ports.GenerationResponse{Success: true, Post: &post}
}

type mockClipboard struct {
	mock.Mock
}

func (m *mockClipboard) WriteText(ctx context.Context, text string) error {
	args := m.Called(ctx, text)
	return args.Error(0)
}

type fakeSurfaces struct {
	created   int
	live      int
	createErr error
	failFill  bool
}

func (f *fakeSurfaces) NewSurface() (ports.Surface, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created++
	f.live++
	return &fakeSurface{owner: f}, nil
}

type fakeSurface struct {
	owner *fakeSurfaces
	text  string
}

func (s *fakeSurface) Fill(text string) error {
	if s.owner.failFill {
		return errors.New("surface is read-only")
	}
	s.text = text
	return nil
}

func (s *fakeSurface) SelectAll() (string, error) {
	return s.text, nil
}

func (s *fakeSurface) Remove() error {
	s.owner.live--
	return nil
}

type recordingLegacyCopier struct {
	copied []string
	err    error
}

func (r *recordingLegacyCopier) CopySelection(text string) error {
	r.copied = append(r.copied, text)
	return r.err
}

type inMemoryHistoryRepo struct {
	entries map[domain.HistoryID]domain.HistoryEntry
	listErr error
}

func (r *inMemoryHistoryRepo) GetByID(_ context.Context, id domain.HistoryID) (domain.HistoryEntry, error) {
	entry, ok := r.entries[id]
	if !ok {
		return domain.HistoryEntry{}, domain.ErrEntryNotFound
	}
	return entry, nil
}

func (r *inMemoryHistoryRepo) List(_ context.Context) ([]domain.HistoryEntry, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	entries := make([]domain.HistoryEntry, 0, len(r.entries))
	for _, entry := range r.entries {
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *inMemoryHistoryRepo) SaveNew(ctx context.Context, entry domain.HistoryEntry, nextID func([]domain.HistoryEntry) domain.HistoryID) (domain.HistoryEntry, error) {
	existing, err := r.List(ctx)
	if err != nil {
		return domain.HistoryEntry{}, err
	}
	entry.ID = nextID(existing)
	return entry, r.Save(ctx, entry)
}

func (r *inMemoryHistoryRepo) Save(_ context.Context, entry domain.HistoryEntry) error {
	if r.entries == nil {
		r.entries = map[domain.HistoryID]domain.HistoryEntry{}
	}
	r.entries[entry.ID] = entry
	return nil
}
