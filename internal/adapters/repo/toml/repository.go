package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/jacai-cli/internal/domain"
	"github.com/bnema/jacai-cli/internal/ports"
	"github.com/gofrs/flock"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	HistoryPathKey    = "history.path"
	historyFileMode   = 0o600
	historyDirMode    = 0o700
	historyConfigDir  = ".config/jacai"
	historyConfigFile = "history.toml"
	tempFilePattern   = ".history-*.toml.tmp"
	lockFileSuffix    = ".lock"
)

var ErrDuplicateID = errors.New("history id already in use")

type Repository struct {
	historyPath string
	mu          *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.HistoryRepository = (*Repository)(nil)

func DefaultHistoryPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(homeDir, historyConfigDir, historyConfigFile), nil
}

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	historyPath := cfg.GetString(HistoryPathKey)
	if historyPath == "" {
		defaultPath, err := DefaultHistoryPath()
		if err != nil {
			return nil, err
		}
		historyPath = defaultPath
	}

	historyPath, err := normalizeHistoryPath(historyPath)
	if err != nil {
		return nil, err
	}

	return &Repository{historyPath: historyPath, mu: lockForPath(historyPath)}, nil
}

func (r *Repository) Path() string {
	return r.historyPath
}

func (r *Repository) Save(ctx context.Context, entry domain.HistoryEntry) error {
	return r.update(ctx, func(file *fileSchema) error {
		encoded := toSchema(entry)
		for i := range file.Entries {
			if file.Entries[i].ID == encoded.ID {
				file.Entries[i] = encoded
				return nil
			}
		}

		file.Entries = append(file.Entries, encoded)
		return nil
	})
}

// SaveNew stores entry under the ID returned by nextID. nextID sees the
// entries on disk while the file is locked, so concurrent writers never
// pick the same ID.
func (r *Repository) SaveNew(ctx context.Context, entry domain.HistoryEntry, nextID func([]domain.HistoryEntry) domain.HistoryID) (domain.HistoryEntry, error) {
	err := r.update(ctx, func(file *fileSchema) error {
		existing := make([]domain.HistoryEntry, 0, len(file.Entries))
		for _, stored := range file.Entries {
			existing = append(existing, fromSchema(stored))
		}

		entry.ID = nextID(existing)
		for _, stored := range existing {
			if stored.ID == entry.ID {
				return fmt.Errorf("%w: %s", ErrDuplicateID, entry.ID)
			}
		}

		file.Entries = append(file.Entries, toSchema(entry))
		return nil
	})
	if err != nil {
		return domain.HistoryEntry{}, err
	}

	return entry, nil
}

func (r *Repository) update(ctx context.Context, apply func(*fileSchema) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	unlock, err := r.lockFile()
	if err != nil {
		return err
	}
	defer unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	if err := apply(&file); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

// lockFile serializes writers across processes sharing the history file.
func (r *Repository) lockFile() (func(), error) {
	if err := os.MkdirAll(filepath.Dir(r.historyPath), historyDirMode); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	lock := flock.New(r.historyPath + lockFileSuffix)
	if err := lock.Lock(); err != nil {
		return nil, fmt.Errorf("lock history file: %w", err)
	}

	return func() { _ = lock.Unlock() }, nil
}

func (r *Repository) GetByID(ctx context.Context, id domain.HistoryID) (domain.HistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return domain.HistoryEntry{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.HistoryEntry{}, err
	}

	for _, entry := range file.Entries {
		if entry.ID == string(id) {
			return fromSchema(entry), nil
		}
	}

	return domain.HistoryEntry{}, domain.ErrEntryNotFound
}

func (r *Repository) List(ctx context.Context) ([]domain.HistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	entries := make([]domain.HistoryEntry, 0, len(file.Entries))
	for _, entry := range file.Entries {
		entries = append(entries, fromSchema(entry))
	}

	return entries, nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.historyPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			file := fileSchema{}
			file.applyDefaults()
			return file, nil
		}
		return fileSchema{}, fmt.Errorf("read history file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode history file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.historyPath), historyDirMode); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode history file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.historyPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp history file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp history file: %w", err)
	}

	if err := tempFile.Chmod(historyFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp history file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp history file: %w", err)
	}

	if err := os.Rename(tempName, r.historyPath); err != nil {
		return fmt.Errorf("replace history file: %w", err)
	}

	cleanup = false
	return nil
}

func normalizeHistoryPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve history path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func toSchema(entry domain.HistoryEntry) entrySchema {
	return entrySchema{
		ID:        string(entry.ID),
		CreatedAt: formatTime(entry.CreatedAt),
		Request: requestSchema{
			Topic:    entry.Request.Topic,
			Platform: string(entry.Request.Platform),
			Style:    string(entry.Request.Style),
		},
		Post: postSchema{
			Caption:     entry.Post.Caption,
			Hashtags:    entry.Post.Hashtags,
			ImagePrompt: entry.Post.ImagePrompt,
		},
	}
}

func fromSchema(entry entrySchema) domain.HistoryEntry {
	return domain.HistoryEntry{
		ID:        domain.HistoryID(entry.ID),
		CreatedAt: parseTime(entry.CreatedAt),
		Request: domain.GenerationRequest{
			Topic:    entry.Request.Topic,
			Platform: domain.Platform(entry.Request.Platform),
			Style:    domain.Style(entry.Request.Style),
		},
		Post: domain.GeneratedPost{
			Caption:     entry.Post.Caption,
			Hashtags:    entry.Post.Hashtags,
			ImagePrompt: entry.Post.ImagePrompt,
		},
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339)
}
