// Package scratch provides transient file-backed surfaces for the fallback copy path.
package scratch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/bnema/jacai-cli/internal/ports"
)

const (
	surfaceFileMode = 0o600
	surfacePattern  = ".jacai-copy-*.txt"
)

type Provider struct {
	dir string
}

var _ ports.SurfaceProvider = (*Provider)(nil)

// NewProvider creates surfaces under dir, or the OS temp dir when dir is empty.
func NewProvider(dir string) *Provider {
	return &Provider{dir: dir}
}

func (p *Provider) NewSurface() (ports.Surface, error) {
	file, err := os.CreateTemp(p.dir, surfacePattern)
	if err != nil {
		return nil, fmt.Errorf("create scratch surface: %w", err)
	}

	if err := file.Chmod(surfaceFileMode); err != nil {
		_ = file.Close()
		_ = os.Remove(file.Name())
		return nil, fmt.Errorf("chmod scratch surface: %w", err)
	}

	return &Surface{file: file}, nil
}

type Surface struct {
	mu      sync.Mutex
	file    *os.File
	removed bool
}

var _ ports.Surface = (*Surface)(nil)

func (s *Surface) Fill(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.removed {
		return os.ErrClosed
	}
	if err := s.file.Truncate(0); err != nil {
		return fmt.Errorf("truncate scratch surface: %w", err)
	}
	if _, err := s.file.WriteAt([]byte(text), 0); err != nil {
		return fmt.Errorf("write scratch surface: %w", err)
	}
	return nil
}

func (s *Surface) SelectAll() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.removed {
		return "", os.ErrClosed
	}
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind scratch surface: %w", err)
	}
	data, err := io.ReadAll(s.file)
	if err != nil {
		return "", fmt.Errorf("read scratch surface: %w", err)
	}
	return string(data), nil
}

// Remove closes and deletes the backing file. Calling it twice is a no-op.
func (s *Surface) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.removed {
		return nil
	}
	s.removed = true

	closeErr := s.file.Close()
	removeErr := os.Remove(s.file.Name())
	if errors.Is(removeErr, os.ErrNotExist) {
		removeErr = nil
	}
	if err := errors.Join(closeErr, removeErr); err != nil {
		return fmt.Errorf("remove scratch surface: %w", err)
	}
	return nil
}
