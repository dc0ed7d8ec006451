// Package osc52 copies text by emitting an OSC 52 escape sequence to the
// terminal. The terminal never acknowledges the sequence, so success cannot be
// observed.
package osc52

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/bnema/jacai-cli/internal/ports"
)

type Mode int

const (
	ModeDefault Mode = iota
	ModeTmux
	ModeScreen
)

type Copier struct {
	out  io.Writer
	mode Mode
}

var _ ports.LegacyCopier = (*Copier)(nil)

func New(out io.Writer, mode Mode) *Copier {
	return &Copier{out: out, mode: mode}
}

// NewFromEnv picks the passthrough mode from the multiplexer environment variables.
func NewFromEnv(out io.Writer) *Copier {
	return New(out, ModeFromEnv(os.Getenv))
}

func ModeFromEnv(getenv func(string) string) Mode {
	switch {
	case getenv("TMUX") != "":
		return ModeTmux
	case getenv("STY") != "":
		return ModeScreen
	default:
		return ModeDefault
	}
}

func (c *Copier) CopySelection(text string) error {
	if c.out == nil {
		return errors.New("osc52: no terminal output")
	}

	seq := osc52.New(text)
	switch c.mode {
	case ModeTmux:
		seq = seq.Tmux()
	case ModeScreen:
		seq = seq.Screen()
	}

	if _, err := seq.WriteTo(c.out); err != nil {
		return fmt.Errorf("osc52: write sequence: %w", err)
	}
	return nil
}
