// Package system writes to the desktop clipboard through the platform's
// clipboard utilities (pbcopy, xclip, xsel, wl-copy, Windows API).
package system

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/bnema/jacai-cli/internal/ports"
)

var ErrUnavailable = errors.New("system clipboard unavailable")

type Clipboard struct {
	write       func(string) error
	unsupported func() bool
}

var _ ports.Clipboard = (*Clipboard)(nil)

func New() *Clipboard {
	return &Clipboard{
		write:       clipboard.WriteAll,
		unsupported: func() bool { return clipboard.Unsupported },
	}
}

// WriteText checks ctx only before starting. A write that has started runs to
// completion so its result decides whether a fallback copy is needed.
func (c *Clipboard) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.unsupported != nil && c.unsupported() {
		return ErrUnavailable
	}

	if err := c.write(text); err != nil {
		return fmt.Errorf("write system clipboard: %w", err)
	}
	return nil
}
