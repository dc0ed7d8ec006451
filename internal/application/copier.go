package application

import (
	"context"

	"github.com/bnema/jacai-cli/internal/domain"
	"github.com/bnema/jacai-cli/internal/ports"
	"go.uber.org/zap"
)

// Copier copies one field of the current result to the clipboard. The primary
// clipboard is tried once; any failure falls through to the surface-based fallback.
type Copier struct {
	source    ResultSource
	clipboard ports.Clipboard
	surfaces  ports.SurfaceProvider
	legacy    ports.LegacyCopier
	logger    *zap.Logger
}

func NewCopier(source ResultSource, clipboard ports.Clipboard, surfaces ports.SurfaceProvider, legacy ports.LegacyCopier, logger *zap.Logger) *Copier {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Copier{
		source:    source,
		clipboard: clipboard,
		surfaces:  surfaces,
		legacy:    legacy,
		logger:    logger,
	}
}

func (c *Copier) Copy(ctx context.Context, field domain.Field) CopyOutcome {
	if !field.Valid() {
		return CopyOutcome{Kind: CopyRejected, Field: field, Err: domain.ErrUnknownField}
	}

	post, ok := c.lastResult()
	if !ok {
		return CopyOutcome{Kind: CopyNoContent, Field: field, Err: domain.ErrNoContent}
	}
	text := post.Value(field)

	if c.clipboard != nil {
		err := c.clipboard.WriteText(ctx, text)
		if err == nil {
			return CopyOutcome{Kind: CopyCopied, Field: field}
		}
		c.logger.Debug("primary clipboard failed, using fallback", zap.String("field", string(field)), zap.Error(err))
	}

	c.copyViaSurface(text)
	return CopyOutcome{Kind: CopyCopied, Field: field, ViaFallback: true}
}

func (c *Copier) lastResult() (domain.GeneratedPost, bool) {
	if c.source == nil {
		return domain.GeneratedPost{}, false
	}
	return c.source.LastResult()
}

// copyViaSurface never reports failure; the legacy command gives no signal either way.
func (c *Copier) copyViaSurface(text string) {
	if c.surfaces == nil || c.legacy == nil {
		c.logger.Warn("clipboard fallback not configured")
		return
	}

	surface, err := c.surfaces.NewSurface()
	if err != nil {
		c.logger.Warn("create fallback surface", zap.Error(err))
		return
	}
	defer func() {
		if err := surface.Remove(); err != nil {
			c.logger.Warn("remove fallback surface", zap.Error(err))
		}
	}()

	if err := surface.Fill(text); err != nil {
		c.logger.Warn("fill fallback surface", zap.Error(err))
		return
	}

	selection, err := surface.SelectAll()
	if err != nil {
		c.logger.Warn("select fallback surface", zap.Error(err))
		return
	}

	if err := c.legacy.CopySelection(selection); err != nil {
		c.logger.Debug("legacy copy command", zap.Error(err))
	}
}
