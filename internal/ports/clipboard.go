package ports

import "context"

type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// Surface is a transient, invisible editable area used by the fallback copy path.
type Surface interface {
	Fill(text string) error
	SelectAll() (string, error)
	Remove() error
}

type SurfaceProvider interface {
	NewSurface() (Surface, error)
}

// LegacyCopier issues the environment's legacy copy command for a selection.
// Implementations cannot tell whether the copy landed.
type LegacyCopier interface {
	CopySelection(text string) error
}
