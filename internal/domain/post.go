package domain

import (
	"fmt"
	"strings"
	"time"
)

type GeneratedPost struct {
	Caption     string
	Hashtags    string
	ImagePrompt string
}

type Field string

const (
	FieldCaption     Field = "caption"
	FieldHashtags    Field = "hashtags"
	FieldImagePrompt Field = "image_prompt"
)

func Fields() []Field {
	return []Field{FieldCaption, FieldHashtags, FieldImagePrompt}
}

func (f Field) Valid() bool {
	switch f {
	case FieldCaption, FieldHashtags, FieldImagePrompt:
		return true
	default:
		return false
	}
}

func (f Field) Label() string {
	switch f {
	case FieldCaption:
		return "Caption"
	case FieldHashtags:
		return "Hashtags"
	case FieldImagePrompt:
		return "Image prompt"
	default:
		return string(f)
	}
}

// ParseField accepts the canonical names plus the spellings used by older clients.
func ParseField(raw string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "caption":
		return FieldCaption, nil
	case "hashtags":
		return FieldHashtags, nil
	case "image_prompt", "image-prompt", "imageprompt", "image":
		return FieldImagePrompt, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, raw)
	}
}

func (p GeneratedPost) Value(field Field) string {
	switch field {
	case FieldCaption:
		return p.Caption
	case FieldHashtags:
		return p.Hashtags
	case FieldImagePrompt:
		return p.ImagePrompt
	default:
		return ""
	}
}

type HistoryID string

type HistoryEntry struct {
	ID        HistoryID
	Request   GenerationRequest
	Post      GeneratedPost
	CreatedAt time.Time
}
