package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int           `toml:"version"`
	Entries []entrySchema `toml:"entries"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported history schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type entrySchema struct {
	ID        string        `toml:"id"`
	CreatedAt string        `toml:"created_at"`
	Request   requestSchema `toml:"request"`
	Post      postSchema    `toml:"post"`
}

type requestSchema struct {
	Topic    string `toml:"topic"`
	Platform string `toml:"platform"`
	Style    string `toml:"style"`
}

type postSchema struct {
	Caption     string `toml:"caption"`
	Hashtags    string `toml:"hashtags"`
	ImagePrompt string `toml:"image_prompt"`
}
