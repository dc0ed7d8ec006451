package domain

import (
	"fmt"
	"strings"
)

type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformTwitter   Platform = "twitter"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformFacebook  Platform = "facebook"
	PlatformTikTok    Platform = "tiktok"
)

func Platforms() []Platform {
	return []Platform{PlatformInstagram, PlatformTwitter, PlatformLinkedIn, PlatformFacebook, PlatformTikTok}
}

func (p Platform) Valid() bool {
	switch p {
	case PlatformInstagram, PlatformTwitter, PlatformLinkedIn, PlatformFacebook, PlatformTikTok:
		return true
	default:
		return false
	}
}

func ParsePlatform(raw string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(raw)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedPlatform, raw)
	}
	return p, nil
}

type Style string

const (
	StyleProfessional Style = "professional"
	StyleCasual       Style = "casual"
	StyleCreative     Style = "creative"
	StyleMotivational Style = "motivational"
	StyleHumorous     Style = "humorous"
)

func Styles() []Style {
	return []Style{StyleProfessional, StyleCasual, StyleCreative, StyleMotivational, StyleHumorous}
}

func (s Style) Valid() bool {
	switch s {
	case StyleProfessional, StyleCasual, StyleCreative, StyleMotivational, StyleHumorous:
		return true
	default:
		return false
	}
}

func ParseStyle(raw string) (Style, error) {
	s := Style(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedStyle, raw)
	}
	return s, nil
}

// GenerationRequest is built fresh from user input on every submit.
type GenerationRequest struct {
	Topic    string
	Platform Platform
	Style    Style
}

func (r GenerationRequest) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return ErrEmptyTopic
	}
	if !r.Platform.Valid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedPlatform, r.Platform)
	}
	if !r.Style.Valid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedStyle, r.Style)
	}

	return nil
}
