package template

import (
	"context"
	"testing"

	"github.com/bnema/jacai-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCoversEveryPlatform(t *testing.T) {
	t.Parallel()

	for _, platform := range domain.Platforms() {
		response, err := Generator{}.Generate(context.Background(), domain.GenerationRequest{
			Topic:    "Cold Brew",
			Platform: platform,
			Style:    domain.StyleProfessional,
		})
		require.NoError(t, err, platform)
		require.True(t, response.Success, platform)
		require.NotNil(t, response.Post, platform)
		assert.Contains(t, response.Post.Caption, "Cold Brew", platform)
		assert.Contains(t, response.Post.Hashtags, "#coldbrew", platform)
		assert.Contains(t, response.Post.ImagePrompt, string(platform), platform)
	}
}

func TestGenerateAppliesStyleModifiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		style    domain.Style
		platform domain.Platform
		contains string
	}{
		{style: domain.StyleCasual, platform: domain.PlatformLinkedIn, contains: "Casual thoughts on coffee"},
		{style: domain.StyleCreative, platform: domain.PlatformTwitter, contains: "🎨 Quick thoughts"},
		{style: domain.StyleMotivational, platform: domain.PlatformFacebook, contains: "You've got this!"},
	}

	for _, tt := range tests {
		t.Run(string(tt.style), func(t *testing.T) {
			response, err := Generator{}.Generate(context.Background(), domain.GenerationRequest{
				Topic:    "coffee",
				Platform: tt.platform,
				Style:    tt.style,
			})
			require.NoError(t, err)
			assert.Contains(t, response.Post.Caption, tt.contains)
		})
	}
}

func TestGenerateUnknownPlatformIsServiceFailure(t *testing.T) {
	t.Parallel()

	response, err := Generator{}.Generate(context.Background(), domain.GenerationRequest{Topic: "coffee", Platform: "myspace", Style: domain.StyleCasual})
	require.NoError(t, err)
	assert.False(t, response.Success)
	assert.Contains(t, response.Error, "myspace")
}
