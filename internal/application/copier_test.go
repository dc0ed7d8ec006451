package application

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/jacai-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sessionWithResult(t *testing.T, post domain.GeneratedPost) *Session {
	t.Helper()

	session := NewSession()
	controller := NewController(session, &stubGenerator{response: successResponse(post)}, nil)
	require.True(t, controller.Submit(context.Background(), instagramCasual).Succeeded())
	return session
}

func TestCopyUsesPrimaryClipboard(t *testing.T) {
	t.Parallel()

	session := sessionWithResult(t, domain.GeneratedPost{Caption: "C", Hashtags: "#h", ImagePrompt: "P"})
	clipboard := &mockClipboard{}
	clipboard.On("WriteText", mock.Anything, "#h").Return(nil).Once()
	surfaces := &fakeSurfaces{}
	legacy := &recordingLegacyCopier{}

	outcome := NewCopier(session, clipboard, surfaces, legacy, nil).Copy(context.Background(), domain.FieldHashtags)

	assert.Equal(t, CopyOutcome{Kind: CopyCopied, Field: domain.FieldHashtags}, outcome)
	assert.Zero(t, surfaces.created)
	assert.Empty(t, legacy.copied)
	clipboard.AssertExpectations(t)
}

func TestCopyFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	session := sessionWithResult(t, domain.GeneratedPost{Caption: "C", Hashtags: "#h", ImagePrompt: "P"})
	clipboard := &mockClipboard{}
	clipboard.On("WriteText", mock.Anything, "C").Return(errors.New("permission denied")).Once()
	surfaces := &fakeSurfaces{}
	legacy := &recordingLegacyCopier{}

	outcome := NewCopier(session, clipboard, surfaces, legacy, nil).Copy(context.Background(), domain.FieldCaption)

	assert.Equal(t, CopyOutcome{Kind: CopyCopied, Field: domain.FieldCaption, ViaFallback: true}, outcome)
	assert.Equal(t, []string{"C"}, legacy.copied)
	assert.Equal(t, 1, surfaces.created)
	assert.Zero(t, surfaces.live)
	clipboard.AssertNumberOfCalls(t, "WriteText", 1)
}

func TestCopyWithoutPrimaryClipboardUsesFallback(t *testing.T) {
	t.Parallel()

	session := sessionWithResult(t, domain.GeneratedPost{ImagePrompt: "P"})
	surfaces := &fakeSurfaces{}
	legacy := &recordingLegacyCopier{}

	outcome := NewCopier(session, nil, surfaces, legacy, nil).Copy(context.Background(), domain.FieldImagePrompt)

	assert.True(t, outcome.ViaFallback)
	assert.Equal(t, CopyCopied, outcome.Kind)
	assert.Equal(t, []string{"P"}, legacy.copied)
	assert.Zero(t, surfaces.live)
}

func TestCopyFallbackReportsSuccessEvenWhenLegacyCommandFails(t *testing.T) {
	t.Parallel()

	session := sessionWithResult(t, domain.GeneratedPost{Caption: "C"})
	clipboard := &mockClipboard{}
	clipboard.On("WriteText", mock.Anything, mock.Anything).Return(errors.New("no display"))
	surfaces := &fakeSurfaces{}
	legacy := &recordingLegacyCopier{err: errors.New("write /dev/tty: broken pipe")}

	outcome := NewCopier(session, clipboard, surfaces, legacy, nil).Copy(context.Background(), domain.FieldCaption)

	assert.Equal(t, CopyOutcome{Kind: CopyCopied, Field: domain.FieldCaption, ViaFallback: true}, outcome)
	assert.Zero(t, surfaces.live)
}

func TestCopyFallbackRemovesSurfaceWhenFillFails(t *testing.T) {
	t.Parallel()

	session := sessionWithResult(t, domain.GeneratedPost{Caption: "C"})
	surfaces := &fakeSurfaces{failFill: true}
	legacy := &recordingLegacyCopier{}

	outcome := NewCopier(session, nil, surfaces, legacy, nil).Copy(context.Background(), domain.FieldCaption)

	assert.True(t, outcome.ViaFallback)
	assert.Equal(t, 1, surfaces.created)
	assert.Zero(t, surfaces.live)
	assert.Empty(t, legacy.copied)
}

func TestCopyWithoutResultReturnsNoContent(t *testing.T) {
	t.Parallel()

	clipboard := &mockClipboard{}
	surfaces := &fakeSurfaces{}

	outcome := NewCopier(NewSession(), clipboard, surfaces, &recordingLegacyCopier{}, nil).Copy(context.Background(), domain.FieldHashtags)

	assert.Equal(t, CopyNoContent, outcome.Kind)
	assert.Equal(t, domain.FieldHashtags, outcome.Field)
	require.ErrorIs(t, outcome.Err, domain.ErrNoContent)
	clipboard.AssertNotCalled(t, "WriteText", mock.Anything, mock.Anything)
	assert.Zero(t, surfaces.created)
}

func TestCopyRejectsUnknownField(t *testing.T) {
	t.Parallel()

	session := sessionWithResult(t, domain.GeneratedPost{Caption: "C"})

	outcome := NewCopier(session, nil, &fakeSurfaces{}, &recordingLegacyCopier{}, nil).Copy(context.Background(), domain.Field("title"))

	assert.Equal(t, CopyRejected, outcome.Kind)
	require.ErrorIs(t, outcome.Err, domain.ErrUnknownField)
}

func TestCopyFromStaticResult(t *testing.T) {
	t.Parallel()

	clipboard := &mockClipboard{}
	clipboard.On("WriteText", mock.Anything, "stored caption").Return(nil).Once()

	source := StaticResult(domain.GeneratedPost{Caption: "stored caption"})
	outcome := NewCopier(source, clipboard, nil, nil, nil).Copy(context.Background(), domain.FieldCaption)

	assert.Equal(t, CopyOutcome{Kind: CopyCopied, Field: domain.FieldCaption}, outcome)
	clipboard.AssertExpectations(t)
}

func TestCopyAfterResetReturnsNoContent(t *testing.T) {
	t.Parallel()

	session := NewSession()
	controller := NewController(session, &stubGenerator{response: successResponse(domain.GeneratedPost{Caption: "C"})}, nil)
	require.True(t, controller.Submit(context.Background(), instagramCasual).Succeeded())
	require.NoError(t, controller.Reset())

	outcome := NewCopier(session, nil, &fakeSurfaces{}, &recordingLegacyCopier{}, nil).Copy(context.Background(), domain.FieldCaption)

	assert.Equal(t, CopyNoContent, outcome.Kind)
}
