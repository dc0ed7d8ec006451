package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/bnema/jacai-cli/internal/domain"
	"github.com/bnema/jacai-cli/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var instagramCasual = domain.GenerationRequest{
	Topic:    "coffee",
	Platform: domain.PlatformInstagram,
	Style:    domain.StyleCasual,
}

func TestNewSessionStartsReady(t *testing.T) {
	t.Parallel()

	state := NewSession().State()
	assert.Equal(t, State{StatusMessage: "Ready to generate"}, state)
}

func TestSubmitSuccessStoresPostAndStatus(t *testing.T) {
	t.Parallel()

	generator := &stubGenerator{response: successResponse(domain.GeneratedPost{Caption: "C", Hashtags: "#h", ImagePrompt: "P"})}
	controller := NewController(NewSession(), generator, nil)

	outcome := controller.Submit(context.Background(), instagramCasual)

	require.Equal(t, OutcomeSuccess, outcome.Kind)
	assert.Equal(t, domain.GeneratedPost{Caption: "C", Hashtags: "#h", ImagePrompt: "P"}, outcome.Post)

	state := controller.State()
	require.NotNil(t, state.LastResult)
	assert.Equal(t, domain.GeneratedPost{Caption: "C", Hashtags: "#h", ImagePrompt: "P"}, *state.LastResult)
	assert.Equal(t, "Generated for instagram • casual style", state.StatusMessage)
	assert.False(t, state.RequestInFlight)
	assert.Equal(t, []domain.GenerationRequest{instagramCasual}, generator.requests)
}

func TestSubmitServiceFailureKeepsPreviousResult(t *testing.T) {
	t.Parallel()

	previous := domain.GeneratedPost{Caption: "old", Hashtags: "#old", ImagePrompt: "old prompt"}
	generator := &stubGenerator{response: successResponse(previous)}
	controller := NewController(NewSession(), generator, nil)
	require.True(t, controller.Submit(context.Background(), instagramCasual).Succeeded())

	generator.response = ports.GenerationResponse{Success: false, Error: "bad topic"}
	outcome := controller.Submit(context.Background(), instagramCasual)

	require.Equal(t, OutcomeFailure, outcome.Kind)
	assert.Equal(t, "bad topic", outcome.Reason)
	assert.NoError(t, outcome.Err)

	state := controller.State()
	require.NotNil(t, state.LastResult)
	assert.Equal(t, previous, *state.LastResult)
	assert.Equal(t, "Generation failed", state.StatusMessage)
	assert.False(t, state.RequestInFlight)
}

func TestSubmitServiceFailureWithoutErrorUsesDefaultReason(t *testing.T) {
	t.Parallel()

	generator := &stubGenerator{response: ports.GenerationResponse{Success: false}}
	controller := NewController(NewSession(), generator, nil)

	outcome := controller.Submit(context.Background(), instagramCasual)

	require.Equal(t, OutcomeFailure, outcome.Kind)
	assert.Equal(t, "Failed to generate content", outcome.Reason)
	assert.Nil(t, controller.State().LastResult)
}

func TestSubmitTransportFailure(t *testing.T) {
	t.Parallel()

	networkErr := errors.New("dial tcp: connection refused")
	generator := &stubGenerator{err: networkErr}
	controller := NewController(NewSession(), generator, nil)

	outcome := controller.Submit(context.Background(), instagramCasual)

	require.Equal(t, OutcomeFailure, outcome.Kind)
	assert.Equal(t, "Network error. Please try again.", outcome.Reason)
	require.ErrorIs(t, outcome.Err, networkErr)

	state := controller.State()
	assert.Equal(t, "Connection error", state.StatusMessage)
	assert.Nil(t, state.LastResult)
	assert.False(t, state.RequestInFlight)
}

func TestSubmitSuccessWithoutPostIsTransportFailure(t *testing.T) {
	t.Parallel()

	generator := &stubGenerator{response: ports.GenerationResponse{Success: true}}
	controller := NewController(NewSession(), generator, nil)

	outcome := controller.Submit(context.Background(), instagramCasual)

	require.Equal(t, OutcomeFailure, outcome.Kind)
	assert.Equal(t, NetworkFailureReason, outcome.Reason)
	assert.Equal(t, StatusConnection, controller.State().StatusMessage)
	assert.Nil(t, controller.State().LastResult)
}

func TestSubmitRejectsMalformedRequestsWithoutNetworkCall(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		request domain.GenerationRequest
		wantErr error
	}{
		{name: "blank topic", request: domain.GenerationRequest{Topic: " \t", Platform: domain.PlatformTwitter, Style: domain.StyleCasual}, wantErr: domain.ErrEmptyTopic},
		{name: "unknown platform", request: domain.GenerationRequest{Topic: "coffee", Platform: "friendster", Style: domain.StyleCasual}, wantErr: domain.ErrUnsupportedPlatform},
		{name: "unknown style", request: domain.GenerationRequest{Topic: "coffee", Platform: domain.PlatformTwitter, Style: "shouty"}, wantErr: domain.ErrUnsupportedStyle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generator := &stubGenerator{response: successResponse(domain.GeneratedPost{Caption: "C"})}
			controller := NewController(NewSession(), generator, nil)

			outcome := controller.Submit(context.Background(), tt.request)

			require.Equal(t, OutcomeRejected, outcome.Kind)
			require.ErrorIs(t, outcome.Err, tt.wantErr)
			assert.Zero(t, generator.calls())
			assert.Equal(t, State{StatusMessage: StatusReady}, controller.State())
		})
	}
}

func TestSubmitTrimsTopicBeforeDispatch(t *testing.T) {
	t.Parallel()

	generator := &stubGenerator{response: successResponse(domain.GeneratedPost{Caption: "C"})}
	controller := NewController(NewSession(), generator, nil)

	request := instagramCasual
	request.Topic = "  coffee  "
	require.True(t, controller.Submit(context.Background(), request).Succeeded())

	require.Len(t, generator.requests, 1)
	assert.Equal(t, "coffee", generator.requests[0].Topic)
}

func TestSubmitMarksRequestInFlightDuringCall(t *testing.T) {
	t.Parallel()

	var during State
	generator := &stubGenerator{response: successResponse(domain.GeneratedPost{Caption: "C"})}
	controller := NewController(NewSession(), generator, nil)
	generator.hook = func(context.Context, domain.GenerationRequest) {
		during = controller.State()
	}

	controller.Submit(context.Background(), instagramCasual)

	assert.True(t, during.RequestInFlight)
	assert.Equal(t, "Generating content...", during.StatusMessage)
	assert.False(t, controller.State().RequestInFlight)
}

func TestSubmitRejectsConcurrentSubmit(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	generator := &stubGenerator{
		response: successResponse(domain.GeneratedPost{Caption: "C"}),
		hook: func(context.Context, domain.GenerationRequest) {
			close(started)
			<-release
		},
	}
	controller := NewController(NewSession(), generator, nil)

	var wg sync.WaitGroup
	var first Outcome
	wg.Add(1)
	go func() {
		defer wg.Done()
		first = controller.Submit(context.Background(), instagramCasual)
	}()

	<-started
	second := controller.Submit(context.Background(), instagramCasual)
	require.Equal(t, OutcomeRejected, second.Kind)
	require.ErrorIs(t, second.Err, domain.ErrRequestInFlight)
	assert.True(t, controller.State().RequestInFlight)
	require.ErrorIs(t, controller.Reset(), domain.ErrRequestInFlight)

	close(release)
	wg.Wait()

	assert.Equal(t, OutcomeSuccess, first.Kind)
	assert.False(t, controller.State().RequestInFlight)
	assert.Equal(t, 1, generator.calls())
}

func TestSubmitRunsToCompletionWhenCallerCancels(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var callErr error
	generator := &stubGenerator{
		response: successResponse(domain.GeneratedPost{Caption: "C"}),
		hook: func(ctx context.Context, _ domain.GenerationRequest) {
			callErr = ctx.Err()
		},
	}
	controller := NewController(NewSession(), generator, nil)

	outcome := controller.Submit(ctx, instagramCasual)

	require.NoError(t, callErr)
	assert.Equal(t, OutcomeSuccess, outcome.Kind)
	assert.False(t, controller.State().RequestInFlight)
}

func TestSubmitRecoversFromGeneratorPanic(t *testing.T) {
	t.Parallel()

	generator := &stubGenerator{hook: func(context.Context, domain.GenerationRequest) {
		panic("adapter bug")
	}}
	controller := NewController(NewSession(), generator, nil)

	var outcome Outcome
	require.NotPanics(t, func() {
		outcome = controller.Submit(context.Background(), instagramCasual)
	})

	assert.Equal(t, OutcomeFailure, outcome.Kind)
	assert.Equal(t, NetworkFailureReason, outcome.Reason)
	require.ErrorIs(t, outcome.Err, errGeneratorPanic)
	assert.Contains(t, outcome.Err.Error(), "adapter bug")

	state := controller.State()
	assert.False(t, state.RequestInFlight)
	assert.Equal(t, StatusConnection, state.StatusMessage)

	generator.hook = nil
	generator.response = successResponse(domain.GeneratedPost{Caption: "C"})
	assert.Equal(t, OutcomeSuccess, controller.Submit(context.Background(), instagramCasual).Kind)
}

func TestRegenerateWithoutResultIsNotApplicable(t *testing.T) {
	t.Parallel()

	generator := &stubGenerator{response: successResponse(domain.GeneratedPost{Caption: "C"})}
	controller := NewController(NewSession(), generator, nil)

	outcome := controller.Regenerate(context.Background())

	assert.Equal(t, OutcomeNotApplicable, outcome.Kind)
	assert.Zero(t, generator.calls())
	assert.Equal(t, State{StatusMessage: StatusReady}, controller.State())
}

func TestRegenerateWithoutResultAfterFailureIsNotApplicable(t *testing.T) {
	t.Parallel()

	generator := &stubGenerator{response: ports.GenerationResponse{Success: false, Error: "nope"}}
	controller := NewController(NewSession(), generator, nil)
	controller.Submit(context.Background(), instagramCasual)

	outcome := controller.Regenerate(context.Background())

	assert.Equal(t, OutcomeNotApplicable, outcome.Kind)
	assert.Equal(t, 1, generator.calls())
}

func TestRegenerateReusesLastSubmittedRequest(t *testing.T) {
	t.Parallel()

	generator := &stubGenerator{response: successResponse(domain.GeneratedPost{Caption: "first"})}
	controller := NewController(NewSession(), generator, nil)
	require.True(t, controller.Submit(context.Background(), instagramCasual).Succeeded())

	generator.response = successResponse(domain.GeneratedPost{Caption: "second"})
	outcome := controller.Regenerate(context.Background())

	require.Equal(t, OutcomeSuccess, outcome.Kind)
	assert.Equal(t, "second", outcome.Post.Caption)
	assert.Equal(t, []domain.GenerationRequest{instagramCasual, instagramCasual}, generator.requests)
	assert.Equal(t, "Generated for instagram • casual style", controller.State().StatusMessage)
}

func TestResetIsIdempotent(t *testing.T) {
	t.Parallel()

	generator := &stubGenerator{response: successResponse(domain.GeneratedPost{Caption: "C"})}
	controller := NewController(NewSession(), generator, nil)
	require.True(t, controller.Submit(context.Background(), instagramCasual).Succeeded())

	require.NoError(t, controller.Reset())
	once := controller.State()
	require.NoError(t, controller.Reset())

	assert.Equal(t, once, controller.State())
	assert.Equal(t, State{StatusMessage: "Ready to generate"}, controller.State())
	assert.Equal(t, OutcomeNotApplicable, controller.Regenerate(context.Background()).Kind)
}

func TestObserversReceiveEveryTransition(t *testing.T) {
	t.Parallel()

	generator := &stubGenerator{response: successResponse(domain.GeneratedPost{Caption: "C"})}
	controller := NewController(NewSession(), generator, nil)

	var seen []State
	controller.OnChange(func(state State) {
		seen = append(seen, state)
	})

	controller.Submit(context.Background(), instagramCasual)
	require.NoError(t, controller.Reset())

	require.Len(t, seen, 3)
	assert.Equal(t, State{StatusMessage: StatusGenerating, RequestInFlight: true}, seen[0])
	assert.False(t, seen[1].RequestInFlight)
	require.NotNil(t, seen[1].LastResult)
	assert.Equal(t, "Generated for instagram • casual style", seen[1].StatusMessage)
	assert.Equal(t, State{StatusMessage: StatusReady}, seen[2])
}

func TestStateSnapshotIsDetachedFromSession(t *testing.T) {
	t.Parallel()

	generator := &stubGenerator{response: successResponse(domain.GeneratedPost{Caption: "C"})}
	controller := NewController(NewSession(), generator, nil)
	controller.Submit(context.Background(), instagramCasual)

	snapshot := controller.State()
	snapshot.LastResult.Caption = "mutated"

	post, ok := controller.Session().LastResult()
	require.True(t, ok)
	assert.Equal(t, "C", post.Caption)
}

func TestOutcomeKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "success", OutcomeSuccess.String())
	assert.Equal(t, "not_applicable", OutcomeNotApplicable.String())
	assert.Equal(t, "unknown", OutcomeKind(0).String())
	assert.Equal(t, "no_content", CopyNoContent.String())
}
