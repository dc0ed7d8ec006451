package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bnema/jacai-cli/internal/domain"
	"github.com/bnema/jacai-cli/internal/ports"
	"go.uber.org/zap"
)

var (
	errMissingPost    = errors.New("generation service reported success without a post")
	errGeneratorPanic = errors.New("generation service panicked")
)

// Controller owns the lifecycle of generation requests against a Session.
type Controller struct {
	session   *Session
	generator ports.Generator
	logger    *zap.Logger

	mu          sync.Mutex
	lastRequest *domain.GenerationRequest
	observers   []func(State)
}

func NewController(session *Session, generator ports.Generator, logger *zap.Logger) *Controller {
	if session == nil {
		session = NewSession()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Controller{
		session:   session,
		generator: generator,
		logger:    logger,
	}
}

// OnChange registers fn to receive the session state after every transition.
func (c *Controller) OnChange(fn func(State)) {
	if fn == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

func (c *Controller) State() State {
	return c.session.State()
}

func (c *Controller) Session() *Session {
	return c.session
}

func (c *Controller) Submit(ctx context.Context, request domain.GenerationRequest) (outcome Outcome) {
	request.Topic = strings.TrimSpace(request.Topic)
	if err := request.Validate(); err != nil {
		c.logger.Warn("generation request rejected", zap.Error(err))
		return Outcome{Kind: OutcomeRejected, Request: request, Err: err}
	}

	state, ok := c.session.begin()
	if !ok {
		c.logger.Warn("generation request rejected", zap.Error(domain.ErrRequestInFlight))
		return Outcome{Kind: OutcomeRejected, Request: request, Err: domain.ErrRequestInFlight}
	}
	c.rememberRequest(request)
	c.notify(state)

	// The settle step runs on every exit path. A panicking generator settles
	// as a connection error so the session stays usable.
	status := StatusConnection
	var stored *domain.GeneratedPost
	defer func() {
		if r := recover(); r != nil {
			status, stored = StatusConnection, nil
			err := fmt.Errorf("%w: %v", errGeneratorPanic, r)
			c.logger.Error("generation service panicked", zap.Any("panic", r))
			outcome = Outcome{Kind: OutcomeFailure, Request: request, Reason: NetworkFailureReason, Err: err}
		}
		c.notify(c.session.settle(status, stored))
	}()

	c.logger.Debug("dispatching generation request",
		zap.String("platform", string(request.Platform)),
		zap.String("style", string(request.Style)),
	)

	// A dispatched request runs to completion even if the caller stops waiting.
	response, err := c.generator.Generate(context.WithoutCancel(ctx), request)
	if err == nil && response.Success && response.Post == nil {
		err = errMissingPost
	}
	if err != nil {
		c.logger.Warn("generation service unreachable", zap.Error(err))
		return Outcome{Kind: OutcomeFailure, Request: request, Reason: NetworkFailureReason, Err: err}
	}

	if !response.Success {
		reason := strings.TrimSpace(response.Error)
		if reason == "" {
			reason = DefaultFailureReason
		}
		status = StatusFailed
		c.logger.Info("generation failed", zap.String("reason", reason))
		return Outcome{Kind: OutcomeFailure, Request: request, Reason: reason}
	}

	post := *response.Post
	stored = &post
	status = successStatus(request)
	c.logger.Info("generation succeeded",
		zap.String("platform", string(request.Platform)),
		zap.String("style", string(request.Style)),
	)
	return Outcome{Kind: OutcomeSuccess, Request: request, Post: post}
}

// Regenerate re-issues the most recently submitted request. It does nothing
// until a generation has succeeded.
func (c *Controller) Regenerate(ctx context.Context) Outcome {
	if _, ok := c.session.LastResult(); !ok {
		return Outcome{Kind: OutcomeNotApplicable, Err: domain.ErrNoPriorResult}
	}

	c.mu.Lock()
	last := c.lastRequest
	c.mu.Unlock()
	if last == nil {
		return Outcome{Kind: OutcomeNotApplicable, Err: domain.ErrNoPriorResult}
	}

	return c.Submit(ctx, *last)
}

// Reset returns the session to its initial state. It is not a cancellation
// primitive and fails while a request is in flight.
func (c *Controller) Reset() error {
	state, err := c.session.clear()
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.lastRequest = nil
	c.mu.Unlock()

	c.notify(state)
	return nil
}

func (c *Controller) rememberRequest(request domain.GenerationRequest) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastRequest = &request
}

func (c *Controller) notify(state State) {
	c.mu.Lock()
	observers := append([]func(State){}, c.observers...)
	c.mu.Unlock()

	for _, fn := range observers {
		fn(state)
	}
}

func successStatus(request domain.GenerationRequest) string {
	return fmt.Sprintf("Generated for %s • %s style", request.Platform, request.Style)
}
