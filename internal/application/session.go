package application

import (
	"sync"

	"github.com/bnema/jacai-cli/internal/domain"
)

const (
	StatusReady      = "Ready to generate"
	StatusGenerating = "Generating content..."
	StatusFailed     = "Generation failed"
	StatusConnection = "Connection error"
)

// State is a consistent snapshot of a Session.
type State struct {
	StatusMessage   string
	RequestInFlight bool
	LastResult      *domain.GeneratedPost
}

// ResultSource exposes the post a Copier reads from.
type ResultSource interface {
	LastResult() (domain.GeneratedPost, bool)
}

// Session holds the state of one generation workflow. Only the Controller mutates it.
type Session struct {
	mu              sync.Mutex
	lastResult      *domain.GeneratedPost
	requestInFlight bool
	statusMessage   string
}

var _ ResultSource = (*Session)(nil)

func NewSession() *Session {
	return &Session{statusMessage: StatusReady}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

func (s *Session) LastResult() (domain.GeneratedPost, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastResult == nil {
		return domain.GeneratedPost{}, false
	}
	return *s.lastResult, true
}

func (s *Session) snapshotLocked() State {
	state := State{
		StatusMessage:   s.statusMessage,
		RequestInFlight: s.requestInFlight,
	}
	if s.lastResult != nil {
		post := *s.lastResult
		state.LastResult = &post
	}
	return state
}

// begin flips the in-flight flag. It reports false when a request is already in flight.
func (s *Session) begin() (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.requestInFlight {
		return s.snapshotLocked(), false
	}
	s.requestInFlight = true
	s.statusMessage = StatusGenerating
	return s.snapshotLocked(), true
}

// settle applies the post-request state in one step. A nil post keeps lastResult.
func (s *Session) settle(status string, post *domain.GeneratedPost) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if post != nil {
		stored := *post
		s.lastResult = &stored
	}
	s.statusMessage = status
	s.requestInFlight = false
	return s.snapshotLocked()
}

func (s *Session) clear() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.requestInFlight {
		return s.snapshotLocked(), domain.ErrRequestInFlight
	}
	s.lastResult = nil
	s.statusMessage = StatusReady
	return s.snapshotLocked(), nil
}

type staticResult struct {
	post domain.GeneratedPost
}

// StaticResult adapts a stored post so it can be copied through a Copier.
func StaticResult(post domain.GeneratedPost) ResultSource {
	return staticResult{post: post}
}

func (r staticResult) LastResult() (domain.GeneratedPost, bool) {
	return r.post, true
}
