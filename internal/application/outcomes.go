package application

import "github.com/bnema/jacai-cli/internal/domain"

const (
	DefaultFailureReason = "Failed to generate content"
	NetworkFailureReason = "Network error. Please try again."
)

type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota + 1
	OutcomeFailure
	OutcomeNotApplicable
	OutcomeRejected
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	case OutcomeNotApplicable:
		return "not_applicable"
	case OutcomeRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Outcome is the result of Submit or Regenerate. Err carries the sentinel for
// rejections and the transport cause for connection failures.
type Outcome struct {
	Kind    OutcomeKind
	Request domain.GenerationRequest
	Post    domain.GeneratedPost
	Reason  string
	Err     error
}

func (o Outcome) Succeeded() bool {
	return o.Kind == OutcomeSuccess
}

type CopyKind int

const (
	CopyCopied CopyKind = iota + 1
	CopyNoContent
	CopyRejected
)

func (k CopyKind) String() string {
	switch k {
	case CopyCopied:
		return "copied"
	case CopyNoContent:
		return "no_content"
	case CopyRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

type CopyOutcome struct {
	Kind        CopyKind
	Field       domain.Field
	ViaFallback bool
	Err         error
}
