package domain

import "errors"

var (
	ErrEmptyTopic          = errors.New("topic is empty")
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrUnsupportedStyle    = errors.New("unsupported style")
	ErrUnknownField        = errors.New("unknown post field")
	ErrRequestInFlight     = errors.New("a generation request is already in flight")
	ErrNoPriorResult       = errors.New("no prior generation result")
	ErrNoContent           = errors.New("nothing to copy")
	ErrEntryNotFound       = errors.New("history entry not found")
	ErrSecretNotFound      = errors.New("secret not found")
	ErrEmptySecret         = errors.New("secret value is empty")
	ErrUnknownCredential   = errors.New("unknown credential")
)
