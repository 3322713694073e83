package auth

import "errors"

// Kind classifies a Service error the way the wire layer needs to: as one of
// the two status codes the protocol exposes. It collapses more specific
// internal reasons into one of those two kinds: a missing user or challenge
// is KindNotFound, while decode failures and a failed verification (such as
// wrong y-values on file) are KindInvalidArgument.
type Kind int

const (
	// KindInvalidArgument covers decode failures and failed verification.
	KindInvalidArgument Kind = iota
	// KindNotFound covers missing users and missing or already-consumed
	// challenges.
	KindNotFound
)

// Error wraps a Kind with a message safe to surface to callers.
type Error struct {
	Kind Kind
	msg  string
}

func (e *Error) Error() string { return e.msg }

func invalidArgument(msg string) error { return &Error{Kind: KindInvalidArgument, msg: msg} }
func notFound(msg string) error        { return &Error{Kind: KindNotFound, msg: msg} }

// IsNotFound reports whether err is a not_found Service error.
func IsNotFound(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == KindNotFound
	}
	return false
}

// IsInvalidArgument reports whether err is an invalid_argument Service error.
func IsInvalidArgument(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == KindInvalidArgument
	}
	return false
}
