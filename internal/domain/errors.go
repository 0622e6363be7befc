package domain

import (
	"errors"
	"fmt"
)

// FetchKind classifies an upstream failure. The cache layer uses this
// to decide whether a stale entry may be served in place of the error.
type FetchKind int

const (
	KindUnknown FetchKind = iota
	KindRateLimited
	KindTransient
	KindNotFound
	KindInvalid
	KindDecodeFailure
)

func (k FetchKind) String() string {
	switch k {
	case KindRateLimited:
		return "rate-limited"
	case KindTransient:
		return "transient"
	case KindNotFound:
		return "not-found"
	case KindInvalid:
		return "invalid"
	case KindDecodeFailure:
		return "decode-failure"
	default:
		return "unknown"
	}
}

// FetchError is the classified failure of one upstream call.
type FetchError struct {
	Kind    FetchKind
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Is enables errors.Is matching on the failure kind.
func (e *FetchError) Is(target error) bool {
	t, ok := target.(*FetchError)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

// Sentinels for errors.Is checks against a failure kind.
var (
	ErrRateLimited = &FetchError{Kind: KindRateLimited}
	ErrTransient   = &FetchError{Kind: KindTransient}
	ErrNotFound    = &FetchError{Kind: KindNotFound}
	ErrInvalid     = &FetchError{Kind: KindInvalid}
	ErrDecode      = &FetchError{Kind: KindDecodeFailure}
)

func RateLimited(msg string) *FetchError {
	return &FetchError{Kind: KindRateLimited, Message: msg}
}

func Transient(msg string, cause error) *FetchError {
	return &FetchError{Kind: KindTransient, Message: msg, Cause: cause}
}

func NotFound(msg string) *FetchError {
	return &FetchError{Kind: KindNotFound, Message: msg}
}

func Invalid(msg string, cause error) *FetchError {
	return &FetchError{Kind: KindInvalid, Message: msg, Cause: cause}
}

func DecodeFailure(msg string, cause error) *FetchError {
	return &FetchError{Kind: KindDecodeFailure, Message: msg, Cause: cause}
}

// KindOf extracts the classification of err, KindUnknown when err is
// not a FetchError.
func KindOf(err error) FetchKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}

// StaleEligible reports whether a stale cached value may be served in
// place of this failure. Rate limiting and transient faults qualify;
// data-level failures do not.
func StaleEligible(err error) bool {
	switch KindOf(err) {
	case KindRateLimited, KindTransient:
		return true
	default:
		return false
	}
}
