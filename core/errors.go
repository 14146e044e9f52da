package core

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes delegation failures. Every failure surfaced by the
// router carries exactly one kind so callers can branch without string
// matching.
type ErrorKind string

const (
	// ErrorKindValidation marks malformed, ambiguous or incomplete requests.
	ErrorKindValidation ErrorKind = "validation"

	// ErrorKindDepthExceeded marks a delegation that would exceed the
	// configured recursion bound.
	ErrorKindDepthExceeded ErrorKind = "depth_exceeded"

	// ErrorKindAgentNotFound marks an agent name the registry could not resolve.
	ErrorKindAgentNotFound ErrorKind = "agent_not_found"

	// ErrorKindEngine wraps any failure reported by the session engine,
	// initialization or execution alike.
	ErrorKindEngine ErrorKind = "engine"

	// ErrorKindConfig marks invalid configuration such as a negative
	// maximum recursion depth.
	ErrorKindConfig ErrorKind = "config"
)

// DelegationError is the typed error returned for every failed delegation.
// All failures are terminal for the current call; nothing is retried and
// nothing is fatal to the host process.
type DelegationError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Err     error     `json:"-"` // wrapped cause, engine failures mostly
}

// Error implements the error interface.
func (e *DelegationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is / errors.As chains.
func (e *DelegationError) Unwrap() error { return e.Err }

// NewValidationError reports a malformed, ambiguous or incomplete request.
func NewValidationError(message string) *DelegationError {
	return &DelegationError{Kind: ErrorKindValidation, Message: message}
}

// NewDepthExceededError reports that nextDepth would exceed maxDepth.
func NewDepthExceededError(nextDepth, maxDepth int) *DelegationError {
	return &DelegationError{
		Kind:    ErrorKindDepthExceeded,
		Message: fmt.Sprintf("delegation depth %d exceeds maximum %d", nextDepth, maxDepth),
	}
}

// NewAgentNotFoundError reports an unresolvable agent name.
func NewAgentNotFoundError(agent string, cause error) *DelegationError {
	return &DelegationError{
		Kind:    ErrorKindAgentNotFound,
		Message: fmt.Sprintf("agent %q not found", agent),
		Err:     cause,
	}
}

// NewEngineError wraps a session engine failure.
func NewEngineError(cause error) *DelegationError {
	return &DelegationError{
		Kind:    ErrorKindEngine,
		Message: fmt.Sprintf("delegation failed: %v", cause),
		Err:     cause,
	}
}

// NewConfigError reports invalid configuration supplied to the router.
func NewConfigError(message string) *DelegationError {
	return &DelegationError{Kind: ErrorKindConfig, Message: message}
}

// KindOf returns the ErrorKind carried by err, or the empty string when err
// is not a DelegationError.
func KindOf(err error) ErrorKind {
	var de *DelegationError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// ErrorDetail is the error half of the structured failure result.
type ErrorDetail struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// Result is the structured outcome handed back to the invoking caller:
// {success:true, response, session_id} or {success:false, error:{kind,message}}.
// A failed delegation must never crash the caller's own turn, so even plain
// (non DelegationError) failures render as an engine-kind detail.
type Result struct {
	Success   bool         `json:"success"`
	Response  string       `json:"response,omitempty"`
	SessionID string       `json:"session_id,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
}

// OKResult renders a successful DelegationResult as a Result.
func OKResult(res *DelegationResult) Result {
	return Result{Success: true, Response: res.Response, SessionID: res.SessionID}
}

// ErrorResult renders err as a structured failure Result.
func ErrorResult(err error) Result {
	var de *DelegationError
	if errors.As(err, &de) {
		return Result{Success: false, Error: &ErrorDetail{Kind: de.Kind, Message: de.Message}}
	}
	return Result{Success: false, Error: &ErrorDetail{Kind: ErrorKindEngine, Message: err.Error()}}
}
