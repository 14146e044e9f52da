package core

// Parent identifies the invocation a delegation call descends from. It is
// passed explicitly into every Delegate call rather than read from ambient
// state, which keeps the router stateless and trivially testable.
type Parent struct {
	// SessionID is the parent conversation's session identifier.
	SessionID string

	// Depth is the parent's own delegation depth; 0 for a top-level call.
	Depth int
}

// DelegationContext is the ephemeral per-invocation state assembled by the
// router: one is created at the start of a delegation call and discarded when
// the call returns. It is owned exclusively by the router for the duration of
// one invocation and never persisted.
type DelegationContext struct {
	ParentSessionID string
	Depth           int
	MaxDepth        int
	Agent           string // empty for resumes
	SessionID       string // resolved identity, generated or caller-supplied
	Instruction     string
}

// DelegationResult is the successful outcome of a delegation. SessionID is
// always the resolved sub-session id, for spawns and resumes alike, so the
// caller can persist it for future turns.
type DelegationResult struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}
