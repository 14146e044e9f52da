package core

import "context"

// TurnRequest describes one conversation turn for the session engine.
// AgentConfig is set only when IsNew is true; resumed sessions re-attach to
// the configuration the engine persisted at spawn time.
type TurnRequest struct {
	SessionID   string
	Instruction string
	AgentConfig *AgentConfig
	IsNew       bool
}

// TurnResult carries the engine's final response text for a turn.
type TurnResult struct {
	ResponseText string
}

// SessionEngine executes conversation turns and owns everything durable about
// sub-sessions: transcript persistence, retrieval and multi-turn continuity.
// The router treats a RunTurn outcome as a single opaque result or failure
// from a collaborator it does not control; it never retries.
type SessionEngine interface {
	RunTurn(ctx context.Context, req TurnRequest) (*TurnResult, error)
}
