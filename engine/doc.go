// Package engine implements core.SessionEngine: it owns sub-session
// transcripts and multi-turn continuity, executing each turn against a
// provider-agnostic model.
//
// Responsibilities:
//   - Session creation at spawn time, pinning the resolved agent
//     configuration (system prompt, model id, temperature) into session state
//   - Re-attachment to persisted configuration and history on resume
//   - Turn execution: append the instruction, generate, persist the reply
//
// The engine makes no routing or depth decisions; those belong to the router,
// which treats every RunTurn outcome as a single opaque result or failure.
package engine
