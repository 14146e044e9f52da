package core

import "strings"

// RawRequest is the inbound delegation request before classification. It
// mirrors the wire shape {agent?, session_id?, instruction} exactly.
type RawRequest struct {
	Agent       string `json:"agent,omitempty"`
	SessionID   string `json:"session_id,omitempty"`
	Instruction string `json:"instruction"`
}

// Mode distinguishes the two classified request variants.
type Mode string

const (
	// ModeSpawn creates a new isolated sub-session for a named agent.
	ModeSpawn Mode = "spawn"

	// ModeResume continues a previously started sub-session by id.
	ModeResume Mode = "resume"
)

// DelegationRequest is the classified form of a RawRequest. Exactly one of
// Agent (spawn) or SessionID (resume) is set; Instruction is always non-empty.
type DelegationRequest struct {
	Mode        Mode
	Agent       string
	SessionID   string
	Instruction string
}

// IsSpawn reports whether the request creates a new sub-session.
func (r DelegationRequest) IsSpawn() bool { return r.Mode == ModeSpawn }

// Classify validates a raw request and tags it as spawn or resume. It has no
// side effects and performs no interpretation of the agent name: names may
// carry a collection qualifier ("collection:name") which stays opaque here,
// resolution is the registry's job.
func Classify(raw RawRequest) (DelegationRequest, error) {
	agent := strings.TrimSpace(raw.Agent)
	sessionID := strings.TrimSpace(raw.SessionID)
	instruction := strings.TrimSpace(raw.Instruction)

	if instruction == "" {
		return DelegationRequest{}, NewValidationError("missing instruction")
	}

	switch {
	case agent != "" && sessionID != "":
		return DelegationRequest{}, NewValidationError("ambiguous request: both agent and session_id set")
	case agent != "":
		return DelegationRequest{Mode: ModeSpawn, Agent: agent, Instruction: instruction}, nil
	case sessionID != "":
		return DelegationRequest{Mode: ModeResume, SessionID: sessionID, Instruction: instruction}, nil
	default:
		return DelegationRequest{}, NewValidationError("incomplete request: agent or session_id required")
	}
}

// ParseInline converts the legacy single-string request format
// "agent: instruction" into a spawn-shaped RawRequest for Classify. The split
// happens on the first colon only, so qualified agent names still work when
// quoted the usual way ("collection:name: do something" is ambiguous and the
// caller should prefer the structured form).
func ParseInline(s string) (RawRequest, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RawRequest{}, NewValidationError("missing instruction")
	}
	agent, instruction, ok := strings.Cut(s, ":")
	if !ok {
		return RawRequest{}, NewValidationError("inline request must be \"agent: instruction\"")
	}
	return RawRequest{
		Agent:       strings.TrimSpace(agent),
		Instruction: strings.TrimSpace(instruction),
	}, nil
}
