package core

import (
	"time"

	"github.com/google/uuid"
)

// Lifecycle event names published around a delegation. ToolPre signals an
// attempt is underway and requires a resolvable sub-session identity, so
// failures detected before identity resolution produce only ToolError.
const (
	EventToolPre   = "tool:pre"
	EventToolPost  = "tool:post"
	EventToolError = "tool:error"
)

// ToolName identifies the delegation tool in event payloads.
const ToolName = "task"

// Event is a fire-and-forget lifecycle message. After emission it is
// immutable; the router never inspects the outcome of publishing one.
type Event struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// ToolPrePayload is emitted immediately before the session engine call.
// Agent is nil for resumes, where no registry lookup happens.
type ToolPrePayload struct {
	Tool            string  `json:"tool"`
	Agent           *string `json:"agent"`
	Instruction     string  `json:"instruction"`
	SubSessionID    string  `json:"sub_session_id"`
	ParentSessionID string  `json:"parent_session_id"`
	Depth           int     `json:"depth"`
}

// ToolPostPayload is emitted after a successful engine call.
type ToolPostPayload struct {
	Tool            string  `json:"tool"`
	Agent           *string `json:"agent"`
	SubSessionID    string  `json:"sub_session_id"`
	ParentSessionID string  `json:"parent_session_id"`
	Status          string  `json:"status"`
}

// ToolErrorPayload is emitted for any failed delegation. SubSessionID is nil
// when the failure happened before an identity was resolved.
type ToolErrorPayload struct {
	Tool            string  `json:"tool"`
	Agent           *string `json:"agent"`
	SubSessionID    *string `json:"sub_session_id"`
	ParentSessionID string  `json:"parent_session_id"`
	Error           string  `json:"error"`
}

// NewEvent wraps a payload with identity and a UTC timestamp.
func NewEvent(name string, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Name:      name,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// NewToolPreEvent builds the pre-call lifecycle event.
func NewToolPreEvent(agent *string, instruction, subSessionID, parentSessionID string, depth int) Event {
	return NewEvent(EventToolPre, ToolPrePayload{
		Tool:            ToolName,
		Agent:           agent,
		Instruction:     instruction,
		SubSessionID:    subSessionID,
		ParentSessionID: parentSessionID,
		Depth:           depth,
	})
}

// NewToolPostEvent builds the success terminal event.
func NewToolPostEvent(agent *string, subSessionID, parentSessionID string) Event {
	return NewEvent(EventToolPost, ToolPostPayload{
		Tool:            ToolName,
		Agent:           agent,
		SubSessionID:    subSessionID,
		ParentSessionID: parentSessionID,
		Status:          "ok",
	})
}

// NewToolErrorEvent builds the failure terminal event.
func NewToolErrorEvent(agent, subSessionID *string, parentSessionID string, err error) Event {
	return NewEvent(EventToolError, ToolErrorPayload{
		Tool:            ToolName,
		Agent:           agent,
		SubSessionID:    subSessionID,
		ParentSessionID: parentSessionID,
		Error:           err.Error(),
	})
}

// EventBus dispatches lifecycle events to external subscribers. Publish is
// fire-and-forget from the router's perspective: implementations own delivery
// and failure handling, and a failed dispatch must never alter the delegation
// result already computed.
type EventBus interface {
	Publish(name string, payload any)
}
