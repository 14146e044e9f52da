package tool

import (
	"fmt"
	"strings"

	"github.com/hupe1980/taskmesh/core"
)

// InheritMode selects how much of the parent transcript a spawned sub-session
// sees. The caller controls it per request; the default passes nothing.
type InheritMode string

const (
	// InheritNone starts the child with a fresh context.
	InheritNone InheritMode = "none"

	// InheritRecent passes the last N user->assistant turns.
	InheritRecent InheritMode = "recent"

	// InheritAll passes the full conversational history.
	InheritAll InheritMode = "all"
)

// DefaultRecentTurns is used when inherit_context is "recent" and no turn
// count is supplied.
const DefaultRecentTurns = 5

// maxInheritedMessageLen truncates very long parent messages so inherited
// context cannot overwhelm the child instruction.
const maxInheritedMessageLen = 2000

// HistoryProvider exposes a parent session's transcript to the task tool.
// The tool only ever reads; ownership of the transcript stays with the
// session engine's store.
type HistoryProvider interface {
	Messages(sessionID string) ([]core.Message, error)
}

// StoreHistory adapts a core.SessionStore into a HistoryProvider.
type StoreHistory struct {
	Store core.SessionStore
}

// Messages returns the conversational (user/assistant) entries of a session.
func (h StoreHistory) Messages(sessionID string) ([]core.Message, error) {
	sess, err := h.Store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return conversational(sess.GetMessages()), nil
}

// RecentTurns extracts the last n user->assistant turns. A turn starts with a
// user message and includes all messages until the next user message.
func RecentTurns(msgs []core.Message, n int) []core.Message {
	if len(msgs) == 0 || n <= 0 {
		return nil
	}

	var turnStarts []int
	for i, m := range msgs {
		if m.Role == "user" {
			turnStarts = append(turnStarts, i)
		}
	}
	if len(turnStarts) == 0 || len(turnStarts) <= n {
		return msgs
	}
	return msgs[turnStarts[len(turnStarts)-n]:]
}

// FormatParentContext renders inherited messages as a text block prepended to
// the child instruction, so the child sees parent context regardless of how
// its engine treats pre-existing messages.
func FormatParentContext(msgs []core.Message) string {
	if len(msgs) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("[PARENT CONVERSATION CONTEXT]\n")
	b.WriteString("The following is recent conversation history from the parent session:\n\n")
	for _, m := range msgs {
		text := m.Text
		if len(text) > maxInheritedMessageLen {
			text = text[:maxInheritedMessageLen] + "... [truncated]"
		}
		fmt.Fprintf(&b, "%s: %s\n\n", strings.ToUpper(m.Role), text)
	}
	b.WriteString("[END PARENT CONTEXT]")
	return b.String()
}

// conversational keeps only non-empty user and assistant messages; system
// prompts are context-specific to the parent and never inherited.
func conversational(msgs []core.Message) []core.Message {
	out := make([]core.Message, 0, len(msgs))
	for _, m := range msgs {
		if (m.Role == "user" || m.Role == "assistant") && strings.TrimSpace(m.Text) != "" {
			out = append(out, m)
		}
	}
	return out
}
