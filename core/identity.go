package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// SanitizeAgentName lowers an agent name into a filesystem-safe identifier
// fragment. Qualified names like "foundation:zen-architect" contain colons
// which are invalid in Windows filenames, so runs of non-alphanumeric
// characters collapse into single hyphens.
func SanitizeAgentName(name string) string {
	s := nonAlnum.ReplaceAllString(strings.ToLower(name), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "agent"
	}
	return s
}

// NewSessionID derives a fresh sub-session identifier from the parent session
// id and agent name: "<parent>-<agent>-<token>". The token is 32 hex chars of
// UUID randomness, enough to make collisions negligible across concurrent
// spawns from the same parent. Ids are never reused or regenerated; resuming
// a sub-session always carries the caller-supplied id through unchanged.
func NewSessionID(parentSessionID, agent string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%s-%s-%s", parentSessionID, SanitizeAgentName(agent), token)
}
