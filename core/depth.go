package core

import "fmt"

// DefaultMaxDepth bounds nested delegations when no explicit limit is
// configured. Depth 0 is the top-level conversation, so the default permits a
// single layer of sub-sessions.
const DefaultMaxDepth = 1

// CheckDepth computes the depth of the next delegation in a chain and
// validates it against the configured bound. Depth is a property of the call
// chain, derived from the parent invocation context, never recomputed from
// session history. A top-level call has depth 0; each delegation increments
// by exactly 1.
//
// The bound limits chain length only; sibling fan-out at one depth is
// unconstrained by this check.
func CheckDepth(parentDepth, maxDepth int) (int, error) {
	if maxDepth < 0 {
		return 0, NewConfigError(fmt.Sprintf("max depth must be non-negative, got %d", maxDepth))
	}
	if parentDepth < 0 {
		return 0, NewConfigError(fmt.Sprintf("parent depth must be non-negative, got %d", parentDepth))
	}
	next := parentDepth + 1
	if next > maxDepth {
		return 0, NewDepthExceededError(next, maxDepth)
	}
	return next, nil
}
