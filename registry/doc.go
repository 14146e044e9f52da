// Package registry houses concrete implementations of core.AgentRegistry.
// All interpretation of collection-qualified agent names ("collection:name")
// happens here; the router treats names as opaque identifiers.
package registry
