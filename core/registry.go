package core

import "errors"

// ErrAgentNotFound is the sentinel returned by registries for unresolvable
// agent names. The router wraps it into an agent_not_found DelegationError.
var ErrAgentNotFound = errors.New("agent not found")

// AgentConfig is the configuration resolved for a named agent. The router
// passes it through to the session engine untouched; interpretation of the
// fields (prompting, sampling, capability policy) is entirely the engine's
// concern.
type AgentConfig struct {
	Name         string   `json:"name" yaml:"name"`
	Description  string   `json:"description,omitempty" yaml:"description,omitempty"`
	SystemPrompt string   `json:"system_prompt,omitempty" yaml:"system_prompt,omitempty"`
	Model        string   `json:"model,omitempty" yaml:"model,omitempty"`
	Temperature  float64  `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	Tools        []string `json:"tools,omitempty" yaml:"tools,omitempty"`
}

// AgentRegistry resolves agent names to configurations. Names may carry a
// collection qualifier ("collection:name"); qualifier interpretation belongs
// to the registry, never to the router.
type AgentRegistry interface {
	// Resolve returns the configuration for name or an error wrapping
	// ErrAgentNotFound.
	Resolve(name string) (*AgentConfig, error)

	// List returns all registered agent names, qualified and sorted, for
	// discovery surfaces such as the task tool description.
	List() []string
}
