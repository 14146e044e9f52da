package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/hupe1980/taskmesh/core"
)

// InMemory is a process-local AgentRegistry keeping agent configurations in
// collections. It is safe for concurrent use. Unqualified names live in the
// default (unnamed) collection; qualified names address a specific one.
type InMemory struct {
	mu          sync.RWMutex
	collections map[string]map[string]core.AgentConfig
}

// NewInMemory constructs an empty in-memory registry.
func NewInMemory() *InMemory {
	return &InMemory{collections: make(map[string]map[string]core.AgentConfig)}
}

// Register adds or replaces an agent configuration. The config's Name may be
// qualified ("collection:name") to place it into a collection.
func (r *InMemory) Register(cfg core.AgentConfig) error {
	collection, name := splitQualified(cfg.Name)
	if name == "" {
		return fmt.Errorf("agent name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	agents, ok := r.collections[collection]
	if !ok {
		agents = make(map[string]core.AgentConfig)
		r.collections[collection] = agents
	}
	agents[name] = cfg
	return nil
}

// Resolve implements core.AgentRegistry. A qualified name addresses its
// collection directly; an unqualified name addresses the default collection.
// The returned config is a copy safe for the caller to hold.
func (r *InMemory) Resolve(name string) (*core.AgentConfig, error) {
	collection, base := splitQualified(strings.TrimSpace(name))

	r.mu.RLock()
	defer r.mu.RUnlock()
	if agents, ok := r.collections[collection]; ok {
		if cfg, ok := agents[base]; ok {
			return &cfg, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", name, core.ErrAgentNotFound)
}

// List implements core.AgentRegistry, returning sorted qualified names.
func (r *InMemory) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string
	for collection, agents := range r.collections {
		for name := range agents {
			names = append(names, qualify(collection, name))
		}
	}
	sort.Strings(names)
	return names
}

// Describe returns the description for a registered agent name, used by
// discovery surfaces. Missing agents yield an empty string.
func (r *InMemory) Describe(name string) string {
	cfg, err := r.Resolve(name)
	if err != nil {
		return ""
	}
	return cfg.Description
}

func splitQualified(name string) (collection, base string) {
	if col, rest, ok := strings.Cut(name, ":"); ok {
		return strings.TrimSpace(col), strings.TrimSpace(rest)
	}
	return "", strings.TrimSpace(name)
}

func qualify(collection, name string) string {
	if collection == "" {
		return name
	}
	return collection + ":" + name
}

var _ core.AgentRegistry = (*InMemory)(nil)
