package registry

import (
	"fmt"
	"os"

	"github.com/hupe1980/taskmesh/core"
	"gopkg.in/yaml.v3"
)

// manifest is the YAML agent-manifest shape:
//
//	agents:
//	  architect:
//	    description: Designs systems
//	    system_prompt: You are a software architect.
//	collections:
//	  foundation:
//	    zen-architect:
//	      description: Minimalist design reviews
//
// Map keys become agent names; a config's own name field is ignored in favor
// of its key so manifests stay non-repetitive.
type manifest struct {
	Agents      map[string]core.AgentConfig            `yaml:"agents"`
	Collections map[string]map[string]core.AgentConfig `yaml:"collections"`
}

// Parse builds an InMemory registry from YAML manifest bytes.
func Parse(data []byte) (*InMemory, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse agent manifest: %w", err)
	}

	r := NewInMemory()
	for name, cfg := range m.Agents {
		cfg.Name = name
		if err := r.Register(cfg); err != nil {
			return nil, err
		}
	}
	for collection, agents := range m.Collections {
		for name, cfg := range agents {
			cfg.Name = qualify(collection, name)
			if err := r.Register(cfg); err != nil {
				return nil, err
			}
		}
	}
	return r, nil
}

// LoadFile reads and parses a YAML agent manifest from disk.
func LoadFile(path string) (*InMemory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read agent manifest: %w", err)
	}
	return Parse(data)
}
