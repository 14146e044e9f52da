// Package taskmesh provides a high-level façade over the delegation router
// and its services (agent registry, session engine, event bus & logging) for
// building depth-bounded multi-agent delegation systems. Most applications
// interact with this package by:
//  1. Creating a TaskMesh via New() (optionally overriding default in‑memory services)
//  2. Registering one or more agent configurations
//  3. Delegating tasks (Delegate for errors, DelegateResult for structured results)
//
// The façade delegates routing to router.Router while keeping setup and usage
// ergonomics concise. All defaults are safe for local development and testing;
// production deployments typically supply a real model, a durable session
// store and a structured logger.
package taskmesh

import (
	"context"

	"github.com/hupe1980/taskmesh/bus"
	"github.com/hupe1980/taskmesh/core"
	"github.com/hupe1980/taskmesh/engine"
	"github.com/hupe1980/taskmesh/logging"
	"github.com/hupe1980/taskmesh/model"
	"github.com/hupe1980/taskmesh/registry"
	"github.com/hupe1980/taskmesh/router"
	"github.com/hupe1980/taskmesh/session"
	"github.com/hupe1980/taskmesh/tool"
)

// Options configures the TaskMesh instance.
type Options struct {
	// MaxDepth bounds the delegation chain. Defaults to core.DefaultMaxDepth.
	MaxDepth int

	// Registry resolves agent names to configurations. Defaults to an empty
	// in-memory registry populated via RegisterAgent.
	Registry core.AgentRegistry

	// Model generates sub-session responses. Defaults to a MockModel so the
	// mesh is usable without credentials.
	Model model.Model

	// SessionStore persists sub-session transcripts. Defaults to in-memory.
	SessionStore core.SessionStore

	// Engine runs sub-session turns. When set it takes precedence over Model
	// and SessionStore.
	Engine core.SessionEngine

	// Bus receives lifecycle events. Defaults to an in-memory bus.
	Bus core.EventBus

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// TaskMesh is the high-level façade aggregating the router and its services.
type TaskMesh struct {
	opts     Options
	registry core.AgentRegistry
	store    core.SessionStore
	bus      core.EventBus
	router   *router.Router
	task     *tool.TaskTool
}

// New creates a new TaskMesh instance with optional overrides. Any unset
// service is initialized with an in-memory implementation.
func New(optFns ...func(o *Options)) (*TaskMesh, error) {
	opts := Options{
		MaxDepth:     core.DefaultMaxDepth,
		SessionStore: session.NewInMemoryStore(),
		Logger:       logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Registry == nil {
		opts.Registry = registry.NewInMemory()
	}
	if opts.Model == nil {
		opts.Model = model.NewMockModel("taskmesh-mock")
	}
	if opts.Bus == nil {
		opts.Bus = bus.NewInMemory(opts.Logger)
	}

	eng := opts.Engine
	if eng == nil {
		eng = engine.New(opts.Model, func(o *engine.Options) {
			o.SessionStore = opts.SessionStore
			o.Logger = opts.Logger
		})
	}

	r, err := router.New(opts.Registry, eng, opts.Bus, func(o *router.Options) {
		o.MaxDepth = opts.MaxDepth
		o.Logger = opts.Logger
	})
	if err != nil {
		return nil, err
	}

	task := tool.New(r, opts.Registry, func(o *tool.Options) {
		o.History = tool.StoreHistory{Store: opts.SessionStore}
		o.Logger = opts.Logger
	})

	return &TaskMesh{
		opts:     opts,
		registry: opts.Registry,
		store:    opts.SessionStore,
		bus:      opts.Bus,
		router:   r,
		task:     task,
	}, nil
}

// RegisterAgent adds an agent configuration to the underlying registry. It is
// a no-op error when the registry is not an in-memory one managed by the mesh.
func (m *TaskMesh) RegisterAgent(cfg core.AgentConfig) error {
	reg, ok := m.registry.(*registry.InMemory)
	if !ok {
		return core.NewConfigError("registry does not support registration")
	}
	return reg.Register(cfg)
}

// Registry returns the agent registry backing the mesh.
func (m *TaskMesh) Registry() core.AgentRegistry { return m.registry }

// Router returns the delegation router for callers needing direct access.
func (m *TaskMesh) Router() *router.Router { return m.router }

// Task returns the model-facing task tool surface.
func (m *TaskMesh) Task() *tool.TaskTool { return m.task }

// Delegate routes a raw request on behalf of a parent invocation. See
// router.Router.Delegate for semantics.
func (m *TaskMesh) Delegate(ctx context.Context, raw core.RawRequest, parent core.Parent) (*core.DelegationResult, error) {
	return m.router.Delegate(ctx, raw, parent)
}

// DelegateResult is the structured-result variant of Delegate.
func (m *TaskMesh) DelegateResult(ctx context.Context, raw core.RawRequest, parent core.Parent) core.Result {
	return m.router.DelegateResult(ctx, raw, parent)
}

// Spawn is a convenience helper delegating a fresh task to a named agent.
func (m *TaskMesh) Spawn(ctx context.Context, parent core.Parent, agent, instruction string) (*core.DelegationResult, error) {
	return m.Delegate(ctx, core.RawRequest{Agent: agent, Instruction: instruction}, parent)
}

// Resume is a convenience helper continuing an existing sub-session.
func (m *TaskMesh) Resume(ctx context.Context, parent core.Parent, sessionID, instruction string) (*core.DelegationResult, error) {
	return m.Delegate(ctx, core.RawRequest{SessionID: sessionID, Instruction: instruction}, parent)
}
