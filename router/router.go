package router

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/taskmesh/core"
	"github.com/hupe1980/taskmesh/logging"
)

// Options holds configuration overrides passed to New().
type Options struct {
	// MaxDepth bounds the chain length of nested delegations. A top-level
	// call has depth 0, so MaxDepth of 1 permits one layer of sub-sessions.
	// Must be non-negative.
	MaxDepth int

	// Logger receives structured diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Router decides whether a delegation spawns a new sub-session or resumes an
// existing one, enforces the recursion depth bound, derives sub-session
// identity, and frames the engine call with lifecycle events. It is safe for
// concurrent use; every invocation works on its own DelegationContext.
type Router struct {
	registry core.AgentRegistry
	engine   core.SessionEngine
	emitter  *Emitter
	maxDepth int
	logger   logging.Logger
}

// New constructs a Router. The registry and engine are required collaborators;
// the bus may be nil when no observers are wired. A negative MaxDepth is
// rejected immediately with a config-kind DelegationError.
func New(registry core.AgentRegistry, engine core.SessionEngine, bus core.EventBus, optFns ...func(o *Options)) (*Router, error) {
	opts := Options{
		MaxDepth: core.DefaultMaxDepth,
		Logger:   logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if registry == nil {
		return nil, core.NewConfigError("agent registry is required")
	}
	if engine == nil {
		return nil, core.NewConfigError("session engine is required")
	}
	if opts.MaxDepth < 0 {
		return nil, core.NewConfigError(fmt.Sprintf("max depth must be non-negative, got %d", opts.MaxDepth))
	}

	logger := logging.OrNoOp(opts.Logger)

	return &Router{
		registry: registry,
		engine:   engine,
		emitter:  NewEmitter(bus, logger),
		maxDepth: opts.MaxDepth,
		logger:   logger,
	}, nil
}

// MaxDepth returns the configured recursion bound.
func (r *Router) MaxDepth() int { return r.maxDepth }

// Delegate routes one delegation call. The parent invocation context is
// passed explicitly; the router reads no ambient state.
//
// Event contract: failures detected before identity resolution (validation,
// depth, unknown agent) emit only tool:error. Once an identity is resolved,
// tool:pre strictly precedes the engine call and exactly one terminal event
// (tool:post or tool:error) strictly follows it. When the engine call fails
// with the caller's own cancellation the attempt never resolved, so no
// terminal event is emitted.
func (r *Router) Delegate(ctx context.Context, raw core.RawRequest, parent core.Parent) (*core.DelegationResult, error) {
	req, err := core.Classify(raw)
	if err != nil {
		r.logger.Debug("delegation rejected", "parent_session_id", parent.SessionID, "error", err.Error())
		r.emitter.ToolError(optional(raw.Agent), nil, parent.SessionID, err)
		return nil, err
	}

	depth, err := core.CheckDepth(parent.Depth, r.maxDepth)
	if err != nil {
		r.logger.Debug("delegation rejected", "parent_session_id", parent.SessionID, "parent_depth", parent.Depth, "error", err.Error())
		r.emitter.ToolError(optional(req.Agent), nil, parent.SessionID, err)
		return nil, err
	}

	dctx := core.DelegationContext{
		ParentSessionID: parent.SessionID,
		Depth:           depth,
		MaxDepth:        r.maxDepth,
		Instruction:     req.Instruction,
	}

	var agentConfig *core.AgentConfig
	if req.IsSpawn() {
		cfg, rerr := r.registry.Resolve(req.Agent)
		if rerr != nil {
			derr := core.NewAgentNotFoundError(req.Agent, rerr)
			r.emitter.ToolError(optional(req.Agent), nil, parent.SessionID, derr)
			return nil, derr
		}
		agentConfig = cfg
		dctx.Agent = req.Agent
		dctx.SessionID = core.NewSessionID(parent.SessionID, req.Agent)
	} else {
		dctx.SessionID = req.SessionID
	}

	agent := optional(dctx.Agent)

	r.emitter.ToolPre(agent, dctx.Instruction, dctx.SessionID, dctx.ParentSessionID, dctx.Depth)
	r.logger.Info("delegation started",
		"mode", string(req.Mode),
		"sub_session_id", dctx.SessionID,
		"parent_session_id", dctx.ParentSessionID,
		"depth", dctx.Depth,
	)

	turn, err := r.engine.RunTurn(ctx, core.TurnRequest{
		SessionID:   dctx.SessionID,
		Instruction: dctx.Instruction,
		AgentConfig: agentConfig,
		IsNew:       req.IsSpawn(),
	})
	if err != nil {
		if aborted(ctx, err) {
			r.logger.Debug("delegation aborted", "sub_session_id", dctx.SessionID, "error", err.Error())
			return nil, core.NewEngineError(err)
		}
		derr := core.NewEngineError(err)
		r.emitter.ToolError(agent, &dctx.SessionID, dctx.ParentSessionID, derr)
		r.logger.Warn("delegation failed", "sub_session_id", dctx.SessionID, "error", err.Error())
		return nil, derr
	}

	r.emitter.ToolPost(agent, dctx.SessionID, dctx.ParentSessionID)
	r.logger.Info("delegation completed", "sub_session_id", dctx.SessionID, "depth", dctx.Depth)

	return &core.DelegationResult{Response: turn.ResponseText, SessionID: dctx.SessionID}, nil
}

// DelegateResult runs Delegate and renders the outcome as the structured
// {success, response/session_id | error:{kind,message}} shape expected by
// tool surfaces. It never returns an error.
func (r *Router) DelegateResult(ctx context.Context, raw core.RawRequest, parent core.Parent) core.Result {
	res, err := r.Delegate(ctx, raw, parent)
	if err != nil {
		return core.ErrorResult(err)
	}
	return core.OKResult(res)
}

// aborted reports whether the engine failure is the caller's own cancellation
// observed before the turn resolved.
func aborted(ctx context.Context, err error) bool {
	return ctx.Err() != nil && errors.Is(err, ctx.Err())
}

// optional maps an empty string to a nil pointer for nullable event fields.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
