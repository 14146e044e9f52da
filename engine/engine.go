package engine

import (
	"context"
	"fmt"

	"github.com/hupe1980/taskmesh/core"
	"github.com/hupe1980/taskmesh/logging"
	"github.com/hupe1980/taskmesh/model"
	"github.com/hupe1980/taskmesh/session"
)

// State keys the engine pins into a session at spawn time so resumes
// re-attach to the same configuration without a registry lookup.
const (
	stateAgent        = "agent"
	stateSystemPrompt = "system_prompt"
	stateModel        = "model"
	stateTemperature  = "temperature"
)

// Options holds dependency + configuration overrides passed to New().
type Options struct {
	// SessionStore persists transcripts. Defaults to in-memory.
	SessionStore core.SessionStore

	// Logger receives structured diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Engine executes conversation turns for sub-sessions. Public methods are
// safe for concurrent use as long as the underlying store is; the engine
// itself keeps no per-turn state. Concurrent resumes of one session id are
// not serialized here.
type Engine struct {
	store  core.SessionStore
	model  model.Model
	logger logging.Logger
}

// New constructs an Engine around a model with optional overrides.
func New(mdl model.Model, optFns ...func(o *Options)) *Engine {
	opts := Options{
		SessionStore: session.NewInMemoryStore(),
		Logger:       logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Engine{
		store:  opts.SessionStore,
		model:  mdl,
		logger: logging.OrNoOp(opts.Logger),
	}
}

// RunTurn implements core.SessionEngine.
func (e *Engine) RunTurn(ctx context.Context, req core.TurnRequest) (*core.TurnResult, error) {
	if req.SessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}
	if req.Instruction == "" {
		return nil, fmt.Errorf("instruction is required")
	}

	if req.IsNew {
		if _, err := e.store.Create(req.SessionID); err != nil {
			return nil, fmt.Errorf("failed to create session: %w", err)
		}
		if req.AgentConfig != nil {
			delta := map[string]any{
				stateAgent:        req.AgentConfig.Name,
				stateSystemPrompt: req.AgentConfig.SystemPrompt,
				stateModel:        req.AgentConfig.Model,
				stateTemperature:  req.AgentConfig.Temperature,
			}
			if err := e.store.ApplyDelta(req.SessionID, delta); err != nil {
				return nil, fmt.Errorf("failed to pin agent config: %w", err)
			}
		}
		e.logger.Info("session spawned", "session_id", req.SessionID)
	}

	if err := e.store.AppendMessage(req.SessionID, core.Message{Role: "user", Text: req.Instruction}); err != nil {
		return nil, fmt.Errorf("failed to append instruction: %w", err)
	}

	sess, err := e.store.Get(req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	respCh, errCh := e.model.Generate(ctx, e.buildRequest(sess))
	resp, err := model.Final(ctx, respCh, errCh)
	if err != nil {
		e.logger.Warn("turn execution failed", "session_id", req.SessionID, "error", err.Error())
		return nil, fmt.Errorf("turn execution failed: %w", err)
	}

	if err := e.store.AppendMessage(req.SessionID, core.Message{Role: "assistant", Text: resp.Text}); err != nil {
		return nil, fmt.Errorf("failed to append response: %w", err)
	}

	e.logger.Debug("turn completed", "session_id", req.SessionID, "model", e.model.Info().Name)

	return &core.TurnResult{ResponseText: resp.Text}, nil
}

func (e *Engine) buildRequest(sess *core.Session) model.Request {
	req := model.Request{Messages: sess.GetMessages()}
	if v, ok := sess.GetState(stateSystemPrompt); ok {
		req.System, _ = v.(string)
	}
	if v, ok := sess.GetState(stateModel); ok {
		req.Model, _ = v.(string)
	}
	if v, ok := sess.GetState(stateTemperature); ok {
		req.Temperature, _ = v.(float64)
	}
	return req
}

var _ core.SessionEngine = (*Engine)(nil)
