package router

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"testing"

	"github.com/hupe1980/taskmesh/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorderBus captures published events in order.
type recorderBus struct {
	mu     sync.Mutex
	names  []string
	events []any
}

func (b *recorderBus) Publish(name string, payload any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.names = append(b.names, name)
	b.events = append(b.events, payload)
}

func (b *recorderBus) Names() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.names...)
}

// stubRegistry resolves a fixed set of agents.
type stubRegistry struct {
	agents map[string]*core.AgentConfig
}

func (r *stubRegistry) Resolve(name string) (*core.AgentConfig, error) {
	if cfg, ok := r.agents[name]; ok {
		return cfg, nil
	}
	return nil, fmt.Errorf("%q: %w", name, core.ErrAgentNotFound)
}

func (r *stubRegistry) List() []string {
	names := make([]string, 0, len(r.agents))
	for name := range r.agents {
		names = append(names, name)
	}
	return names
}

// stubEngine records the turn requests it receives.
type stubEngine struct {
	mu    sync.Mutex
	calls []core.TurnRequest
	run   func(ctx context.Context, req core.TurnRequest) (*core.TurnResult, error)
}

func (e *stubEngine) RunTurn(ctx context.Context, req core.TurnRequest) (*core.TurnResult, error) {
	e.mu.Lock()
	e.calls = append(e.calls, req)
	e.mu.Unlock()
	if e.run != nil {
		return e.run(ctx, req)
	}
	return &core.TurnResult{ResponseText: "ok"}, nil
}

func (e *stubEngine) callCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.calls)
}

func newTestRouter(t *testing.T, engine *stubEngine, bus core.EventBus, maxDepth int) *Router {
	t.Helper()
	registry := &stubRegistry{agents: map[string]*core.AgentConfig{
		"architect":              {Name: "architect", SystemPrompt: "You design systems."},
		"foundation:code-review": {Name: "foundation:code-review"},
	}}
	r, err := New(registry, engine, bus, func(o *Options) { o.MaxDepth = maxDepth })
	require.NoError(t, err)
	return r
}

func TestNew_Validation(t *testing.T) {
	engine := &stubEngine{}
	registry := &stubRegistry{}

	_, err := New(nil, engine, nil)
	assert.Equal(t, core.ErrorKindConfig, core.KindOf(err))

	_, err = New(registry, nil, nil)
	assert.Equal(t, core.ErrorKindConfig, core.KindOf(err))

	_, err = New(registry, engine, nil, func(o *Options) { o.MaxDepth = -1 })
	assert.Equal(t, core.ErrorKindConfig, core.KindOf(err))

	r, err := New(registry, engine, nil)
	require.NoError(t, err)
	assert.Equal(t, core.DefaultMaxDepth, r.MaxDepth())
}

func TestDelegate_SpawnSuccess(t *testing.T) {
	bus := &recorderBus{}
	engine := &stubEngine{run: func(_ context.Context, req core.TurnRequest) (*core.TurnResult, error) {
		return &core.TurnResult{ResponseText: "designed"}, nil
	}}
	r := newTestRouter(t, engine, bus, 1)

	res, err := r.Delegate(context.Background(),
		core.RawRequest{Agent: "architect", Instruction: "Design a cache"},
		core.Parent{SessionID: "p", Depth: 0},
	)
	require.NoError(t, err)
	assert.Equal(t, "designed", res.Response)
	assert.Regexp(t, regexp.MustCompile(`^p-architect-[0-9a-f]{32}$`), res.SessionID)

	require.Equal(t, []string{core.EventToolPre, core.EventToolPost}, bus.Names())

	pre := bus.events[0].(core.ToolPrePayload)
	assert.Equal(t, core.ToolName, pre.Tool)
	require.NotNil(t, pre.Agent)
	assert.Equal(t, "architect", *pre.Agent)
	assert.Equal(t, "Design a cache", pre.Instruction)
	assert.Equal(t, res.SessionID, pre.SubSessionID)
	assert.Equal(t, "p", pre.ParentSessionID)
	assert.Equal(t, 1, pre.Depth)

	post := bus.events[1].(core.ToolPostPayload)
	assert.Equal(t, "ok", post.Status)
	assert.Equal(t, res.SessionID, post.SubSessionID)

	require.Equal(t, 1, engine.callCount())
	call := engine.calls[0]
	assert.True(t, call.IsNew)
	require.NotNil(t, call.AgentConfig)
	assert.Equal(t, "You design systems.", call.AgentConfig.SystemPrompt)
}

func TestDelegate_ResumeKeepsIdentity(t *testing.T) {
	bus := &recorderBus{}
	engine := &stubEngine{}
	r := newTestRouter(t, engine, bus, 1)

	res, err := r.Delegate(context.Background(),
		core.RawRequest{SessionID: "p-architect-abc123", Instruction: "Add TTL"},
		core.Parent{SessionID: "p", Depth: 0},
	)
	require.NoError(t, err)
	assert.Equal(t, "p-architect-abc123", res.SessionID)

	require.Equal(t, 1, engine.callCount())
	call := engine.calls[0]
	assert.False(t, call.IsNew)
	assert.Nil(t, call.AgentConfig)
	assert.Equal(t, "p-architect-abc123", call.SessionID)

	require.Equal(t, []string{core.EventToolPre, core.EventToolPost}, bus.Names())
	pre := bus.events[0].(core.ToolPrePayload)
	assert.Nil(t, pre.Agent)
	post := bus.events[1].(core.ToolPostPayload)
	assert.Nil(t, post.Agent)
}

func TestDelegate_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		raw  core.RawRequest
	}{
		{"missing instruction", core.RawRequest{Agent: "architect"}},
		{"both agent and session_id", core.RawRequest{Agent: "a", SessionID: "s", Instruction: "x"}},
		{"neither agent nor session_id", core.RawRequest{Instruction: "do X"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := &recorderBus{}
			engine := &stubEngine{}
			r := newTestRouter(t, engine, bus, 1)

			_, err := r.Delegate(context.Background(), tt.raw, core.Parent{SessionID: "p"})
			assert.Equal(t, core.ErrorKindValidation, core.KindOf(err))
			assert.Equal(t, 0, engine.callCount(), "engine must not be called")
			require.Equal(t, []string{core.EventToolError}, bus.Names())

			payload := bus.events[0].(core.ToolErrorPayload)
			assert.Nil(t, payload.SubSessionID, "no identity was resolved")
			assert.Equal(t, "p", payload.ParentSessionID)
		})
	}
}

func TestDelegate_DepthExceeded(t *testing.T) {
	bus := &recorderBus{}
	engine := &stubEngine{}
	r := newTestRouter(t, engine, bus, 1)

	_, err := r.Delegate(context.Background(),
		core.RawRequest{Agent: "architect", Instruction: "go deeper"},
		core.Parent{SessionID: "p-architect-abc", Depth: 1},
	)
	assert.Equal(t, core.ErrorKindDepthExceeded, core.KindOf(err))
	assert.Equal(t, 0, engine.callCount(), "hard stop: no engine call")
	require.Equal(t, []string{core.EventToolError}, bus.Names())
}

func TestDelegate_AgentNotFound(t *testing.T) {
	bus := &recorderBus{}
	engine := &stubEngine{}
	r := newTestRouter(t, engine, bus, 1)

	_, err := r.Delegate(context.Background(),
		core.RawRequest{Agent: "nonexistent", Instruction: "do X"},
		core.Parent{SessionID: "p"},
	)
	assert.Equal(t, core.ErrorKindAgentNotFound, core.KindOf(err))
	assert.ErrorIs(t, err, core.ErrAgentNotFound)
	assert.Equal(t, 0, engine.callCount())
	require.Equal(t, []string{core.EventToolError}, bus.Names())
}

func TestDelegate_EngineFailure(t *testing.T) {
	bus := &recorderBus{}
	boom := errors.New("engine exploded")
	engine := &stubEngine{run: func(context.Context, core.TurnRequest) (*core.TurnResult, error) {
		return nil, boom
	}}
	r := newTestRouter(t, engine, bus, 1)

	_, err := r.Delegate(context.Background(),
		core.RawRequest{Agent: "architect", Instruction: "do X"},
		core.Parent{SessionID: "p"},
	)
	assert.Equal(t, core.ErrorKindEngine, core.KindOf(err))
	assert.ErrorIs(t, err, boom)

	require.Equal(t, []string{core.EventToolPre, core.EventToolError}, bus.Names())
	payload := bus.events[1].(core.ToolErrorPayload)
	require.NotNil(t, payload.SubSessionID)
	assert.Contains(t, payload.Error, "engine exploded")
}

func TestDelegate_CallerCancellationSkipsTerminalEvent(t *testing.T) {
	bus := &recorderBus{}
	ctx, cancel := context.WithCancel(context.Background())
	engine := &stubEngine{run: func(ctx context.Context, _ core.TurnRequest) (*core.TurnResult, error) {
		cancel()
		return nil, ctx.Err()
	}}
	r := newTestRouter(t, engine, bus, 1)

	_, err := r.Delegate(ctx,
		core.RawRequest{Agent: "architect", Instruction: "do X"},
		core.Parent{SessionID: "p"},
	)
	require.Error(t, err)
	assert.Equal(t, core.ErrorKindEngine, core.KindOf(err))
	assert.ErrorIs(t, err, context.Canceled)

	// the attempt never resolved: tool:pre only, no terminal event
	require.Equal(t, []string{core.EventToolPre}, bus.Names())
}

func TestDelegate_ConcurrentSpawnsGetDistinctIDs(t *testing.T) {
	engine := &stubEngine{}
	r := newTestRouter(t, engine, nil, 1)

	const n = 64
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := r.Delegate(context.Background(),
				core.RawRequest{Agent: "architect", Instruction: "parallel"},
				core.Parent{SessionID: "p"},
			)
			if err == nil {
				ids <- res.SessionID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]struct{}{}
	for id := range ids {
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, n)
}

func TestDelegateResult(t *testing.T) {
	engine := &stubEngine{}
	r := newTestRouter(t, engine, nil, 1)

	res := r.DelegateResult(context.Background(),
		core.RawRequest{Agent: "architect", Instruction: "do X"},
		core.Parent{SessionID: "p"},
	)
	assert.True(t, res.Success)
	assert.Equal(t, "ok", res.Response)
	assert.NotEmpty(t, res.SessionID)

	res = r.DelegateResult(context.Background(),
		core.RawRequest{Instruction: "do X"},
		core.Parent{SessionID: "p"},
	)
	assert.False(t, res.Success)
	require.NotNil(t, res.Error)
	assert.Equal(t, core.ErrorKindValidation, res.Error.Kind)
}
