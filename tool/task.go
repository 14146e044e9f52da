package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/taskmesh/core"
	"github.com/hupe1980/taskmesh/internal/util"
	"github.com/hupe1980/taskmesh/logging"
	"github.com/hupe1980/taskmesh/router"
)

// Options holds overrides passed to New().
type Options struct {
	// History exposes parent transcripts for context inheritance. When nil
	// the inherit_context parameter is accepted but yields no context.
	History HistoryProvider

	// RecentTurns is the turn count used for inherit_context "recent" when
	// the caller supplies none.
	RecentTurns int

	// Logger receives structured diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// TaskTool delegates tasks to specialized agents via sub-sessions. It is a
// thin model-facing surface over the router: it validates arguments against
// its schema, applies caller-controlled context inheritance for spawns, and
// always answers with a structured Result rather than an error.
type TaskTool struct {
	router      *router.Router
	registry    core.AgentRegistry
	history     HistoryProvider
	recentTurns int
	logger      logging.Logger
}

// New constructs the task tool over a router and the registry backing its
// dynamic description.
func New(r *router.Router, registry core.AgentRegistry, optFns ...func(o *Options)) *TaskTool {
	opts := Options{
		RecentTurns: DefaultRecentTurns,
		Logger:      logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &TaskTool{
		router:      r,
		registry:    registry,
		history:     opts.History,
		recentTurns: opts.RecentTurns,
		logger:      logging.OrNoOp(opts.Logger),
	}
}

// Name returns the tool identifier used in event payloads and tool registries.
func (t *TaskTool) Name() string { return core.ToolName }

// Description generates a dynamic description with the currently registered
// agents so models always see an up-to-date list.
func (t *TaskTool) Description() string {
	names := t.registry.List()
	if len(names) == 0 {
		return "The task tool is currently unavailable because there are no registered agents."
	}

	var b strings.Builder
	b.WriteString("Launch a specialized agent in an isolated sub-session to handle a complex, multi-step task autonomously.\n\n")
	b.WriteString("Provide 'agent' plus 'instruction' to spawn a new sub-session, or 'session_id' plus 'instruction' to resume one. ")
	b.WriteString("Each response carries the session_id to use for follow-up turns. ")
	b.WriteString("The instruction should be a complete, self-contained task description including what the agent must return.\n\n")
	b.WriteString("Available agent types:\n")
	for _, name := range names {
		desc := "No description"
		if cfg, err := t.registry.Resolve(name); err == nil && cfg.Description != "" {
			desc = cfg.Description
		}
		fmt.Fprintf(&b, "  - %s: %s\n", name, desc)
	}
	return b.String()
}

// Parameters returns the JSON schema describing the tool input. It supports
// both spawn (agent + instruction) and resume (session_id + instruction).
func (t *TaskTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"agent": map[string]any{
				"type":        "string",
				"description": "Agent name for spawning a new sub-session (e.g. 'foundation:zen-architect')",
			},
			"session_id": map[string]any{
				"type":        "string",
				"description": "Session ID to resume (from a previous spawn/resume response)",
			},
			"instruction": map[string]any{
				"type":        "string",
				"description": "Task instruction for the agent",
			},
			"inherit_context": map[string]any{
				"type":        "string",
				"enum":        []string{"none", "recent", "all"},
				"description": "Context inheritance mode: 'none' (default) starts fresh, 'recent' passes the last N turns, 'all' passes the full conversation history",
			},
			"inherit_context_turns": map[string]any{
				"type":        "integer",
				"description": "Number of recent turns when inherit_context is 'recent' (default: 5)",
			},
		},
		"required": []string{"instruction"},
	}
}

// Call executes a delegation with structured arguments. The parent invocation
// context is passed explicitly. It never returns a Go error: every failure is
// rendered as a structured {success:false, error:{kind,message}} result.
func (t *TaskTool) Call(ctx context.Context, parent core.Parent, args map[string]any) core.Result {
	if err := util.ValidateParameters(args, t.Parameters()); err != nil {
		return core.ErrorResult(core.NewValidationError(err.Error()))
	}

	raw := core.RawRequest{
		Agent:       stringArg(args, "agent"),
		SessionID:   stringArg(args, "session_id"),
		Instruction: stringArg(args, "instruction"),
	}

	// Context inheritance applies to spawns only; resumed sessions already
	// own their history.
	if strings.TrimSpace(raw.Agent) != "" {
		raw.Instruction = t.inheritInstruction(raw.Instruction, parent.SessionID, args)
	}

	return t.router.DelegateResult(ctx, raw, parent)
}

// CallInline handles the legacy single-string "agent: instruction" format as
// a degenerate spawn request.
func (t *TaskTool) CallInline(ctx context.Context, parent core.Parent, input string) core.Result {
	raw, err := core.ParseInline(input)
	if err != nil {
		return core.ErrorResult(err)
	}
	return t.router.DelegateResult(ctx, raw, parent)
}

func (t *TaskTool) inheritInstruction(instruction, parentSessionID string, args map[string]any) string {
	mode := InheritMode(stringArg(args, "inherit_context"))
	if mode == "" || mode == InheritNone || t.history == nil || parentSessionID == "" {
		return instruction
	}

	msgs, err := t.history.Messages(parentSessionID)
	if err != nil {
		t.logger.Warn("failed to extract parent messages", "parent_session_id", parentSessionID, "error", err.Error())
		return instruction
	}

	if mode == InheritRecent {
		turns := t.recentTurns
		if v, ok := intArg(args, "inherit_context_turns"); ok {
			turns = v
		}
		msgs = RecentTurns(msgs, turns)
	}

	contextText := FormatParentContext(msgs)
	if contextText == "" {
		return instruction
	}
	t.logger.Debug("inherited parent context", "parent_session_id", parentSessionID, "messages", len(msgs))
	return fmt.Sprintf("%s\n\n[YOUR TASK]\n%s", contextText, instruction)
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func intArg(args map[string]any, key string) (int, bool) {
	switch v := args[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64: // JSON numbers decode as float64
		return int(v), true
	default:
		return 0, false
	}
}
