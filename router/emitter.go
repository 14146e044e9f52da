package router

import (
	"github.com/hupe1980/taskmesh/core"
	"github.com/hupe1980/taskmesh/logging"
)

// Emitter formats and dispatches lifecycle events to an EventBus. Dispatch is
// fire-and-forget: the emitter never blocks the router's result on subscriber
// success and never raises to the caller. A panicking bus is recovered and
// logged so it cannot alter the delegation outcome already computed.
type Emitter struct {
	bus    core.EventBus
	logger logging.Logger
}

// NewEmitter constructs an Emitter. A nil bus yields an emitter that drops
// every event, which keeps the router usable without observability wiring.
func NewEmitter(bus core.EventBus, logger logging.Logger) *Emitter {
	return &Emitter{bus: bus, logger: logging.OrNoOp(logger)}
}

// ToolPre signals a delegation attempt is underway with resolved identity.
func (e *Emitter) ToolPre(agent *string, instruction, subSessionID, parentSessionID string, depth int) {
	e.emit(core.NewToolPreEvent(agent, instruction, subSessionID, parentSessionID, depth))
}

// ToolPost signals the engine call completed successfully.
func (e *Emitter) ToolPost(agent *string, subSessionID, parentSessionID string) {
	e.emit(core.NewToolPostEvent(agent, subSessionID, parentSessionID))
}

// ToolError reports a failed delegation. subSessionID is nil for failures
// detected before an identity was resolved.
func (e *Emitter) ToolError(agent, subSessionID *string, parentSessionID string, err error) {
	e.emit(core.NewToolErrorEvent(agent, subSessionID, parentSessionID, err))
}

func (e *Emitter) emit(ev core.Event) {
	if e.bus == nil {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			e.logger.Warn("event dispatch panicked", "event", ev.Name, "event_id", ev.ID, "panic", rec)
		}
	}()
	e.bus.Publish(ev.Name, ev.Payload)
	e.logger.Debug("event dispatched", "event", ev.Name, "event_id", ev.ID)
}
