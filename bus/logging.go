package bus

import (
	"github.com/hupe1980/taskmesh/core"
	"github.com/hupe1980/taskmesh/logging"
)

// Logging is an EventBus that records every published event through a Logger.
// Useful as a default observer in services that have structured logging but
// no dedicated event pipeline.
type Logging struct {
	logger logging.Logger
}

// NewLogging constructs a logging bus.
func NewLogging(logger logging.Logger) *Logging {
	return &Logging{logger: logging.OrNoOp(logger)}
}

// Publish implements core.EventBus.
func (b *Logging) Publish(name string, payload any) {
	b.logger.Info("lifecycle event", "event", name, "payload", payload)
}

var _ core.EventBus = (*Logging)(nil)
