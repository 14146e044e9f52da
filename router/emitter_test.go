package router

import (
	"context"
	"testing"

	"github.com/hupe1980/taskmesh/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// panicBus panics on every publish.
type panicBus struct{ published int }

func (b *panicBus) Publish(string, any) {
	b.published++
	panic("subscriber blew up")
}

func TestEmitter_RecoversBusPanic(t *testing.T) {
	e := NewEmitter(&panicBus{}, nil)
	assert.NotPanics(t, func() {
		e.ToolError(nil, nil, "p", core.NewValidationError("missing instruction"))
	})
}

func TestEmitter_NilBusDropsEvents(t *testing.T) {
	e := NewEmitter(nil, nil)
	assert.NotPanics(t, func() {
		e.ToolPost(nil, "sub", "p")
	})
}

func TestDelegate_PanickingBusDoesNotAlterResult(t *testing.T) {
	bus := &panicBus{}
	engine := &stubEngine{}
	r := newTestRouter(t, engine, bus, 1)

	res, err := r.Delegate(context.Background(),
		core.RawRequest{Agent: "architect", Instruction: "do X"},
		core.Parent{SessionID: "p"},
	)
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Response)
	assert.Equal(t, 2, bus.published, "pre and post were both attempted")
}
