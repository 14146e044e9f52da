package session

import (
	"testing"

	"github.com/hupe1980/taskmesh/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore_CreateGet(t *testing.T) {
	s := NewInMemoryStore()

	created, err := s.Create("s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", created.ID)

	_, err = s.Create("s1")
	assert.Error(t, err, "ids are never reused")

	got, err := s.Get("s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", got.ID)

	_, err = s.Get("missing")
	assert.ErrorIs(t, err, core.ErrSessionNotFound)
}

func TestInMemoryStore_AppendMessage(t *testing.T) {
	s := NewInMemoryStore()
	_, err := s.Create("s1")
	require.NoError(t, err)

	require.NoError(t, s.AppendMessage("s1", core.Message{Role: "user", Text: "hi"}))
	require.NoError(t, s.AppendMessage("s1", core.Message{Role: "assistant", Text: "hello"}))

	got, err := s.Get("s1")
	require.NoError(t, err)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "user", got.Messages[0].Role)

	assert.ErrorIs(t, s.AppendMessage("missing", core.Message{}), core.ErrSessionNotFound)
}

func TestInMemoryStore_ClonesOnRead(t *testing.T) {
	s := NewInMemoryStore()
	_, err := s.Create("s1")
	require.NoError(t, err)
	require.NoError(t, s.ApplyDelta("s1", map[string]any{"system_prompt": "x"}))

	got, _ := s.Get("s1")
	got.SetState("system_prompt", "tampered")

	again, _ := s.Get("s1")
	v, _ := again.GetState("system_prompt")
	assert.Equal(t, "x", v)
}
