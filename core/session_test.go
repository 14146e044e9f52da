package core

import "testing"

func TestSession_ApplyStateDeltaAndClone(t *testing.T) {
	s := NewSession("s1")

	delta := map[string]any{"a": 1, "b": "x"}

	s.ApplyStateDelta(delta)
	if v, ok := s.GetState("a"); !ok || v.(int) != 1 {
		t.Fatalf("State not applied: %+v", s.State)
	}

	clone := s.Clone()
	if clone == s {
		t.Error("Clone should be a different pointer")
	}

	clone.SetState("c", 2)
	if _, exists := s.GetState("c"); exists {
		t.Error("Original should not have clone's new key")
	}
}

func TestSession_Transcript(t *testing.T) {
	s := NewSession("s2")
	s.AddMessage(Message{Role: "user", Text: "hi"})
	s.AddMessage(Message{Role: "assistant", Text: "hello"})

	msgs := s.GetMessages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Timestamp.IsZero() {
		t.Error("expected AddMessage to stamp messages")
	}

	msgs[0].Text = "changed"
	if s.GetMessages()[0].Text != "hi" {
		t.Error("transcript slice should be copied on read")
	}
}
