package viewmodel

import "testing"

func TestModel(t *testing.T) {
	m := New()
	if got := m.Username(); got != "" {
		t.Fatalf("new model username = %q, want empty", got)
	}

	m.SetUser(User{Username: "alice"})
	if got := m.Username(); got != "alice" {
		t.Errorf("Username() = %q, want alice", got)
	}

	m.Reset()
	if got := m.User(); got != (User{}) {
		t.Errorf("after Reset User() = %+v, want zero", got)
	}
}
