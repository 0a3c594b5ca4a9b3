package app

import (
	"errors"
	"testing"

	"github.com/rgould/leadkey/internal/key"
	"github.com/rgould/leadkey/internal/register"
)

func feed(t *testing.T, s *Session, specs ...string) {
	t.Helper()
	for _, spec := range specs {
		s.HandleKey(key.MustParse(spec))
	}
}

func TestSessionCommitAddsBinding(t *testing.T) {
	store := newTestStore(t, map[string]string{"C-b h": "editor:focus-left"})
	s := NewSession(store, "app:greet")

	feed(t, s, "g", "g", "Ctrl+Alt+Enter")
	if !s.Finished() {
		t.Fatalf("State() = %v, want finished", s.State())
	}

	b, err := s.Commit()
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if b.Command != "app:greet" {
		t.Errorf("Command = %q, want app:greet", b.Command)
	}
	if b.ID == "" {
		t.Error("committed binding has no ID")
	}

	if node := store.Index().BestMatch(key.MustParseSequence("g g")); node == nil || !node.IsLeaf() {
		t.Error("committed sequence not retrievable from the index")
	}
}

func TestSessionCommitBeforeFinish(t *testing.T) {
	store := newTestStore(t, nil)
	s := NewSession(store, "app:greet")

	feed(t, s, "g")
	if _, err := s.Commit(); !errors.Is(err, ErrSessionNotFinished) {
		t.Errorf("Commit() error = %v, want ErrSessionNotFinished", err)
	}
}

func TestSessionEmptyRegistration(t *testing.T) {
	store := newTestStore(t, nil)
	s := NewSession(store, "app:greet")

	feed(t, s, "Ctrl+Alt+Enter")
	if _, err := s.Commit(); !errors.Is(err, ErrEmptyRegistration) {
		t.Errorf("Commit() error = %v, want ErrEmptyRegistration", err)
	}
}

func TestSessionConflictIsRecoverable(t *testing.T) {
	store := newTestStore(t, map[string]string{"C-b h": "editor:focus-left"})
	s := NewSession(store, "app:greet")

	// The exact sequence of an existing binding.
	feed(t, s, "C-b", "h", "Ctrl+Alt+Enter")
	_, err := s.Commit()
	if !errors.Is(err, ErrConflictingSequence) {
		t.Fatalf("Commit() error = %v, want ErrConflictingSequence", err)
	}

	// The store was not touched.
	if got := len(store.List()); got != 1 {
		t.Fatalf("len(List()) = %d after rejected commit, want 1", got)
	}

	// Reopen and teach a free sequence for the same command.
	s.Reopen()
	if s.State() != register.StateEmpty {
		t.Fatalf("State() = %v after Reopen, want empty", s.State())
	}
	feed(t, s, "g", "Ctrl+Alt+Enter")
	if _, err := s.Commit(); err != nil {
		t.Fatalf("Commit() after Reopen error = %v", err)
	}
}

func TestSessionPrefixConflict(t *testing.T) {
	store := newTestStore(t, map[string]string{"C-b h": "editor:focus-left"})
	s := NewSession(store, "app:greet")

	// A strict prefix of an existing binding is also taken.
	feed(t, s, "C-b", "Ctrl+Alt+Enter")
	if _, err := s.Commit(); !errors.Is(err, ErrConflictingSequence) {
		t.Errorf("Commit() error = %v, want ErrConflictingSequence", err)
	}
}

func TestSessionCancel(t *testing.T) {
	store := newTestStore(t, nil)
	s := NewSession(store, "app:greet")

	feed(t, s, "g", "g")
	s.Cancel()

	if s.State() != register.StateEmpty {
		t.Errorf("State() = %v after Cancel, want empty", s.State())
	}
	if got := len(s.Sequence()); got != 0 {
		t.Errorf("len(Sequence()) = %d after Cancel, want 0", got)
	}
	if got := len(store.List()); got != 0 {
		t.Errorf("len(List()) = %d after Cancel, want 0", got)
	}
}

func TestSessionLiteralEnterCommit(t *testing.T) {
	store := newTestStore(t, nil)
	s := NewSession(store, "app:greet")

	// h, tentative Enter confirmed literally, then finish.
	feed(t, s, "h", "Enter", "Enter", "Ctrl+Alt+Enter")
	b, err := s.Commit()
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	want := []key.Press{key.MustParse("h"), key.MustParse("Enter")}
	if len(b.Sequence) != len(want) {
		t.Fatalf("len(Sequence) = %d, want %d", len(b.Sequence), len(want))
	}
	for i := range want {
		if b.Sequence[i] != want[i] {
			t.Errorf("Sequence[%d] = %v, want %v", i, b.Sequence[i], want[i])
		}
	}
}
