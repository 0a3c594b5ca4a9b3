package command

import (
	"errors"
	"testing"
)

func TestRegisterAndInvoke(t *testing.T) {
	r := NewRegistry()

	var calls int
	if err := r.Register("app:greet", "Greet", func() { calls++ }); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := r.Invoke("app:greet"); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRegisterEmptyID(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("", "Nameless", nil); err == nil {
		t.Error("Register(\"\") error = nil, want error")
	}
}

func TestRegisterReplaces(t *testing.T) {
	r := NewRegistry()

	var first, second int
	r.Register("app:greet", "Greet", func() { first++ })
	r.Register("app:greet", "Greet again", func() { second++ })

	r.Invoke("app:greet")
	if first != 0 || second != 1 {
		t.Errorf("calls = %d/%d, want 0/1", first, second)
	}

	info, ok := r.Get("app:greet")
	if !ok || info.Name != "Greet again" {
		t.Errorf("Get() = %+v, %v, want the replacement", info, ok)
	}
}

func TestInvokeUnknown(t *testing.T) {
	r := NewRegistry()
	if err := r.Invoke("nope"); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("Invoke() error = %v, want ErrUnknownCommand", err)
	}
}

func TestInvokeNilHandler(t *testing.T) {
	r := NewRegistry()
	r.Register("app:noop", "Noop", nil)
	if err := r.Invoke("app:noop"); err != nil {
		t.Errorf("Invoke() error = %v, want nil", err)
	}
}

func TestListSorted(t *testing.T) {
	r := NewRegistry()
	r.Register("pane:focus-up", "Focus up", nil)
	r.Register("app:quit", "Quit", nil)
	r.Register("pane:focus-down", "Focus down", nil)

	list := r.List()
	want := []string{"app:quit", "pane:focus-down", "pane:focus-up"}
	if len(list) != len(want) {
		t.Fatalf("len(List()) = %d, want %d", len(list), len(want))
	}
	for i, id := range want {
		if list[i].ID != id {
			t.Errorf("List()[%d].ID = %q, want %q", i, list[i].ID, id)
		}
	}
}
