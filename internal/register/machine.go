package register

import (
	"github.com/rgould/leadkey/internal/key"
)

// State identifies the registration engine's position in the session.
type State uint8

const (
	// StateEmpty means no presses have been accepted yet.
	StateEmpty State = iota

	// StateFirstKey means the buffer holds exactly one press.
	StateFirstKey

	// StateAddedKeys means the buffer holds more than one press.
	StateAddedKeys

	// StateContinuedWaiting means a modifier-only press (or a
	// discarded tentative key) left the buffered content unchanged.
	StateContinuedWaiting

	// StateDeletedKey means a key was just removed via
	// backspace confirmation.
	StateDeletedKey

	// StatePendingAddition means the user just pressed Enter and the
	// engine is waiting to learn whether it was meant literally or as
	// a terminator.
	StatePendingAddition

	// StatePendingDeletion means the user just pressed Backspace and
	// the engine is waiting to learn whether it was meant literally or
	// as a delete-previous-key edit.
	StatePendingDeletion

	// StateFinished means the sequence was accepted. Terminal.
	StateFinished
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateFirstKey:
		return "first-key"
	case StateAddedKeys:
		return "added-keys"
	case StateContinuedWaiting:
		return "continued-waiting"
	case StateDeletedKey:
		return "deleted-key"
	case StatePendingAddition:
		return "pending-addition"
	case StatePendingDeletion:
		return "pending-deletion"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Pending returns true while the engine is waiting for a press that
// disambiguates a literal Enter or Backspace from a terminator.
func (s State) Pending() bool {
	return s == StatePendingAddition || s == StatePendingDeletion
}

// IsFinishChord reports whether p is the Ctrl+Alt+Enter chord that
// ends a registration session. The chord is recognized from any
// non-finished state, which is what lets a session end without a
// second disambiguation round.
func IsFinishChord(p key.Press) bool {
	return p.Key == "Enter" && p.Mods.HasCtrl() && p.Mods.HasAlt()
}

// Machine is the interactive registration engine. It accumulates the
// press sequence a user is teaching, resolving the literal-versus-
// terminator ambiguity of Enter and Backspace through a pending
// confirmation step. It runs independently of the matching engine and
// shares no state with it.
type Machine struct {
	state State
	seq   []key.Press
}

// NewMachine creates a registration engine with an empty buffer.
func NewMachine() *Machine {
	return &Machine{}
}

// Advance processes one press and returns the resulting state.
//
// A press arriving after Finished first resets the state to
// ContinuedWaiting, keeping the accepted buffer, and is then
// reprocessed; in practice callers close the session on Finished and
// never feed another press.
func (m *Machine) Advance(p key.Press) State {
	if m.state == StateFinished {
		m.state = StateContinuedWaiting
	}

	if IsFinishChord(p) {
		if m.state.Pending() {
			// The tentative special key was a terminator gesture
			// after all, never literal content.
			m.pop()
		}
		m.state = StateFinished
		return m.state
	}

	if m.state.Pending() {
		return m.disambiguate(p)
	}

	switch p.Classify() {
	case key.KindModifier:
		m.state = StateContinuedWaiting

	case key.KindSpecial:
		switch p.Key {
		case "Enter":
			// Tentatively included as if literal; the next press
			// decides.
			m.seq = append(m.seq, p)
			m.state = StatePendingAddition
		case "Backspace":
			m.seq = append(m.seq, p)
			m.state = StatePendingDeletion
		default:
			// Escape cancels at the session level, not here; the
			// buffer and state are left untouched.
		}

	case key.KindNormal:
		m.seq = append(m.seq, p)
		if len(m.seq) == 1 {
			m.state = StateFirstKey
		} else {
			m.state = StateAddedKeys
		}
	}

	return m.state
}

// disambiguate resolves a pending Enter/Backspace. The tentatively
// buffered special key is popped before the new press is evaluated and
// re-buffered whenever the engine stays pending.
func (m *Machine) disambiguate(p key.Press) State {
	special, ok := m.pop()

	switch {
	case p.IsEnter():
		// Plain Enter confirms the popped key was meant literally.
		if ok {
			m.seq = append(m.seq, special)
		}
		m.state = StateAddedKeys

	case p.IsBackspace() && m.state == StatePendingDeletion:
		// Deletion confirmed: the literal Backspace is discarded and
		// takes the key before it along.
		m.pop()
		m.state = StateDeletedKey

	case p.IsBackspace() && m.state == StatePendingAddition:
		// The literal Enter is discarded.
		m.state = StateContinuedWaiting

	default:
		// Still ambiguous; keep the special key buffered and wait for
		// a disambiguating press.
		if ok {
			m.seq = append(m.seq, special)
		}
	}

	return m.state
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Sequence returns a copy of the accepted press buffer.
func (m *Machine) Sequence() []key.Press {
	out := make([]key.Press, len(m.seq))
	copy(out, m.seq)
	return out
}

// Reset discards all buffered state for a fresh session.
func (m *Machine) Reset() {
	m.state = StateEmpty
	m.seq = m.seq[:0]
}

// pop removes and returns the last buffered press.
func (m *Machine) pop() (key.Press, bool) {
	if len(m.seq) == 0 {
		return key.Press{}, false
	}
	p := m.seq[len(m.seq)-1]
	m.seq = m.seq[:len(m.seq)-1]
	return p, true
}
