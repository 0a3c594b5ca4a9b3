package match

import (
	"errors"
	"fmt"

	"github.com/rgould/leadkey/internal/key"
	"github.com/rgould/leadkey/internal/keymap"
)

// Errors reported by the matching engine.
var (
	// ErrNoMatch indicates FullMatch was called outside a Success run.
	ErrNoMatch = errors.New("no completed match")

	// ErrAmbiguousMatch indicates the engine reached Success with more
	// than one candidate binding. This is an internal invariant
	// violation; the caller must not invoke any of the candidates.
	ErrAmbiguousMatch = errors.New("ambiguous match")
)

// State identifies the matching engine's position in the current run.
type State uint8

const (
	// StateIdle means no input is pending.
	StateIdle State = iota

	// StateStarted means the first press of a run began a still
	// ambiguous prefix.
	StateStarted

	// StateRetained means a modifier-only keystroke was absorbed
	// without changing the prefix.
	StateRetained

	// StateImproved means an additional press kept the prefix valid
	// and still ambiguous.
	StateImproved

	// StateSuccess means the prefix is an exact, unambiguous full
	// match. Terminal for the run.
	StateSuccess

	// StateInvalid means the prefix stopped matching anything.
	// Terminal for the run.
	StateInvalid
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarted:
		return "started"
	case StateRetained:
		return "retained"
	case StateImproved:
		return "improved"
	case StateSuccess:
		return "success"
	case StateInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Terminal returns true for the states that end a run.
func (s State) Terminal() bool {
	return s == StateSuccess || s == StateInvalid
}

// InProgress returns true while a run is accumulating presses.
func (s State) InProgress() bool {
	return s == StateStarted || s == StateRetained || s == StateImproved
}

// Result is the outcome of advancing the engine by one press.
type Result struct {
	// State is the engine state after the press.
	State State

	// Consumed reports whether the caller must suppress the host's
	// default handling of the keystroke. It is false only for bare
	// modifiers at idle and for a first press that matches nothing.
	Consumed bool
}

// Machine consumes one press at a time against a trie snapshot and
// classifies the current run. It is purely event driven: one call to
// Advance fully consumes one press and returns the resulting state.
type Machine struct {
	index   *keymap.Trie
	state   State
	seq     []key.Press
	matches []*keymap.Binding
}

// NewMachine creates a matching engine over the given index snapshot.
func NewMachine(index *keymap.Trie) *Machine {
	if index == nil {
		index = keymap.NewTrie()
	}
	return &Machine{index: index}
}

// Advance processes one press and returns the resulting state. A
// press arriving in a terminal state first resets the engine, then is
// reprocessed against the fresh state, so one keystroke can both end
// the previous run and begin a new one.
func (m *Machine) Advance(p key.Press) Result {
	// Terminal states reset and fall through rather than recursing;
	// the same press is then handled exactly once below.
	if m.state.Terminal() {
		m.reset()
	}

	if p.Classify() == key.KindModifier {
		if m.state == StateIdle {
			// A bare modifier tap must never start a sequence.
			return Result{State: StateIdle}
		}
		m.state = StateRetained
		return Result{State: StateRetained, Consumed: true}
	}

	first := len(m.seq) == 0
	m.seq = append(m.seq, p)

	node := m.index.BestMatch(m.seq)
	if node == nil {
		if first {
			// A single stray key with no match at all passes through
			// without even flashing a transient state.
			m.reset()
			return Result{State: StateIdle}
		}
		m.state = StateInvalid
		m.matches = nil
		return Result{State: StateInvalid, Consumed: true}
	}

	m.matches = node.LeafValues()
	if node.IsLeaf() {
		m.state = StateSuccess
		return Result{State: StateSuccess, Consumed: true}
	}

	if first {
		m.state = StateStarted
	} else {
		m.state = StateImproved
	}
	return Result{State: m.state, Consumed: true}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Sequence returns a copy of the presses accumulated in this run.
// Modifier-only keystrokes absorbed via Retained are not included.
func (m *Machine) Sequence() []key.Press {
	out := make([]key.Press, len(m.seq))
	copy(out, m.seq)
	return out
}

// AllMatches returns every binding still reachable from the current
// prefix. During Started/Improved this answers "what could this run
// still become"; on Success it holds the completed candidates.
func (m *Machine) AllMatches() []*keymap.Binding {
	out := make([]*keymap.Binding, len(m.matches))
	copy(out, m.matches)
	return out
}

// FullMatch returns the single unambiguous binding of a Success run.
// It fails with ErrAmbiguousMatch when more than one binding resolves;
// the caller must treat that as no match rather than pick arbitrarily.
func (m *Machine) FullMatch() (*keymap.Binding, error) {
	if m.state != StateSuccess {
		return nil, ErrNoMatch
	}
	if len(m.matches) != 1 {
		return nil, fmt.Errorf("%w: %d bindings terminate at %q",
			ErrAmbiguousMatch, len(m.matches), key.FormatSequence(m.seq))
	}
	return m.matches[0], nil
}

// SetIndex swaps in a new trie snapshot and resets the current run.
func (m *Machine) SetIndex(index *keymap.Trie) {
	if index == nil {
		index = keymap.NewTrie()
	}
	m.index = index
	m.reset()
}

// Reset returns the engine to idle, discarding the current run.
func (m *Machine) Reset() {
	m.reset()
}

func (m *Machine) reset() {
	m.state = StateIdle
	m.seq = m.seq[:0]
	m.matches = nil
}
