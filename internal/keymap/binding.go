package keymap

import (
	"github.com/google/uuid"

	"github.com/rgould/leadkey/internal/key"
)

// Binding associates an ordered key-press sequence with a command
// identifier. Bindings are replaced, never mutated in place; an edit
// produces a new Binding that takes the old one's position in the
// store's list.
type Binding struct {
	// ID is a stable handle for the binding across edits of the list.
	ID string `json:"id,omitempty"`

	// Command is the identifier invoked when the sequence completes.
	Command string `json:"command"`

	// Sequence is the ordered list of presses. It is never empty at
	// the time of insertion into the index.
	Sequence []key.Press `json:"sequence"`
}

// New creates a binding for the given command and press sequence.
func New(command string, seq []key.Press) Binding {
	presses := make([]key.Press, len(seq))
	copy(presses, seq)
	return Binding{
		ID:       uuid.NewString(),
		Command:  command,
		Sequence: presses,
	}
}

// Clone returns a copy of the binding with its own sequence slice.
func (b Binding) Clone() Binding {
	seq := make([]key.Press, len(b.Sequence))
	copy(seq, b.Sequence)
	b.Sequence = seq
	return b
}

// SequenceEquals returns true if the binding's sequence matches seq
// press for press.
func (b Binding) SequenceEquals(seq []key.Press) bool {
	if len(b.Sequence) != len(seq) {
		return false
	}
	for i, p := range b.Sequence {
		if p != seq[i] {
			return false
		}
	}
	return true
}

// String returns a display form like "C-b h -> editor:focus-left".
func (b Binding) String() string {
	return key.FormatSequence(b.Sequence) + " -> " + b.Command
}
