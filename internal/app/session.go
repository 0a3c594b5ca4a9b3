package app

import (
	"errors"
	"fmt"

	"github.com/rgould/leadkey/internal/key"
	"github.com/rgould/leadkey/internal/keymap"
	"github.com/rgould/leadkey/internal/register"
)

// Errors reported by the registration flow.
var (
	// ErrConflictingSequence indicates the entered sequence is already
	// claimed by an existing binding. Recoverable: reopen the session
	// and enter a different sequence.
	ErrConflictingSequence = errors.New("sequence already bound")

	// ErrEmptyRegistration indicates the session finished without
	// capturing any keys.
	ErrEmptyRegistration = errors.New("no keys captured")

	// ErrSessionNotFinished indicates Commit was called before the
	// engine accepted the sequence.
	ErrSessionNotFinished = errors.New("registration not finished")
)

// Session is one interactive registration flow teaching a new sequence
// for a chosen command. It is wired only to a modal UI's keystroke
// stream and never shares state with the matching engine.
type Session struct {
	machine *register.Machine
	store   *keymap.Store
	command string
}

// NewSession starts a registration session for the given command.
func NewSession(store *keymap.Store, commandID string) *Session {
	return &Session{
		machine: register.NewMachine(),
		store:   store,
		command: commandID,
	}
}

// HandleKey feeds one keystroke to the registration engine.
func (s *Session) HandleKey(p key.Press) register.State {
	return s.machine.Advance(p)
}

// State returns the registration engine's current state.
func (s *Session) State() register.State {
	return s.machine.State()
}

// Finished returns true once the engine accepted the sequence.
func (s *Session) Finished() bool {
	return s.machine.State() == register.StateFinished
}

// Command returns the command this session is binding.
func (s *Session) Command() string {
	return s.command
}

// Sequence returns a copy of the captured press buffer.
func (s *Session) Sequence() []key.Press {
	return s.machine.Sequence()
}

// Commit validates the captured sequence and inserts it into the
// store as a new binding. A conflicting sequence is recoverable: the
// caller reopens the session (Reopen) rather than overwriting the
// existing binding. A failed save propagates from the store and
// leaves the index untouched.
func (s *Session) Commit() (keymap.Binding, error) {
	if !s.Finished() {
		return keymap.Binding{}, ErrSessionNotFinished
	}

	seq := s.machine.Sequence()
	if len(seq) == 0 {
		return keymap.Binding{}, ErrEmptyRegistration
	}

	if hits := s.store.Conflicts(seq); len(hits) > 0 {
		return keymap.Binding{}, fmt.Errorf("%w: %s collides with %s",
			ErrConflictingSequence, key.FormatSequence(seq), hits[0].String())
	}

	b := keymap.New(s.command, seq)
	if err := s.store.Add(b); err != nil {
		return keymap.Binding{}, err
	}
	return b, nil
}

// Reopen resets the engine for another attempt at the same command,
// e.g. after a conflict.
func (s *Session) Reopen() {
	s.machine.Reset()
}

// Cancel discards all buffered state without committing a binding.
func (s *Session) Cancel() {
	s.machine.Reset()
}
