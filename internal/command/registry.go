// Package command provides the host command directory: a read-only
// listing of bindable commands plus fire-and-forget invocation by
// identifier.
package command

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownCommand indicates an identifier with no registered command.
var ErrUnknownCommand = errors.New("unknown command")

// Info describes a command available for binding.
type Info struct {
	// ID is the stable identifier, e.g. "editor:focus-left".
	ID string

	// Name is the human-readable display name.
	Name string
}

// Handler is invoked when a bound sequence completes. Handlers run
// synchronously on the keystroke path and must not block.
type Handler func()

type entry struct {
	info    Info
	handler Handler
}

// Registry holds the bindable commands. Registration replaces any
// existing command with the same identifier.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]entry
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]entry),
	}
}

// Register adds a command to the directory.
func (r *Registry) Register(id, name string, h Handler) error {
	if id == "" {
		return errors.New("empty command id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[id] = entry{info: Info{ID: id, Name: name}, handler: h}
	return nil
}

// Get returns the command info for an identifier.
func (r *Registry) Get(id string) (Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.commands[id]
	return e.info, ok
}

// List returns all commands sorted by identifier.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Info, 0, len(r.commands))
	for _, e := range r.commands {
		out = append(out, e.info)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// Invoke runs the command with the given identifier.
func (r *Registry) Invoke(id string) error {
	r.mu.RLock()
	e, ok := r.commands[id]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, id)
	}
	if e.handler != nil {
		e.handler()
	}
	return nil
}
