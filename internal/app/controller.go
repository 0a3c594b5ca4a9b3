package app

import (
	"log/slog"
	"sync"

	"github.com/rgould/leadkey/internal/command"
	"github.com/rgould/leadkey/internal/key"
	"github.com/rgould/leadkey/internal/keymap"
	"github.com/rgould/leadkey/internal/match"
)

// Notifier delivers best-effort, non-blocking user-facing notices.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(message string)

// Notify implements Notifier.
func (f NotifierFunc) Notify(message string) {
	f(message)
}

type nopNotifier struct{}

func (nopNotifier) Notify(string) {}

// Controller routes every keystroke of the host's editing surface
// through the matching engine and reports whether the host's default
// handling must be suppressed. On a completed match it invokes the
// bound command.
type Controller struct {
	mu sync.Mutex

	machine  *match.Machine
	store    *keymap.Store
	commands *command.Registry
	notifier Notifier
	log      *slog.Logger
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithNotifier sets the user notifier.
func WithNotifier(n Notifier) ControllerOption {
	return func(c *Controller) {
		c.notifier = n
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(log *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.log = log
	}
}

// NewController creates a controller over the store's current index
// and re-subscribes the matching engine to every later index swap.
func NewController(store *keymap.Store, commands *command.Registry, opts ...ControllerOption) *Controller {
	c := &Controller{
		machine:  match.NewMachine(store.Index()),
		store:    store,
		commands: commands,
		notifier: nopNotifier{},
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}

	store.Subscribe(func(index *keymap.Trie) {
		c.mu.Lock()
		c.machine.SetIndex(index)
		c.mu.Unlock()
	})

	return c
}

// HandleKey processes one keystroke and returns true when the caller
// must treat the key as consumed (suppress default handling). False is
// returned only for bare modifiers at idle and for a first key that
// matches no binding at all.
func (c *Controller) HandleKey(p key.Press) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	res := c.machine.Advance(p)

	switch res.State {
	case match.StateSuccess:
		c.invokeLocked()
	case match.StateInvalid:
		c.log.Debug("sequence aborted",
			"sequence", key.FormatSequence(c.machine.Sequence()))
	}

	return res.Consumed
}

// invokeLocked resolves the completed run and fires its command. An
// ambiguous success is an internal invariant violation: it is logged
// and reported, and no command runs, since picking a candidate
// arbitrarily would silently execute the wrong command.
func (c *Controller) invokeLocked() {
	binding, err := c.machine.FullMatch()
	if err != nil {
		c.log.Error("match invariant violation",
			"error", err,
			"sequence", key.FormatSequence(c.machine.Sequence()))
		c.notifier.Notify("internal error: conflicting key bindings, nothing invoked")
		return
	}

	c.log.Debug("invoking command",
		"command", binding.Command,
		"sequence", key.FormatSequence(binding.Sequence))

	if err := c.commands.Invoke(binding.Command); err != nil {
		c.log.Error("command invocation failed",
			"command", binding.Command, "error", err)
		c.notifier.Notify("unknown command: " + binding.Command)
	}
}

// State returns the matching engine's current state.
func (c *Controller) State() match.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.State()
}

// PendingKeys returns the in-progress sequence for status display.
func (c *Controller) PendingKeys() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return key.FormatSequence(c.machine.Sequence())
}

// Matches returns the bindings still reachable from the pending
// sequence.
func (c *Controller) Matches() []*keymap.Binding {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.AllMatches()
}
