package main

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/rgould/leadkey/internal/app"
	"github.com/rgould/leadkey/internal/command"
	"github.com/rgould/leadkey/internal/key"
	"github.com/rgould/leadkey/internal/keymap"
	"github.com/rgould/leadkey/internal/logging"
	"github.com/rgould/leadkey/internal/term"
)

// trainer is the interactive UI: a normal mode that feeds keystrokes
// to the matching controller, and a registration mode that captures a
// new sequence for a selected command.
type trainer struct {
	mu sync.Mutex

	terminal   *term.Terminal
	store      *keymap.Store
	commands   *command.Registry
	controller *app.Controller

	session     *app.Session
	registering bool

	selected   int // index into the command list for registration
	lastAction string
	notice     string
	quitting   bool
}

func newTrainer(store *keymap.Store) (*trainer, error) {
	terminal, err := term.New()
	if err != nil {
		return nil, err
	}
	if err := terminal.Init(); err != nil {
		return nil, err
	}

	t := &trainer{
		terminal: terminal,
		store:    store,
		commands: command.NewRegistry(),
	}
	t.registerCommands()

	t.controller = app.NewController(store, t.commands,
		app.WithNotifier(app.NotifierFunc(t.Notify)),
		app.WithLogger(logging.Logger),
	)

	return t, nil
}

// registerCommands fills the directory with the trainer's commands.
func (t *trainer) registerCommands() {
	directional := map[string]string{
		"pane:focus-left":  "Focus pane to the left",
		"pane:focus-down":  "Focus pane below",
		"pane:focus-up":    "Focus pane above",
		"pane:focus-right": "Focus pane to the right",
		"app:greet":        "Print a greeting",
	}
	for id, name := range directional {
		id := id
		_ = t.commands.Register(id, name, func() {
			t.setAction(id)
		})
	}
	_ = t.commands.Register("app:quit", "Quit the trainer", t.Quit)
}

// defaultBindings is the fallback keymap installed when no bindings
// file exists.
func defaultBindings() []keymap.Binding {
	specs := []struct {
		seq     string
		command string
	}{
		{"C-b h", "pane:focus-left"},
		{"C-b j", "pane:focus-down"},
		{"C-b k", "pane:focus-up"},
		{"C-b l", "pane:focus-right"},
		{"g g", "app:greet"},
		{"C-b q", "app:quit"},
	}

	bindings := make([]keymap.Binding, 0, len(specs))
	for _, s := range specs {
		bindings = append(bindings, keymap.New(s.command, key.MustParseSequence(s.seq)))
	}
	return bindings
}

// Run drives the event loop until quit.
func (t *trainer) Run() error {
	for {
		t.draw()

		ev := t.terminal.PollEvent()
		if ev == nil {
			return errors.New("terminal closed unexpectedly")
		}

		t.mu.Lock()
		quitting := t.quitting
		t.mu.Unlock()
		if quitting {
			return nil
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			t.handleKey(ev)
		case *tcell.EventResize:
			// Redrawn at the top of the loop.
		case *tcell.EventInterrupt:
			// Wake-up for redraw or quit.
		}
	}
}

func (t *trainer) handleKey(ev *tcell.EventKey) {
	press := term.PressFromEvent(ev)

	t.mu.Lock()
	registering := t.registering
	t.mu.Unlock()

	if registering {
		t.handleRegistrationKey(ev)
		return
	}

	// Trainer chrome keys, outside the engine's vocabulary.
	switch ev.Key() {
	case tcell.KeyF2:
		t.startRegistration()
		return
	case tcell.KeyF3:
		t.cycleSelection()
		return
	case tcell.KeyF10:
		t.Quit()
		return
	}

	consumed := t.controller.HandleKey(press)
	if !consumed {
		// The host application would now apply its default handling.
		logging.Logger.Debug("key passed through", "press", press.String())
	}
}

func (t *trainer) handleRegistrationKey(ev *tcell.EventKey) {
	press := term.PressFromEvent(ev)

	t.mu.Lock()
	session := t.session
	t.mu.Unlock()

	if press.IsEscape() {
		session.Cancel()
		t.endRegistration("registration cancelled")
		return
	}

	session.HandleKey(press)
	if !session.Finished() {
		return
	}

	binding, err := session.Commit()
	switch {
	case errors.Is(err, app.ErrConflictingSequence):
		t.Notify(fmt.Sprintf("%v - try another sequence", err))
		session.Reopen()
	case errors.Is(err, app.ErrEmptyRegistration):
		t.Notify("no keys captured - try again")
		session.Reopen()
	case err != nil:
		t.endRegistration(fmt.Sprintf("could not save binding: %v", err))
	default:
		t.endRegistration(fmt.Sprintf("bound %s", binding.String()))
	}
}

func (t *trainer) startRegistration() {
	infos := t.commands.List()
	if len(infos) == 0 {
		t.Notify("no commands to bind")
		return
	}

	t.mu.Lock()
	target := infos[t.selected%len(infos)]
	t.session = app.NewSession(t.store, target.ID)
	t.registering = true
	t.notice = ""
	t.mu.Unlock()
}

func (t *trainer) endRegistration(notice string) {
	t.mu.Lock()
	t.session = nil
	t.registering = false
	t.notice = notice
	t.mu.Unlock()
}

func (t *trainer) cycleSelection() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n := len(t.commands.List()); n > 0 {
		t.selected = (t.selected + 1) % n
	}
}

func (t *trainer) setAction(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastAction = id
}

// Notify implements the controller's user-notice channel.
func (t *trainer) Notify(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.notice = message
}

// Redraw wakes the event loop so external changes become visible.
func (t *trainer) Redraw() {
	t.terminal.Interrupt()
}

// Quit asks the event loop to exit.
func (t *trainer) Quit() {
	t.mu.Lock()
	t.quitting = true
	t.mu.Unlock()
	t.terminal.Interrupt()
}

// Shutdown restores the terminal.
func (t *trainer) Shutdown() {
	t.terminal.Shutdown()
}

func (t *trainer) draw() {
	t.mu.Lock()
	registering := t.registering
	session := t.session
	selected := t.selected
	lastAction := t.lastAction
	notice := t.notice
	t.mu.Unlock()

	styleTitle := tcell.StyleDefault.Bold(true)
	styleDim := tcell.StyleDefault.Dim(true)
	style := tcell.StyleDefault

	t.terminal.Clear()
	t.terminal.Print(0, 0, styleTitle, "leadkey trainer")

	row := 2
	t.terminal.Print(0, row, styleDim, "bindings:")
	row++
	for _, b := range t.store.List() {
		t.terminal.Print(2, row, style, b.String())
		row++
	}

	row++
	if registering && session != nil {
		info, _ := t.commands.Get(session.Command())
		t.terminal.Print(0, row, styleTitle,
			fmt.Sprintf("registering %q (%s)", info.Name, session.Command()))
		row++
		t.terminal.Print(0, row, style,
			fmt.Sprintf("captured: %s  [%s]", sequenceLabel(session), session.State()))
		row++
		t.terminal.Print(0, row, styleDim,
			"Enter/Backspace need confirmation; Ctrl+Alt+Enter finishes; Esc cancels")
	} else {
		infos := t.commands.List()
		target := ""
		if len(infos) > 0 {
			target = infos[selected%len(infos)].ID
		}
		t.terminal.Print(0, row, style,
			fmt.Sprintf("pending: %-24s state: %s", t.controller.PendingKeys(), t.controller.State()))
		row++
		t.terminal.Print(0, row, style, fmt.Sprintf("last command: %s", lastAction))
		row++
		t.terminal.Print(0, row, styleDim,
			fmt.Sprintf("F2 register (%s)  F3 next command  F10 quit", target))
	}

	if notice != "" {
		_, h := t.terminal.Size()
		t.terminal.Print(0, h-1, styleTitle, notice)
	}

	t.terminal.Show()
}

func sequenceLabel(s *app.Session) string {
	seq := s.Sequence()
	if len(seq) == 0 {
		return "(empty)"
	}
	return key.FormatSequence(seq)
}
