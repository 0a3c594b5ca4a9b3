// Package match implements the incremental sequence-matching engine.
//
// The Machine consumes one key press at a time against a keymap trie
// snapshot and classifies the run: idle, in progress (started,
// retained, improved), completed (success) or aborted (invalid). The
// caller suppresses the host's default key handling whenever a press
// is consumed; the only presses allowed to fall through are bare
// modifier taps at idle and a first press that matches no binding at
// all.
//
// Success and Invalid are terminal: the next press implicitly resets
// the engine before being processed, so no keystroke is ever lost
// between runs.
package match
