// Package register implements the interactive sequence-registration
// engine used while a user teaches the system a new multi-key binding.
//
// Enter and Backspace are ambiguous during registration: each may be
// literal sequence content or an input gesture (terminate input,
// delete the previous key). The engine resolves this with a pending
// confirmation step: the special key is tentatively buffered and the
// next press disambiguates it. Ctrl+Alt+Enter always finishes the
// session, discarding any tentative special key.
//
// Disambiguation is resolved entirely by subsequent discrete
// keystrokes; there are no timers and no chord timeouts.
package register
