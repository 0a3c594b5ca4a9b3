// Package key provides the key press value types for the leadkey input
// system.
//
// A Press is one physical keystroke: a logical key name plus modifier
// flags. Presses classify themselves into three kinds:
//
//   - modifier-only presses (a bare Shift, Ctrl, Alt or Meta tap)
//   - special presses (Enter, Escape, Backspace), which double as
//     terminators and editors during interactive registration
//   - normal presses (everything else)
//
// Chord produces the canonical string form used as a trie edge label;
// it is unique per distinct key/modifier combination.
//
// # Key Specifications
//
// Key specifications for defaults, configuration and tests can be
// written in several formats:
//
//   - Simple keys: "a", "A", "1", "Enter", "Escape"
//   - With modifiers: "Ctrl+S", "Ctrl+Alt+Enter"
//   - Vim-style: "<C-s>", "<C-A-CR>", "C-b"
//
// Sequences are space-separated specs, e.g. "C-b h".
package key
