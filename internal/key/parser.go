package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// specialKeyNames maps lowercase spec names to canonical key names.
var specialKeyNames = map[string]string{
	"enter":     "Enter",
	"return":    "Enter",
	"cr":        "Enter",
	"esc":       "Escape",
	"escape":    "Escape",
	"bs":        "Backspace",
	"backspace": "Backspace",
	"tab":       "Tab",
	"del":       "Delete",
	"delete":    "Delete",
	"space":     " ",
	"up":        "Up",
	"down":      "Down",
	"left":      "Left",
	"right":     "Right",
	"home":      "Home",
	"end":       "End",
	"pageup":    "PageUp",
	"pgup":      "PageUp",
	"pagedown":  "PageDown",
	"pgdn":      "PageDown",
	"f1":        "F1",
	"f2":        "F2",
	"f3":        "F3",
	"f4":        "F4",
	"f5":        "F5",
	"f6":        "F6",
	"f7":        "F7",
	"f8":        "F8",
	"f9":        "F9",
	"f10":       "F10",
	"f11":       "F11",
	"f12":       "F12",
}

// Parse parses a key specification string into a Press.
//
// Supported formats:
//   - Single character: "a", "A", "1", "@"
//   - Special keys: "Enter", "Escape", "Backspace", "Space"
//   - With modifiers: "Ctrl+S", "Ctrl+Alt+Enter"
//   - Vim-style: "<C-s>", "<C-A-CR>", "<Esc>", "<BS>"
func Parse(spec string) (Press, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Press{}, ErrEmptySpec
	}

	// Vim-style <...> notation
	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseVimStyle(spec[1 : len(spec)-1])
	}

	// Modifier+key format (Ctrl+S, Ctrl+Alt+Enter)
	if strings.Contains(spec, "+") {
		return parseModifierStyle(spec)
	}

	// Vim-style C-x without brackets
	if len(spec) > 2 && spec[1] == '-' {
		return parseVimStyle(spec)
	}

	return parseKeyWithModifiers(spec, ModNone)
}

// parseVimStyle parses Vim-style notation like "C-s", "C-A-CR", "Esc".
func parseVimStyle(inner string) (Press, error) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return Press{}, ErrInvalidSpec
	}

	parts := strings.Split(inner, "-")

	var mods Modifier
	keyPart := parts[len(parts)-1]
	for _, p := range parts[:len(parts)-1] {
		p = strings.ToLower(strings.TrimSpace(p))
		switch p {
		case "c":
			mods = mods.With(ModCtrl)
		case "a":
			mods = mods.With(ModAlt)
		case "s":
			mods = mods.With(ModShift)
		case "m", "d": // D is Vim's notation for Command/Meta
			mods = mods.With(ModMeta)
		default:
			return Press{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
	}

	return parseKeyWithModifiers(keyPart, mods)
}

// parseModifierStyle parses "Ctrl+S" style notation.
func parseModifierStyle(spec string) (Press, error) {
	parts := strings.Split(spec, "+")
	if len(parts) < 2 {
		return Press{}, ErrInvalidSpec
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		p = strings.TrimSpace(p)
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Press{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}

	return parseKeyWithModifiers(parts[len(parts)-1], mods)
}

// parseKeyWithModifiers resolves a key part with already-known modifiers.
func parseKeyWithModifiers(keyPart string, mods Modifier) (Press, error) {
	keyPart = strings.TrimSpace(keyPart)
	if keyPart == "" {
		return Press{}, ErrInvalidSpec
	}

	if name, ok := specialKeyNames[strings.ToLower(keyPart)]; ok {
		return Press{Key: name, Mods: mods}, nil
	}

	runes := []rune(keyPart)
	if len(runes) == 1 {
		r := runes[0]
		// Uppercase letters carry an implicit Shift, matching what a
		// live keyboard event reports.
		if unicode.IsUpper(r) {
			mods = mods.With(ModShift)
		}
		// Ctrl combinations are conventionally lowercase.
		if mods.HasCtrl() {
			r = unicode.ToLower(r)
		}
		return Press{Key: string(r), Mods: mods}, nil
	}

	return Press{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}

// ParseSequence parses a space-separated sequence of key specs.
// Examples: "C-b h", "g g", "Ctrl+Alt+Enter", "<C-x> <C-s>"
func ParseSequence(s string) ([]Press, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptySpec
	}

	fields := strings.Fields(s)
	seq := make([]Press, 0, len(fields))
	for _, f := range fields {
		p, err := Parse(f)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", f, err)
		}
		seq = append(seq, p)
	}
	return seq, nil
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Press {
	p, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return p
}

// MustParseSequence parses a sequence spec and panics on error.
// Use only for known-valid sequences in initialization code.
func MustParseSequence(s string) []Press {
	seq, err := ParseSequence(s)
	if err != nil {
		panic("invalid key sequence: " + s + ": " + err.Error())
	}
	return seq
}

// FormatSequence renders a press sequence for display, e.g. "C-b h".
func FormatSequence(seq []Press) string {
	if len(seq) == 0 {
		return ""
	}
	parts := make([]string, len(seq))
	for i, p := range seq {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}
