package key

import (
	"encoding/json"
	"fmt"
)

// Press represents a single keystroke: a logical key name plus the
// modifier set that was held when it was pressed. Press is a value
// type; two presses are equal when their key and modifiers match.
type Press struct {
	// Key is the logical key name, e.g. "h", "Enter", "Backspace", " ".
	Key string

	// Mods contains the active modifier keys.
	Mods Modifier
}

// NewPress creates a press for the given key name and modifiers.
func NewPress(key string, mods Modifier) Press {
	return Press{Key: key, Mods: mods}
}

// Kind classifies a press for sequence matching and registration.
type Kind uint8

const (
	// KindModifier is a bare modifier keystroke (Shift, Ctrl, Alt,
	// Meta, AltGraph) or a malformed event with no key name.
	KindModifier Kind = iota

	// KindSpecial is Enter, Escape or Backspace. These keys double as
	// terminators and editors during interactive registration.
	KindSpecial

	// KindNormal is any other key: letters, digits, punctuation,
	// arrows, space and so on.
	KindNormal
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindModifier:
		return "modifier"
	case KindSpecial:
		return "special"
	case KindNormal:
		return "normal"
	default:
		return "unknown"
	}
}

// modifierKeyNames are the key names produced by bare modifier presses.
var modifierKeyNames = map[string]bool{
	"Alt":      true,
	"AltGraph": true,
	"Control":  true,
	"Ctrl":     true,
	"Shift":    true,
	"Meta":     true,
}

// Classify reports how this press participates in matching. The
// classification depends only on the key name, never on any index or
// machine state.
func (p Press) Classify() Kind {
	if p.Key == "" || modifierKeyNames[p.Key] {
		return KindModifier
	}
	switch p.Key {
	case "Enter", "Escape", "Backspace":
		return KindSpecial
	}
	return KindNormal
}

// Chord returns the canonical label used for trie edges. Modifiers
// appear in fixed order (Meta, Ctrl, Alt, Shift) before the key name,
// so every distinct key/modifier combination has exactly one label.
func (p Press) Chord() string {
	if p.Mods == ModNone {
		return p.Key
	}
	return p.Mods.ShortString() + "-" + p.Key
}

// String returns a human-readable representation, e.g. "h", "C-b",
// "C-A-Enter", "Space".
func (p Press) String() string {
	name := p.Key
	switch name {
	case " ":
		name = "Space"
	case "":
		name = "?"
	}
	if p.Mods == ModNone {
		return name
	}
	return p.Mods.ShortString() + "-" + name
}

// Equals returns true if two presses represent the same keystroke.
func (p Press) Equals(other Press) bool {
	return p == other
}

// IsEnter returns true if this is the Enter key with no modifiers.
func (p Press) IsEnter() bool {
	return p.Key == "Enter" && p.Mods == ModNone
}

// IsEscape returns true if this is the Escape key with no modifiers.
func (p Press) IsEscape() bool {
	return p.Key == "Escape" && p.Mods == ModNone
}

// IsBackspace returns true if this is Backspace with no modifiers.
func (p Press) IsBackspace() bool {
	return p.Key == "Backspace" && p.Mods == ModNone
}

// pressRecord is the persisted JSON shape of a press. Modifier fields
// absent from older data decode as false, never null.
type pressRecord struct {
	Key   string `json:"key"`
	Shift bool   `json:"shift,omitempty"`
	Alt   bool   `json:"alt,omitempty"`
	Ctrl  bool   `json:"ctrl,omitempty"`
	Meta  bool   `json:"meta,omitempty"`
}

// MarshalJSON encodes the press as its persisted record.
func (p Press) MarshalJSON() ([]byte, error) {
	return json.Marshal(pressRecord{
		Key:   p.Key,
		Shift: p.Mods.HasShift(),
		Alt:   p.Mods.HasAlt(),
		Ctrl:  p.Mods.HasCtrl(),
		Meta:  p.Mods.HasMeta(),
	})
}

// UnmarshalJSON decodes a persisted press record.
func (p *Press) UnmarshalJSON(data []byte) error {
	var rec pressRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("decoding key press: %w", err)
	}

	var mods Modifier
	if rec.Shift {
		mods = mods.With(ModShift)
	}
	if rec.Alt {
		mods = mods.With(ModAlt)
	}
	if rec.Ctrl {
		mods = mods.With(ModCtrl)
	}
	if rec.Meta {
		mods = mods.With(ModMeta)
	}

	p.Key = rec.Key
	p.Mods = mods
	return nil
}
