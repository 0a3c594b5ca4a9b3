package key

import (
	"encoding/json"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		press Press
		want  Kind
	}{
		{"letter", Press{Key: "h"}, KindNormal},
		{"digit", Press{Key: "5"}, KindNormal},
		{"space", Press{Key: " "}, KindNormal},
		{"arrow", Press{Key: "Up"}, KindNormal},
		{"letter with ctrl", Press{Key: "b", Mods: ModCtrl}, KindNormal},
		{"enter", Press{Key: "Enter"}, KindSpecial},
		{"escape", Press{Key: "Escape"}, KindSpecial},
		{"backspace", Press{Key: "Backspace"}, KindSpecial},
		{"enter with mods stays special", Press{Key: "Enter", Mods: ModCtrl | ModAlt}, KindSpecial},
		{"bare shift", Press{Key: "Shift"}, KindModifier},
		{"bare control", Press{Key: "Control"}, KindModifier},
		{"bare ctrl", Press{Key: "Ctrl"}, KindModifier},
		{"bare alt", Press{Key: "Alt"}, KindModifier},
		{"bare altgraph", Press{Key: "AltGraph"}, KindModifier},
		{"bare meta", Press{Key: "Meta"}, KindModifier},
		{"empty key from malformed event", Press{Key: ""}, KindModifier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.press.Classify(); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChord(t *testing.T) {
	tests := []struct {
		name  string
		press Press
		want  string
	}{
		{"plain key", Press{Key: "h"}, "h"},
		{"space", Press{Key: " "}, " "},
		{"ctrl", Press{Key: "b", Mods: ModCtrl}, "C-b"},
		{"all modifiers ordered", Press{Key: "x", Mods: ModShift | ModAlt | ModCtrl | ModMeta}, "M-C-A-S-x"},
		{"ctrl alt enter", Press{Key: "Enter", Mods: ModCtrl | ModAlt}, "C-A-Enter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.press.Chord(); got != tt.want {
				t.Errorf("Chord() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChordUnique(t *testing.T) {
	presses := []Press{
		{Key: "h"},
		{Key: "h", Mods: ModShift},
		{Key: "h", Mods: ModCtrl},
		{Key: "h", Mods: ModCtrl | ModShift},
		{Key: "H"},
		{Key: "Enter"},
		{Key: "Enter", Mods: ModCtrl | ModAlt},
	}

	seen := make(map[string]Press)
	for _, p := range presses {
		chord := p.Chord()
		if prev, ok := seen[chord]; ok {
			t.Errorf("Chord() collision: %#v and %#v both produce %q", prev, p, chord)
		}
		seen[chord] = p
	}
}

func TestPressJSONRoundTrip(t *testing.T) {
	original := Press{Key: "Enter", Mods: ModCtrl | ModAlt}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded Press
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if decoded != original {
		t.Errorf("round trip = %#v, want %#v", decoded, original)
	}
}

func TestPressJSONMissingModifiers(t *testing.T) {
	// Older persisted data may lack modifier fields entirely; they
	// must decode as false.
	var p Press
	if err := json.Unmarshal([]byte(`{"key": "h"}`), &p); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if p.Key != "h" {
		t.Errorf("Key = %q, want %q", p.Key, "h")
	}
	if p.Mods != ModNone {
		t.Errorf("Mods = %v, want ModNone", p.Mods)
	}
}

func TestPressString(t *testing.T) {
	tests := []struct {
		press Press
		want  string
	}{
		{Press{Key: "h"}, "h"},
		{Press{Key: " "}, "Space"},
		{Press{Key: "b", Mods: ModCtrl}, "C-b"},
		{Press{Key: "Enter", Mods: ModCtrl | ModAlt}, "C-A-Enter"},
	}

	for _, tt := range tests {
		if got := tt.press.String(); got != tt.want {
			t.Errorf("String(%#v) = %q, want %q", tt.press, got, tt.want)
		}
	}
}
