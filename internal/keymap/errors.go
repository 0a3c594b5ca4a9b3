package keymap

import "errors"

// Errors returned by binding and store operations.
var (
	// ErrDuplicateBinding indicates two bindings terminate at the same
	// trie node, i.e. their full press sequences are identical.
	ErrDuplicateBinding = errors.New("duplicate key binding")

	// ErrEmptySequence indicates a binding with no presses was offered
	// to the index.
	ErrEmptySequence = errors.New("empty key sequence")

	// ErrBindingNotFound indicates the referenced binding is not in
	// the store.
	ErrBindingNotFound = errors.New("binding not found")
)
