// Package keymap provides key binding storage and indexing for leadkey.
//
// A Binding maps an ordered key-press sequence to a command identifier.
// The Trie indexes bindings by sequence for incremental prefix lookup:
// matching engines walk one edge per press and inspect the reached
// node's leaf values to decide between a partial match, an unambiguous
// full match, and a genuinely ambiguous prefix.
//
// # Index invariants
//
// No two bindings may terminate at the same trie node; inserting a
// second binding with an identical full sequence fails with
// ErrDuplicateBinding. Sequences of different lengths sharing a prefix
// are legal and are surfaced as ambiguity through LeafValues.
//
// A trie is never patched after construction. The Store rebuilds a
// fresh index from the full binding list on every change and swaps it
// in atomically, only after the change has been persisted.
package keymap
