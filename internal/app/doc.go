// Package app wires the leadkey engines to their collaborators.
//
// The Controller owns the matching engine: every keystroke of the
// host's editing surface is offered to it first, and its answer tells
// the caller whether to suppress default handling and, on completion,
// runs the bound command through the command registry.
//
// A Session owns one registration flow: it feeds a modal keystroke
// stream to the registration engine and, once finished, checks the
// captured sequence for conflicts before committing it to the store.
package app
