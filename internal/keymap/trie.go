package keymap

import (
	"fmt"
	"sort"

	"github.com/rgould/leadkey/internal/key"
)

// Trie indexes bindings by their press sequences for incremental
// prefix lookup. Edges are labeled by Press.Chord. A trie is built
// once from a binding list and never patched afterward; when the list
// changes a fresh trie replaces the old one wholesale.
type Trie struct {
	root *Node
	size int
}

// Node is a position in the trie. A node may carry a binding (a full
// sequence terminates here), children (longer sequences pass through
// here), or both when a shorter binding is a prefix of a longer one.
type Node struct {
	children map[string]*Node
	binding  *Binding
}

// NewTrie creates an empty trie.
func NewTrie() *Trie {
	return &Trie{
		root: &Node{children: make(map[string]*Node)},
	}
}

// Build constructs a fresh trie from the given binding list. The trie
// keeps its own copy of the list, so later edits to the input slice do
// not affect the built index.
func Build(bindings []Binding) (*Trie, error) {
	t := NewTrie()
	owned := make([]Binding, len(bindings))
	for i, b := range bindings {
		owned[i] = b.Clone()
	}
	for i := range owned {
		if err := t.Insert(&owned[i]); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Insert adds a binding, creating one edge per press in its sequence.
// It fails with ErrDuplicateBinding when the terminal node already
// holds a value, and ErrEmptySequence for a binding with no presses.
func (t *Trie) Insert(b *Binding) error {
	if b == nil || len(b.Sequence) == 0 {
		return ErrEmptySequence
	}

	node := t.root
	for _, p := range b.Sequence {
		edge := p.Chord()
		child, ok := node.children[edge]
		if !ok {
			child = &Node{children: make(map[string]*Node)}
			node.children[edge] = child
		}
		node = child
	}

	if node.binding != nil {
		return fmt.Errorf("%w: %s", ErrDuplicateBinding, key.FormatSequence(b.Sequence))
	}

	node.binding = b
	t.size++
	return nil
}

// BestMatch walks one edge per press in order and returns the node
// reached after consuming the whole input. It returns nil as soon as
// any press has no matching edge; there is no backtracking and no
// fuzzy matching.
func (t *Trie) BestMatch(seq []key.Press) *Node {
	node := t.root
	for _, p := range seq {
		child, ok := node.children[p.Chord()]
		if !ok {
			return nil
		}
		node = child
	}
	return node
}

// Len returns the number of bindings in the trie.
func (t *Trie) Len() int {
	return t.size
}

// IsLeaf returns true if no longer sequence passes through this node.
func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

// Binding returns the binding terminating at this node, or nil.
func (n *Node) Binding() *Binding {
	return n.binding
}

// LeafValues collects every binding terminating in the subtree rooted
// at this node, depth first with edges visited in sorted label order
// so the result is deterministic. A childless terminal node returns
// exactly its own binding.
func (n *Node) LeafValues() []*Binding {
	var values []*Binding
	n.collect(&values)
	return values
}

func (n *Node) collect(values *[]*Binding) {
	if n.binding != nil {
		*values = append(*values, n.binding)
	}
	if len(n.children) == 0 {
		return
	}
	edges := make([]string, 0, len(n.children))
	for edge := range n.children {
		edges = append(edges, edge)
	}
	sort.Strings(edges)
	for _, edge := range edges {
		n.children[edge].collect(values)
	}
}
