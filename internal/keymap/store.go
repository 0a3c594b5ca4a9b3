package keymap

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rgould/leadkey/internal/key"
)

// Store owns the authoritative ordered list of bindings and the trie
// snapshot built from it. The list order matters only for display;
// matching is keyed purely by sequence content via the index.
//
// Every mutation follows the same protocol: build a fresh trie from
// the candidate list, persist the candidate, and only then swap both
// in. A failed save leaves the in-memory list and index untouched so
// memory never diverges from disk across a restart.
type Store struct {
	mu sync.RWMutex

	// path is the bindings file location.
	path string

	// defaults is the fallback list used when the file is missing or
	// corrupted.
	defaults []Binding

	// bindings is the authoritative ordered list.
	bindings []Binding

	// index is the current trie snapshot.
	index *Trie

	// subs are notified with the new snapshot after every swap.
	subs []func(*Trie)
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithDefaults sets the fallback bindings used when the bindings file
// is missing or corrupted.
func WithDefaults(bindings []Binding) StoreOption {
	return func(s *Store) {
		s.defaults = bindings
	}
}

// NewStore creates a store backed by the given file path. The store
// starts with an empty index; call Load to populate it.
func NewStore(path string, opts ...StoreOption) *Store {
	s := &Store{
		path:  path,
		index: NewTrie(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the bindings file and rebuilds the index. A missing file
// is not an error: the defaults are used. A file that fails to decode
// or contains duplicate sequences is treated as corrupted settings:
// the store falls back to the defaults and the error is returned so
// the caller can report it.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s.resetToDefaults(nil)
		}
		return s.resetToDefaults(fmt.Errorf("reading bindings file %s: %w", s.path, err))
	}

	var loaded []Binding
	if err := json.Unmarshal(data, &loaded); err != nil {
		return s.resetToDefaults(fmt.Errorf("decoding bindings file %s: %w", s.path, err))
	}
	for i := range loaded {
		if loaded[i].ID == "" {
			loaded[i] = New(loaded[i].Command, loaded[i].Sequence)
		}
	}

	trie, err := Build(loaded)
	if err != nil {
		return s.resetToDefaults(fmt.Errorf("indexing bindings from %s: %w", s.path, err))
	}

	s.commit(loaded, trie)
	return nil
}

// Reload re-reads the bindings file, e.g. after an external edit.
func (s *Store) Reload() error {
	return s.Load()
}

// resetToDefaults installs the default bindings and passes loadErr
// through. The defaults are assumed valid; an invalid default set is
// a programming error.
func (s *Store) resetToDefaults(loadErr error) error {
	trie, err := Build(s.defaults)
	if err != nil {
		return fmt.Errorf("building default bindings: %w", err)
	}
	defaults := make([]Binding, len(s.defaults))
	for i, b := range s.defaults {
		defaults[i] = b.Clone()
	}
	s.commit(defaults, trie)
	return loadErr
}

// List returns a copy of the ordered binding list.
func (s *Store) List() []Binding {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Binding, len(s.bindings))
	for i, b := range s.bindings {
		out[i] = b.Clone()
	}
	return out
}

// Get returns the binding with the given ID.
func (s *Store) Get(id string) (Binding, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.bindings {
		if b.ID == id {
			return b.Clone(), true
		}
	}
	return Binding{}, false
}

// Index returns the current trie snapshot. The snapshot is immutable;
// readers may hold it across store changes without seeing a
// half-built index.
func (s *Store) Index() *Trie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// Subscribe registers fn to be called with the new snapshot after
// every index swap.
func (s *Store) Subscribe(fn func(*Trie)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Add appends a binding to the list, persists it and swaps the index.
func (s *Store) Add(b Binding) error {
	s.mu.RLock()
	candidate := append(s.snapshotLocked(), b.Clone())
	s.mu.RUnlock()

	return s.replace(candidate)
}

// Remove deletes the binding with the given ID.
func (s *Store) Remove(id string) error {
	s.mu.RLock()
	candidate := s.snapshotLocked()
	s.mu.RUnlock()

	idx := indexByID(candidate, id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrBindingNotFound, id)
	}
	candidate = append(candidate[:idx], candidate[idx+1:]...)

	return s.replace(candidate)
}

// Update replaces the binding with the given ID positionally. The
// replacement keeps the ID as its stable handle.
func (s *Store) Update(id string, b Binding) error {
	s.mu.RLock()
	candidate := s.snapshotLocked()
	s.mu.RUnlock()

	idx := indexByID(candidate, id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrBindingNotFound, id)
	}
	replacement := b.Clone()
	replacement.ID = id
	candidate[idx] = replacement

	return s.replace(candidate)
}

// Conflicts returns the bindings the given sequence would collide
// with: every binding reachable from the sequence as a prefix. An
// empty result means the sequence is free.
func (s *Store) Conflicts(seq []key.Press) []Binding {
	node := s.Index().BestMatch(seq)
	if node == nil {
		return nil
	}

	leaves := node.LeafValues()
	out := make([]Binding, len(leaves))
	for i, b := range leaves {
		out[i] = b.Clone()
	}
	return out
}

// replace validates, persists and commits a candidate list.
func (s *Store) replace(candidate []Binding) error {
	trie, err := Build(candidate)
	if err != nil {
		return err
	}
	if err := s.save(candidate); err != nil {
		return err
	}
	s.commit(candidate, trie)
	return nil
}

// save writes the binding list to the backing file.
func (s *Store) save(bindings []Binding) error {
	data, err := json.MarshalIndent(bindings, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding bindings: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating bindings directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing bindings file %s: %w", s.path, err)
	}
	return nil
}

// commit swaps in a new list and index and notifies subscribers.
func (s *Store) commit(bindings []Binding, trie *Trie) {
	s.mu.Lock()
	s.bindings = bindings
	s.index = trie
	subs := make([]func(*Trie), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(trie)
	}
}

// snapshotLocked copies the current list. Caller must hold the lock.
func (s *Store) snapshotLocked() []Binding {
	out := make([]Binding, len(s.bindings))
	for i, b := range s.bindings {
		out[i] = b.Clone()
	}
	return out
}

func indexByID(bindings []Binding, id string) int {
	for i, b := range bindings {
		if b.ID == id {
			return i
		}
	}
	return -1
}
