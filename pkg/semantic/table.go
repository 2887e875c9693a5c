package semantic

import "sync"

// SymbolKey is the canonical identity of a declaration: same defining
// file, same offset, same kind, same name. Interning the key yields the
// stable SymbolID used everywhere else.
type SymbolKey struct {
	File   string
	Offset int
	Kind   Kind
	Name   string
}

// SymbolTable interns declaration identities. IDs start at 1 so the zero
// SymbolID stays available as "no symbol". Safe for concurrent use.
type SymbolTable struct {
	mu   sync.RWMutex
	ids  map[SymbolKey]SymbolID
	keys []SymbolKey // index = id-1
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		ids: make(map[SymbolKey]SymbolID),
	}
}

// Intern returns the SymbolID for the key, assigning a fresh ID on first
// sight. Repeated interning of the same key yields the same ID.
func (t *SymbolTable) Intern(key SymbolKey) SymbolID {
	t.mu.Lock()
	defer t.mu.Unlock()

	if id, ok := t.ids[key]; ok {
		return id
	}
	t.keys = append(t.keys, key)
	id := SymbolID(len(t.keys))
	t.ids[key] = id
	return id
}

// Lookup returns the ID previously interned for the key, if any.
func (t *SymbolTable) Lookup(key SymbolKey) (SymbolID, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	id, ok := t.ids[key]
	return id, ok
}

// Key returns the canonical key behind an ID.
func (t *SymbolTable) Key(id SymbolID) (SymbolKey, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if id == 0 || int(id) > len(t.keys) {
		return SymbolKey{}, false
	}
	return t.keys[id-1], true
}

// Len returns the number of interned symbols.
func (t *SymbolTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.keys)
}
