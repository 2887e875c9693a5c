package semantic

import (
	"fmt"
	"sort"
	"sync"

	"github.com/halvard/deadwood/pkg/parser"
)

// declInfo is the language collectors' view of one declaration before it
// is interned. nameStart is the byte offset of the declaring name token,
// used to keep a declaration's own defining occurrence out of the
// reference stream.
type declInfo struct {
	name      string
	kind      Kind
	loc       Location
	nameStart uint32
	member    bool
	owner     string // declaring class/type name for members
	inherits  bool   // owner has a heritage clause
	hasGetter bool   // synthesize a getter accessor identity
	entry     bool
}

// fileIndex holds the pass-1 result for one file.
type fileIndex struct {
	language   parser.Language
	decls      []Declaration
	nameStarts map[uint32]struct{}
}

// Session resolves files against a program-wide symbol table. It is the
// primary resolution path: construction indexes every file's visible
// declarations (pass 1), after which Resolve produces per-file units with
// references resolved across the whole program (pass 2).
//
// Resolution is name-based and best-effort: all indexed files share one
// namespace for top-level names and one for member names. No control-flow
// or type inference is performed.
type Session struct {
	mu       sync.RWMutex
	table    *SymbolTable
	topLevel map[string][]SymbolID
	members  map[string][]SymbolID
	owners   map[string][]string // member name -> declaring owner names
	files    map[string]*fileIndex
}

// NewSession indexes the given files and returns a session ready to
// resolve them. Files that cannot be read or parsed are skipped; they
// resolve to empty units later. Indexing order is deterministic
// regardless of input order.
func NewSession(paths []string) *Session {
	s := &Session{
		table:    NewSymbolTable(),
		topLevel: make(map[string][]SymbolID),
		members:  make(map[string][]SymbolID),
		owners:   make(map[string][]string),
		files:    make(map[string]*fileIndex),
	}

	sorted := make([]string, len(paths))
	copy(sorted, paths)
	sort.Strings(sorted)

	psr := parser.New()
	defer psr.Close()

	for _, path := range sorted {
		s.indexFile(psr, path)
	}
	return s
}

// indexFile runs pass 1 for one file. Callers must not hold s.mu.
func (s *Session) indexFile(psr *parser.Parser, path string) {
	s.mu.RLock()
	_, done := s.files[path]
	s.mu.RUnlock()
	if done {
		return
	}

	idx := &fileIndex{nameStarts: make(map[uint32]struct{})}

	result, err := psr.ParseFile(path)
	if err != nil {
		// Unresolvable files contribute nothing but stay resolvable to an
		// empty unit, so one bad file never aborts the run.
		s.mu.Lock()
		s.files[path] = idx
		s.mu.Unlock()
		return
	}
	idx.language = result.Language

	infos := collectDeclarations(result)

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.files[path]; ok && len(existing.decls) > 0 {
		return
	}
	for _, info := range infos {
		id := s.table.Intern(SymbolKey{
			File:   path,
			Offset: info.loc.Offset,
			Kind:   info.kind,
			Name:   info.name,
		})

		d := Declaration{
			ID:         id,
			Name:       info.name,
			Kind:       info.kind,
			File:       path,
			Location:   info.loc,
			EntryPoint: info.entry,
		}

		if info.hasGetter {
			d.GetterID = s.table.Intern(SymbolKey{
				File:   path,
				Offset: info.loc.Offset,
				Kind:   KindGetter,
				Name:   info.name,
			})
		}

		if info.member {
			s.members[info.name] = append(s.members[info.name], id)
			if d.GetterID != 0 {
				s.members[info.name] = append(s.members[info.name], d.GetterID)
			}
			s.owners[info.name] = append(s.owners[info.name], info.owner)
			if info.inherits {
				d.Override = s.inheritedElsewhere(info.name, info.owner)
			}
		} else {
			s.topLevel[info.name] = append(s.topLevel[info.name], id)
		}

		idx.nameStarts[info.nameStart] = struct{}{}
		idx.decls = append(idx.decls, d)
	}
	s.files[path] = idx
}

// inheritedElsewhere reports whether some other owner also declares the
// member name, which makes a member of an inheriting type a candidate
// override of an inherited contract. Callers hold s.mu.
func (s *Session) inheritedElsewhere(name, owner string) bool {
	for _, o := range s.owners[name] {
		if o != owner {
			return true
		}
	}
	return false
}

// Resolve produces the unit for a file indexed at session construction.
// Files the session could not parse resolve to an empty unit. Safe for
// concurrent use.
func (s *Session) Resolve(path string) (*Unit, error) {
	s.mu.RLock()
	idx, ok := s.files[path]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("file not in session: %s", path)
	}
	return s.resolveIndexed(path, idx)
}

// ResolveAdHoc resolves a single file outside the primary set, indexing
// its declarations on demand. Ad hoc files see the whole program's
// symbols; for primary files to see an ad hoc file's symbols in return,
// include it in NewSession instead.
func (s *Session) ResolveAdHoc(path string) (*Unit, error) {
	s.mu.RLock()
	idx, ok := s.files[path]
	s.mu.RUnlock()
	if !ok {
		psr := parser.New()
		defer psr.Close()
		s.indexFile(psr, path)

		s.mu.RLock()
		idx = s.files[path]
		s.mu.RUnlock()
	}
	return s.resolveIndexed(path, idx)
}

// resolveIndexed runs pass 2: walk the file emitting its cached
// declarations, every resolved reference occurrence, and export
// directives.
func (s *Session) resolveIndexed(path string, idx *fileIndex) (*Unit, error) {
	unit := NewUnit(path)
	for _, d := range idx.decls {
		unit.AddDeclaration(d)
	}
	if idx.language == parser.LangUnknown {
		return unit, nil
	}

	psr := parser.New()
	defer psr.Close()

	result, err := psr.ParseFile(path)
	if err != nil {
		// The file was readable during indexing but is not anymore.
		// Fail open with just the declaration events.
		return unit, nil
	}

	collectReferences(result, idx.nameStarts, refSink{session: s, unit: unit})
	return unit, nil
}

// refSink lets language collectors emit occurrences without knowing about
// symbol tables. Names are resolved against the session's namespaces; a
// name that resolves to several same-named declarations marks them all.
type refSink struct {
	session *Session
	unit    *Unit
}

// topLevelRef resolves a top-level name occurrence.
func (r refSink) topLevelRef(name string) {
	r.session.mu.RLock()
	ids := r.session.topLevel[name]
	r.session.mu.RUnlock()
	for _, id := range ids {
		r.unit.AddReference(id)
	}
}

// memberRef resolves a member name occurrence (property access, method
// call, operator use).
func (r refSink) memberRef(name string) {
	r.session.mu.RLock()
	ids := r.session.members[name]
	r.session.mu.RUnlock()
	for _, id := range ids {
		r.unit.AddReference(id)
	}
}

// exportRef resolves a name in an export directive. Export occurrences
// feed the export set, never the usage index.
func (r refSink) exportRef(name string) {
	r.session.mu.RLock()
	ids := r.session.topLevel[name]
	r.session.mu.RUnlock()
	for _, id := range ids {
		r.unit.AddExport(id)
	}
}

// Table exposes the session's symbol table, mainly for tests and
// diagnostics.
func (s *Session) Table() *SymbolTable {
	return s.table
}
