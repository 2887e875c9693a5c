// Package semantic provides the resolved-unit representation consumed by the
// unused-declaration analyzer, along with a tree-sitter based resolution
// session that produces units for Go and TypeScript/JavaScript sources.
//
// A Unit is a one-shot sequence of typed events (declaration-seen,
// reference-seen, export-seen) for a single file. References carry only the
// identity of their target declaration; anything beyond "this symbol was
// referenced" is not retained.
package semantic

// SymbolID is an opaque handle identifying one canonical declaration.
// The same declaration observed from any file carries the same ID.
// The zero value means "no symbol".
type SymbolID uint32

// Kind classifies a declaration. The set is closed; resolvers must not
// invent new kinds.
type Kind string

const (
	KindFunction        Kind = "function"
	KindVariable        Kind = "variable"
	KindClass           Kind = "class"
	KindMethod          Kind = "method"
	KindGetter          Kind = "getter"
	KindSetter          Kind = "setter"
	KindField           Kind = "field"
	KindType            Kind = "type"
	KindEnum            Kind = "enum"
	KindExtension       Kind = "extension"
	KindExtensionMember Kind = "extension member"
)

// String returns the string representation.
func (k Kind) String() string {
	return string(k)
}

// Location is a source position. The zero value is invalid and marks
// declarations whose span metadata could not be determined.
type Location struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Valid reports whether the location carries usable span metadata.
func (l Location) Valid() bool {
	return l.Line > 0 && l.Column > 0 && l.Offset >= 0
}

// Declaration is a named program entity eligible to be judged used or
// unused. Each declaration belongs to exactly one file.
type Declaration struct {
	ID       SymbolID
	Name     string
	Kind     Kind
	File     string
	Location Location

	// GetterID is the identity of the synthesized getter accessor for
	// field/property declarations; a reference to the getter counts as a
	// use of the field. Zero for all other kinds.
	GetterID SymbolID

	// EntryPoint marks declarations the program starts from (main, init,
	// test functions). They are exempt from being reported.
	EntryPoint bool

	// Override marks members that must exist to satisfy an inherited or
	// interface contract. They are exempt from being reported.
	Override bool
}

// EventKind discriminates unit events.
type EventKind int

const (
	// DeclarationSeen carries a Declaration defined in the unit's file.
	DeclarationSeen EventKind = iota
	// ReferenceSeen carries the identity of a referenced declaration,
	// which may live in any file of the program.
	ReferenceSeen
	// ExportSeen carries the identity of a declaration the unit's file
	// re-exports, making it reachable from outside the analyzed program.
	ExportSeen
)

// Event is one observation produced by traversing a resolved unit.
type Event struct {
	Kind EventKind

	// Decl is set for DeclarationSeen events.
	Decl Declaration

	// Target is set for ReferenceSeen and ExportSeen events.
	Target SymbolID

	// ViaExtension is set on ReferenceSeen events when the reference is an
	// extension-capability invocation: the resolver determined that Target
	// is the extension declaration supplying the invoked capability.
	ViaExtension bool
}

// Unit is the resolved representation of one file: an ordered, finite
// sequence of events. Immutable once handed to a consumer.
type Unit struct {
	Path   string
	events []Event
}

// NewUnit creates an empty unit for the given file path.
func NewUnit(path string) *Unit {
	return &Unit{Path: path}
}

// AddDeclaration records a declaration defined in this unit's file.
func (u *Unit) AddDeclaration(d Declaration) {
	d.File = u.Path
	u.events = append(u.events, Event{Kind: DeclarationSeen, Decl: d})
}

// AddReference records that this unit's code refers to the given symbol.
func (u *Unit) AddReference(id SymbolID) {
	u.events = append(u.events, Event{Kind: ReferenceSeen, Target: id})
}

// AddExtensionUse records an extension-capability invocation supplied by
// the given extension declaration.
func (u *Unit) AddExtensionUse(id SymbolID) {
	u.events = append(u.events, Event{Kind: ReferenceSeen, Target: id, ViaExtension: true})
}

// AddExport records that this unit's file re-exports the given symbol.
func (u *Unit) AddExport(id SymbolID) {
	u.events = append(u.events, Event{Kind: ExportSeen, Target: id})
}

// Visit traverses the unit's events in order. The traversal is one-shot
// per consumer and never mutates the unit.
func (u *Unit) Visit(fn func(Event)) {
	for _, ev := range u.events {
		fn(ev)
	}
}

// Len returns the number of events in the unit.
func (u *Unit) Len() int {
	return len(u.events)
}

// Resolver produces the resolved unit for a file path. Implementations
// must be safe for concurrent use; the analyzer resolves files from
// multiple workers.
type Resolver interface {
	Resolve(path string) (*Unit, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(path string) (*Unit, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(path string) (*Unit, error) {
	return f(path)
}
