package unused

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/halvard/deadwood/pkg/semantic"
)

// UsageIndex accumulates every declaration identity observed as
// referenced, with extension-capability invocations tracked separately
// because extensions match on the capability they supply rather than on
// being named. The index only ever grows; merging is set union, so any
// grouping and ordering of per-file merges yields the same index.
type UsageIndex struct {
	refs       *roaring.Bitmap
	extensions *roaring.Bitmap
}

// NewUsageIndex creates an empty index.
func NewUsageIndex() *UsageIndex {
	return &UsageIndex{
		refs:       roaring.New(),
		extensions: roaring.New(),
	}
}

// AddReference records a plain reference to a declaration.
func (u *UsageIndex) AddReference(id semantic.SymbolID) {
	if id != 0 {
		u.refs.Add(uint32(id))
	}
}

// AddExtensionUse records an extension-capability invocation.
func (u *UsageIndex) AddExtensionUse(id semantic.SymbolID) {
	if id != 0 {
		u.extensions.Add(uint32(id))
	}
}

// HasReference reports whether the declaration was referenced anywhere.
func (u *UsageIndex) HasReference(id semantic.SymbolID) bool {
	return id != 0 && u.refs.Contains(uint32(id))
}

// HasExtensionUse reports whether the extension's capability was invoked
// anywhere.
func (u *UsageIndex) HasExtensionUse(id semantic.SymbolID) bool {
	return id != 0 && u.extensions.Contains(uint32(id))
}

// Merge unions other into u. The operation is associative, commutative,
// and idempotent; concurrent workers' partial indices can be folded in
// any order.
func (u *UsageIndex) Merge(other *UsageIndex) {
	if other == nil {
		return
	}
	u.refs.Or(other.refs)
	u.extensions.Or(other.extensions)
}

// Cardinality returns the number of distinct referenced identities,
// counting the plain and extension sets separately.
func (u *UsageIndex) Cardinality() (refs, extensions uint64) {
	return u.refs.GetCardinality(), u.extensions.GetCardinality()
}

// ExportSet holds the identities some file re-exports, placing them on
// the program's external surface and exempting them from reporting.
type ExportSet struct {
	ids *roaring.Bitmap
}

// NewExportSet creates an empty export set.
func NewExportSet() *ExportSet {
	return &ExportSet{ids: roaring.New()}
}

// Add records a re-exported identity.
func (e *ExportSet) Add(id semantic.SymbolID) {
	if id != 0 {
		e.ids.Add(uint32(id))
	}
}

// Contains reports whether the identity is re-exported by any file.
func (e *ExportSet) Contains(id semantic.SymbolID) bool {
	return id != 0 && e.ids.Contains(uint32(id))
}

// Merge unions other into e; same algebra as UsageIndex.Merge.
func (e *ExportSet) Merge(other *ExportSet) {
	if other == nil {
		return
	}
	e.ids.Or(other.ids)
}
