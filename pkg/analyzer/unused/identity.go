package unused

import (
	"encoding/hex"
	"strconv"

	"github.com/zeebo/blake3"

	"github.com/halvard/deadwood/pkg/semantic"
)

// isUsed applies the identity-equivalence rules to decide whether a
// declaration has any matching reference. A field or property counts as
// used when its synthesized getter accessor is referenced; this is the
// only cross-kind equivalence. Extensions additionally match on
// capability invocations.
func isUsed(d semantic.Declaration, idx *UsageIndex) bool {
	if idx.HasReference(d.ID) {
		return true
	}
	if idx.HasExtensionUse(d.ID) {
		return true
	}
	return d.GetterID != 0 && idx.HasReference(d.GetterID)
}

// Fingerprint computes a stable cross-run identity for a declaration,
// usable in ignore lists. It hashes the name, kind, line, and the path as
// reported, so it survives re-analysis but not moving the declaration.
func Fingerprint(name string, kind semantic.Kind, path string, line int) string {
	data := name + ":" + string(kind) + ":" + path + ":" + strconv.Itoa(line)
	sum := blake3.Sum256([]byte(data))
	return hex.EncodeToString(sum[:8])
}
