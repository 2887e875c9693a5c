package unused

import (
	"strings"
	"testing"

	"github.com/halvard/deadwood/pkg/semantic"
)

func TestCollectFileSingleTraversal(t *testing.T) {
	u := semantic.NewUnit("lib.ts")
	u.AddDeclaration(decl(1, "render", semantic.KindFunction))
	u.AddDeclaration(decl(2, "theme", semantic.KindVariable))
	u.AddReference(5)
	u.AddExtensionUse(6)
	u.AddExport(7)

	res := collectFile(u)

	if res.path != "lib.ts" {
		t.Errorf("path = %q", res.path)
	}
	if len(res.decls) != 2 {
		t.Fatalf("collected %d declarations, want 2", len(res.decls))
	}
	if !res.usage.HasReference(5) {
		t.Error("reference event not recorded")
	}
	if !res.usage.HasExtensionUse(6) {
		t.Error("extension use event not recorded")
	}
	if res.usage.HasReference(6) {
		t.Error("extension use leaked into the plain reference set")
	}
	if !res.exports.Contains(7) {
		t.Error("export event not recorded")
	}
	if res.usage.HasReference(7) {
		t.Error("export event counted as a usage")
	}
}

func TestEligible(t *testing.T) {
	cases := []struct {
		name string
		decl semantic.Declaration
		want bool
	}{
		{"function", decl(1, "f", semantic.KindFunction), true},
		{"field", decl(2, "x", semantic.KindField), true},
		{"extension member", decl(3, "pretty", semantic.KindExtensionMember), true},
		{"entry point", func() semantic.Declaration {
			d := decl(4, "main", semantic.KindFunction)
			d.EntryPoint = true
			return d
		}(), false},
		{"override", func() semantic.Declaration {
			d := decl(5, "String", semantic.KindMethod)
			d.Override = true
			return d
		}(), false},
		{"unknown kind", decl(6, "x", semantic.Kind("parameter")), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := eligible(tc.decl); got != tc.want {
				t.Errorf("eligible(%s) = %v, want %v", tc.decl.Name, got, tc.want)
			}
		})
	}
}

func TestFingerprintStability(t *testing.T) {
	a := Fingerprint("helper", semantic.KindFunction, "pkg/a.go", 12)
	b := Fingerprint("helper", semantic.KindFunction, "pkg/a.go", 12)
	if a != b {
		t.Error("identical inputs produced different fingerprints")
	}
	if len(a) != 16 || strings.ToLower(a) != a {
		t.Errorf("fingerprint %q is not 16 lowercase hex chars", a)
	}

	if a == Fingerprint("helper", semantic.KindFunction, "pkg/a.go", 13) {
		t.Error("line change did not change the fingerprint")
	}
	if a == Fingerprint("helper", semantic.KindMethod, "pkg/a.go", 12) {
		t.Error("kind change did not change the fingerprint")
	}
}

func TestIsUsedGetterEquivalence(t *testing.T) {
	idx := NewUsageIndex()
	idx.AddReference(10)

	field := decl(3, "count", semantic.KindField)
	field.GetterID = 10
	if !isUsed(field, idx) {
		t.Error("getter reference did not mark the field as used")
	}

	plain := decl(4, "other", semantic.KindField)
	if isUsed(plain, idx) {
		t.Error("unreferenced field reported as used")
	}
}
