package semantic

import (
	"sync"
	"testing"
)

func TestInternIsStable(t *testing.T) {
	table := NewSymbolTable()
	key := SymbolKey{File: "a.go", Offset: 10, Kind: KindFunction, Name: "foo"}

	first := table.Intern(key)
	second := table.Intern(key)

	if first == 0 {
		t.Error("interned id is the zero SymbolID")
	}
	if first != second {
		t.Errorf("same key interned to %d then %d", first, second)
	}
	if table.Len() != 1 {
		t.Errorf("Len = %d, want 1", table.Len())
	}
}

func TestInternDistinguishesKeys(t *testing.T) {
	table := NewSymbolTable()
	base := SymbolKey{File: "a.go", Offset: 10, Kind: KindFunction, Name: "foo"}

	variants := []SymbolKey{
		{File: "b.go", Offset: 10, Kind: KindFunction, Name: "foo"},
		{File: "a.go", Offset: 20, Kind: KindFunction, Name: "foo"},
		{File: "a.go", Offset: 10, Kind: KindGetter, Name: "foo"},
		{File: "a.go", Offset: 10, Kind: KindFunction, Name: "bar"},
	}

	baseID := table.Intern(base)
	for _, v := range variants {
		if table.Intern(v) == baseID {
			t.Errorf("key %+v collided with %+v", v, base)
		}
	}
}

func TestKeyRoundTrip(t *testing.T) {
	table := NewSymbolTable()
	key := SymbolKey{File: "x.ts", Offset: 3, Kind: KindClass, Name: "Widget"}
	id := table.Intern(key)

	got, ok := table.Key(id)
	if !ok || got != key {
		t.Errorf("Key(%d) = %+v, %v", id, got, ok)
	}

	if _, ok := table.Key(0); ok {
		t.Error("Key(0) resolved")
	}
	if _, ok := table.Key(id + 1); ok {
		t.Error("Key beyond table resolved")
	}

	if id2, ok := table.Lookup(key); !ok || id2 != id {
		t.Errorf("Lookup = %d, %v", id2, ok)
	}
	if _, ok := table.Lookup(SymbolKey{Name: "missing"}); ok {
		t.Error("Lookup of an unknown key succeeded")
	}
}

func TestInternConcurrent(t *testing.T) {
	table := NewSymbolTable()
	key := SymbolKey{File: "a.go", Kind: KindFunction, Name: "shared"}

	var wg sync.WaitGroup
	ids := make([]SymbolID, 16)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = table.Intern(key)
		}(i)
	}
	wg.Wait()

	for _, id := range ids[1:] {
		if id != ids[0] {
			t.Fatalf("concurrent Intern returned differing ids: %v", ids)
		}
	}
	if table.Len() != 1 {
		t.Errorf("Len = %d, want 1", table.Len())
	}
}
