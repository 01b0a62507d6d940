package sortutil

import (
	"testing"
)

func TestSortByProjection(t *testing.T) {
	m := map[string]int{"a": 3, "b": 1, "c": 2}

	got := Sort(m, Asc, func(_ string, v int) int { return v })

	wantKeys := []string{"b", "c", "a"}
	for i, want := range wantKeys {
		if got[i].Key != want {
			t.Errorf("position %d: key = %q, want %q", i, got[i].Key, want)
		}
	}
}

func TestSortDescNegatesOrdering(t *testing.T) {
	m := map[string]int{"a": 3, "b": 1, "c": 2}

	got := Sort(m, Desc, func(_ string, v int) int { return v })

	wantKeys := []string{"a", "c", "b"}
	for i, want := range wantKeys {
		if got[i].Key != want {
			t.Errorf("position %d: key = %q, want %q", i, got[i].Key, want)
		}
	}
}

func TestByValueDesc(t *testing.T) {
	m := map[string]int{"Button": 10, "Card": 3, "Modal": 7}

	got := ByValueDesc(m)

	wantKeys := []string{"Button", "Modal", "Card"}
	for i, want := range wantKeys {
		if got[i].Key != want {
			t.Errorf("position %d: key = %q, want %q", i, got[i].Key, want)
		}
	}
	if got[0].Value != 10 {
		t.Errorf("top value = %d, want 10", got[0].Value)
	}
}

func TestByKeyAsc(t *testing.T) {
	m := map[string][]string{
		"zeta":  {"z"},
		"alpha": {"a"},
		"mid":   {"m"},
	}

	got := ByKeyAsc(m)

	wantKeys := []string{"alpha", "mid", "zeta"}
	for i, want := range wantKeys {
		if got[i].Key != want {
			t.Errorf("position %d: key = %q, want %q", i, got[i].Key, want)
		}
	}
}

func TestSortEmptyMap(t *testing.T) {
	got := ByValueDesc(map[string]int{})
	if len(got) != 0 {
		t.Errorf("sorting an empty map yielded %d pairs", len(got))
	}
}

func TestSortTiesBreakByKeyAscending(t *testing.T) {
	m := map[string]int{"d": 2, "a": 1, "b": 2, "c": 1}

	got := Sort(m, Asc, func(_ string, v int) int { return v })

	wantKeys := []string{"a", "c", "b", "d"}
	for i, want := range wantKeys {
		if got[i].Key != want {
			t.Errorf("position %d: key = %q, want %q", i, got[i].Key, want)
		}
	}
}

// The tie-break stays name ascending under Desc too; only the projected
// ordering is negated.
func TestSortDescTiesBreakByKeyAscending(t *testing.T) {
	m := map[string]int{"Card": 5, "Badge": 5, "Alert": 9}

	got := Sort(m, Desc, func(_ string, v int) int { return v })

	wantKeys := []string{"Alert", "Badge", "Card"}
	for i, want := range wantKeys {
		if got[i].Key != want {
			t.Errorf("position %d: key = %q, want %q", i, got[i].Key, want)
		}
	}
}

// Map iteration order is randomized, so repeated sorts of a table full of
// equal counts expose any nondeterminism in the comparator.
func TestSortTiesDeterministicAcrossCalls(t *testing.T) {
	m := make(map[string]int)
	for i := 0; i < 30; i++ {
		m[string(rune('A'+i))+"Comp"] = 1
	}

	first := ByValueDesc(m)
	for run := 0; run < 20; run++ {
		again := ByValueDesc(m)
		for i := range first {
			if again[i].Key != first[i].Key {
				t.Fatalf("run %d position %d: key = %q, want %q", run, i, again[i].Key, first[i].Key)
			}
		}
	}
}
