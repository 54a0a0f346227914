package group

import (
	"reflect"
	"sort"
	"strings"
	"testing"
)

type item struct {
	id  int
	key string
}

func keyOf(i item) string { return i.key }

func TestByPreservesOrder(t *testing.T) {
	in := []item{{1, "b"}, {2, "a"}, {3, "b"}, {4, "c"}, {5, "a"}}
	g := By(in, keyOf)

	if got, want := g.Keys(), []string{"b", "a", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	b, ok := g.Get("b")
	if !ok || len(b) != 2 || b[0].id != 1 || b[1].id != 3 {
		t.Fatalf("bucket b = %v", b)
	}
	a, _ := g.Get("a")
	if len(a) != 2 || a[0].id != 2 || a[1].id != 5 {
		t.Fatalf("bucket a = %v", a)
	}
	if _, ok := g.Get("z"); ok {
		t.Fatalf("unexpected bucket z")
	}
}

func TestByIsPartition(t *testing.T) {
	in := []item{{1, "x"}, {2, "y"}, {3, "x"}, {4, "z"}, {5, "y"}, {6, "x"}}
	g := By(in, keyOf)

	var ids []int
	for _, grp := range g.Groups() {
		for _, it := range grp.Items {
			if it.key != grp.Key {
				t.Fatalf("item %d in wrong bucket %q", it.id, grp.Key)
			}
			ids = append(ids, it.id)
		}
	}
	sort.Ints(ids)
	if !reflect.DeepEqual(ids, []int{1, 2, 3, 4, 5, 6}) {
		t.Fatalf("groups are not a permutation of the input: %v", ids)
	}
}

func TestByEmpty(t *testing.T) {
	g := By([]item(nil), keyOf)
	if g.Len() != 0 || len(g.Groups()) != 0 {
		t.Fatalf("expected empty mapping, got %d groups", g.Len())
	}
}

func TestByKeyPanicPropagates(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic from key function")
		}
	}()
	By([]item{{1, "a"}}, func(item) string { panic("boom") })
}

func TestSortByKey(t *testing.T) {
	in := []item{{1, "2024-03-01"}, {2, "2024-01-05"}, {3, "2023-12-31"}, {4, "2024-01-05"}}
	g := By(in, keyOf)
	sorted := SortByKey(g)

	want := []string{"2023-12-31", "2024-01-05", "2024-03-01"}
	if !reflect.DeepEqual(sorted.Keys(), want) {
		t.Fatalf("sorted keys = %v, want %v", sorted.Keys(), want)
	}
	for i := 1; i < len(sorted.Keys()); i++ {
		if strings.Compare(sorted.Keys()[i-1], sorted.Keys()[i]) >= 0 {
			t.Fatalf("keys not strictly ascending: %v", sorted.Keys())
		}
	}
	// Input mapping keeps first-occurrence order.
	if g.Keys()[0] != "2024-03-01" {
		t.Fatalf("SortByKey modified its input: %v", g.Keys())
	}
	// Values travel with their keys.
	v, _ := sorted.Get("2024-01-05")
	if len(v) != 2 || v[0].id != 2 || v[1].id != 4 {
		t.Fatalf("bucket 2024-01-05 = %v", v)
	}

	twice := SortByKey(sorted)
	if !reflect.DeepEqual(twice.Keys(), sorted.Keys()) {
		t.Fatalf("SortByKey not idempotent: %v vs %v", twice.Keys(), sorted.Keys())
	}
}

func TestSortByKeyDoesNotShareBuckets(t *testing.T) {
	g := By([]item{{1, "b"}, {2, "a"}, {3, "b"}}, keyOf)
	sorted := SortByKey(g)

	bucket, _ := sorted.Get("b")
	bucket[0].id = 99
	if orig, _ := g.Get("b"); orig[0].id != 1 {
		t.Fatalf("mutating the sorted copy leaked into the source: %v", orig)
	}

	g.add("b", item{4, "b"})
	if got, _ := sorted.Get("b"); len(got) != 2 {
		t.Fatalf("appending to the source leaked into the sorted copy: %v", got)
	}
}
