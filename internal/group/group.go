// Package group partitions slices into keyed buckets that remember the
// order in which their keys were first seen.
package group

import (
	"slices"
	"sort"
)

// Group is one bucket of an Ordered mapping.
type Group[T any] struct {
	Key   string
	Items []T
}

// Ordered is an insertion-ordered mapping from key to the items sharing it.
// The zero value is an empty mapping ready to use.
type Ordered[T any] struct {
	keys  []string
	items map[string][]T
}

// By partitions items by key(item). Items keep their input order inside each
// bucket and buckets are iterated in order of first occurrence.
func By[T any](items []T, key func(T) string) *Ordered[T] {
	o := &Ordered[T]{items: make(map[string][]T)}
	for _, it := range items {
		o.add(key(it), it)
	}
	return o
}

func (o *Ordered[T]) add(k string, it T) {
	if o.items == nil {
		o.items = make(map[string][]T)
	}
	if _, ok := o.items[k]; !ok {
		o.keys = append(o.keys, k)
	}
	o.items[k] = append(o.items[k], it)
}

// SortByKey returns a copy of o iterated in ascending byte-wise key order.
// Keys and buckets are cloned, so o and the copy never share backing arrays.
func SortByKey[T any](o *Ordered[T]) *Ordered[T] {
	out := &Ordered[T]{
		keys:  append([]string(nil), o.Keys()...),
		items: make(map[string][]T, o.Len()),
	}
	sort.Strings(out.keys)
	for _, k := range out.keys {
		out.items[k] = slices.Clone(o.items[k])
	}
	return out
}

// Keys returns the keys in iteration order. Callers must not modify it.
func (o *Ordered[T]) Keys() []string {
	if o == nil {
		return nil
	}
	return o.keys
}

// Get returns the bucket for k.
func (o *Ordered[T]) Get(k string) ([]T, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.items[k]
	return v, ok
}

func (o *Ordered[T]) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Each calls fn for every bucket in iteration order.
func (o *Ordered[T]) Each(fn func(key string, items []T)) {
	for _, k := range o.Keys() {
		fn(k, o.items[k])
	}
}

// Groups flattens the mapping into a slice of buckets in iteration order.
func (o *Ordered[T]) Groups() []Group[T] {
	out := make([]Group[T], 0, o.Len())
	o.Each(func(k string, items []T) {
		out = append(out, Group[T]{Key: k, Items: items})
	})
	return out
}
