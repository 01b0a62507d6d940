// Package sortutil provides key-projected ordering over string-keyed maps,
// used for every usage table in the report.
package sortutil

import (
	"cmp"
	"sort"
)

// Direction selects ascending or descending order.
type Direction int

const (
	Asc Direction = iota
	Desc
)

// Pair is one map entry in sorted position.
type Pair[V any] struct {
	Key   string
	Value V
}

// Sort orders the entries of m by the projection key(k, v). Desc negates the
// natural ordering. Entries with equal projections fall back to map key
// ascending, so the result is deterministic regardless of map iteration order.
func Sort[V any, K cmp.Ordered](m map[string]V, dir Direction, key func(k string, v V) K) []Pair[V] {
	pairs := make([]Pair[V], 0, len(m))
	for k, v := range m {
		pairs = append(pairs, Pair[V]{Key: k, Value: v})
	}

	sort.Slice(pairs, func(i, j int) bool {
		c := cmp.Compare(key(pairs[i].Key, pairs[i].Value), key(pairs[j].Key, pairs[j].Value))
		if dir == Desc {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
		return pairs[i].Key < pairs[j].Key
	})

	return pairs
}

// ByValueDesc orders a usage table by its counts, highest first.
func ByValueDesc(m map[string]int) []Pair[int] {
	return Sort(m, Desc, func(_ string, v int) int { return v })
}

// ByKeyAsc orders a map alphabetically by key.
func ByKeyAsc[V any](m map[string]V) []Pair[V] {
	return Sort(m, Asc, func(k string, _ V) string { return k })
}
