// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package orderedmap

import (
	"cmp"
)

// Equal reports whether a and b hold the same keys with equal values. Keys
// are matched with a's comparator.
func Equal[K any, V comparable](a *Map[K, V], b *Map[K, V]) bool {
	return EqualFunc(a, b, func(va V, vb V) bool { return va == vb })
}

func EqualFunc[K any, V1 any, V2 any](a *Map[K, V1], b *Map[K, V2], eq func(V1, V2) bool) bool {
	if a.Len() != b.Len() {
		return false
	}

	itA := a.Begin()
	itB := b.Begin()
	for !itA.IsEnd() {
		if a.less(itA.Key(), itB.Key()) || a.less(itB.Key(), itA.Key()) {
			return false
		}
		if !eq(itA.Value(), itB.Value()) {
			return false
		}
		itA = itA.Next()
		itB = itB.Next()
	}

	return true
}

// Compare orders a and b lexicographically by their sorted (key, value)
// sequences, returning -1, 0 or +1. A proper prefix orders first.
func Compare[K any, V cmp.Ordered](a *Map[K, V], b *Map[K, V]) int {
	return CompareFunc(a, b, cmp.Compare[V])
}

func CompareFunc[K any, V1 any, V2 any](a *Map[K, V1], b *Map[K, V2], cmpValue func(V1, V2) int) int {
	itA := a.Begin()
	itB := b.Begin()
	for {
		switch {
		case itA.IsEnd() && itB.IsEnd():
			return 0
		case itA.IsEnd():
			return -1
		case itB.IsEnd():
			return 1
		}

		if a.less(itA.Key(), itB.Key()) {
			return -1
		}
		if a.less(itB.Key(), itA.Key()) {
			return 1
		}
		if c := cmpValue(itA.Value(), itB.Value()); 0 != c {
			return c
		}

		itA = itA.Next()
		itB = itB.Next()
	}
}

func Less[K any, V cmp.Ordered](a *Map[K, V], b *Map[K, V]) bool {
	return Compare(a, b) < 0
}
