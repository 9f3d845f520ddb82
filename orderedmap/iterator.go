// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package orderedmap

import (
	"github.com/NVIDIA/orderedtree/rbtree"
)

// Iterator is a position in a Map. The zero Iterator belongs to no Map.
type Iterator[K any, V any] struct {
	it rbtree.Iterator[Pair[K, V]]
}

// Key returns the key at it. it must not be End().
func (it Iterator[K, V]) Key() K {
	return it.it.Ref().Key
}

func (it Iterator[K, V]) Value() V {
	return it.it.Ref().Value
}

// ValuePtr returns a reference to the value at it, valid while the element
// remains in its Map.
func (it Iterator[K, V]) ValuePtr() *V {
	return &it.it.Ref().Value
}

func (it Iterator[K, V]) Pair() Pair[K, V] {
	return it.it.Value()
}

func (it Iterator[K, V]) Next() Iterator[K, V] {
	return Iterator[K, V]{it: it.it.Next()}
}

func (it Iterator[K, V]) Prev() Iterator[K, V] {
	return Iterator[K, V]{it: it.it.Prev()}
}

func (it Iterator[K, V]) Equal(other Iterator[K, V]) bool {
	return it.it.Equal(other.it)
}

func (it Iterator[K, V]) IsEnd() bool {
	return it.it.IsEnd()
}
