// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package orderedset

import (
	"github.com/NVIDIA/orderedtree/rbtree"
)

// Iterator is a position in a Set. Elements are read-only through it.
type Iterator[K any] struct {
	it rbtree.Iterator[K]
}

// Value returns the element at it. it must not be End().
func (it Iterator[K]) Value() K {
	return it.it.Value()
}

func (it Iterator[K]) Next() Iterator[K] {
	return Iterator[K]{it: it.it.Next()}
}

func (it Iterator[K]) Prev() Iterator[K] {
	return Iterator[K]{it: it.it.Prev()}
}

func (it Iterator[K]) Equal(other Iterator[K]) bool {
	return it.it.Equal(other.it)
}

func (it Iterator[K]) IsEnd() bool {
	return it.it.IsEnd()
}
