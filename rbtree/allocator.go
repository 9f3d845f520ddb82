// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package rbtree

import (
	"math"
	"unsafe"
)

// Allocator supplies node storage to a Tree. The Tree itself initializes a
// node after Allocate() and scrubs it before Deallocate().
type Allocator[T any] interface {
	Allocate() (node *Node[T], err error)
	Deallocate(node *Node[T])
	MaxNodes() uint64 // advisory upper bound on simultaneously allocated nodes
}

// HeapAllocator takes nodes from the Go heap and leaves freed ones to the
// garbage collector.
type HeapAllocator[T any] struct{}

func (HeapAllocator[T]) Allocate() (node *Node[T], err error) {
	node = new(Node[T])
	return
}

func (HeapAllocator[T]) Deallocate(node *Node[T]) {}

func (HeapAllocator[T]) MaxNodes() uint64 {
	var node Node[T]
	return uint64(math.MaxInt64) / uint64(unsafe.Sizeof(node))
}
