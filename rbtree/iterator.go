// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package rbtree

// Iterator is a position in the tree anchored at header. A nil node is the
// end position, one past the maximum.
//
// An Iterator stays valid until the node it refers to is erased.
type Iterator[T any] struct {
	header *Node[T]
	node   *Node[T]
}

func MakeIterator[T any](header *Node[T], node *Node[T]) Iterator[T] {
	return Iterator[T]{header: header, node: node}
}

// Begin returns an iterator at the minimum (End if the tree is empty).
func Begin[T any](header *Node[T]) Iterator[T] {
	return Iterator[T]{header: header, node: MinNode(header.parent)}
}

func End[T any](header *Node[T]) Iterator[T] {
	return Iterator[T]{header: header, node: nil}
}

// Next advances to the successor. The maximum advances to End; End stays at End.
func (it Iterator[T]) Next() Iterator[T] {
	if nil == it.node {
		return it
	}
	return Iterator[T]{header: it.header, node: Successor(it.node)}
}

// Prev steps back to the predecessor. End steps back to the maximum, which
// is found via the header. The minimum steps back to End.
func (it Iterator[T]) Prev() Iterator[T] {
	if nil == it.node {
		return Iterator[T]{header: it.header, node: MaxNode(it.header.parent)}
	}
	return Iterator[T]{header: it.header, node: Predecessor(it.node)}
}

// Value returns the value at it. it must not be End.
func (it Iterator[T]) Value() T {
	return it.node.value
}

// Ref returns a reference to the value at it. it must not be End.
func (it Iterator[T]) Ref() *T {
	return &it.node.value
}

func (it Iterator[T]) IsEnd() bool {
	return nil == it.node
}

// Equal reports whether both iterators are anchored at the same header and
// refer to the same node (or are both End).
func (it Iterator[T]) Equal(other Iterator[T]) bool {
	return (it.header == other.header) && (it.node == other.node)
}

func (it Iterator[T]) Node() *Node[T] {
	return it.node
}

func (it Iterator[T]) Header() *Node[T] {
	return it.header
}

func (it Iterator[T]) BelongsTo(header *Node[T]) bool {
	return (nil != header) && (it.header == header)
}
