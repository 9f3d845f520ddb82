// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package rbtree

type Color bool

const (
	RED   Color = true
	BLACK Color = false
)

func (color Color) String() string {
	if RED == color {
		return "RED"
	}
	return "BLACK"
}

// Node is a tree cell. The left and right links are owned by the tree; parent
// is a back-reference used only to walk upward.
type Node[T any] struct {
	value  T
	color  Color
	left   *Node[T]
	right  *Node[T]
	parent *Node[T]
}

// NewHeader returns the anchor node of an empty tree. A header's parent link
// is the root of the data tree; its own value and child links are unused.
func NewHeader[T any]() (header *Node[T]) {
	header = &Node[T]{color: BLACK}
	return
}

// Root returns the root of the tree anchored at header (nil if empty).
func (header *Node[T]) Root() *Node[T] {
	return header.parent
}

// RootRef returns the root slot of the tree anchored at header, as taken by
// the mutating Tree methods.
func (header *Node[T]) RootRef() **Node[T] {
	return &header.parent
}

func (node *Node[T]) Value() T {
	return node.value
}

func (node *Node[T]) ValueRef() *T {
	return &node.value
}

func (node *Node[T]) Color() Color {
	return node.color
}

func isRed[T any](node *Node[T]) bool {
	return (nil != node) && (RED == node.color)
}

func isBlack[T any](node *Node[T]) bool {
	return (nil == node) || (BLACK == node.color)
}

// MinNode returns the leftmost node below root (nil if root is nil).
func MinNode[T any](root *Node[T]) *Node[T] {
	if nil == root {
		return nil
	}
	for nil != root.left {
		root = root.left
	}
	return root
}

// MaxNode returns the rightmost node below root (nil if root is nil).
func MaxNode[T any](root *Node[T]) *Node[T] {
	if nil == root {
		return nil
	}
	for nil != root.right {
		root = root.right
	}
	return root
}

// Successor returns the node following node in order, or nil if node is the maximum.
func Successor[T any](node *Node[T]) *Node[T] {
	if nil != node.right {
		return MinNode(node.right)
	}
	parent := node.parent
	for (nil != parent) && (node == parent.right) {
		node = parent
		parent = parent.parent
	}
	return parent
}

// Predecessor returns the node preceding node in order, or nil if node is the minimum.
func Predecessor[T any](node *Node[T]) *Node[T] {
	if nil != node.left {
		return MaxNode(node.left)
	}
	parent := node.parent
	for (nil != parent) && (node == parent.left) {
		node = parent
		parent = parent.parent
	}
	return parent
}
