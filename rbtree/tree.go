// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

// Package rbtree implements the red-black tree engine behind the ordered
// map and set containers.
//
// A tree is anchored by a header node (see NewHeader) whose parent link is
// the root. The engine never holds the header itself: mutating methods take
// the root slot (header.RootRef()) and read-only methods take the root.
//
// Red-Black trees are described in Cormen, Leiserson, Rivest & Stein,
// "Introduction to Algorithms", chapter 13. Absent children play the role
// of the black leaves.
package rbtree

import (
	"github.com/NVIDIA/orderedtree/blunder"
	"github.com/NVIDIA/orderedtree/logger"
)

// Less reports whether a strictly precedes b. It must be a strict weak
// ordering; a and b are equivalent when neither precedes the other.
type Less[T any] func(a T, b T) bool

type Tree[T any] struct {
	less       Less[T]
	allocator  Allocator[T]
	stats      *treeStats
	statsGroup string
}

// New returns an engine ordering values by less and taking nodes from
// allocator (a HeapAllocator if nil).
func New[T any](less Less[T], allocator Allocator[T]) (tree *Tree[T], err error) {
	if nil == less {
		err = blunder.NewError(blunder.InvalidArgError, "rbtree.New(): less must not be nil")
		return
	}
	if nil == allocator {
		allocator = HeapAllocator[T]{}
	}

	tree = &Tree[T]{
		less:      less,
		allocator: allocator,
		stats:     newTreeStats(),
	}

	err = nil
	return
}

func (tree *Tree[T]) Less() Less[T] {
	return tree.less
}

func (tree *Tree[T]) Allocator() Allocator[T] {
	return tree.allocator
}

// MaxSize is the allocator's advisory limit on the number of nodes.
func (tree *Tree[T]) MaxSize() uint64 {
	return tree.allocator.MaxNodes()
}

// CreateNode allocates a RED node holding value that is not yet in any tree.
func (tree *Tree[T]) CreateNode(value T) (node *Node[T], err error) {
	node, err = tree.allocator.Allocate()
	if nil != err {
		if blunder.IsNot(err, blunder.OutOfMemoryError) {
			err = blunder.AddError(err, blunder.OutOfMemoryError)
		}
		node = nil
		return
	}
	if nil == node {
		err = blunder.NewError(blunder.OutOfMemoryError, "rbtree.CreateNode(): allocator returned no node")
		return
	}

	node.value = value
	node.color = RED
	node.left = nil
	node.right = nil
	node.parent = nil

	err = nil
	return
}

// DisposeNode scrubs node and hands it back to the allocator. node must not
// be reachable from any root.
func (tree *Tree[T]) DisposeNode(node *Node[T]) {
	var zero T

	node.value = zero
	node.left = nil
	node.right = nil
	node.parent = nil

	tree.allocator.Deallocate(node)
}

func (tree *Tree[T]) equivalent(a T, b T) bool {
	return !tree.less(a, b) && !tree.less(b, a)
}

// Insert links node into the tree rooted at *rootRef and rebalances.
//
// If a value equivalent to node's is already present, the tree is left
// unchanged and that resident node is returned with ok == false. node is
// then still owned by the caller, who must DisposeNode() it.
func (tree *Tree[T]) Insert(rootRef **Node[T], node *Node[T]) (resident *Node[T], ok bool) {
	var (
		goLeft bool
		parent *Node[T]
	)

	cursor := *rootRef
	for nil != cursor {
		parent = cursor
		switch {
		case tree.less(node.value, cursor.value):
			goLeft = true
			cursor = cursor.left
		case tree.less(cursor.value, node.value):
			goLeft = false
			cursor = cursor.right
		default:
			tree.stats.DuplicateInserts.Increment()
			resident = cursor
			ok = false
			return
		}
	}

	node.parent = parent
	node.left = nil
	node.right = nil
	node.color = RED

	switch {
	case nil == parent:
		*rootRef = node
	case goLeft:
		parent.left = node
	default:
		parent.right = node
	}

	tree.insertFixup(rootRef, node)
	tree.stats.Inserts.Increment()

	resident = node
	ok = true
	return
}

func (tree *Tree[T]) insertFixup(rootRef **Node[T], node *Node[T]) {
	var steps uint64

	// parent RED implies parent is not the root, so grandparent exists
	for isRed(node.parent) {
		parent := node.parent
		grandparent := parent.parent
		steps++

		if parent == grandparent.left {
			uncle := grandparent.right
			if isRed(uncle) {
				parent.color = BLACK
				uncle.color = BLACK
				grandparent.color = RED
				node = grandparent
				continue
			}
			if node == parent.right {
				node = parent
				tree.rotateLeft(rootRef, node)
				parent = node.parent
			}
			parent.color = BLACK
			grandparent.color = RED
			tree.rotateRight(rootRef, grandparent)
		} else {
			uncle := grandparent.left
			if isRed(uncle) {
				parent.color = BLACK
				uncle.color = BLACK
				grandparent.color = RED
				node = grandparent
				continue
			}
			if node == parent.left {
				node = parent
				tree.rotateRight(rootRef, node)
				parent = node.parent
			}
			parent.color = BLACK
			grandparent.color = RED
			tree.rotateLeft(rootRef, grandparent)
		}
	}

	(*rootRef).color = BLACK

	tree.stats.InsertFixupSteps.Add(steps)
	if logger.TraceEnabled("rbtree") {
		logger.Tracef("insert fixup took %v steps", steps)
	}
}

// Erase removes the node equivalent to value, if any.
func (tree *Tree[T]) Erase(rootRef **Node[T], value T) (erased bool) {
	node := tree.FindNode(*rootRef, value)
	if nil == node {
		erased = false
		return
	}

	tree.EraseNode(rootRef, node)

	erased = true
	return
}

// EraseNode unlinks node from the tree rooted at *rootRef, rebalances, and
// disposes of node.
//
// When node has two children its in-order successor node is moved into
// node's place, so no other node changes identity.
func (tree *Tree[T]) EraseNode(rootRef **Node[T], node *Node[T]) {
	var (
		x       *Node[T] // takes the place of the removed position (possibly nil)
		xParent *Node[T] // parent of x, tracked since x may be nil
	)

	removedColor := node.color

	switch {
	case nil == node.left:
		x = node.right
		xParent = node.parent
		tree.transplant(rootRef, node, node.right)
	case nil == node.right:
		x = node.left
		xParent = node.parent
		tree.transplant(rootRef, node, node.left)
	default:
		successor := MinNode(node.right)
		removedColor = successor.color
		x = successor.right

		if successor.parent == node {
			xParent = successor
		} else {
			xParent = successor.parent
			tree.transplant(rootRef, successor, successor.right)
			successor.right = node.right
			successor.right.parent = successor
		}

		tree.transplant(rootRef, node, successor)
		successor.left = node.left
		successor.left.parent = successor
		successor.color = node.color
	}

	if BLACK == removedColor {
		tree.eraseFixup(rootRef, x, xParent)
	}

	tree.DisposeNode(node)
	tree.stats.Erases.Increment()
}

// transplant replaces the subtree rooted at u with the one rooted at v
func (tree *Tree[T]) transplant(rootRef **Node[T], u *Node[T], v *Node[T]) {
	switch {
	case nil == u.parent:
		*rootRef = v
	case u == u.parent.left:
		u.parent.left = v
	default:
		u.parent.right = v
	}
	if nil != v {
		v.parent = u.parent
	}
}

// eraseFixup resolves the extra black carried by x
func (tree *Tree[T]) eraseFixup(rootRef **Node[T], x *Node[T], xParent *Node[T]) {
	var steps uint64

	for (x != *rootRef) && isBlack(x) {
		steps++

		if x == xParent.left {
			sibling := xParent.right
			if isRed(sibling) {
				sibling.color = BLACK
				xParent.color = RED
				tree.rotateLeft(rootRef, xParent)
				sibling = xParent.right
			}
			if isBlack(sibling.left) && isBlack(sibling.right) {
				sibling.color = RED
				x = xParent
				xParent = x.parent
				continue
			}
			if isBlack(sibling.right) {
				sibling.left.color = BLACK
				sibling.color = RED
				tree.rotateRight(rootRef, sibling)
				sibling = xParent.right
			}
			sibling.color = xParent.color
			xParent.color = BLACK
			sibling.right.color = BLACK
			tree.rotateLeft(rootRef, xParent)
		} else {
			sibling := xParent.left
			if isRed(sibling) {
				sibling.color = BLACK
				xParent.color = RED
				tree.rotateRight(rootRef, xParent)
				sibling = xParent.left
			}
			if isBlack(sibling.left) && isBlack(sibling.right) {
				sibling.color = RED
				x = xParent
				xParent = x.parent
				continue
			}
			if isBlack(sibling.left) {
				sibling.right.color = BLACK
				sibling.color = RED
				tree.rotateLeft(rootRef, sibling)
				sibling = xParent.left
			}
			sibling.color = xParent.color
			xParent.color = BLACK
			sibling.left.color = BLACK
			tree.rotateRight(rootRef, xParent)
		}

		x = *rootRef
		xParent = nil
	}

	if nil != x {
		x.color = BLACK
	}

	tree.stats.EraseFixupSteps.Add(steps)
	if logger.TraceEnabled("rbtree") {
		logger.Tracef("erase fixup took %v steps", steps)
	}
}

func (tree *Tree[T]) rotateLeft(rootRef **Node[T], x *Node[T]) {
	y := x.right

	x.right = y.left
	if nil != y.left {
		y.left.parent = x
	}

	tree.transplant(rootRef, x, y)

	y.left = x
	x.parent = y

	tree.stats.Rotations.Increment()
}

func (tree *Tree[T]) rotateRight(rootRef **Node[T], x *Node[T]) {
	y := x.left

	x.left = y.right
	if nil != y.right {
		y.right.parent = x
	}

	tree.transplant(rootRef, x, y)

	y.right = x
	x.parent = y

	tree.stats.Rotations.Increment()
}

// FindNode returns the node equivalent to value, or nil.
func (tree *Tree[T]) FindNode(root *Node[T], value T) *Node[T] {
	node := root
	for nil != node {
		switch {
		case tree.less(value, node.value):
			node = node.left
		case tree.less(node.value, value):
			node = node.right
		default:
			return node
		}
	}
	return nil
}

// LowerBound returns the first node not less than value, or nil.
func (tree *Tree[T]) LowerBound(root *Node[T], value T) (bound *Node[T]) {
	node := root
	for nil != node {
		if tree.less(node.value, value) {
			node = node.right
		} else {
			bound = node
			node = node.left
		}
	}
	return
}

// UpperBound returns the first node greater than value, or nil.
func (tree *Tree[T]) UpperBound(root *Node[T], value T) (bound *Node[T]) {
	node := root
	for nil != node {
		if tree.less(value, node.value) {
			bound = node
			node = node.left
		} else {
			node = node.right
		}
	}
	return
}

// Clear disposes of every node reachable from *rootRef and empties the tree.
func (tree *Tree[T]) Clear(rootRef **Node[T]) {
	if nil == *rootRef {
		return
	}

	disposed := 0
	stack := []*Node[T]{*rootRef}

	for 0 < len(stack) {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if nil != node.left {
			stack = append(stack, node.left)
		}
		if nil != node.right {
			stack = append(stack, node.right)
		}

		tree.DisposeNode(node)
		disposed++
	}

	*rootRef = nil

	tree.stats.Clears.Increment()
	logger.Tracef("rbtree.Clear() disposed of %v nodes", disposed)
}
