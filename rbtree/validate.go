// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package rbtree

import (
	"github.com/NVIDIA/orderedtree/blunder"
)

// Validate checks every red-black and linkage invariant of the tree anchored
// at header and returns the number of nodes found.
//
// Checked: the root is BLACK and has no parent, no RED node has a RED child,
// every path has the same black height, each child points back at its
// parent, and in-order values strictly increase.
func (tree *Tree[T]) Validate(header *Node[T]) (count int, err error) {
	root := header.parent
	if nil == root {
		err = nil
		return
	}

	if nil != root.parent {
		err = blunder.NewError(blunder.CorruptTreeError, "root has a parent link")
		return
	}
	if RED == root.color {
		err = blunder.NewError(blunder.CorruptTreeError, "root is RED")
		return
	}

	_, count, err = tree.validateSubtree(root)
	if nil != err {
		return
	}

	var previous *Node[T]
	for node := MinNode(root); nil != node; node = Successor(node) {
		if (nil != previous) && !tree.less(previous.value, node.value) {
			err = blunder.NewError(blunder.CorruptTreeError, "values out of order: %v then %v", previous.value, node.value)
			return
		}
		previous = node
	}

	err = nil
	return
}

func (tree *Tree[T]) validateSubtree(node *Node[T]) (blackHeight int, count int, err error) {
	if nil == node {
		blackHeight = 1
		return
	}

	for _, child := range []*Node[T]{node.left, node.right} {
		if nil == child {
			continue
		}
		if child.parent != node {
			err = blunder.NewError(blunder.CorruptTreeError, "child %v does not link back to parent %v", child.value, node.value)
			return
		}
		if isRed(node) && isRed(child) {
			err = blunder.NewError(blunder.CorruptTreeError, "RED node %v has RED child %v", node.value, child.value)
			return
		}
	}

	leftBlackHeight, leftCount, err := tree.validateSubtree(node.left)
	if nil != err {
		return
	}
	rightBlackHeight, rightCount, err := tree.validateSubtree(node.right)
	if nil != err {
		return
	}

	if leftBlackHeight != rightBlackHeight {
		err = blunder.NewError(blunder.CorruptTreeError, "node %v has black heights %v (left) and %v (right)", node.value, leftBlackHeight, rightBlackHeight)
		return
	}

	blackHeight = leftBlackHeight
	if BLACK == node.color {
		blackHeight++
	}
	count = leftCount + rightCount + 1

	err = nil
	return
}
