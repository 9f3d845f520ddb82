// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package rbtree

import (
	"fmt"
	"io"
)

// DumpCallbacks renders values for Dump.
type DumpCallbacks[T any] interface {
	DumpValue(value T) (valueAsString string, err error)
}

// Dump writes the tree anchored at header to w, first one line per node in
// pre-order, then sideways with the root at the left margin.
func (tree *Tree[T]) Dump(header *Node[T], w io.Writer, callbacks DumpCallbacks[T]) (err error) {
	err = tree.dumpInFlatForm(header.parent, w, callbacks)
	if nil != err {
		err = fmt.Errorf("dumpInFlatForm() failed: %v", err)
		return
	}

	err = tree.dumpInTreeForm(header.parent, w, callbacks)
	if nil != err {
		err = fmt.Errorf("dumpInTreeForm() failed: %v", err)
		return
	}

	err = nil
	return
}

func dumpNodeValue[T any](node *Node[T], callbacks DumpCallbacks[T]) (valueAsString string, err error) {
	if nil == node {
		valueAsString = "nil"
		return
	}
	valueAsString, err = callbacks.DumpValue(node.value)
	return
}

func (tree *Tree[T]) dumpInFlatForm(root *Node[T], w io.Writer, callbacks DumpCallbacks[T]) (err error) {
	stack := []*Node[T]{}
	if nil != root {
		stack = append(stack, root)
	}

	for 0 < len(stack) {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		thisValue, err := dumpNodeValue(node, callbacks)
		if nil != err {
			return err
		}
		leftValue, err := dumpNodeValue(node.left, callbacks)
		if nil != err {
			return err
		}
		rightValue, err := dumpNodeValue(node.right, callbacks)
		if nil != err {
			return err
		}

		fmt.Fprintf(w, "%v Node.Value == %v Node.left.Value == %v Node.right.Value == %v\n", node.color, thisValue, leftValue, rightValue)

		if nil != node.right {
			stack = append(stack, node.right)
		}
		if nil != node.left {
			stack = append(stack, node.left)
		}
	}

	err = nil
	return
}

func (tree *Tree[T]) dumpInTreeForm(root *Node[T], w io.Writer, callbacks DumpCallbacks[T]) (err error) {
	if nil == root {
		err = nil
		return
	}

	if nil != root.right {
		err = tree.dumpInTreeFormNode(root.right, true, "", w, callbacks)
		if nil != err {
			return
		}
	}

	rootValue, err := callbacks.DumpValue(root.value)
	if nil != err {
		return
	}
	fmt.Fprintf(w, "%v\n", rootValue)

	if nil != root.left {
		err = tree.dumpInTreeFormNode(root.left, false, "", w, callbacks)
		if nil != err {
			return
		}
	}

	err = nil
	return
}

func (tree *Tree[T]) dumpInTreeFormNode(node *Node[T], isRight bool, indent string, w io.Writer, callbacks DumpCallbacks[T]) (err error) {
	if nil != node.right {
		nextIndent := indent + " |      "
		if isRight {
			nextIndent = indent + "        "
		}
		err = tree.dumpInTreeFormNode(node.right, true, nextIndent, w, callbacks)
		if nil != err {
			return
		}
	}

	branch := " \\"
	if isRight {
		branch = " /"
	}

	nodeValue, err := callbacks.DumpValue(node.value)
	if nil != err {
		return
	}

	marker := ""
	if RED == node.color {
		marker = "*"
	}
	fmt.Fprintf(w, "%v%v----- %v%v\n", indent, branch, marker, nodeValue)

	if nil != node.left {
		nextIndent := indent + "        "
		if isRight {
			nextIndent = indent + " |      "
		}
		err = tree.dumpInTreeFormNode(node.left, false, nextIndent, w, callbacks)
		if nil != err {
			return
		}
	}

	err = nil
	return
}

// FmtDumpCallbacks renders values with fmt's %v verb.
type FmtDumpCallbacks[T any] struct{}

func (FmtDumpCallbacks[T]) DumpValue(value T) (valueAsString string, err error) {
	valueAsString = fmt.Sprintf("%v", value)
	return
}
