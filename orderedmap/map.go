// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package orderedmap

import (
	"fmt"
	"iter"

	"github.com/NVIDIA/orderedtree/blunder"
	"github.com/NVIDIA/orderedtree/logger"
	"github.com/NVIDIA/orderedtree/rbtree"
)

func newMap[K any, V any](less rbtree.Less[K], allocator rbtree.Allocator[Pair[K, V]]) (m *Map[K, V], err error) {
	if nil == less {
		err = blunder.NewError(blunder.InvalidArgError, "orderedmap.New(): less must not be nil")
		return
	}

	tree, err := rbtree.New[Pair[K, V]](func(a Pair[K, V], b Pair[K, V]) bool { return less(a.Key, b.Key) }, allocator)
	if nil != err {
		return
	}

	m = &Map[K, V]{
		header: rbtree.NewHeader[Pair[K, V]](),
		tree:   tree,
		less:   less,
		size:   0,
	}

	err = nil
	return
}

// probe is a Pair used only to search by key.
func (m *Map[K, V]) probe(key K) (pair Pair[K, V]) {
	pair.Key = key
	return
}

func (m *Map[K, V]) makeIterator(node *rbtree.Node[Pair[K, V]]) Iterator[K, V] {
	return Iterator[K, V]{it: rbtree.MakeIterator(m.header, node)}
}

func (m *Map[K, V]) insert(pair Pair[K, V]) (it Iterator[K, V], inserted bool, err error) {
	node, err := m.tree.CreateNode(pair)
	if nil != err {
		return
	}

	resident, inserted := m.tree.Insert(m.header.RootRef(), node)
	if inserted {
		m.size++
	} else {
		m.tree.DisposeNode(node)
	}

	it = m.makeIterator(resident)

	err = nil
	return
}

func (m *Map[K, V]) insertHint(position Iterator[K, V], pair Pair[K, V]) (it Iterator[K, V], err error) {
	if !position.it.BelongsTo(m.header) {
		err = blunder.NewError(blunder.RangeViolationError, "orderedmap.InsertHint(): position is not in this map")
		return
	}

	it, _, err = m.insert(pair)
	return
}

func (m *Map[K, V]) insertSeq(seq iter.Seq[Pair[K, V]]) (err error) {
	for pair := range seq {
		_, _, err = m.insert(pair)
		if nil != err {
			return
		}
	}

	err = nil
	return
}

func (m *Map[K, V]) index(key K) (value *V, err error) {
	node := m.tree.FindNode(m.header.Root(), m.probe(key))
	if nil == node {
		var it Iterator[K, V]

		it, _, err = m.insert(m.probe(key))
		if nil != err {
			return
		}
		value = it.ValuePtr()
		return
	}

	value = &node.ValueRef().Value

	err = nil
	return
}

func (m *Map[K, V]) at(key K) (value *V, err error) {
	node := m.tree.FindNode(m.header.Root(), m.probe(key))
	if nil == node {
		err = blunder.NewError(blunder.OutOfRangeError, "orderedmap.At(): key %v not found", key)
		return
	}

	value = &node.ValueRef().Value

	err = nil
	return
}

func (m *Map[K, V]) erase(key K) (count int) {
	if !m.tree.Erase(m.header.RootRef(), m.probe(key)) {
		count = 0
		return
	}

	m.size--

	count = 1
	return
}

func (m *Map[K, V]) eraseAt(it Iterator[K, V]) (next Iterator[K, V], err error) {
	if !it.it.BelongsTo(m.header) || it.IsEnd() {
		err = blunder.NewError(blunder.RangeViolationError, "orderedmap.EraseAt(): iterator does not reference an element of this map")
		return
	}

	next = it.Next()

	m.tree.EraseNode(m.header.RootRef(), it.it.Node())
	m.size--

	err = nil
	return
}

func (m *Map[K, V]) eraseRange(first Iterator[K, V], last Iterator[K, V]) (next Iterator[K, V], err error) {
	if !last.it.BelongsTo(m.header) {
		err = blunder.NewError(blunder.RangeViolationError, "orderedmap.EraseRange(): last is not in this map")
		return
	}

	for !first.Equal(last) {
		first, err = m.eraseAt(first)
		if nil != err {
			return
		}
	}

	next = last

	err = nil
	return
}

func (m *Map[K, V]) all(yield func(K, V) bool) {
	for it := m.Begin(); !it.IsEnd(); it = it.Next() {
		if !yield(it.Key(), it.Value()) {
			return
		}
	}
}

func (m *Map[K, V]) backward(yield func(K, V) bool) {
	rend := m.REnd()
	for r := m.RBegin(); !r.Equal(rend); r = r.Next() {
		it := r.Current()
		if !yield(it.Key(), it.Value()) {
			return
		}
	}
}

func (m *Map[K, V]) keys(yield func(K) bool) {
	for it := m.Begin(); !it.IsEnd(); it = it.Next() {
		if !yield(it.Key()) {
			return
		}
	}
}

func (m *Map[K, V]) values(yield func(V) bool) {
	for it := m.Begin(); !it.IsEnd(); it = it.Next() {
		if !yield(it.Value()) {
			return
		}
	}
}

func (m *Map[K, V]) clear() {
	m.tree.Clear(m.header.RootRef())
	m.size = 0
}

func (m *Map[K, V]) clone() (clone *Map[K, V], err error) {
	flog := logger.TraceEnter("m.size:", m.size)
	defer func() { flog.TraceExit("err:", err) }()

	clone, err = newMap(m.less, m.tree.Allocator())
	if nil != err {
		return
	}

	err = clone.assign(m)
	if nil != err {
		clone = nil
	}
	return
}

// assign builds the copy under a scratch header so that m is untouched if
// an allocation fails part way.
func (m *Map[K, V]) assign(src *Map[K, V]) (err error) {
	if m == src {
		err = nil
		return
	}

	scratch := rbtree.NewHeader[Pair[K, V]]()
	size := 0

	for it := src.Begin(); !it.IsEnd(); it = it.Next() {
		var node *rbtree.Node[Pair[K, V]]

		node, err = m.tree.CreateNode(it.Pair())
		if nil != err {
			m.tree.Clear(scratch.RootRef())
			logger.WarnfWithError(err, "orderedmap copy abandoned after %v of %v elements", size, src.size)
			return
		}
		if _, ok := m.tree.Insert(scratch.RootRef(), node); ok {
			size++
		} else {
			m.tree.DisposeNode(node)
		}
	}

	m.tree.Clear(m.header.RootRef())
	*m.header.RootRef() = scratch.Root()
	m.size = size

	err = nil
	return
}

func (m *Map[K, V]) validate() (err error) {
	count, err := m.tree.Validate(m.header)
	if nil != err {
		return
	}
	if count != m.size {
		err = blunder.NewError(blunder.CorruptTreeError, "orderedmap size is %v but tree holds %v nodes", m.size, count)
		return
	}

	err = nil
	return
}

type pairDumpCallbacks[K any, V any] struct{}

func (pairDumpCallbacks[K, V]) DumpValue(pair Pair[K, V]) (pairAsString string, err error) {
	pairAsString = fmt.Sprintf("%v:%v", pair.Key, pair.Value)
	err = nil
	return
}
