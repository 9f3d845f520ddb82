// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

// Package orderedmap provides Map, an ordered key to value container backed
// by a red-black tree.
//
// Keys are unique under the configured comparator: two keys are the same
// key when neither precedes the other. Iteration visits keys in increasing
// order. A Map is not safe for concurrent use.
package orderedmap

import (
	"cmp"
	"io"
	"iter"

	"github.com/NVIDIA/orderedtree/iterator"
	"github.com/NVIDIA/orderedtree/rbtree"
)

type Pair[K any, V any] struct {
	Key   K
	Value V
}

func MakePair[K any, V any](key K, value V) Pair[K, V] {
	return Pair[K, V]{Key: key, Value: value}
}

type Map[K any, V any] struct {
	header *rbtree.Node[Pair[K, V]]
	tree   *rbtree.Tree[Pair[K, V]]
	less   rbtree.Less[K]
	size   int
}

// New returns an empty Map ordered by less. Nodes come from allocator, or
// from the heap if allocator is nil.
func New[K any, V any](less rbtree.Less[K], allocator rbtree.Allocator[Pair[K, V]]) (m *Map[K, V], err error) {
	m, err = newMap(less, allocator)
	return
}

// NewOrdered returns an empty heap-backed Map ordered by cmp.Less.
func NewOrdered[K cmp.Ordered, V any]() (m *Map[K, V]) {
	m, _ = newMap[K, V](cmp.Less[K], nil)
	return
}

// NewFromSeq returns a Map holding the pairs of seq. Later pairs whose keys
// are already present are dropped.
func NewFromSeq[K any, V any](seq iter.Seq[Pair[K, V]], less rbtree.Less[K], allocator rbtree.Allocator[Pair[K, V]]) (m *Map[K, V], err error) {
	m, err = newMap(less, allocator)
	if nil != err {
		return
	}
	err = m.InsertSeq(seq)
	if nil != err {
		m.Clear()
		m = nil
	}
	return
}

// Insert adds pair unless its key is already present. It returns an
// iterator to the element with pair's key and whether pair was added.
func (m *Map[K, V]) Insert(pair Pair[K, V]) (it Iterator[K, V], inserted bool, err error) {
	it, inserted, err = m.insert(pair)
	return
}

// InsertHint is Insert with a position hint. position must belong to m.
func (m *Map[K, V]) InsertHint(position Iterator[K, V], pair Pair[K, V]) (it Iterator[K, V], err error) {
	it, err = m.insertHint(position, pair)
	return
}

func (m *Map[K, V]) InsertSeq(seq iter.Seq[Pair[K, V]]) (err error) {
	err = m.insertSeq(seq)
	return
}

// Index returns a reference to the value for key, inserting key with a zero
// value first if it is absent.
func (m *Map[K, V]) Index(key K) (value *V, err error) {
	value, err = m.index(key)
	return
}

// At returns a reference to the value for key. An absent key is an
// OutOfRangeError.
func (m *Map[K, V]) At(key K) (value *V, err error) {
	value, err = m.at(key)
	return
}

// Erase removes key and returns the number of elements removed (0 or 1).
func (m *Map[K, V]) Erase(key K) (count int) {
	count = m.erase(key)
	return
}

// EraseAt removes the element at it and returns an iterator to the element
// that followed it. Iterators to other elements remain valid.
func (m *Map[K, V]) EraseAt(it Iterator[K, V]) (next Iterator[K, V], err error) {
	next, err = m.eraseAt(it)
	return
}

// EraseRange removes [first, last) and returns last.
func (m *Map[K, V]) EraseRange(first Iterator[K, V], last Iterator[K, V]) (next Iterator[K, V], err error) {
	next, err = m.eraseRange(first, last)
	return
}

// Find returns an iterator to key, or End() if key is absent.
func (m *Map[K, V]) Find(key K) Iterator[K, V] {
	return m.makeIterator(m.tree.FindNode(m.header.Root(), m.probe(key)))
}

func (m *Map[K, V]) Count(key K) int {
	if nil == m.tree.FindNode(m.header.Root(), m.probe(key)) {
		return 0
	}
	return 1
}

// LowerBound returns an iterator to the first key not less than key.
func (m *Map[K, V]) LowerBound(key K) Iterator[K, V] {
	return m.makeIterator(m.tree.LowerBound(m.header.Root(), m.probe(key)))
}

// UpperBound returns an iterator to the first key greater than key.
func (m *Map[K, V]) UpperBound(key K) Iterator[K, V] {
	return m.makeIterator(m.tree.UpperBound(m.header.Root(), m.probe(key)))
}

func (m *Map[K, V]) EqualRange(key K) (first Iterator[K, V], last Iterator[K, V]) {
	first = m.LowerBound(key)
	last = m.UpperBound(key)
	return
}

func (m *Map[K, V]) Begin() Iterator[K, V] {
	return Iterator[K, V]{it: rbtree.Begin(m.header)}
}

func (m *Map[K, V]) End() Iterator[K, V] {
	return Iterator[K, V]{it: rbtree.End(m.header)}
}

func (m *Map[K, V]) RBegin() iterator.Reverse[Iterator[K, V]] {
	return iterator.MakeReverse(m.End())
}

func (m *Map[K, V]) REnd() iterator.Reverse[Iterator[K, V]] {
	return iterator.MakeReverse(m.Begin())
}

// All yields every key and value in increasing key order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return m.all
}

// Backward yields every key and value in decreasing key order.
func (m *Map[K, V]) Backward() iter.Seq2[K, V] {
	return m.backward
}

func (m *Map[K, V]) Keys() iter.Seq[K] {
	return m.keys
}

func (m *Map[K, V]) Values() iter.Seq[V] {
	return m.values
}

func (m *Map[K, V]) Len() int {
	return m.size
}

func (m *Map[K, V]) Empty() bool {
	return 0 == m.size
}

// MaxSize is the allocator's advisory limit on the number of elements.
func (m *Map[K, V]) MaxSize() uint64 {
	return m.tree.MaxSize()
}

func (m *Map[K, V]) Clear() {
	m.clear()
}

// Swap exchanges the contents of m and other. Iterators follow their
// elements into the other Map.
func (m *Map[K, V]) Swap(other *Map[K, V]) {
	*m, *other = *other, *m
}

// Clone returns an independent copy of m using the same comparator and
// allocator.
func (m *Map[K, V]) Clone() (clone *Map[K, V], err error) {
	clone, err = m.clone()
	return
}

// Assign replaces the contents of m with a copy of the contents of src.
// On failure m is left unchanged.
func (m *Map[K, V]) Assign(src *Map[K, V]) (err error) {
	err = m.assign(src)
	return
}

func (m *Map[K, V]) KeyComp() rbtree.Less[K] {
	return m.less
}

// ValueComp orders pairs by key.
func (m *Map[K, V]) ValueComp() rbtree.Less[Pair[K, V]] {
	return m.tree.Less()
}

func (m *Map[K, V]) Allocator() rbtree.Allocator[Pair[K, V]] {
	return m.tree.Allocator()
}

// Validate checks the tree's invariants and that Len() matches the number
// of nodes.
func (m *Map[K, V]) Validate() (err error) {
	err = m.validate()
	return
}

// Dump writes the tree structure of m to w.
func (m *Map[K, V]) Dump(w io.Writer) (err error) {
	err = m.tree.Dump(m.header, w, pairDumpCallbacks[K, V]{})
	return
}

// RegisterStats publishes the tree counters of m as "rbtree.<group>".
func (m *Map[K, V]) RegisterStats(group string) {
	m.tree.RegisterStats(group)
}

func (m *Map[K, V]) UnRegisterStats() {
	m.tree.UnRegisterStats()
}
