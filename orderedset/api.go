// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

// Package orderedset provides Set, an ordered container of unique keys
// backed by a red-black tree.
package orderedset

import (
	"cmp"
	"io"
	"iter"

	"github.com/NVIDIA/orderedtree/iterator"
	"github.com/NVIDIA/orderedtree/rbtree"
)

type Set[K any] struct {
	header *rbtree.Node[K]
	tree   *rbtree.Tree[K]
	size   int
}

// New returns an empty Set ordered by less. A nil allocator means the heap.
func New[K any](less rbtree.Less[K], allocator rbtree.Allocator[K]) (s *Set[K], err error) {
	s, err = newSet(less, allocator)
	return
}

func NewOrdered[K cmp.Ordered]() (s *Set[K]) {
	s, _ = newSet[K](cmp.Less[K], nil)
	return
}

// NewFromSeq returns a Set holding the distinct keys of seq.
func NewFromSeq[K any](seq iter.Seq[K], less rbtree.Less[K], allocator rbtree.Allocator[K]) (s *Set[K], err error) {
	s, err = newSet(less, allocator)
	if nil != err {
		return
	}
	err = s.InsertSeq(seq)
	if nil != err {
		s.Clear()
		s = nil
	}
	return
}

// Insert adds key if absent and returns an iterator to the element equal to
// key along with whether key was added.
func (s *Set[K]) Insert(key K) (it Iterator[K], inserted bool, err error) {
	it, inserted, err = s.insert(key)
	return
}

// InsertHint is Insert with a position hint, which must belong to s.
func (s *Set[K]) InsertHint(position Iterator[K], key K) (it Iterator[K], err error) {
	it, err = s.insertHint(position, key)
	return
}

func (s *Set[K]) InsertSeq(seq iter.Seq[K]) (err error) {
	err = s.insertSeq(seq)
	return
}

func (s *Set[K]) Erase(key K) (count int) {
	count = s.erase(key)
	return
}

// EraseAt removes the element at it and returns an iterator to its successor.
func (s *Set[K]) EraseAt(it Iterator[K]) (next Iterator[K], err error) {
	next, err = s.eraseAt(it)
	return
}

func (s *Set[K]) EraseRange(first Iterator[K], last Iterator[K]) (next Iterator[K], err error) {
	next, err = s.eraseRange(first, last)
	return
}

func (s *Set[K]) Find(key K) Iterator[K] {
	return s.makeIterator(s.tree.FindNode(s.header.Root(), key))
}

func (s *Set[K]) Contains(key K) bool {
	return nil != s.tree.FindNode(s.header.Root(), key)
}

func (s *Set[K]) Count(key K) int {
	if s.Contains(key) {
		return 1
	}
	return 0
}

// LowerBound returns an iterator to the first element not less than key.
func (s *Set[K]) LowerBound(key K) Iterator[K] {
	return s.makeIterator(s.tree.LowerBound(s.header.Root(), key))
}

// UpperBound returns an iterator to the first element greater than key.
func (s *Set[K]) UpperBound(key K) Iterator[K] {
	return s.makeIterator(s.tree.UpperBound(s.header.Root(), key))
}

func (s *Set[K]) EqualRange(key K) (first Iterator[K], last Iterator[K]) {
	first = s.LowerBound(key)
	last = s.UpperBound(key)
	return
}

func (s *Set[K]) Begin() Iterator[K] {
	return Iterator[K]{it: rbtree.Begin(s.header)}
}

func (s *Set[K]) End() Iterator[K] {
	return Iterator[K]{it: rbtree.End(s.header)}
}

func (s *Set[K]) RBegin() iterator.Reverse[Iterator[K]] {
	return iterator.MakeReverse(s.End())
}

func (s *Set[K]) REnd() iterator.Reverse[Iterator[K]] {
	return iterator.MakeReverse(s.Begin())
}

// All yields the elements in increasing order.
func (s *Set[K]) All() iter.Seq[K] {
	return s.all
}

// Backward yields the elements in decreasing order.
func (s *Set[K]) Backward() iter.Seq[K] {
	return s.backward
}

func (s *Set[K]) Len() int {
	return s.size
}

func (s *Set[K]) Empty() bool {
	return 0 == s.size
}

func (s *Set[K]) MaxSize() uint64 {
	return s.tree.MaxSize()
}

func (s *Set[K]) Clear() {
	s.tree.Clear(s.header.RootRef())
	s.size = 0
}

func (s *Set[K]) Swap(other *Set[K]) {
	*s, *other = *other, *s
}

// Clone returns an independent copy of s sharing its comparator and allocator.
func (s *Set[K]) Clone() (clone *Set[K], err error) {
	clone, err = s.clone()
	return
}

// Assign replaces the contents of s with those of src, leaving s unchanged
// on failure.
func (s *Set[K]) Assign(src *Set[K]) (err error) {
	err = s.assign(src)
	return
}

// KeyComp and ValueComp are the same comparator.
func (s *Set[K]) KeyComp() rbtree.Less[K] {
	return s.tree.Less()
}

func (s *Set[K]) ValueComp() rbtree.Less[K] {
	return s.tree.Less()
}

func (s *Set[K]) Allocator() rbtree.Allocator[K] {
	return s.tree.Allocator()
}

// Equal reports whether s and other hold equivalent elements under s's
// comparator.
func (s *Set[K]) Equal(other *Set[K]) bool {
	return s.equal(other)
}

// Compare orders s and other lexicographically, returning -1, 0 or +1.
func (s *Set[K]) Compare(other *Set[K]) int {
	return s.compare(other)
}

func (s *Set[K]) Less(other *Set[K]) bool {
	return s.compare(other) < 0
}

func (s *Set[K]) Validate() (err error) {
	err = s.validate()
	return
}

func (s *Set[K]) Dump(w io.Writer) (err error) {
	err = s.tree.Dump(s.header, w, rbtree.FmtDumpCallbacks[K]{})
	return
}

func (s *Set[K]) RegisterStats(group string) {
	s.tree.RegisterStats(group)
}

func (s *Set[K]) UnRegisterStats() {
	s.tree.UnRegisterStats()
}
