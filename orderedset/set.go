// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package orderedset

import (
	"iter"

	"github.com/NVIDIA/orderedtree/blunder"
	"github.com/NVIDIA/orderedtree/logger"
	"github.com/NVIDIA/orderedtree/rbtree"
)

func newSet[K any](less rbtree.Less[K], allocator rbtree.Allocator[K]) (s *Set[K], err error) {
	tree, err := rbtree.New[K](less, allocator)
	if nil != err {
		return
	}

	s = &Set[K]{
		header: rbtree.NewHeader[K](),
		tree:   tree,
		size:   0,
	}

	err = nil
	return
}

func (s *Set[K]) makeIterator(node *rbtree.Node[K]) Iterator[K] {
	return Iterator[K]{it: rbtree.MakeIterator(s.header, node)}
}

func (s *Set[K]) belongs(it Iterator[K]) bool {
	return it.it.BelongsTo(s.header)
}

func (s *Set[K]) insert(key K) (it Iterator[K], inserted bool, err error) {
	node, err := s.tree.CreateNode(key)
	if nil != err {
		return
	}

	resident, inserted := s.tree.Insert(s.header.RootRef(), node)
	if inserted {
		s.size++
	} else {
		s.tree.DisposeNode(node)
	}

	it = s.makeIterator(resident)

	err = nil
	return
}

func (s *Set[K]) insertHint(position Iterator[K], key K) (it Iterator[K], err error) {
	if !s.belongs(position) {
		err = blunder.NewError(blunder.RangeViolationError, "orderedset.InsertHint(): position is not in this set")
		return
	}

	it, _, err = s.insert(key)
	return
}

func (s *Set[K]) insertSeq(seq iter.Seq[K]) (err error) {
	for key := range seq {
		_, _, err = s.insert(key)
		if nil != err {
			return
		}
	}

	err = nil
	return
}

func (s *Set[K]) erase(key K) (count int) {
	if s.tree.Erase(s.header.RootRef(), key) {
		s.size--
		count = 1
	}
	return
}

func (s *Set[K]) eraseAt(it Iterator[K]) (next Iterator[K], err error) {
	if !s.belongs(it) || it.IsEnd() {
		err = blunder.NewError(blunder.RangeViolationError, "orderedset.EraseAt(): iterator does not reference an element of this set")
		return
	}

	next = it.Next()

	s.tree.EraseNode(s.header.RootRef(), it.it.Node())
	s.size--

	err = nil
	return
}

func (s *Set[K]) eraseRange(first Iterator[K], last Iterator[K]) (next Iterator[K], err error) {
	if !s.belongs(last) {
		err = blunder.NewError(blunder.RangeViolationError, "orderedset.EraseRange(): last is not in this set")
		return
	}

	for !first.Equal(last) {
		first, err = s.eraseAt(first)
		if nil != err {
			return
		}
	}

	next = last

	err = nil
	return
}

func (s *Set[K]) all(yield func(K) bool) {
	for it := s.Begin(); !it.IsEnd(); it = it.Next() {
		if !yield(it.Value()) {
			return
		}
	}
}

func (s *Set[K]) backward(yield func(K) bool) {
	rend := s.REnd()
	for r := s.RBegin(); !r.Equal(rend); r = r.Next() {
		if !yield(r.Current().Value()) {
			return
		}
	}
}

func (s *Set[K]) clone() (clone *Set[K], err error) {
	flog := logger.TraceEnter("s.size:", s.size)
	defer func() { flog.TraceExit("err:", err) }()

	clone, err = newSet(s.tree.Less(), s.tree.Allocator())
	if nil != err {
		return
	}

	err = clone.assign(s)
	if nil != err {
		clone = nil
	}
	return
}

func (s *Set[K]) assign(src *Set[K]) (err error) {
	if s == src {
		err = nil
		return
	}

	scratch := rbtree.NewHeader[K]()
	size := 0

	for it := src.Begin(); !it.IsEnd(); it = it.Next() {
		var node *rbtree.Node[K]

		node, err = s.tree.CreateNode(it.Value())
		if nil != err {
			s.tree.Clear(scratch.RootRef())
			logger.WarnfWithError(err, "orderedset copy abandoned after %v of %v elements", size, src.size)
			return
		}
		if _, ok := s.tree.Insert(scratch.RootRef(), node); ok {
			size++
		} else {
			s.tree.DisposeNode(node)
		}
	}

	s.tree.Clear(s.header.RootRef())
	*s.header.RootRef() = scratch.Root()
	s.size = size

	err = nil
	return
}

func (s *Set[K]) equal(other *Set[K]) bool {
	if s.size != other.size {
		return false
	}

	less := s.tree.Less()
	itOther := other.Begin()
	for it := s.Begin(); !it.IsEnd(); it = it.Next() {
		if less(it.Value(), itOther.Value()) || less(itOther.Value(), it.Value()) {
			return false
		}
		itOther = itOther.Next()
	}

	return true
}

func (s *Set[K]) compare(other *Set[K]) int {
	less := s.tree.Less()
	it := s.Begin()
	itOther := other.Begin()
	for {
		switch {
		case it.IsEnd() && itOther.IsEnd():
			return 0
		case it.IsEnd():
			return -1
		case itOther.IsEnd():
			return 1
		case less(it.Value(), itOther.Value()):
			return -1
		case less(itOther.Value(), it.Value()):
			return 1
		}
		it = it.Next()
		itOther = itOther.Next()
	}
}

func (s *Set[K]) validate() (err error) {
	count, err := s.tree.Validate(s.header)
	if nil != err {
		return
	}
	if count != s.size {
		err = blunder.NewError(blunder.CorruptTreeError, "orderedset size is %v but tree holds %v nodes", s.size, count)
		return
	}

	err = nil
	return
}
