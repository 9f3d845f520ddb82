// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package orderedset

import (
	"bytes"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/orderedtree/blunder"
	"github.com/NVIDIA/orderedtree/nodepool"
)

func newIntSet(t *testing.T, keys ...int) (s *Set[int]) {
	s, err := NewFromSeq(slices.Values(keys), func(a int, b int) bool { return a < b }, nil)
	require.NoError(t, err)
	return
}

func TestNewRequiresLess(t *testing.T) {
	_, err := New[int](nil, nil)
	assert.True(t, blunder.Is(err, blunder.InvalidArgError))

	_, err = NewFromSeq[int](slices.Values([]int{1}), nil, nil)
	assert.True(t, blunder.Is(err, blunder.InvalidArgError))
}

func TestBounds(t *testing.T) {
	assert := assert.New(t)

	s := newIntSet(t, 1, 3, 5, 7)

	assert.Equal(5, s.LowerBound(4).Value())
	assert.Equal(5, s.LowerBound(5).Value())
	assert.Equal(7, s.UpperBound(5).Value())
	assert.True(s.LowerBound(8).Equal(s.End()))
	assert.True(s.UpperBound(7).IsEnd())
	assert.Equal(1, s.LowerBound(-1).Value())

	first, last := s.EqualRange(7)
	assert.Equal(7, first.Value())
	assert.True(last.IsEnd())
}

func TestUniqueness(t *testing.T) {
	assert := assert.New(t)

	s := newIntSet(t, 2, 4, 6)

	it, inserted, err := s.Insert(4)
	require.NoError(t, err)
	assert.False(inserted)
	assert.Equal(4, it.Value())
	assert.Equal(3, s.Len())

	it, inserted, err = s.Insert(5)
	require.NoError(t, err)
	assert.True(inserted)
	assert.Equal(5, it.Value())
	assert.Equal(6, it.Next().Value())
	assert.Equal(4, s.Len())

	assert.True(s.Contains(5))
	assert.Equal(1, s.Count(6))
	assert.Equal(0, s.Count(7))
	assert.True(s.Find(7).IsEnd())
	assert.NoError(s.Validate())
}

func TestRoundTrip(t *testing.T) {
	assert := assert.New(t)

	rng := rand.New(rand.NewSource(42))
	keys := rng.Perm(500)

	s := newIntSet(t, keys...)
	assert.Equal(500, s.Len())
	assert.NoError(s.Validate())

	rng.Shuffle(len(keys), func(i int, j int) { keys[i], keys[j] = keys[j], keys[i] })
	for i, key := range keys {
		assert.Equal(1, s.Erase(key))
		if 0 == i%50 {
			assert.NoError(s.Validate())
		}
	}

	assert.Equal(0, s.Len())
	assert.True(s.Empty())
	assert.True(s.Begin().Equal(s.End()))
	assert.True(s.RBegin().Equal(s.REnd()))
	assert.NoError(s.Validate())
}

func TestOrder(t *testing.T) {
	assert := assert.New(t)

	s := newIntSet(t, 9, 1, 8, 2, 7, 3, 6, 4, 5)

	forward := slices.Collect(s.All())
	assert.Equal([]int{1, 2, 3, 4, 5, 6, 7, 8, 9}, forward)

	backward := slices.Collect(s.Backward())
	slices.Reverse(backward)
	assert.Equal(forward, backward)

	walked := []int{}
	for it := s.End().Prev(); !it.IsEnd(); it = it.Prev() {
		walked = append(walked, it.Value())
	}
	assert.Equal([]int{9, 8, 7, 6, 5, 4, 3, 2, 1}, walked)

	assert.Equal(9, s.RBegin().Current().Value())
	assert.True(s.RBegin().Base().Equal(s.End()))
}

func TestEraseAtAndRange(t *testing.T) {
	assert := assert.New(t)

	s := newIntSet(t, 1, 2, 3, 4, 5, 6, 7, 8)

	next, err := s.EraseAt(s.Find(4))
	require.NoError(t, err)
	assert.Equal(5, next.Value())

	next, err = s.EraseRange(s.LowerBound(2), s.UpperBound(6))
	require.NoError(t, err)
	assert.Equal(7, next.Value())
	assert.Equal([]int{1, 7, 8}, slices.Collect(s.All()))
	assert.Equal(3, s.Len())

	_, err = s.EraseAt(s.End())
	assert.True(blunder.Is(err, blunder.RangeViolationError))
	_, err = s.EraseAt(newIntSet(t, 1).Begin())
	assert.True(blunder.Is(err, blunder.RangeViolationError))
	_, err = s.EraseRange(s.Begin(), Iterator[int]{})
	assert.True(blunder.Is(err, blunder.RangeViolationError))

	_, err = s.InsertHint(Iterator[int]{}, 2)
	assert.True(blunder.Is(err, blunder.RangeViolationError))
	it, err := s.InsertHint(s.Find(7), 2)
	require.NoError(t, err)
	assert.Equal(2, it.Value())
	assert.Equal(4, s.Len())
	assert.NoError(s.Validate())
}

func TestCopyIndependence(t *testing.T) {
	assert := assert.New(t)

	s := newIntSet(t, 1, 2, 3, 4)

	clone, err := s.Clone()
	require.NoError(t, err)
	assert.True(s.Equal(clone))

	clone.Erase(2)
	assert.Equal([]int{1, 2, 3, 4}, slices.Collect(s.All()))
	assert.Equal([]int{1, 3, 4}, slices.Collect(clone.All()))

	other := newIntSet(t, 100)
	require.NoError(t, other.Assign(s))
	assert.True(other.Equal(s))
	s.Clear()
	assert.Equal(4, other.Len())
	assert.NoError(other.Validate())
}

func TestAssignExhausted(t *testing.T) {
	assert := assert.New(t)

	pool := nodepool.MakePool[int](3, 3)
	s, err := New[int](func(a int, b int) bool { return a < b }, pool)
	require.NoError(t, err)
	require.NoError(t, s.InsertSeq(slices.Values([]int{1, 2})))

	err = s.Assign(newIntSet(t, 7, 8, 9))
	assert.True(blunder.Is(err, blunder.OutOfMemoryError))
	assert.Equal([]int{1, 2}, slices.Collect(s.All()))
	assert.Equal(uint64(2), pool.Stats().LiveNodes)

	require.NoError(t, s.Assign(newIntSet(t, 7)))
	assert.Equal([]int{7}, slices.Collect(s.All()))
	assert.Equal(uint64(1), pool.Stats().LiveNodes)

	_, err = s.Clone()
	require.NoError(t, err)
	_, err = s.Clone()
	require.NoError(t, err)
	_, err = s.Clone()
	assert.True(blunder.Is(err, blunder.OutOfMemoryError))
}

func TestEqualityAndOrdering(t *testing.T) {
	assert := assert.New(t)

	a := newIntSet(t, 3, 1, 2)
	b := newIntSet(t, 2, 3, 1)
	assert.True(a.Equal(b))
	assert.Equal(0, a.Compare(b))

	c := newIntSet(t, 1, 2, 4)
	assert.False(a.Equal(c))
	assert.True(a.Less(c))
	assert.Equal(1, c.Compare(a))

	d := newIntSet(t, 1, 2)
	assert.True(d.Less(a))
	assert.False(a.Less(d))
	assert.False(d.Equal(a))

	empty := newIntSet(t)
	assert.True(empty.Less(d))
	assert.True(empty.Equal(newIntSet(t)))
}

func TestSwapAndAccessors(t *testing.T) {
	assert := assert.New(t)

	a := newIntSet(t, 1)
	b := NewOrdered[int]()
	a.Swap(b)
	assert.True(a.Empty())
	assert.Equal([]int{1}, slices.Collect(b.All()))

	assert.True(b.KeyComp()(1, 2))
	assert.True(b.ValueComp()(1, 2))
	assert.NotNil(b.Allocator())
	assert.NotZero(b.MaxSize())
}

func TestDump(t *testing.T) {
	s := newIntSet(t, 2, 1, 3)

	buf := &bytes.Buffer{}
	require.NoError(t, s.Dump(buf))
	assert.Contains(t, buf.String(), "2")
}
