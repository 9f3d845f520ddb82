// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package iterator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// sliceCursor is a position in a slice; len(values) is the end position.
type sliceCursor struct {
	values []string
	index  int
}

func (cursor sliceCursor) Next() sliceCursor {
	return sliceCursor{values: cursor.values, index: cursor.index + 1}
}

func (cursor sliceCursor) Prev() sliceCursor {
	return sliceCursor{values: cursor.values, index: cursor.index - 1}
}

func (cursor sliceCursor) Equal(other sliceCursor) bool {
	return cursor.index == other.index
}

func (cursor sliceCursor) value() string {
	return cursor.values[cursor.index]
}

func TestReverse(t *testing.T) {
	assert := assert.New(t)

	values := []string{"a", "b", "c"}
	begin := sliceCursor{values: values, index: 0}
	end := sliceCursor{values: values, index: len(values)}

	rbegin := MakeReverse(end)
	rend := MakeReverse(begin)

	walked := []string{}
	for r := rbegin; !r.Equal(rend); r = r.Next() {
		walked = append(walked, r.Current().value())
	}
	assert.Equal([]string{"c", "b", "a"}, walked)

	assert.True(rbegin.Base().Equal(end))
	assert.True(rbegin.Next().Prev().Equal(rbegin))
	assert.Equal("b", rend.Prev().Prev().Current().value())
	assert.True(rend.Prev().Base().Equal(begin.Next()))

	empty := sliceCursor{values: nil, index: 0}
	assert.True(MakeReverse(empty).Equal(MakeReverse(empty)))
}
