// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

// Package iterator adapts bidirectional cursors. It knows nothing about the
// containers the cursors walk.
package iterator

// Bidirectional is a cursor that can step both ways and be compared with
// another cursor of its own kind.
type Bidirectional[I any] interface {
	Next() I
	Prev() I
	Equal(other I) bool
}

// Reverse walks a Bidirectional cursor backward. A Reverse holding base
// refers to the element just before base, so reversing End yields the last
// element and reversing Begin yields the reverse end.
type Reverse[I Bidirectional[I]] struct {
	base I
}

func MakeReverse[I Bidirectional[I]](base I) Reverse[I] {
	return Reverse[I]{base: base}
}

// Base returns the underlying forward cursor, one past the element Current refers to.
func (reverse Reverse[I]) Base() I {
	return reverse.base
}

// Current returns the forward cursor at the element this Reverse refers to.
func (reverse Reverse[I]) Current() I {
	return reverse.base.Prev()
}

func (reverse Reverse[I]) Next() Reverse[I] {
	return Reverse[I]{base: reverse.base.Prev()}
}

func (reverse Reverse[I]) Prev() Reverse[I] {
	return Reverse[I]{base: reverse.base.Next()}
}

func (reverse Reverse[I]) Equal(other Reverse[I]) bool {
	return reverse.base.Equal(other.base)
}
