// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/NVIDIA/orderedtree/blunder"
	"github.com/NVIDIA/orderedtree/conf"
	"github.com/NVIDIA/orderedtree/nodepool"
	"github.com/NVIDIA/orderedtree/orderedmap"
	"github.com/NVIDIA/orderedtree/orderedset"
)

// workoutTarget hides whether a map or a set is being worked.
type workoutTarget interface {
	insert(key uint64) (inserted bool, err error)
	find(key uint64) (found bool, err error)
	erase(key uint64) (erased bool)
	copy() (err error)
	clear()
	len() int
	validate() (err error)
	registerStats(group string)
	unRegisterStats()
	poolStats() (stats nodepool.Stats, ok bool)
}

type mapTarget struct {
	m    *orderedmap.Map[uint64, uint64]
	pool *nodepool.Pool[orderedmap.Pair[uint64, uint64]]
}

type setTarget struct {
	s    *orderedset.Set[uint64]
	pool *nodepool.Pool[uint64]
}

func uint64Less(a uint64, b uint64) bool {
	return a < b
}

func newTarget(container string, confMap conf.ConfMap, nodePoolSection string) (target workoutTarget, err error) {
	switch container {
	case containerMap:
		mt := &mapTarget{}
		if "" == nodePoolSection {
			mt.m, err = orderedmap.New[uint64, uint64](uint64Less, nil)
		} else {
			mt.pool, err = nodepool.MakePoolFromConfMap[orderedmap.Pair[uint64, uint64]](confMap, nodePoolSection)
			if nil != err {
				return
			}
			mt.m, err = orderedmap.New[uint64, uint64](uint64Less, mt.pool)
		}
		target = mt
	case containerSet:
		st := &setTarget{}
		if "" == nodePoolSection {
			st.s, err = orderedset.New[uint64](uint64Less, nil)
		} else {
			st.pool, err = nodepool.MakePoolFromConfMap[uint64](confMap, nodePoolSection)
			if nil != err {
				return
			}
			st.s, err = orderedset.New[uint64](uint64Less, st.pool)
		}
		target = st
	default:
		err = blunder.NewError(blunder.PlanError, "unknown container \"%v\"", container)
	}
	return
}

// Each map value is the complement of its key so that finds can check it.

func (mt *mapTarget) insert(key uint64) (inserted bool, err error) {
	_, inserted, err = mt.m.Insert(orderedmap.MakePair(key, ^key))
	return
}

func (mt *mapTarget) find(key uint64) (found bool, err error) {
	it := mt.m.Find(key)
	if it.IsEnd() {
		return
	}
	if ^key != it.Value() {
		err = blunder.NewError(blunder.CorruptTreeError, "key %v maps to %v", key, it.Value())
		return
	}
	found = true
	return
}

func (mt *mapTarget) erase(key uint64) (erased bool) {
	erased = 1 == mt.m.Erase(key)
	return
}

func (mt *mapTarget) copy() (err error) {
	clone, err := mt.m.Clone()
	if nil != err {
		return
	}
	defer clone.Clear()

	if !orderedmap.Equal(mt.m, clone) {
		err = blunder.NewError(blunder.CorruptTreeError, "copy of %v element map differs from its source", mt.m.Len())
		return
	}

	err = nil
	return
}

func (mt *mapTarget) clear() {
	mt.m.Clear()
}

func (mt *mapTarget) len() int {
	return mt.m.Len()
}

func (mt *mapTarget) validate() (err error) {
	err = mt.m.Validate()
	return
}

func (mt *mapTarget) registerStats(group string) {
	mt.m.RegisterStats(group)
	if nil != mt.pool {
		mt.pool.RegisterStats(group)
	}
}

func (mt *mapTarget) unRegisterStats() {
	mt.m.UnRegisterStats()
	if nil != mt.pool {
		mt.pool.UnRegisterStats()
	}
}

func (mt *mapTarget) poolStats() (stats nodepool.Stats, ok bool) {
	if nil == mt.pool {
		return
	}
	stats = mt.pool.Stats()
	ok = true
	return
}

func (st *setTarget) insert(key uint64) (inserted bool, err error) {
	_, inserted, err = st.s.Insert(key)
	return
}

func (st *setTarget) find(key uint64) (found bool, err error) {
	found = st.s.Contains(key)
	return
}

func (st *setTarget) erase(key uint64) (erased bool) {
	erased = 1 == st.s.Erase(key)
	return
}

func (st *setTarget) copy() (err error) {
	clone, err := st.s.Clone()
	if nil != err {
		return
	}
	defer clone.Clear()

	if !st.s.Equal(clone) {
		err = blunder.NewError(blunder.CorruptTreeError, "copy of %v element set differs from its source", st.s.Len())
		return
	}

	err = nil
	return
}

func (st *setTarget) clear() {
	st.s.Clear()
}

func (st *setTarget) len() int {
	return st.s.Len()
}

func (st *setTarget) validate() (err error) {
	err = st.s.Validate()
	return
}

func (st *setTarget) registerStats(group string) {
	st.s.RegisterStats(group)
	if nil != st.pool {
		st.pool.RegisterStats(group)
	}
}

func (st *setTarget) unRegisterStats() {
	st.s.UnRegisterStats()
	if nil != st.pool {
		st.pool.UnRegisterStats()
	}
}

func (st *setTarget) poolStats() (stats nodepool.Stats, ok bool) {
	if nil == st.pool {
		return
	}
	stats = st.pool.Stats()
	ok = true
	return
}
