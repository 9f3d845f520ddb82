// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

// Package nodepool provides a bounded, recycling node allocator for rbtree.
//
// A Pool hands out at most MaxNodes live nodes (0 means no limit). Freed
// nodes are kept on a free list of up to FreeListLimit entries and reused
// before new ones are made; beyond that they are parked in a sync.Pool that
// the garbage collector may drain.
//
// A Pool may be shared by any number of containers holding the same value type.
package nodepool

import (
	"sync"

	"github.com/NVIDIA/orderedtree/bucketstats"
	"github.com/NVIDIA/orderedtree/conf"
	"github.com/NVIDIA/orderedtree/rbtree"
)

const (
	DefaultMaxNodes      = uint64(0)
	DefaultFreeListLimit = uint64(1024)
)

type Pool[T any] struct {
	sync.Mutex
	maxNodes      uint64
	freeListLimit uint64
	liveNodes     uint64
	freeList      []*rbtree.Node[T]
	overflow      sync.Pool
	stats         *poolStats
	statsGroup    string
}

type poolStats struct {
	Allocations   bucketstats.Total
	Deallocations bucketstats.Total
	Recycled      bucketstats.Total
	Exhausted     bucketstats.Total
}

// Stats is a snapshot of a Pool's counters.
type Stats struct {
	Allocations   uint64
	Deallocations uint64
	Recycled      uint64
	Exhausted     uint64
	LiveNodes     uint64
	FreeNodes     uint64
}

// MakePool returns a pool limited to maxNodes live nodes (0 for no limit)
// that keeps up to freeListLimit freed nodes for reuse.
func MakePool[T any](maxNodes uint64, freeListLimit uint64) (pool *Pool[T]) {
	pool = makePool[T](maxNodes, freeListLimit)
	return
}

// MakePoolFromConfMap builds a pool from the named section of confMap:
//
//	[NodePool]
//	MaxNodes:      1048576    # 0 or absent for no limit
//	FreeListLimit: 4096       # absent for 1024
func MakePoolFromConfMap[T any](confMap conf.ConfMap, section string) (pool *Pool[T], err error) {
	pool, err = makePoolFromConfMap[T](confMap, section)
	return
}

func (pool *Pool[T]) Allocate() (node *rbtree.Node[T], err error) {
	node, err = pool.allocate()
	return
}

func (pool *Pool[T]) Deallocate(node *rbtree.Node[T]) {
	pool.deallocate(node)
}

// MaxNodes is the live node limit, or the heap allocator's limit if unbounded.
func (pool *Pool[T]) MaxNodes() uint64 {
	if 0 == pool.maxNodes {
		return rbtree.HeapAllocator[T]{}.MaxNodes()
	}
	return pool.maxNodes
}

func (pool *Pool[T]) Stats() (stats Stats) {
	pool.Lock()
	defer pool.Unlock()

	stats = Stats{
		Allocations:   pool.stats.Allocations.TotalGet(),
		Deallocations: pool.stats.Deallocations.TotalGet(),
		Recycled:      pool.stats.Recycled.TotalGet(),
		Exhausted:     pool.stats.Exhausted.TotalGet(),
		LiveNodes:     pool.liveNodes,
		FreeNodes:     uint64(len(pool.freeList)),
	}
	return
}

// RegisterStats publishes the pool's counters as "nodepool.<group>".
func (pool *Pool[T]) RegisterStats(group string) {
	pool.UnRegisterStats()
	bucketstats.Register("nodepool", group, pool.stats)
	pool.statsGroup = group
}

func (pool *Pool[T]) UnRegisterStats() {
	if "" == pool.statsGroup {
		return
	}
	bucketstats.UnRegister("nodepool", pool.statsGroup)
	pool.statsGroup = ""
}
