// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package nodepool

import (
	"github.com/NVIDIA/orderedtree/blunder"
	"github.com/NVIDIA/orderedtree/logger"
	"github.com/NVIDIA/orderedtree/rbtree"
)

func makePool[T any](maxNodes uint64, freeListLimit uint64) (pool *Pool[T]) {
	pool = &Pool[T]{
		maxNodes:      maxNodes,
		freeListLimit: freeListLimit,
		freeList:      make([]*rbtree.Node[T], 0, freeListLimit),
		stats:         &poolStats{},
	}
	pool.overflow.New = func() interface{} {
		return new(rbtree.Node[T])
	}
	return
}

func (pool *Pool[T]) allocate() (node *rbtree.Node[T], err error) {
	pool.Lock()
	defer pool.Unlock()

	if (0 != pool.maxNodes) && (pool.liveNodes >= pool.maxNodes) {
		pool.stats.Exhausted.Increment()
		logger.Warnf("node pool exhausted at %v live nodes", pool.liveNodes)
		err = blunder.NewError(blunder.OutOfMemoryError, "nodepool: all %v nodes in use", pool.maxNodes)
		return
	}

	freeListLen := len(pool.freeList)
	if 0 < freeListLen {
		node = pool.freeList[freeListLen-1]
		pool.freeList[freeListLen-1] = nil
		pool.freeList = pool.freeList[:freeListLen-1]
		pool.stats.Recycled.Increment()
	} else {
		node = pool.overflow.Get().(*rbtree.Node[T])
	}

	pool.liveNodes++
	pool.stats.Allocations.Increment()

	err = nil
	return
}

func (pool *Pool[T]) deallocate(node *rbtree.Node[T]) {
	pool.Lock()
	defer pool.Unlock()

	if 0 == pool.liveNodes {
		logger.Errorf("node pool asked to free a node with none allocated")
		return
	}

	pool.liveNodes--
	pool.stats.Deallocations.Increment()

	if uint64(len(pool.freeList)) < pool.freeListLimit {
		pool.freeList = append(pool.freeList, node)
	} else {
		pool.overflow.Put(node)
	}
}
