// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package nodepool

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/orderedtree/blunder"
	"github.com/NVIDIA/orderedtree/bucketstats"
	"github.com/NVIDIA/orderedtree/conf"
	"github.com/NVIDIA/orderedtree/rbtree"
)

func TestAllocateRecycle(t *testing.T) {
	assert := assert.New(t)

	pool := MakePool[int](0, 2)

	a, err := pool.Allocate()
	require.NoError(t, err)
	b, err := pool.Allocate()
	require.NoError(t, err)
	c, err := pool.Allocate()
	require.NoError(t, err)

	pool.Deallocate(a)
	pool.Deallocate(b)
	pool.Deallocate(c) // free list full, parked in overflow

	stats := pool.Stats()
	assert.Equal(uint64(3), stats.Allocations)
	assert.Equal(uint64(3), stats.Deallocations)
	assert.Equal(uint64(0), stats.LiveNodes)
	assert.Equal(uint64(2), stats.FreeNodes)

	d, err := pool.Allocate()
	require.NoError(t, err)
	assert.True(d == b)

	stats = pool.Stats()
	assert.Equal(uint64(1), stats.Recycled)
	assert.Equal(uint64(1), stats.LiveNodes)
	assert.Equal(uint64(1), stats.FreeNodes)
}

func TestExhaustion(t *testing.T) {
	assert := assert.New(t)

	pool := MakePool[int](2, 2)
	assert.Equal(uint64(2), pool.MaxNodes())

	tree, err := rbtree.New[int](func(a int, b int) bool { return a < b }, pool)
	require.NoError(t, err)
	header := rbtree.NewHeader[int]()

	for _, value := range []int{1, 2} {
		node, err := tree.CreateNode(value)
		require.NoError(t, err)
		_, ok := tree.Insert(header.RootRef(), node)
		assert.True(ok)
	}

	_, err = tree.CreateNode(3)
	assert.True(blunder.Is(err, blunder.OutOfMemoryError))
	assert.Equal(uint64(1), pool.Stats().Exhausted)

	assert.True(tree.Erase(header.RootRef(), 1))
	node, err := tree.CreateNode(3)
	require.NoError(t, err)
	_, ok := tree.Insert(header.RootRef(), node)
	assert.True(ok)

	tree.Clear(header.RootRef())
	assert.Equal(uint64(0), pool.Stats().LiveNodes)
	assert.Equal(uint64(2), pool.Stats().FreeNodes)
}

func TestUnboundedMaxNodes(t *testing.T) {
	pool := MakePool[int](0, 0)
	assert.Equal(t, rbtree.HeapAllocator[int]{}.MaxNodes(), pool.MaxNodes())
}

func TestDeallocateUnderflow(t *testing.T) {
	pool := MakePool[int](0, 4)
	pool.Deallocate(new(rbtree.Node[int]))
	assert.Equal(t, uint64(0), pool.Stats().Deallocations)
}

func TestMakePoolFromConfMap(t *testing.T) {
	assert := assert.New(t)

	confMap, err := conf.MakeConfMapFromStrings([]string{
		"NodePool.MaxNodes=100",
		"NodePool.FreeListLimit=500",
		"Tiny.MaxNodes=",
		"Bad.FreeListLimit=lots",
	})
	require.NoError(t, err)

	pool, err := MakePoolFromConfMap[string](confMap, "NodePool")
	require.NoError(t, err)
	assert.Equal(uint64(100), pool.MaxNodes())
	assert.Equal(uint64(100), pool.freeListLimit)

	_, err = MakePoolFromConfMap[string](confMap, "Missing")
	assert.True(blunder.Is(err, blunder.NotFoundError))

	_, err = MakePoolFromConfMap[string](confMap, "Tiny")
	assert.True(blunder.Is(err, blunder.InvalidArgError))

	_, err = MakePoolFromConfMap[string](confMap, "Bad")
	assert.True(blunder.Is(err, blunder.InvalidArgError))

	confMap, err = conf.MakeConfMapFromStrings([]string{"Defaults.FreeListLimit=8"})
	require.NoError(t, err)
	pool, err = MakePoolFromConfMap[string](confMap, "Defaults")
	require.NoError(t, err)
	assert.Equal(uint64(8), pool.freeListLimit)
	assert.Equal(DefaultMaxNodes, pool.maxNodes)
}

func TestRegisterStats(t *testing.T) {
	assert := assert.New(t)

	pool := MakePool[int](0, 4)
	pool.RegisterStats("TestRegisterStats")
	defer pool.UnRegisterStats()

	node, err := pool.Allocate()
	require.NoError(t, err)
	pool.Deallocate(node)

	statsString := bucketstats.SprintStats(bucketstats.StatFormatParsable1, "nodepool", "TestRegisterStats")
	assert.True(strings.Contains(statsString, "nodepool.TestRegisterStats.Allocations total:1"), statsString)
	assert.True(strings.Contains(statsString, "nodepool.TestRegisterStats.Deallocations total:1"), statsString)
}
