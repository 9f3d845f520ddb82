// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/orderedtree/blunder"
	"github.com/NVIDIA/orderedtree/conf"
)

func TestScrambledKey(t *testing.T) {
	assert := assert.New(t)

	seen := make(map[uint64]struct{})
	for index := uint64(0); index < 1000; index++ {
		key := scrambledKey(7, index, 64)
		assert.True(key < 64)
		assert.Equal(key, scrambledKey(7, index, 64))
		seen[key] = struct{}{}
	}
	assert.True(32 < len(seen))
}

func TestFetchWorkoutConf(t *testing.T) {
	assert := assert.New(t)

	wc, err := fetchWorkoutConf(conf.MakeConfMap())
	require.NoError(t, err)
	assert.Equal(defaultKeySpace, wc.keySpace)
	assert.Equal(uint64(0), wc.validateEvery)
	assert.Equal("", wc.nodePoolSection)
	assert.Equal(defaultStatsGroup, wc.statsGroup)

	confMap, err := conf.MakeConfMapFromStrings([]string{
		"Workout.KeySpace=100",
		"Workout.ValidateEvery=10",
		"Workout.NodePoolSection=NodePool",
		"Workout.StatsGroup=TestFetchWorkoutConf",
	})
	require.NoError(t, err)
	wc, err = fetchWorkoutConf(confMap)
	require.NoError(t, err)
	assert.Equal(workoutConf{keySpace: 100, validateEvery: 10, nodePoolSection: "NodePool", statsGroup: "TestFetchWorkoutConf"}, wc)

	for _, badString := range []string{"Workout.KeySpace=0", "Workout.KeySpace=many", "Workout.ValidateEvery=-1", "Workout.StatsGroup=a,b"} {
		confMap, err = conf.MakeConfMapFromStrings([]string{badString})
		require.NoError(t, err)
		_, err = fetchWorkoutConf(confMap)
		assert.True(blunder.Is(err, blunder.InvalidArgError), badString)
	}
}

func TestRunWorkout(t *testing.T) {
	for _, container := range []string{containerMap, containerSet} {
		confMap, err := conf.MakeConfMapFromStrings([]string{
			"Workout.KeySpace=256",
			"Workout.ValidateEvery=64",
			"Workout.StatsGroup=TestRunWorkout",
		})
		require.NoError(t, err)

		plan := &workoutPlan{
			Container: container,
			Seed:      3,
			Phases: []workoutPhase{
				{Op: opInsert, Count: 1000},
				{Op: opFind, Count: 1000},
				{Op: opCopy},
				{Op: opErase, Count: 1000},
				{Op: opInsert, Count: 100},
				{Op: opClear},
			},
		}

		out := &bytes.Buffer{}
		require.NoError(t, runWorkout(out, confMap, plan), container)

		lines := strings.Split(out.String(), "\n")
		assert.True(t, strings.HasPrefix(lines[0], "insert       1000 ops"), lines[0])
		// every find after the same seeded inserts must hit
		assert.True(t, strings.HasPrefix(lines[1], "find         1000 ops       1000 hits"), lines[1])
		assert.True(t, strings.HasPrefix(lines[2], "copy            1 ops          1 hits"), lines[2])
		// the erase phase replays the insert keys, so the tree ends up empty
		assert.True(t, strings.Contains(lines[3], "         0 size"), lines[3])
		assert.True(t, strings.Contains(lines[5], "         0 size"), lines[5])
		assert.Contains(t, out.String(), "rbtree.TestRunWorkout.Inserts total:")
		assert.NotContains(t, out.String(), "nodepool.")
	}
}

func TestRunWorkoutWithNodePool(t *testing.T) {
	assert := assert.New(t)

	confMap, err := conf.MakeConfMapFromStrings([]string{
		"Workout.KeySpace=1000",
		"Workout.NodePoolSection=NodePool",
		"Workout.StatsGroup=TestRunWorkoutWithNodePool",
		"NodePool.MaxNodes=10",
		"NodePool.FreeListLimit=4",
	})
	require.NoError(t, err)

	plan := &workoutPlan{
		Container: containerSet,
		Phases: []workoutPhase{
			{Op: opInsert, Count: 100},
			{Op: opClear},
		},
	}

	out := &bytes.Buffer{}
	require.NoError(t, runWorkout(out, confMap, plan))

	assert.Contains(out.String(), "inserts refused by node pool")
	assert.Contains(out.String(), "nodepool.TestRunWorkoutWithNodePool.Exhausted total:")
	assert.Contains(out.String(), "nodepool.TestRunWorkoutWithNodePool live:0 free:4")

	plan.Phases = []workoutPhase{
		{Op: opInsert, Count: 100},
		{Op: opCopy},
	}
	err = runWorkout(&bytes.Buffer{}, confMap, plan)
	assert.True(blunder.Is(err, blunder.OutOfMemoryError))

	confMap, err = conf.MakeConfMapFromStrings([]string{"Workout.NodePoolSection=Missing"})
	require.NoError(t, err)
	err = runWorkout(&bytes.Buffer{}, confMap, plan)
	assert.True(blunder.Is(err, blunder.NotFoundError))
}
