// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package rbtree

import (
	"github.com/NVIDIA/orderedtree/bucketstats"
)

type treeStats struct {
	Inserts          bucketstats.Total
	DuplicateInserts bucketstats.Total
	Erases           bucketstats.Total
	Rotations        bucketstats.Total
	Clears           bucketstats.Total
	InsertFixupSteps bucketstats.BucketLog2Round
	EraseFixupSteps  bucketstats.BucketLog2Round
}

func newTreeStats() (stats *treeStats) {
	stats = &treeStats{}
	stats.InsertFixupSteps.NBucket = 16
	stats.EraseFixupSteps.NBucket = 16
	return
}

// Stats is a snapshot of a Tree's counters.
type Stats struct {
	Inserts          uint64
	DuplicateInserts uint64
	Erases           uint64
	Rotations        uint64
	Clears           uint64
}

func (tree *Tree[T]) Stats() (stats Stats) {
	stats = Stats{
		Inserts:          tree.stats.Inserts.TotalGet(),
		DuplicateInserts: tree.stats.DuplicateInserts.TotalGet(),
		Erases:           tree.stats.Erases.TotalGet(),
		Rotations:        tree.stats.Rotations.TotalGet(),
		Clears:           tree.stats.Clears.TotalGet(),
	}
	return
}

// RegisterStats publishes the tree's counters with bucketstats as
// "rbtree.<group>". A tree is registered under at most one group.
func (tree *Tree[T]) RegisterStats(group string) {
	tree.UnRegisterStats()
	bucketstats.Register("rbtree", group, tree.stats)
	tree.statsGroup = group
}

func (tree *Tree[T]) UnRegisterStats() {
	if "" == tree.statsGroup {
		return
	}
	bucketstats.UnRegister("rbtree", tree.statsGroup)
	tree.statsGroup = ""
}

func (tree *Tree[T]) StatsGroup() string {
	return tree.statsGroup
}
