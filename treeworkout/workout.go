// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/creachadair/cityhash"

	"github.com/NVIDIA/orderedtree/blunder"
	"github.com/NVIDIA/orderedtree/bucketstats"
	"github.com/NVIDIA/orderedtree/conf"
	"github.com/NVIDIA/orderedtree/logger"
	"github.com/NVIDIA/orderedtree/utils"
)

const (
	defaultKeySpace   = uint64(1 << 20)
	defaultStatsGroup = "treeworkout"
)

type workoutConf struct {
	keySpace        uint64
	validateEvery   uint64
	nodePoolSection string
	statsGroup      string
}

func fetchOptionalUint64(confMap conf.ConfMap, sectionName string, optionName string, defaultValue uint64) (optionValue uint64, err error) {
	if _, ok := confMap[sectionName][optionName]; !ok {
		optionValue = defaultValue
		return
	}
	optionValue, err = confMap.FetchOptionValueUint64(sectionName, optionName)
	if nil != err {
		err = blunder.AddError(err, blunder.InvalidArgError)
	}
	return
}

func fetchOptionalString(confMap conf.ConfMap, sectionName string, optionName string, defaultValue string) (optionValue string, err error) {
	if _, ok := confMap[sectionName][optionName]; !ok {
		optionValue = defaultValue
		return
	}
	optionValue, err = confMap.FetchOptionValueString(sectionName, optionName)
	if nil != err {
		err = blunder.AddError(err, blunder.InvalidArgError)
	}
	return
}

// fetchWorkoutConf reads the optional [Workout] section:
//
//	[Workout]
//	KeySpace:        1048576
//	ValidateEvery:   0          # 0 validates only at the end of each phase
//	NodePoolSection: NodePool   # absent for heap allocation
//	StatsGroup:      treeworkout
func fetchWorkoutConf(confMap conf.ConfMap) (wc workoutConf, err error) {
	wc.keySpace, err = fetchOptionalUint64(confMap, "Workout", "KeySpace", defaultKeySpace)
	if nil != err {
		return
	}
	if 0 == wc.keySpace {
		err = blunder.NewError(blunder.InvalidArgError, "[Workout]KeySpace must be positive")
		return
	}

	wc.validateEvery, err = fetchOptionalUint64(confMap, "Workout", "ValidateEvery", 0)
	if nil != err {
		return
	}

	wc.nodePoolSection, err = fetchOptionalString(confMap, "Workout", "NodePoolSection", "")
	if nil != err {
		return
	}

	wc.statsGroup, err = fetchOptionalString(confMap, "Workout", "StatsGroup", defaultStatsGroup)
	return
}

// scrambledKey maps the index'th operation of a phase onto [0, keySpace).
func scrambledKey(seed uint64, index uint64, keySpace uint64) uint64 {
	var indexBuf [8]byte

	binary.LittleEndian.PutUint64(indexBuf[:], index)

	return cityhash.Hash64WithSeed(indexBuf[:], seed) % keySpace
}

type phaseResult struct {
	ops       uint64
	hits      uint64
	exhausted uint64
}

func runPhase(target workoutTarget, phase workoutPhase, seed uint64, wc workoutConf) (result phaseResult, err error) {
	switch phase.Op {
	case opCopy:
		result.ops = 1
		err = target.copy()
		if nil == err {
			result.hits = 1
		}
		return
	case opClear:
		result.ops = 1
		result.hits = uint64(target.len())
		target.clear()
		return
	}

	for index := uint64(0); index < phase.Count; index++ {
		var hit bool

		key := scrambledKey(seed, index, wc.keySpace)

		switch phase.Op {
		case opInsert:
			hit, err = target.insert(key)
			if blunder.Is(err, blunder.OutOfMemoryError) {
				result.exhausted++
				err = nil
			}
		case opFind:
			hit, err = target.find(key)
		case opErase:
			hit = target.erase(key)
		}
		if nil != err {
			return
		}

		result.ops++
		if hit {
			result.hits++
		}

		if (0 != wc.validateEvery) && (0 == result.ops%wc.validateEvery) {
			err = target.validate()
			if nil != err {
				return
			}
		}
	}

	err = nil
	return
}

// runWorkout executes plan, reporting each phase and the final statistics to out.
func runWorkout(out io.Writer, confMap conf.ConfMap, plan *workoutPlan) (err error) {
	wc, err := fetchWorkoutConf(confMap)
	if nil != err {
		logger.ErrorfWithError(err, "bad [Workout] section")
		return
	}

	target, err := newTarget(plan.Container, confMap, wc.nodePoolSection)
	if nil != err {
		logger.ErrorfWithError(err, "unable to create %v", plan.Container)
		return
	}

	target.registerStats(wc.statsGroup)
	defer target.unRegisterStats()

	logger.Infof("%v workout: %v phases over %v keys", plan.Container, len(plan.Phases), wc.keySpace)

	totalStopwatch := utils.NewStopwatch()

	for phaseIndex, phase := range plan.Phases {
		stopwatch := utils.NewStopwatch()

		result, phaseErr := runPhase(target, phase, plan.Seed, wc)
		stopwatch.Stop()
		if nil != phaseErr {
			err = phaseErr
			logger.ErrorfWithError(err, "phase %v (%v) failed after %v ops", phaseIndex, phase.Op, result.ops)
			return
		}

		err = target.validate()
		if nil != err {
			logger.ErrorfWithError(err, "validation after phase %v (%v) failed", phaseIndex, phase.Op)
			return
		}

		fmt.Fprintf(out, "%-6s %10d ops %10d hits %10d size in %v (%.0f ops/sec)\n",
			phase.Op, result.ops, result.hits, target.len(), stopwatch.ElapsedString(), stopwatch.OpsPerSecond(result.ops))
		if 0 != result.exhausted {
			fmt.Fprintf(out, "%-6s %10d inserts refused by node pool\n", "", result.exhausted)
		}
	}

	totalStopwatch.Stop()
	logger.Infof("%v workout finished in %v", plan.Container, totalStopwatch.ElapsedString())

	fmt.Fprint(out, bucketstats.SprintStats(bucketstats.StatFormatParsable1, "rbtree", wc.statsGroup))
	if stats, ok := target.poolStats(); ok {
		fmt.Fprint(out, bucketstats.SprintStats(bucketstats.StatFormatParsable1, "nodepool", wc.statsGroup))
		fmt.Fprintf(out, "nodepool.%v live:%d free:%d\n", wc.statsGroup, stats.LiveNodes, stats.FreeNodes)
	}

	err = nil
	return
}
