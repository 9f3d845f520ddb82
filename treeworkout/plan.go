// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/orderedtree/blunder"
)

// A plan file looks like:
//
//	container: set        # map (default) or set
//	seed: 17
//	phases:
//	  - op: insert
//	    count: 100000
//	  - op: copy
//	  - op: erase
//	    count: 50000

const (
	opInsert = "insert"
	opFind   = "find"
	opErase  = "erase"
	opCopy   = "copy"
	opClear  = "clear"

	containerMap = "map"
	containerSet = "set"
)

type workoutPhase struct {
	Op    string `yaml:"op"`
	Count uint64 `yaml:"count"`
}

type workoutPlan struct {
	Container string         `yaml:"container"`
	Seed      uint64         `yaml:"seed"`
	Phases    []workoutPhase `yaml:"phases"`
}

// defaultPlan inserts, finds, then erases ops scrambled keys.
func defaultPlan(container string, ops uint64) (plan *workoutPlan) {
	plan = &workoutPlan{
		Container: container,
		Seed:      0,
		Phases: []workoutPhase{
			{Op: opInsert, Count: ops},
			{Op: opFind, Count: ops},
			{Op: opErase, Count: ops},
		},
	}
	return
}

func loadPlan(planFilePath string) (plan *workoutPlan, err error) {
	buf, err := os.ReadFile(planFilePath)
	if nil != err {
		err = blunder.AddError(err, blunder.NotFoundError)
		return
	}

	plan, err = parsePlan(buf)
	return
}

func parsePlan(buf []byte) (plan *workoutPlan, err error) {
	plan = &workoutPlan{}

	err = yaml.Unmarshal(buf, plan)
	if nil != err {
		plan = nil
		err = blunder.NewError(blunder.PlanError, "plan is not valid YAML: %v", err)
		return
	}

	err = plan.check()
	if nil != err {
		plan = nil
	}
	return
}

func (plan *workoutPlan) check() (err error) {
	switch plan.Container {
	case "":
		plan.Container = containerMap
	case containerMap, containerSet:
	default:
		err = blunder.NewError(blunder.PlanError, "container must be \"%v\" or \"%v\", not \"%v\"", containerMap, containerSet, plan.Container)
		return
	}

	if 0 == len(plan.Phases) {
		err = blunder.NewError(blunder.PlanError, "plan has no phases")
		return
	}

	for phaseIndex, phase := range plan.Phases {
		switch phase.Op {
		case opInsert, opFind, opErase:
			if 0 == phase.Count {
				err = blunder.NewError(blunder.PlanError, "phase %v (%v) needs a positive count", phaseIndex, phase.Op)
				return
			}
		case opCopy, opClear:
		default:
			err = blunder.NewError(blunder.PlanError, "phase %v has unknown op \"%v\"", phaseIndex, phase.Op)
			return
		}
	}

	err = nil
	return
}
