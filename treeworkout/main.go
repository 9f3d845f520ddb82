// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

// Program treeworkout stresses an ordered map or set and reports throughput
// and tree statistics.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/NVIDIA/orderedtree/blunder"
	"github.com/NVIDIA/orderedtree/conf"
	"github.com/NVIDIA/orderedtree/logger"
)

func usage(file *os.File) {
	fmt.Fprintf(file, "Usage:\n")
	fmt.Fprintf(file, "    %v [ms] ops conf-file [section.option=value]*\n", os.Args[0])
	fmt.Fprintf(file, "    %v -plan plan-file conf-file [section.option=value]*\n", os.Args[0])
	fmt.Fprintf(file, "  where:\n")
	fmt.Fprintf(file, "    m                       work an ordered map\n")
	fmt.Fprintf(file, "    s                       work an ordered set\n")
	fmt.Fprintf(file, "    ops                     number of inserts, finds, then erases\n")
	fmt.Fprintf(file, "    plan-file               YAML list of phases to run instead\n")
	fmt.Fprintf(file, "    conf-file               input to conf.MakeConfMapFromFile()\n")
	fmt.Fprintf(file, "    [section.option=value]* optional input to conf.UpdateFromStrings()\n")
}

// parseArgs returns the plan to run and the conf-file and its overrides.
func parseArgs(args []string) (plan *workoutPlan, confArgs []string, err error) {
	if 3 > len(args) {
		err = blunder.NewError(blunder.PlanError, "expected at least 3 arguments, got %v", len(args))
		return
	}

	switch args[0] {
	case "-plan":
		plan, err = loadPlan(args[1])
		if nil != err {
			return
		}
	case "m", "s":
		var ops uint64

		ops, err = strconv.ParseUint(args[1], 10, 64)
		if nil != err {
			err = blunder.NewError(blunder.PlanError, "strconv.ParseUint(\"%v\", 10, 64) of ops failed: %v", args[1], err)
			return
		}
		if 0 == ops {
			err = blunder.NewError(blunder.PlanError, "ops must be a positive number")
			return
		}
		if "m" == args[0] {
			plan = defaultPlan(containerMap, ops)
		} else {
			plan = defaultPlan(containerSet, ops)
		}
	default:
		err = blunder.NewError(blunder.PlanError, "args[0] ('%v') must be one of 'm', 's', or '-plan'", args[0])
		return
	}

	confArgs = args[2:]

	err = nil
	return
}

func main() {
	plan, confArgs, err := parseArgs(os.Args[1:])
	if nil != err {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		usage(os.Stderr)
		os.Exit(1)
	}

	confMap, err := conf.MakeConfMapFromFile(confArgs[0])
	if nil != err {
		fmt.Fprintf(os.Stderr, "conf.MakeConfMapFromFile(\"%v\") failed: %v\n", confArgs[0], err)
		os.Exit(1)
	}

	if 1 < len(confArgs) {
		err = confMap.UpdateFromStrings(confArgs[1:])
		if nil != err {
			fmt.Fprintf(os.Stderr, "confMap.UpdateFromStrings(%#v) failed: %v\n", confArgs[1:], err)
			os.Exit(1)
		}
	}

	err = logger.Up(confMap)
	if nil != err {
		fmt.Fprintf(os.Stderr, "logger.Up() failed: %v\n", err)
		os.Exit(1)
	}

	err = runWorkout(os.Stdout, confMap, plan)
	if nil != err {
		fmt.Fprintf(os.Stderr, "workout failed: %v\n", blunder.ErrorString(err))
		_ = logger.Down()
		os.Exit(1)
	}

	err = logger.Down()
	if nil != err {
		fmt.Fprintf(os.Stderr, "logger.Down() failed: %v\n", err)
		os.Exit(1)
	}
}
