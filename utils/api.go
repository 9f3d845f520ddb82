// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

// Package utils provides call-stack and timing helpers shared by the logger
// and the treeworkout driver.
package utils

import (
	"bytes"
	"regexp"
	"runtime"
	"strconv"
	"time"
)

var (
	lastPathElementRE = regexp.MustCompile(`[^\/]*$`)
	packagePrefixRE   = regexp.MustCompile(`^[^.]*`)
	functionSuffixRE  = regexp.MustCompile(`[^.]*$`)
)

// GetGID returns the id of the calling goroutine.
//
// Only used to decorate log entries; nothing should ever depend on its value.
func GetGID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

// GetAFnName returns "package.function" for the function level frames above the caller.
func GetAFnName(level int) string {
	pc, _, _, ok := runtime.Caller(level + 1)
	if !ok {
		return ""
	}
	functionObject := runtime.FuncForPC(pc)
	if nil == functionObject {
		return ""
	}
	return lastPathElementRE.FindString(functionObject.Name())
}

// GetFuncPackage returns the function name, package name, and goroutine id
// for the function level frames above the caller.
func GetFuncPackage(level int) (fn string, pkg string, gid uint64) {
	funcPkg := GetAFnName(level + 1)

	pkg = packagePrefixRE.FindString(funcPkg)
	fn = functionSuffixRE.FindString(funcPkg)
	gid = GetGID()

	return
}

// GetFnName returns the name of the running function and its package.
func GetFnName() string {
	return GetAFnName(1)
}

// GetCallerFnName returns the name of the calling function and its package.
func GetCallerFnName() string {
	return GetAFnName(2)
}

// Stopwatch measures the elapsed time of a workout phase.
type Stopwatch struct {
	StartTime   time.Time
	StopTime    time.Time
	ElapsedTime time.Duration
	IsRunning   bool
}

func NewStopwatch() *Stopwatch {
	return &Stopwatch{StartTime: time.Now(), IsRunning: true}
}

// Stop freezes the stopwatch and returns the elapsed time. Stopping a
// stopped stopwatch returns the previously frozen value.
func (sw *Stopwatch) Stop() time.Duration {
	if sw.IsRunning {
		sw.StopTime = time.Now()
		sw.ElapsedTime = sw.StopTime.Sub(sw.StartTime)
		sw.IsRunning = false
	}
	return sw.ElapsedTime
}

// Restart zeroes and restarts a stopped stopwatch; a running one is left alone.
func (sw *Stopwatch) Restart() {
	if !sw.IsRunning {
		sw.ElapsedTime = 0
		sw.StartTime = time.Now()
		sw.StopTime = time.Time{}
		sw.IsRunning = true
	}
}

func (sw *Stopwatch) Elapsed() time.Duration {
	if !sw.IsRunning {
		return sw.ElapsedTime
	}
	return time.Since(sw.StartTime)
}

func (sw *Stopwatch) ElapsedMs() int64 {
	return int64(sw.Elapsed() / time.Millisecond)
}

func (sw *Stopwatch) ElapsedString() string {
	return sw.Elapsed().String()
}

// OpsPerSecond converts a count of operations completed over the stopwatch's
// elapsed time into a rate. A zero elapsed time yields zero.
func (sw *Stopwatch) OpsPerSecond(ops uint64) (opsPerSecond float64) {
	elapsed := sw.Elapsed()
	if 0 == elapsed {
		return 0
	}
	opsPerSecond = float64(ops) * float64(time.Second) / float64(elapsed)
	return
}
