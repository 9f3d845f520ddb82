// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetAFnName(t *testing.T) {
	assert := assert.New(t)

	fnWithPackage := GetAFnName(0)
	assert.Equal("utils.TestGetAFnName", fnWithPackage)

	fn, pkg, gid := GetFuncPackage(0)
	assert.Equal("utils", pkg)
	assert.Equal("TestGetAFnName", fn)
	assert.NotEqual(uint64(0), gid)

	assert.Equal("utils.TestGetAFnName", GetFnName())
}

func testCallerOfGetCallerFnName() string {
	return GetCallerFnName()
}

func TestGetCallerFnName(t *testing.T) {
	assert.Equal(t, "utils.TestGetCallerFnName", testCallerOfGetCallerFnName())
}

func TestStopwatch(t *testing.T) {
	assert := assert.New(t)

	sw := NewStopwatch()
	assert.True(sw.IsRunning)
	assert.True(sw.StopTime.IsZero())
	assert.Equal(time.Duration(0), sw.ElapsedTime)

	sleepTime := 20 * time.Millisecond
	time.Sleep(sleepTime)

	elapsed := sw.Stop()
	assert.False(sw.IsRunning)
	assert.False(sw.StopTime.IsZero())
	assert.True(elapsed >= sleepTime)
	assert.Equal(elapsed, sw.Elapsed())
	assert.Equal(elapsed, sw.Stop())
	assert.Equal(int64(elapsed/time.Millisecond), sw.ElapsedMs())
	assert.Equal(elapsed.String(), sw.ElapsedString())

	opsPerSecond := sw.OpsPerSecond(1000)
	assert.True(opsPerSecond > 0)
	assert.True(opsPerSecond <= 1000*float64(time.Second)/float64(sleepTime))

	sw.Restart()
	assert.True(sw.IsRunning)
	assert.Equal(time.Duration(0), sw.ElapsedTime)
	assert.True(sw.StopTime.IsZero())

	frozen := Stopwatch{}
	assert.Equal(float64(0), frozen.OpsPerSecond(10))
}
