// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"io"
)

// AddLogTarget adds another target for log messages. writer is called
// once for each log message.
//
// Logger.Up() must be called before this function is used.
func AddLogTarget(writer io.Writer) {
	targetsLock.Lock()
	defer targetsLock.Unlock()

	extraTargets = append(extraTargets, writer)
	applyOutput()
}

// LogBuffer captures the most recent log entries. Useful for test cases.
type LogBuffer struct {
	LogEntries   []string // most recent log entry is [0]
	TotalEntries int      // count of all entries seen
}

type LogTarget struct {
	LogBuf *LogBuffer
}

// Init readies a LogTarget to hold up to nEntry log entries.
func (target *LogTarget) Init(nEntry int) {
	target.LogBuf = &LogBuffer{TotalEntries: 0}
	target.LogBuf.LogEntries = make([]string, nEntry)
}

// Write is called by logger for each log entry.
func (target LogTarget) Write(p []byte) (n int, err error) {
	entries := target.LogBuf.LogEntries
	if 0 < len(entries) {
		copy(entries[1:], entries[:len(entries)-1])
		entries[0] = string(p)
	}
	target.LogBuf.TotalEntries++

	n = len(p)
	return
}
