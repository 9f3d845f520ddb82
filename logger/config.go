// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"io"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/NVIDIA/orderedtree/conf"
)

var (
	logFile      *os.File = nil
	targetsLock  sync.Mutex
	baseOutput   io.Writer = os.Stderr
	extraTargets []io.Writer
)

// multiWriter fans each log entry out to every writer it holds.
type multiWriter struct {
	writers []io.Writer
}

func (mw *multiWriter) Write(p []byte) (n int, err error) {
	for _, w := range mw.writers {
		n, err = w.Write(p)
		if nil != err {
			return
		}
	}
	n = len(p)
	return
}

func applyOutput() {
	if 0 == len(extraTargets) {
		log.SetOutput(baseOutput)
		return
	}
	output := &multiWriter{writers: append([]io.Writer{baseOutput}, extraTargets...)}
	log.SetOutput(output)
}

// Up configures logging from the Logging section of confMap:
//
//	[Logging]
//	LogFilePath:       /var/log/treeworkout.log
//	LogToConsole:      true
//	TraceLevelLogging: rbtree nodepool
//	DebugLevelLogging: none
func Up(confMap conf.ConfMap) (err error) {
	log.SetFormatter(&log.TextFormatter{DisableColors: true})

	targetsLock.Lock()
	defer targetsLock.Unlock()

	logFilePath, _ := confMap.FetchOptionValueString("Logging", "LogFilePath")
	if logFilePath != "" {
		logFile, err = os.OpenFile(logFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if nil != err {
			log.Errorf("couldn't open log file: %v", err)
			return
		}
	}

	logToConsole, err := confMap.FetchOptionValueBool("Logging", "LogToConsole")
	if nil != err {
		logToConsole = false
	}

	switch {
	case nil == logFile:
		baseOutput = os.Stderr
	case logToConsole:
		baseOutput = &multiWriter{writers: []io.Writer{logFile, os.Stderr}}
	default:
		baseOutput = logFile
	}
	applyOutput()

	// logrus always logs everything; this package decides what reaches it
	log.SetLevel(log.DebugLevel)

	resetLoggingLevels()

	traceConfSlice, _ := confMap.FetchOptionValueStringSlice("Logging", "TraceLevelLogging")
	setTraceLoggingLevel(traceConfSlice)

	debugConfSlice, _ := confMap.FetchOptionValueStringSlice("Logging", "DebugLevelLogging")
	setDebugLoggingLevel(debugConfSlice)

	err = nil
	return
}

func Down() (err error) {
	targetsLock.Lock()
	defer targetsLock.Unlock()

	extraTargets = nil
	baseOutput = os.Stderr
	applyOutput()

	if nil != logFile {
		err = logFile.Close()
		logFile = nil
	}
	resetLoggingLevels()
	return
}
