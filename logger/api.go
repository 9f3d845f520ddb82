// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

// Package logger provides logging wrappers
//
// These wrappers allow us to standardize logging while still using a third-party
// logging package.
//
// This package is implemented on top of the sirupsen/logrus package:
//
//	https://github.com/sirupsen/logrus
//
// The APIs here add package and calling function to all logs.
//
// Logging of trace and debug logs are enabled/disabled on a per package basis.
package logger

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/NVIDIA/orderedtree/utils"
)

type Level int

// Our logging levels
//
// We have more detailed logging levels than the logrus log package, so they
// are mapped to logrus levels before calling logrus APIs.
const (
	// PanicLevel corresponds to logrus.PanicLevel
	PanicLevel Level = iota
	// FatalLevel corresponds to logrus.FatalLevel; logrus calls os.Exit(1) after logging
	FatalLevel
	ErrorLevel
	WarnLevel
	InfoLevel

	// TraceLevel traces the success path through a package (rebalancing
	// steps, pool growth). Enabled per package; logged at logrus.InfoLevel.
	TraceLevel

	// DebugLevel is very verbose and keyed by a debug ID. Enabled per
	// package; logged at logrus.DebugLevel.
	DebugLevel
)

func (level Level) String() string {
	switch level {
	case PanicLevel:
		return "panic"
	case FatalLevel:
		return "fatal"
	case ErrorLevel:
		return "error"
	case WarnLevel:
		return "warn"
	case InfoLevel:
		return "info"
	case TraceLevel:
		return "trace"
	case DebugLevel:
		return "debug"
	}
	return "unknown"
}

// Flag to disable all logging, for performance testing.
var disableLoggingForPerfTesting = false

// These are defaulted to disabled unless otherwise specified in the .conf file
var traceLevelEnabled = false
var debugLevelEnabled = false

// packageTraceSettings controls whether tracing is enabled for particular packages.
//
// Note: In order to enable tracing for a package using the "Logging.TraceLevelLogging"
// config variable, the package must be in this map.
var packageTraceSettings = map[string]bool{
	"logger":      false,
	"nodepool":    false,
	"orderedmap":  false,
	"orderedset":  false,
	"rbtree":      false,
	"treeworkout": false,
}

const DbgInternal string = "debug_internal"
const DbgTesting string = "debug_test"

// packageDebugSettings holds the enabled debug IDs for each package.
var packageDebugSettings = map[string][]string{
	"nodepool":    {},
	"rbtree":      {},
	"treeworkout": {},
}

func resetLoggingLevels() {
	traceLevelEnabled = false
	debugLevelEnabled = false
	for pkg := range packageTraceSettings {
		packageTraceSettings[pkg] = false
	}
	for pkg := range packageDebugSettings {
		packageDebugSettings[pkg] = []string{}
	}
}

func setTraceLoggingLevel(confStrSlice []string) {
HandlePkgs:
	for _, pkg := range confStrSlice {
		switch pkg {
		case "none":
			traceLevelEnabled = false
			break HandlePkgs
		default:
			if _, ok := packageTraceSettings[pkg]; ok {
				packageTraceSettings[pkg] = true
				traceLevelEnabled = true
			}
		}
	}

	if traceLevelEnabled {
		for pkg, isEnabled := range packageTraceSettings {
			if isEnabled {
				Infof("Package %v trace logging is enabled.", pkg)
			}
		}
	}
}

func setDebugLoggingLevel(confStrSlice []string) {
HandlePkgs:
	for _, pkg := range confStrSlice {
		switch pkg {
		case "none":
			debugLevelEnabled = false
			break HandlePkgs
		default:
			if _, ok := packageDebugSettings[pkg]; ok {
				packageDebugSettings[pkg] = []string{DbgInternal, DbgTesting}
				debugLevelEnabled = true
			}
		}
	}

	if debugLevelEnabled {
		for pkg, ids := range packageDebugSettings {
			if len(ids) > 0 {
				Infof("Package %v debug logging is enabled.", pkg)
			}
		}
	}
}

// TraceEnabled reports whether trace logs of pkg would be emitted. Callers
// use it to skip building expensive trace arguments.
func TraceEnabled(pkg string) bool {
	if disableLoggingForPerfTesting || !traceLevelEnabled {
		return false
	}
	return packageTraceSettings[pkg]
}

// Log fields supported by logger:
const packageKey string = "package"
const functionKey string = "function"
const errorKey string = "error"
const gidKey string = "goroutine"

// FuncCtx lets package and function be extracted once per function.
type FuncCtx struct {
	funcContext *log.Entry
}

func (ctx *FuncCtx) getPackage() string {
	pkg, ok := ctx.funcContext.Data[packageKey].(string)
	if ok {
		return pkg
	}
	return ""
}

func (ctx *FuncCtx) traceEnabledForPackage() bool {
	return packageTraceSettings[ctx.getPackage()]
}

func (ctx *FuncCtx) debugEnabledForPackage(debugID string) bool {
	if idList, ok := packageDebugSettings[ctx.getPackage()]; ok {
		for _, id := range idList {
			if id == debugID {
				return true
			}
		}
	}
	return false
}

func newFuncCtxWithFields(level int, fields log.Fields) (ctx *FuncCtx) {
	fn, pkg, gid := utils.GetFuncPackage(level + 1)

	fields[functionKey] = fn
	fields[packageKey] = pkg
	fields[gidKey] = gid

	ctx = &FuncCtx{funcContext: log.WithFields(fields)}
	return
}

func newFuncCtx(level int) (ctx *FuncCtx) {
	return newFuncCtxWithFields(level+1, make(log.Fields))
}

func newFuncCtxWithField(level int, key string, value interface{}) (ctx *FuncCtx) {
	return newFuncCtxWithFields(level+1, log.Fields{key: value})
}

var backtraceOneLevel int = 1

func logEnabled(level Level) bool {
	if disableLoggingForPerfTesting {
		return false
	}
	if (level == TraceLevel) && !traceLevelEnabled {
		return false
	}
	if (level == DebugLevel) && !debugLevelEnabled {
		return false
	}
	return true
}

// Logger intentionally does not provide a Debugf() API; use DebugfID() instead.

func DebugfID(id string, format string, args ...interface{}) {
	level := DebugLevel
	if !logEnabled(level) {
		return
	}
	ctx := newFuncCtx(backtraceOneLevel)
	ctx.logWithID(level, id, fmt.Sprintf(format, args...))
}

func Errorf(format string, args ...interface{}) {
	level := ErrorLevel
	if !logEnabled(level) {
		return
	}
	ctx := newFuncCtx(backtraceOneLevel)
	ctx.log(level, fmt.Sprintf(format, args...))
}

func Fatalf(format string, args ...interface{}) {
	level := FatalLevel
	if !logEnabled(level) {
		return
	}
	ctx := newFuncCtx(backtraceOneLevel)
	ctx.log(level, fmt.Sprintf(format, args...))
}

func Infof(format string, args ...interface{}) {
	level := InfoLevel
	if !logEnabled(level) {
		return
	}
	ctx := newFuncCtx(backtraceOneLevel)
	ctx.log(level, fmt.Sprintf(format, args...))
}

func Tracef(format string, args ...interface{}) {
	level := TraceLevel
	if !logEnabled(level) {
		return
	}
	ctx := newFuncCtx(backtraceOneLevel)
	ctx.log(level, fmt.Sprintf(format, args...))
}

func Warnf(format string, args ...interface{}) {
	level := WarnLevel
	if !logEnabled(level) {
		return
	}
	ctx := newFuncCtx(backtraceOneLevel)
	ctx.log(level, fmt.Sprintf(format, args...))
}

func ErrorfWithError(err error, format string, args ...interface{}) {
	level := ErrorLevel
	if !logEnabled(level) {
		return
	}
	ctx := newFuncCtxWithField(backtraceOneLevel, errorKey, err)
	ctx.log(level, fmt.Sprintf(format, args...))
}

func WarnfWithError(err error, format string, args ...interface{}) {
	level := WarnLevel
	if !logEnabled(level) {
		return
	}
	ctx := newFuncCtxWithField(backtraceOneLevel, errorKey, err)
	ctx.log(level, fmt.Sprintf(format, args...))
}

func FatalfWithError(err error, format string, args ...interface{}) {
	level := FatalLevel
	if !logEnabled(level) {
		return
	}
	ctx := newFuncCtxWithField(backtraceOneLevel, errorKey, err)
	ctx.log(level, fmt.Sprintf(format, args...))
}

func TraceEnter(argsPrefix string, args ...interface{}) (ctx FuncCtx) {
	level := TraceLevel
	if !logEnabled(level) {
		return
	}

	ctx = *newFuncCtx(backtraceOneLevel)
	ctx.traceInternal(">> called", argsPrefix, args...)

	return
}

// TraceExit generates a function exit trace using the package and function
// captured by TraceEnter. It is meant to be deferred.
func (ctx *FuncCtx) TraceExit(argsPrefix string, args ...interface{}) {
	level := TraceLevel
	if !logEnabled(level) {
		return
	}

	if ctx.funcContext == nil {
		ctx.funcContext = newFuncCtx(backtraceOneLevel).funcContext
	}

	ctx.traceInternal("<< returning", argsPrefix, args...)
}

func (ctx *FuncCtx) traceInternal(formatPrefix string, argsPrefix string, args ...interface{}) {
	format := formatPrefix + " %s"
	for range args {
		format += " %+v"
	}
	ctx.log(TraceLevel, fmt.Sprintf(format, append([]interface{}{argsPrefix}, args...)...))
}

// log is the common low-level logging function used internal to this package.
//
// Following logrus' entry.go, the receiver is not a pointer.
func (ctx FuncCtx) log(level Level, args ...interface{}) {
	if (level == TraceLevel) && !ctx.traceEnabledForPackage() {
		return
	}

	switch level {
	case PanicLevel:
		ctx.funcContext.Panic(args...)
	case FatalLevel:
		ctx.funcContext.Fatal(args...)
	case ErrorLevel:
		ctx.funcContext.Error(args...)
	case WarnLevel:
		ctx.funcContext.Warn(args...)
	case TraceLevel:
		ctx.funcContext.Info(args...)
	case InfoLevel:
		ctx.funcContext.Info(args...)
	case DebugLevel:
		ctx.funcContext.Debug(args...)
	}
}

func (ctx FuncCtx) logWithID(level Level, id string, args ...interface{}) {
	if (level == DebugLevel) && !ctx.debugEnabledForPackage(id) {
		return
	}
	ctx.log(level, args...)
}
