// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

// Package blunder provides error-handling wrappers
//
// These wrappers allow callers to provide additional information in Go errors
// while still conforming to the Go error interface.
//
// This package is implemented on top of the ansel1/merry package:
//
//	https://github.com/ansel1/merry
//
// Every error returned by the tree engine, the node pool, and the container
// facades carries an errno value that callers retrieve with Errno() and
// test with Is().
package blunder

import (
	"fmt"

	"github.com/ansel1/merry"
	"golang.org/x/sys/unix"

	"github.com/NVIDIA/orderedtree/logger"
)

// TreeError is an errno-style classification of the errors reported by
// the containers.
//
// Where a linux/POSIX errno fits the condition it is used; the rest are
// numbered from 1000 up.
type TreeError int

const (
	NotFoundError     TreeError = TreeError(int(unix.ENOENT)) // No such element
	OutOfMemoryError  TreeError = TreeError(int(unix.ENOMEM)) // Node storage exhausted
	InvalidArgError   TreeError = TreeError(int(unix.EINVAL)) // Invalid argument
	OutOfRangeError   TreeError = TreeError(int(unix.ERANGE)) // Checked access of an absent key
	NotSupportedError TreeError = TreeError(int(unix.ENOTSUP))
)

// SuccessError is the value reported for a nil error.
const SuccessError TreeError = 0

const ( // reset iota to 0
	RangeViolationError TreeError = 1000 + iota // Iterator used against a container it does not belong to
	CorruptTreeError                            // Red-black invariant violated
	PlanError                                   // Malformed workout plan
)

// Default errno values for success and failure
const successErrno = 0
const failureErrno = -1

var treeErrorNames = map[TreeError]string{
	SuccessError:        "SuccessError",
	NotFoundError:       "NotFoundError",
	OutOfMemoryError:    "OutOfMemoryError",
	InvalidArgError:     "InvalidArgError",
	OutOfRangeError:     "OutOfRangeError",
	NotSupportedError:   "NotSupportedError",
	RangeViolationError: "RangeViolationError",
	CorruptTreeError:    "CorruptTreeError",
	PlanError:           "PlanError",
}

func (err TreeError) String() string {
	name, ok := treeErrorNames[err]
	if !ok {
		return fmt.Sprintf("TreeError(%d)", int(err))
	}
	return name
}

// Value returns the int value for the specified TreeError constant
func (err TreeError) Value() int {
	return int(err)
}

// NewError creates a new merry/blunder.TreeError-annotated error using the given
// format string and arguments.
func NewError(errValue TreeError, format string, a ...interface{}) error {
	return merry.WrapSkipping(fmt.Errorf(format, a...), 1).WithValue("errno", int(errValue))
}

// AddError is used to add tree error detail to a Go error.
//
// NOTE: merry replaces an existing errno with the new one; a warning is
//
//	logged when that happens.
func AddError(e error, errValue TreeError) error {
	if e == nil {
		return merry.New("regular error").WithValue("errno", int(errValue))
	}

	prevValue := Errno(e)
	if prevValue != successErrno && prevValue != failureErrno {
		logger.Warnf("replacing error value %v with value %v for error %v", prevValue, int(errValue), e)
	}

	return merry.WrapSkipping(e, 1).WithValue("errno", int(errValue))
}

// Errno extracts errno from the error, if it was previously wrapped.
// Otherwise a default value is returned.
func Errno(e error) int {
	if e == nil {
		return successErrno
	}

	var errno = failureErrno
	tmp := merry.Value(e, "errno")
	if tmp != nil {
		errno = tmp.(int)
	}

	return errno
}

func ErrorString(e error) string {
	if e == nil {
		return ""
	}

	errPlusVal := e.Error()

	tmp := merry.Value(e, "errno")
	if tmp != nil {
		errPlusVal = fmt.Sprintf("%s. Error Value: %v", errPlusVal, tmp.(int))
	}

	return errPlusVal
}

// Is checks if an error matches a particular TreeError
//
// NOTE: Because the underlying errno is compared, TreeErrors sharing an
//
//	errno value cannot be told apart.
func Is(e error, theError TreeError) bool {
	return Errno(e) == theError.Value()
}

func IsNot(e error, theError TreeError) bool {
	return Errno(e) != theError.Value()
}

func IsSuccess(e error) bool {
	return Errno(e) == successErrno
}

func IsNotSuccess(e error) bool {
	return Errno(e) != successErrno
}

// Location returns the file and line number of the code that generated the error.
// Returns zero values if e has no stacktrace.
func Location(e error) (file string, line int) {
	file, line = merry.Location(e)
	return
}

// SourceLine returns the string representation of Location's result
func SourceLine(e error) string {
	return merry.SourceLine(e)
}

// Details wraps merry.Details, which returns all error details including stacktrace in a string.
func Details(e error) string {
	return merry.Details(e)
}

// Stacktrace wraps merry.Stacktrace, which returns error stacktrace (if set) in a string.
func Stacktrace(e error) string {
	return merry.Stacktrace(e)
}
