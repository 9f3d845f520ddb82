// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package blunder

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"
)

func TestValues(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(int(unix.ENOENT), NotFoundError.Value())
	assert.Equal(int(unix.ENOMEM), OutOfMemoryError.Value())
	assert.Equal(int(unix.EINVAL), InvalidArgError.Value())
	assert.Equal(int(unix.ERANGE), OutOfRangeError.Value())
	assert.Equal(1000, RangeViolationError.Value())
	assert.Equal(1001, CorruptTreeError.Value())

	assert.Equal("OutOfRangeError", OutOfRangeError.String())
	assert.Equal("TreeError(4242)", TreeError(4242).String())
}

func TestDefaultErrno(t *testing.T) {
	assert := assert.New(t)

	var err error

	assert.Equal(successErrno, Errno(err))
	assert.True(IsSuccess(err))
	assert.Equal("", ErrorString(err))

	err = fmt.Errorf("Simple test error")
	assert.Equal(failureErrno, Errno(err))
	assert.True(IsNotSuccess(err))
	assert.Equal("Simple test error", ErrorString(err))
}

func TestNewError(t *testing.T) {
	assert := assert.New(t)

	err := NewError(OutOfRangeError, "key %v not found", 7)
	assert.Equal("key 7 not found", err.Error())
	assert.True(Is(err, OutOfRangeError))
	assert.True(IsNot(err, NotFoundError))
	assert.True(IsNotSuccess(err))
	assert.Equal(fmt.Sprintf("key 7 not found. Error Value: %v", int(unix.ERANGE)), ErrorString(err))

	file, line := Location(err)
	assert.True(strings.HasSuffix(file, "api_test.go"), file)
	assert.NotZero(line)
	assert.Contains(SourceLine(err), "api_test.go")
	assert.Contains(Stacktrace(err), "TestNewError")
	assert.Contains(Details(err), "key 7 not found")
}

func TestAddError(t *testing.T) {
	assert := assert.New(t)

	err := AddError(fmt.Errorf("plain"), InvalidArgError)
	assert.True(Is(err, InvalidArgError))
	assert.Equal("plain", err.Error())

	err = AddError(err, CorruptTreeError)
	assert.True(Is(err, CorruptTreeError))
	assert.False(Is(err, InvalidArgError))

	err = AddError(nil, PlanError)
	assert.True(Is(err, PlanError))
}
