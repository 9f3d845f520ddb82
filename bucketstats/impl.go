// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package bucketstats

import (
	"fmt"
	"math"
	"math/big"
	"math/bits"
	"reflect"
	"sort"
	"strings"
	"sync"
	"unicode"
)

var (
	pkgNameToGroupName map[string]map[string]interface{}
	statsNameMapLock   sync.Mutex

	log2RoundBucketTable [65]BucketInfo
)

func init() {
	// bucket n (n >= 2) starts at ceil(2^(n - 1.5))
	rangeLow := func(n int) uint64 {
		return uint64(math.Ceil(math.Pow(2, float64(n)-1.5)))
	}

	log2RoundBucketTable[0] = BucketInfo{NominalVal: 0, MeanVal: 0, RangeLow: 0, RangeHigh: 0}
	log2RoundBucketTable[1] = BucketInfo{NominalVal: 1, MeanVal: 1, RangeLow: 1, RangeHigh: 1}
	for n := 2; n < len(log2RoundBucketTable); n++ {
		info := &log2RoundBucketTable[n]
		info.NominalVal = uint64(1) << uint(n-1)
		info.RangeLow = rangeLow(n)
		if n == len(log2RoundBucketTable)-1 {
			info.RangeHigh = math.MaxUint64
		} else {
			info.RangeHigh = rangeLow(n+1) - 1
		}
		info.MeanVal = meanOfRange(info.RangeLow, info.RangeHigh)
	}
}

func meanOfRange(low uint64, high uint64) (mean uint64) {
	mean = low/2 + high/2
	if 1 == low&high&0x1 {
		mean += 1
	}
	return
}

// log2RoundIdx returns round(log2(value)) + 1, using the bucket table so that
// bucket boundaries agree exactly with RangeLow.
func log2RoundIdx(value uint64) uint {
	if value < 2 {
		return uint(value)
	}
	idx := uint(bits.Len64(value))
	if idx+1 >= uint(len(log2RoundBucketTable)) {
		return uint(len(log2RoundBucketTable)) - 1
	}
	if value >= log2RoundBucketTable[idx+1].RangeLow {
		idx++
	}
	return idx
}

// statFields returns the bucketstats statistics fields of statsStruct, which
// must be a pointer to a struct.
func statFields(statsGroupName string, statsStruct interface{}) (fields []reflect.Value, fieldNames []string) {
	if reflect.TypeOf(statsStruct).Kind() != reflect.Ptr ||
		reflect.ValueOf(statsStruct).Elem().Type().Kind() != reflect.Struct {
		panic(fmt.Sprintf("statsStruct for statistics group '%s' is (%s), should be (*struct)",
			statsGroupName, reflect.TypeOf(statsStruct)))
	}

	structAsValue := reflect.ValueOf(statsStruct).Elem()
	structAsType := structAsValue.Type()

	for i := 0; i < structAsType.NumField(); i++ {
		switch structAsType.Field(i).Type {
		case reflect.TypeOf(Total{}), reflect.TypeOf(Average{}), reflect.TypeOf(BucketLog2Round{}):
			fields = append(fields, structAsValue.Field(i))
			fieldNames = append(fieldNames, structAsType.Field(i).Name)
		}
	}
	return
}

func register(pkgName string, statsGroupName string, statsStruct interface{}) {
	if pkgName == "" && statsGroupName == "" {
		panic("statistics group must have non-empty pkgName or statsGroupName")
	}

	fields, fieldNames := statFields(statsGroupName, statsStruct)
	names := make(map[string]struct{})

	for i, fieldAsValue := range fields {
		fieldName := fieldNames[i]

		if !fieldAsValue.CanSet() {
			panic(fmt.Sprintf("statistics group '%s' field %s must be exported to be usable by bucketstats",
				statsGroupName, fieldName))
		}

		statNameValue := fieldAsValue.FieldByName("Name")
		if statNameValue.String() == "" {
			statNameValue.SetString(fieldName)
		} else {
			statNameValue.SetString(scrubName(statNameValue.String()))
		}
		if _, ok := names[statNameValue.String()]; ok {
			panic(fmt.Sprintf("stats '%s' field %s Name '%s' is already in use",
				statsGroupName, fieldName, statNameValue))
		}
		names[statNameValue.String()] = struct{}{}

		if v, ok := fieldAsValue.Addr().Interface().(*BucketLog2Round); ok {
			if v.NBucket == 0 || v.NBucket > uint(len(v.statBuckets)) {
				v.NBucket = uint(len(v.statBuckets))
			} else if v.NBucket < 10 {
				v.NBucket = 10
			}
		}
	}

	statsGroupName = scrubName(statsGroupName)
	pkgName = scrubName(pkgName)

	statsNameMapLock.Lock()
	defer statsNameMapLock.Unlock()

	if pkgNameToGroupName == nil {
		pkgNameToGroupName = make(map[string]map[string]interface{})
	}
	if pkgNameToGroupName[pkgName] == nil {
		pkgNameToGroupName[pkgName] = make(map[string]interface{})
	}

	if pkgNameToGroupName[pkgName][statsGroupName] != nil {
		panic(fmt.Sprintf("pkgName '%s' with statsGroupName '%s' is already registered",
			pkgName, statsGroupName))
	}
	pkgNameToGroupName[pkgName][statsGroupName] = statsStruct
}

func unRegister(pkgName string, statsGroupName string) {
	pkgName = scrubName(pkgName)
	statsGroupName = scrubName(statsGroupName)

	statsNameMapLock.Lock()
	defer statsNameMapLock.Unlock()

	if pkgNameToGroupName[pkgName] != nil {
		delete(pkgNameToGroupName[pkgName], statsGroupName)

		if len(pkgNameToGroupName[pkgName]) == 0 {
			delete(pkgNameToGroupName, pkgName)
		}
	}
}

func sortedKeys[V any](m map[string]V) (keys []string) {
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return
}

// sprintStats returns the selected group(s) of statistics in a stable order.
func sprintStats(stringFmt StatStringFormat, pkgName string, statsGroupName string) (statValues string) {
	statsNameMapLock.Lock()
	defer statsNameMapLock.Unlock()

	var pkgNames []string
	if pkgName == "*" {
		pkgNames = sortedKeys(pkgNameToGroupName)
	} else {
		pkgNames = []string{scrubName(pkgName)}
	}

	for _, pkg := range pkgNames {
		var groupNames []string
		if statsGroupName == "*" {
			groupNames = sortedKeys(pkgNameToGroupName[pkg])
		} else {
			groupNames = []string{scrubName(statsGroupName)}
		}

		for _, group := range groupNames {
			statsStruct, ok := pkgNameToGroupName[pkg][group]
			if !ok {
				panic(fmt.Sprintf(
					"bucketstats.sprintStats(): statistics group '%s.%s' is not registered",
					pkg, group))
			}
			statValues += sprintStatsStruct(stringFmt, pkg, group, statsStruct)
		}
	}
	return
}

func sprintStatsStruct(stringFmt StatStringFormat, pkgName string, statsGroupName string,
	statsStruct interface{}) (statValues string) {

	fields, _ := statFields(statsGroupName, statsStruct)
	for _, fieldAsValue := range fields {
		statValues += fieldAsValue.Addr().Interface().(Totaler).Sprint(stringFmt, pkgName, statsGroupName)
	}
	return
}

// statisticName returns the fully qualified statistic name.
func statisticName(pkgName string, statsGroupName string, fieldName string) string {
	switch {
	case pkgName == "":
		return statsGroupName + "." + fieldName
	case statsGroupName == "":
		return pkgName + "." + fieldName
	default:
		return pkgName + "." + statsGroupName + "." + fieldName
	}
}

func unknownFormat(statName string, stringFmt StatStringFormat) string {
	return fmt.Sprintf("statName '%s': Unknown StatStringFormat: '%v'\n", statName, stringFmt)
}

func (this *Total) sprint(stringFmt StatStringFormat, pkgName string, statsGroupName string) string {
	statName := statisticName(pkgName, statsGroupName, this.Name)

	if StatFormatParsable1 != stringFmt {
		return unknownFormat(statName, stringFmt)
	}
	return fmt.Sprintf("%s total:%d\n", statName, this.TotalGet())
}

func (this *Average) sprint(stringFmt StatStringFormat, pkgName string, statsGroupName string) string {
	statName := statisticName(pkgName, statsGroupName, this.Name)

	if StatFormatParsable1 != stringFmt {
		return unknownFormat(statName, stringFmt)
	}
	return fmt.Sprintf("%s total:%d count:%d avg:%d\n",
		statName, this.TotalGet(), this.CountGet(), this.AverageGet())
}

// bucketDistMake builds the canonical distribution of a bucketized statistic.
// When fewer than all buckets are in use the last one absorbs the rest of the range.
func bucketDistMake(nBucket uint, statBuckets []uint32, bucketInfoBase []BucketInfo) []BucketInfo {
	bucketInfo := make([]BucketInfo, nBucket)
	copy(bucketInfo, bucketInfoBase[0:nBucket])
	for i := uint(0); i < nBucket; i += 1 {
		bucketInfo[i].Count = uint64(statBuckets[i])
	}

	if nBucket < uint(len(bucketInfoBase)) {
		last := &bucketInfo[nBucket-1]
		last.RangeHigh = bucketInfoBase[len(bucketInfoBase)-1].RangeHigh
		last.MeanVal = meanOfRange(last.RangeLow, last.RangeHigh)
	}
	return bucketInfo
}

// bucketCalcStat returns, for a distribution, the index of the last bucket
// with a non-zero count, the count of values, their approximate sum, and mean.
func bucketCalcStat(bucketInfo []BucketInfo) (lastIdx int, count uint64, sum uint64, mean uint64) {
	var (
		bigSum     big.Int
		bigMean    big.Int
		bigTmp     big.Int
		bigProduct big.Int
	)

	for i := 0; i < len(bucketInfo); i += 1 {
		count += bucketInfo[i].Count

		bigTmp.SetUint64(bucketInfo[i].Count)
		bigProduct.SetUint64(bucketInfo[i].MeanVal)
		bigProduct.Mul(&bigProduct, &bigTmp)
		bigSum.Add(&bigSum, &bigProduct)

		if bucketInfo[i].Count > 0 {
			lastIdx = i
		}
	}
	if count > 0 {
		bigTmp.SetUint64(count)
		bigMean.Div(&bigSum, &bigTmp)
	}

	mean = bigMean.Uint64()
	if bigSum.IsUint64() {
		sum = bigSum.Uint64()
	} else {
		sum = math.MaxUint64
	}
	return
}

func bucketSprint(stringFmt StatStringFormat, pkgName string, statsGroupName string, fieldName string,
	bucketInfo []BucketInfo) string {

	statName := statisticName(pkgName, statsGroupName, fieldName)
	if StatFormatParsable1 != stringFmt {
		return unknownFormat(statName, stringFmt)
	}

	lastIdx, count, sum, mean := bucketCalcStat(bucketInfo)
	line := fmt.Sprintf("%s total:%d count:%d avg:%d", statName, sum, count, mean)

	// bucket names are printed as a number up to 3 digits long, then as 2^n
	for idx := 0; idx < lastIdx+1; idx += 1 {
		if bucketInfo[idx].NominalVal < 1024 {
			line += fmt.Sprintf(" %d:%d", bucketInfo[idx].NominalVal, bucketInfo[idx].Count)
		} else {
			line += fmt.Sprintf(" 2^%d:%d", idx-1, bucketInfo[idx].Count)
		}
	}
	return line + "\n"
}

// scrubName replaces characters that are illegal in names with '_'
func scrubName(name string) string {
	replaceChar := func(r rune) rune {
		switch {
		case unicode.IsSpace(r):
			return '_'
		case !unicode.IsPrint(r):
			return '_'
		case r == '*':
			return '_'
		case r == ':':
			return '_'
		case r == '#':
			return '_'
		}
		return r
	}

	return strings.Map(replaceChar, name)
}
