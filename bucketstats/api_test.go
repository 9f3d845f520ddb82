// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package bucketstats

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// a structure containing all of the bucketstats statistics types and other
// fields; useful for testing
type allStatTypes struct {
	MyName   string // not a statistic
	bar      int    // also not a statistic
	Total1   Total
	Average1 Average
	Bucket1  BucketLog2Round
}

func TestBucketStatsInterfaces(t *testing.T) {
	var (
		_ Totaler  = &Total{}
		_ Averager = &Average{}
		_ Bucketer = &BucketLog2Round{}
	)
}

func TestLog2RoundBuckets(t *testing.T) {
	assert := assert.New(t)

	expected := map[uint64]uint{
		0: 0, 1: 1, 2: 2, 3: 3, 5: 3, 6: 4, 11: 4, 12: 5, 22: 5, 23: 6,
	}
	for value, idx := range expected {
		assert.Equal(idx, log2RoundIdx(value), "value %d", value)
	}

	// bucket ranges tile the uint64 space with no gaps
	for n := 1; n < len(log2RoundBucketTable); n++ {
		assert.Equal(log2RoundBucketTable[n-1].RangeHigh+1, log2RoundBucketTable[n].RangeLow, "bucket %d", n)
		assert.Equal(uint(n), log2RoundIdx(log2RoundBucketTable[n].RangeLow), "bucket %d", n)
	}
	assert.Equal(uint64(math.MaxUint64), log2RoundBucketTable[64].RangeHigh)
	assert.Equal(uint64(4), log2RoundBucketTable[3].MeanVal)
	assert.Equal(uint64(8), log2RoundBucketTable[4].MeanVal)
}

func TestRegister(t *testing.T) {
	assert := assert.New(t)

	var myStats allStatTypes = allStatTypes{
		Total1:   Total{Name: "mytotaler"},
		Average1: Average{Name: "First_Average"},
		Bucket1:  BucketLog2Round{Name: "bucket_log2"},
	}
	Register("main", "myStats", &myStats)

	// unregister-ing and re-register-ing myStats is also fine
	UnRegister("main", "myStats")
	Register("main", "myStats", &myStats)

	UnRegister("main", "neverStats")

	assert.Panics(func() { Register("main", "myStats", &myStats) })
	UnRegister("main", "myStats")

	Register("", "myStats", &myStats)
	UnRegister("", "myStats")
	Register("main", "", &myStats)
	UnRegister("main", "")

	assert.Panics(func() { Register("", "", &myStats) })
	assert.Panics(func() { Register("main", "notAPointer", myStats) })

	emptyStats := struct {
		someInt int
	}{}
	assert.NotPanics(func() { Register("main", "emptyStats", &emptyStats) })
	UnRegister("main", "emptyStats")

	var myStats2 allStatTypes
	Register("main", "myStats2", &myStats2)
	assert.Equal("Total1", myStats2.Total1.Name)
	assert.Equal("Average1", myStats2.Average1.Name)
	assert.Equal("Bucket1", myStats2.Bucket1.Name)
	assert.Equal("mytotaler", myStats.Total1.Name)
	assert.Equal(uint(65), myStats2.Bucket1.NBucket)
	UnRegister("main", "myStats2")

	myStats3 := allStatTypes{Bucket1: BucketLog2Round{NBucket: 1}}
	Register("main", "myStats3", &myStats3)
	assert.Equal(uint(10), myStats3.Bucket1.NBucket)
	UnRegister("main", "myStats3")

	myStats4 := allStatTypes{
		Total1:  Total{Name: "mytotaler"},
		Bucket1: BucketLog2Round{Name: "Average1"},
	}
	assert.Panics(func() { Register("main", "myStats4", &myStats4) })

	myStats5 := allStatTypes{
		Total1:   Total{Name: "my bogus totaler name"},
		Average1: Average{Name: "you*can't*put*splat*in*a*name"},
		Bucket1:  BucketLog2Round{Name: ":colon #sharp \tTab"},
	}
	Register("m*a:i#n", "m y s t a t s 5", &myStats5)
	assert.Equal("my_bogus_totaler_name", myStats5.Total1.Name)
	assert.Equal("you_can't_put_splat_in_a_name", myStats5.Average1.Name)
	assert.Equal("_colon__sharp__Tab", myStats5.Bucket1.Name)

	assert.NotEmpty(SprintStats(StatFormatParsable1, "m_a_i_n", "m_y_s_t_a_t_s_5"))
	assert.NotEmpty(SprintStats(StatFormatParsable1, "m*a:i#n", "m y s t a t s 5"))
	UnRegister("m*a:i#n", "m y s t a t s 5")
	assert.Panics(func() { SprintStats(StatFormatParsable1, "m_a_i_n", "m_y_s_t_a_t_s_5") })
}

func TestTotaler(t *testing.T) {
	assert := assert.New(t)

	var totalerGroup allStatTypes
	totalerGroupMap := map[string]Totaler{
		"Total":      &totalerGroup.Total1,
		"Average":    &totalerGroup.Average1,
		"BucketLog2": &totalerGroup.Bucket1,
	}

	// must be registered (inited) before use
	Register("main", "TotalerStat", &totalerGroup)
	defer UnRegister("main", "TotalerStat")

	for name, totaler := range totalerGroupMap {
		assert.Equal(uint64(0), totaler.TotalGet(), name)
		totaler.Increment()
		totaler.Increment()
		totaler.Add(0)
		assert.Equal(uint64(2), totaler.TotalGet(), name)
		totaler.Add(4)
		totaler.Add(8)
		assert.Equal(uint64(14), totaler.TotalGet(), name)
		assert.NotEmpty(totaler.Sprint(StatFormatParsable1, "fu", "bar"), name)
	}

	assert.Equal(uint64(5), totalerGroup.Average1.CountGet())
	assert.Equal(uint64(2), totalerGroup.Average1.AverageGet())
	assert.Equal(uint64(5), totalerGroup.Bucket1.CountGet())
	assert.Equal(uint64(2), totalerGroup.Bucket1.AverageGet())

	assert.Equal(uint64(0), (&Average{}).AverageGet())

	dist := totalerGroup.Bucket1.DistGet()
	assert.Len(dist, 65)
	assert.Equal(uint64(1), dist[0].Count)
	assert.Equal(uint64(2), dist[1].Count)
}

func TestSprintStats(t *testing.T) {
	assert := assert.New(t)

	assert.Panics(func() { SprintStats(StatFormatParsable1, "main", "no-such-stats") })

	stats := struct {
		Rotations Total
		Depth     Average
		Sizes     BucketLog2Round
	}{}
	Register("sprint", "tree", &stats)
	defer UnRegister("sprint", "tree")

	stats.Rotations.Add(3)
	stats.Depth.Add(10)
	stats.Depth.Add(20)
	stats.Sizes.Add(1)
	stats.Sizes.Add(2048)

	out := SprintStats(StatFormatParsable1, "sprint", "*")
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Len(lines, 3)
	assert.Equal("sprint.tree.Rotations total:3", lines[0])
	assert.Equal("sprint.tree.Depth total:30 count:2 avg:15", lines[1])
	assert.True(strings.HasPrefix(lines[2], "sprint.tree.Sizes "), lines[2])
	assert.Contains(lines[2], " 1:1")
	assert.Contains(lines[2], fmt.Sprintf(" 2^%d:1", 11))

	assert.Equal(out, SprintStats(StatFormatParsable1, "*", "tree"))
	assert.Contains(stats.Rotations.Sprint(StatStringFormat(99), "sprint", "tree"), "Unknown StatStringFormat")
}
