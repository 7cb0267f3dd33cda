package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, uint64(0), s.PrimesFound)
	assert.Equal(t, uint64(0), s.LargestFound)
}

func TestSummarize(t *testing.T) {
	records := []Record{
		{Elapsed: 3 * time.Microsecond, Thread: 1, Number: 7},
		{Elapsed: 1 * time.Microsecond, Thread: 0, Number: 2},
		{Elapsed: 9 * time.Microsecond, Thread: 2, Number: 101},
		{Elapsed: 5 * time.Microsecond, Thread: 0, Number: 13},
	}

	s := Summarize(records)
	assert.Equal(t, uint64(4), s.PrimesFound)
	assert.Equal(t, uint64(101), s.LargestFound, "largest is by value, not arrival")
}
