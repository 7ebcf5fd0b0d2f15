package random

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSource_Range(t *testing.T) {
	s := New()

	assert.Equal(t, uint64(math.MaxUint32), s.Max())
	for i := 0; i < 1000; i++ {
		assert.LessOrEqual(t, s.Next(), s.Max())
	}
}

func TestSource_SeededIsDeterministic(t *testing.T) {
	a := NewSeeded(1, 2)
	b := NewSeeded(1, 2)

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}
