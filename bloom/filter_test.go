package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/citegrab/bloom"
	"github.com/stretchr/testify/assert"
)

func TestSet_Add(t *testing.T) {
	t.Parallel()

	s := bloom.NewSet(100, 0.01)

	assert.False(t, s.Contains("https://example.com/page1"))
	assert.True(t, s.Add("https://example.com/page1"))
	assert.True(t, s.Contains("https://example.com/page1"))

	// Second insert of the same URL is a duplicate
	assert.False(t, s.Add("https://example.com/page1"))

	assert.False(t, s.Contains("https://example.com/page2"))
	assert.Equal(t, 1, s.Len())
}

func TestSet_ExactMatchOnly(t *testing.T) {
	t.Parallel()

	s := bloom.NewSet(10, 0.01)

	s.Add("https://example.com/page")

	// Trailing slash and case differences are distinct URLs
	assert.True(t, s.Add("https://example.com/page/"))
	assert.True(t, s.Add("https://example.com/Page"))
	assert.Equal(t, 3, s.Len())
}

func TestSet_NoFalsePositivesWhenOverfilled(t *testing.T) {
	t.Parallel()

	// Sized far below the inserted count so the filter saturates
	s := bloom.NewSet(4, 0.5)

	for i := 0; i < 500; i++ {
		assert.True(t, s.Add(fmt.Sprintf("https://example.com/page%d", i)))
	}
	assert.Equal(t, 500, s.Len())
}

func TestSet_ZeroSize(t *testing.T) {
	t.Parallel()

	s := bloom.NewSet(0, 0.01)

	assert.True(t, s.Add("https://example.com"))
	assert.True(t, s.Contains("https://example.com"))
}

func TestSet_EstimatedCount(t *testing.T) {
	t.Parallel()

	s := bloom.NewSet(1000, 0.01)
	assert.Equal(t, uint(0), s.EstimatedCount())

	s.Add("https://example.com/page1")
	s.Add("https://example.com/page2")
	s.Add("https://example.com/page3")

	count := s.EstimatedCount()
	assert.GreaterOrEqual(t, count, uint(2))
	assert.LessOrEqual(t, count, uint(4))
}
