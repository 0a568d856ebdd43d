package params

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePaginationAbsent(t *testing.T) {
	_, ok := ParsePagination(url.Values{})
	assert.False(t, ok)
}

func TestParsePaginationClamps(t *testing.T) {
	p, ok := ParsePagination(url.Values{"limit": {"1000"}, "page": {"-3"}})
	assert.True(t, ok)
	assert.Equal(t, MaxLimit, p.Limit)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 0, p.Offset)

	p, _ = ParsePagination(url.Values{"limit": {"abc"}, "page": {"3"}})
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, 2*DefaultLimit, p.Offset)
}

func TestWindow(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	p, _ := ParsePagination(url.Values{"limit": {"3"}, "page": {"3"}})
	assert.Equal(t, []int{7}, Window(items, &p))
	assert.Equal(t, 7, p.Total)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasPrev)
	assert.False(t, p.HasNext)

	p, _ = ParsePagination(url.Values{"limit": {"3"}, "page": {"9"}})
	out := Window(items, &p)
	assert.NotNil(t, out)
	assert.Empty(t, out)

	p, _ = ParsePagination(url.Values{"limit": {"3"}})
	assert.Equal(t, []int{1, 2, 3}, Window(items, &p))
	assert.True(t, p.HasNext)
}
