package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRandomNumber(t *testing.T) {
	code := GenerateRandomNumber(6)
	assert.Len(t, code, 6)
	for _, c := range code {
		assert.True(t, c >= '0' && c <= '9')
	}
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("user@example.com"))
	assert.True(t, ValidateEmail("first.last+tag@sub.example.co"))
	assert.False(t, ValidateEmail("not-an-email"))
	assert.False(t, ValidateEmail("missing@domain"))
	assert.False(t, ValidateEmail("@example.com"))
}

func TestRoundRating(t *testing.T) {
	assert.Equal(t, 4.0, RoundRating(4.0))
	assert.Equal(t, 4.33, RoundRating(13.0/3.0))
	assert.Equal(t, 4.67, RoundRating(14.0/3.0))
	assert.Equal(t, 0.0, RoundRating(0))
}

func TestTruncateDate(t *testing.T) {
	ts := time.Date(2025, 6, 15, 13, 45, 30, 0, time.UTC)
	got := TruncateDate(ts)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestPtrHelpers(t *testing.T) {
	assert.Equal(t, "a", *StringPtr("a"))
	assert.Equal(t, int64(7), *Int64Ptr(7))
	assert.Equal(t, 1.5, *Float64Ptr(1.5))

	assert.Equal(t, "", SafeString(nil))
	assert.Equal(t, "x", SafeString(StringPtr("x")))
	assert.Equal(t, int64(0), SafeInt64(nil))
	assert.Equal(t, 0.0, SafeFloat64(nil))
	assert.Equal(t, 2.5, SafeFloat64(Float64Ptr(2.5)))
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"a", "b"}, "b"))
	assert.False(t, Contains([]int{1, 2}, 3))
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, Unique([]int{1, 2, 2, 3, 1}))
}

func TestMaxMin(t *testing.T) {
	assert.Equal(t, 5, Max(3, 5))
	assert.Equal(t, int64(3), Min(int64(3), int64(5)))
}

func TestPagination(t *testing.T) {
	p := Pagination{Page: 0, PageSize: 0}
	p.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.PageSize)
	assert.Equal(t, 0, p.GetOffset())

	p = Pagination{Page: 3, PageSize: 20}
	p.Normalize()
	assert.Equal(t, 40, p.GetOffset())
	assert.Equal(t, 20, p.GetLimit())

	p = Pagination{Page: 1, PageSize: 500}
	p.Normalize()
	assert.Equal(t, 100, p.PageSize)
}
