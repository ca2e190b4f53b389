package repository

import (
	"Ripple/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecentWindow(t *testing.T) {
	for _, tc := range []struct{ length, hi int }{{0, 0}, {3, 3}, {5, 5}, {12, 5}} {
		lo, hi := recentWindow(tc.length)
		assert.Equal(t, 0, lo)
		assert.Equal(t, tc.hi, hi, "length %d", tc.length)
	}
}

func TestAfterWindow(t *testing.T) {
	lo, hi := afterWindow(0)
	assert.Equal(t, [2]int{0, 0}, [2]int{lo, hi})

	lo, hi = afterWindow(-1)
	assert.Equal(t, [2]int{0, 0}, [2]int{lo, hi})

	lo, hi = afterWindow(7)
	assert.Equal(t, [2]int{0, 7}, [2]int{lo, hi})
}

func TestBeforeWindow(t *testing.T) {
	cases := []struct {
		name          string
		index, length int
		lo, hi        int
	}{
		{"last element", 9, 10, 0, 0},
		{"out of range", 10, 10, 0, 0},
		{"negative", -1, 10, 0, 0},
		{"full page", 2, 10, 3, 8},
		{"short tail", 6, 10, 7, 10},
		{"first of two", 0, 2, 1, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lo, hi := beforeWindow(tc.index, tc.length)
			assert.Equal(t, tc.lo, lo)
			assert.Equal(t, tc.hi, hi)
		})
	}
}

func TestIndexOf(t *testing.T) {
	view := []*model.Post{{ID: 5}, {ID: 3}, {ID: 1}}
	assert.Equal(t, 0, indexOf(view, 5))
	assert.Equal(t, 2, indexOf(view, 1))
	assert.Equal(t, -1, indexOf(view, 4))
	assert.Equal(t, -1, indexOf(nil, 1))
}
