package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectedCount(t *testing.T) {
	assert.Equal(t, 0, SelectedCount(nil))
	assert.Equal(t, 0, SelectedCount([]string{}))
	assert.Equal(t, 2, SelectedCount([]string{"a", "b"}))
	// duplicates are tolerated by de-duplicating
	assert.Equal(t, 2, SelectedCount([]string{"a", "b", "a"}))
}

func TestEffectiveMin(t *testing.T) {
	tests := []struct {
		min      int
		required bool
		want     int
	}{
		{0, true, 1},
		{2, true, 2},
		{0, false, 0},
		{3, false, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EffectiveMin(tt.min, tt.required))
	}
}

func TestIsInvalidConfig(t *testing.T) {
	assert.True(t, IsInvalidConfig(0, 1))
	assert.True(t, IsInvalidConfig(1, 2))
	assert.False(t, IsInvalidConfig(2, 1))
	assert.False(t, IsInvalidConfig(1, 1))
	assert.False(t, IsInvalidConfig(0, 0))
}

func TestRemainingToMin(t *testing.T) {
	assert.Equal(t, 1, RemainingToMin(1, 0))
	assert.Equal(t, 1, RemainingToMin(2, 1))
	assert.Equal(t, 0, RemainingToMin(2, 2))
	assert.Equal(t, 0, RemainingToMin(0, 0))
	// never negative
	assert.Equal(t, 0, RemainingToMin(1, 5))
}

func TestCanSelectMore(t *testing.T) {
	assert.False(t, CanSelectMore(2, 2, false))
	assert.True(t, CanSelectMore(2, 1, false))
	// dropping is always allowed
	assert.True(t, CanSelectMore(1, 1, true))
	// max 0 admits nothing new
	assert.False(t, CanSelectMore(0, 0, false))
}
