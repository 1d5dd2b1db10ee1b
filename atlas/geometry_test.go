package atlas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSize_AreaAndEmpty(t *testing.T) {
	tests := []struct {
		name  string
		size  Size
		area  int
		empty bool
	}{
		{"regular", NewSize(192, 96), 18432, false},
		{"zero width", NewSize(0, 10), 0, true},
		{"zero height", NewSize(10, 0), 0, true},
		{"height one is not empty", NewSize(10, 1), 10, false},
		{"unit", NewSize(1, 1), 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.area, tt.size.Area())
			assert.Equal(t, tt.empty, tt.size.Empty())
			assert.Equal(t, tt.area, Area(tt.size))
			assert.Equal(t, tt.empty, IsEmpty(tt.size))
		})
	}
}

func TestSize_FitsAndTransposed(t *testing.T) {
	s := NewSize(128, 64)
	assert.Equal(t, NewSize(64, 128), s.Transposed())
	assert.True(t, s.Fits(NewSize(128, 64)))
	assert.False(t, s.Fits(NewSize(64, 128)))
	assert.True(t, s.Transposed().Fits(NewSize(64, 128)))
	assert.Equal(t, "128x64", s.String())
}

func TestDimensionsRotated(t *testing.T) {
	s := NewSize(30, 10)
	assert.Equal(t, NewSize(30, 10), Dimensions(s))
	assert.Equal(t, NewSize(30, 10), DimensionsRotated(s, false))
	assert.Equal(t, NewSize(10, 30), DimensionsRotated(s, true))
}

func TestDimensionsLongest(t *testing.T) {
	tests := []struct {
		name   string
		size   Size
		rotate bool
		want   OrientedSize
	}{
		{"tall rotated", NewSize(10, 30), true, OrientedSize{Size: NewSize(30, 10), Rotated: true}},
		{"tall without rotation", NewSize(10, 30), false, OrientedSize{Size: NewSize(10, 30)}},
		{"wide kept", NewSize(30, 10), true, OrientedSize{Size: NewSize(30, 10)}},
		{"square kept", NewSize(20, 20), true, OrientedSize{Size: NewSize(20, 20)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DimensionsLongest(tt.size, tt.rotate))
		})
	}
}

func TestOrient_FallsBackToOtherSide(t *testing.T) {
	o, ok := orient(NewSize(128, 64), NewSize(64, 128), true)
	assert.True(t, ok)
	assert.Equal(t, OrientedSize{Size: NewSize(64, 128), Rotated: true}, o)

	o, ok = orient(NewSize(64, 128), NewSize(64, 128), true)
	assert.True(t, ok)
	assert.False(t, o.Rotated, "longest side would not fit, original orientation must be kept")

	_, ok = orient(NewSize(128, 64), NewSize(64, 128), false)
	assert.False(t, ok)
}
