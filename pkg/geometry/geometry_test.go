package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		p1   Point
		p2   Point
		want float64
	}{
		{"same point", Point{3, 4}, Point{3, 4}, 0},
		{"3-4-5", Point{0, 0}, Point{3, 4}, 5},
		{"negative coords", Point{-1, -1}, Point{2, 3}, 5},
		{"diagonal", Point{5, 5}, Point{0, 0}, math.Sqrt(50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Distance(tt.p1, tt.p2), 1e-12)
		})
	}
}

func TestCenterTruncates(t *testing.T) {
	assert.Equal(t, Point{X: 5, Y: 5}, Center(BoundingBox{0, 0, 10, 10}))
	assert.Equal(t, Point{X: 5, Y: 7}, Center(BoundingBox{0, 0, 11, 15}))
	assert.Equal(t, Point{X: 150, Y: 300}, Center(BoundingBox{100.4, 200.2, 200.8, 400.9}))
}

func TestFootPosition(t *testing.T) {
	assert.Equal(t, Point{X: 15, Y: 40}, FootPosition(BoundingBox{10, 20, 20, 40.7}))
}

func TestBoundingBoxValid(t *testing.T) {
	assert.True(t, BoundingBox{1, 2, 3, 4}.Valid())
	assert.False(t, BoundingBox{}.Valid())
	assert.False(t, BoundingBox{5, 2, 3, 4}.Valid())
	assert.False(t, BoundingBox{1, 5, 3, 4}.Valid())
}

func TestPixelsToMeters(t *testing.T) {
	assert.InDelta(t, 10.97, PixelsToMeters(210, 10.97, 210), 1e-12)
	assert.InDelta(t, 5.485, PixelsToMeters(105, 10.97, 210), 1e-12)
	assert.Equal(t, 0.0, PixelsToMeters(0, 10.97, 210))
}

func TestUnitConversionRoundTrip(t *testing.T) {
	refs := []struct{ meters, pixels float64 }{
		{10.97, 210},
		{23.76, 1234.5},
		{0.5, 3},
		{1, 1},
	}
	distances := []float64{0, 1, 17.3, 250, 1e4}

	for _, r := range refs {
		for _, d := range distances {
			got := MetersToPixels(PixelsToMeters(d, r.meters, r.pixels), r.meters, r.pixels)
			assert.InDelta(t, d, got, 1e-9, "ref %v/%v distance %v", r.meters, r.pixels, d)
		}
	}
}

func TestConversionPanicsOnZeroReference(t *testing.T) {
	assert.Panics(t, func() { PixelsToMeters(1, 10.97, 0) })
	assert.Panics(t, func() { MetersToPixels(1, 0, 210) })
}

func TestClosestKeypoint(t *testing.T) {
	kps := Keypoints{0, 0, 100, 0, 0, 200, 100, 200}

	idx, d := ClosestKeypoint(Point{5, 5}, kps)
	assert.Equal(t, 0, idx)
	assert.InDelta(t, 7.0710678, d, 1e-6)

	idx, _ = ClosestKeypoint(Point{90, 190}, kps)
	assert.Equal(t, 3, idx)

	//equidistant from 0 and 1: first one wins
	idx, _ = ClosestKeypoint(Point{50, 0}, kps)
	assert.Equal(t, 0, idx)

	idx, d = ClosestKeypoint(Point{1, 1}, nil)
	assert.Equal(t, -1, idx)
	assert.True(t, math.IsInf(d, 1))
}

func TestKeypointsAccessors(t *testing.T) {
	kps := Keypoints{1, 2, 3, 4}
	assert.Equal(t, 2, kps.Len())
	assert.Equal(t, Point{3, 4}, kps.At(1))
}
