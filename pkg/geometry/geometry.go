// Package geometry holds the pixel-space primitives shared by the court, player and shot packages.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

//Point is a 2D position, in pixels unless stated otherwise
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

//BoundingBox is [x1, y1, x2, y2] in pixels, as produced by the detectors
type BoundingBox [4]float64

//Keypoints is the flat form of court landmarks: x0, y0, x1, y1, ...
type Keypoints []float64

//Len returns the number of (x,y) landmarks
func (k Keypoints) Len() int {
	return len(k) / 2
}

//At returns landmark i
func (k Keypoints) At(i int) Point {
	return Point{X: k[i*2], Y: k[i*2+1]}
}

//Valid reports whether the box is ordered (x1 <= x2, y1 <= y2) and not all zeros
func (b BoundingBox) Valid() bool {
	if b[0] == 0 && b[1] == 0 && b[2] == 0 && b[3] == 0 {
		return false
	}

	return b[0] <= b[2] && b[1] <= b[3]
}

//Distance returns the euclidean distance between p1 and p2
func Distance(p1, p2 Point) float64 {
	return floats.Distance([]float64{p1.X, p1.Y}, []float64{p2.X, p2.Y}, 2)
}

//Center returns the middle of the box truncated to whole pixels
func Center(b BoundingBox) Point {
	return Point{
		X: math.Trunc((b[0] + b[2]) / 2),
		Y: math.Trunc((b[1] + b[3]) / 2),
	}
}

//FootPosition returns the bottom-center of the box truncated to whole pixels, used as a player's position on court
func FootPosition(b BoundingBox) Point {
	return Point{
		X: math.Trunc((b[0] + b[2]) / 2),
		Y: math.Trunc(b[3]),
	}
}

//PixelsToMeters converts a pixel distance to meters, given a reference length known in both. refPixels must be positive
func PixelsToMeters(pixels, refMeters, refPixels float64) float64 {
	if refPixels <= 0 {
		panic("geometry: non-positive pixel reference length")
	}
	return pixels * refMeters / refPixels
}

//MetersToPixels is the inverse of PixelsToMeters, refMeters must be positive
func MetersToPixels(meters, refMeters, refPixels float64) float64 {
	if refMeters <= 0 {
		panic("geometry: non-positive meter reference length")
	}
	return meters * refPixels / refMeters
}

//ClosestKeypoint returns the index of the landmark nearest to p and its distance. The first landmark wins ties.
//Returns -1 for empty keypoints.
func ClosestKeypoint(p Point, keypoints Keypoints) (int, float64) {
	closest, minDistance := -1, math.Inf(1)
	for i := 0; i < keypoints.Len(); i++ {
		if d := Distance(p, keypoints.At(i)); d < minDistance {
			closest, minDistance = i, d
		}
	}

	return closest, minDistance
}
