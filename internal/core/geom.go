// Package core provides fundamental types and utilities for the arcade platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Vec3 is a position or velocity in simulation space.
// X grows to the right and Y grows downward, both in terminal cells.
// Z is carried for layering and stays zero for the catcher game.
type Vec3 struct {
	X, Y, Z float64
}

// V3 is shorthand for constructing a Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale returns v multiplied by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Box is a float axis-aligned bounding box described by its center and size.
type Box struct {
	Center Vec3
	W, H   float64
}

// NewBox creates a box centered at c with the given width and height.
func NewBox(c Vec3, w, h float64) Box {
	return Box{Center: c, W: w, H: h}
}

// Intersects reports whether two boxes overlap.
// Touching edges do not count: |dx| < sum of half widths and |dy| < sum of half heights.
func (b Box) Intersects(o Box) bool {
	dx := math.Abs(b.Center.X - o.Center.X)
	dy := math.Abs(b.Center.Y - o.Center.Y)
	return dx < (b.W+o.W)/2 && dy < (b.H+o.H)/2
}

// Rect returns the cell rectangle covering this box, for rendering.
func (b Box) Rect() Rect {
	x := int(math.Round(b.Center.X - b.W/2))
	y := int(math.Round(b.Center.Y - b.H/2))
	return NewRect(x, y, max(1, int(math.Round(b.W))), max(1, int(math.Round(b.H))))
}

// Rect represents an integer cell rectangle used for drawing.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts an int to [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts a float64 to [lo, hi]. NaN collapses to lo.
func ClampF(val, lo, hi float64) float64 {
	if math.IsNaN(val) || val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
