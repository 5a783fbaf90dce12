package ui

import "image"

// pt is a helper function to check if a point is within a rectangle.
func pt(x, y int, r image.Rectangle) bool {
	return x >= r.Min.X && x < r.Max.X && y >= r.Min.Y && y < r.Max.Y
}

// Rect is a surface-space rectangle with fractional coordinates. Note rows
// are H/128 px tall, which rarely lands on whole pixels.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x,y) lies in the half-open rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }
