package starling

import "math"

// Matrix is a 2D affine transform stored as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
//
// A point is mapped as x' = a*x + c*y + tx, y' = b*x + d*y + ty.
type Matrix [6]float64

// IdentityMatrix is the identity affine transform.
var IdentityMatrix = Matrix{1, 0, 0, 1, 0, 0}

// TranslateMatrix returns a matrix that translates by (tx, ty).
func TranslateMatrix(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// ScaleMatrix returns a matrix that scales by (sx, sy).
func ScaleMatrix(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// RotateMatrix returns a matrix that rotates by angle radians.
func RotateMatrix(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return Matrix{cos, sin, -sin, cos, 0, 0}
}

// Concat returns m * child, i.e. child is applied first, then m.
func (m Matrix) Concat(child Matrix) Matrix {
	return Matrix{
		m[0]*child[0] + m[2]*child[1],
		m[1]*child[0] + m[3]*child[1],
		m[0]*child[2] + m[2]*child[3],
		m[1]*child[2] + m[3]*child[3],
		m[0]*child[4] + m[2]*child[5] + m[4],
		m[1]*child[4] + m[3]*child[5] + m[5],
	}
}

// Invert returns the inverse of m, or the identity matrix if m is singular.
func (m Matrix) Invert() Matrix {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return IdentityMatrix
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Matrix{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// TransformPoint applies m to the point (x, y).
func (m Matrix) TransformPoint(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	minX := math.Min(r.X, other.X)
	minY := math.Min(r.Y, other.Y)
	maxX := math.Max(r.X+r.Width, other.X+other.Width)
	maxY := math.Max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// --- Packed colors ---

// ColorWhite is the packed 0xRRGGBB value of opaque white, the untinted
// default for vertex colors.
const ColorWhite uint32 = 0xFFFFFF

// RGB packs 8-bit channels into a 0xRRGGBB value.
func RGB(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// ARGB packs 8-bit channels into a 0xAARRGGBB value.
func ARGB(a, r, g, b uint8) uint32 {
	return uint32(a)<<24 | RGB(r, g, b)
}

// ColorChannels unpacks a 0xAARRGGBB value. For 0xRRGGBB values a is zero.
func ColorChannels(c uint32) (a, r, g, b uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}
