package spright

import "golang.org/x/exp/constraints"

// AnchorX is the horizontal reference point an Anchor resolves against.
type AnchorX int

const (
	AnchorLeft AnchorX = iota
	AnchorCenter
	AnchorRight
)

// AnchorY is the vertical reference point an Anchor resolves against.
type AnchorY int

const (
	AnchorTop AnchorY = iota
	AnchorMiddle
	AnchorBottom
)

// Point is an integer 2D coordinate.
type Point struct {
	X, Y int
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// PointF is a real-valued 2D coordinate, used for pivots and fractional scale factors.
type PointF struct {
	X, Y float64
}

// Size is an integer width/height pair.
type Size struct {
	X, Y int
}

// Sub returns a-b, component-wise.
func (a Size) Sub(b Size) Size {
	return Size{a.X - b.X, a.Y - b.Y}
}

// SizeF is a real-valued width/height pair, used for scale factors.
type SizeF struct {
	X, Y float64
}

// Rect is an axis-aligned integer rectangle in (x, y, w, h) form.
type Rect struct {
	X, Y, W, H int
}

// XY returns the rectangle's origin.
func (r Rect) XY() Point { return Point{r.X, r.Y} }

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size { return Size{r.W, r.H} }

// X1 returns the exclusive right edge.
func (r Rect) X1() int { return r.X + r.W }

// Y1 returns the exclusive bottom edge.
func (r Rect) Y1() int { return r.Y + r.H }

// Margin is an outer expansion of a rectangle, one value per edge.
type Margin struct {
	X0, Y0, X1, Y1 float64
}

// Anchor is an offset combined with a reference point used to resolve
// alignment of a sprite within its allotted size.
type Anchor struct {
	X, Y    int
	AxisX   AnchorX
	AxisY   AnchorY
}

// AnchorF is the real-valued counterpart of Anchor, used for pivots.
type AnchorF struct {
	X, Y    float64
	AxisX   AnchorX
	AxisY   AnchorY
}

// AnchorCoords resolves anchor against size and returns the offset anchor.x/y
// plus the resolved reference point, in integer space.
func AnchorCoords(a Anchor, size Size) Point {
	coords := Point{a.X, a.Y}
	switch a.AxisX {
	case AnchorCenter:
		coords.X += size.X / 2
	case AnchorRight:
		coords.X += size.X
	}
	switch a.AxisY {
	case AnchorMiddle:
		coords.Y += size.Y / 2
	case AnchorBottom:
		coords.Y += size.Y
	}
	return coords
}

// AnchorCoordsF is the real-valued counterpart of AnchorCoords, used to
// resolve pivots against a sprite's source or trimmed-source rectangle.
func AnchorCoordsF(a AnchorF, size SizeF) PointF {
	coords := PointF{a.X, a.Y}
	switch a.AxisX {
	case AnchorCenter:
		coords.X += size.X / 2
	case AnchorRight:
		coords.X += size.X
	}
	switch a.AxisY {
	case AnchorMiddle:
		coords.Y += size.Y / 2
	case AnchorBottom:
		coords.Y += size.Y
	}
	return coords
}

// CeilToMultiple returns n rounded up to the nearest multiple of m.
// When m is 0, n is returned unchanged.
func CeilToMultiple(n, m int) int {
	if m == 0 {
		return n
	}
	if n%m == 0 {
		return n
	}
	return (n/m + 1) * m
}

// CeilToPOT returns the smallest power of two that is >= n. 0 maps to 0.
func CeilToPOT(n int) int {
	if n <= 0 {
		return 0
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// FloorToPOT returns the largest power of two that is <= n. 0 maps to 0.
func FloorToPOT(n int) int {
	if n <= 0 {
		return 0
	}
	p := 1
	for p<<1 <= n {
		p <<= 1
	}
	return p
}

// Min returns the smaller of x and y.
func Min[T constraints.Ordered](x, y T) T {
	if x < y {
		return x
	}
	return y
}

// Max returns the larger of x and y.
func Max[T constraints.Ordered](x, y T) T {
	if x > y {
		return x
	}
	return y
}

// Clamp restricts x to the closed interval [lo, hi].
func Clamp[T constraints.Ordered](x, lo, hi T) T {
	return Min(Max(x, lo), hi)
}
