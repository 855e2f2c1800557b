// Package imop implements a subset of the Porter-Duff composition
// operations for mixing a sprite tile with the sheet canvas it lands on.
package imop

import (
	"image"
	"image/color"
)

// Op names one of the supported Porter-Duff composition operations.
type Op string

const (
	Copy    Op = "copy"
	SrcOver Op = "src_over"
	SrcAtop Op = "src_atop"
)

// Composite applies op, writing the blended result into dst in place
// over the rectangle rect (in dst's coordinate space). src is read
// starting at its bounds' minimum point. Mirrors caire/imop's Draw
// formula, trimmed to the operations a sprite-sheet compositor needs (no
// debug blend modes).
func Composite(dst *image.NRGBA, rect image.Rectangle, src *image.NRGBA, op Op) {
	sb := src.Bounds().Min
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		sy := y - rect.Min.Y
		for x := rect.Min.X; x < rect.Max.X; x++ {
			sx := x - rect.Min.X
			if !(image.Point{x, y}.In(dst.Bounds())) {
				continue
			}
			dst.SetNRGBA(x, y, blend(src.NRGBAAt(sb.X+sx, sb.Y+sy), dst.NRGBAAt(x, y), op))
		}
	}
}

// blend returns the composition of src over dst under op.
func blend(src, dst color.NRGBA, op Op) color.NRGBA {
	if op == Copy {
		return src
	}

	as := float64(src.A) / 255
	ab := float64(dst.A) / 255

	var rn, gn, bn, an float64
	switch op {
	case SrcAtop:
		rn = as*norm(src.R)*ab + (1-as)*ab*norm(dst.R)
		gn = as*norm(src.G)*ab + (1-as)*ab*norm(dst.G)
		bn = as*norm(src.B)*ab + (1-as)*ab*norm(dst.B)
		an = as*ab + ab*(1-as)
	default: // SrcOver
		rn = as*norm(src.R) + ab*norm(dst.R)*(1-as)
		gn = as*norm(src.G) + ab*norm(dst.G)*(1-as)
		bn = as*norm(src.B) + ab*norm(dst.B)*(1-as)
		an = as + ab*(1-as)
	}

	return color.NRGBA{
		R: denorm(rn), G: denorm(gn), B: denorm(bn), A: denorm(an),
	}
}

func norm(c uint8) float64 { return float64(c) / 255 }

func denorm(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
