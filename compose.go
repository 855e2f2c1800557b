package spright

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/esimov/spright/imop"
)

// ComposeSlice renders slice's canvas: every placed, non-dropped sprite's
// trimmed source content is copied to its TrimmedRect (rotated 90° when
// Rotated), then extruded outward by Extrude.Count to fill the gap up to
// Rect, so bilinear sampling at the sheet's tile edges does not bleed
// into a neighbour.
func ComposeSlice(slice *Slice) (*image.NRGBA, error) {
	canvas := image.NewNRGBA(image.Rect(0, 0, slice.Width, slice.Height))

	for _, s := range slice.Sprites {
		if s.Sheet == nil || s.SliceIndex != slice.Index {
			continue
		}

		src, err := s.Source.Image()
		if err != nil {
			return nil, fmt.Errorf("spright: composing sprite %q: %w", s.ID, err)
		}

		content := SubImage(src, s.TrimmedSourceRect)
		tile := CloneImage(content)
		if s.Rotated {
			tile = imgToNRGBA(imaging.Rotate90(tile))
		}

		drawTile(canvas, s.TrimmedRect, tile)
		extrudeTile(canvas, s.Rect, s.TrimmedRect, s.Extrude)
	}

	return canvas, nil
}

// drawTile composites src onto dst at rect's origin (Porter-Duff src-over),
// clipped to dst's bounds, so a sprite's transparent border doesn't stomp
// extruded padding already written by a previously composed neighbour.
func drawTile(dst *image.NRGBA, rect Rect, src *image.NRGBA) {
	imop.Composite(dst, image.Rect(rect.X, rect.Y, rect.X+rect.W, rect.Y+rect.H), src, imop.SrcOver)
}

// extrudeTile replicates the edge pixels of trimmed outward to fill rect,
// the padding Size() allotted beyond trimmed on each side. Mode selects
// clamp (repeat the edge pixel) or mirror (reflect across the edge).
func extrudeTile(canvas *image.NRGBA, rect, trimmed Rect, extrude Extrude) {
	if extrude.Count <= 0 {
		return
	}

	left := trimmed.X - rect.X
	top := trimmed.Y - rect.Y
	right := rect.X1() - trimmed.X1()
	bottom := rect.Y1() - trimmed.Y1()

	b := canvas.Bounds()
	set := func(x, y int, c color.NRGBA) {
		if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
			return
		}
		canvas.SetNRGBA(x, y, c)
	}

	edgeColor := func(ex, ey int, dx, dy int) color.NRGBA {
		if extrude.Mode == WrapMirror {
			ex -= dx
			ey -= dy
		}
		return canvas.NRGBAAt(ex, ey)
	}

	for i := 1; i <= left; i++ {
		for y := trimmed.Y; y < trimmed.Y1(); y++ {
			set(trimmed.X-i, y, edgeColor(trimmed.X, y, -i, 0))
		}
	}
	for i := 1; i <= right; i++ {
		for y := trimmed.Y; y < trimmed.Y1(); y++ {
			set(trimmed.X1()-1+i, y, edgeColor(trimmed.X1()-1, y, i, 0))
		}
	}
	for i := 1; i <= top; i++ {
		for x := rect.X; x < rect.X1(); x++ {
			set(x, trimmed.Y-i, edgeColor(x, trimmed.Y, 0, -i))
		}
	}
	for i := 1; i <= bottom; i++ {
		for x := rect.X; x < rect.X1(); x++ {
			set(x, trimmed.Y1()-1+i, edgeColor(x, trimmed.Y1()-1, 0, i))
		}
	}
}

// ApplyOutputAlpha rewrites img's alpha channel in place per mode,
// against colorkey when mode == AlphaColorkey.
func ApplyOutputAlpha(img *image.NRGBA, mode Alpha, colorkey color.NRGBA) {
	b := img.Bounds()
	switch mode {
	case AlphaKeep:
		return
	case AlphaOpaque:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := img.NRGBAAt(x, y)
				c.A = 255
				img.SetNRGBA(x, y, c)
			}
		}
	case AlphaClear:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := img.NRGBAAt(x, y)
				if c.A == 0 {
					img.SetNRGBA(x, y, color.NRGBA{})
				}
			}
		}
	case AlphaBleed:
		bleedTransparentColor(img)
	case AlphaPremultiply:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := img.NRGBAAt(x, y)
				a := uint16(c.A)
				c.R = uint8(uint16(c.R) * a / 255)
				c.G = uint8(uint16(c.G) * a / 255)
				c.B = uint8(uint16(c.B) * a / 255)
				img.SetNRGBA(x, y, c)
			}
		}
	case AlphaColorkey:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := img.NRGBAAt(x, y)
				if c.A == 0 {
					img.SetNRGBA(x, y, colorkey)
				}
			}
		}
	}
}

// bleedTransparentColor gives every fully-transparent pixel the color of
// its nearest opaque neighbour, so filtering at a sprite's trimmed edge
// does not pick up the canvas's default black.
func bleedTransparentColor(img *image.NRGBA) {
	b := img.Bounds()
	type px struct{ x, y int }
	var queue []px
	visited := make(map[px]bool, b.Dx()*b.Dy())

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.NRGBAAt(x, y).A != 0 {
				queue = append(queue, px{x, y})
				visited[px{x, y}] = true
			}
		}
	}

	dirs := []px{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	for i := 0; i < len(queue); i++ {
		cur := queue[i]
		c := img.NRGBAAt(cur.x, cur.y)
		for _, d := range dirs {
			n := px{cur.x + d.x, cur.y + d.y}
			if n.x < b.Min.X || n.x >= b.Max.X || n.y < b.Min.Y || n.y >= b.Max.Y {
				continue
			}
			if visited[n] {
				continue
			}
			visited[n] = true
			filled := c
			filled.A = 0
			img.SetNRGBA(n.x, n.y, filled)
			queue = append(queue, n)
		}
	}
}
