package spright

import "image"

// imgToNRGBA converts any image.Image to *image.NRGBA with min-point at (0, 0).
// Adapted from the source image normalization the teacher performs before
// running any pixel-level algorithm on a decoded image.
func imgToNRGBA(img image.Image) *image.NRGBA {
	if dst, ok := img.(*image.NRGBA); ok && dst.Bounds().Min == (image.Point{}) {
		return dst
	}

	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dst.Set(x, y, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

// CloneImage returns an owned copy of img.
func CloneImage(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		copy(dst.Pix[dst.PixOffset(b.Min.X, y):], img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)])
	}
	return dst
}

// SubImage returns a view of img restricted to rect, relative to img's
// origin. The returned image shares pixel storage with img.
func SubImage(img *image.NRGBA, rect Rect) *image.NRGBA {
	r := image.Rect(rect.X, rect.Y, rect.X1(), rect.Y1()).Add(img.Bounds().Min)
	return img.SubImage(r).(*image.NRGBA)
}

// IsIdentical reports whether rectA of imgA and rectB of imgB have equal
// dimensions and byte-identical RGBA content.
func IsIdentical(imgA *image.NRGBA, rectA Rect, imgB *image.NRGBA, rectB Rect) bool {
	if rectA.W != rectB.W || rectA.H != rectB.H {
		return false
	}
	for y := 0; y < rectA.H; y++ {
		for x := 0; x < rectA.W; x++ {
			if imgA.NRGBAAt(rectA.X+x, rectA.Y+y) != imgB.NRGBAAt(rectB.X+x, rectB.Y+y) {
				return false
			}
		}
	}
	return true
}

// ReplaceColor replaces every pixel equal to from with to, in place.
func ReplaceColor(img *image.NRGBA, from, to [4]uint8) {
	for y := img.Bounds().Min.Y; y < img.Bounds().Max.Y; y++ {
		for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
			c := img.NRGBAAt(x, y)
			if c.R == from[0] && c.G == from[1] && c.B == from[2] && c.A == from[3] {
				img.SetNRGBA(x, y, rgba8(to))
			}
		}
	}
}
