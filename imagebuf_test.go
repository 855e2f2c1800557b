package spright

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func checkerImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
			} else {
				img.SetNRGBA(x, y, color.NRGBA{B: 255, A: 255})
			}
		}
	}
	return img
}

func TestCloneImage_IndependentStorage(t *testing.T) {
	assert := assert.New(t)

	src := checkerImage(4, 4)
	clone := CloneImage(src)
	assert.Equal(src.Pix, clone.Pix)

	clone.SetNRGBA(0, 0, color.NRGBA{G: 255, A: 255})
	assert.NotEqual(src.NRGBAAt(0, 0), clone.NRGBAAt(0, 0))
}

func TestSubImage(t *testing.T) {
	assert := assert.New(t)

	src := checkerImage(6, 6)
	sub := SubImage(src, Rect{X: 2, Y: 2, W: 3, H: 3})
	assert.Equal(3, sub.Bounds().Dx())
	assert.Equal(3, sub.Bounds().Dy())
	assert.Equal(src.NRGBAAt(2, 2), sub.At(sub.Bounds().Min.X, sub.Bounds().Min.Y))
}

func TestIsIdentical(t *testing.T) {
	assert := assert.New(t)

	a := checkerImage(4, 4)
	b := CloneImage(a)

	assert.True(IsIdentical(a, Rect{0, 0, 4, 4}, b, Rect{0, 0, 4, 4}))

	b.SetNRGBA(1, 1, color.NRGBA{G: 255, A: 255})
	assert.False(IsIdentical(a, Rect{0, 0, 4, 4}, b, Rect{0, 0, 4, 4}))

	assert.False(IsIdentical(a, Rect{0, 0, 4, 4}, b, Rect{0, 0, 2, 2}))
}

func TestReplaceColor(t *testing.T) {
	assert := assert.New(t)

	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})

	ReplaceColor(img, [4]uint8{255, 0, 0, 255}, [4]uint8{0, 255, 0, 255})

	assert.Equal(color.NRGBA{G: 255, A: 255}, img.NRGBAAt(0, 0))
	assert.Equal(color.NRGBA{}, img.NRGBAAt(1, 1))
}
