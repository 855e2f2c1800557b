package spright

import (
	"image"
	"image/color"
	"image/gif"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidFrame(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestGeneratePalette_CapsAt256(t *testing.T) {
	assert := assert.New(t)

	var frames []*image.NRGBA
	for i := 0; i < 4; i++ {
		frames = append(frames, gradientImage(20, 20))
	}

	palette := GeneratePalette(frames, 1000)
	assert.LessOrEqual(len(palette), 256)
}

func TestGeneratePalette_SingleColorCollapses(t *testing.T) {
	assert := assert.New(t)

	frames := []*image.NRGBA{solidFrame(4, 4, color.NRGBA{R: 10, G: 20, B: 30, A: 255})}
	palette := GeneratePalette(frames, 16)
	assert.Len(palette, 1)
}

func TestBuildFrame_UnsaturatedPaletteSkipsDithering(t *testing.T) {
	assert := assert.New(t)

	frame := solidFrame(4, 4, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	palette := GeneratePalette([]*image.NRGBA{frame}, 16)

	out := BuildFrame(frame, palette, 16)
	assert.Equal(image.Rect(0, 0, 4, 4), out.Bounds())
}

func TestWriteGIF_ProducesDecodableAnimation(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	frames := []*image.NRGBA{
		solidFrame(6, 4, color.NRGBA{R: 255, A: 255}),
		solidFrame(6, 4, color.NRGBA{B: 255, A: 255}),
	}
	delays := []float64{0.1, 0.2}

	dst := t.TempDir() + "/anim.gif"
	require.NoError(WriteGIF(dst, frames, delays, nil, 16))

	f, err := os.Open(dst)
	require.NoError(err)
	defer f.Close()

	decoded, err := gif.DecodeAll(f)
	require.NoError(err)
	assert.Len(decoded.Image, 2)
	assert.Equal(10, decoded.Delay[0])
	assert.Equal(20, decoded.Delay[1])
}

func TestWriteGIF_ColorkeyMarksTransparentPaletteEntry(t *testing.T) {
	require := require.New(t)

	key := color.NRGBA{R: 255, A: 255}
	frames := []*image.NRGBA{
		solidFrame(4, 4, key),
		solidFrame(4, 4, color.NRGBA{B: 255, A: 255}),
	}

	dst := t.TempDir() + "/anim.gif"
	require.NoError(WriteGIF(dst, frames, []float64{0.1, 0.1}, &key, 16))

	f, err := os.Open(dst)
	require.NoError(err)
	defer f.Close()

	_, err = gif.DecodeAll(f)
	require.NoError(err)
}
