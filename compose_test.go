package spright

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeSlice_PlacesSpriteAtTrimmedRectAndExtrudes(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	dir := t.TempDir()
	red := color.NRGBA{R: 200, A: 255}
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, red)
		}
	}
	require.NoError(SaveImage(dir+"/sprite.png", img))

	cache, err := NewSourceCache(8)
	require.NoError(err)

	sheet := &Sheet{ID: "main"}
	s := NewSprite()
	s.ID = "s"
	s.Sheet = sheet
	s.Source = cache.Get(dir, "sprite.png")
	s.TrimmedSourceRect = Rect{X: 0, Y: 0, W: 4, H: 4}
	s.TrimmedRect = Rect{X: 1, Y: 1, W: 4, H: 4}
	s.Rect = Rect{X: 0, Y: 0, W: 6, H: 6}
	s.Extrude = Extrude{Count: 1, Mode: WrapClamp}
	s.SliceIndex = 0

	slice := &Slice{Sheet: sheet, Index: 0, Sprites: []*Sprite{s}, Width: 10, Height: 10}

	canvas, err := ComposeSlice(slice)
	require.NoError(err)

	assert.Equal(red, canvas.NRGBAAt(1, 1))
	assert.Equal(red, canvas.NRGBAAt(0, 1), "left extrusion should clamp to the sprite's edge color")
	assert.Equal(color.NRGBA{}, canvas.NRGBAAt(9, 9), "outside the sprite's rect stays untouched")
}

func TestComposeSlice_SkipsSpritesNotOnThisSlice(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	sheet := &Sheet{ID: "main"}
	s := NewSprite()
	s.Sheet = sheet
	s.SliceIndex = 1

	slice := &Slice{Sheet: sheet, Index: 0, Sprites: []*Sprite{s}, Width: 4, Height: 4}

	canvas, err := ComposeSlice(slice)
	require.NoError(err)
	assert.Equal(image.Rect(0, 0, 4, 4), canvas.Bounds())
}

func TestApplyOutputAlpha_OpaqueForcesFullAlpha(t *testing.T) {
	assert := assert.New(t)

	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, A: 50})

	ApplyOutputAlpha(img, AlphaOpaque, color.NRGBA{})

	assert.Equal(uint8(255), img.NRGBAAt(0, 0).A)
}

func TestApplyOutputAlpha_ColorkeyFillsTransparentPixels(t *testing.T) {
	assert := assert.New(t)

	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	key := color.NRGBA{R: 255, G: 0, B: 255, A: 255}

	ApplyOutputAlpha(img, AlphaColorkey, key)

	assert.Equal(key, img.NRGBAAt(0, 0))
}

func TestApplyOutputAlpha_PremultiplyScalesRGBByAlpha(t *testing.T) {
	assert := assert.New(t)

	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 128})

	ApplyOutputAlpha(img, AlphaPremultiply, color.NRGBA{})

	got := img.NRGBAAt(0, 0)
	assert.Equal(uint8(200*128/255), got.R)
	assert.Equal(uint8(128), got.A)
}

func TestBleedTransparentColor_FillsNeighboursRGBKeepsAlphaZero(t *testing.T) {
	assert := assert.New(t)

	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	opaque := color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	img.SetNRGBA(0, 0, opaque)

	bleedTransparentColor(img)

	next := img.NRGBAAt(1, 0)
	assert.Equal(opaque.R, next.R)
	assert.Equal(opaque.G, next.G)
	assert.Equal(opaque.B, next.B)
	assert.Equal(uint8(0), next.A)
}
