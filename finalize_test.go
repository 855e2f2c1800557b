package spright

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateSpriteTrimmedRect_AppliesAlignOffset(t *testing.T) {
	assert := assert.New(t)

	s := NewSprite()
	s.Sheet = &Sheet{Pack: ModeBinpack}
	s.Rect = Rect{X: 10, Y: 20, W: 8, H: 8}
	s.Align = Anchor{X: 1, Y: 2}
	s.TrimmedSourceRect = Rect{W: 6, H: 4}

	UpdateSpriteTrimmedRect(s)

	assert.Equal(Rect{X: 11, Y: 22, W: 6, H: 4}, s.TrimmedRect)
}

func TestUpdateSpriteTrimmedRect_KeepModeSkipsAlignOffset(t *testing.T) {
	assert := assert.New(t)

	s := NewSprite()
	s.Sheet = &Sheet{Pack: ModeKeep}
	s.Rect = Rect{X: 10, Y: 20, W: 8, H: 8}
	s.Align = Anchor{X: 1, Y: 2}
	s.TrimmedSourceRect = Rect{W: 6, H: 4}

	UpdateSpriteTrimmedRect(s)

	assert.Equal(Rect{X: 10, Y: 20, W: 6, H: 4}, s.TrimmedRect)
}

func TestUpdateSpriteMargin_CropTightensToTrimmedRect(t *testing.T) {
	assert := assert.New(t)

	s := NewSprite()
	s.Crop = true
	s.Rect = Rect{X: 0, Y: 0, W: 10, H: 10}
	s.TrimmedRect = Rect{X: 2, Y: 1, W: 6, H: 8}

	UpdateSpriteMargin(s)

	assert.Equal(-2.0, s.Margin.X0)
	assert.Equal(-1.0, s.Margin.Y0)
	assert.Equal(float64(s.TrimmedRect.X1()-s.Rect.X1()), s.Margin.X1)
	assert.Equal(float64(s.TrimmedRect.Y1()-s.Rect.Y1()), s.Margin.Y1)
}

func TestUpdateSpriteMargin_NonCropGrowsTowardSourceBorder(t *testing.T) {
	assert := assert.New(t)

	s := NewSprite()
	s.Crop = false
	s.SourceRect = Rect{X: 0, Y: 0, W: 16, H: 16}
	s.TrimmedSourceRect = Rect{X: 2, Y: 2, W: 8, H: 8}
	s.Rect = Rect{X: 0, Y: 0, W: 8, H: 8}
	s.TrimmedRect = Rect{X: 0, Y: 0, W: 8, H: 8}

	UpdateSpriteMargin(s)

	assert.GreaterOrEqual(s.Margin.X0, 0.0)
	assert.GreaterOrEqual(s.Margin.Y0, 0.0)
}

func TestUpdateSpritePivotPoint_CropPivotTranslatesByAlign(t *testing.T) {
	assert := assert.New(t)

	s := NewSprite()
	s.CropPivot = true
	s.Rect = Rect{X: 0, Y: 0, W: 20, H: 20}
	s.TrimmedRect = Rect{X: 0, Y: 0, W: 10, H: 10}
	s.Align = Anchor{X: 3, Y: 4}
	s.Pivot = AnchorF{AxisX: AnchorCenter, AxisY: AnchorMiddle}

	UpdateSpritePivotPoint(s)

	assert.Equal(5.0+3.0, s.Pivot.X)
	assert.Equal(5.0+4.0, s.Pivot.Y)
}

func TestUpdateSpritePivotPoint_NoCropPivotUsesFullRect(t *testing.T) {
	assert := assert.New(t)

	s := NewSprite()
	s.CropPivot = false
	s.Rect = Rect{X: 0, Y: 0, W: 20, H: 10}
	s.Pivot = AnchorF{AxisX: AnchorLeft, AxisY: AnchorTop}

	UpdateSpritePivotPoint(s)

	assert.Equal(0.0, s.Pivot.X)
	assert.Equal(0.0, s.Pivot.Y)
}

func TestUpdateSliceLastSourceWrittenTime_TakesMostRecentDistinctSource(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	dir := t.TempDir()
	cache, err := NewSourceCache(8)
	require.NoError(err)

	older := dir + "/older.png"
	newer := dir + "/newer.png"
	require.NoError(SaveImage(older, opaqueSquareImage(4, 4, Rect{W: 4, H: 4})))
	require.NoError(SaveImage(newer, opaqueSquareImage(4, 4, Rect{W: 4, H: 4})))

	oldTime := time.Now().Add(-time.Hour).Truncate(time.Second)
	newTime := time.Now().Truncate(time.Second)
	require.NoError(os.Chtimes(older, oldTime, oldTime))
	require.NoError(os.Chtimes(newer, newTime, newTime))

	a := NewSprite()
	a.Source = cache.Get(dir, "older.png")
	b := NewSprite()
	b.Source = cache.Get(dir, "newer.png")
	// A duplicate reference to the same file as a must not shift the
	// result: only distinct paths are considered.
	c := NewSprite()
	c.Source = cache.Get(dir, "older.png")

	slice := &Slice{Sprites: []*Sprite{a, b, c}}
	UpdateSliceLastSourceWrittenTime(slice)

	assert.Equal(newTime.Unix(), slice.LastSourceWrittenTime)
}

func TestRecomputeSliceSize_GrowsToFitPlacedSprites(t *testing.T) {
	assert := assert.New(t)

	sheet := &Sheet{BorderPadding: 2}
	slice := &Slice{Sheet: sheet}

	s := NewSprite()
	s.Rect = Rect{X: 4, Y: 6}
	s.Size = Size{X: 10, Y: 5}
	slice.Sprites = []*Sprite{s}

	RecomputeSliceSize(slice)

	assert.Equal(4+10+2, slice.Width)
	assert.Equal(6+5+2, slice.Height)
}

func TestRecomputeSliceSize_RotatedSpriteSwapsAxes(t *testing.T) {
	assert := assert.New(t)

	sheet := &Sheet{}
	slice := &Slice{Sheet: sheet}

	s := NewSprite()
	s.Rect = Rect{X: 0, Y: 0}
	s.Size = Size{X: 10, Y: 4}
	s.Rotated = true
	slice.Sprites = []*Sprite{s}

	RecomputeSliceSize(slice)

	assert.Equal(4, slice.Width)
	assert.Equal(10, slice.Height)
}

func TestRecomputeSliceSize_PowerOfTwoAndSquare(t *testing.T) {
	assert := assert.New(t)

	sheet := &Sheet{PowerOfTwo: true, Square: true}
	slice := &Slice{Sheet: sheet}

	s := NewSprite()
	s.Rect = Rect{X: 0, Y: 0}
	s.Size = Size{X: 5, Y: 20}
	slice.Sprites = []*Sprite{s}

	RecomputeSliceSize(slice)

	assert.Equal(slice.Width, slice.Height)
	assert.Equal(32, slice.Width)
}
