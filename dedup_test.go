package spright

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDedupSprite(t *testing.T, cache *SourceCache, dir, name string, index int, sheet *Sheet) *Sprite {
	t.Helper()
	img := opaqueSquareImage(8, 8, Rect{W: 8, H: 8})
	require.NoError(t, SaveImage(dir+"/"+name, img))

	s := NewSprite()
	s.ID = name
	s.Index = index
	s.Source = cache.Get(dir, name)
	s.TrimmedSourceRect = Rect{W: 8, H: 8}
	s.Sheet = sheet
	return s
}

func TestPackSliceDeduplicate_OnlyMarksDuplicatesBeforeFinalize(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	dir := t.TempDir()
	cache, err := NewSourceCache(8)
	require.NoError(err)

	sheet := &Sheet{ID: "main", Pack: ModeBinpack, Duplicates: DuplicatesShare}

	a := buildDedupSprite(t, cache, dir, "shared.png", 0, sheet)
	b := buildDedupSprite(t, cache, dir, "shared.png", 1, sheet)

	var slices []*Slice
	require.NoError(PackSliceDeduplicate(sheet, []*Sprite{a, b}, &slices))

	assert.Equal(a.Index, b.DuplicateOfIndex)
	assert.NotNil(b.Sheet)
	require.Len(slices, 1)
	assert.Len(slices[0].Sprites, 1, "only the canonical sprite is dispatched to the pack strategy")

	// Placement is not yet copied: the canonical isn't finalized until
	// after PackSliceDeduplicate returns.
	assert.Equal(Rect{}, b.TrimmedRect)
}

func TestPropagateDuplicatePlacement_ShareCopiesFinalizedCanonical(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	dir := t.TempDir()
	cache, err := NewSourceCache(8)
	require.NoError(err)

	sheet := &Sheet{ID: "main", Pack: ModeBinpack, Duplicates: DuplicatesShare}

	a := buildDedupSprite(t, cache, dir, "shared.png", 0, sheet)
	b := buildDedupSprite(t, cache, dir, "shared.png", 1, sheet)

	var slices []*Slice
	require.NoError(PackSliceDeduplicate(sheet, []*Sprite{a, b}, &slices))

	// Finalize the canonical as Pack would, before propagating.
	UpdateSpriteTrimmedRect(a)
	UpdateSpriteMargin(a)
	UpdateSpritePivotPoint(a)

	PropagateDuplicatePlacement([]*Sprite{a, b})

	assert.NotNil(b.Sheet)
	assert.Equal(a.SliceIndex, b.SliceIndex)
	assert.Equal(a.TrimmedRect, b.TrimmedRect)
	assert.NotEqual(Rect{}, b.TrimmedRect)
	assert.Equal(a.Rect, b.Rect)
}

func TestPropagateDuplicatePlacement_DropClearsDuplicateSheet(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	dir := t.TempDir()
	cache, err := NewSourceCache(8)
	require.NoError(err)

	sheet := &Sheet{ID: "main", Pack: ModeBinpack, Duplicates: DuplicatesDrop}

	a := buildDedupSprite(t, cache, dir, "shared.png", 0, sheet)
	b := buildDedupSprite(t, cache, dir, "shared.png", 1, sheet)

	var slices []*Slice
	require.NoError(PackSliceDeduplicate(sheet, []*Sprite{a, b}, &slices))

	UpdateSpriteTrimmedRect(a)
	PropagateDuplicatePlacement([]*Sprite{a, b})

	assert.Nil(b.Sheet)
	assert.NotNil(a.Sheet)
}

func TestPackSliceDeduplicate_DistinctSpritesStayIndependent(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	dir := t.TempDir()
	cache, err := NewSourceCache(8)
	require.NoError(err)

	sheet := &Sheet{ID: "main", Pack: ModeBinpack, Duplicates: DuplicatesShare}

	a := buildDedupSprite(t, cache, dir, "a.png", 0, sheet)

	other := opaqueSquareImage(8, 8, Rect{X: 1, Y: 1, W: 4, H: 4})
	require.NoError(SaveImage(dir+"/b.png", other))
	b := NewSprite()
	b.ID = "b.png"
	b.Index = 1
	b.Source = cache.Get(dir, "b.png")
	b.TrimmedSourceRect = Rect{W: 8, H: 8}
	b.Sheet = sheet

	var slices []*Slice
	require.NoError(PackSliceDeduplicate(sheet, []*Sprite{a, b}, &slices))

	assert.Equal(-1, a.DuplicateOfIndex)
	assert.Equal(-1, b.DuplicateOfIndex)
}
