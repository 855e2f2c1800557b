package spright

import "sort"

// PackSliceDeduplicate scans sprites back-to-front for pixel-identical
// trimmed rectangles, marking every later duplicate's DuplicateOfIndex,
// then packs only the unique survivors (in original order). Placement
// is not yet propagated to duplicates here: the canonical sprites are
// not finalized until after every sheet has been packed, so copying
// TrimmedRect/Rect at this point would copy the zero value. Call
// PropagateDuplicatePlacement once finalize has run over the canonical
// sprites. Grounded on packing.cpp's pack_slice_deduplicate.
func PackSliceDeduplicate(sheet *Sheet, sprites []*Sprite, slices *[]*Slice) error {
	unique := append([]*Sprite(nil), sprites...)

	for i := len(sprites) - 1; i >= 0; i-- {
		for j := 0; j < i; j++ {
			same, err := spritesIdentical(sprites[i], sprites[j])
			if err != nil {
				return err
			}
			if same {
				sprites[i].DuplicateOfIndex = sprites[j].Index
				unique[i], unique[len(unique)-1] = unique[len(unique)-1], unique[i]
				unique = unique[:len(unique)-1]
				break
			}
		}
	}

	sort.Slice(unique, func(i, j int) bool { return unique[i].Index < unique[j].Index })

	return dispatchPack(sheet, unique, slices)
}

// PropagateDuplicatePlacement resolves, for every sprite marked as a
// duplicate by PackSliceDeduplicate, its sheet's Duplicates policy:
// `share` copies SliceIndex/Rect/TrimmedRect/Rotated/Margin/Pivot from
// the now-finalized canonical sprite; `drop` clears the duplicate's
// Sheet so it is never emitted. Must run after the finalize pass over
// every non-duplicate sprite, so the canonical placement being copied
// is already resolved.
func PropagateDuplicatePlacement(sprites []*Sprite) {
	byIndex := make(map[int]*Sprite, len(sprites))
	for _, s := range sprites {
		byIndex[s.Index] = s
	}

	for _, s := range sprites {
		if s.DuplicateOfIndex < 0 {
			continue
		}
		if s.Sheet != nil && s.Sheet.Duplicates == DuplicatesDrop {
			s.Sheet = nil
			continue
		}
		canonical := byIndex[s.DuplicateOfIndex]
		s.SliceIndex = canonical.SliceIndex
		s.Rect = canonical.Rect
		s.TrimmedRect = canonical.TrimmedRect
		s.Rotated = canonical.Rotated
		s.Margin = canonical.Margin
		s.Pivot = canonical.Pivot
	}
}

func spritesIdentical(a, b *Sprite) (bool, error) {
	imgA, err := a.Source.Image()
	if err != nil {
		return false, err
	}
	imgB, err := b.Source.Image()
	if err != nil {
		return false, err
	}
	return IsIdentical(imgA, a.TrimmedSourceRect, imgB, b.TrimmedSourceRect), nil
}
