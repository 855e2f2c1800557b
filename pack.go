package spright

import (
	"math"
	"sort"
)

// Pack runs the full pipeline over sprites: source/trim resolution,
// prepass, grouping by sheet, dispatch to the sheet's pack strategy,
// dedup, slice/sprite finalization, and per-slice source-mtime folding.
// Sprites whose Sheet is nil still go through source resolution and the
// prepass, but are excluded from every slice. Packing failures are
// non-fatal: they are recorded on diag (if non-nil) and the affected
// sprite keeps SliceIndex == -1.
func Pack(sprites []*Sprite, diag *Diagnostics) ([]*Slice, error) {
	if err := PrepareSpriteSources(sprites); err != nil {
		return nil, err
	}

	RunPrepass(sprites)

	slices, err := PackSpritesBySheet(sprites)
	if err != nil {
		return nil, err
	}

	for _, s := range sprites {
		if s.Sheet == nil || s.DuplicateOfIndex >= 0 {
			continue
		}
		UpdateSpriteTrimmedRect(s)
		UpdateSpriteMargin(s)
		UpdateSpritePivotPoint(s)
	}

	// Duplicates are finalized only once their canonical sprite's
	// placement above is resolved, never before.
	PropagateDuplicatePlacement(sprites)

	for i, slice := range slices {
		RecomputeSliceSize(slice)
		slice.Index = i
	}

	if err := ForEachParallel(slices, func(slice **Slice) error {
		UpdateSliceLastSourceWrittenTime(*slice)
		return nil
	}); err != nil {
		return nil, err
	}

	if diag != nil {
		for _, s := range sprites {
			if s.Sheet != nil && s.SliceIndex < 0 {
				diag.Warnf(s.WarningLine, "packing sprite %q failed: %s",
					s.ID, GetPackingFailedReason(s, len(slices)))
			}
		}
	}

	return slices, nil
}

// PackSpritesBySheet stably sorts sprites with a non-nil Sheet by
// (Sheet.Index, Sprite.Index), splits them into consecutive per-sheet
// runs, and dispatches each run to its sheet's pack strategy (through
// deduplication first, unless Duplicates == keep).
func PackSpritesBySheet(sprites []*Sprite) ([]*Slice, error) {
	var grouped []*Sprite
	for _, s := range sprites {
		if s.Sheet != nil {
			grouped = append(grouped, s)
		}
	}
	if len(grouped) == 0 {
		return nil, nil
	}

	sort.SliceStable(grouped, func(i, j int) bool {
		a, b := grouped[i], grouped[j]
		if a.Sheet.Index != b.Sheet.Index {
			return a.Sheet.Index < b.Sheet.Index
		}
		return a.Index < b.Index
	})

	var slices []*Slice
	begin := 0
	for begin < len(grouped) {
		end := begin + 1
		for end < len(grouped) && grouped[end].Sheet == grouped[begin].Sheet {
			end++
		}

		sheet := grouped[begin].Sheet
		run := grouped[begin:end]

		var err error
		if sheet.Duplicates != DuplicatesKeep {
			err = PackSliceDeduplicate(sheet, run, &slices)
		} else {
			err = dispatchPack(sheet, run, &slices)
		}
		if err != nil {
			return nil, err
		}

		begin = end
	}
	return slices, nil
}

// dispatchPack routes sprites to the pack strategy named by sheet.Pack.
func dispatchPack(sheet *Sheet, sprites []*Sprite, slices *[]*Slice) error {
	switch sheet.Pack {
	case ModeBinpack:
		return PackBinpack(sheet, sprites, slices, len(sprites) > 1000)
	case ModeCompact:
		return PackCompact(sheet, sprites, slices)
	case ModeSingle:
		return PackSingle(sheet, sprites, slices)
	case ModeKeep:
		return PackKeep(sheet, sprites, slices)
	case ModeRows:
		return PackLines(true, sheet, sprites, slices)
	case ModeColumns:
		return PackLines(false, sheet, sprites, slices)
	case ModeOrigin:
		return PackOrigin(false, sheet, sprites, slices)
	case ModeLayers:
		return PackOrigin(true, sheet, sprites, slices)
	default:
		return PackLines(true, sheet, sprites, slices)
	}
}

// GetSliceMaxSize returns a sheet's effective maximum slice dimensions,
// combining Width/MaxWidth (resp. Height/MaxHeight) with power-of-two
// rounding.
func GetSliceMaxSize(sheet *Sheet) (int, int) {
	return getMaxSize(sheet.Width, sheet.MaxWidth, sheet.PowerOfTwo),
		getMaxSize(sheet.Height, sheet.MaxHeight, sheet.PowerOfTwo)
}

func getMaxSize(size, maxSize int, powerOfTwo bool) int {
	if powerOfTwo && size != 0 {
		size = CeilToPOT(size)
	}
	if powerOfTwo && maxSize != 0 {
		maxSize = FloorToPOT(maxSize)
	}
	if size > 0 && maxSize > 0 {
		return Min(size, maxSize)
	}
	if size > 0 {
		return size
	}
	if maxSize > 0 {
		return maxSize
	}
	return math.MaxInt32
}

// GetMaxSliceCount returns the maximum number of slices a sheet may
// produce: unbounded unless pack == single, which always yields exactly
// one slice (by construction, so packing failures that would otherwise
// need a second slice classify as "does not fit on single slice").
func GetMaxSliceCount(sheet *Sheet) int {
	if sheet.Pack == ModeSingle {
		return 1
	}
	return math.MaxInt32
}

// GetPackingFailedReason classifies why sprite could not be placed.
func GetPackingFailedReason(sprite *Sprite, sliceCount int) string {
	sheet := sprite.Sheet
	maxWidth, maxHeight := GetSliceMaxSize(sheet)

	if sprite.Rect.W+sheet.BorderPadding > maxWidth {
		return "max-width exceeded"
	}
	if sprite.Rect.H+sheet.BorderPadding > maxHeight {
		return "max-height exceeded"
	}
	if sliceCount == GetMaxSliceCount(sheet) {
		if sliceCount == 1 {
			return "does not fit on single slice"
		}
		return "limited slice count exceeded"
	}
	return "unknown reason"
}

// newSlice appends a freshly-sized slice containing sprites to *slices
// and assigns SliceIndex to each, returning the slice.
func newSlice(sheet *Sheet, sprites []*Sprite, slices *[]*Slice) *Slice {
	index := len(*slices)
	slice := &Slice{Sheet: sheet, Index: index, Sprites: sprites}
	for _, s := range sprites {
		s.SliceIndex = index
	}
	*slices = append(*slices, slice)
	return slice
}
