package spright

import "math"

// PackCompact places sprites with a skyline/greedy heuristic: a
// per-column height profile is maintained and each sprite (in input
// order) is placed at the position minimizing (y_top, x_left) among the
// columns it fits in, optionally trying both orientations when
// sheet.AllowRotate is set.
func PackCompact(sheet *Sheet, sprites []*Sprite, slices *[]*Slice) error {
	maxWidth, maxHeight := GetSliceMaxSize(sheet)
	maxWidth -= sheet.BorderPadding * 2
	maxHeight -= sheet.BorderPadding * 2

	skyline := newSkyline(maxWidth)

	var placed []*Sprite
	for _, s := range sprites {
		w, h := s.Rect.W+sheet.ShapePadding, s.Rect.H+sheet.ShapePadding

		x, y, rotated, ok := skyline.bestFit(w, h, maxHeight, sheet.AllowRotate)
		if !ok {
			continue
		}

		s.Rotated = rotated
		placeW, placeH := w, h
		if rotated {
			placeW, placeH = h, w
		}
		s.Rect.X = x + sheet.BorderPadding
		s.Rect.Y = y + sheet.BorderPadding
		skyline.addSkylineLevel(x, y+placeH, placeW)

		placed = append(placed, s)
	}

	if len(placed) > 0 {
		newSlice(sheet, placed, slices)
	}
	return nil
}

// skylineSegment is one run of constant height in a skyline profile.
type skylineSegment struct {
	x, width, height int
}

type skyline struct {
	segments []skylineSegment
	maxWidth int
}

func newSkyline(maxWidth int) *skyline {
	return &skyline{segments: []skylineSegment{{x: 0, width: maxWidth, height: 0}}, maxWidth: maxWidth}
}

// heightAt returns the highest y reached by any segment under [x, x+w).
func (sl *skyline) heightAt(x, w int) int {
	height := 0
	for _, seg := range sl.segments {
		if seg.x+seg.width <= x || seg.x >= x+w {
			continue
		}
		height = Max(height, seg.height)
	}
	return height
}

// bestFit scans every candidate x position (and, if allowRotate, both
// orientations) and returns the one minimizing (y, x).
func (sl *skyline) bestFit(w, h, maxHeight int, allowRotate bool) (x, y int, rotated bool, ok bool) {
	bestY := math.MaxInt32
	bestX := math.MaxInt32
	found := false

	try := func(w, h int, rot bool) {
		if w > sl.maxWidth {
			return
		}
		for cx := 0; cx+w <= sl.maxWidth; cx++ {
			cy := sl.heightAt(cx, w)
			if cy+h > maxHeight {
				continue
			}
			if cy < bestY || (cy == bestY && cx < bestX) {
				bestY, bestX, rotated, found = cy, cx, rot, true
			}
		}
	}

	try(w, h, false)
	if allowRotate {
		try(h, w, true)
	}
	return bestX, bestY, rotated, found
}

// addSkylineLevel inserts a new segment of height y covering [x, x+w),
// merging it into the existing profile.
func (sl *skyline) addSkylineLevel(x, y, w int) {
	var next []skylineSegment
	newSeg := skylineSegment{x: x, width: w, height: y}
	inserted := false

	for _, seg := range sl.segments {
		segEnd := seg.x + seg.width
		newEnd := newSeg.x + newSeg.width

		if segEnd <= newSeg.x || seg.x >= newEnd {
			next = append(next, seg)
			continue
		}
		if seg.x < newSeg.x {
			next = append(next, skylineSegment{x: seg.x, width: newSeg.x - seg.x, height: seg.height})
		}
		if !inserted {
			next = append(next, newSeg)
			inserted = true
		}
		if segEnd > newEnd {
			next = append(next, skylineSegment{x: newEnd, width: segEnd - newEnd, height: seg.height})
		}
	}
	if !inserted {
		next = append(next, newSeg)
	}

	sl.segments = mergeSkylineSegments(next)
}

func mergeSkylineSegments(segs []skylineSegment) []skylineSegment {
	if len(segs) == 0 {
		return segs
	}
	// sort by x (segments are produced roughly in order already; a small
	// insertion sort keeps this simple and allocation-free for the
	// typical few-dozen-segment profile).
	for i := 1; i < len(segs); i++ {
		for j := i; j > 0 && segs[j].x < segs[j-1].x; j-- {
			segs[j], segs[j-1] = segs[j-1], segs[j]
		}
	}

	merged := segs[:1]
	for _, seg := range segs[1:] {
		last := &merged[len(merged)-1]
		if last.height == seg.height && last.x+last.width == seg.x {
			last.width += seg.width
			continue
		}
		merged = append(merged, seg)
	}
	return merged
}
