package spright

// PackBinpack places sprites with a MAXRECTS-style algorithm: a set of
// maximal free rectangles is maintained; each sprite picks the free rect
// giving the best short-side fit (ties broken by best long-side fit,
// then lowest y, then lowest x), trying both orientations when
// sheet.AllowRotate permits rotation. fallbackToShelf switches to the
// faster PackCompact skyline heuristic for very large inputs, per
// spec.md's ">1000 sprites" note — both satisfy the same non-overlap
// invariant.
func PackBinpack(sheet *Sheet, sprites []*Sprite, slices *[]*Slice, fallbackToShelf bool) error {
	if fallbackToShelf {
		return PackCompact(sheet, sprites, slices)
	}

	maxWidth, maxHeight := GetSliceMaxSize(sheet)
	maxWidth -= sheet.BorderPadding * 2
	maxHeight -= sheet.BorderPadding * 2

	free := []Rect{{X: 0, Y: 0, W: maxWidth, H: maxHeight}}

	var placed []*Sprite
	for _, s := range sprites {
		w, h := s.Rect.W+sheet.ShapePadding, s.Rect.H+sheet.ShapePadding

		rect, rotated, ok := bestShortSideFit(free, w, h, sheet.AllowRotate)
		if !ok {
			continue
		}

		s.Rotated = rotated
		placeW, placeH := w, h
		if rotated {
			placeW, placeH = h, w
		}
		s.Rect.X = rect.X + sheet.BorderPadding
		s.Rect.Y = rect.Y + sheet.BorderPadding

		placed = append(placed, s)
		free = splitFreeRects(free, Rect{X: rect.X, Y: rect.Y, W: placeW, H: placeH})
		free = pruneContainedRects(free)
	}

	if len(placed) > 0 {
		newSlice(sheet, placed, slices)
	}
	return nil
}

// bestShortSideFit returns the free rectangle (and whether w/h had to be
// swapped to fit) minimizing the short-side leftover, tie-broken by the
// long-side leftover, then lowest y, then lowest x.
func bestShortSideFit(free []Rect, w, h int, allowRotate bool) (Rect, bool, bool) {
	type candidate struct {
		rect            Rect
		rotated         bool
		shortSide, long int
	}
	var best *candidate

	consider := func(r Rect, fw, fh int, rotated bool) {
		if fw > r.W || fh > r.H {
			return
		}
		leftoverW, leftoverH := r.W-fw, r.H-fh
		short, long := Min(leftoverW, leftoverH), Max(leftoverW, leftoverH)

		c := candidate{rect: r, rotated: rotated, shortSide: short, long: long}
		if best == nil ||
			c.shortSide < best.shortSide ||
			(c.shortSide == best.shortSide && c.long < best.long) ||
			(c.shortSide == best.shortSide && c.long == best.long && r.Y < best.rect.Y) ||
			(c.shortSide == best.shortSide && c.long == best.long && r.Y == best.rect.Y && r.X < best.rect.X) {
			best = &c
		}
	}

	for _, r := range free {
		consider(r, w, h, false)
		if allowRotate {
			consider(r, h, w, true)
		}
	}

	if best == nil {
		return Rect{}, false, false
	}
	return Rect{X: best.rect.X, Y: best.rect.Y, W: best.rect.W, H: best.rect.H}, best.rotated, true
}

// splitFreeRects removes every free rectangle that overlaps used and
// replaces it with the (up to four) maximal sub-rectangles remaining
// around used.
func splitFreeRects(free []Rect, used Rect) []Rect {
	var next []Rect
	for _, r := range free {
		if !rectsOverlap(r, used) {
			next = append(next, r)
			continue
		}

		if used.X > r.X {
			next = append(next, Rect{X: r.X, Y: r.Y, W: used.X - r.X, H: r.H})
		}
		if used.X1() < r.X1() {
			next = append(next, Rect{X: used.X1(), Y: r.Y, W: r.X1() - used.X1(), H: r.H})
		}
		if used.Y > r.Y {
			next = append(next, Rect{X: r.X, Y: r.Y, W: r.W, H: used.Y - r.Y})
		}
		if used.Y1() < r.Y1() {
			next = append(next, Rect{X: r.X, Y: used.Y1(), W: r.W, H: r.Y1() - used.Y1()})
		}
	}
	return next
}

func rectsOverlap(a, b Rect) bool {
	return a.X < b.X1() && b.X < a.X1() && a.Y < b.Y1() && b.Y < a.Y1()
}

func rectContains(a, b Rect) bool {
	return b.X >= a.X && b.Y >= a.Y && b.X1() <= a.X1() && b.Y1() <= a.Y1()
}

// pruneContainedRects drops every free rectangle that is fully contained
// in another, which otherwise accumulate without bound.
func pruneContainedRects(free []Rect) []Rect {
	var next []Rect
	for i, r := range free {
		contained := false
		for j, other := range free {
			if i == j {
				continue
			}
			if rectContains(other, r) && (i > j || !rectContains(r, other)) {
				contained = true
				break
			}
		}
		if !contained {
			next = append(next, r)
		}
	}
	return next
}

