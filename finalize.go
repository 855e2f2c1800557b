package spright

// UpdateSpriteTrimmedRect derives s.TrimmedRect from the placed s.Rect,
// adding the alignment offset for every pack strategy except `keep`
// (which already placed sprites at their exact caller-chosen rect).
// Width and height are swapped when the sprite was packed rotated.
func UpdateSpriteTrimmedRect(s *Sprite) {
	s.TrimmedRect.X = s.Rect.X
	s.TrimmedRect.Y = s.Rect.Y
	if s.Sheet != nil && s.Sheet.Pack != ModeKeep {
		s.TrimmedRect.X += s.Align.X
		s.TrimmedRect.Y += s.Align.Y
	}
	s.TrimmedRect.W = s.TrimmedSourceRect.W
	s.TrimmedRect.H = s.TrimmedSourceRect.H
	if s.Rotated {
		s.TrimmedRect.W, s.TrimmedRect.H = s.TrimmedRect.H, s.TrimmedRect.W
	}
}

// UpdateSpriteMargin reconciles s.Margin so the sprite's outer bounds
// either tightly crop to TrimmedRect (Crop) or expand to preserve the
// original SourceRect's extra border relative to TrimmedSourceRect.
// When the sprite was rotated, applies the empirically-discovered
// correction from packing.cpp's update_sprite_margin, preserved
// bit-for-bit.
func UpdateSpriteMargin(s *Sprite) {
	if s.Crop {
		s.Margin.X0 += float64(s.Rect.X - s.TrimmedRect.X)
		s.Margin.Y0 += float64(s.Rect.Y - s.TrimmedRect.Y)
		s.Margin.X1 += float64(s.TrimmedRect.X1() - s.Rect.X1())
		s.Margin.Y1 += float64(s.TrimmedRect.Y1() - s.Rect.Y1())
	} else {
		sourceX := float64(s.SourceRect.X) - float64(s.TrimmedSourceRect.X)
		sourceY := float64(s.SourceRect.Y) - float64(s.TrimmedSourceRect.Y)
		sourceW := float64(s.SourceRect.W)
		sourceH := float64(s.SourceRect.H)

		boundsX := float64(s.Rect.X) + s.Margin.X0 - float64(s.TrimmedRect.X)
		boundsY := float64(s.Rect.Y) + s.Margin.Y0 - float64(s.TrimmedRect.Y)
		boundsW := float64(s.Rect.W) + s.Margin.X0 + s.Margin.X1
		boundsH := float64(s.Rect.H) + s.Margin.Y0 + s.Margin.Y1

		growW := Max(sourceW-boundsW, 0)
		growH := Max(sourceH-boundsH, 0)
		offsetX := Max(Min(boundsX-sourceX, growW), 0)
		offsetY := Max(Min(boundsY-sourceY, growH), 0)

		s.Margin.X0 += offsetX
		s.Margin.Y0 += offsetY
		s.Margin.X1 += growW - offsetX
		s.Margin.Y1 += growH - offsetY
	}

	if s.Margin.X0+s.Margin.X1 <= float64(-s.Rect.W) {
		s.Margin.X0 = -float64(s.Rect.W) / 2
		s.Margin.X1 = s.Margin.X0
	}
	if s.Margin.Y0+s.Margin.Y1 <= float64(-s.Rect.H) {
		s.Margin.Y0 = -float64(s.Rect.H) / 2
		s.Margin.Y1 = s.Margin.Y0
	}

	if s.Rotated {
		margin := s.Size.Sub(s.TrimmedSourceRect.Size())
		s.TrimmedRect.X += -s.Align.X + (margin.Y - s.Align.Y)
		s.TrimmedRect.Y += -s.Align.Y + s.Align.X
	}
}

// UpdateSpritePivotPoint resolves s.Pivot's anchor against the cropped
// (TrimmedRect) or full (Rect) rectangle, translating by Align when
// CropPivot is set.
func UpdateSpritePivotPoint(s *Sprite) {
	r := s.Rect
	if s.CropPivot {
		r = s.TrimmedRect
	}
	size := SizeF{X: float64(r.W), Y: float64(r.H)}
	coords := AnchorCoordsF(s.Pivot, size)
	s.Pivot.X, s.Pivot.Y = coords.X, coords.Y
	if s.CropPivot {
		s.Pivot.X += float64(s.Align.X)
		s.Pivot.Y += float64(s.Align.Y)
	}
}

// UpdateSliceLastSourceWrittenTime sets slice.LastSourceWrittenTime to
// the most recent modification time among the distinct source files
// referenced by the slice's sprites (including their Maps), expressed
// as a Unix timestamp. Grounded on packing.cpp's
// update_last_source_written_times.
func UpdateSliceLastSourceWrittenTime(slice *Slice) {
	seen := map[string]bool{}
	var latest int64

	consider := func(f *ImageFile) {
		if f == nil {
			return
		}
		path := f.fullPath()
		if seen[path] {
			return
		}
		seen[path] = true
		if t := GetLastWriteTime(path).Unix(); t > latest {
			latest = t
		}
	}

	for _, s := range slice.Sprites {
		consider(s.Source)
		for _, m := range s.Maps {
			consider(m)
		}
	}

	slice.LastSourceWrittenTime = latest
}

// RecomputeSliceSize sets slice.Width/Height from the extent of its
// placed sprites, then rounds up to divisibility, power-of-two and
// square constraints, in that order.
func RecomputeSliceSize(slice *Slice) {
	sheet := slice.Sheet

	maxX, maxY := 0, 0
	for _, s := range slice.Sprites {
		w, h := s.Size.X, s.Size.Y
		if s.Rotated {
			w, h = s.Size.Y, s.Size.X
		}
		maxX = Max(maxX, s.Rect.X+w)
		maxY = Max(maxY, s.Rect.Y+h)
	}

	slice.Width = Max(sheet.Width, maxX+sheet.BorderPadding)
	slice.Height = Max(sheet.Height, maxY+sheet.BorderPadding)

	if sheet.DivisibleWidth != 0 {
		slice.Width = CeilToMultiple(slice.Width, sheet.DivisibleWidth)
	}
	if sheet.PowerOfTwo {
		slice.Width = CeilToPOT(slice.Width)
		slice.Height = CeilToPOT(slice.Height)
	}
	if sheet.Square {
		slice.Width = Max(slice.Width, slice.Height)
		slice.Height = slice.Width
	}
}
