package spright

import "math"

// RunPrepass executes the five-step sprite prepass over the full sprite
// list, in order: initialize size, pivot-aligned groups, common-size
// groups, non-pivot alignment, rect derivation.
func RunPrepass(sprites []*Sprite) {
	for _, s := range sprites {
		InitializeSpriteSize(s)
	}

	applyPivotAlignedGroups(sprites)
	applyCommonSizeGroups(sprites)

	for _, s := range sprites {
		if s.AlignPivot == "" {
			UpdateSpriteAlignment(s)
		}
	}

	for _, s := range sprites {
		UpdateSpriteRect(s)
	}
}

// InitializeSpriteSize sets s.Size from its trimmed content, extrusion
// and divisible-size rounding, floored by MinSize.
func InitializeSpriteSize(s *Sprite) {
	w := CeilToMultiple(s.TrimmedSourceRect.W+2*s.Extrude.Count, s.DivisibleSize.X)
	h := CeilToMultiple(s.TrimmedSourceRect.H+2*s.Extrude.Count, s.DivisibleSize.Y)
	s.Size = Size{
		X: Max(s.MinSize.X, w),
		Y: Max(s.MinSize.Y, h),
	}
}

// UpdateSpriteAlignment absorbs s.Align's anchor offset into s.Size,
// clamping the resulting offsets to non-negative.
func UpdateSpriteAlignment(s *Sprite) {
	margin := s.Size.Sub(s.TrimmedSourceRect.Size())
	coords := AnchorCoords(Anchor{AxisX: s.Align.AxisX, AxisY: s.Align.AxisY}, margin)
	s.Align.X = Max(0, s.Align.X+coords.X)
	s.Align.Y = Max(0, s.Align.Y+coords.Y)

	s.Size.X = Max(s.Size.X, s.TrimmedSourceRect.W+s.Align.X)
	s.Size.Y = Max(s.Size.Y, s.TrimmedSourceRect.H+s.Align.Y)
}

// pivotRect returns the rectangle a sprite's pivot resolves against,
// honoring CropPivot (trimmed content vs full untrimmed source).
func pivotRect(s *Sprite) Rect {
	if s.CropPivot {
		return s.TrimmedSourceRect
	}
	return s.SourceRect
}

func applyPivotAlignedGroups(sprites []*Sprite) {
	groups := map[string][]*Sprite{}
	for _, s := range sprites {
		if s.AlignPivot == "" {
			continue
		}
		r := pivotRect(s)
		size := SizeF{X: float64(r.W), Y: float64(r.H)}
		pivot := AnchorCoordsF(s.Pivot, size)
		s.Pivot.X, s.Pivot.Y = pivot.X, pivot.Y

		UpdateSpriteAlignment(s)
		groups[s.AlignPivot] = append(groups[s.AlignPivot], s)
	}

	for _, group := range groups {
		UpdateAlignedPivot(group)
	}
}

// UpdateAlignedPivot realigns every sprite in group so its pivot
// coincides with the group's component-wise maximum pivot, converting
// the difference into a new top/left-anchored Align offset and growing
// Size to absorb it.
func UpdateAlignedPivot(group []*Sprite) {
	if len(group) == 0 {
		return
	}

	maxPivot := PointF{X: group[0].Pivot.X, Y: group[0].Pivot.Y}
	for _, s := range group[1:] {
		maxPivot.X = Max(maxPivot.X, s.Pivot.X)
		maxPivot.Y = Max(maxPivot.Y, s.Pivot.Y)
	}

	for _, s := range group {
		dx := int(math.Round(maxPivot.X - s.Pivot.X))
		dy := int(math.Round(maxPivot.Y - s.Pivot.Y))

		s.Align = Anchor{X: dx, Y: dy, AxisX: AnchorLeft, AxisY: AnchorTop}
		s.Size.X = Max(s.Size.X, s.TrimmedSourceRect.W+dx)
		s.Size.Y = Max(s.Size.Y, s.TrimmedSourceRect.H+dy)
	}
}

// UpdateCommonSize makes every sprite sharing a non-empty CommonSize key
// adopt the component-wise maximum Size within its group.
func UpdateCommonSize(sprites []*Sprite) {
	groups := map[string][]*Sprite{}
	for _, s := range sprites {
		if s.CommonSize == "" {
			continue
		}
		groups[s.CommonSize] = append(groups[s.CommonSize], s)
	}

	for _, group := range groups {
		max := group[0].Size
		for _, s := range group[1:] {
			max.X = Max(max.X, s.Size.X)
			max.Y = Max(max.Y, s.Size.Y)
		}
		for _, s := range group {
			s.Size = max
		}
	}
}

func applyCommonSizeGroups(sprites []*Sprite) {
	UpdateCommonSize(sprites)
}

// UpdateSpriteRect derives s.Rect from the trimmed source origin and
// the final allocated Size.
func UpdateSpriteRect(s *Sprite) {
	s.Rect = Rect{
		X: s.TrimmedSourceRect.X,
		Y: s.TrimmedSourceRect.Y,
		W: s.Size.X,
		H: s.Size.Y,
	}
}
