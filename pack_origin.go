package spright

// PackOrigin places every sprite at its own SourceRect origin. When
// bySource is true (the `layers` strategy) sprites are additionally
// grouped by source image, one slice per distinct source, each sized to
// that source's extents; otherwise (the `origin` strategy) every sprite
// shares a single slice sized to the extents of the whole group.
func PackOrigin(bySource bool, sheet *Sheet, sprites []*Sprite, slices *[]*Slice) error {
	if !bySource {
		for _, s := range sprites {
			s.Rect.X = s.SourceRect.X
			s.Rect.Y = s.SourceRect.Y
		}
		newSlice(sheet, sprites, slices)
		return nil
	}

	groups := map[*ImageFile][]*Sprite{}
	var order []*ImageFile
	for _, s := range sprites {
		if _, ok := groups[s.Source]; !ok {
			order = append(order, s.Source)
		}
		groups[s.Source] = append(groups[s.Source], s)
		s.Rect.X = s.SourceRect.X
		s.Rect.Y = s.SourceRect.Y
	}

	for _, source := range order {
		newSlice(sheet, groups[source], slices)
	}
	return nil
}
