package spright

// PackSingle places every sprite onto one slice at its natural
// rectangle position, without rearranging anything. Sprites whose
// placed rectangle would exceed the sheet's maximum dimensions are left
// unplaced (their SliceIndex stays -1) so GetPackingFailedReason can
// classify them afterward.
func PackSingle(sheet *Sheet, sprites []*Sprite, slices *[]*Slice) error {
	maxWidth, maxHeight := GetSliceMaxSize(sheet)

	var placed []*Sprite
	for _, s := range sprites {
		s.Rect.X = s.TrimmedSourceRect.X + sheet.BorderPadding
		s.Rect.Y = s.TrimmedSourceRect.Y + sheet.BorderPadding

		if s.Rect.X1()+sheet.BorderPadding > maxWidth || s.Rect.Y1()+sheet.BorderPadding > maxHeight {
			continue
		}
		placed = append(placed, s)
	}

	if len(placed) > 0 {
		newSlice(sheet, placed, slices)
	}
	return nil
}
