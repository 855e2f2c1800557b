package spright

import "math"

func axisD(horizontal bool, x, y int) int {
	if horizontal {
		return x
	}
	return y
}

func axisP(horizontal bool, x, y int) int {
	if horizontal {
		return y
	}
	return x
}

// PackLines implements shelf packing for the `rows` (horizontal = true)
// and `columns` (horizontal = false) pack strategies, grounded on
// pack_lines.cpp's pack_lines algorithm. d is the main placement axis,
// p the perpendicular axis; a shelf ("line") fills along d and wraps
// along p once it overflows maxD.
func PackLines(horizontal bool, sheet *Sheet, sprites []*Sprite, slices *[]*Slice) error {
	maxWidth := sheet.MaxWidth
	if maxWidth == 0 {
		maxWidth = math.MaxInt32
	} else {
		maxWidth -= sheet.BorderPadding * 2
	}
	maxHeight := sheet.MaxHeight
	if maxHeight == 0 {
		maxHeight = math.MaxInt32
	} else {
		maxHeight -= sheet.BorderPadding * 2
	}
	maxD := axisD(horizontal, maxWidth, maxHeight)
	maxP := axisP(horizontal, maxWidth, maxHeight)

	posX, posY := 0, 0
	lineSize := 0
	firstSprite := 0
	i := 0

	for ; i < len(sprites); i++ {
		s := sprites[i]
		sizeX := s.Rect.W + sheet.ShapePadding
		sizeY := s.Rect.H + sheet.ShapePadding

		posD, posP := axisD(horizontal, posX, posY), axisP(horizontal, posX, posY)
		sizeD, sizeP := axisD(horizontal, sizeX, sizeY), axisP(horizontal, sizeX, sizeY)

		if posD+sizeD > maxD {
			posD = 0
			posP += lineSize
			lineSize = 0
		}
		if posP+sizeP > maxP {
			newSlice(sheet, sprites[firstSprite:i], slices)
			firstSprite = i
			posD, posP, lineSize = 0, 0, 0
		}

		if horizontal {
			posX, posY = posD, posP
		} else {
			posX, posY = posP, posD
		}

		if posX+sizeX > maxWidth || posY+sizeY > maxHeight {
			break
		}

		s.Rect.X = posX + sheet.BorderPadding
		s.Rect.Y = posY + sheet.BorderPadding

		posD += sizeD
		if horizontal {
			posX = posD
		} else {
			posY = posD
		}
		lineSize = Max(lineSize, sizeP)
	}

	if i != len(sprites) {
		return errNotAllSpritesPacked
	}

	newSlice(sheet, sprites[firstSprite:i], slices)
	return nil
}
