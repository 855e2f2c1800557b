package spright

import (
	"fmt"
	"image"
)

// trimBounds scans rect of img and returns the tight bounding box of
// pixels considered opaque: alpha above threshold, or (when grayLevels)
// luminance above threshold. An empty result (no opaque pixel found)
// collapses to a zero-sized rect at rect's origin.
func trimBounds(img *image.NRGBA, rect Rect, threshold int, grayLevels bool) Rect {
	opaque := func(x, y int) bool {
		c := img.NRGBAAt(x, y)
		if grayLevels {
			luma := (int(c.R) + int(c.G) + int(c.B)) / 3
			return luma > threshold
		}
		return int(c.A) > threshold
	}

	minX, minY := rect.X1(), rect.Y1()
	maxX, maxY := rect.X, rect.Y
	for y := rect.Y; y < rect.Y1(); y++ {
		for x := rect.X; x < rect.X1(); x++ {
			if !opaque(x, y) {
				continue
			}
			minX = Min(minX, x)
			minY = Min(minY, y)
			maxX = Max(maxX, x+1)
			maxY = Max(maxY, y+1)
		}
	}

	if minX >= maxX || minY >= maxY {
		return Rect{X: rect.X, Y: rect.Y}
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// applyTrimMargin insets r further by margin, clamping width/height at 0.
// TrimConvex reduces to the same bounding-box computation as TrimRect:
// Sprite tracks a rectangle, not a hull polygon, so the two trim modes
// only diverge in a packer that places non-rectangular shapes.
func applyTrimMargin(r Rect, margin Margin) Rect {
	x0, y0 := int(margin.X0), int(margin.Y0)
	x1, y1 := int(margin.X1), int(margin.Y1)
	r.X += x0
	r.Y += y0
	r.W -= x0 + x1
	r.H -= y0 + y1
	r.W = Max(r.W, 0)
	r.H = Max(r.H, 0)
	return r
}

// computeTrimmedSourceRect resolves a sprite's trimmed-content rect
// against its current Source/SourceRect, honoring Trim/TrimThreshold/
// TrimGrayLevels and inset by TrimMargin.
func computeTrimmedSourceRect(s *Sprite) error {
	if s.Trim == TrimNone {
		s.TrimmedSourceRect = s.SourceRect
	} else {
		img, err := s.Source.Image()
		if err != nil {
			return fmt.Errorf("spright: sprite %q: %w", s.ID, err)
		}
		s.TrimmedSourceRect = trimBounds(img, s.SourceRect, s.TrimThreshold, s.TrimGrayLevels)
	}

	if s.TrimMargin != (Margin{}) {
		s.TrimmedSourceRect = applyTrimMargin(s.TrimmedSourceRect, s.TrimMargin)
	}
	return nil
}

// PrepareSpriteSources resolves every sprite's SourceRect and initial
// TrimmedSourceRect from its bound source image, applies any configured
// per-sprite Transforms (which may resize or rotate the content), and —
// when a transform ran — recomputes the trimmed rect against the
// transformed pixels, since trimming against the pre-transform image
// would no longer describe the packed content. Must run before
// RunPrepass. Mirrors spright's prepare-then-transform-then-retrim
// ordering (transforming.cpp's transform_sprites/restore_untransformed_sources
// pair, which keeps the untransformed source aside for exactly this case).
func PrepareSpriteSources(sprites []*Sprite) error {
	for _, s := range sprites {
		if s.Source == nil {
			continue
		}

		rect, err := s.Source.Rect()
		if err != nil {
			return fmt.Errorf("spright: sprite %q: resolving source: %w", s.ID, err)
		}
		s.SourceRect = rect

		if err := computeTrimmedSourceRect(s); err != nil {
			return err
		}

		if len(s.Transforms) == 0 {
			continue
		}
		if err := TransformSprite(s); err != nil {
			return fmt.Errorf("spright: sprite %q: applying transforms: %w", s.ID, err)
		}
		if err := computeTrimmedSourceRect(s); err != nil {
			return err
		}
	}
	return nil
}
