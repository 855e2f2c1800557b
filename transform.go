package spright

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// ScaleFilter selects the resampling kernel used by scale/resize steps.
type ScaleFilter int

const (
	FilterBox ScaleFilter = iota
	FilterLinear
	FilterLanczos
)

func (f ScaleFilter) resampleFilter() imaging.ResampleFilter {
	switch f {
	case FilterLinear:
		return imaging.Linear
	case FilterLanczos:
		return imaging.Lanczos
	default:
		return imaging.Box
	}
}

// RotateMethod selects the background-fill strategy used by a rotate step.
type RotateMethod int

const (
	RotateColorkey RotateMethod = iota
)

// TransformStep is one step of a sprite or output transform pipeline. It
// is a closed sum type — ScaleStep, ResizeStep and RotateStep are its
// only members — dispatched with a type switch instead of an interface
// method, per the "prefer closed enums over virtual dispatch" guidance.
type TransformStep interface {
	transformStep()
}

// ScaleStep multiplies both image axes by Scale.
type ScaleStep struct {
	Scale  SizeF
	Filter ScaleFilter
}

// ResizeStep resizes to an absolute target size. A zero axis adopts the
// scale factor of the other axis (imaging.Resize's own "0 means
// proportional" rule implements this directly).
type ResizeStep struct {
	Size   SizeF
	Filter ScaleFilter
}

// RotateStep rotates by Angle degrees, filling the exposed background
// with the source's guessed colorkey.
type RotateStep struct {
	Angle  float64
	Method RotateMethod
}

func (ScaleStep) transformStep()  {}
func (ResizeStep) transformStep() {}
func (RotateStep) transformStep() {}

// applyStep runs one transform step over img, consulting source (the
// original, untransformed image) to guess a rotation background color.
func applyStep(img image.Image, step TransformStep, source image.Image) image.Image {
	switch s := step.(type) {
	case ScaleStep:
		b := img.Bounds()
		w := int(math.Round(float64(b.Dx()) * s.Scale.X))
		h := int(math.Round(float64(b.Dy()) * s.Scale.Y))
		return imaging.Resize(img, w, h, s.Filter.resampleFilter())
	case ResizeStep:
		return imaging.Resize(img, int(math.Round(s.Size.X)), int(math.Round(s.Size.Y)), s.Filter.resampleFilter())
	case RotateStep:
		bg := GuessColorkey(imgToNRGBA(source))
		return imaging.Rotate(img, s.Angle, bg)
	default:
		return img
	}
}

// ApplyTransforms threads img through steps in linear-light space,
// converting to linear before the first step and back to sRGB after the
// last — mirroring transform_image's convert_to_linear/convert_to_srgb
// sandwich.
func ApplyTransforms(img *image.NRGBA, steps []TransformStep, source *image.NRGBA) *image.NRGBA {
	if len(steps) == 0 {
		return img
	}

	linear := ToLinear(img)
	var cur image.Image = linear
	for _, step := range steps {
		cur = applyStep(cur, step, source)
	}
	return ToSRGB(imgToNRGBA64(cur))
}

// imgToNRGBA64 normalizes any image.Image produced by an intermediate
// transform step back to *image.NRGBA64 so ToSRGB can operate on it.
func imgToNRGBA64(img image.Image) *image.NRGBA64 {
	if dst, ok := img.(*image.NRGBA64); ok {
		return dst
	}
	b := img.Bounds()
	dst := image.NewNRGBA64(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dst.Set(x, y, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

// TransformSprite swaps sprite.Source for its transformed image, keeping
// the untransformed source aside so trimming can be redone against it if
// needed. Mirrors transform_sprites.
func TransformSprite(s *Sprite) error {
	if len(s.Transforms) == 0 {
		return nil
	}

	s.UntransformedSource = s.Source
	s.UntransformedSourceRect = s.SourceRect

	src, err := s.Source.Image()
	if err != nil {
		return err
	}
	region := SubImage(src, s.SourceRect)

	transformed := ApplyTransforms(CloneImage(region), s.Transforms, src)

	s.Source = &ImageFile{loaded: true, image: transformed, width: transformed.Bounds().Dx(), height: transformed.Bounds().Dy()}
	s.SourceRect = Rect{0, 0, transformed.Bounds().Dx(), transformed.Bounds().Dy()}
	return nil
}

// RestoreUntransformedSource reverts a sprite previously mutated by
// TransformSprite back to its original source, and marks its source rect
// as not yet trimmed (trimming is redone against the untransformed
// pixels). Mirrors restore_untransformed_sources.
func RestoreUntransformedSource(s *Sprite) {
	if s.UntransformedSource == nil {
		return
	}
	s.Source = s.UntransformedSource
	s.SourceRect = s.UntransformedSourceRect
	s.TrimmedSourceRect = s.SourceRect
	s.UntransformedSource = nil
}

// GetTransformScale composes the cumulative scale factor of steps. A
// resize or rotate step zeroes it out, indicating the size can no longer
// be derived by a uniform multiplier.
func GetTransformScale(steps []TransformStep) SizeF {
	scale := SizeF{X: 1, Y: 1}
	for _, step := range steps {
		switch s := step.(type) {
		case ScaleStep:
			scale.X *= s.Scale.X
			scale.Y *= s.Scale.Y
		case ResizeStep, RotateStep:
			scale = SizeF{}
		}
	}
	return scale
}
