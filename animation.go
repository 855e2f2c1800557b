package spright

import (
	"image"
	"image/color"
)

// GeneratePalette builds one palette shared by every frame of an
// animation: frames are conceptually stacked into a single
// W × (H·N) buffer and reduced with median-cut, so colors that only
// appear in later frames still get a slot. Mirrors image_io.cpp's
// generate_palette.
func GeneratePalette(frames []*image.NRGBA, maxColors int) color.Palette {
	if maxColors > 256 {
		maxColors = 256
	}

	var pixels []color.NRGBA
	for _, frame := range frames {
		b := frame.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				pixels = append(pixels, frame.NRGBAAt(x, y))
			}
		}
	}
	return MedianCutPalette(pixels, maxColors)
}

// BuildFrame quantizes frame to palette, dithering with Floyd–Steinberg
// only when the palette has saturated at maxColors (an unsaturated
// palette already contains every color exactly, so dithering would only
// add noise); otherwise a plain nearest-color quantize is used.
func BuildFrame(frame *image.NRGBA, palette color.Palette, maxColors int) *image.Paletted {
	if len(palette) >= maxColors {
		dithered := CloneImage(frame)
		FloydSteinbergDither(dithered, palette)
		return QuantizeImage(dithered, palette)
	}
	return QuantizeImage(frame, palette)
}

// transparentIndex returns the index of palette's entry nearest to
// colorkey, or -1 if colorkey is nil.
func transparentIndex(palette color.Palette, colorkey *color.NRGBA) int {
	if colorkey == nil {
		return -1
	}
	return NearestPaletteIndex(palette, *colorkey)
}

// markTransparent returns a copy of palette with the alpha of
// palette[index] zeroed, so image/gif's encoder recognizes it as the
// frame's transparent color. palette itself is not modified.
func markTransparent(palette color.Palette, index int) color.Palette {
	if index < 0 {
		return palette
	}
	marked := make(color.Palette, len(palette))
	copy(marked, palette)
	c := color.NRGBAModel.Convert(marked[index]).(color.NRGBA)
	c.A = 0
	marked[index] = c
	return marked
}

// WriteGIF assembles frames into an animated GIF at dst: a shared
// palette is generated (reduced to at most maxColors, capped at 256),
// colorkey (if any) is mapped to the nearest palette entry and marked
// transparent, frames are quantized in parallel, then encoded
// sequentially in input order with delaySeconds[i] as that frame's
// display delay.
func WriteGIF(dst string, frames []*image.NRGBA, delaySeconds []float64, colorkey *color.NRGBA, maxColors int) error {
	palette := GeneratePalette(frames, maxColors)
	index := transparentIndex(palette, colorkey)
	palette = markTransparent(palette, index)

	quantized := make([]*image.Paletted, len(frames))
	err := ForEachParallelN(len(frames), func(i int) error {
		quantized[i] = BuildFrame(frames[i], palette, maxColors)
		return nil
	})
	if err != nil {
		return err
	}

	return SaveAnimation(dst, quantized, delaySeconds)
}
