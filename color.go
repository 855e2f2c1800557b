package spright

import (
	"image"
	"image/color"
	"math"
	"sort"
)

// rgba8 builds a color.NRGBA from an [r,g,b,a] byte tuple.
func rgba8(c [4]uint8) color.NRGBA {
	return color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}

// channel returns the i-th channel (0=R, 1=G, 2=B, 3=A) of c.
func channel(c color.NRGBA, i int) uint8 {
	switch i {
	case 0:
		return c.R
	case 1:
		return c.G
	case 2:
		return c.B
	default:
		return c.A
	}
}

// colorBucket is a contiguous run of a shared, mutable pixel slice used
// while building a median-cut palette.
type colorBucket struct {
	colors          []color.NRGBA
	maxChannelRange int
}

// sortBucket computes the channel with the largest value range in the
// bucket and sorts its colors ascending along that channel.
// https://en.wikipedia.org/wiki/Median_cut
func sortBucket(b *colorBucket) {
	min, max := b.colors[0], b.colors[0]
	for _, c := range b.colors {
		for i := 0; i < 4; i++ {
			if channel(c, i) < channel(min, i) {
				switch i {
				case 0:
					min.R = c.R
				case 1:
					min.G = c.G
				case 2:
					min.B = c.B
				case 3:
					min.A = c.A
				}
			}
			if channel(c, i) > channel(max, i) {
				switch i {
				case 0:
					max.R = c.R
				case 1:
					max.G = c.G
				case 2:
					max.B = c.B
				case 3:
					max.A = c.A
				}
			}
		}
	}

	maxChannel := 0
	maxRange := -1
	for i := 0; i < 4; i++ {
		r := int(channel(max, i)) - int(channel(min, i))
		if r > maxRange {
			maxRange = r
			maxChannel = i
		}
	}
	b.maxChannelRange = maxRange

	sort.Slice(b.colors, func(i, j int) bool {
		return channel(b.colors[i], maxChannel) < channel(b.colors[j], maxChannel)
	})
}

// MedianCutPalette reduces pixels to at most maxColors colors using
// median-cut bucket splitting. The result is deduplicated and sorted
// lexicographically by channel.
func MedianCutPalette(pixels []color.NRGBA, maxColors int) color.Palette {
	if len(pixels) == 0 || maxColors <= 0 {
		return color.Palette{}
	}

	working := make([]color.NRGBA, len(pixels))
	copy(working, pixels)

	buckets := []*colorBucket{{colors: working}}
	sortBucket(buckets[0])

	for len(buckets) < maxColors {
		last := buckets[len(buckets)-1]
		if last.maxChannelRange == 0 {
			break
		}
		buckets = buckets[:len(buckets)-1]

		mid := len(last.colors) / 2
		halves := [2]*colorBucket{
			{colors: last.colors[:mid]},
			{colors: last.colors[mid:]},
		}
		ForEachParallelN(2, func(i int) error {
			sortBucket(halves[i])
			return nil
		})

		for _, half := range halves {
			i := sort.Search(len(buckets), func(i int) bool {
				return buckets[i].maxChannelRange >= half.maxChannelRange
			})
			buckets = append(buckets, nil)
			copy(buckets[i+1:], buckets[i:])
			buckets[i] = half
		}
	}

	palette := make(color.Palette, 0, len(buckets))
	for _, b := range buckets {
		var sum [4]uint64
		for _, c := range b.colors {
			sum[0] += uint64(c.R)
			sum[1] += uint64(c.G)
			sum[2] += uint64(c.B)
			sum[3] += uint64(c.A)
		}
		n := uint64(len(b.colors))
		palette = append(palette, color.NRGBA{
			R: uint8(sum[0] / n),
			G: uint8(sum[1] / n),
			B: uint8(sum[2] / n),
			A: uint8(sum[3] / n),
		})
	}

	sort.Slice(palette, func(i, j int) bool {
		a, b := palette[i].(color.NRGBA), palette[j].(color.NRGBA)
		if a.R != b.R {
			return a.R < b.R
		}
		if a.G != b.G {
			return a.G < b.G
		}
		if a.B != b.B {
			return a.B < b.B
		}
		return a.A < b.A
	})
	deduped := palette[:0]
	for i, c := range palette {
		if i == 0 || c != palette[i-1] {
			deduped = append(deduped, c)
		}
	}
	return deduped
}

// NearestPaletteIndex returns the index of the palette entry with minimal
// Euclidean distance to c, considering only R, G and B. Ties resolve to
// the lower index.
func NearestPaletteIndex(palette color.Palette, c color.NRGBA) int {
	minIndex := 0
	minDistance := math.MaxInt64
	for i, p := range palette {
		pc := color.NRGBAModel.Convert(p).(color.NRGBA)
		dr := int(pc.R) - int(c.R)
		dg := int(pc.G) - int(c.G)
		db := int(pc.B) - int(c.B)
		d := dr*dr + dg*dg + db*db
		if d < minDistance {
			minDistance = d
			minIndex = i
		}
	}
	return minIndex
}

// FloydSteinbergDither quantizes img to palette in place, diffusing the
// quantization error to unprocessed neighbours.
// https://en.wikipedia.org/wiki/Floyd%E2%80%93Steinberg_dithering
func FloydSteinbergDither(img *image.NRGBA, palette color.Palette) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	saturate := func(v int) uint8 {
		return uint8(Clamp(v, 0, 255))
	}
	applyError := func(x, y, er, eg, eb, weight int) {
		x = Clamp(x, 0, w-1)
		y = Clamp(y, 0, h-1)
		c := img.NRGBAAt(b.Min.X+x, b.Min.Y+y)
		c.R = saturate(int(c.R) + er*weight/16)
		c.G = saturate(int(c.G) + eg*weight/16)
		c.B = saturate(int(c.B) + eb*weight/16)
		img.SetNRGBA(b.Min.X+x, b.Min.Y+y, c)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			old := img.NRGBAAt(b.Min.X+x, b.Min.Y+y)
			idx := NearestPaletteIndex(palette, old)
			quantized := color.NRGBAModel.Convert(palette[idx]).(color.NRGBA)
			img.SetNRGBA(b.Min.X+x, b.Min.Y+y, quantized)

			er := int(old.R) - int(quantized.R)
			eg := int(old.G) - int(quantized.G)
			eb := int(old.B) - int(quantized.B)

			applyError(x+1, y, er, eg, eb, 7)
			applyError(x-1, y+1, er, eg, eb, 3)
			applyError(x, y+1, er, eg, eb, 5)
			applyError(x+1, y+1, er, eg, eb, 1)
		}
	}
}

// QuantizeImage maps every pixel of img to its nearest palette index and
// returns the result as a paletted image.
func QuantizeImage(img *image.NRGBA, palette color.Palette) *image.Paletted {
	b := img.Bounds()
	out := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), palette)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := img.NRGBAAt(b.Min.X+x, b.Min.Y+y)
			out.SetColorIndex(x, y, uint8(NearestPaletteIndex(palette, c)))
		}
	}
	return out
}

// GuessColorkey infers a likely "transparent" background color by sampling
// the image's four corners; the most frequent corner color wins ties
// broken by the top-left corner.
func GuessColorkey(img *image.NRGBA) color.NRGBA {
	b := img.Bounds()
	corners := []color.NRGBA{
		img.NRGBAAt(b.Min.X, b.Min.Y),
		img.NRGBAAt(b.Max.X-1, b.Min.Y),
		img.NRGBAAt(b.Min.X, b.Max.Y-1),
		img.NRGBAAt(b.Max.X-1, b.Max.Y-1),
	}
	counts := map[color.NRGBA]int{}
	for _, c := range corners {
		counts[c]++
	}
	best := corners[0]
	bestCount := 0
	for _, c := range corners {
		if counts[c] > bestCount {
			bestCount = counts[c]
			best = c
		}
	}
	return best
}

// sRGBToLinearLUT / linearToSRGBLUT precompute the sRGB transfer function
// and its inverse for every 8-bit channel value.
var (
	sRGBToLinearLUT [256]float64
	linearToSRGBLUT [4096]uint8
)

func init() {
	for i := 0; i < 256; i++ {
		c := float64(i) / 255
		if c <= 0.04045 {
			sRGBToLinearLUT[i] = c / 12.92
		} else {
			sRGBToLinearLUT[i] = math.Pow((c+0.055)/1.055, 2.4)
		}
	}
	for i := 0; i < 4096; i++ {
		c := float64(i) / 4095
		var s float64
		if c <= 0.0031308 {
			s = c * 12.92
		} else {
			s = 1.055*math.Pow(c, 1/2.4) - 0.055
		}
		linearToSRGBLUT[i] = uint8(Clamp(math.Round(s*255), 0, 255))
	}
}

// ToLinear converts img (assumed sRGB-encoded) to a linear-light NRGBA64
// buffer so resampling filters (scale/resize/rotate) operate on correct
// light values.
func ToLinear(img *image.NRGBA) *image.NRGBA64 {
	b := img.Bounds()
	out := image.NewNRGBA64(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := img.NRGBAAt(b.Min.X+x, b.Min.Y+y)
			out.SetNRGBA64(x, y, color.NRGBA64{
				R: uint16(sRGBToLinearLUT[c.R] * 65535),
				G: uint16(sRGBToLinearLUT[c.G] * 65535),
				B: uint16(sRGBToLinearLUT[c.B] * 65535),
				A: uint16(c.A) * 257,
			})
		}
	}
	return out
}

// ToSRGB converts a linear-light NRGBA64 buffer back to sRGB-encoded NRGBA.
func ToSRGB(img *image.NRGBA64) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := img.NRGBA64At(b.Min.X+x, b.Min.Y+y)
			out.SetNRGBA(x, y, color.NRGBA{
				R: linearToSRGBLUT[c.R>>4],
				G: linearToSRGBLUT[c.G>>4],
				B: linearToSRGBLUT[c.B>>4],
				A: uint8(c.A >> 8),
			})
		}
	}
	return out
}
