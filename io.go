package spright

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/bmp"
)

// LoadImage decodes src and normalizes it to an *image.NRGBA with its
// origin at (0, 0). Files with a .tga extension are decoded as TGA; every
// other file's format is detected from its content.
// Adapted from the teacher's decodeImg/imgToNRGBA pair.
func LoadImage(src string) (*image.NRGBA, error) {
	file, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", src, err)
	}
	defer file.Close()

	switch ext := strings.ToLower(filepath.Ext(src)); ext {
	case ".tga":
		img, err := DecodeTGA(file)
		if err != nil {
			return nil, fmt.Errorf("could not decode %q: %w", src, err)
		}
		return img, nil
	default:
		img, _, err := image.Decode(file)
		if err != nil {
			return nil, fmt.Errorf("could not decode %q: %w", src, err)
		}
		return imgToNRGBA(img), nil
	}
}

// LoadImageHeader reads just the dimensions of src without decoding its
// pixel data, except for .tga files, which are decoded in full to learn
// their size.
func LoadImageHeader(src string) (Size, error) {
	file, err := os.Open(src)
	if err != nil {
		return Size{}, fmt.Errorf("could not open %q: %w", src, err)
	}
	defer file.Close()

	if strings.ToLower(filepath.Ext(src)) == ".tga" {
		img, err := DecodeTGA(file)
		if err != nil {
			return Size{}, err
		}
		b := img.Bounds()
		return Size{b.Dx(), b.Dy()}, nil
	}

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return Size{}, fmt.Errorf("could not read %q: %w", src, err)
	}
	return Size{cfg.Width, cfg.Height}, nil
}

// SaveImage encodes img to dst, choosing the codec from dst's extension.
// An unrecognised or missing extension defaults to PNG.
func SaveImage(dst string, img *image.NRGBA) error {
	file, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", dst, err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(dst)) {
	case ".jpg", ".jpeg":
		return jpeg.Encode(file, img, &jpeg.Options{Quality: 100})
	case ".bmp":
		return bmp.Encode(file, img)
	case ".tga":
		return EncodeTGA(file, img)
	case ".gif":
		return gif.Encode(file, img, nil)
	default:
		return png.Encode(file, img)
	}
}

// SaveAnimation writes frames as an animated GIF to dst, delaying each
// frame by the matching entry of delay (in seconds).
func SaveAnimation(dst string, frames []*image.Paletted, delay []float64) error {
	file, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", dst, err)
	}
	defer file.Close()

	g := &gif.GIF{Image: frames, Delay: make([]int, len(frames))}
	for i := range frames {
		d := 0.0
		if i < len(delay) {
			d = delay[i]
		}
		g.Delay[i] = int(d * 100)
	}
	return gif.EncodeAll(file, g)
}

// GetLastWriteTime returns the modification time of path, or the zero
// time if path does not exist.
func GetLastWriteTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
