package spright

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
)

// TGAWriteRLE controls whether EncodeTGA run-length-encodes its output.
// Mirrors the mutable global the original packer exposes to let callers
// trade file size for encoder simplicity.
var TGAWriteRLE = true

const (
	tgaTypeNoImage       = 0
	tgaTypeUncompressed  = 2
	tgaTypeRLE           = 10
)

// DecodeTGA reads an uncompressed or run-length-encoded 32-bit (or 24-bit)
// TGA image into a normalized *image.NRGBA.
func DecodeTGA(r io.Reader) (*image.NRGBA, error) {
	br := bufio.NewReader(r)

	var header [18]byte
	if _, err := io.ReadFull(br, header[:]); err != nil {
		return nil, fmt.Errorf("tga: short header: %w", err)
	}

	idLength := int(header[0])
	imageType := header[2]
	width := int(header[12]) | int(header[13])<<8
	height := int(header[14]) | int(header[15])<<8
	bpp := int(header[16])
	descriptor := header[17]

	if imageType != tgaTypeUncompressed && imageType != tgaTypeRLE {
		return nil, fmt.Errorf("tga: unsupported image type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("tga: unsupported bit depth %d", bpp)
	}
	if idLength > 0 {
		if _, err := br.Discard(idLength); err != nil {
			return nil, err
		}
	}

	bytesPerPixel := bpp / 8
	pixels := make([]byte, width*height*bytesPerPixel)

	if imageType == tgaTypeUncompressed {
		if _, err := io.ReadFull(br, pixels); err != nil {
			return nil, fmt.Errorf("tga: short pixel data: %w", err)
		}
	} else {
		if err := decodeTGARLE(br, pixels, bytesPerPixel); err != nil {
			return nil, err
		}
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	topDown := descriptor&0x20 != 0
	for y := 0; y < height; y++ {
		srcY := y
		if !topDown {
			srcY = height - 1 - y
		}
		for x := 0; x < width; x++ {
			off := (srcY*width + x) * bytesPerPixel
			b, g, r := pixels[off], pixels[off+1], pixels[off+2]
			a := byte(255)
			if bytesPerPixel == 4 {
				a = pixels[off+3]
			}
			img.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: a})
		}
	}
	return img, nil
}

func decodeTGARLE(r io.Reader, pixels []byte, bpp int) error {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}

	pos := 0
	pixel := make([]byte, bpp)
	for pos < len(pixels) {
		head, err := br.ReadByte()
		if err != nil {
			return fmt.Errorf("tga: truncated rle stream: %w", err)
		}
		count := int(head&0x7f) + 1

		if head&0x80 != 0 {
			for i := 0; i < bpp; i++ {
				b, err := br.ReadByte()
				if err != nil {
					return fmt.Errorf("tga: truncated rle packet: %w", err)
				}
				pixel[i] = b
			}
			for i := 0; i < count && pos < len(pixels); i++ {
				copy(pixels[pos:pos+bpp], pixel)
				pos += bpp
			}
		} else {
			for i := 0; i < count && pos < len(pixels); i++ {
				for j := 0; j < bpp; j++ {
					b, err := br.ReadByte()
					if err != nil {
						return fmt.Errorf("tga: truncated raw packet: %w", err)
					}
					pixels[pos+j] = b
				}
				pos += bpp
			}
		}
	}
	return nil
}

// EncodeTGA writes img as a bottom-up 32-bit TGA image, run-length
// encoding the pixel data when TGAWriteRLE is set.
func EncodeTGA(w io.Writer, img *image.NRGBA) error {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width > 0xffff || height > 0xffff {
		return fmt.Errorf("tga: image too large: %dx%d", width, height)
	}

	imageType := byte(tgaTypeUncompressed)
	if TGAWriteRLE {
		imageType = tgaTypeRLE
	}

	header := [18]byte{
		2:  imageType,
		12: byte(width), 13: byte(width >> 8),
		14: byte(height), 15: byte(height >> 8),
		16: 32,
		17: 0x08, // 8 bits of alpha, bottom-up
	}
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(header[:]); err != nil {
		return err
	}

	pixelAt := func(x, y int) color.NRGBA {
		return img.NRGBAAt(b.Min.X+x, b.Min.Y+y)
	}

	if !TGAWriteRLE {
		for y := height - 1; y >= 0; y-- {
			for x := 0; x < width; x++ {
				c := pixelAt(x, y)
				if _, err := bw.Write([]byte{c.B, c.G, c.R, c.A}); err != nil {
					return err
				}
			}
		}
		return bw.Flush()
	}

	for y := height - 1; y >= 0; y-- {
		x := 0
		for x < width {
			run := 1
			for x+run < width && run < 128 && pixelAt(x+run, y) == pixelAt(x, y) {
				run++
			}
			c := pixelAt(x, y)
			if run > 1 {
				if _, err := bw.Write([]byte{byte(0x80 | (run - 1)), c.B, c.G, c.R, c.A}); err != nil {
					return err
				}
				x += run
				continue
			}

			// raw packet: collect consecutive non-repeating pixels.
			rawStart := x
			rawLen := 1
			for rawStart+rawLen < width && rawLen < 128 {
				cur := pixelAt(rawStart+rawLen, y)
				nextRunLen := 1
				for rawStart+rawLen+nextRunLen < width && pixelAt(rawStart+rawLen+nextRunLen, y) == cur {
					nextRunLen++
				}
				if nextRunLen >= 2 {
					break
				}
				rawLen++
			}
			if _, err := bw.Write([]byte{byte(rawLen - 1)}); err != nil {
				return err
			}
			for i := 0; i < rawLen; i++ {
				c := pixelAt(rawStart+i, y)
				if _, err := bw.Write([]byte{c.B, c.G, c.R, c.A}); err != nil {
					return err
				}
			}
			x += rawLen
		}
	}
	return bw.Flush()
}
