package spright

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradientImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 23 % 256),
				G: uint8(y * 41 % 256),
				B: uint8((x + y) * 7 % 256),
				A: uint8(255 - (x+y)%64),
			})
		}
	}
	return img
}

func TestTGA_RoundTripRLE(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	orig := TGAWriteRLE
	defer func() { TGAWriteRLE = orig }()
	TGAWriteRLE = true

	src := gradientImage(13, 9)
	var buf bytes.Buffer
	require.NoError(EncodeTGA(&buf, src))

	got, err := DecodeTGA(&buf)
	require.NoError(err)
	assert.Equal(src.Bounds(), got.Bounds())
	for y := 0; y < 9; y++ {
		for x := 0; x < 13; x++ {
			assert.Equal(src.NRGBAAt(x, y), got.NRGBAAt(x, y), "mismatch at %d,%d", x, y)
		}
	}
}

func TestTGA_RoundTripUncompressed(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	orig := TGAWriteRLE
	defer func() { TGAWriteRLE = orig }()
	TGAWriteRLE = false

	src := gradientImage(10, 6)
	var buf bytes.Buffer
	require.NoError(EncodeTGA(&buf, src))

	got, err := DecodeTGA(&buf)
	require.NoError(err)
	assert.Equal(src.Bounds(), got.Bounds())
	for y := 0; y < 6; y++ {
		for x := 0; x < 10; x++ {
			assert.Equal(src.NRGBAAt(x, y), got.NRGBAAt(x, y))
		}
	}
}

func TestTGA_RoundTripSolidColorRunLength(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	orig := TGAWriteRLE
	defer func() { TGAWriteRLE = orig }()
	TGAWriteRLE = true

	src := opaqueSquareImage(300, 2, Rect{W: 300, H: 2})
	var buf bytes.Buffer
	require.NoError(EncodeTGA(&buf, src))

	got, err := DecodeTGA(&buf)
	require.NoError(err)
	for x := 0; x < 300; x++ {
		assert.Equal(src.NRGBAAt(x, 0), got.NRGBAAt(x, 0))
	}
}

func TestDecodeTGA_RejectsUnsupportedBitDepth(t *testing.T) {
	require := require.New(t)

	header := make([]byte, 18)
	header[2] = tgaTypeUncompressed
	header[16] = 16

	_, err := DecodeTGA(bytes.NewReader(header))
	require.Error(err)
}
