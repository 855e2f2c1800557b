package spright

import (
	"image"
	"image/color"
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

// ImageFile is a lazily-loaded, reference-counted (by the Go GC) binding
// to a source image on disk. The image is decoded at most once, on
// first touch, under a mutex so concurrent prepass/pack goroutines can
// safely race to load it.
type ImageFile struct {
	Path     string
	Filename string
	Colorkey color.NRGBA

	mu     sync.Mutex
	loaded bool
	image  *image.NRGBA
	width  int
	height int
}

// NewImageFile returns an ImageFile bound to path/filename. width and
// height may be zero; they are filled in lazily from the header on first
// access if unknown.
func NewImageFile(path, filename string) *ImageFile {
	return &ImageFile{Path: path, Filename: filename}
}

func (f *ImageFile) fullPath() string {
	if f.Path == "" {
		return f.Filename
	}
	return f.Path + "/" + f.Filename
}

// Width returns the image's width, loading just the header if it has
// not been read yet.
func (f *ImageFile) Width() (int, error) {
	if err := f.loadHeader(); err != nil {
		return 0, err
	}
	return f.width, nil
}

// Height returns the image's height, loading just the header if it has
// not been read yet.
func (f *ImageFile) Height() (int, error) {
	if err := f.loadHeader(); err != nil {
		return 0, err
	}
	return f.height, nil
}

// Rect returns the image's bounds as a Rect with origin (0, 0).
func (f *ImageFile) Rect() (Rect, error) {
	w, err := f.Width()
	if err != nil {
		return Rect{}, err
	}
	h, err := f.Height()
	if err != nil {
		return Rect{}, err
	}
	return Rect{0, 0, w, h}, nil
}

func (f *ImageFile) loadHeader() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loaded || f.width != 0 || f.height != 0 {
		return nil
	}
	size, err := LoadImageHeader(f.fullPath())
	if err != nil {
		return err
	}
	f.width, f.height = size.X, size.Y
	return nil
}

// Image returns the decoded, colorkey-resolved pixel buffer, loading it
// from disk on first call. Mirrors ImageFile::lazy_load_image.
func (f *ImageFile) Image() (*image.NRGBA, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loaded {
		return f.image, nil
	}

	img, err := LoadImage(f.fullPath())
	if err != nil {
		return nil, err
	}

	if f.Colorkey != (color.NRGBA{}) {
		key := f.Colorkey
		if key.A == 0 {
			key = GuessColorkey(img)
		}
		ReplaceColor(img, [4]uint8{key.R, key.G, key.B, key.A}, [4]uint8{})
	}

	f.image = img
	f.width, f.height = img.Bounds().Dx(), img.Bounds().Dy()
	f.loaded = true
	return f.image, nil
}

// SourceCache memoizes path → *ImageFile so that sprites referencing the
// same source file share one decode.
type SourceCache struct {
	mu    sync.Mutex
	cache *lru.Cache
}

// NewSourceCache returns a SourceCache holding at most size entries.
func NewSourceCache(size int) (*SourceCache, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &SourceCache{cache: c}, nil
}

// Get returns the cached ImageFile for path/filename, creating and
// storing one if absent.
func (c *SourceCache) Get(path, filename string) *ImageFile {
	key := path + "/" + filename

	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.cache.Get(key); ok {
		return v.(*ImageFile)
	}
	f := NewImageFile(path, filename)
	c.cache.Add(key, f)
	return f
}
