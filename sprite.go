package spright

import "image/color"

// Trim selects how a sprite's source pixels are cropped down to their
// opaque content before packing.
type Trim int

const (
	TrimNone Trim = iota
	TrimRect
	TrimConvex
)

// Alpha selects how an output image's alpha channel is treated on write.
type Alpha int

const (
	AlphaKeep Alpha = iota
	AlphaOpaque
	AlphaClear
	AlphaBleed
	AlphaPremultiply
	AlphaColorkey
)

// PackMode selects the placement strategy used for a sheet.
type PackMode int

const (
	ModeBinpack PackMode = iota
	ModeRows
	ModeColumns
	ModeCompact
	ModeOrigin
	ModeSingle
	ModeLayers
	ModeKeep
)

// Duplicates selects how pixel-identical sprites are handled by dedup.
type Duplicates int

const (
	DuplicatesKeep Duplicates = iota
	DuplicatesShare
	DuplicatesDrop
)

// WrapMode selects how extruded pixels are generated at a sprite's edge.
type WrapMode int

const (
	WrapClamp WrapMode = iota
	WrapMirror
)

// Extrude describes outward pixel replication applied around a sprite's
// trimmed content to prevent bilinear filtering from bleeding between
// neighbours on the packed sheet.
type Extrude struct {
	Count int
	Mode  WrapMode
}

// Input is one source filename group contributing sprites.
type Input struct {
	Index           int
	SourceFilenames string
	Sources         []*ImageFile
}

// Output describes one rendered artifact derived from a sheet: the
// destination filename, alpha handling and the transform chain applied
// before encoding.
type Output struct {
	WarningLine       int
	Filename          string
	DefaultMapSuffix  string
	MapSuffixes       []string
	Alpha             Alpha
	AlphaColor        color.NRGBA
	Transforms        []TransformStep
	Debug             bool
	Scale             SizeF
}

// Sheet is the packing configuration shared by a group of sprites.
type Sheet struct {
	Index          int
	ID             string
	InputFile      string
	Outputs        []*Output
	Width          int
	Height         int
	MaxWidth       int
	MaxHeight      int
	PowerOfTwo     bool
	Square         bool
	DivisibleWidth int
	AllowRotate    bool
	BorderPadding  int
	ShapePadding   int
	Duplicates     Duplicates
	Pack           PackMode
}

// Sprite is the unit of work packed onto a sheet.
type Sprite struct {
	WarningLine      int
	Index            int
	InputIndex       int
	InputSpriteIndex int
	ID               string

	Sheet  *Sheet
	Source *ImageFile
	Maps   []*ImageFile

	SourceRect        Rect
	TrimmedSourceRect Rect
	Pivot             AnchorF
	Trim              Trim
	TrimMargin        Margin
	TrimThreshold     int
	TrimGrayLevels    bool
	Crop              bool
	CropPivot         bool

	// Margin is the outer expansion around Rect, resulting in the sprite's bounds.
	Margin        Margin
	Extrude       Extrude
	MinSize       Size
	DivisibleSize Size
	CommonSize    string

	// Align is the placement of TrimmedRect within Rect.
	Align      Anchor
	AlignPivot string
	Tags       map[string]string

	Transforms             []TransformStep
	UntransformedSource    *ImageFile
	UntransformedSourceRect Rect

	SliceIndex int
	// Size is the total space this sprite allocates on the output,
	// including the padding contributed by Extrude.
	Size        Size
	Rect        Rect
	TrimmedRect Rect
	Rotated     bool

	DuplicateOfIndex int
}

// NewSprite returns a Sprite with slice/duplicate bookkeeping set to
// their "unplaced" sentinel values.
func NewSprite() *Sprite {
	return &Sprite{SliceIndex: -1, DuplicateOfIndex: -1}
}

// Slice is one produced output rectangle containing a span of packed sprites.
type Slice struct {
	Sheet   *Sheet
	Index   int
	Sprites []*Sprite
	Width   int
	Height  int
	// LastSourceWrittenTime is the most recent modification time (Unix
	// seconds) among the slice's distinct source files, set by
	// UpdateSliceLastSourceWrittenTime.
	LastSourceWrittenTime int64
}
