package spright

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/esimov/spright/utils"
)

// Project is the fully-resolved graph produced by loading a project
// file: every [[input]], [[sheet]] and [[sprite]] table decoded and
// cross-linked into the pack pipeline's live types.
type Project struct {
	Inputs  []*Input
	Sheets  []*Sheet
	Sprites []*Sprite
	Cache   *SourceCache
}

// rawTransform mirrors one [[sprite.transform]] or [[sheet.output.transform]]
// table. Which fields apply depends on Type.
type rawTransform struct {
	Type     string  `toml:"type"` // "scale", "resize" or "rotate"
	ScaleX   float64 `toml:"scale_x"`
	ScaleY   float64 `toml:"scale_y"`
	Width    float64 `toml:"width"`
	Height   float64 `toml:"height"`
	Angle    float64 `toml:"angle"`
	Filter   string  `toml:"filter"` // "box", "linear" or "lanczos"
}

// rawOutput mirrors one [[sheet.output]] table.
type rawOutput struct {
	Filename         string         `toml:"filename"`
	DefaultMapSuffix string         `toml:"default_map_suffix"`
	MapSuffixes      []string       `toml:"map_suffixes"`
	Alpha            string         `toml:"alpha"`
	AlphaColor       string         `toml:"alpha_color"`
	Debug            bool           `toml:"debug"`
	ScaleX           float64        `toml:"scale_x"`
	ScaleY           float64        `toml:"scale_y"`
	Transform        []rawTransform `toml:"transform"`
}

// rawSheet mirrors one [[sheet]] table.
type rawSheet struct {
	ID             string      `toml:"id"`
	Width          int         `toml:"width"`
	Height         int         `toml:"height"`
	MaxWidth       int         `toml:"max_width"`
	MaxHeight      int         `toml:"max_height"`
	PowerOfTwo     bool        `toml:"power_of_two"`
	Square         bool        `toml:"square"`
	DivisibleWidth int         `toml:"divisible_width"`
	AllowRotate    bool        `toml:"allow_rotate"`
	BorderPadding  int         `toml:"border_padding"`
	ShapePadding   int         `toml:"shape_padding"`
	Duplicates     string      `toml:"duplicates"`
	Pack           string      `toml:"pack"`
	Output         []rawOutput `toml:"output"`
}

// rawInput mirrors one [[input]] table: source_filenames is resolved
// with filepath.Glob, so it may name a single file or a shell pattern.
type rawInput struct {
	SourceFilenames string `toml:"source_filenames"`
	Path            string `toml:"path"`
}

// rawSprite mirrors one [[sprite]] table.
type rawSprite struct {
	Input  int    `toml:"input"`
	Sheet  string `toml:"sheet"`
	ID     string `toml:"id"`
	Source string `toml:"source"`

	Trim           string  `toml:"trim"`
	TrimMargin     []int   `toml:"trim_margin"`
	TrimThreshold  int     `toml:"trim_threshold"`
	TrimGrayLevels bool    `toml:"trim_gray_levels"`
	Crop           bool    `toml:"crop"`
	CropPivot      bool    `toml:"crop_pivot"`

	MinSize       []int  `toml:"min_size"`
	DivisibleSize []int  `toml:"divisible_size"`
	CommonSize    string `toml:"common_size"`

	ExtrudeCount int    `toml:"extrude_count"`
	ExtrudeMode  string `toml:"extrude_mode"`

	Align       string `toml:"align"`
	AlignOffset []int  `toml:"align_offset"`
	AlignPivot  string `toml:"align_pivot"`

	Pivot       string    `toml:"pivot"`
	PivotOffset []float64 `toml:"pivot_offset"`

	Tags      map[string]string `toml:"tags"`
	Transform []rawTransform    `toml:"transform"`
}

// rawProject is the top-level decode target for a project file.
type rawProject struct {
	Input  []rawInput  `toml:"input"`
	Sheet  []rawSheet  `toml:"sheet"`
	Sprite []rawSprite `toml:"sprite"`
}

// LoadProject reads and resolves the project file at path into a
// Project ready to hand to Pack. Relative source_filenames and sprite
// source overrides are resolved against path's directory.
func LoadProject(path string) (*Project, error) {
	var raw rawProject
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("spright: decoding project file: %w", err)
	}

	base := filepath.Dir(path)
	cache, err := NewSourceCache(1024)
	if err != nil {
		return nil, fmt.Errorf("spright: creating source cache: %w", err)
	}

	p := &Project{Cache: cache}

	for i, ri := range raw.Input {
		dir := ri.Path
		if dir == "" {
			dir = base
		}
		matches, err := filepath.Glob(filepath.Join(dir, ri.SourceFilenames))
		if err != nil {
			return nil, fmt.Errorf("spright: input %d: %w", i, err)
		}
		if len(matches) == 0 {
			matches = []string{filepath.Join(dir, ri.SourceFilenames)}
		}
		sort.Strings(matches)

		input := &Input{Index: i, SourceFilenames: ri.SourceFilenames}
		for _, m := range matches {
			input.Sources = append(input.Sources, cache.Get(filepath.Dir(m), filepath.Base(m)))
		}
		p.Inputs = append(p.Inputs, input)
	}

	sheetByID := map[string]*Sheet{}
	for i, rs := range raw.Sheet {
		duplicates, err := parseDuplicates(rs.Duplicates)
		if err != nil {
			return nil, fmt.Errorf("spright: sheet %q: %w", rs.ID, err)
		}
		pack, err := parsePackMode(rs.Pack)
		if err != nil {
			return nil, fmt.Errorf("spright: sheet %q: %w", rs.ID, err)
		}

		sheet := &Sheet{
			Index:          i,
			ID:             rs.ID,
			Width:          rs.Width,
			Height:         rs.Height,
			MaxWidth:       rs.MaxWidth,
			MaxHeight:      rs.MaxHeight,
			PowerOfTwo:     rs.PowerOfTwo,
			Square:         rs.Square,
			DivisibleWidth: rs.DivisibleWidth,
			AllowRotate:    rs.AllowRotate,
			BorderPadding:  rs.BorderPadding,
			ShapePadding:   rs.ShapePadding,
			Duplicates:     duplicates,
			Pack:           pack,
		}

		for _, ro := range rs.Output {
			alpha, err := parseAlpha(ro.Alpha)
			if err != nil {
				return nil, fmt.Errorf("spright: sheet %q output %q: %w", rs.ID, ro.Filename, err)
			}
			transforms, err := parseTransforms(ro.Transform)
			if err != nil {
				return nil, fmt.Errorf("spright: sheet %q output %q: %w", rs.ID, ro.Filename, err)
			}

			sheet.Outputs = append(sheet.Outputs, &Output{
				Filename:         ro.Filename,
				DefaultMapSuffix: ro.DefaultMapSuffix,
				MapSuffixes:      ro.MapSuffixes,
				Alpha:            alpha,
				AlphaColor:       utils.HexToRGBA(ro.AlphaColor),
				Transforms:       transforms,
				Debug:            ro.Debug,
				Scale:            SizeF{X: orDefault(ro.ScaleX, 1), Y: orDefault(ro.ScaleY, 1)},
			})
		}

		p.Sheets = append(p.Sheets, sheet)
		if sheet.ID != "" {
			sheetByID[sheet.ID] = sheet
		}
	}

	inputSpriteCount := map[int]int{}
	for i, rsp := range raw.Sprite {
		sprite := NewSprite()
		sprite.Index = i
		sprite.ID = rsp.ID
		sprite.InputIndex = rsp.Input

		if rsp.Input < 0 || rsp.Input >= len(p.Inputs) {
			return nil, fmt.Errorf("spright: sprite %q: input index %d out of range", rsp.ID, rsp.Input)
		}
		input := p.Inputs[rsp.Input]

		sprite.InputSpriteIndex = inputSpriteCount[rsp.Input]
		inputSpriteCount[rsp.Input]++

		if rsp.Source != "" {
			sprite.Source = cache.Get(base, rsp.Source)
		} else if len(input.Sources) > 0 {
			idx := sprite.InputSpriteIndex % len(input.Sources)
			sprite.Source = input.Sources[idx]
		}

		if rsp.Sheet != "" {
			sheet, ok := sheetByID[rsp.Sheet]
			if !ok {
				return nil, fmt.Errorf("spright: sprite %q: unknown sheet %q", rsp.ID, rsp.Sheet)
			}
			sprite.Sheet = sheet
		}

		trim, err := parseTrim(rsp.Trim)
		if err != nil {
			return nil, fmt.Errorf("spright: sprite %q: %w", rsp.ID, err)
		}
		sprite.Trim = trim
		sprite.TrimMargin = marginFromInts(rsp.TrimMargin)
		sprite.TrimThreshold = rsp.TrimThreshold
		sprite.TrimGrayLevels = rsp.TrimGrayLevels
		sprite.Crop = rsp.Crop
		sprite.CropPivot = rsp.CropPivot

		sprite.MinSize = sizeFromInts(rsp.MinSize)
		sprite.DivisibleSize = sizeFromInts(rsp.DivisibleSize)
		sprite.CommonSize = rsp.CommonSize

		mode, err := parseWrapMode(rsp.ExtrudeMode)
		if err != nil {
			return nil, fmt.Errorf("spright: sprite %q: %w", rsp.ID, err)
		}
		sprite.Extrude = Extrude{Count: rsp.ExtrudeCount, Mode: mode}

		align, err := parseAnchor(rsp.Align, intsOrZero(rsp.AlignOffset))
		if err != nil {
			return nil, fmt.Errorf("spright: sprite %q: %w", rsp.ID, err)
		}
		sprite.Align = align
		sprite.AlignPivot = rsp.AlignPivot

		pivot, err := parseAnchorF(rsp.Pivot, floatsOrZero(rsp.PivotOffset))
		if err != nil {
			return nil, fmt.Errorf("spright: sprite %q: %w", rsp.ID, err)
		}
		sprite.Pivot = pivot
		sprite.Tags = rsp.Tags

		transforms, err := parseTransforms(rsp.Transform)
		if err != nil {
			return nil, fmt.Errorf("spright: sprite %q: %w", rsp.ID, err)
		}
		sprite.Transforms = transforms

		p.Sprites = append(p.Sprites, sprite)
	}

	return p, nil
}

func parseTrim(s string) (Trim, error) {
	switch s {
	case "", "none":
		return TrimNone, nil
	case "rect":
		return TrimRect, nil
	case "convex":
		return TrimConvex, nil
	default:
		return 0, fmt.Errorf("unknown trim %q", s)
	}
}

func parseAlpha(s string) (Alpha, error) {
	switch s {
	case "", "keep":
		return AlphaKeep, nil
	case "opaque":
		return AlphaOpaque, nil
	case "clear":
		return AlphaClear, nil
	case "bleed":
		return AlphaBleed, nil
	case "premultiply":
		return AlphaPremultiply, nil
	case "colorkey":
		return AlphaColorkey, nil
	default:
		return 0, fmt.Errorf("unknown alpha %q", s)
	}
}

func parsePackMode(s string) (PackMode, error) {
	switch s {
	case "", "binpack":
		return ModeBinpack, nil
	case "rows":
		return ModeRows, nil
	case "columns":
		return ModeColumns, nil
	case "compact":
		return ModeCompact, nil
	case "origin":
		return ModeOrigin, nil
	case "single":
		return ModeSingle, nil
	case "layers":
		return ModeLayers, nil
	case "keep":
		return ModeKeep, nil
	default:
		return 0, fmt.Errorf("unknown pack mode %q", s)
	}
}

func parseDuplicates(s string) (Duplicates, error) {
	switch s {
	case "", "keep":
		return DuplicatesKeep, nil
	case "share":
		return DuplicatesShare, nil
	case "drop":
		return DuplicatesDrop, nil
	default:
		return 0, fmt.Errorf("unknown duplicates mode %q", s)
	}
}

func parseFilter(s string) (ScaleFilter, error) {
	switch s {
	case "", "box":
		return FilterBox, nil
	case "linear":
		return FilterLinear, nil
	case "lanczos":
		return FilterLanczos, nil
	default:
		return 0, fmt.Errorf("unknown filter %q", s)
	}
}

func parseTransforms(raw []rawTransform) ([]TransformStep, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	steps := make([]TransformStep, len(raw))
	for i, rt := range raw {
		filter, err := parseFilter(rt.Filter)
		if err != nil {
			return nil, err
		}
		switch rt.Type {
		case "scale":
			steps[i] = ScaleStep{Scale: SizeF{X: orDefault(rt.ScaleX, 1), Y: orDefault(rt.ScaleY, 1)}, Filter: filter}
		case "resize":
			steps[i] = ResizeStep{Size: SizeF{X: rt.Width, Y: rt.Height}, Filter: filter}
		case "rotate":
			steps[i] = RotateStep{Angle: rt.Angle, Method: RotateColorkey}
		default:
			return nil, fmt.Errorf("unknown transform type %q", rt.Type)
		}
	}
	return steps, nil
}

func parseWrapMode(s string) (WrapMode, error) {
	switch s {
	case "", "clamp":
		return WrapClamp, nil
	case "mirror":
		return WrapMirror, nil
	default:
		return 0, fmt.Errorf("unknown extrude mode %q", s)
	}
}

// anchorNames maps the project file's hyphenated anchor names to their
// AnchorX/AnchorY pair, per spec.md's {left|center|right} x {top|middle|bottom}.
var anchorNames = map[string][2]int{
	"top-left": {0, 0}, "top": {1, 0}, "top-right": {2, 0},
	"left": {0, 1}, "center": {1, 1}, "right": {2, 1},
	"bottom-left": {0, 2}, "bottom": {1, 2}, "bottom-right": {2, 2},
}

func parseAnchor(s string, offset [2]int) (Anchor, error) {
	if s == "" {
		s = "top-left"
	}
	pair, ok := anchorNames[s]
	if !ok {
		return Anchor{}, fmt.Errorf("unknown anchor %q", s)
	}
	return Anchor{X: offset[0], Y: offset[1], AxisX: AnchorX(pair[0]), AxisY: AnchorY(pair[1])}, nil
}

func parseAnchorF(s string, offset [2]float64) (AnchorF, error) {
	if s == "" {
		s = "top-left"
	}
	pair, ok := anchorNames[s]
	if !ok {
		return AnchorF{}, fmt.Errorf("unknown anchor %q", s)
	}
	return AnchorF{X: offset[0], Y: offset[1], AxisX: AnchorX(pair[0]), AxisY: AnchorY(pair[1])}, nil
}

func sizeFromInts(v []int) Size {
	if len(v) < 2 {
		return Size{}
	}
	return Size{v[0], v[1]}
}

func marginFromInts(v []int) Margin {
	if len(v) < 4 {
		return Margin{}
	}
	return Margin{float64(v[0]), float64(v[1]), float64(v[2]), float64(v[3])}
}

func intsOrZero(v []int) [2]int {
	if len(v) < 2 {
		return [2]int{}
	}
	return [2]int{v[0], v[1]}
}

func floatsOrZero(v []float64) [2]float64 {
	if len(v) < 2 {
		return [2]float64{}
	}
	return [2]float64{v[0], v[1]}
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
