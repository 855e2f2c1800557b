package spright

// SpriteDescription is the serializable placement record for one sprite,
// produced toward templating/description consumers.
type SpriteDescription struct {
	ID          string `json:"id"`
	SliceIndex  int    `json:"slice_index"`
	Rect        Rect   `json:"rect"`
	TrimmedRect Rect   `json:"trimmed_rect"`
	Rotated     bool   `json:"rotated"`
	Margin      Margin `json:"margin"`
	Pivot       PointF `json:"pivot"`
}

// SliceDescription is the serializable record for one emitted slice.
type SliceDescription struct {
	Index                 int                 `json:"index"`
	Filename              string              `json:"filename"`
	Width                 int                 `json:"width"`
	Height                int                 `json:"height"`
	LastSourceWrittenTime int64               `json:"last_source_written_time"`
	Sprites               []SpriteDescription `json:"sprites"`
}

// Describe builds the serializable description of slices, naming each
// slice's file as produced by filename(slice).
func Describe(slices []*Slice, filename func(*Slice) string) []SliceDescription {
	out := make([]SliceDescription, len(slices))
	for i, slice := range slices {
		desc := SliceDescription{
			Index:                 slice.Index,
			Filename:              filename(slice),
			Width:                 slice.Width,
			Height:                slice.Height,
			LastSourceWrittenTime: slice.LastSourceWrittenTime,
		}
		for _, s := range slice.Sprites {
			if s.Sheet == nil {
				continue
			}
			desc.Sprites = append(desc.Sprites, SpriteDescription{
				ID:          s.ID,
				SliceIndex:  s.SliceIndex,
				Rect:        s.Rect,
				TrimmedRect: s.TrimmedRect,
				Rotated:     s.Rotated,
				Margin:      s.Margin,
				Pivot:       PointF{X: s.Pivot.X, Y: s.Pivot.Y},
			})
		}
		out[i] = desc
	}
	return out
}
