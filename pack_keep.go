package spright

import "sort"

// PackKeep respects each sprite's caller-provided SliceIndex, grouping
// sprites by that field and emitting slices in index order. A sprite
// with SliceIndex < 0 is left unplaced.
func PackKeep(sheet *Sheet, sprites []*Sprite, slices *[]*Slice) error {
	byIndex := map[int][]*Sprite{}
	for _, s := range sprites {
		if s.SliceIndex < 0 {
			continue
		}
		byIndex[s.SliceIndex] = append(byIndex[s.SliceIndex], s)
	}

	var keys []int
	for k := range byIndex {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	for _, k := range keys {
		group := byIndex[k]
		sort.Slice(group, func(i, j int) bool { return group[i].Index < group[j].Index })
		newSlice(sheet, group, slices)
	}
	return nil
}
