package spright

import "errors"

// errNotAllSpritesPacked is returned by a pack strategy when it runs out
// of room before placing every sprite handed to it — e.g. a rows/columns
// pack meeting a sprite larger than the sheet's MaxWidth/MaxHeight even
// on a fresh slice.
var errNotAllSpritesPacked = errors.New("not all sprites could be packed onto the sheet")
