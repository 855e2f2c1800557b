/*
Package spright is a sprite-sheet packer. It ingests a set of source
images together with per-sprite configuration (trimming, alignment,
scaling/rotation/resizing, extrusion, padding, deduplication) and packs
them into one or more output textures ("slices"), returning the geometry
needed to address every sprite on its slice (rectangle, rotation, pivot,
margin).

The package ships a command line front-end, reading a TOML project file
describing inputs, sheets and sprites:

	$ spright -config project.toml -out dist/

To use the packer as a library:

	package main

	import "github.com/esimov/spright"

	func main() {
		sprites := []*spright.Sprite{} // populated by the caller

		slices, err := spright.Pack(sprites, nil)
		if err != nil {
			// ...
		}
	}
*/
package spright
