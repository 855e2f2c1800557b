package spright

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, dir, name string) {
	t.Helper()
	img := checkerImage(8, 8)
	require.NoError(t, SaveImage(filepath.Join(dir, name), img))
}

func TestLoadProject_ResolvesGraph(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	dir := t.TempDir()
	writeTestPNG(t, dir, "hero.png")

	project := `
[[input]]
source_filenames = "*.png"

[[sheet]]
id = "main"
pack = "binpack"
allow_rotate = true

[[sheet.output]]
filename = "main.png"
alpha = "bleed"
alpha_color = "#ff00ff"

[[sprite]]
input = 0
sheet = "main"
id = "hero"
trim = "rect"
align = "center"
`
	path := filepath.Join(dir, "spright.toml")
	require.NoError(os.WriteFile(path, []byte(project), 0o644))

	proj, err := LoadProject(path)
	require.NoError(err)

	require.Len(proj.Inputs, 1)
	require.Len(proj.Inputs[0].Sources, 1)
	assert.Equal("hero.png", proj.Inputs[0].Sources[0].Filename)

	require.Len(proj.Sheets, 1)
	sheet := proj.Sheets[0]
	assert.Equal("main", sheet.ID)
	assert.Equal(ModeBinpack, sheet.Pack)
	assert.True(sheet.AllowRotate)

	require.Len(sheet.Outputs, 1)
	assert.Equal(AlphaBleed, sheet.Outputs[0].Alpha)
	assert.Equal(uint8(0xff), sheet.Outputs[0].AlphaColor.R)
	assert.Equal(uint8(0xff), sheet.Outputs[0].AlphaColor.B)

	require.Len(proj.Sprites, 1)
	sprite := proj.Sprites[0]
	assert.Equal("hero", sprite.ID)
	assert.Equal(TrimRect, sprite.Trim)
	assert.Same(sheet, sprite.Sheet)
	assert.Equal(AnchorCenter, sprite.Align.AxisX)
}

func TestLoadProject_UnknownSheetErrors(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	writeTestPNG(t, dir, "a.png")

	project := `
[[input]]
source_filenames = "*.png"

[[sprite]]
input = 0
sheet = "missing"
id = "a"
`
	path := filepath.Join(dir, "spright.toml")
	require.NoError(os.WriteFile(path, []byte(project), 0o644))

	_, err := LoadProject(path)
	require.Error(err)
}
