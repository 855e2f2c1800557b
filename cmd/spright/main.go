package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/esimov/spright"
	"github.com/esimov/spright/utils"
)

const helpBanner = `
┌─┐┌─┐┬─┐┬┌─┐┬ ┬┌┬┐
└─┐├─┘├┬┘││ ┬├─┤ │
└─┘┴  ┴└─┴└─┘┴ ┴ ┴

Sprite sheet packer.
    Version: %s

`

// Version indicates the current build version, set via -ldflags on release builds.
var Version string

var (
	configPath = flag.String("config", "spright.toml", "Project file")
	outDir     = flag.String("out", ".", "Output directory for packed slices")
	descPath   = flag.String("desc", "", "Description file (JSON); defaults to <out>/spright.json")
	workers    = flag.Int("conc", runtime.NumCPU(), "Number of slices to compose concurrently")
)

func main() {
	log.SetFlags(0)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, helpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	msg := fmt.Sprintf("%s %s",
		utils.DecorateText("⬚ spright", utils.StatusMessage),
		utils.DecorateText("⇢ packing sprites (be patient, it may take a while)...", utils.DefaultMessage),
	)
	spinner := utils.NewSpinner(msg, time.Millisecond*80, true)
	spinner.Start()

	now := time.Now()
	if err := run(*configPath, *outDir, *descPath); err != nil {
		spinner.StopMsg = fmt.Sprintf("%s %s\n",
			utils.DecorateText("⬚ spright", utils.StatusMessage),
			utils.DecorateText(fmt.Sprintf("packing failed: %v ✘", err), utils.ErrorMessage),
		)
		spinner.Stop()
		os.Exit(1)
	}

	spinner.StopMsg = fmt.Sprintf("%s %s\n",
		utils.DecorateText("⬚ spright", utils.StatusMessage),
		utils.DecorateText("sprites packed successfully ✔", utils.SuccessMessage),
	)
	spinner.Stop()

	fmt.Fprintf(os.Stderr, "\nExecution time: %s\n",
		utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
}

func run(configPath, outDir, descPath string) error {
	proj, err := spright.LoadProject(configPath)
	if err != nil {
		return fmt.Errorf("loading project: %w", err)
	}

	diag := &spright.Diagnostics{}
	slices, err := spright.Pack(proj.Sprites, diag)
	if err != nil {
		return fmt.Errorf("packing: %w", err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	filename := func(slice *spright.Slice) string {
		base := slice.Sheet.ID
		if base == "" {
			base = "sheet"
		}
		if len(slicesForSheet(slices, slice.Sheet)) > 1 {
			base = fmt.Sprintf("%s_%s", base, strconv.Itoa(slice.Index))
		}
		return base + ".png"
	}

	if *workers <= 0 {
		*workers = runtime.NumCPU()
	}
	if err := spright.ForEachParallelLimit(slices, *workers, func(slice **spright.Slice) error {
		return writeSlice(*slice, outDir, filename(*slice))
	}); err != nil {
		return fmt.Errorf("composing output: %w", err)
	}

	if descPath == "" {
		descPath = filepath.Join(outDir, "spright.json")
	}
	if err := writeDescription(slices, filename, descPath); err != nil {
		return fmt.Errorf("writing description: %w", err)
	}

	if diag.HasWarnings() {
		diag.Fprint(os.Stderr)
	}
	return nil
}

func writeSlice(slice *spright.Slice, outDir, name string) error {
	canvas, err := spright.ComposeSlice(slice)
	if err != nil {
		return err
	}

	for _, output := range slice.Sheet.Outputs {
		img := spright.CloneImage(canvas)
		spright.ApplyOutputAlpha(img, output.Alpha, output.AlphaColor)
		img = spright.ApplyTransforms(img, output.Transforms, img)

		dst := filepath.Join(outDir, name)
		if output.Filename != "" {
			dst = filepath.Join(outDir, output.Filename)
		}
		if err := spright.SaveImage(dst, img); err != nil {
			return err
		}
	}
	return nil
}

func writeDescription(slices []*spright.Slice, filename func(*spright.Slice) string, path string) error {
	desc := spright.Describe(slices, filename)
	data, err := json.MarshalIndent(desc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func slicesForSheet(slices []*spright.Slice, sheet *spright.Sheet) []*spright.Slice {
	var out []*spright.Slice
	for _, s := range slices {
		if s.Sheet == sheet {
			out = append(out, s)
		}
	}
	return out
}
