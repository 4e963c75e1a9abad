// Command ambient-snapshot renders a preset offscreen for a number of frames
// and writes the last one as a PNG.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"

	"github.com/gekko3d/ambient"
	"github.com/gekko3d/ambient/rt/cli"
	"github.com/gekko3d/ambient/rt/raster"
)

func main() {
	cfg := cli.NewConfig()
	cfg.Width, cfg.Height = 640, 360
	cfg.Bind(flag.CommandLine)
	ticks := flag.Int("ticks", 120, "frames to run before capturing")
	out := flag.String("out", "ambient.png", "output PNG path")
	caption := flag.Bool("caption", true, "draw the preset name in the corner")
	dump := flag.Bool("dump-preset", false, "print the resolved preset as TOML and exit")
	flag.Parse()

	if err := run(cfg, *ticks, *out, *caption, *dump); err != nil {
		log.Fatal(err)
	}
}

func run(cfg *cli.Config, ticks int, out string, caption, dump bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	preset, err := cfg.LoadPreset()
	if err != nil {
		return err
	}
	if dump {
		return ambient.WritePreset(os.Stdout, preset)
	}
	logger := cfg.Logger("snapshot")

	var ropts []raster.Option
	ropts = append(ropts, raster.WithLogger(logger))
	if caption {
		ropts = append(ropts, raster.WithCaption(preset.Name))
	}
	img, err := snapshot(preset, cfg.Width, cfg.Height, ticks, raster.Factory(ropts...), cfg.Options(logger)...)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Infof("wrote %s after %d frames", out, ticks)
	return nil
}
