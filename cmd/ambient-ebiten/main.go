//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"github.com/gekko3d/ambient/rt/cli"
	"github.com/gekko3d/ambient/rt/ebitenhost"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := cli.NewConfig()
	cfg.Bind(flag.CommandLine)
	scale := flag.Int("scale", 2, "render at the window size divided by scale")
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	preset, err := cfg.LoadPreset()
	if err != nil {
		log.Fatal(err)
	}
	logger := cfg.Logger("ambient")
	game := ebitenhost.New(preset, *scale, logger, cfg.Options(logger)...)

	ebiten.SetWindowTitle("ambient - " + preset.Name)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
	game.Viewport().Dispose()
}
