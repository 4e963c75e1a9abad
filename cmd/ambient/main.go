package main

import (
	"flag"
	"log"
	"runtime"

	"github.com/gekko3d/ambient/rt/app"
	"github.com/gekko3d/ambient/rt/cli"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	cfg := cli.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	preset, err := cfg.LoadPreset()
	if err != nil {
		log.Fatal(err)
	}
	logger := cfg.Logger("ambient")

	if err := glfw.Init(); err != nil {
		log.Fatal(err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, "ambient - "+preset.Name, nil, nil)
	if err != nil {
		log.Fatal(err)
	}
	defer window.Destroy()

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	application := app.NewApp(window, preset, logger, cfg.Options(logger)...)
	application.DebugMode = cfg.Debug
	if err := application.Init(); err != nil {
		log.Fatal(err)
	}
	application.Run()
}
