//go:build ebiten

package ebitenhost

import (
	"errors"

	"github.com/gekko3d/ambient"
	"github.com/gekko3d/ambient/rt/raster"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a viewport to the ebiten.Game interface. The ebiten window is
// the container and every Update is one display refresh.
type Game struct {
	viewport *ambient.Viewport
	frames   *ambient.FrameQueue
	logger   ambient.Logger

	listeners ambient.ResizeListeners
	surface   *raster.Surface
	width     int
	height    int
	scale     int
	mounted   bool
}

// New constructs a Game for preset. The scene is rendered at the window size
// divided by scale.
func New(preset ambient.Preset, scale int, logger ambient.Logger, opts ...ambient.Option) *Game {
	if scale < 1 {
		scale = 1
	}
	if logger == nil {
		logger = ambient.NewNopLogger()
	}
	g := &Game{
		frames: ambient.NewFrameQueue(),
		logger: logger,
		scale:  scale,
	}
	factory := raster.Factory(raster.WithLogger(logger), raster.WithCaption(preset.Name))
	opts = append([]ambient.Option{ambient.WithLogger(logger)}, opts...)
	g.viewport = ambient.NewViewport(preset, g, g.frames, factory, opts...)
	return g
}

func (g *Game) Viewport() *ambient.Viewport { return g.viewport }

func (g *Game) Size() (width, height int) { return g.width, g.height }

func (g *Game) Attach(s ambient.Surface) {
	if r, ok := s.(*raster.Surface); ok {
		g.surface = r
	}
}

func (g *Game) Detach(s ambient.Surface) {
	if r, ok := s.(*raster.Surface); ok && r == g.surface {
		g.surface = nil
	}
}

func (g *Game) OnResize(fn func(width, height int)) (remove func()) {
	return g.listeners.Add(fn)
}

// Update mounts the viewport on the first call and then runs one frame.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.viewport.Dispose()
		return ebiten.Termination
	}
	if !g.mounted {
		g.mounted = true
		if err := g.viewport.Mount(); err != nil && !errors.Is(err, ambient.ErrDegenerateViewport) {
			return err
		}
	}
	g.frames.RunFrame()
	return nil
}

// Draw copies the last rendered image to the screen.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.surface == nil {
		return
	}
	img := g.surface.Image()
	if img.Bounds() != screen.Bounds() {
		return
	}
	screen.WritePixels(img.Pix)
}

// Layout follows the window size and forwards changes to the viewport.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := outsideWidth/g.scale, outsideHeight/g.scale
	if w != g.width || h != g.height {
		g.width, g.height = w, h
		g.listeners.Notify(w, h)
	}
	return w, h
}
