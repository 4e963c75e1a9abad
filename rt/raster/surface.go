package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gekko3d/ambient"
	"github.com/gekko3d/ambient/rt/core"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrReleased = errors.New("raster: surface released")

// Surface renders a scene on the CPU into an RGBA image with a depth buffer.
// It backs headless snapshots, tests and hosts that blit images.
type Surface struct {
	img    *image.RGBA
	depth  []float32
	logger ambient.Logger

	// Caption is drawn in the lower left corner of every frame when set.
	Caption string

	matrices map[core.ResourceID][]mgl32.Mat4
	uploads  int
	frames   int
	released bool
}

type Option func(*Surface)

func WithLogger(l ambient.Logger) Option {
	return func(s *Surface) { s.logger = l }
}

func WithCaption(text string) Option {
	return func(s *Surface) { s.Caption = text }
}

func New(width, height int, opts ...Option) (*Surface, error) {
	s := &Surface{
		logger:   ambient.NewNopLogger(),
		matrices: make(map[core.ResourceID][]mgl32.Mat4),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Resize(width, height); err != nil {
		return nil, err
	}
	return s, nil
}

// Factory adapts New to the viewport's SurfaceFactory.
func Factory(opts ...Option) ambient.SurfaceFactory {
	return func(width, height int) (ambient.Surface, error) {
		s, err := New(width, height, opts...)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

func (s *Surface) Resize(width, height int) error {
	if s.released {
		return ErrReleased
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("raster: invalid size %dx%d", width, height)
	}
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	s.depth = make([]float32, width*height)
	s.logger.Debugf("raster surface %dx%d", width, height)
	return nil
}

// Image is the last presented frame. It is reused by the next Present.
func (s *Surface) Image() *image.RGBA { return s.img }

// Uploads counts how many times batch transforms were recomputed after being
// marked dirty.
func (s *Surface) Uploads() int { return s.uploads }

func (s *Surface) Frames() int { return s.frames }

func (s *Surface) Present(scene *core.Scene) error {
	if s.released {
		return ErrReleased
	}
	if scene == nil || scene.Disposed() {
		return errors.New("raster: scene is not live")
	}

	s.clear(scene.Background)
	cam := scene.Camera
	viewProj := cam.ViewProjection()
	lights := newLighting(scene.Lights)
	b := s.img.Bounds()
	frame := frame{
		img:      s.img,
		depth:    s.depth,
		width:    b.Dx(),
		height:   b.Dy(),
		viewProj: viewProj,
		eye:      cam.Position,
		fog:      scene.Fog,
		lights:   lights,
	}

	for _, batch := range scene.Batches {
		if batch.Released() || batch.Mesh == nil || batch.Mesh.Released() {
			continue
		}
		frame.drawBatch(batch, s.transforms(batch))
	}

	if s.Caption != "" {
		drawCaption(s.img, s.Caption)
	}
	s.frames++
	return nil
}

// transforms returns the cached instance matrices of batch, recomputing them
// only when the batch is dirty.
func (s *Surface) transforms(batch *core.RenderBatch) []mgl32.Mat4 {
	ms, ok := s.matrices[batch.ID]
	if ok && !batch.Dirty() && len(ms) == batch.Len() {
		return ms
	}
	if cap(ms) < batch.Len() {
		ms = make([]mgl32.Mat4, batch.Capacity())
	}
	ms = ms[:batch.Len()]
	for i := range ms {
		ms[i] = batch.Instances.Matrix(i)
	}
	s.matrices[batch.ID] = ms
	batch.ClearDirty()
	s.uploads++
	return ms
}

func (s *Surface) clear(bg [3]float32) {
	c := toRGBA(bg, 1)
	pix := s.img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
	}
	for i := range s.depth {
		s.depth[i] = math.MaxFloat32
	}
}

func (s *Surface) ReleaseResource(id core.ResourceID) error {
	delete(s.matrices, id)
	return nil
}

func (s *Surface) Release() error {
	if s.released {
		return nil
	}
	s.released = true
	s.img = nil
	s.depth = nil
	s.matrices = nil
	return nil
}

func toRGBA(c [3]float32, a float32) color.RGBA {
	return color.RGBA{
		R: channel(c[0]),
		G: channel(c[1]),
		B: channel(c[2]),
		A: channel(a),
	}
}

func channel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
