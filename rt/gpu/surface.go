package gpu

import (
	"errors"
	"fmt"

	"github.com/gekko3d/ambient"
	"github.com/gekko3d/ambient/rt/core"

	"github.com/cogentcore/webgpu/wgpu"
)

var ErrReleased = errors.New("gpu: surface released")

type meshBuffers struct {
	vertex     *wgpu.Buffer
	index      *wgpu.Buffer
	indexCount uint32
	vertCount  uint32
}

type batchBuffers struct {
	instances *wgpu.Buffer
	capacity  int
	material  *wgpu.Buffer
	bindGroup *wgpu.BindGroup
	staging   []float32
}

// Surface draws scenes through WebGPU: one instanced draw call per batch,
// instance transforms re-uploaded only for dirty batches.
type Surface struct {
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
	Surface  *wgpu.Surface
	Config   *wgpu.SurfaceConfiguration

	pipelines  pipelines
	frameBuf   *wgpu.Buffer
	frameGroup *wgpu.BindGroup
	depthTex   *wgpu.Texture
	depthView  *wgpu.TextureView

	meshes  map[core.ResourceID]*meshBuffers
	batches map[core.ResourceID]*batchBuffers

	logger   ambient.Logger
	released bool
}

type Option func(*Surface)

func WithLogger(l ambient.Logger) Option {
	return func(s *Surface) { s.logger = l }
}

// New creates a surface for the platform window described by desc.
func New(desc *wgpu.SurfaceDescriptor, width, height int, opts ...Option) (*Surface, error) {
	s := &Surface{
		meshes:  make(map[core.ResourceID]*meshBuffers),
		batches: make(map[core.ResourceID]*batchBuffers),
		logger:  ambient.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.init(desc, width, height); err != nil {
		s.Release()
		return nil, err
	}
	return s, nil
}

func (s *Surface) init(desc *wgpu.SurfaceDescriptor, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("gpu: invalid size %dx%d", width, height)
	}
	s.Instance = wgpu.CreateInstance(nil)
	s.Surface = s.Instance.CreateSurface(desc)

	adapter, err := s.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: s.Surface,
		PowerPreference:   wgpu.PowerPreferenceLowPower,
	})
	if err != nil {
		return fmt.Errorf("request adapter: %w", err)
	}
	s.Adapter = adapter

	s.Device, err = adapter.RequestDevice(nil)
	if err != nil {
		return fmt.Errorf("request device: %w", err)
	}
	s.Queue = s.Device.GetQueue()

	caps := s.Surface.GetCapabilities(adapter)
	s.Config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	s.Surface.Configure(adapter, s.Device, s.Config)

	if s.pipelines, err = newPipelines(s.Device, s.Config.Format); err != nil {
		return err
	}

	s.frameBuf, err = s.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Frame Uniforms",
		Size:  frameSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	s.frameGroup, err = s.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Frame BG",
		Layout: s.pipelines.frameLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: s.frameBuf, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return err
	}

	if err := s.createDepth(width, height); err != nil {
		return err
	}
	s.logger.Infof("gpu surface %dx%d format %v", width, height, s.Config.Format)
	return nil
}

func (s *Surface) createDepth(width, height int) error {
	if s.depthView != nil {
		s.depthView.Release()
		s.depthView = nil
	}
	if s.depthTex != nil {
		s.depthTex.Release()
		s.depthTex = nil
	}
	tex, err := s.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        depthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return err
	}
	s.depthTex = tex
	s.depthView, err = tex.CreateView(nil)
	return err
}

func (s *Surface) Resize(width, height int) error {
	if s.released {
		return ErrReleased
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("gpu: invalid size %dx%d", width, height)
	}
	s.Config.Width = uint32(width)
	s.Config.Height = uint32(height)
	s.Surface.Configure(s.Adapter, s.Device, s.Config)
	return s.createDepth(width, height)
}

// ReleaseResource frees the buffers created for a mesh template or batch.
// Material ids own nothing on the GPU side.
func (s *Surface) ReleaseResource(id core.ResourceID) error {
	if m, ok := s.meshes[id]; ok {
		m.release()
		delete(s.meshes, id)
	}
	if b, ok := s.batches[id]; ok {
		b.release()
		delete(s.batches, id)
	}
	return nil
}

// Release drops every GPU object. It is safe to call more than once.
func (s *Surface) Release() error {
	if s.released {
		return nil
	}
	s.released = true
	for id, m := range s.meshes {
		m.release()
		delete(s.meshes, id)
	}
	for id, b := range s.batches {
		b.release()
		delete(s.batches, id)
	}
	if s.depthView != nil {
		s.depthView.Release()
	}
	if s.depthTex != nil {
		s.depthTex.Release()
	}
	if s.frameGroup != nil {
		s.frameGroup.Release()
	}
	if s.frameBuf != nil {
		s.frameBuf.Release()
	}
	s.pipelines.release()
	if s.Surface != nil {
		s.Surface.Release()
	}
	if s.Device != nil {
		s.Device.Release()
	}
	if s.Adapter != nil {
		s.Adapter.Release()
	}
	if s.Instance != nil {
		s.Instance.Release()
	}
	return nil
}

func (m *meshBuffers) release() {
	if m.vertex != nil {
		m.vertex.Release()
	}
	if m.index != nil {
		m.index.Release()
	}
}

func (b *batchBuffers) release() {
	if b.bindGroup != nil {
		b.bindGroup.Release()
	}
	if b.material != nil {
		b.material.Release()
	}
	if b.instances != nil {
		b.instances.Release()
	}
}
