package gpu

import (
	"errors"
	"fmt"

	"github.com/gekko3d/ambient/rt/core"

	"github.com/cogentcore/webgpu/wgpu"
)

// Present uploads what changed since the last frame and draws scene.
// Opaque batches are drawn first, then transparent ones without depth writes.
func (s *Surface) Present(scene *core.Scene) error {
	if s.released {
		return ErrReleased
	}
	if scene == nil || scene.Disposed() {
		return errors.New("gpu: scene is not live")
	}

	frame := packFrame(scene)
	if err := s.Queue.WriteBuffer(s.frameBuf, 0, floatBytes(frame[:])); err != nil {
		return err
	}

	var opaque, transparent []*core.RenderBatch
	for _, b := range scene.Batches {
		if b.Released() || b.Len() == 0 || b.Mesh == nil {
			continue
		}
		if err := s.upload(b); err != nil {
			return fmt.Errorf("upload %q: %w", b.Name, err)
		}
		if b.Material.Transparent {
			transparent = append(transparent, b)
		} else {
			opaque = append(opaque, b)
		}
	}

	texture, err := s.Surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	defer texture.Release()
	view, err := texture.CreateView(nil)
	if err != nil {
		return err
	}
	defer view.Release()

	encoder, err := s.Device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	bg := scene.Background
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: float64(bg[0]), G: float64(bg[1]), B: float64(bg[2]), A: 1},
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            s.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})
	pass.SetBindGroup(0, s.frameGroup, nil)
	for _, b := range opaque {
		s.draw(pass, b, false)
	}
	for _, b := range transparent {
		s.draw(pass, b, true)
	}
	if err := pass.End(); err != nil {
		return err
	}

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	defer cmd.Release()
	s.Queue.Submit(cmd)
	s.Surface.Present()
	return nil
}

func (s *Surface) draw(pass *wgpu.RenderPassEncoder, b *core.RenderBatch, transparent bool) {
	mesh := s.meshes[b.Mesh.ID]
	bb := s.batches[b.ID]
	count := uint32(b.Len())

	pass.SetBindGroup(1, bb.bindGroup, nil)
	pass.SetVertexBuffer(0, mesh.vertex, 0, wgpu.WholeSize)
	pass.SetVertexBuffer(1, bb.instances, 0, wgpu.WholeSize)
	if mesh.index == nil {
		pass.SetPipeline(s.pipelines.points)
		pass.Draw(mesh.vertCount, count, 0, 0)
		return
	}
	if transparent {
		pass.SetPipeline(s.pipelines.transparent)
	} else {
		pass.SetPipeline(s.pipelines.opaque)
	}
	pass.SetIndexBuffer(mesh.index, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	pass.DrawIndexed(mesh.indexCount, count, 0, 0, 0)
}

// upload creates buffers on first sight of a mesh or batch and rewrites the
// instance buffer when the batch is dirty.
func (s *Surface) upload(b *core.RenderBatch) error {
	if _, ok := s.meshes[b.Mesh.ID]; !ok {
		mb, err := s.createMesh(b.Mesh)
		if err != nil {
			return err
		}
		s.meshes[b.Mesh.ID] = mb
	}

	bb, ok := s.batches[b.ID]
	if !ok {
		var err error
		if bb, err = s.createBatch(b); err != nil {
			return err
		}
		s.batches[b.ID] = bb
	}
	if !b.Dirty() {
		return nil
	}
	n := packInstances(b, bb.staging)
	if err := s.Queue.WriteBuffer(bb.instances, 0, floatBytes(bb.staging[:n])); err != nil {
		return err
	}
	b.ClearDirty()
	return nil
}

func (s *Surface) createMesh(m *core.MeshTemplate) (*meshBuffers, error) {
	if m.Released() || m.NumVertex() == 0 {
		return nil, fmt.Errorf("mesh %s has no vertex data", m.ID)
	}
	verts := packVertices(m)
	mb := &meshBuffers{vertCount: uint32(m.NumVertex())}
	var err error
	mb.vertex, err = s.buffer(m.Kind+" Vertex Buffer", floatBytes(verts), wgpu.BufferUsageVertex)
	if err != nil {
		return nil, err
	}
	if m.NumIndex() > 0 {
		mb.index, err = s.buffer(m.Kind+" Index Buffer", indexBytes(m.Indices), wgpu.BufferUsageIndex)
		if err != nil {
			mb.release()
			return nil, err
		}
		mb.indexCount = uint32(m.NumIndex())
	}
	return mb, nil
}

// buffer creates a buffer sized for data and fills it.
func (s *Surface) buffer(label string, data []byte, usage wgpu.BufferUsage) (*wgpu.Buffer, error) {
	buf, err := s.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	if err := s.Queue.WriteBuffer(buf, 0, data); err != nil {
		buf.Release()
		return nil, err
	}
	return buf, nil
}

func (s *Surface) createBatch(b *core.RenderBatch) (*batchBuffers, error) {
	bb := &batchBuffers{
		capacity: b.Capacity(),
		staging:  make([]float32, b.Capacity()*instanceFloats),
	}
	var err error
	bb.instances, err = s.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: b.Name + " Instance Buffer",
		Size:  uint64(b.Capacity() * instanceStride),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}

	mat := packMaterial(b.Material)
	bb.material, err = s.buffer(b.Name+" Material", floatBytes(mat[:]), wgpu.BufferUsageUniform)
	if err != nil {
		bb.release()
		return nil, err
	}

	bb.bindGroup, err = s.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  b.Name + " Material BG",
		Layout: s.pipelines.matLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: bb.material, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		bb.release()
		return nil, err
	}
	return bb, nil
}
