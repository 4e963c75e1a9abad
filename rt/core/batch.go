package core

import (
	"fmt"
)

// RenderBatch is one mesh template drawn for every instance in its arena.
type RenderBatch struct {
	ID        ResourceID
	Name      string
	Mesh      *MeshTemplate
	Material  Material
	Motion    Motion
	Instances *InstanceArena

	dirty      bool
	dirtyCount uint64
	released   bool
}

// NewRenderBatch takes a reference on mesh that is dropped when the owning
// scene is disposed.
func NewRenderBatch(name string, mesh *MeshTemplate, material Material, capacity int) *RenderBatch {
	if mesh != nil {
		mesh.retain()
	}
	return &RenderBatch{
		ID:        NewResourceID(),
		Name:      name,
		Mesh:      mesh,
		Material:  material,
		Instances: NewInstanceArena(capacity),
		// freshly spawned instances still need their first upload
		dirty: true,
	}
}

// Bind copies records into the batch. Records beyond capacity are rejected
// with ErrBatchFull and nothing past the limit is written.
func (b *RenderBatch) Bind(records []InstanceRecord) error {
	for i, rec := range records {
		if _, err := b.Instances.Add(rec); err != nil {
			return fmt.Errorf("batch %q: record %d of %d: %w", b.Name, i, len(records), err)
		}
	}
	b.MarkDirty()
	return nil
}

func (b *RenderBatch) Len() int      { return b.Instances.Len() }
func (b *RenderBatch) Capacity() int { return b.Instances.Cap() }

// MarkDirty flags the instance buffer for re-upload before the next draw.
func (b *RenderBatch) MarkDirty() {
	b.dirty = true
	b.dirtyCount++
}

func (b *RenderBatch) Dirty() bool { return b.dirty }

// DirtyCount is the number of times the batch has been marked dirty.
func (b *RenderBatch) DirtyCount() uint64 { return b.dirtyCount }

// ClearDirty is called by a surface once it has uploaded the transforms.
func (b *RenderBatch) ClearDirty() { b.dirty = false }

func (b *RenderBatch) Released() bool { return b.released }

// WriteMatrices packs every live instance matrix into dst (16 floats each,
// column-major) and returns the number of floats written. dst must hold at
// least Len()*16 floats.
func (b *RenderBatch) WriteMatrices(dst []float32) int {
	n := b.Instances.Len()
	for i := 0; i < n; i++ {
		m := b.Instances.Matrix(i)
		copy(dst[i*16:i*16+16], m[:])
	}
	return n * 16
}
