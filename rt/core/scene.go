package core

// Scene owns its camera and batches for one mount cycle.
type Scene struct {
	Camera     *Camera
	Sway       CameraSway
	Lights     []Light
	Fog        Fog
	Background [3]float32
	Batches    []*RenderBatch

	disposed bool
}

func NewScene(camera *Camera) *Scene {
	return &Scene{
		Camera:  camera,
		Batches: []*RenderBatch{},
	}
}

func (s *Scene) AddBatch(b *RenderBatch) {
	s.Batches = append(s.Batches, b)
}

func (s *Scene) AddLight(l Light) {
	s.Lights = append(s.Lights, l)
}

// Batch returns the first batch with the given name, or nil.
func (s *Scene) Batch(name string) *RenderBatch {
	for _, b := range s.Batches {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// InstanceCount sums live instances over all batches.
func (s *Scene) InstanceCount() int {
	n := 0
	for _, b := range s.Batches {
		n += b.Len()
	}
	return n
}

// Resources lists every resource id the scene created: shared mesh templates
// and materials once each, then the batches themselves.
func (s *Scene) Resources() []ResourceID {
	seen := make(map[ResourceID]bool)
	var ids []ResourceID
	add := func(id ResourceID) {
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		ids = append(ids, id)
	}
	for _, b := range s.Batches {
		if b.Mesh != nil {
			add(b.Mesh.ID)
		}
		add(b.Material.ID)
	}
	for _, b := range s.Batches {
		add(b.ID)
	}
	return ids
}

func (s *Scene) Disposed() bool { return s.disposed }

// Dispose drops the scene's references to its mesh templates and marks every
// batch released. Template data is freed only once no other live batch uses
// it. Calling Dispose again is a no-op.
func (s *Scene) Dispose() {
	if s.disposed {
		return
	}
	for _, b := range s.Batches {
		if b.Mesh != nil {
			b.Mesh.release()
		}
		b.released = true
		b.dirty = false
	}
	s.disposed = true
}
