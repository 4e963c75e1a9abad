package core

type Material struct {
	ID           ResourceID
	BaseColor    [4]float32 // RGBA
	Emissive     [3]float32
	Roughness    float32
	FlatShading  bool
	VertexColors bool
	Transparent  bool
}

func NewMaterial(baseColor [4]float32) Material {
	return Material{
		ID:        NewResourceID(),
		BaseColor: baseColor,
		Roughness: 1.0,
	}
}

// Helper for default white
func DefaultMaterial() Material {
	return NewMaterial([4]float32{1, 1, 1, 1})
}
