package geom

import (
	"github.com/gekko3d/ambient/rt/core"
)

type cacheKey struct {
	kind   ShapeKind
	params Params
}

// Cache hands out one template per (kind, params) pair so batches with the
// same shape share geometry. A template released by a disposed scene is
// rebuilt on the next Get. Not safe for concurrent use.
type Cache struct {
	templates map[cacheKey]*core.MeshTemplate
	builds    int
}

func NewCache() *Cache {
	return &Cache{templates: make(map[cacheKey]*core.MeshTemplate)}
}

func (c *Cache) Get(kind ShapeKind, p Params) (*core.MeshTemplate, error) {
	key := cacheKey{kind: kind, params: p}
	if m, ok := c.templates[key]; ok && !m.Released() {
		return m, nil
	}
	m, err := Build(kind, p)
	if err != nil {
		return nil, err
	}
	c.templates[key] = m
	c.builds++
	return m, nil
}

// Builds is the number of templates actually synthesized.
func (c *Cache) Builds() int { return c.builds }

func (c *Cache) Len() int { return len(c.templates) }
