package core

import "github.com/google/uuid"

// ResourceID identifies a mesh template, material or batch so surfaces can
// key their GPU-side copies and release them on teardown.
type ResourceID string

func NewResourceID() ResourceID {
	return ResourceID(uuid.NewString())
}
