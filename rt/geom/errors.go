package geom

import "errors"

var (
	ErrInvalidShapeKind = errors.New("invalid shape kind")
	ErrInvalidParameter = errors.New("invalid shape parameter")
)
