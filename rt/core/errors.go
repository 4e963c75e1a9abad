package core

import "errors"

var ErrBatchFull = errors.New("render batch is at capacity")
