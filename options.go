package ambient

import "github.com/gekko3d/ambient/rt/geom"

type options struct {
	logger Logger
	cache  *geom.Cache
	step   float32
}

// Option configures Compose and NewViewport.
type Option func(*options)

func WithLogger(l Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithTemplateCache shares mesh templates across compositions.
func WithTemplateCache(c *geom.Cache) Option {
	return func(o *options) { o.cache = c }
}

// WithStep overrides the preset's animation step in seconds per tick.
func WithStep(step float32) Option {
	return func(o *options) { o.step = step }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	o.logger = loggerOrNop(o.logger)
	if o.cache == nil {
		o.cache = geom.NewCache()
	}
	return o
}
