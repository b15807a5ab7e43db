package resp

// DefaultMaxDepth bounds array nesting for both parsing and serialization
const DefaultMaxDepth = 512

type options struct {
	maxDepth int
}

// Option tunes Parse, Serialize and Encoder
type Option func(*options)

// WithMaxDepth sets how many arrays may be nested inside each other. Values below 1 keep the default
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
