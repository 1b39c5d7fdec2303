package crt

// CompositorOption is a functional option used to configure a Compositor during construction.
type CompositorOption func(*compositor)

// WithParams sets the effect parameters for this compositor.
//
// Parameters:
//   - p: the effect parameters to use
//
// Returns:
//   - CompositorOption: a function that sets the parameters on a compositor
func WithParams(p Params) CompositorOption {
	return func(c *compositor) {
		c.params = p
	}
}

// WithFilter sets the sampling filter used when reading the scene buffer.
//
// Parameters:
//   - f: FilterNearest or FilterLinear
//
// Returns:
//   - CompositorOption: a function that sets the filter on a compositor
func WithFilter(f SampleFilter) CompositorOption {
	return func(c *compositor) {
		c.filter = f
	}
}

// WithWorkers sets the number of pool workers used to composite rows in
// parallel. Values below 1 are ignored.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - CompositorOption: a function that sets the worker count on a compositor
func WithWorkers(n int) CompositorOption {
	return func(c *compositor) {
		if n >= 1 {
			c.workers = n
		}
	}
}
