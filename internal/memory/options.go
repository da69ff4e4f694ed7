package memory

import "log/slog"

// defaultCapacity sizes internal buffers when no capacity option is given.
const defaultCapacity = 64

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for debug output. The world adds its own
// id as the "world" attribute.
func WithLogger(logger *slog.Logger) Option {
	return func(w *World) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithCapacity sizes the sweep buffer and the resource table for about n
// entities. Worlds grow past it as needed.
func WithCapacity(n int) Option {
	return func(w *World) {
		if n > 0 {
			w.capacity = n
		}
	}
}
