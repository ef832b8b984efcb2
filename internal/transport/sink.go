package transport

import "go.uber.org/multierr"

// Sink consumes quantized column levels, one frame at a time.
type Sink interface {
	// WriteFrame delivers one frame of column levels.
	WriteFrame(levels []uint8) error

	// Close flushes and releases the sink.
	Close() error
}

// Multi fans frames out to several sinks. A failing sink does not starve
// the others; errors are aggregated.
type Multi struct {
	sinks []Sink
}

// NewMulti combines the given sinks.
func NewMulti(sinks ...Sink) *Multi {
	return &Multi{sinks: sinks}
}

// WriteFrame delivers the frame to every sink and returns the combined
// errors.
func (m *Multi) WriteFrame(levels []uint8) error {
	var err error

	for _, s := range m.sinks {
		err = multierr.Append(err, s.WriteFrame(levels))
	}

	return err
}

// Close closes every sink and returns the combined errors.
func (m *Multi) Close() error {
	var err error

	for _, s := range m.sinks {
		err = multierr.Append(err, s.Close())
	}

	return err
}

// Stats sums wire statistics over the sinks that report them.
func (m *Multi) Stats() (frames, bytes uint64) {
	for _, s := range m.sinks {
		if sr, ok := s.(interface{ Stats() (uint64, uint64) }); ok {
			f, b := sr.Stats()
			frames += f
			bytes += b
		}
	}

	return frames, bytes
}
