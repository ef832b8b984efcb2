package quantize

const (
	defaultDecay   = 0.25
	defaultCeiling = 15
)

// PeakHoldOption configures a PeakHold.
type PeakHoldOption func(*PeakHold)

// WithDecay sets the marker fall rate in levels per update.
func WithDecay(decay float64) PeakHoldOption {
	return func(p *PeakHold) {
		if decay > 0 {
			p.decay = decay
		}
	}
}

// WithCeiling sets the highest row a marker may occupy.
func WithCeiling(ceiling int) PeakHoldOption {
	return func(p *PeakHold) {
		if ceiling >= 0 {
			p.ceiling = float64(ceiling)
		}
	}
}

// PeakHold tracks a falling peak marker per column. A marker jumps to sit
// just above the current level and otherwise decays linearly, the classic
// analyzer "dropoff" indicator.
type PeakHold struct {
	decay   float64
	ceiling float64
	pos     []float64
}

// NewPeakHold creates a tracker for the given number of columns.
func NewPeakHold(columns int, opts ...PeakHoldOption) *PeakHold {
	if columns < 0 {
		columns = 0
	}

	p := &PeakHold{
		decay:   defaultDecay,
		ceiling: defaultCeiling,
		pos:     make([]float64, columns),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	return p
}

// Update advances all markers by one step against the current column levels.
// len(levels) must match the column count; extra columns keep decaying.
func (p *PeakHold) Update(levels []uint8) {
	for i := range p.pos {
		next := p.pos[i] - p.decay

		if i < len(levels) {
			lifted := float64(levels[i]) + 0.5
			if lifted > next {
				next = lifted
			}
		}

		if next < 0 {
			next = 0
		}

		if next > p.ceiling {
			next = p.ceiling
		}

		p.pos[i] = next
	}
}

// Positions copies the current marker rows into dst and returns it.
// If dst is too small a new slice is allocated.
func (p *PeakHold) Positions(dst []int) []int {
	if cap(dst) < len(p.pos) {
		dst = make([]int, len(p.pos))
	}

	dst = dst[:len(p.pos)]
	for i, v := range p.pos {
		dst[i] = int(v)
	}

	return dst
}

// Reset drops all markers to zero.
func (p *PeakHold) Reset() {
	for i := range p.pos {
		p.pos[i] = 0
	}
}
