// Package normalize adapts raw band amplitudes to the display range using a
// rolling min/max history. Quiet passages expand to fill the display and loud
// passages compress into it, without any fixed calibration.
package normalize

import "math"

const defaultHistoryLength = 128

// Option configures a History.
type Option func(*History)

// WithLength sets the number of recent frames tracked. Longer histories adapt
// more slowly to level changes.
func WithLength(frames int) Option {
	return func(h *History) {
		if frames > 0 {
			h.length = frames
		}
	}
}

// History tracks per-frame minimum and maximum band amplitudes in a circular
// buffer and rescales frames against the tracked range.
type History struct {
	length int
	minBuf []float64
	maxBuf []float64
	idx    int
	filled int
}

// NewHistory creates a History from the given options.
func NewHistory(opts ...Option) *History {
	h := &History{length: defaultHistoryLength}

	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}

	h.minBuf = make([]float64, h.length)
	h.maxBuf = make([]float64, h.length)

	return h
}

// Length returns the configured history length in frames.
func (h *History) Length() int {
	return h.length
}

// Filled returns the number of frames currently tracked.
func (h *History) Filled() int {
	return h.filled
}

// Range returns the min and max amplitude over the tracked history.
// Before any frame has been observed it returns (0, 0).
func (h *History) Range() (minAmp, maxAmp float64) {
	if h.filled == 0 {
		return 0, 0
	}

	minAmp = math.Inf(1)
	maxAmp = math.Inf(-1)

	for i := 0; i < h.filled; i++ {
		minAmp = math.Min(minAmp, h.minBuf[i])
		maxAmp = math.Max(maxAmp, h.maxBuf[i])
	}

	return minAmp, maxAmp
}

// Normalize records the frame's min/max in the history and rescales amps
// in-place into [0, 1] against the historical range. Degenerate zero-width
// ranges are widened so division stays defined. Empty frames are a no-op.
func (h *History) Normalize(amps []float64) {
	if len(amps) == 0 {
		return
	}

	curMin := amps[0]
	curMax := amps[0]

	for _, v := range amps[1:] {
		if v < curMin {
			curMin = v
		}

		if v > curMax {
			curMax = v
		}
	}

	h.minBuf[h.idx] = curMin
	h.maxBuf[h.idx] = curMax

	h.idx++
	if h.idx >= h.length {
		h.idx = 0
	}

	if h.filled < h.length {
		h.filled++
	}

	lo, hi := h.Range()
	if hi == lo {
		hi = lo + 1
	}

	invRange := 1 / (hi - lo)
	for i := range amps {
		amps[i] = clampUnit((amps[i] - lo) * invRange)
	}
}

// Reset clears the tracked history.
func (h *History) Reset() {
	h.idx = 0
	h.filled = 0
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}

	if v > 1 {
		return 1
	}

	return v
}
