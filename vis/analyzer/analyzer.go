package analyzer

import (
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/algo-vis/vis/window"
)

// Analyzer converts a stream of time-domain samples into per-band amplitude
// frames using overlapped windowed FFTs.
//
// The analyzer is not safe for concurrent use; callers feeding it from
// multiple goroutines must synchronize externally.
type Analyzer struct {
	cfg      Config
	win      []float64
	winGain  float64
	plan     *algofft.Plan[complex128]
	hop      int
	binWidth int

	ring         []float64
	write        int
	filled       int
	samplesToHop int

	input  []complex128
	output []complex128
	re     []float64
	im     []float64
	mags   []float64
	bands  []float64

	ready  bool
	frames uint64
}

// New creates an analyzer from the given options.
func New(opts ...Option) (*Analyzer, error) {
	cfg := ApplyOptions(opts...)

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	win := window.Generate(cfg.Window, cfg.FFTSize, window.WithPeriodic())

	gain, err := window.CoherentGain(win)
	if err != nil {
		return nil, fmt.Errorf("analyzer window gain: %w", err)
	}

	plan, err := algofft.NewPlan64(cfg.FFTSize)
	if err != nil {
		return nil, fmt.Errorf("analyzer init fft plan: %w", err)
	}

	hop := int(math.Round(float64(cfg.FFTSize) * (1 - cfg.Overlap)))
	if hop < 1 {
		hop = 1
	}

	half := cfg.FFTSize / 2

	a := &Analyzer{
		cfg:      cfg,
		win:      win,
		winGain:  gain,
		plan:     plan,
		hop:      hop,
		binWidth: half / cfg.Bands,
		ring:     make([]float64, cfg.FFTSize),
		input:    make([]complex128, cfg.FFTSize),
		output:   make([]complex128, cfg.FFTSize),
		re:       make([]float64, half),
		im:       make([]float64, half),
		mags:     make([]float64, half),
		bands:    make([]float64, cfg.Bands),
	}

	return a, nil
}

func validateConfig(cfg Config) error {
	if cfg.SampleRate <= 0 {
		return fmt.Errorf("analyzer sample rate must be > 0: %f", cfg.SampleRate)
	}

	switch cfg.FFTSize {
	case 256, 512, 1024, 2048, 4096, 8192:
	default:
		return fmt.Errorf("analyzer fft size must be a power of two in 256..8192: %d", cfg.FFTSize)
	}

	if cfg.Bands < 1 || cfg.Bands > cfg.FFTSize/2 {
		return fmt.Errorf("analyzer bands must be in 1..%d: %d", cfg.FFTSize/2, cfg.Bands)
	}

	if cfg.FFTSize/2%cfg.Bands != 0 {
		return fmt.Errorf("analyzer bands must divide fft size / 2: %d bands for %d bins", cfg.Bands, cfg.FFTSize/2)
	}

	return nil
}

// Config returns the effective analyzer configuration.
func (a *Analyzer) Config() Config {
	return a.cfg
}

// HopSize returns the hop size in samples between successive frames.
func (a *Analyzer) HopSize() int {
	return a.hop
}

// BinHz returns the frequency resolution of a single FFT bin in Hz.
func (a *Analyzer) BinHz() float64 {
	return a.cfg.SampleRate / float64(a.cfg.FFTSize)
}

// Frames returns the number of analysis frames produced so far.
func (a *Analyzer) Frames() uint64 {
	return a.frames
}

// Ready reports whether at least one frame has been produced.
func (a *Analyzer) Ready() bool {
	return a.ready
}

// Push feeds a block of samples into the analyzer and reports the number of
// analysis frames produced by this block. Blocks of any length are accepted;
// short blocks accumulate until the ring has filled once.
func (a *Analyzer) Push(block []float64) int {
	produced := 0

	for _, s := range block {
		a.ring[a.write] = s

		a.write++
		if a.write >= a.cfg.FFTSize {
			a.write = 0
		}

		if a.filled < a.cfg.FFTSize {
			a.filled++
		}

		a.samplesToHop++
		if a.filled < a.cfg.FFTSize || a.samplesToHop < a.hop {
			continue
		}

		a.samplesToHop = 0
		a.analyzeFrame()
		produced++
	}

	return produced
}

// Bands copies the most recent per-band amplitudes into dst and returns it.
// If dst is too small a new slice is allocated. Before the first frame the
// bands are all zero.
func (a *Analyzer) Bands(dst []float64) []float64 {
	if cap(dst) < len(a.bands) {
		dst = make([]float64, len(a.bands))
	}

	dst = dst[:len(a.bands)]
	copy(dst, a.bands)

	return dst
}

// Reset clears the ring buffer, smoothing state, and frame counter.
func (a *Analyzer) Reset() {
	for i := range a.ring {
		a.ring[i] = 0
	}

	for i := range a.bands {
		a.bands[i] = 0
	}

	a.write = 0
	a.filled = 0
	a.samplesToHop = 0
	a.ready = false
	a.frames = 0
}

func (a *Analyzer) analyzeFrame() {
	const eps = 1e-12

	read := a.write
	for i := 0; i < a.cfg.FFTSize; i++ {
		s := a.ring[read]
		a.input[i] = complex(s*a.win[i], 0)

		read++
		if read >= a.cfg.FFTSize {
			read = 0
		}
	}

	if err := a.plan.Forward(a.output, a.input); err != nil {
		return
	}

	// Single-sided amplitude: interior bins carry the mirrored half too.
	norm := float64(a.cfg.FFTSize) * math.Max(a.winGain, eps)

	for k := range a.mags {
		a.re[k] = real(a.output[k])
		a.im[k] = imag(a.output[k])
	}

	vecmath.Magnitude(a.mags, a.re, a.im)

	invNorm := 1 / norm
	for k := range a.mags {
		a.mags[k] *= invNorm
		if k > 0 {
			a.mags[k] *= 2
		}
	}

	invWidth := 1 / float64(a.binWidth)
	for b := 0; b < a.cfg.Bands; b++ {
		sum := 0.0
		for j := 0; j < a.binWidth; j++ {
			sum += a.mags[b*a.binWidth+j]
		}

		val := sum * invWidth
		if a.ready && a.cfg.Smoothing > 0 {
			val = a.cfg.Smoothing*a.bands[b] + (1-a.cfg.Smoothing)*val
		}

		a.bands[b] = val
	}

	a.ready = true
	a.frames++
}
