package capture

import (
	"context"
	"math"
	"math/rand"
	"sync/atomic"
	"time"
)

// SynthOption configures a Synth source.
type SynthOption func(*Synth)

// WithSynthSampleRate sets the generated sample rate in Hz.
func WithSynthSampleRate(rate float64) SynthOption {
	return func(s *Synth) {
		if rate > 0 {
			s.sampleRate = rate
		}
	}
}

// WithSynthBlockSize sets the generated block size in samples.
func WithSynthBlockSize(size int) SynthOption {
	return func(s *Synth) {
		if size > 0 {
			s.blockSize = size
		}
	}
}

// WithSynthRealTime paces generation to the sample clock. Without it blocks
// are produced as fast as the consumer takes them.
func WithSynthRealTime() SynthOption {
	return func(s *Synth) {
		s.realTime = true
	}
}

// WithSynthSeed sets the noise seed.
func WithSynthSeed(seed int64) SynthOption {
	return func(s *Synth) {
		s.seed = seed
	}
}

// Synth generates a deterministic test signal: a logarithmic sine sweep
// from sweepLo to sweepHi looping every sweepPeriod, over a low noise
// floor. Useful for demo runs without a microphone.
type Synth struct {
	sampleRate float64
	blockSize  int
	realTime   bool
	seed       int64

	out   chan []float64
	drops atomic.Uint64
}

const (
	sweepLo     = 100.0
	sweepHi     = 8000.0
	sweepPeriod = 10.0 // seconds per sweep loop
	sweepAmp    = 0.6
	noiseAmp    = 0.02
)

// NewSynth creates a synthetic source.
func NewSynth(opts ...SynthOption) *Synth {
	s := &Synth{
		sampleRate: 44100,
		blockSize:  512,
		seed:       1,
		out:        make(chan []float64, 2),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

// SampleRate returns the generated sample rate in Hz.
func (s *Synth) SampleRate() float64 {
	return s.sampleRate
}

// Dropped reports blocks discarded because the consumer lagged.
func (s *Synth) Dropped() uint64 {
	return s.drops.Load()
}

// Blocks starts generation and returns the block channel. The channel is
// closed when ctx is cancelled.
func (s *Synth) Blocks(ctx context.Context) (<-chan []float64, error) {
	go s.generate(ctx)

	return s.out, nil
}

func (s *Synth) generate(ctx context.Context) {
	defer close(s.out)

	rng := rand.New(rand.NewSource(s.seed))
	ratio := math.Log(sweepHi / sweepLo)
	phase := 0.0
	n := 0

	var ticker *time.Ticker
	if s.realTime {
		interval := time.Duration(float64(s.blockSize) / s.sampleRate * float64(time.Second))
		ticker = time.NewTicker(interval)

		defer ticker.Stop()
	}

	for {
		block := make([]float64, s.blockSize)
		for i := range block {
			t := math.Mod(float64(n)/s.sampleRate, sweepPeriod) / sweepPeriod
			freq := sweepLo * math.Exp(ratio*t)

			phase += 2 * math.Pi * freq / s.sampleRate
			if phase > 2*math.Pi {
				phase -= 2 * math.Pi
			}

			block[i] = sweepAmp*math.Sin(phase) + noiseAmp*(rng.Float64()*2-1)
			n++
		}

		if s.realTime {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			offer(s.out, block, &s.drops)
		} else {
			select {
			case <-ctx.Done():
				return
			case s.out <- block:
			}
		}
	}
}

// Close is a no-op; the generator holds no resources.
func (s *Synth) Close() error {
	return nil
}
