package capture

import (
	"context"
	"sync/atomic"
)

// Source delivers mono sample blocks for analysis.
type Source interface {
	// SampleRate returns the source sample rate in Hz.
	SampleRate() float64

	// Blocks starts delivery and returns the block channel. The channel
	// is closed when the source is exhausted or ctx is cancelled. Blocks
	// must be called at most once.
	Blocks(ctx context.Context) (<-chan []float64, error)

	// Dropped reports blocks discarded because the consumer lagged.
	Dropped() uint64

	// Close releases the underlying device or file.
	Close() error
}

// offer delivers b on ch without blocking on a slow consumer: when the
// channel is full the oldest pending block is discarded first, so the
// consumer always sees the most recent audio.
func offer(ch chan []float64, b []float64, drops *atomic.Uint64) {
	for {
		select {
		case ch <- b:
			return
		default:
		}

		select {
		case <-ch:
			drops.Add(1)
		default:
		}
	}
}
