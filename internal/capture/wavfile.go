package capture

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/mjibson/go-dsp/wav"
)

// WAVOption configures a WAV source.
type WAVOption func(*WAV)

// WithWAVBlockSize sets the replay block size in samples.
func WithWAVBlockSize(size int) WAVOption {
	return func(w *WAV) {
		if size > 0 {
			w.blockSize = size
		}
	}
}

// WithWAVRealTime paces replay to the file's own duration instead of
// delivering blocks as fast as the consumer takes them.
func WithWAVRealTime() WAVOption {
	return func(w *WAV) {
		w.realTime = true
	}
}

// WAV replays a RIFF/WAVE file as mono blocks, downmixing multi-channel
// audio by averaging.
type WAV struct {
	blockSize int
	realTime  bool

	decoder *wav.Wav
	closer  io.Closer
	out     chan []float64
	drops   atomic.Uint64
}

// NewWAVFile opens a WAV file from disk.
func NewWAVFile(path string, opts ...WAVOption) (*WAV, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("capture open wav: %w", err)
	}

	w, err := NewWAVReader(f, opts...)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	w.closer = f

	return w, nil
}

// NewWAVReader reads WAV data from r.
func NewWAVReader(r io.Reader, opts ...WAVOption) (*WAV, error) {
	decoder, err := wav.New(r)
	if err != nil {
		return nil, fmt.Errorf("capture parse wav: %w", err)
	}

	if decoder.NumChannels == 0 || decoder.SampleRate == 0 {
		return nil, fmt.Errorf("capture wav header: %d channels at %d Hz", decoder.NumChannels, decoder.SampleRate)
	}

	w := &WAV{
		blockSize: 512,
		decoder:   decoder,
		out:       make(chan []float64, 2),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}

	return w, nil
}

// SampleRate returns the file sample rate in Hz.
func (w *WAV) SampleRate() float64 {
	return float64(w.decoder.SampleRate)
}

// Dropped reports blocks discarded because the consumer lagged.
func (w *WAV) Dropped() uint64 {
	return w.drops.Load()
}

// Blocks starts replay and returns the block channel. The channel is
// closed at end of file or when ctx is cancelled.
func (w *WAV) Blocks(ctx context.Context) (<-chan []float64, error) {
	go w.replay(ctx)

	return w.out, nil
}

func (w *WAV) replay(ctx context.Context) {
	defer close(w.out)

	channels := int(w.decoder.NumChannels)

	var ticker *time.Ticker
	if w.realTime {
		interval := time.Duration(float64(w.blockSize) / w.SampleRate() * float64(time.Second))
		ticker = time.NewTicker(interval)

		defer ticker.Stop()
	}

	for {
		raw, err := w.decoder.ReadFloats(w.blockSize * channels)
		if len(raw) > 0 {
			block := downmix(raw, channels)

			if w.realTime {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
				}

				offer(w.out, block, &w.drops)
			} else {
				select {
				case <-ctx.Done():
					return
				case w.out <- block:
				}
			}
		}

		if err != nil {
			return
		}

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

// downmix averages interleaved channels into a mono block.
func downmix(raw []float32, channels int) []float64 {
	if channels == 1 {
		block := make([]float64, len(raw))
		for i, s := range raw {
			block[i] = float64(s)
		}

		return block
	}

	frames := len(raw) / channels
	block := make([]float64, frames)
	inv := 1 / float64(channels)

	for i := 0; i < frames; i++ {
		sum := 0.0
		for ch := 0; ch < channels; ch++ {
			sum += float64(raw[i*channels+ch])
		}

		block[i] = sum * inv
	}

	return block
}

// Close releases the underlying file, if any.
func (w *WAV) Close() error {
	if w.closer == nil {
		return nil
	}

	if err := w.closer.Close(); err != nil {
		return fmt.Errorf("capture close wav: %w", err)
	}

	return nil
}
