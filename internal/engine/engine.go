package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-vis/internal/capture"
	"github.com/cwbudde/algo-vis/internal/transport"
	"github.com/cwbudde/algo-vis/vis/analyzer"
	"github.com/cwbudde/algo-vis/vis/frame"
	"github.com/cwbudde/algo-vis/vis/normalize"
	"github.com/cwbudde/algo-vis/vis/quantize"
	"github.com/cwbudde/algo-vis/vis/window"
)

// levelSteps is the quantizer resolution: 4-bit column levels.
const levelSteps = frame.MaxLevel + 1

// statsReporter is implemented by sinks that track wire throughput.
type statsReporter interface {
	Stats() (frames, bytes uint64)
}

// Engine wires an audio source through analysis, normalization, and
// quantization into a frame sink, paced to the display rate.
type Engine struct {
	cfg  Config
	src  capture.Source
	sink transport.Sink
	an   *analyzer.Analyzer
	hist *normalize.History
	log  *zap.Logger

	session string

	bands  []float64
	levels []uint8

	frames    uint64
	writeErrs uint64
}

// New builds an engine from a validated config.
func New(cfg Config, src capture.Source, sink transport.Sink, log *zap.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	winType, err := window.Parse(cfg.Window)
	if err != nil {
		return nil, err
	}

	an, err := analyzer.New(
		analyzer.WithSampleRate(src.SampleRate()),
		analyzer.WithFFTSize(cfg.FFTSize),
		analyzer.WithOverlap(cfg.Overlap),
		analyzer.WithSmoothing(cfg.Smoothing),
		analyzer.WithWindow(winType),
		analyzer.WithBands(frame.Columns),
	)
	if err != nil {
		return nil, err
	}

	session := uuid.NewString()

	return &Engine{
		cfg:     cfg,
		src:     src,
		sink:    sink,
		an:      an,
		hist:    normalize.NewHistory(normalize.WithLength(cfg.HistoryFrames)),
		log:     log.With(zap.String("session", session)),
		session: session,
		bands:   make([]float64, frame.Columns),
		levels:  make([]uint8, frame.Columns),
	}, nil
}

// Session returns the run's unique session ID.
func (e *Engine) Session() string {
	return e.session
}

// Frames returns the number of frames delivered to the sink so far.
func (e *Engine) Frames() uint64 {
	return e.frames
}

// Run drives the pipeline until ctx is cancelled or the source is
// exhausted, then closes the sink and source. Audio blocks are consumed as
// they arrive; display frames are emitted on the pacing clock, always from
// the most recent analysis state.
func (e *Engine) Run(ctx context.Context) error {
	e.log.Info("pipeline starting",
		zap.Float64("sample_rate", e.src.SampleRate()),
		zap.Int("fft_size", e.cfg.FFTSize),
		zap.Float64("overlap", e.cfg.Overlap),
		zap.String("window", e.cfg.Window),
		zap.Float64("fps", e.cfg.FPS),
	)

	blocks, err := e.src.Blocks(ctx)
	if err != nil {
		return multierr.Append(
			fmt.Errorf("engine start source: %w", err),
			e.shutdown(),
		)
	}

	pace := time.NewTicker(time.Duration(float64(time.Second) / e.cfg.FPS))
	defer pace.Stop()

	var statsC <-chan time.Time

	if e.cfg.StatsInterval > 0 {
		stats := time.NewTicker(e.cfg.StatsInterval)
		defer stats.Stop()

		statsC = stats.C
	}

	start := time.Now()

loop:
	for {
		select {
		case <-ctx.Done():
			break loop

		case block, ok := <-blocks:
			if !ok {
				// Source exhausted (end of file): emit what is left
				// and stop.
				e.emitFrame()

				break loop
			}

			e.an.Push(block)

		case <-pace.C:
			e.emitFrame()

		case <-statsC:
			e.logStats(start)
		}
	}

	e.logStats(start)
	e.log.Info("pipeline stopped", zap.Uint64("frames", e.frames))

	return e.shutdown()
}

func (e *Engine) emitFrame() {
	if !e.an.Ready() {
		return
	}

	e.bands = e.an.Bands(e.bands)
	e.hist.Normalize(e.bands)

	if err := quantize.Levels(e.levels, e.bands, levelSteps); err != nil {
		e.log.Error("quantize failed", zap.Error(err))
		return
	}

	if err := e.sink.WriteFrame(e.levels); err != nil {
		e.writeErrs++
		e.log.Warn("frame write failed", zap.Error(err))

		return
	}

	e.frames++
}

func (e *Engine) logStats(start time.Time) {
	elapsed := time.Since(start).Seconds()
	if elapsed <= 0 {
		return
	}

	fields := []zap.Field{
		zap.Uint64("frames", e.frames),
		zap.Float64("fps", float64(e.frames)/elapsed),
		zap.Uint64("analysis_frames", e.an.Frames()),
		zap.Uint64("dropped_blocks", e.src.Dropped()),
		zap.Uint64("write_errors", e.writeErrs),
	}

	if sr, ok := e.sink.(statsReporter); ok {
		wireFrames, wireBytes := sr.Stats()
		fields = append(fields,
			zap.Uint64("wire_frames", wireFrames),
			zap.Uint64("wire_bytes", wireBytes),
		)
	}

	e.log.Info("throughput", fields...)
}

func (e *Engine) shutdown() error {
	return multierr.Combine(e.sink.Close(), e.src.Close())
}
