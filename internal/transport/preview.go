package transport

import (
	"fmt"
	"io"

	"github.com/cwbudde/algo-vis/vis/matrix"
	"github.com/cwbudde/algo-vis/vis/quantize"
)

const (
	ansiInit  = "\x1b[?25l\x1b[2J"
	ansiHome  = "\x1b[H"
	ansiReset = "\x1b[?25h"
)

// PreviewOption configures a Preview sink.
type PreviewOption func(*Preview)

// WithPreviewColor enables ANSI color and cursor control. Disable when
// writing to a non-terminal.
func WithPreviewColor(color bool) PreviewOption {
	return func(p *Preview) {
		p.color = color
	}
}

// WithPreviewDecay sets the peak marker fall rate in levels per frame.
func WithPreviewDecay(decay float64) PreviewOption {
	return func(p *Preview) {
		p.decay = decay
	}
}

// Preview renders frames as a terminal bar display with falling peak
// markers, the local stand-in for the LED matrix.
type Preview struct {
	w     io.Writer
	color bool
	decay float64

	peaks   *quantize.PeakHold
	rows    []int
	started bool
}

// NewPreview creates a preview sink writing to w.
func NewPreview(w io.Writer, opts ...PreviewOption) *Preview {
	p := &Preview{
		w:     w,
		color: true,
		decay: 0.25,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	p.peaks = quantize.NewPeakHold(
		matrix.Width,
		quantize.WithDecay(p.decay),
		quantize.WithCeiling(matrix.Height-1),
	)

	return p
}

// WriteFrame advances the peak markers and redraws the matrix.
func (p *Preview) WriteFrame(levels []uint8) error {
	p.peaks.Update(levels)
	p.rows = p.peaks.Positions(p.rows)

	im, err := matrix.Compose(levels, p.rows)
	if err != nil {
		return err
	}

	if p.color {
		cmd := ansiHome
		if !p.started {
			cmd = ansiInit + ansiHome
		}

		if _, err := io.WriteString(p.w, cmd); err != nil {
			return fmt.Errorf("preview cursor: %w", err)
		}
	}

	p.started = true

	return im.RenderANSI(p.w, p.color)
}

// Close restores the terminal cursor.
func (p *Preview) Close() error {
	if !p.color || !p.started {
		return nil
	}

	if _, err := io.WriteString(p.w, ansiReset); err != nil {
		return fmt.Errorf("preview restore cursor: %w", err)
	}

	return nil
}
