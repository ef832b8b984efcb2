// Package matrix models the 32x16 LED matrix image built from column levels
// and peak markers, and renders it for display drivers and terminals.
package matrix

import (
	"fmt"
	"io"
	"strings"
)

const (
	// Width is the matrix width in columns.
	Width = 32

	// Height is the matrix height in rows.
	Height = 16
)

// Image is a composed matrix picture. Row 0 is the bottom row; bit c of a
// row word is column c.
type Image struct {
	bars  [Height]uint32
	peaks [Height]uint32
}

// Compose builds an image from column levels and optional peak marker rows.
// A level L lights the bottom L pixels of its column. peakRows may be nil;
// rows outside [0, Height) are ignored. len(levels) must be Width and
// peakRows, when present, must match.
func Compose(levels []uint8, peakRows []int) (Image, error) {
	var im Image

	if len(levels) != Width {
		return im, fmt.Errorf("matrix needs %d column levels: %d", Width, len(levels))
	}

	if peakRows != nil && len(peakRows) != Width {
		return im, fmt.Errorf("matrix needs %d peak rows: %d", Width, len(peakRows))
	}

	for c, lvl := range levels {
		h := int(lvl)
		if h > Height {
			h = Height
		}

		for r := 0; r < h; r++ {
			im.bars[r] |= 1 << c
		}
	}

	for c, r := range peakRows {
		if r >= 0 && r < Height {
			im.peaks[r] |= 1 << c
		}
	}

	return im, nil
}

// RowBits returns the combined bar and peak pixels of row r as a 32-bit
// word, bit c for column c. Out-of-range rows return 0.
func (im *Image) RowBits(r int) uint32 {
	if r < 0 || r >= Height {
		return 0
	}

	return im.bars[r] | im.peaks[r]
}

// Lit reports whether the pixel at column c, row r is lit.
func (im *Image) Lit(c, r int) bool {
	if c < 0 || c >= Width {
		return false
	}

	return im.RowBits(r)&(1<<c) != 0
}

// LitCount returns the total number of lit pixels.
func (im *Image) LitCount() int {
	n := 0
	for r := 0; r < Height; r++ {
		n += popcount(im.RowBits(r))
	}

	return n
}

const (
	ansiPeak  = "\x1b[35m"
	ansiReset = "\x1b[0m"
)

// RenderANSI writes the image to w as Height lines, top row first. Bars
// render as plain blocks, peak markers in magenta. color=false disables the
// escape sequences for non-terminal writers.
func (im *Image) RenderANSI(w io.Writer, color bool) error {
	var sb strings.Builder

	for r := Height - 1; r >= 0; r-- {
		for c := 0; c < Width; c++ {
			bit := uint32(1) << c

			switch {
			case im.peaks[r]&bit != 0 && color:
				sb.WriteString(ansiPeak)
				sb.WriteString("█")
				sb.WriteString(ansiReset)
			case im.peaks[r]&bit != 0 || im.bars[r]&bit != 0:
				sb.WriteString("█")
			default:
				sb.WriteByte(' ')
			}
		}

		sb.WriteByte('\n')
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("matrix render: %w", err)
	}

	return nil
}

func popcount(v uint32) int {
	n := 0
	for v != 0 {
		v &= v - 1
		n++
	}

	return n
}
