// Package quantize maps normalized band amplitudes to discrete display
// levels and tracks slowly decaying per-column peak markers.
package quantize

import "fmt"

// Levels quantizes normalized amplitudes in [0, 1] into integer levels
// 0..steps-1 written to dst. Inputs outside the unit range are clamped.
// dst and amps must have the same length.
func Levels(dst []uint8, amps []float64, steps int) error {
	if len(dst) != len(amps) {
		return fmt.Errorf("quantize length mismatch: %d != %d", len(dst), len(amps))
	}

	if steps < 2 || steps > 256 {
		return fmt.Errorf("quantize steps must be in 2..256: %d", steps)
	}

	top := uint8(steps - 1)
	scale := float64(steps)

	for i, a := range amps {
		if a <= 0 {
			dst[i] = 0
			continue
		}

		if a >= 1 {
			dst[i] = top
			continue
		}

		q := uint8(a * scale)
		if q > top {
			q = top
		}

		dst[i] = q
	}

	return nil
}
