// Package engine runs the capture-to-display pipeline: audio blocks are
// analyzed into band amplitudes, normalized against recent history,
// quantized to 4-bit column levels, and delivered to the configured sinks
// on a fixed display clock.
package engine
