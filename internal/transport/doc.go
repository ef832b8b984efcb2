// Package transport delivers quantized matrix frames to their displays:
// the serial-attached LED matrix, a terminal preview, or both at once.
package transport
