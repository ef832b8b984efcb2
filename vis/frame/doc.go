// Package frame implements the serial wire codec for matrix frames.
//
// A frame carries 32 column levels of 4 bits each, the 128-bit payload the
// display protocol is built around. On the wire a frame is 19 bytes:
//
//	offset 0   sync byte 0xA5
//	offset 1   sequence number, wraps mod 256
//	offset 2   16 payload bytes, two columns per byte, even column in the
//	           high nibble
//	offset 18  CRC-8 (poly 0x31, init 0x00) over sequence and payload
//
// The decoder is incremental and resynchronizing: it scans for the sync
// byte, drops bytes that do not checksum to a valid frame, and reports both
// skipped bytes and frames missed across sequence gaps. It therefore
// recovers from truncated or corrupted input without ever misdecoding a
// damaged frame as valid column data.
package frame
