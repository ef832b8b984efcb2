package frame

import (
	"fmt"
	"io"
	"time"
)

const (
	// Sync marks the start of every encoded frame.
	Sync = 0xA5

	// Columns is the number of matrix columns carried per frame.
	Columns = 32

	// MaxLevel is the largest encodable column level (4 bits).
	MaxLevel = 15

	// PayloadBytes is the packed payload size: two columns per byte.
	PayloadBytes = Columns / 2

	// EncodedSize is the on-wire frame size: sync, sequence, payload, CRC.
	EncodedSize = 2 + PayloadBytes + 1
)

// Frame is a decoded matrix frame.
type Frame struct {
	Seq    uint8
	Levels [Columns]uint8
}

// Encoder packs column levels into wire frames with a running sequence
// number.
type Encoder struct {
	seq uint8
}

// NewEncoder returns an encoder starting at sequence 0.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Seq returns the sequence number the next frame will carry.
func (e *Encoder) Seq() uint8 {
	return e.seq
}

// AppendEncode appends one encoded frame for the given column levels to dst
// and returns the extended slice. It fails if the level count or any level
// is out of range, leaving dst unchanged.
func (e *Encoder) AppendEncode(dst []byte, levels []uint8) ([]byte, error) {
	if len(levels) != Columns {
		return dst, fmt.Errorf("frame needs %d column levels: %d", Columns, len(levels))
	}

	for i, lvl := range levels {
		if lvl > MaxLevel {
			return dst, fmt.Errorf("column %d: %w: %d", i, ErrLevelRange, lvl)
		}
	}

	start := len(dst)
	dst = append(dst, Sync, e.seq)

	for i := 0; i < Columns; i += 2 {
		dst = append(dst, levels[i]<<4|levels[i+1])
	}

	dst = append(dst, crc8(dst[start+1:start+2+PayloadBytes]))
	e.seq++

	return dst, nil
}

// EncodeTo encodes one frame and writes it to w, returning the byte count
// written.
func (e *Encoder) EncodeTo(w io.Writer, levels []uint8) (int, error) {
	buf, err := e.AppendEncode(make([]byte, 0, EncodedSize), levels)
	if err != nil {
		return 0, err
	}

	n, err := w.Write(buf)
	if err != nil {
		return n, fmt.Errorf("frame write: %w", err)
	}

	return n, nil
}

// Decoder incrementally decodes frames from arbitrary byte chunks.
type Decoder struct {
	buf      []byte
	seqValid bool
	lastSeq  uint8
	skipped  uint64
	missed   uint64
}

// NewDecoder returns a decoder with empty state.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// SkippedBytes returns the number of bytes discarded while resynchronizing.
func (d *Decoder) SkippedBytes() uint64 {
	return d.skipped
}

// MissedFrames returns the number of frames lost across sequence gaps.
func (d *Decoder) MissedFrames() uint64 {
	return d.missed
}

// Feed appends p to the decode buffer and returns all complete, valid
// frames found. Bytes that do not form a valid frame are skipped one at a
// time until the stream resynchronizes on the next sync byte.
func (d *Decoder) Feed(p []byte) []Frame {
	d.buf = append(d.buf, p...)

	var out []Frame

	for {
		// Drop leading garbage up to the next sync byte.
		i := 0
		for i < len(d.buf) && d.buf[i] != Sync {
			i++
		}

		if i > 0 {
			d.skipped += uint64(i)
			d.buf = d.buf[i:]
		}

		if len(d.buf) < EncodedSize {
			break
		}

		if crc8(d.buf[1:2+PayloadBytes]) != d.buf[EncodedSize-1] {
			// A sync byte that does not start a valid frame: skip it
			// and rescan, in case the real frame starts inside.
			d.skipped++
			d.buf = d.buf[1:]

			continue
		}

		f := Frame{Seq: d.buf[1]}
		for i := 0; i < PayloadBytes; i++ {
			b := d.buf[2+i]
			f.Levels[2*i] = b >> 4
			f.Levels[2*i+1] = b & 0x0F
		}

		if d.seqValid {
			if gap := f.Seq - d.lastSeq - 1; gap != 0 {
				d.missed += uint64(gap)
			}
		}

		d.lastSeq = f.Seq
		d.seqValid = true

		out = append(out, f)
		d.buf = d.buf[EncodedSize:]
	}

	// Keep the tail compact so a slow stream does not pin large buffers.
	if len(d.buf) > 0 && cap(d.buf) > 4*EncodedSize {
		d.buf = append(make([]byte, 0, EncodedSize), d.buf...)
	}

	return out
}

// WireDuration returns the time one encoded frame occupies on an 8N1 serial
// link at the given baud rate.
func WireDuration(baud int) (time.Duration, error) {
	if baud <= 0 {
		return 0, fmt.Errorf("baud rate must be > 0: %d", baud)
	}

	bits := EncodedSize * 10 // start bit, 8 data bits, stop bit

	return time.Duration(float64(bits) / float64(baud) * float64(time.Second)), nil
}

// MaxFrameRate returns the highest sustainable frame rate on an 8N1 serial
// link at the given baud rate.
func MaxFrameRate(baud int) (float64, error) {
	d, err := WireDuration(baud)
	if err != nil {
		return 0, err
	}

	return float64(time.Second) / float64(d), nil
}

// crc8 computes CRC-8 with polynomial 0x31 and zero init, MSB first.
func crc8(data []byte) byte {
	var crc byte

	for _, b := range data {
		crc ^= b
		for i := 0; i < 8; i++ {
			if crc&0x80 != 0 {
				crc = crc<<1 ^ 0x31
			} else {
				crc <<= 1
			}
		}
	}

	return crc
}
