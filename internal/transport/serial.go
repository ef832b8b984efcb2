package transport

import (
	"fmt"
	"io"

	"go.bug.st/serial"

	"github.com/cwbudde/algo-vis/vis/frame"
)

// Serial streams encoded frames to a serial port.
type Serial struct {
	port   io.WriteCloser
	enc    *frame.Encoder
	buf    []byte
	frames uint64
	bytes  uint64
}

// NewSerial opens the named port at the given baud rate (8N1).
func NewSerial(portName string, baud int) (*Serial, error) {
	if baud <= 0 {
		return nil, fmt.Errorf("serial baud rate must be > 0: %d", baud)
	}

	port, err := serial.Open(portName, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("serial open %s: %w", portName, err)
	}

	return newSerial(port), nil
}

func newSerial(port io.WriteCloser) *Serial {
	return &Serial{
		port: port,
		enc:  frame.NewEncoder(),
		buf:  make([]byte, 0, frame.EncodedSize),
	}
}

// WriteFrame encodes the levels and writes one wire frame to the port.
func (s *Serial) WriteFrame(levels []uint8) error {
	buf, err := s.enc.AppendEncode(s.buf[:0], levels)
	if err != nil {
		return err
	}

	n, err := s.port.Write(buf)
	s.bytes += uint64(n)

	if err != nil {
		return fmt.Errorf("serial write: %w", err)
	}

	s.frames++

	return nil
}

// Stats returns the number of frames and bytes written so far.
func (s *Serial) Stats() (frames, bytes uint64) {
	return s.frames, s.bytes
}

// Close closes the port.
func (s *Serial) Close() error {
	if err := s.port.Close(); err != nil {
		return fmt.Errorf("serial close: %w", err)
	}

	return nil
}

// ListPorts enumerates serial port names on this system.
func ListPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("serial list ports: %w", err)
	}

	return ports, nil
}
