package transport

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/cwbudde/algo-vis/vis/frame"
	"github.com/cwbudde/algo-vis/vis/matrix"
)

type nopCloser struct {
	*bytes.Buffer
}

func (nopCloser) Close() error { return nil }

func testLevels() []uint8 {
	levels := make([]uint8, frame.Columns)
	for i := range levels {
		levels[i] = uint8(i % (frame.MaxLevel + 1))
	}

	return levels
}

func TestSerialWritesDecodableFrames(t *testing.T) {
	var buf bytes.Buffer

	s := newSerial(nopCloser{&buf})

	levels := testLevels()
	for i := 0; i < 3; i++ {
		if err := s.WriteFrame(levels); err != nil {
			t.Fatalf("WriteFrame error: %v", err)
		}
	}

	frames, wireBytes := s.Stats()
	if frames != 3 || wireBytes != 3*frame.EncodedSize {
		t.Fatalf("stats: frames=%d bytes=%d", frames, wireBytes)
	}

	dec := frame.NewDecoder()

	decoded := dec.Feed(buf.Bytes())
	if len(decoded) != 3 {
		t.Fatalf("decoded frames: got=%d want=3", len(decoded))
	}

	for c, lvl := range levels {
		if decoded[2].Levels[c] != lvl {
			t.Fatalf("column %d: got=%d want=%d", c, decoded[2].Levels[c], lvl)
		}
	}
}

func TestSerialRejectsBadLevels(t *testing.T) {
	s := newSerial(nopCloser{&bytes.Buffer{}})

	bad := testLevels()
	bad[0] = frame.MaxLevel + 1

	if err := s.WriteFrame(bad); !errors.Is(err, frame.ErrLevelRange) {
		t.Fatalf("expected ErrLevelRange, got %v", err)
	}

	if frames, _ := s.Stats(); frames != 0 {
		t.Fatalf("failed writes must not count: %d", frames)
	}
}

func TestPreviewRendersMatrix(t *testing.T) {
	var buf bytes.Buffer

	p := NewPreview(&buf, WithPreviewColor(false))

	if err := p.WriteFrame(testLevels()); err != nil {
		t.Fatalf("WriteFrame error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != matrix.Height {
		t.Fatalf("rendered lines: got=%d want=%d", len(lines), matrix.Height)
	}

	if err := p.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
}

func TestPreviewColorControlsCursor(t *testing.T) {
	var buf bytes.Buffer

	p := NewPreview(&buf, WithPreviewColor(true))

	if err := p.WriteFrame(testLevels()); err != nil {
		t.Fatalf("WriteFrame error: %v", err)
	}

	if !strings.Contains(buf.String(), ansiInit) {
		t.Fatal("first frame must clear the screen and hide the cursor")
	}

	if err := p.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	if !strings.HasSuffix(buf.String(), ansiReset) {
		t.Fatal("close must restore the cursor")
	}
}

type stubSink struct {
	frames   int
	closed   bool
	writeErr error
}

func (s *stubSink) WriteFrame([]uint8) error {
	s.frames++
	return s.writeErr
}

func (s *stubSink) Close() error {
	s.closed = true
	return nil
}

func TestMultiFansOut(t *testing.T) {
	a, b := &stubSink{}, &stubSink{}

	m := NewMulti(a, b)

	if err := m.WriteFrame(testLevels()); err != nil {
		t.Fatalf("WriteFrame error: %v", err)
	}

	if a.frames != 1 || b.frames != 1 {
		t.Fatalf("fan-out counts: a=%d b=%d", a.frames, b.frames)
	}

	if err := m.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	if !a.closed || !b.closed {
		t.Fatal("all sinks must be closed")
	}
}

func TestMultiForwardsWireStats(t *testing.T) {
	var buf bytes.Buffer

	s := newSerial(nopCloser{&buf})
	m := NewMulti(s, &stubSink{})

	if err := m.WriteFrame(testLevels()); err != nil {
		t.Fatalf("WriteFrame error: %v", err)
	}

	frames, wireBytes := m.Stats()
	if frames != 1 || wireBytes != frame.EncodedSize {
		t.Fatalf("stats: frames=%d bytes=%d", frames, wireBytes)
	}
}

func TestMultiFailingSinkDoesNotStarveOthers(t *testing.T) {
	bad := &stubSink{writeErr: errors.New("port gone")}
	good := &stubSink{}

	m := NewMulti(bad, good)

	if err := m.WriteFrame(testLevels()); err == nil {
		t.Fatal("expected aggregated error")
	}

	if good.frames != 1 {
		t.Fatal("healthy sink must still receive the frame")
	}
}
