package normalize

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-vis/internal/testutil"
)

func TestNormalizeSingleFrameSpansUnitRange(t *testing.T) {
	h := NewHistory()

	amps := []float64{2, 4, 6}
	h.Normalize(amps)

	testutil.RequireSliceNearlyEqual(t, amps, []float64{0, 0.5, 1}, 1e-12)
}

func TestNormalizeOutputAlwaysInUnitRange(t *testing.T) {
	h := NewHistory(WithLength(8))

	for i := 0; i < 64; i++ {
		amps := testutil.Noise(int64(i), float64(i%7+1), 32)
		h.Normalize(amps)
		testutil.RequireInUnitRange(t, amps)
		testutil.RequireFinite(t, amps)
	}
}

func TestNormalizeDegenerateRange(t *testing.T) {
	h := NewHistory()

	amps := testutil.DC(3, 16)
	h.Normalize(amps)

	// All-equal frame: range is widened to 1 and everything maps to 0.
	for i, v := range amps {
		if v != 0 {
			t.Fatalf("index %d: got %f want 0", i, v)
		}
	}
}

func TestNormalizeUsesHistoricalRange(t *testing.T) {
	h := NewHistory(WithLength(4))

	loud := []float64{0, 10}
	h.Normalize(loud)

	// A quieter frame still scales against the remembered loud maximum.
	quiet := []float64{0, 5}
	h.Normalize(quiet)

	if math.Abs(quiet[1]-0.5) > 1e-12 {
		t.Fatalf("quiet peak: got %f want 0.5", quiet[1])
	}
}

func TestNormalizeHistoryEviction(t *testing.T) {
	h := NewHistory(WithLength(2))

	h.Normalize([]float64{0, 100})
	h.Normalize([]float64{0, 1})
	// The loud frame has now been evicted from the 2-frame history.
	frame := []float64{0, 1}
	h.Normalize(frame)

	if math.Abs(frame[1]-1) > 1e-12 {
		t.Fatalf("post-eviction peak: got %f want 1", frame[1])
	}
}

func TestRangeAndFilled(t *testing.T) {
	h := NewHistory(WithLength(4))

	if lo, hi := h.Range(); lo != 0 || hi != 0 {
		t.Fatalf("empty range: got (%f, %f) want (0, 0)", lo, hi)
	}

	h.Normalize([]float64{1, 3})
	h.Normalize([]float64{2, 5})

	if h.Filled() != 2 {
		t.Fatalf("Filled()=%d want=2", h.Filled())
	}

	lo, hi := h.Range()
	if lo != 1 || hi != 5 {
		t.Fatalf("range: got (%f, %f) want (1, 5)", lo, hi)
	}
}

func TestReset(t *testing.T) {
	h := NewHistory()
	h.Normalize([]float64{0, 100})
	h.Reset()

	if h.Filled() != 0 {
		t.Fatalf("Filled()=%d want=0 after reset", h.Filled())
	}

	frame := []float64{0, 1}
	h.Normalize(frame)

	if math.Abs(frame[1]-1) > 1e-12 {
		t.Fatalf("post-reset peak: got %f want 1", frame[1])
	}
}

func TestNormalizeEmptyFrame(t *testing.T) {
	h := NewHistory()
	h.Normalize(nil)

	if h.Filled() != 0 {
		t.Fatal("empty frame must not enter the history")
	}
}
