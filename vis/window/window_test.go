package window

import (
	"math"
	"testing"
)

func TestGenerateSymmetry(t *testing.T) {
	types := []Type{TypeHann, TypeHamming, TypeBlackman, TypeBlackmanHarris, TypeFlatTop}

	for _, typ := range types {
		coeffs := Generate(typ, 65)
		if len(coeffs) != 65 {
			t.Fatalf("%v: length mismatch: got=%d want=65", typ, len(coeffs))
		}

		for i := range coeffs {
			j := len(coeffs) - 1 - i
			if math.Abs(coeffs[i]-coeffs[j]) > 1e-12 {
				t.Fatalf("%v: asymmetry at %d: %f != %f", typ, i, coeffs[i], coeffs[j])
			}
		}
	}
}

func TestGenerateHannEndpoints(t *testing.T) {
	coeffs := Generate(TypeHann, 33)

	if math.Abs(coeffs[0]) > 1e-12 || math.Abs(coeffs[32]) > 1e-12 {
		t.Fatalf("symmetric hann endpoints must be 0: %f %f", coeffs[0], coeffs[32])
	}

	if math.Abs(coeffs[16]-1) > 1e-12 {
		t.Fatalf("symmetric hann midpoint must be 1: %f", coeffs[16])
	}
}

func TestGeneratePeriodicForm(t *testing.T) {
	coeffs := Generate(TypeHann, 32, WithPeriodic())

	// Periodic form tapers to zero at the left edge only; the implicit
	// right-edge zero belongs to the next frame.
	if math.Abs(coeffs[0]) > 1e-12 {
		t.Fatalf("periodic hann left edge must be 0: %f", coeffs[0])
	}

	if coeffs[31] <= 0 {
		t.Fatalf("periodic hann right edge must be > 0: %f", coeffs[31])
	}
}

func TestGenerateRectangular(t *testing.T) {
	coeffs := Generate(TypeRectangular, 16)
	for i, c := range coeffs {
		if c != 1 {
			t.Fatalf("rectangular[%d]=%f want=1", i, c)
		}
	}
}

func TestGenerateInvalidLength(t *testing.T) {
	if got := Generate(TypeHann, 0); got != nil {
		t.Fatalf("expected nil for zero length, got %v", got)
	}

	if got := Generate(TypeHann, -4); got != nil {
		t.Fatalf("expected nil for negative length, got %v", got)
	}
}

func TestCoherentGain(t *testing.T) {
	gain, err := CoherentGain(Generate(TypeHann, 4096, WithPeriodic()))
	if err != nil {
		t.Fatalf("CoherentGain error: %v", err)
	}

	// Hann coherent gain converges to 0.5 for large periodic windows.
	if math.Abs(gain-0.5) > 1e-9 {
		t.Fatalf("hann coherent gain: got=%f want=0.5", gain)
	}

	if _, err := CoherentGain(nil); err == nil {
		t.Fatal("expected error for empty coefficients")
	}
}

func TestApply(t *testing.T) {
	buf := []float64{1, 1, 1, 1}
	coeffs := []float64{0, 0.5, 0.5, 0}

	if err := Apply(buf, coeffs); err != nil {
		t.Fatalf("Apply error: %v", err)
	}

	want := []float64{0, 0.5, 0.5, 0}
	for i := range buf {
		if math.Abs(buf[i]-want[i]) > 1e-12 {
			t.Fatalf("Apply[%d]=%f want=%f", i, buf[i], want[i])
		}
	}

	if err := Apply(buf, coeffs[:2]); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, name := range Names() {
		typ, err := Parse(name)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", name, err)
		}

		if typ.String() != name {
			t.Fatalf("round trip mismatch: %q -> %v -> %q", name, typ, typ.String())
		}
	}
}

func TestParseAliasesAndErrors(t *testing.T) {
	cases := map[string]Type{
		"  Hann ":         TypeHann,
		"BLACKMAN-HARRIS": TypeBlackmanHarris,
		"rect":            TypeRectangular,
		"flat-top":        TypeFlatTop,
	}

	for in, want := range cases {
		got, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", in, err)
		}

		if got != want {
			t.Fatalf("Parse(%q)=%v want=%v", in, got, want)
		}
	}

	if _, err := Parse("welch"); err == nil {
		t.Fatal("expected error for unsupported window")
	}
}
