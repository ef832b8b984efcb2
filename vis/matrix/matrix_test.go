package matrix

import (
	"bytes"
	"strings"
	"testing"
)

func TestComposeValidation(t *testing.T) {
	if _, err := Compose(make([]uint8, Width-1), nil); err == nil {
		t.Fatal("expected error for short levels")
	}

	if _, err := Compose(make([]uint8, Width), make([]int, 3)); err == nil {
		t.Fatal("expected error for mismatched peak rows")
	}
}

func TestComposeColumns(t *testing.T) {
	levels := make([]uint8, Width)
	levels[0] = 3
	levels[31] = 16

	im, err := Compose(levels, nil)
	if err != nil {
		t.Fatalf("Compose error: %v", err)
	}

	for r := 0; r < Height; r++ {
		if got, want := im.Lit(0, r), r < 3; got != want {
			t.Fatalf("column 0 row %d: lit=%v want=%v", r, got, want)
		}

		if !im.Lit(31, r) {
			t.Fatalf("column 31 row %d must be lit", r)
		}
	}

	if im.LitCount() != 3+16 {
		t.Fatalf("LitCount=%d want=19", im.LitCount())
	}
}

func TestComposePeaks(t *testing.T) {
	levels := make([]uint8, Width)
	peaks := make([]int, Width)
	for i := range peaks {
		peaks[i] = -1
	}

	peaks[4] = 9
	peaks[5] = Height // out of range, ignored

	im, err := Compose(levels, peaks)
	if err != nil {
		t.Fatalf("Compose error: %v", err)
	}

	if !im.Lit(4, 9) {
		t.Fatal("peak marker pixel must be lit")
	}

	if im.LitCount() != 1 {
		t.Fatalf("LitCount=%d want=1", im.LitCount())
	}
}

func TestRowBits(t *testing.T) {
	levels := make([]uint8, Width)
	levels[2] = 1
	levels[3] = 1

	im, err := Compose(levels, nil)
	if err != nil {
		t.Fatalf("Compose error: %v", err)
	}

	if got := im.RowBits(0); got != 0b1100 {
		t.Fatalf("RowBits(0)=%#b want=0b1100", got)
	}

	if im.RowBits(-1) != 0 || im.RowBits(Height) != 0 {
		t.Fatal("out-of-range rows must return 0")
	}
}

func TestRenderANSI(t *testing.T) {
	levels := make([]uint8, Width)
	levels[0] = Height

	im, err := Compose(levels, nil)
	if err != nil {
		t.Fatalf("Compose error: %v", err)
	}

	var buf bytes.Buffer
	if err := im.RenderANSI(&buf, false); err != nil {
		t.Fatalf("RenderANSI error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != Height {
		t.Fatalf("rendered lines: got=%d want=%d", len(lines), Height)
	}

	for i, line := range lines {
		if !strings.HasPrefix(line, "█") {
			t.Fatalf("line %d: full column 0 must render a block: %q", i, line)
		}
	}
}

func TestRenderANSIColorMarksPeaks(t *testing.T) {
	levels := make([]uint8, Width)
	peaks := make([]int, Width)
	peaks[0] = 5

	im, err := Compose(levels, peaks)
	if err != nil {
		t.Fatalf("Compose error: %v", err)
	}

	var buf bytes.Buffer
	if err := im.RenderANSI(&buf, true); err != nil {
		t.Fatalf("RenderANSI error: %v", err)
	}

	if !strings.Contains(buf.String(), "\x1b[35m") {
		t.Fatal("expected ANSI color sequence for peak marker")
	}
}
