package normalize_test

import (
	"fmt"

	"github.com/cwbudde/algo-vis/vis/normalize"
)

func ExampleHistory_Normalize() {
	hist := normalize.NewHistory(normalize.WithLength(8))

	loud := []float64{0, 8}
	hist.Normalize(loud)

	quiet := []float64{0, 2}
	hist.Normalize(quiet)

	fmt.Printf("%.2f %.2f\n", quiet[0], quiet[1])
	// Output:
	// 0.00 0.25
}
