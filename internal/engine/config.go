package engine

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/cwbudde/algo-vis/vis/window"
)

// Config defines pipeline settings. Field constraints are declared as
// validation tags and checked by Validate before a run starts.
type Config struct {
	FPS           float64       `validate:"gt=0,lte=240"`
	FFTSize       int           `validate:"oneof=256 512 1024 2048 4096 8192"`
	Overlap       float64       `validate:"gte=0,lte=0.95"`
	Smoothing     float64       `validate:"gte=0,lte=0.95"`
	Window        string        `validate:"required"`
	HistoryFrames int           `validate:"gte=1,lte=4096"`
	StatsInterval time.Duration `validate:"gte=0"`
}

// DefaultConfig returns the settings used by a plain `avis run`.
func DefaultConfig() Config {
	return Config{
		FPS:           60,
		FFTSize:       1024,
		Overlap:       0.5,
		Smoothing:     0.3,
		Window:        "hann",
		HistoryFrames: 128,
		StatsInterval: 5 * time.Second,
	}
}

// Validate checks the struct tags and the window name.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("engine config: %w", err)
	}

	if _, err := window.Parse(c.Window); err != nil {
		return fmt.Errorf("engine config: %w", err)
	}

	return nil
}
