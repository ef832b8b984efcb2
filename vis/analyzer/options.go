package analyzer

import "github.com/cwbudde/algo-vis/vis/window"

// Config defines analyzer settings.
type Config struct {
	SampleRate float64
	FFTSize    int
	Overlap    float64
	Window     window.Type
	Bands      int
	Smoothing  float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns sensible defaults for real-time visualization.
func DefaultConfig() Config {
	return Config{
		SampleRate: 44100,
		FFTSize:    1024,
		Overlap:    0.5,
		Window:     window.TypeHann,
		Bands:      32,
		Smoothing:  0,
	}
}

// WithSampleRate sets the capture sample rate in Hz.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *Config) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithFFTSize sets the FFT frame size in samples.
func WithFFTSize(size int) Option {
	return func(cfg *Config) {
		if size > 0 {
			cfg.FFTSize = size
		}
	}
}

// WithOverlap sets the frame overlap fraction in [0, 0.95].
func WithOverlap(overlap float64) Option {
	return func(cfg *Config) {
		if overlap >= 0 && overlap <= 0.95 {
			cfg.Overlap = overlap
		}
	}
}

// WithWindow sets the analysis window type.
func WithWindow(t window.Type) Option {
	return func(cfg *Config) {
		cfg.Window = t
	}
}

// WithBands sets the number of output frequency bands.
func WithBands(bands int) Option {
	return func(cfg *Config) {
		if bands > 0 {
			cfg.Bands = bands
		}
	}
}

// WithSmoothing sets exponential smoothing across frames in [0, 0.95].
// 0 disables smoothing; larger values respond more slowly.
func WithSmoothing(smoothing float64) Option {
	return func(cfg *Config) {
		if smoothing >= 0 && smoothing <= 0.95 {
			cfg.Smoothing = smoothing
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
