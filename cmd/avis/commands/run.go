package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-vis/internal/capture"
	"github.com/cwbudde/algo-vis/internal/engine"
	"github.com/cwbudde/algo-vis/internal/transport"
	"github.com/cwbudde/algo-vis/vis/frame"
)

// run: capture, analyze, and stream frames until interrupted.
func runCmd() *cobra.Command {
	var (
		device    string
		wavPath   string
		synth     bool
		blockSize int

		port string
		baud int

		fftSize   int
		overlap   float64
		smoothing float64
		winName   string
		fps       float64
		history   int

		preview bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Capture audio, analyze it, and stream frames to the matrix",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := engine.DefaultConfig()
			cfg.FPS = fps
			cfg.FFTSize = fftSize
			cfg.Overlap = overlap
			cfg.Smoothing = smoothing
			cfg.Window = winName
			cfg.HistoryFrames = history

			if port == "" && !preview {
				return fmt.Errorf("nothing to do: need --port, --preview, or both")
			}

			// The serial link caps the sustainable frame rate; honor it
			// instead of overrunning the receiver.
			if port != "" {
				maxRate, err := frame.MaxFrameRate(baud)
				if err != nil {
					return err
				}
				if cfg.FPS > maxRate {
					logger.Warn("fps exceeds link capacity, clamping",
						zap.Float64("requested", cfg.FPS),
						zap.Float64("max", maxRate),
						zap.Int("baud", baud),
					)
					cfg.FPS = maxRate
				}
			}

			src, err := openSource(device, wavPath, synth, blockSize)
			if err != nil {
				return err
			}

			var sinks []transport.Sink
			if port != "" {
				s, err := transport.NewSerial(port, baud)
				if err != nil {
					_ = src.Close()
					return err
				}
				sinks = append(sinks, s)
			}
			if preview {
				sinks = append(sinks, transport.NewPreview(os.Stdout))
			}

			var sink transport.Sink = transport.NewMulti(sinks...)
			if len(sinks) == 1 {
				sink = sinks[0]
			}

			e, err := engine.New(cfg, src, sink, logger)
			if err != nil {
				_ = src.Close()
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return e.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&device, "device", "", "input device name substring (default: system default)")
	cmd.Flags().StringVar(&wavPath, "wav", "", "replay a WAV file instead of capturing")
	cmd.Flags().BoolVar(&synth, "synth", false, "use the synthetic sweep signal instead of capturing")
	cmd.Flags().IntVar(&blockSize, "block", 512, "capture block size in samples")
	cmd.Flags().StringVar(&port, "port", "", "serial port for the matrix (e.g. /dev/ttyACM1)")
	cmd.Flags().IntVar(&baud, "baud", 115200, "serial baud rate")
	cmd.Flags().IntVar(&fftSize, "fft", 1024, "FFT size in samples")
	cmd.Flags().Float64Var(&overlap, "overlap", 0.5, "FFT frame overlap fraction")
	cmd.Flags().Float64Var(&smoothing, "smoothing", 0.3, "temporal smoothing in [0, 0.95]")
	cmd.Flags().StringVar(&winName, "window", "hann", "analysis window function")
	cmd.Flags().Float64Var(&fps, "fps", 60, "target display frame rate")
	cmd.Flags().IntVar(&history, "history", 128, "normalization history length in frames")
	cmd.Flags().BoolVar(&preview, "preview", true, "render a terminal preview")

	return cmd
}

func openSource(device, wavPath string, synth bool, blockSize int) (capture.Source, error) {
	switch {
	case wavPath != "" && synth:
		return nil, fmt.Errorf("--wav and --synth are mutually exclusive")
	case wavPath != "":
		return capture.NewWAVFile(wavPath,
			capture.WithWAVBlockSize(blockSize),
			capture.WithWAVRealTime(),
		)
	case synth:
		return capture.NewSynth(
			capture.WithSynthBlockSize(blockSize),
			capture.WithSynthRealTime(),
		), nil
	default:
		return capture.NewMic(
			capture.WithMicDevice(device),
			capture.WithMicBlockSize(blockSize),
		)
	}
}
