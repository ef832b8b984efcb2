package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-vis/internal/capture"
	"github.com/cwbudde/algo-vis/vis/analyzer"
	"github.com/cwbudde/algo-vis/vis/frame"
	"github.com/cwbudde/algo-vis/vis/normalize"
	"github.com/cwbudde/algo-vis/vis/quantize"
	"github.com/cwbudde/algo-vis/vis/window"
)

// probe <file.wav>: offline analysis, prints quantized levels per frame.
func probeCmd() *cobra.Command {
	var (
		maxFrames int
		fftSize   int
		winName   string
	)

	cmd := &cobra.Command{
		Use:   "probe <file.wav>",
		Short: "Analyze a WAV file offline and print the first frames",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := capture.NewWAVFile(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = src.Close() }()

			winType, err := window.Parse(winName)
			if err != nil {
				return err
			}

			an, err := analyzer.New(
				analyzer.WithSampleRate(src.SampleRate()),
				analyzer.WithFFTSize(fftSize),
				analyzer.WithWindow(winType),
				analyzer.WithBands(frame.Columns),
			)
			if err != nil {
				return err
			}

			hist := normalize.NewHistory()
			bands := make([]float64, frame.Columns)
			levels := make([]uint8, frame.Columns)

			blocks, err := src.Blocks(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("%s: %.0f Hz, fft %d, %d bands, %.1f Hz/bin\n",
				args[0], src.SampleRate(), fftSize, frame.Columns, an.BinHz())

			printed := 0
			hop := an.HopSize()
			for block := range blocks {
				// Feed at most one hop at a time so every analysis frame
				// is observed before the next overwrites it.
				for off := 0; off < len(block) && printed < maxFrames; off += hop {
					end := off + hop
					if end > len(block) {
						end = len(block)
					}
					if an.Push(block[off:end]) == 0 {
						continue
					}

					bands = an.Bands(bands)
					hist.Normalize(bands)
					if err := quantize.Levels(levels, bands, frame.MaxLevel+1); err != nil {
						return err
					}

					fmt.Printf("frame %4d: ", printed)
					for _, lvl := range levels {
						fmt.Printf("%X", lvl)
					}
					fmt.Println()
					printed++
				}

				if printed >= maxFrames {
					break
				}
			}

			if printed == 0 {
				return fmt.Errorf("file too short for a single %d-sample frame", fftSize)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&maxFrames, "frames", 16, "number of analysis frames to print")
	cmd.Flags().IntVar(&fftSize, "fft", 1024, "FFT size in samples")
	cmd.Flags().StringVar(&winName, "window", "hann", "analysis window function")

	return cmd
}
