package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-vis/vis/window"
)

// windows: list supported analysis windows with their coherent gain.
func windowsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "windows",
		Short: "List supported analysis window functions",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "WINDOW\tCOHERENT GAIN")

			for _, name := range window.Names() {
				typ, err := window.Parse(name)
				if err != nil {
					return err
				}

				gain, err := window.CoherentGain(window.Generate(typ, 1024, window.WithPeriodic()))
				if err != nil {
					return err
				}

				fmt.Fprintf(w, "%s\t%.4f\n", name, gain)
			}
			return w.Flush()
		},
	}
}
