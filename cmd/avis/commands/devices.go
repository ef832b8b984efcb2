package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-vis/internal/capture"
	"github.com/cwbudde/algo-vis/internal/transport"
)

// devices: enumerate audio inputs and serial ports.
func devicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List audio input devices and serial ports",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := capture.ListInputDevices()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "AUDIO INPUT\tHOST API\tCHANNELS\tDEFAULT RATE")
			for _, dev := range inputs {
				fmt.Fprintf(w, "%s\t%s\t%d\t%.0f\n", dev.Name, dev.HostAPI, dev.MaxChannels, dev.DefaultRate)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			ports, err := transport.ListPorts()
			if err != nil {
				return err
			}

			fmt.Println()
			fmt.Println("SERIAL PORTS")
			if len(ports) == 0 {
				fmt.Println("  (none)")
			}
			for _, p := range ports {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}
}
