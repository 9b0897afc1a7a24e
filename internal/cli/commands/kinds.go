package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/obinnaokechukwu/z3go"
	"github.com/obinnaokechukwu/z3go/config"
)

// NewKindsCommand creates the kinds command.
func NewKindsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the built-in object kinds",
		Long: `List every built-in object kind and whether the loaded libz3 exports its
reference-counting pair. Without libz3 every kind is reported as missing.`,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			err := z3go.InitWithConfig(config.FromContext(cmd.Context()))
			if err != nil && !errors.Is(err, z3go.ErrAlreadyLoaded) {
				_, _ = fmt.Fprintf(out, "libz3: unavailable (%v)\n", err)
			}
			for _, k := range z3go.Kinds() {
				status := "missing"
				if k.Available() {
					status = "ok"
				}
				_, _ = fmt.Fprintf(out, "  %-14s %s\n", k.Name(), status)
			}
		},
	}
}
