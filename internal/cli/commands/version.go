package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/obinnaokechukwu/z3go"
	"github.com/obinnaokechukwu/z3go/config"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version, commit string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the z3go version and, if it can be loaded, the libz3 version.`,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "z3go v%s (%s)\n", version, commit)

			if err := z3go.InitWithConfig(config.FromContext(cmd.Context())); err != nil && !z3go.IsLoaded() {
				_, _ = fmt.Fprintf(out, "libz3: unavailable (%v)\n", err)
				return
			}
			_, _ = fmt.Fprintf(out, "libz3: %s\n", z3go.FullVersion())
		},
	}
}
