// Package cli provides the z3go command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/obinnaokechukwu/z3go"
	"github.com/obinnaokechukwu/z3go/config"
	"github.com/obinnaokechukwu/z3go/internal/cli/commands"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var (
		cfgFile string
		log     *zap.Logger
	)

	rootCmd := &cobra.Command{
		Use:   "z3go",
		Short: "Inspect the libz3 used by z3go",
		Long: `z3go locates and loads the Z3 shared library without cgo, then reports
what it found: the library version, where it was loaded from, and which
reference-counted object families it exports.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			log, err = cfg.NewLogger()
			if err != nil {
				return err
			}
			z3go.SetLogger(log)
			log.Debug("configuration loaded",
				zap.String("library", cfg.Library.Path),
				zap.Strings("search_paths", cfg.Library.SearchPaths),
				zap.Int("params", len(cfg.Params)))

			cmd.SetContext(config.WithConfig(cmd.Context(), cfg))
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if log != nil {
				_ = log.Sync()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./"+config.ConfigFileName+")")
	flags.String("library", "", "Path to libz3 (skips the search)")
	flags.StringSlice("search-path", nil, "Extra directories to search for libz3")
	flags.String("log-level", "", "Log level (debug|info|warn|error)")
	flags.String("log-format", "", "Log format (console|json)")
	flags.StringArray(config.ParamFlag, nil, "Z3 context parameter as key=value (repeatable)")

	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("log-format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"console", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewVersionCommand(Version, GitCommit))
	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(commands.NewKindsCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
