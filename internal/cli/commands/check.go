package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/obinnaokechukwu/z3go"
	"github.com/obinnaokechukwu/z3go/config"
)

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load libz3 and exercise object lifetimes",
		Long: `Load libz3, open a context with the configured parameters, create and
release a few native objects, and verify nothing is left registered once the
context is closed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd.OutOrStdout(), config.FromContext(cmd.Context()))
		},
	}
}

func runCheck(out io.Writer, cfg *config.Config) error {
	if err := z3go.InitWithConfig(cfg); err != nil && !errors.Is(err, z3go.ErrAlreadyLoaded) {
		return fmt.Errorf("load libz3: %w", err)
	}
	_, _ = fmt.Fprintf(out, "libz3 %s\n", z3go.FullVersion())
	_, _ = fmt.Fprintf(out, "loaded from %s\n", z3go.LibraryPath())

	ctx, err := z3go.NewContext(z3go.WithConfig(cfg))
	if err != nil {
		return fmt.Errorf("open context: %w", err)
	}
	defer ctx.Close()

	if err := exercise(ctx); err != nil {
		return err
	}
	created := ctx.Live()
	if err := ctx.Close(); err != nil {
		return err
	}
	if n := ctx.Live(); n != 0 {
		return fmt.Errorf("%d objects still registered after close", n)
	}
	_, _ = fmt.Fprintf(out, "ok: context closed, %d live objects released\n", created)
	return nil
}

// exercise creates objects of several kinds and leaves some of them for the
// context to release.
func exercise(ctx *z3go.Context) error {
	solver, err := z3go.NewSolver(ctx)
	if err != nil {
		return fmt.Errorf("create solver: %w", err)
	}
	params, err := z3go.NewParams(ctx)
	if err != nil {
		return fmt.Errorf("create params: %w", err)
	}
	defer params.Dispose()
	if err := params.SetUint("timeout", 1000); err != nil {
		return err
	}
	if err := solver.SetParams(params); err != nil {
		return fmt.Errorf("set solver params: %w", err)
	}

	sort, err := ctx.BoolSort()
	if err != nil {
		return fmt.Errorf("create sort: %w", err)
	}
	vec, err := z3go.NewASTVector(ctx)
	if err != nil {
		return fmt.Errorf("create vector: %w", err)
	}
	if err := vec.Push(sort); err != nil {
		return err
	}
	sort.Dispose()

	elem, err := vec.Get(0)
	if err != nil {
		return err
	}
	defer elem.Dispose()
	if got := elem.String(); got != "Bool" {
		return fmt.Errorf("vector element = %q, want Bool", got)
	}
	return nil
}
