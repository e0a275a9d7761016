// Command bordersimplify is the collaborator binary exercising the
// load -> Simplify -> save pipeline end-to-end (spec.md §1's "out of
// scope" I/O plus SPEC_FULL.md §A.4). It is not part of the core: the
// core packages (segstore, topology, simplify, reassemble, oracle)
// import nothing from here.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	root := rootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "bordersimplify",
		Short:        "Simplify polygon borders while preserving shared-edge topology",
		SilenceUsage: true,
	}
	root.AddCommand(simplifyCommand())
	return root
}
