package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/opal-lang/chore/cli"
	_ "github.com/opal-lang/chore/runtime/tasks"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := 0
	rootCmd := &cobra.Command{
		Use:   "chore [task] [--option[=value] ...]",
		Short: "Run project tasks",
		Long: `chore runs a named task with --key=value options.

Run 'chore help' to list the available tasks and 'chore <task> --help' for
the options of one task.`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		Run: func(cmd *cobra.Command, args []string) {
			argv := append([]string{cmd.Root().Name()}, args...)
			code = cli.NewApp(cmd.Root().Name()).Run(cmd.Context(), argv)
		},
	}

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		code = 1
	}

	stop()
	os.Exit(code)
}
