package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newRootCmd(cfg Config) *cobra.Command {
	root := &cobra.Command{
		Use:   "workflow-runner",
		Short: "End-to-end exerciser for the workflow orchestration tools",
		Long: "workflow-runner lists workflow templates, discovers and executes every graph workflow, " +
			"optionally queries an execution trace, and prints a pass/fail report.\n\n" +
			"Without NEXUS_LIVE=true it runs against built-in fixtures.",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	run := newRunCmd(&cfg)
	root.RunE = run.RunE
	root.Flags().AddFlagSet(run.Flags())

	root.AddCommand(run)
	root.AddCommand(newServeCmd(&cfg))
	root.AddCommand(newVersionCmd())
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(loadConfig()).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
