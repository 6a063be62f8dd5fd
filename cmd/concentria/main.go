package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func main() {
	root := newRootCmd()
	root.SetOut(color.Output)
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configFile string
	csvPath    string
	storage    string
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	root := &cobra.Command{
		Use:           "concentria",
		Short:         "Log focus sessions and review them as charts",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, &opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default ./.concentria.yaml or ~/.concentria.yaml)")
	root.PersistentFlags().StringVar(&opts.csvPath, "csv", "", "session CSV file (overrides csv_path)")
	root.PersistentFlags().StringVar(&opts.storage, "storage", "", "entry storage: csv|postgres|memory")

	root.AddCommand(newTUICmd(&opts))
	root.AddCommand(newAddCmd(&opts))
	root.AddCommand(newListCmd(&opts))
	root.AddCommand(newRemoveCmd(&opts))
	root.AddCommand(newImportCmd(&opts))
	root.AddCommand(newExportCmd(&opts))
	root.AddCommand(newStatsCmd(&opts))
	root.AddCommand(newRenderCmd(&opts))
	root.AddCommand(newDashboardCmd(&opts))
	root.AddCommand(newTokenCmd(&opts))
	return root
}
