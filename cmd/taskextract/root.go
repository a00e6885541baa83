package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "taskextract",
		Short: "Extract maintenance tasks from PDF manuals",
		Long: `taskextract reads a PDF manual, finds every "Task N.NN" section and
prints the tasks with their labeled details.

It runs the same pipeline as the HTTP service without starting a server.`,
		Version:      version,
		SilenceUsage: true,
	}
	root.AddCommand(newExtractCmd())
	return root
}
