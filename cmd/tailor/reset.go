package main

import (
	"github.com/spf13/cobra"
)

var resetKeepKeys bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the saved resume, job description and keys",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&resetKeepKeys, "keep-keys", false, "keep the saved API keys")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		return a.ctrl.Reset(resetKeepKeys)
	})
}
