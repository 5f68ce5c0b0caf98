package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amishk599/tailor/internal/model"
)

var showJob bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved resume as JSON",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showJob, "job", false, "print the saved job description instead")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		state := a.ctrl.State()
		if showJob {
			if state.JobDescription == "" {
				return &model.ValidationError{Field: "job", Message: "no job description saved yet"}
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), state.JobDescription)
			return err
		}
		if state.Resume == nil {
			return model.ErrNoResume
		}
		return printJSON(cmd.OutOrStdout(), state.Resume)
	})
}
