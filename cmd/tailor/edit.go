package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <file|->",
	Short: "Replace the saved resume with hand-edited JSON",
	Long:  "Reads resume JSON from a file (or - for stdin) and replaces the saved resume. Start from the output of `tailor show`.",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	raw, err := readRaw(args[0])
	if err != nil {
		return err
	}

	return withApp(func(a *app) error {
		doc, err := a.ctrl.EditResume(raw)
		if err != nil {
			return err
		}
		a.logger.Debug("resume replaced", "name", doc.Personal.Name, "experience", len(doc.Experience))
		return nil
	})
}

func readRaw(path string) ([]byte, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return raw, nil
}
