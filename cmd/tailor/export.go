package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the saved resume as plain text",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file, - for stdout (default: export.file from config)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		path := exportOutput
		if path == "" {
			path = a.cfg.Export.File
		}

		if path == "-" {
			return a.ctrl.Export(cmd.OutOrStdout())
		}

		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		if err := a.ctrl.Export(f); err != nil {
			f.Close()
			os.Remove(path)
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", path, err)
		}

		a.logger.Info("resume exported", "file", path)
		return nil
	})
}
