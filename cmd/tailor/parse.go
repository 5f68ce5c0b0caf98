package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/amishk599/tailor/internal/extract"
	"github.com/amishk599/tailor/internal/model"
	"github.com/amishk599/tailor/internal/workflow"
)

var parseText string

var parseCmd = &cobra.Command{
	Use:   "parse [file|-]",
	Short: "Parse a resume into structured JSON",
	Long: "Reads a resume (.txt, .md, .html, .pdf, .docx, or - for stdin), asks the configured provider to structure it " +
		"and saves the result. Without API keys, or when the provider fails, a demo resume is produced instead.",
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parseText, "text", "", "resume text (instead of a file)")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	var path string
	if len(args) == 1 {
		path = args[0]
	}
	text, err := readInput(ctx, path, parseText)
	if err != nil {
		return err
	}

	return withApp(func(a *app) error {
		type parsed struct {
			doc     model.ResumeDocument
			outcome workflow.Outcome
		}
		res, err := runStep(ctx, a, "Parsing resume...", func(ctx context.Context) (parsed, error) {
			doc, outcome, err := a.ctrl.ParseResume(ctx, text)
			return parsed{doc: doc, outcome: outcome}, err
		})
		if err != nil {
			return err
		}
		if res.outcome.Fallback {
			a.logger.Debug("parse used heuristic resume", "cause", res.outcome.Cause)
		}
		return printJSON(cmd.OutOrStdout(), res.doc)
	})
}

func readDocument(ctx context.Context, path string) (string, error) {
	text, err := extract.File(ctx, path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return text, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
