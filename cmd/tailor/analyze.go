package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/amishk599/tailor/internal/model"
	"github.com/amishk599/tailor/internal/workflow"
)

var analyzeText string

var analyzeCmd = &cobra.Command{
	Use:   "analyze [job-file|-]",
	Short: "Score the saved resume against a job description",
	Long: "Scores the saved resume against a job description read from a file, stdin (-), --text, or the previously " +
		"saved job description. The job description is saved for later optimize runs.",
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeText, "text", "", "job description text (instead of a file)")
	rootCmd.AddCommand(analyzeCmd)
}

var (
	scoreBaseStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	bandStyles     = map[model.ScoreBand]lipgloss.Style{
		model.BandExcellent: scoreBaseStyle.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10")),
		model.BandGood:      scoreBaseStyle.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11")),
		model.BandNeutral:   scoreBaseStyle.Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")),
	}
	labelStyle = lipgloss.NewStyle().Bold(true)
)

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	var path string
	if len(args) == 1 {
		path = args[0]
	}
	job, err := readInput(ctx, path, analyzeText)
	if err != nil {
		return err
	}

	return withApp(func(a *app) error {
		if job == "" {
			job = a.ctrl.State().JobDescription
		}

		type analyzed struct {
			result  model.MatchResult
			outcome workflow.Outcome
		}
		res, err := runStep(ctx, a, "Analyzing match...", func(ctx context.Context) (analyzed, error) {
			result, outcome, err := a.ctrl.AnalyzeMatch(ctx, job)
			return analyzed{result: result, outcome: outcome}, err
		})
		if err != nil {
			return err
		}
		if res.outcome.Fallback {
			a.logger.Debug("analyze used canned result", "cause", res.outcome.Cause)
		}

		fmt.Fprint(cmd.OutOrStdout(), renderMatch(res.result))
		return nil
	})
}

// renderMatch formats a MatchResult for the terminal, styling the score by
// its band.
func renderMatch(r model.MatchResult) string {
	band := r.Band()
	label := fmt.Sprintf("%g", r.Score)
	if band != model.BandNeutral {
		label += " " + string(band)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n\n", labelStyle.Render("Match score:"), bandStyles[band].Render(label))
	fmt.Fprintf(&b, "%s\n\n", r.Analysis)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Strengths:"), strings.Join(r.Strengths, ", "))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Areas to Improve:"), strings.Join(r.Gaps, ", "))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Recommendations:"), strings.Join(r.Recommendations, ", "))
	return b.String()
}
