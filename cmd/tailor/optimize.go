package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amishk599/tailor/internal/model"
	"github.com/amishk599/tailor/internal/tui"
	"github.com/amishk599/tailor/internal/workflow"
)

var (
	optimizeAccept  bool
	optimizeDiscard bool
)

var optimizeCmd = &cobra.Command{
	Use:       "optimize [section]",
	Short:     "Rewrite one resume section for the saved job description",
	Long:      "Proposes a rewrite of one section (summary, experience, skills, education, projects, personal) and lets you accept or discard it.",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: sectionNames(),
	RunE:      runOptimize,
}

func init() {
	optimizeCmd.Flags().BoolVarP(&optimizeAccept, "yes", "y", false, "accept the proposal without review")
	optimizeCmd.Flags().BoolVar(&optimizeDiscard, "dry-run", false, "print the proposal and discard it")
	optimizeCmd.MarkFlagsMutuallyExclusive("yes", "dry-run")
	rootCmd.AddCommand(optimizeCmd)
}

func sectionNames() []string {
	names := make([]string, len(model.Sections))
	for i, s := range model.Sections {
		names[i] = string(s)
	}
	return names
}

func runOptimize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withApp(func(a *app) error {
		section, ok, err := chooseSection(a, args)
		if err != nil || !ok {
			return err
		}

		type optimized struct {
			draft   model.OptimizationDraft
			outcome workflow.Outcome
		}
		res, err := runStep(ctx, a, fmt.Sprintf("Optimizing %s...", section), func(ctx context.Context) (optimized, error) {
			draft, outcome, err := a.ctrl.OptimizeSection(ctx, section)
			return optimized{draft: draft, outcome: outcome}, err
		})
		if err != nil {
			return err
		}

		decision, err := reviewDraft(a, res.draft, res.outcome.Fallback)
		if err != nil {
			return err
		}
		a.logger.Debug("draft reviewed", "section", section, "decision", decision, "fallback", res.outcome.Fallback)

		if decision == tui.DecisionDiscard {
			if err := a.ctrl.DiscardOptimization(); err != nil && !errors.Is(err, model.ErrNoDraft) {
				return err
			}
			if optimizeDiscard {
				return printJSON(cmd.OutOrStdout(), res.draft.Content)
			}
			return nil
		}

		_, err = a.ctrl.AcceptOptimization()
		return err
	})
}

// chooseSection resolves the section argument, falling back to the
// interactive picker when none is given.
func chooseSection(a *app, args []string) (model.Section, bool, error) {
	if len(args) == 1 {
		s, err := model.ParseSection(args[0])
		return s, err == nil, err
	}
	if !interactive() {
		return "", false, &model.ValidationError{Field: "section", Message: "a section is required when not running interactively"}
	}

	state := a.ctrl.State()
	if state.Resume == nil {
		return "", false, model.ErrNoResume
	}
	items := tui.SectionItems(*state.Resume, workflow.HasDemoSection)
	return tui.RunSectionPicker(items, offline || state.Credentials.IsEmpty())
}

func reviewDraft(a *app, draft model.OptimizationDraft, fallback bool) (tui.Decision, error) {
	switch {
	case optimizeAccept:
		return tui.DecisionAccept, nil
	case optimizeDiscard, !interactive():
		return tui.DecisionDiscard, nil
	}

	state := a.ctrl.State()
	if state.Resume == nil {
		return tui.DecisionDiscard, model.ErrNoResume
	}
	current, err := state.Resume.SectionJSON(draft.Section)
	if err != nil {
		return tui.DecisionDiscard, err
	}
	return tui.RunDraftReview(draft.Section, current, draft.Content, fallback)
}
