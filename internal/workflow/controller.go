package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/amishk599/tailor/internal/model"
)

// Assistant performs the LLM-backed part of each step. *ai.Assistant and
// *ai.NopAssistant satisfy it.
type Assistant interface {
	ExtractResume(ctx context.Context, creds model.Credentials, resumeText string) (model.ResumeDocument, error)
	ScoreMatch(ctx context.Context, creds model.Credentials, resume model.ResumeDocument, jobDescription string) (model.MatchResult, error)
	RewriteSection(ctx context.Context, creds model.Credentials, section model.Section, resume model.ResumeDocument, jobDescription string) (json.RawMessage, error)
}

// State is everything the controller owns. The zero value is the empty state.
type State struct {
	Resume         *model.ResumeDocument
	JobDescription string
	Credentials    model.Credentials
	Draft          *model.OptimizationDraft
	Match          *model.MatchResult
}

// Outcome reports whether a step used fallback content and why.
type Outcome struct {
	Fallback bool
	Cause    error
}

// Controller drives the parse, analyze, optimize, accept and export steps.
// The mutex guards State but is never held across an assistant call, so
// overlapping steps are allowed and the last write wins.
type Controller struct {
	mu    sync.Mutex
	state State

	assistant Assistant
	store     model.SnapshotStore
	notifier  model.Notifier
	logger    *slog.Logger
}

// NewController creates a controller with an empty state. Call Restore to
// load the persisted snapshot.
func NewController(assistant Assistant, store model.SnapshotStore, notifier model.Notifier, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Controller{
		assistant: assistant,
		store:     store,
		notifier:  notifier,
		logger:    logger,
	}
}

// Restore replaces the in-memory state with the persisted snapshot. A missing
// snapshot leaves the state empty.
func (c *Controller) Restore() error {
	snap, err := c.store.Load()
	if err != nil {
		return fmt.Errorf("restoring state: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = State{
		Resume:         snap.Resume,
		JobDescription: snap.JobDescription,
		Credentials:    snap.Credentials,
	}
	return nil
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := c.state
	if c.state.Resume != nil {
		r := c.state.Resume.Clone()
		out.Resume = &r
	}
	if c.state.Draft != nil {
		d := *c.state.Draft
		d.Content = append(json.RawMessage(nil), d.Content...)
		out.Draft = &d
	}
	if c.state.Match != nil {
		m := *c.state.Match
		out.Match = &m
	}
	return out
}

// SetCredentials trims and stores both key slots, then persists. Key format
// is checked later, when a step is about to use them.
func (c *Controller) SetCredentials(creds model.Credentials) error {
	c.mu.Lock()
	c.state.Credentials = creds.Trimmed()
	err := c.persistLocked()
	c.mu.Unlock()
	if err != nil {
		return err
	}

	c.notify(model.NoticeSuccess, "keys", "API keys saved successfully!")
	return nil
}

// ParseResume turns raw resume text into a ResumeDocument. Without
// credentials the heuristic extractor is used directly. Malformed keys fail
// with a ValidationError. Any provider or decode failure falls back to the
// heuristic extractor.
func (c *Controller) ParseResume(ctx context.Context, resumeText string) (model.ResumeDocument, Outcome, error) {
	if strings.TrimSpace(resumeText) == "" {
		return model.ResumeDocument{}, Outcome{}, &model.ValidationError{Field: "resume", Message: "please paste your resume text first"}
	}

	c.mu.Lock()
	creds := c.state.Credentials
	c.mu.Unlock()

	if creds.IsEmpty() {
		doc := HeuristicResume(resumeText)
		if err := c.setResume(doc); err != nil {
			return model.ResumeDocument{}, Outcome{}, err
		}
		c.logger.Info("resume parsed", "source", "heuristic")
		return doc, Outcome{Fallback: true, Cause: model.ErrNoProviderConfigured}, nil
	}

	if err := creds.Validate(); err != nil {
		return model.ResumeDocument{}, Outcome{}, err
	}

	doc, err := c.assistant.ExtractResume(ctx, creds, resumeText)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return model.ResumeDocument{}, Outcome{}, ctxErr
		}
		c.logger.Warn("falling back", "step", "parse", "error", err)
		c.notify(model.NoticeWarning, "parse", fmt.Sprintf("Error parsing resume: %v. Falling back to demo mode...", err))

		doc = HeuristicResume(resumeText)
		if serr := c.setResume(doc); serr != nil {
			return model.ResumeDocument{}, Outcome{}, serr
		}
		return doc, Outcome{Fallback: true, Cause: err}, nil
	}

	if err := c.setResume(doc); err != nil {
		return model.ResumeDocument{}, Outcome{}, err
	}
	c.logger.Info("resume parsed", "source", "llm")
	c.notify(model.NoticeSuccess, "parse", "Resume parsed successfully!")
	return doc, Outcome{}, nil
}

// EditResume replaces the ResumeDocument wholesale with raw JSON. Invalid JSON
// is a ValidationError and leaves the state unchanged.
func (c *Controller) EditResume(raw []byte) (model.ResumeDocument, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return model.ResumeDocument{}, &model.ValidationError{Field: "resume", Message: "resume JSON is empty"}
	}

	var doc model.ResumeDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return model.ResumeDocument{}, &model.ValidationError{Field: "resume", Message: fmt.Sprintf("invalid JSON format, please check your syntax: %v", err)}
	}

	if err := c.setResume(doc); err != nil {
		return model.ResumeDocument{}, err
	}
	c.notify(model.NoticeSuccess, "edit", "Resume JSON updated successfully!")
	return doc, nil
}

// AnalyzeMatch scores the current resume against jobDescription. Any
// assistant failure yields CannedMatch. The job description is persisted on
// both paths.
func (c *Controller) AnalyzeMatch(ctx context.Context, jobDescription string) (model.MatchResult, Outcome, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return model.MatchResult{}, Outcome{}, &model.ValidationError{Field: "job", Message: "please paste the job description first"}
	}

	c.mu.Lock()
	if c.state.Resume == nil {
		c.mu.Unlock()
		return model.MatchResult{}, Outcome{}, &model.ValidationError{Field: "resume", Message: "please parse your resume first"}
	}
	resume := c.state.Resume.Clone()
	creds := c.state.Credentials
	c.mu.Unlock()

	var outcome Outcome
	result, err := c.assistant.ScoreMatch(ctx, creds, resume, jobDescription)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return model.MatchResult{}, Outcome{}, ctxErr
		}
		c.logger.Warn("falling back", "step", "analyze", "error", err)
		c.notify(model.NoticeWarning, "analyze", "Match analysis unavailable, showing demo result.")
		result = CannedMatch()
		outcome = Outcome{Fallback: true, Cause: err}
	}

	c.mu.Lock()
	c.state.JobDescription = jobDescription
	m := result
	c.state.Match = &m
	perr := c.persistLocked()
	c.mu.Unlock()
	if perr != nil {
		return model.MatchResult{}, Outcome{}, perr
	}

	c.logger.Info("match analyzed", "score", result.Score, "band", string(result.Band()), "fallback", outcome.Fallback)
	return result, outcome, nil
}

// OptimizeSection proposes a replacement for section and holds it as the
// pending draft. The ResumeDocument is not modified. Any assistant failure
// yields DemoSection.
func (c *Controller) OptimizeSection(ctx context.Context, section model.Section) (model.OptimizationDraft, Outcome, error) {
	if _, err := model.ParseSection(string(section)); err != nil {
		return model.OptimizationDraft{}, Outcome{}, err
	}

	c.mu.Lock()
	if c.state.Resume == nil || strings.TrimSpace(c.state.JobDescription) == "" {
		c.mu.Unlock()
		return model.OptimizationDraft{}, Outcome{}, &model.ValidationError{Field: "section", Message: "please complete resume parsing and job analysis first"}
	}
	resume := c.state.Resume.Clone()
	job := c.state.JobDescription
	creds := c.state.Credentials
	c.mu.Unlock()

	var outcome Outcome
	content, err := c.assistant.RewriteSection(ctx, creds, section, resume, job)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return model.OptimizationDraft{}, Outcome{}, ctxErr
		}
		c.logger.Warn("falling back", "step", "optimize", "section", section, "error", err)
		demo, derr := DemoSection(section, resume)
		if derr != nil {
			return model.OptimizationDraft{}, Outcome{}, derr
		}
		content = demo
		outcome = Outcome{Fallback: true, Cause: err}
		c.notify(model.NoticeWarning, "optimize", fmt.Sprintf("Optimization unavailable, showing demo %s.", section))
	}

	draft := model.OptimizationDraft{Section: section, Content: content}
	c.mu.Lock()
	d := draft
	c.state.Draft = &d
	c.mu.Unlock()

	c.logger.Info("section optimized", "section", section, "fallback", outcome.Fallback)
	return draft, outcome, nil
}

// AcceptOptimization merges the pending draft into the ResumeDocument,
// persists, and clears the draft.
func (c *Controller) AcceptOptimization() (model.ResumeDocument, error) {
	c.mu.Lock()
	updated, err := c.acceptLocked()
	c.mu.Unlock()
	if err != nil {
		return model.ResumeDocument{}, err
	}

	c.notify(model.NoticeSuccess, "accept", "Optimization accepted! Your resume has been updated.")
	return updated, nil
}

func (c *Controller) acceptLocked() (model.ResumeDocument, error) {
	if c.state.Draft == nil {
		return model.ResumeDocument{}, model.ErrNoDraft
	}
	if c.state.Resume == nil {
		return model.ResumeDocument{}, model.ErrNoResume
	}

	updated := c.state.Resume.Clone()
	if err := updated.ApplySection(c.state.Draft.Section, c.state.Draft.Content); err != nil {
		return model.ResumeDocument{}, fmt.Errorf("accepting %s: %w", c.state.Draft.Section, err)
	}

	c.state.Resume = &updated
	c.state.Draft = nil
	if err := c.persistLocked(); err != nil {
		return model.ResumeDocument{}, err
	}
	return updated.Clone(), nil
}

// DiscardOptimization drops the pending draft without touching the resume.
func (c *Controller) DiscardOptimization() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Draft == nil {
		return model.ErrNoDraft
	}
	c.state.Draft = nil
	return nil
}

// Reset clears the resume, job description, draft and match. With keepKeys the
// credentials survive and are saved on their own; otherwise the stored
// snapshot is removed.
func (c *Controller) Reset(keepKeys bool) error {
	c.mu.Lock()
	creds := c.state.Credentials
	c.state = State{}
	var err error
	if keepKeys {
		c.state.Credentials = creds
		err = c.persistLocked()
	} else if err = c.store.Clear(); err != nil {
		err = fmt.Errorf("clearing snapshot: %w", err)
	}
	c.mu.Unlock()
	if err != nil {
		return err
	}

	c.notify(model.NoticeSuccess, "reset", "Saved state cleared.")
	return nil
}

// Export writes the current resume to w in the plain-text export layout.
func (c *Controller) Export(w io.Writer) error {
	c.mu.Lock()
	if c.state.Resume == nil {
		c.mu.Unlock()
		return &model.ValidationError{Field: "resume", Message: "no resume data to export"}
	}
	doc := c.state.Resume.Clone()
	c.mu.Unlock()

	if _, err := io.WriteString(w, FormatResume(doc)); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

func (c *Controller) setResume(doc model.ResumeDocument) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := doc.Clone()
	c.state.Resume = &d
	return c.persistLocked()
}

// persistLocked writes the snapshot. c.mu must be held.
func (c *Controller) persistLocked() error {
	snap := model.Snapshot{
		Resume:         c.state.Resume,
		JobDescription: c.state.JobDescription,
		Credentials:    c.state.Credentials,
	}
	if err := c.store.Save(snap); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

func (c *Controller) notify(level model.NoticeLevel, step, msg string) {
	if c.notifier == nil {
		return
	}
	if err := c.notifier.Notify(model.Notice{Level: level, Step: step, Message: msg}); err != nil {
		c.logger.Warn("notify failed", "step", step, "error", err)
	}
}
