package ai

import (
	_ "embed"
	"text/template"
)

var (
	//go:embed prompts/parse_resume.tmpl
	parseResumePromptRaw string
	//go:embed prompts/analyze_match.tmpl
	analyzeMatchPromptRaw string
	//go:embed prompts/optimize_section.tmpl
	optimizeSectionPromptRaw string
)

// Prompt templates are parsed once at package init and reused on every call.
var (
	ParseResumeTemplate     = template.Must(template.New("parse_resume").Parse(parseResumePromptRaw))
	AnalyzeMatchTemplate    = template.Must(template.New("analyze_match").Parse(analyzeMatchPromptRaw))
	OptimizeSectionTemplate = template.Must(template.New("optimize_section").Parse(optimizeSectionPromptRaw))
)
