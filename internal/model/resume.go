package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ResumeDocument is the structured form of a resume. The same shape is produced
// by LLM extraction and by the offline heuristic extractor.
type ResumeDocument struct {
	Personal   Personal     `json:"personal"`
	Summary    string       `json:"summary"`
	Experience []Experience `json:"experience"`
	Skills     Skills       `json:"skills"`
	Education  []Education  `json:"education"`
	Projects   []Project    `json:"projects"`
}

// Personal holds name and contact fields.
type Personal struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
}

// Experience is one work history entry.
type Experience struct {
	Company          string   `json:"company"`
	Position         string   `json:"position"`
	Duration         string   `json:"duration"`
	Responsibilities []string `json:"responsibilities"`
	Achievements     []string `json:"achievements"`
}

type Skills struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
	GPA         string `json:"gpa"`
}

type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// Section names one top-level field of ResumeDocument that can be optimized
// independently.
type Section string

const (
	SectionSummary    Section = "summary"
	SectionExperience Section = "experience"
	SectionSkills     Section = "skills"
	SectionEducation  Section = "education"
	SectionProjects   Section = "projects"
	SectionPersonal   Section = "personal"
)

// Sections lists every optimizable section in display order.
var Sections = []Section{
	SectionSummary,
	SectionExperience,
	SectionSkills,
	SectionEducation,
	SectionProjects,
	SectionPersonal,
}

// ParseSection resolves a user-supplied section name (case-insensitive).
func ParseSection(name string) (Section, error) {
	s := Section(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Sections {
		if s == known {
			return s, nil
		}
	}
	return "", &ValidationError{Field: "section", Message: fmt.Sprintf("unknown section %q", name)}
}

// SectionJSON returns the current content of section s as JSON.
func (d *ResumeDocument) SectionJSON(s Section) (json.RawMessage, error) {
	v, err := d.sectionValue(s)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// ApplySection replaces section s with content. Only that field is touched; on
// error the document is left unchanged.
func (d *ResumeDocument) ApplySection(s Section, content json.RawMessage) error {
	switch s {
	case SectionSummary:
		var v string
		if err := json.Unmarshal(content, &v); err != nil {
			return fmt.Errorf("decode %s: %w", s, err)
		}
		d.Summary = v
	case SectionExperience:
		var v []Experience
		if err := json.Unmarshal(content, &v); err != nil {
			return fmt.Errorf("decode %s: %w", s, err)
		}
		d.Experience = v
	case SectionSkills:
		var v Skills
		if err := json.Unmarshal(content, &v); err != nil {
			return fmt.Errorf("decode %s: %w", s, err)
		}
		d.Skills = v
	case SectionEducation:
		var v []Education
		if err := json.Unmarshal(content, &v); err != nil {
			return fmt.Errorf("decode %s: %w", s, err)
		}
		d.Education = v
	case SectionProjects:
		var v []Project
		if err := json.Unmarshal(content, &v); err != nil {
			return fmt.Errorf("decode %s: %w", s, err)
		}
		d.Projects = v
	case SectionPersonal:
		var v Personal
		if err := json.Unmarshal(content, &v); err != nil {
			return fmt.Errorf("decode %s: %w", s, err)
		}
		d.Personal = v
	default:
		return &ValidationError{Field: "section", Message: fmt.Sprintf("unknown section %q", s)}
	}
	return nil
}

func (d *ResumeDocument) sectionValue(s Section) (any, error) {
	switch s {
	case SectionSummary:
		return d.Summary, nil
	case SectionExperience:
		return d.Experience, nil
	case SectionSkills:
		return d.Skills, nil
	case SectionEducation:
		return d.Education, nil
	case SectionProjects:
		return d.Projects, nil
	case SectionPersonal:
		return d.Personal, nil
	}
	return nil, &ValidationError{Field: "section", Message: fmt.Sprintf("unknown section %q", s)}
}

// NormalizeSection checks that raw has the shape of section s and returns it
// re-encoded in canonical form.
func NormalizeSection(s Section, raw []byte) (json.RawMessage, error) {
	var scratch ResumeDocument
	if err := scratch.ApplySection(s, raw); err != nil {
		return nil, err
	}
	return scratch.SectionJSON(s)
}

// Clone returns a deep copy of d. Nil and empty slices are preserved as-is so
// the copy encodes to the same JSON.
func (d ResumeDocument) Clone() ResumeDocument {
	out := d
	if d.Experience != nil {
		out.Experience = make([]Experience, len(d.Experience))
		for i, e := range d.Experience {
			e.Responsibilities = cloneStrings(e.Responsibilities)
			e.Achievements = cloneStrings(e.Achievements)
			out.Experience[i] = e
		}
	}
	out.Skills = Skills{
		Technical: cloneStrings(d.Skills.Technical),
		Soft:      cloneStrings(d.Skills.Soft),
	}
	if d.Education != nil {
		out.Education = make([]Education, len(d.Education))
		copy(out.Education, d.Education)
	}
	if d.Projects != nil {
		out.Projects = make([]Project, len(d.Projects))
		for i, p := range d.Projects {
			p.Technologies = cloneStrings(p.Technologies)
			out.Projects[i] = p
		}
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// OptimizationDraft is a proposed replacement for one section. It only becomes
// part of the ResumeDocument when accepted.
type OptimizationDraft struct {
	Section Section         `json:"section"`
	Content json.RawMessage `json:"content"`
}
