package workflow

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/amishk599/tailor/internal/model"
)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)
)

// HeuristicResume builds the placeholder resume used when no provider is
// available. Only email and phone are taken from text, and only when a match
// is found.
func HeuristicResume(text string) model.ResumeDocument {
	email := "john.doe@email.com"
	if m := emailPattern.FindString(text); m != "" {
		email = m
	}
	phone := "+1-555-123-4567"
	if m := phonePattern.FindString(text); m != "" {
		phone = m
	}

	return model.ResumeDocument{
		Personal: model.Personal{
			Name:     "John Doe",
			Email:    email,
			Phone:    phone,
			Location: "San Francisco, CA",
			LinkedIn: "linkedin.com/in/johndoe",
			GitHub:   "github.com/johndoe",
		},
		Summary: "Experienced software developer with 5+ years in full-stack development...",
		Experience: []model.Experience{
			{
				Company:          "Tech Corp",
				Position:         "Senior Developer",
				Duration:         "2022-Present",
				Responsibilities: []string{"Led development team", "Architected scalable solutions"},
				Achievements:     []string{"Increased system performance by 40%", "Reduced deployment time by 60%"},
			},
		},
		Skills: model.Skills{
			Technical: []string{"JavaScript", "Python", "React", "Node.js", "AWS"},
			Soft:      []string{"Leadership", "Communication", "Problem-solving"},
		},
		Education: []model.Education{
			{Degree: "BS Computer Science", Institution: "University of Technology", Year: "2018", GPA: "3.8"},
		},
		Projects: []model.Project{
			{
				Name:         "E-commerce Platform",
				Description:  "Built full-stack e-commerce solution",
				Technologies: []string{"React", "Node.js", "MongoDB"},
			},
		},
	}
}

// CannedMatch is the fixed result shown when match analysis fails. It does
// not depend on the inputs.
func CannedMatch() model.MatchResult {
	return model.MatchResult{
		Score:    78,
		Analysis: "Good match with strong technical alignment. Resume shows relevant experience but could benefit from highlighting specific skills mentioned in the job description.",
		Strengths: []string{
			"Strong technical background",
			"Relevant project experience",
			"Good educational foundation",
		},
		Gaps: []string{
			"Missing specific framework experience",
			"Limited cloud certifications",
			"Could emphasize leadership skills more",
		},
		Recommendations: []string{
			"Add cloud certification details",
			"Highlight team leadership experience",
			"Include specific metrics and achievements",
		},
	}
}

var demoSections = map[model.Section]any{
	model.SectionSummary: "Results-driven software engineer with 5+ years of experience in full-stack development and cloud architecture. Proven track record of leading cross-functional teams and delivering scalable solutions that drive business growth. Expertise in modern web technologies with strong focus on performance optimization and user experience.",
	model.SectionExperience: []model.Experience{
		{
			Company:          "Tech Corp",
			Position:         "Senior Full-Stack Developer",
			Duration:         "2022-Present",
			Responsibilities: []string{"Led development of microservices architecture", "Mentored junior developers", "Implemented CI/CD pipelines"},
			Achievements:     []string{"Increased system performance by 40%", "Reduced deployment time by 60%", "Led team of 5 engineers"},
		},
	},
	model.SectionSkills: model.Skills{
		Technical: []string{"JavaScript/TypeScript", "React/Vue.js", "Node.js", "Python", "AWS/Azure", "Docker", "Kubernetes"},
		Soft:      []string{"Technical Leadership", "Cross-functional Collaboration", "Agile Methodologies"},
	},
}

// HasDemoSection reports whether section has fixed demo content. Other
// sections fall back to their current content.
func HasDemoSection(section model.Section) bool {
	_, ok := demoSections[section]
	return ok
}

// DemoSection returns the fixed replacement for section. Sections without a
// demo replacement come back unchanged from doc.
func DemoSection(section model.Section, doc model.ResumeDocument) (json.RawMessage, error) {
	if v, ok := demoSections[section]; ok {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode demo %s: %w", section, err)
		}
		return b, nil
	}
	return doc.SectionJSON(section)
}
