package workflow

import (
	"fmt"
	"strings"

	"github.com/amishk599/tailor/internal/model"
)

// FormatResume renders doc in the plain-text export layout: contact header,
// then PROFESSIONAL SUMMARY, WORK EXPERIENCE, SKILLS and EDUCATION blocks.
// Projects are not exported.
func FormatResume(doc model.ResumeDocument) string {
	var b strings.Builder

	p := doc.Personal
	fmt.Fprintf(&b, "%s\n", p.Name)
	fmt.Fprintf(&b, "%s | %s\n", p.Email, p.Phone)
	fmt.Fprintf(&b, "%s\n", p.Location)
	if p.LinkedIn != "" {
		fmt.Fprintf(&b, "LinkedIn: %s\n", p.LinkedIn)
	}
	if p.GitHub != "" {
		fmt.Fprintf(&b, "GitHub: %s\n", p.GitHub)
	}
	b.WriteString("\n")

	b.WriteString("PROFESSIONAL SUMMARY\n")
	b.WriteString("===================\n")
	fmt.Fprintf(&b, "%s\n\n", doc.Summary)

	b.WriteString("WORK EXPERIENCE\n")
	b.WriteString("===============\n")
	for _, e := range doc.Experience {
		fmt.Fprintf(&b, "%s at %s (%s)\n", e.Position, e.Company, e.Duration)
		for _, r := range e.Responsibilities {
			fmt.Fprintf(&b, "• %s\n", r)
		}
		for _, a := range e.Achievements {
			fmt.Fprintf(&b, "• %s\n", a)
		}
		b.WriteString("\n")
	}

	b.WriteString("SKILLS\n")
	b.WriteString("======\n")
	fmt.Fprintf(&b, "Technical: %s\n", strings.Join(doc.Skills.Technical, ", "))
	fmt.Fprintf(&b, "Soft Skills: %s\n\n", strings.Join(doc.Skills.Soft, ", "))

	b.WriteString("EDUCATION\n")
	b.WriteString("=========\n")
	for _, ed := range doc.Education {
		fmt.Fprintf(&b, "%s, %s (%s)\n", ed.Degree, ed.Institution, ed.Year)
		if ed.GPA != "" {
			fmt.Fprintf(&b, "GPA: %s\n", ed.GPA)
		}
		b.WriteString("\n")
	}

	return b.String()
}
