package workflow

import (
	"strings"
	"testing"

	"github.com/amishk599/tailor/internal/model"
)

func TestFormatResume_Layout(t *testing.T) {
	doc := model.ResumeDocument{
		Personal: model.Personal{Name: "Jane Smith", Email: "jane@x.io", Phone: "415-555-0199", Location: "Austin, TX", GitHub: "github.com/jane"},
		Summary:  "Platform engineer",
		Experience: []model.Experience{
			{Company: "Acme", Position: "SRE", Duration: "2020-2024", Responsibilities: []string{"On-call"}, Achievements: []string{"Cut MTTR 30%"}},
		},
		Skills:    model.Skills{Technical: []string{"Go", "SQL"}, Soft: []string{"Writing"}},
		Education: []model.Education{{Degree: "BS CS", Institution: "State U", Year: "2018", GPA: "3.9"}, {Degree: "MS CS", Institution: "Tech", Year: "2020"}},
	}

	want := "Jane Smith\n" +
		"jane@x.io | 415-555-0199\n" +
		"Austin, TX\n" +
		"GitHub: github.com/jane\n" +
		"\n" +
		"PROFESSIONAL SUMMARY\n" +
		"===================\n" +
		"Platform engineer\n\n" +
		"WORK EXPERIENCE\n" +
		"===============\n" +
		"SRE at Acme (2020-2024)\n" +
		"• On-call\n" +
		"• Cut MTTR 30%\n" +
		"\n" +
		"SKILLS\n" +
		"======\n" +
		"Technical: Go, SQL\n" +
		"Soft Skills: Writing\n\n" +
		"EDUCATION\n" +
		"=========\n" +
		"BS CS, State U (2018)\n" +
		"GPA: 3.9\n" +
		"\n" +
		"MS CS, Tech (2020)\n" +
		"\n"

	if got := FormatResume(doc); got != want {
		t.Errorf("FormatResume mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestFormatResume_BulletCount(t *testing.T) {
	doc := model.ResumeDocument{
		Experience: []model.Experience{
			{Company: "A", Position: "P1", Responsibilities: []string{"r1", "r2"}, Achievements: []string{"a1"}},
			{Company: "B", Position: "P2", Responsibilities: []string{"r3"}, Achievements: []string{"a2", "a3", "a4"}},
		},
	}

	got := FormatResume(doc)
	if n := strings.Count(got, "• "); n != 7 {
		t.Errorf("bullet count = %d, want 7", n)
	}
}

func TestFormatResume_OmitsEmptyProfileLinks(t *testing.T) {
	got := FormatResume(HeuristicResume(""))
	if !strings.Contains(got, "LinkedIn: linkedin.com/in/johndoe\n") {
		t.Error("missing LinkedIn line")
	}

	got = FormatResume(model.ResumeDocument{Personal: model.Personal{Name: "X"}})
	if strings.Contains(got, "LinkedIn:") || strings.Contains(got, "GitHub:") {
		t.Errorf("empty links rendered:\n%s", got)
	}
}
