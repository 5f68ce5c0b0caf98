package extract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFormatFor(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{"resume.txt", FormatText, false},
		{"resume.MD", FormatText, false},
		{"resume", FormatText, false},
		{"job.html", FormatHTML, false},
		{"cv.pdf", FormatPDF, false},
		{"cv.docx", FormatDOCX, false},
		{"cv.doc", "", true},
		{"sheet.xlsx", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatFor(tt.name)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("FormatFor(%q) = %q, %v; want %q", tt.name, got, err, tt.want)
			}
		})
	}
}

func TestHTMLText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Senior Go Engineer", "Senior Go Engineer"},
		{"paragraphs", "<p>Build   services</p><p>Own <b>on-call</b></p>", "Build services\nOwn on-call"},
		{"encoded", "&lt;p&gt;Remote &amp; hybrid&lt;/p&gt;", "Remote & hybrid"},
		{"list", "<ul><li>Go</li><li>Kubernetes</li></ul>", "Go\nKubernetes"},
		{"script dropped", "<script>var x = 1;</script><div>Apply now</div>", "Apply now"},
		{"breaks", "Line one<br/>Line two", "Line one\nLine two"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTMLText(tt.input); got != tt.want {
				t.Errorf("HTMLText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStripDocxXML(t *testing.T) {
	raw := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		`<w:p><w:r><w:t>Jane Smith</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Go</w:t><w:tab/><w:t>SQL</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	if got, want := stripDocxXML(raw), "Jane Smith\nGo SQL"; got != want {
		t.Errorf("stripDocxXML = %q, want %q", got, want)
	}
}

func TestFile_Text(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	content := "Jane Smith\njane@example.com\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := File(context.Background(), path)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if got != content {
		t.Errorf("File = %q, want %q", got, content)
	}
}

func TestFile_HTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.html")
	if err := os.WriteFile(path, []byte("<h1>Go Engineer</h1><p>Remote</p>"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := File(context.Background(), path)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if got != "Go Engineer\nRemote" {
		t.Errorf("File = %q", got)
	}
}

func TestFile_Missing(t *testing.T) {
	if _, err := File(context.Background(), filepath.Join(t.TempDir(), "nope.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestBytes_InvalidDocuments(t *testing.T) {
	for _, f := range []Format{FormatPDF, FormatDOCX} {
		t.Run(string(f), func(t *testing.T) {
			if _, err := Bytes(context.Background(), []byte("not a document"), f); err == nil {
				t.Error("expected error for garbage input")
			}
		})
	}
}

func TestBytes_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Bytes(ctx, []byte("x"), FormatText); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
