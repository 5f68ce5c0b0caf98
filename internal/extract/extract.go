package extract

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format is a supported input document format.
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// ErrUnsupportedFormat is returned for file extensions with no extractor.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// FormatFor maps a file name to its format by extension. Names without an
// extension are treated as plain text.
func FormatFor(name string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case "", ".txt", ".md", ".markdown", ".text":
		return FormatText, nil
	case ".html", ".htm":
		return FormatHTML, nil
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// File reads path and returns its text. "-" reads stdin as plain text.
func File(ctx context.Context, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return Bytes(ctx, data, FormatText)
	}

	format, err := FormatFor(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	text, err := Bytes(ctx, data, format)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", path, err)
	}
	return text, nil
}

// Bytes extracts text from an in-memory document of the given format.
func Bytes(ctx context.Context, data []byte, format Format) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch format {
	case FormatText:
		return string(data), nil
	case FormatHTML:
		return HTMLText(string(data)), nil
	case FormatPDF:
		return pdfText(data)
	case FormatDOCX:
		return docxText(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

var (
	htmlBlockRegex = regexp.MustCompile(`(?i)<(br|/p|/div|/li|/h[1-6]|/tr)[^>]*>`)
	htmlTagRegex   = regexp.MustCompile(`<[^>]*>`)
	htmlDropRegex  = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
)

// HTMLText converts an HTML or HTML-encoded string to plain text. Block-level
// tags become line breaks and runs of spaces within a line are collapsed.
func HTMLText(content string) string {
	unescaped := html.UnescapeString(content)
	unescaped = htmlDropRegex.ReplaceAllString(unescaped, "")
	unescaped = htmlBlockRegex.ReplaceAllString(unescaped, "\n")
	plain := htmlTagRegex.ReplaceAllString(unescaped, "")
	return normalizeLines(plain)
}

func pdfText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return normalizeLines(buf.String()), nil
}

func docxText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer doc.Close()

	return stripDocxXML(doc.Editable().GetContent()), nil
}

// stripDocxXML keeps character data from a WordprocessingML body, ending a
// line at every paragraph and break.
func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return normalizeLines(htmlTagRegex.ReplaceAllString(raw, " "))
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.StartElement:
			if t.Name.Local == "tab" {
				buf.WriteString(" ")
			}
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				buf.WriteString("\n")
			}
		}
	}
	return normalizeLines(buf.String())
}

// normalizeLines collapses whitespace within each line and drops blank lines.
func normalizeLines(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if f := strings.Fields(line); len(f) > 0 {
			lines = append(lines, strings.Join(f, " "))
		}
	}
	return strings.Join(lines, "\n")
}
