package ai

import (
	"errors"
	"testing"

	"github.com/amishk599/tailor/internal/model"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `  {"a":1}  `, `{"a":1}`},
		{"json fence", "Here you go:\n```json\n{\"a\":1}\n```\nThanks", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"other language hint", "```javascript\n[1,2]\n```", `[1,2]`},
		{"first block wins", "```json\n{\"a\":1}\n```\n```json\n{\"b\":2}\n```", `{"a":1}`},
		{"single line", "```json{\"a\":1}```", `{"a":1}`},
		{"unterminated", "```json\n{\"a\":1}", `{"a":1}`},
		{"hint on payload line", "```json {\"score\":85}\n```", `{"score":85}`},
		{"hint on payload line array", "```json [1,2]\n```", `[1,2]`},
		{"hint alone then null", "```json\nnull\n```", `null`},
		{"payload on first line", "```{\"a\":1}\n```", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFence(tt.in); got != tt.want {
				t.Errorf("StripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecodeJSON_MalformedResponse(t *testing.T) {
	var v map[string]any
	for _, in := range []string{"", "   ", "not json at all", "```json\n{broken\n```", "null", "```json\nnull\n```"} {
		err := DecodeJSON(in, &v)
		if !errors.Is(err, model.ErrMalformedResponse) {
			t.Errorf("DecodeJSON(%q) = %v, want ErrMalformedResponse", in, err)
		}
	}
}

func TestDecodeJSON_FencedObject(t *testing.T) {
	var v struct {
		Score float64 `json:"score"`
	}
	if err := DecodeJSON("```json\n{\"score\": 72}\n```", &v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Score != 72 {
		t.Errorf("Score = %v, want 72", v.Score)
	}
}

func TestDecodeJSON_HintSharesPayloadLine(t *testing.T) {
	var v struct {
		Score float64 `json:"score"`
	}
	if err := DecodeJSON("```json {\"score\":85}\n```", &v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Score != 85 {
		t.Errorf("Score = %v, want 85", v.Score)
	}
}

func TestBlankJSON(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{`null`, true},
		{`""`, true},
		{`[]`, true},
		{`{}`, true},
		{`{"a":{"b":[" "]}}`, true},
		{`"x"`, false},
		{`0`, false},
		{`{"a":["x"]}`, false},
		{`not json`, false},
	}
	for _, tt := range tests {
		if got := blankJSON([]byte(tt.in)); got != tt.want {
			t.Errorf("blankJSON(%s) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
