package ai

import (
	"strings"
	"testing"
)

func TestParseSummaryPlainJSON(t *testing.T) {
	raw := `{"summary": "A report.", "keyPoints": ["one", "two"]}`

	res := parseSummary(raw)
	if res.Summary != "A report." {
		t.Errorf("Summary = %q", res.Summary)
	}
	if len(res.KeyPoints) != 2 || res.KeyPoints[0] != "one" {
		t.Errorf("KeyPoints = %v", res.KeyPoints)
	}
	if res.Chapters == nil || res.Speakers == nil {
		t.Error("Chapters/Speakers should default to empty, not nil")
	}
}

func TestParseSummaryCodeFenced(t *testing.T) {
	raw := "```json\n{\"summary\": \"Fenced.\", \"keyPoints\": []}\n```"

	res := parseSummary(raw)
	if res.Summary != "Fenced." {
		t.Errorf("Summary = %q", res.Summary)
	}
}

func TestParseSummarySurroundingProse(t *testing.T) {
	raw := `Sure! Here is the analysis you asked for:

{"summary": "Wrapped in prose.", "keyPoints": ["a"], "chapters": [{"time": "0:00", "title": "Intro", "description": "Opening remarks"}]}

Let me know if you need anything else.`

	res := parseSummary(raw)
	if res.Summary != "Wrapped in prose." {
		t.Errorf("Summary = %q", res.Summary)
	}
	if len(res.Chapters) != 1 || res.Chapters[0].Title != "Intro" {
		t.Errorf("Chapters = %v", res.Chapters)
	}
}

func TestParseSummaryBracesInsideStrings(t *testing.T) {
	raw := `{"summary": "Contains {braces} inside", "keyPoints": []}`

	res := parseSummary(raw)
	if res.Summary != "Contains {braces} inside" {
		t.Errorf("Summary = %q", res.Summary)
	}
}

func TestParseSummaryGarbage(t *testing.T) {
	raw := "The model refused to answer and produced this instead. " + strings.Repeat("x", 600)

	res := parseSummary(raw)
	if len(res.Summary) > 500 {
		t.Errorf("garbage summary not truncated: %d chars", len(res.Summary))
	}
	if !strings.HasPrefix(res.Summary, "The model refused") {
		t.Errorf("Summary = %q", res.Summary)
	}
	if res.KeyPoints == nil || len(res.KeyPoints) != 0 {
		t.Errorf("KeyPoints = %v, want empty slice", res.KeyPoints)
	}
}

func TestParseSummaryMissingFields(t *testing.T) {
	res := parseSummary(`{}`)
	if res.Summary != "Summary not available." {
		t.Errorf("Summary = %q", res.Summary)
	}
	if res.KeyPoints == nil || len(res.KeyPoints) != 0 {
		t.Errorf("KeyPoints = %v, want empty slice", res.KeyPoints)
	}
}

func TestParseSummaryNullKeyPoints(t *testing.T) {
	res := parseSummary(`{"summary": "ok", "keyPoints": null}`)
	if res.KeyPoints == nil {
		t.Fatal("KeyPoints is nil for a null field, want empty slice")
	}
	if len(res.KeyPoints) != 0 {
		t.Errorf("KeyPoints = %v, want empty", res.KeyPoints)
	}
}

func TestCoerceKeyPointsLegacyShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"strings", `["a", "b"]`, []string{"a", "b"}},
		{"objects with point", `[{"point": "a"}, {"point": "b"}]`, []string{"a", "b"}},
		{"objects with text", `[{"text": "a"}]`, []string{"a"}},
		{"mixed object fields", `[{"insight": "a"}, {"title": "b"}]`, []string{"a", "b"}},
		{"not a list", `"just a string"`, []string{}},
		{"empty", ``, []string{}},
		{"null", `null`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := coerceKeyPoints([]byte(tt.raw))
			if got == nil {
				t.Fatalf("coerceKeyPoints(%s) = nil, want a slice", tt.raw)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("coerceKeyPoints(%s) = %v, want %v", tt.raw, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("coerceKeyPoints(%s)[%d] = %q, want %q", tt.raw, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFirstJSONObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare object", `{"a": 1}`, `{"a": 1}`},
		{"nested", `before {"a": {"b": 2}} after`, `{"a": {"b": 2}}`},
		{"no object", "nothing here", ""},
		{"unterminated", `{"a": 1`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstJSONObject(tt.in); got != tt.want {
				t.Errorf("firstJSONObject(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
