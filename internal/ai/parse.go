package ai

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/omnibrief/omnibrief/internal/model"
)

var reCodeFence = regexp.MustCompile("(?s)```(?:json)?\n?|\n?```")

// parseSummary is the single normalization step between raw model text and
// the canonical schema. It strips markdown fencing, isolates the first
// balanced JSON object from surrounding prose, fills defaults for missing
// fields, and coerces key points out of legacy shapes. A parse failure
// degrades to the raw text as the summary, never an error.
func parseSummary(raw string) model.SummaryResult {
	cleaned := strings.TrimSpace(reCodeFence.ReplaceAllString(raw, ""))
	if block := firstJSONObject(cleaned); block != "" {
		cleaned = block
	}

	var parsed struct {
		Summary   string          `json:"summary"`
		KeyPoints json.RawMessage `json:"keyPoints"`
		Chapters  []model.Chapter `json:"chapters"`
		Speakers  []model.Speaker `json:"speakers"`
	}

	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return model.SummaryResult{
			Summary:   truncate(strings.TrimSpace(raw), 500),
			KeyPoints: []string{},
		}
	}

	res := model.SummaryResult{
		Summary:   parsed.Summary,
		KeyPoints: coerceKeyPoints(parsed.KeyPoints),
		Chapters:  parsed.Chapters,
		Speakers:  parsed.Speakers,
	}
	if res.Summary == "" {
		res.Summary = "Summary not available."
	}
	if res.Chapters == nil {
		res.Chapters = []model.Chapter{}
	}
	if res.Speakers == nil {
		res.Speakers = []model.Speaker{}
	}
	return res
}

// firstJSONObject returns the first balanced {...} block in s, tolerating
// braces inside JSON strings. Empty when none exists.
func firstJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// coerceKeyPoints accepts the shapes models actually emit: an array of
// strings, an array of objects carrying the point under a known field, or
// bare scalars. Anything else becomes an empty list.
func coerceKeyPoints(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}

	var strs []string
	if err := json.Unmarshal(raw, &strs); err == nil {
		// A literal null unmarshals cleanly but leaves the slice nil.
		if strs == nil {
			return []string{}
		}
		return strs
	}

	var objs []map[string]any
	if err := json.Unmarshal(raw, &objs); err == nil {
		points := make([]string, 0, len(objs))
		for _, obj := range objs {
			for _, field := range []string{"point", "text", "insight", "title"} {
				if v, ok := obj[field].(string); ok && v != "" {
					points = append(points, v)
					break
				}
			}
		}
		return points
	}

	return []string{}
}
