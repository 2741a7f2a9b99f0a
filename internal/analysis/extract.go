package analysis

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"edufeed/internal/common"
)

// ExtractedDate pairs a raw date expression with its parsed value.
// ParsedValue is nil when the expression looks like a date but does
// not parse cleanly; the raw text is still worth surfacing.
type ExtractedDate struct {
	Text        string     `json:"text"`
	ParsedValue *time.Time `json:"parsed_value,omitempty"`
}

var datePatterns = []*regexp.Regexp{
	// 25/12/2026, 25-12-2026, 2026-12-25
	regexp.MustCompile(`\b\d{4}-\d{1,2}-\d{1,2}\b`),
	regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`),
	// January 5, Jan 5 2026, 5 January
	regexp.MustCompile(`(?i)\b(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.? \d{1,2}(?:st|nd|rd|th)?(?:,? \d{4})?\b`),
	regexp.MustCompile(`(?i)\b\d{1,2}(?:st|nd|rd|th)? (?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)(?:,? \d{4})?\b`),
	// 14:30, 9h00
	regexp.MustCompile(`\b\d{1,2}:\d{2}\b`),
}

// ExtractDates finds date expressions in order of appearance and parses
// them with dateparse where possible. Duplicate expressions collapse to
// their first occurrence.
func (e *Engine) ExtractDates(text string) []ExtractedDate {
	type match struct {
		start int
		text  string
	}
	var matches []match

	for _, re := range datePatterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			matches = append(matches, match{start: loc[0], text: text[loc[0]:loc[1]]})
		}
	}

	// order by position, first pattern wins on overlap
	for i := 0; i < len(matches); i++ {
		for j := i + 1; j < len(matches); j++ {
			if matches[j].start < matches[i].start {
				matches[i], matches[j] = matches[j], matches[i]
			}
		}
	}

	seen := make(map[string]bool)
	var out []ExtractedDate
	for _, m := range matches {
		key := strings.ToLower(m.text)
		if seen[key] {
			continue
		}
		seen[key] = true

		ed := ExtractedDate{Text: m.text}
		if parsed, err := dateparse.ParseAny(m.text); err == nil {
			ed.ParsedValue = &parsed
		}
		out = append(out, ed)
	}
	return out
}

var actionVerbs = []string{
	"submit", "complete", "read", "review", "prepare", "bring", "register",
	"sign up", "attend", "send", "upload", "finish", "check", "install",
}

var obligationMarkers = []string{"must ", "should ", "don't forget", "remember to", "make sure", "required to"}

// ExtractActionItems pulls out the sentences that ask the reader to do
// something, in document order.
func (e *Engine) ExtractActionItems(text string) []string {
	var items []string

	for _, sentence := range splitSentences(text) {
		trimmed := strings.TrimSpace(sentence)
		if trimmed == "" {
			continue
		}
		lower := strings.ToLower(trimmed)

		isAction := containsAny(lower, obligationMarkers)
		if !isAction {
			for _, v := range actionVerbs {
				if strings.HasPrefix(lower, v+" ") || strings.Contains(lower, "please "+v) {
					isAction = true
					break
				}
			}
		}
		if isAction {
			items = append(items, trimmed)
		}
	}
	return items
}

// tag vocabulary, checked in order so output stays deterministic
var tagKeywords = []struct {
	tag   string
	words []string
}{
	{"exam", []string{"exam", "test", "midterm", "final"}},
	{"homework", []string{"homework", "assignment", "exercise"}},
	{"project", []string{"project", "group work", "presentation"}},
	{"lecture", []string{"lecture", "course", "class", "session"}},
	{"deadline", []string{"deadline", "due", "last day"}},
	{"meeting", []string{"meeting", "office hours", "appointment"}},
	{"grades", []string{"grade", "result", "score", "marks"}},
	{"schedule", []string{"schedule", "timetable", "calendar", "planning"}},
}

// SuggestTags proposes up to 5 tags: the content type first, then
// vocabulary hits in a fixed order.
func (e *Engine) SuggestTags(text string, contentType common.ContentType) []string {
	lower := strings.ToLower(text)

	tags := []string{contentType.String()}
	for _, tk := range tagKeywords {
		if containsAny(lower, tk.words) && tk.tag != contentType.String() {
			tags = append(tags, tk.tag)
		}
		if len(tags) == 5 {
			break
		}
	}
	return tags
}

// SuggestResources maps content to helpful resource pointers. Kept
// intentionally simple: the platform links static study resources.
func (e *Engine) SuggestResources(text string, contentType common.ContentType) []string {
	lower := strings.ToLower(text)
	var resources []string

	switch contentType {
	case common.ContentTypeAssignment:
		resources = append(resources, "Submission guidelines", "Citation and formatting guide")
	case common.ContentTypeProgramme:
		resources = append(resources, "Course catalogue")
	case common.ContentTypeEvent:
		resources = append(resources, "Campus map and room finder")
	}

	if containsAny(lower, []string{"exam", "test", "revision"}) {
		resources = append(resources, "Past exam archive")
	}
	if containsAny(lower, []string{"library", "book", "reading"}) {
		resources = append(resources, "Library catalogue")
	}
	return resources
}
