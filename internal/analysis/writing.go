package analysis

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"edufeed/internal/common"
)

var (
	doubleSpaceRe   = regexp.MustCompile(`  +`)
	spaceBeforePunc = regexp.MustCompile(` +([,.;:!?])`)
	wordRe          = regexp.MustCompile(`\w+`)
)

// common misspellings, applied in order
var corrections = []struct{ wrong, right string }{
	{"teh", "the"},
	{"recieve", "receive"},
	{"occured", "occurred"},
	{"definately", "definitely"},
	{"seperate", "separate"},
	{"tommorow", "tomorrow"},
	{"untill", "until"},
	{"wich", "which"},
}

// CheckGrammar returns an ordered list of surface-level issues. It is a
// lint pass, not a parser; each rule names the problem it spotted.
func (e *Engine) CheckGrammar(text string) []string {
	var issues []string

	if doubleSpaceRe.MatchString(text) {
		issues = append(issues, "multiple consecutive spaces")
	}
	if spaceBeforePunc.MatchString(text) {
		issues = append(issues, "space before punctuation")
	}
	if pair := findRepeatedWord(text); pair != "" {
		issues = append(issues, fmt.Sprintf("repeated word: %q", pair))
	}

	for _, sentence := range splitSentences(text) {
		trimmed := strings.TrimSpace(sentence)
		if trimmed == "" {
			continue
		}
		if r := []rune(trimmed)[0]; unicode.IsLower(r) {
			issues = append(issues, fmt.Sprintf("sentence should start with a capital letter: %q", truncate(trimmed, 40)))
		}
		if len(strings.Fields(trimmed)) > 40 {
			issues = append(issues, fmt.Sprintf("very long sentence (%d words), consider splitting", len(strings.Fields(trimmed))))
		}
	}

	trimmed := strings.TrimSpace(text)
	if trimmed != "" && !strings.ContainsAny(string(trimmed[len(trimmed)-1]), ".!?") {
		issues = append(issues, "text does not end with punctuation")
	}

	lower := strings.ToLower(text)
	for _, c := range corrections {
		if containsWord(lower, c.wrong) {
			issues = append(issues, fmt.Sprintf("possible misspelling: %q -> %q", c.wrong, c.right))
		}
	}

	return issues
}

// AutoCorrectCommonErrors fixes what CheckGrammar can fix mechanically:
// spacing, known misspellings, sentence capitalization, final punctuation.
func (e *Engine) AutoCorrectCommonErrors(text string) string {
	out := doubleSpaceRe.ReplaceAllString(text, " ")
	out = spaceBeforePunc.ReplaceAllString(out, "$1")

	for _, c := range corrections {
		out = replaceWord(out, c.wrong, c.right)
	}

	out = capitalizeSentences(out)

	out = strings.TrimSpace(out)
	if out != "" && !strings.ContainsAny(string(out[len(out)-1]), ".!?") {
		out += "."
	}
	return out
}

// SuggestImprovements proposes edits based on what similar posts of this
// type usually contain. Callers surface at most the first two.
func (e *Engine) SuggestImprovements(text string, contentType common.ContentType) []string {
	var suggestions []string
	lower := strings.ToLower(text)
	words := len(strings.Fields(text))

	if words < 15 {
		suggestions = append(suggestions, "Add more detail so readers know exactly what is expected")
	}

	switch contentType {
	case common.ContentTypeAssignment:
		if !strings.Contains(lower, "deadline") && !strings.Contains(lower, "due") {
			suggestions = append(suggestions, "Mention the due date explicitly in the text")
		}
		if !strings.Contains(lower, "submit") {
			suggestions = append(suggestions, "Explain how and where to submit the work")
		}
	case common.ContentTypeEvent:
		if !strings.Contains(lower, "where") && !strings.Contains(lower, "room") && !strings.Contains(lower, "online") {
			suggestions = append(suggestions, "Add the location or meeting link")
		}
	case common.ContentTypeAnnouncement:
		if !strings.Contains(text, "?") && !containsAny(lower, callToActionWords) {
			suggestions = append(suggestions, "End with a call to action to boost engagement")
		}
	}

	if words > 300 {
		suggestions = append(suggestions, "Consider splitting this into shorter posts")
	}
	if !containsAny(lower, politenessMarkers) && contentType != common.ContentTypeResource {
		suggestions = append(suggestions, "A short greeting or thank-you makes the post friendlier")
	}

	if len(suggestions) > 5 {
		suggestions = suggestions[:5]
	}
	return suggestions
}

// title prefixes per content type
var titlePrefixes = map[common.ContentType]string{
	common.ContentTypeProgramme:    "Programme",
	common.ContentTypeAssignment:   "Assignment",
	common.ContentTypeAnnouncement: "Announcement",
	common.ContentTypeEvent:        "Event",
	common.ContentTypeResource:     "Resource",
}

// SuggestTitle derives candidate titles from the opening of the description.
// Input below MinTitleSuggestLen should be rejected by the caller first.
func (e *Engine) SuggestTitle(description string, contentType common.ContentType) []string {
	head := strings.TrimSpace(description)
	if sentences := splitSentences(head); len(sentences) > 0 {
		head = strings.TrimSpace(sentences[0])
	}
	head = strings.TrimRight(head, ".!?")
	head = truncate(head, 60)

	prefix := titlePrefixes[contentType]
	candidates := []string{
		head,
		fmt.Sprintf("%s: %s", prefix, head),
	}
	if e.DetectUrgencyLevel(description, nil).Rank() >= common.UrgencyMedium.Rank() {
		candidates = append(candidates, fmt.Sprintf("%s — action required", head))
	} else {
		candidates = append(candidates, fmt.Sprintf("%s — details inside", head))
	}
	return candidates
}

// CalculateQualityScore rates a text on a 0..10 scale. Starts from a
// neutral 5.0 and moves with length, structure, dates, courtesy and
// spamminess. Always clamped to the invariant range.
func (e *Engine) CalculateQualityScore(text string, contentType common.ContentType) float64 {
	score := 5.0
	words := len(strings.Fields(text))
	lower := strings.ToLower(text)

	switch {
	case words >= 30 && words <= 250:
		score += 2.0
	case words >= 15:
		score += 1.0
	case words < 5:
		score -= 2.0
	}

	if len(splitSentences(text)) >= 2 {
		score += 0.5
	}
	if len(e.ExtractDates(text)) > 0 {
		score += 1.0
	}
	if containsAny(lower, politenessMarkers) {
		score += 0.5
	}
	if contentType == common.ContentTypeAssignment && (strings.Contains(lower, "due") || strings.Contains(lower, "deadline")) {
		score += 0.5
	}

	score -= float64(len(e.CheckGrammar(text))) * 0.3
	score -= e.DetectSpamLikelihood(text).Score * 3.0

	if score < 0 {
		score = 0
	}
	if score > 10 {
		score = 10
	}
	// one decimal, like the UI displays it
	return float64(int(score*10+0.5)) / 10
}

// ---- small text helpers ----

func splitSentences(text string) []string {
	return regexp.MustCompile(`[.!?]+`).Split(text, -1)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max])) + "…"
}

func containsAny(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// findRepeatedWord returns the first word immediately repeated after itself,
// e.g. "the the". RE2 has no backreferences, so this walks the word matches
// and only flags pairs separated by nothing but spaces.
func findRepeatedWord(text string) string {
	locs := wordRe.FindAllStringIndex(text, -1)
	for i := 1; i < len(locs); i++ {
		gap := text[locs[i-1][1]:locs[i][0]]
		if strings.Trim(gap, " ") != "" {
			continue
		}
		prev := text[locs[i-1][0]:locs[i-1][1]]
		cur := text[locs[i][0]:locs[i][1]]
		if strings.EqualFold(prev, cur) {
			return prev + " " + cur
		}
	}
	return ""
}

func containsWord(lower, word string) bool {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(word) + `\b`)
	return re.MatchString(lower)
}

func replaceWord(text, wrong, right string) string {
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(wrong) + `\b`)
	return re.ReplaceAllString(text, right)
}

func capitalizeSentences(text string) string {
	runes := []rune(text)
	capNext := true
	for i, r := range runes {
		switch {
		case unicode.IsLetter(r):
			if capNext {
				runes[i] = unicode.ToUpper(r)
			}
			capNext = false
		case r == '.' || r == '!' || r == '?':
			capNext = true
		}
	}
	return string(runes)
}
