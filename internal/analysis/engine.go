// Package analysis implements the deterministic text heuristics behind
// feed enrichment: sentiment, emotion, engagement, spam, quality scoring,
// tag and title suggestion, date and action-item extraction.
//
// Every method is a pure function of its inputs. Nothing here touches
// storage or the network, which keeps enrichment cheap enough to run
// synchronously on every create/update.
package analysis

import (
	"strings"
	"time"

	"edufeed/internal/common"
)

const (
	// MinRealtimeTextLen is the floor below which the realtime check
	// short-circuits instead of running the full suite.
	MinRealtimeTextLen = 5

	// MinTitleSuggestLen is the floor for title suggestion input.
	MinTitleSuggestLen = 10
)

type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Sentiment is the polarity verdict for a text
type Sentiment struct {
	Label string  `json:"label"` // positive, negative, neutral
	Score float64 `json:"score"` // -1..1
}

// Engagement predicts how much interaction a post will draw
type Engagement struct {
	Label string  `json:"label"` // high, medium, low
	Score float64 `json:"score"` // 0..100
}

// SpamCheck is the spam likelihood verdict
type SpamCheck struct {
	IsSpam bool    `json:"is_spam"`
	Score  float64 `json:"score"` // 0..1
}

var positiveWords = []string{
	"great", "good", "excellent", "congratulations", "well done", "success",
	"happy", "pleased", "thanks", "welcome", "bonus", "opportunity", "improved",
}

var negativeWords = []string{
	"fail", "failed", "problem", "cancelled", "canceled", "postponed", "issue",
	"unfortunately", "warning", "penalty", "late", "missing", "error", "bad",
}

// AnalyzeSentiment counts polarity markers and normalizes into [-1, 1]
func (e *Engine) AnalyzeSentiment(text string) Sentiment {
	lower := strings.ToLower(text)

	var pos, neg int
	for _, w := range positiveWords {
		pos += strings.Count(lower, w)
	}
	for _, w := range negativeWords {
		neg += strings.Count(lower, w)
	}

	if pos == 0 && neg == 0 {
		return Sentiment{Label: "neutral", Score: 0}
	}

	score := float64(pos-neg) / float64(pos+neg)
	label := "neutral"
	if score > 0.2 {
		label = "positive"
	} else if score < -0.2 {
		label = "negative"
	}
	return Sentiment{Label: label, Score: score}
}

// emotion markers, checked in order so the result is stable
var emotionMarkers = []struct {
	label string
	words []string
}{
	{"excited", []string{"excited", "amazing", "awesome", "can't wait", "finally", "!"}},
	{"worried", []string{"worried", "concern", "afraid", "risk", "careful", "warning"}},
	{"frustrated", []string{"frustrated", "again", "still not", "annoying", "why"}},
	{"grateful", []string{"thank", "grateful", "appreciate"}},
}

// DetectEmotion returns the dominant emotion marker, or neutral
func (e *Engine) DetectEmotion(text string) string {
	lower := strings.ToLower(text)

	best := "neutral"
	bestCount := 0
	for _, m := range emotionMarkers {
		count := 0
		for _, w := range m.words {
			count += strings.Count(lower, w)
		}
		if count > bestCount {
			best = m.label
			bestCount = count
		}
	}
	return best
}

// engagement weight per content type; announcements and events travel further
var engagementTypeWeight = map[common.ContentType]float64{
	common.ContentTypeAnnouncement: 15,
	common.ContentTypeEvent:        12,
	common.ContentTypeAssignment:   8,
	common.ContentTypeProgramme:    5,
	common.ContentTypeResource:     5,
}

var callToActionWords = []string{
	"join", "register", "sign up", "participate", "reply", "vote", "share",
	"don't miss", "check", "submit",
}

// PredictEngagement scores expected interaction from text features and
// the content type's reach.
func (e *Engine) PredictEngagement(text string, contentType common.ContentType) Engagement {
	lower := strings.ToLower(text)
	words := len(strings.Fields(text))

	score := 30.0
	score += engagementTypeWeight[contentType]

	// short punchy posts do better than walls of text
	switch {
	case words >= 20 && words <= 120:
		score += 20
	case words > 120 && words <= 300:
		score += 10
	case words > 300:
		score -= 10
	}

	if strings.Contains(text, "?") {
		score += 10
	}
	for _, w := range callToActionWords {
		if strings.Contains(lower, w) {
			score += 5
		}
	}
	if strings.Contains(text, "!") {
		score += 5
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	label := "low"
	switch {
	case score >= 70:
		label = "high"
	case score >= 45:
		label = "medium"
	}
	return Engagement{Label: label, Score: score}
}

var spamWords = []string{
	"free money", "click here", "winner", "lottery", "100% free", "buy now",
	"limited offer", "earn cash", "$$$", "no cost",
}

// DetectSpamLikelihood flags promotional junk. Educational posts rarely
// shout in caps or stack exclamation marks.
func (e *Engine) DetectSpamLikelihood(text string) SpamCheck {
	lower := strings.ToLower(text)
	score := 0.0

	for _, w := range spamWords {
		if strings.Contains(lower, w) {
			score += 0.25
		}
	}

	if strings.Contains(text, "!!!") {
		score += 0.2
	}
	if strings.Count(lower, "http://")+strings.Count(lower, "https://") > 2 {
		score += 0.2
	}

	// caps ratio over letters only
	var letters, caps int
	for _, r := range text {
		if r >= 'a' && r <= 'z' {
			letters++
		} else if r >= 'A' && r <= 'Z' {
			letters++
			caps++
		}
	}
	if letters > 20 && float64(caps)/float64(letters) > 0.6 {
		score += 0.3
	}

	if score > 1 {
		score = 1
	}
	return SpamCheck{IsSpam: score >= 0.5, Score: score}
}

// textual urgency cues, strongest first
var criticalCues = []string{"urgent", "immediate", "immediately", "asap", "right away", "critical"}
var mediumCues = []string{"soon", "quickly", "deadline", "important", "reminder", "last day"}

// DetectUrgencyLevel combines textual cues with deadline proximity.
// A close deadline raises urgency regardless of wording: <=24h floors
// at critical, <=3 days at high, <=7 days at medium.
func (e *Engine) DetectUrgencyLevel(text string, deadline *time.Time) common.UrgencyLevel {
	lower := strings.ToLower(text)

	textLevel := common.UrgencyNone
	for _, w := range mediumCues {
		if strings.Contains(lower, w) {
			textLevel = common.UrgencyMedium
			break
		}
	}
	for _, w := range criticalCues {
		if strings.Contains(lower, w) {
			textLevel = common.UrgencyHigh
			break
		}
	}

	deadlineLevel := common.UrgencyNone
	if deadline != nil {
		until := time.Until(*deadline)
		switch {
		case until <= 0:
			// already past; still worth flagging loudly
			deadlineLevel = common.UrgencyCritical
		case until <= 24*time.Hour:
			deadlineLevel = common.UrgencyCritical
		case until <= 3*24*time.Hour:
			deadlineLevel = common.UrgencyHigh
		case until <= 7*24*time.Hour:
			deadlineLevel = common.UrgencyMedium
		default:
			deadlineLevel = common.UrgencyLow
		}
	}

	// both signals high at once escalates to critical
	if textLevel == common.UrgencyHigh && deadlineLevel == common.UrgencyHigh {
		return common.UrgencyCritical
	}
	return common.MaxUrgency(textLevel, deadlineLevel)
}

var politenessMarkers = []string{"thanks", "thank you", "regards", "please", "kindly", "sincerely"}

// CheckTone is the engine's soft tone suggestion. The enrichment layer
// applies its own keyword override on top of this.
func (e *Engine) CheckTone(text string, contentType common.ContentType) common.Tone {
	lower := strings.ToLower(text)

	for _, w := range criticalCues {
		if strings.Contains(lower, w) {
			return common.ToneUrgent
		}
	}
	for _, w := range politenessMarkers {
		if strings.Contains(lower, w) {
			return common.ToneFormal
		}
	}
	if contentType == common.ContentTypeAssignment {
		return common.ToneFormal
	}
	return common.ToneInformational
}
