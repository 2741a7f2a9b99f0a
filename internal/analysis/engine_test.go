package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edufeed/internal/common"
)

func TestAnalyzeSentiment(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		name      string
		text      string
		wantLabel string
	}{
		{"positive", "Great results, congratulations to everyone, well done!", "positive"},
		{"negative", "Unfortunately the session was cancelled due to a problem.", "negative"},
		{"neutral no markers", "The lecture takes place in room B12.", "neutral"},
		{"mixed cancels out", "Good news and bad news today.", "neutral"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.AnalyzeSentiment(tt.text)
			assert.Equal(t, tt.wantLabel, got.Label)
			assert.GreaterOrEqual(t, got.Score, -1.0)
			assert.LessOrEqual(t, got.Score, 1.0)
		})
	}
}

func TestAnalyzeSentiment_Deterministic(t *testing.T) {
	e := NewEngine()
	text := "Thanks everyone, great session, but one problem remains."

	first := e.AnalyzeSentiment(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, e.AnalyzeSentiment(text))
	}
}

func TestDetectEmotion(t *testing.T) {
	e := NewEngine()

	assert.Equal(t, "excited", e.DetectEmotion("So excited, this is amazing!"))
	assert.Equal(t, "worried", e.DetectEmotion("I am worried about the risk here, be careful"))
	assert.Equal(t, "grateful", e.DetectEmotion("Thank you all, much appreciated. I am grateful."))
	assert.Equal(t, "neutral", e.DetectEmotion("The schedule is posted on the board."))
}

func TestPredictEngagement(t *testing.T) {
	e := NewEngine()

	// announcement with question, CTA and exclamation in the sweet-spot length
	high := e.PredictEngagement(
		"Big news! Are you joining the hackathon this year? Register today, share with your classmates and don't miss the kickoff session on Friday.",
		common.ContentTypeAnnouncement,
	)
	assert.Equal(t, "high", high.Label)
	assert.GreaterOrEqual(t, high.Score, 70.0)

	low := e.PredictEngagement("ok", common.ContentTypeResource)
	assert.Equal(t, "low", low.Label)

	// score stays inside 0..100
	assert.LessOrEqual(t, high.Score, 100.0)
	assert.GreaterOrEqual(t, low.Score, 0.0)
}

func TestDetectSpamLikelihood(t *testing.T) {
	e := NewEngine()

	spam := e.DetectSpamLikelihood("FREE MONEY!!! Click here now, limited offer, buy now, winner takes the lottery $$$")
	assert.True(t, spam.IsSpam)
	assert.GreaterOrEqual(t, spam.Score, 0.5)
	assert.LessOrEqual(t, spam.Score, 1.0)

	clean := e.DetectSpamLikelihood("Reading list for next week is in the shared folder.")
	assert.False(t, clean.IsSpam)
	assert.Less(t, clean.Score, 0.5)
}

func TestDetectUrgencyLevel(t *testing.T) {
	e := NewEngine()
	now := time.Now()

	in12h := now.Add(12 * time.Hour)
	in2d := now.Add(2 * 24 * time.Hour)
	in5d := now.Add(5 * 24 * time.Hour)
	in30d := now.Add(30 * 24 * time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name     string
		text     string
		deadline *time.Time
		want     common.UrgencyLevel
	}{
		{"no signals", "course notes uploaded", nil, common.UrgencyNone},
		{"medium cue only", "reminder about the reading", nil, common.UrgencyMedium},
		{"critical cue only", "urgent change of plans", nil, common.UrgencyHigh},
		{"deadline within a day", "hand in your work", &in12h, common.UrgencyCritical},
		{"deadline within three days", "hand in your work", &in2d, common.UrgencyHigh},
		{"deadline within a week", "hand in your work", &in5d, common.UrgencyMedium},
		{"distant deadline", "hand in your work", &in30d, common.UrgencyLow},
		{"past deadline flags loudly", "hand in your work", &past, common.UrgencyCritical},
		{"high text plus high deadline escalates", "urgent submission", &in2d, common.UrgencyCritical},
		{"text cue cannot be lowered by far deadline", "urgent submission", &in30d, common.UrgencyHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.DetectUrgencyLevel(tt.text, tt.deadline))
		})
	}
}

func TestCheckTone(t *testing.T) {
	e := NewEngine()

	assert.Equal(t, common.ToneUrgent, e.CheckTone("this is urgent", common.ContentTypeProgramme))
	assert.Equal(t, common.ToneFormal, e.CheckTone("kindly review the attached notes", common.ContentTypeProgramme))
	// assignments default to formal even without markers
	assert.Equal(t, common.ToneFormal, e.CheckTone("exercise sheet four", common.ContentTypeAssignment))
	assert.Equal(t, common.ToneInformational, e.CheckTone("new room for the lecture", common.ContentTypeProgramme))
}

func TestEngine_PureFunctions(t *testing.T) {
	// the same input always yields the same output across a fresh engine
	text := "URGENT: submit the report by 2026-09-15. Thanks!"
	a, b := NewEngine(), NewEngine()

	require.Equal(t, a.AnalyzeSentiment(text), b.AnalyzeSentiment(text))
	require.Equal(t, a.DetectEmotion(text), b.DetectEmotion(text))
	require.Equal(t, a.DetectSpamLikelihood(text), b.DetectSpamLikelihood(text))
	require.Equal(t,
		a.PredictEngagement(text, common.ContentTypeAssignment),
		b.PredictEngagement(text, common.ContentTypeAssignment))
	require.Equal(t,
		a.CalculateQualityScore(text, common.ContentTypeAssignment),
		b.CalculateQualityScore(text, common.ContentTypeAssignment))
}
