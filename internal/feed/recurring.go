package feed

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"edufeed/internal/analysis"
	"edufeed/internal/common"
	"edufeed/internal/dbmysql"
)

// Window constants. The 7-day analysis window and the 3-day reminder
// horizon are intentionally different features; do not unify them.
const (
	AnalysisWindowDays  = 7
	ReminderHorizonDays = 3
	DedupLookback       = 24 * time.Hour
)

// RecurringAnalyzer produces synthetic content from windowed batch
// analysis: weekly summaries, missing-content diagnostics and deadline
// reminders. Everything it creates carries IsAIGenerated=true.
type RecurringAnalyzer struct {
	itemRepo Items
	engine   *analysis.Engine
}

func NewRecurringAnalyzer(items Items, engine *analysis.Engine) *RecurringAnalyzer {
	return &RecurringAnalyzer{itemRepo: items, engine: engine}
}

// SummaryDraft holds the fields of a synthetic item before construction.
// Score and tone overrides ride along instead of being recomputed, so the
// generator controls how its own output is presented.
type SummaryDraft struct {
	Title          string
	Description    string
	ContentType    common.ContentType
	QualityScore   float64
	Tone           common.Tone
}

// buildSyntheticItem maps a summary draft onto the entity explicitly,
// field by field.
func buildSyntheticItem(draft SummaryDraft, authorID string, now time.Time) *dbmysql.FeedItem {
	return &dbmysql.FeedItem{
		Title:          draft.Title,
		Description:    draft.Description,
		ContentType:    draft.ContentType.String(),
		IsActive:       true,
		AuthorID:       authorID,
		CreatedAt:      now,
		UpdatedAt:      now,
		AIQualityScore: draft.QualityScore,
		AITone:         draft.Tone.String(),
		IsAIGenerated:  true,
		VideoStatus:    common.VideoStatusNone.String(),
	}
}

// GenerateWeeklySummary aggregates a week of items into a summary draft.
// Returns nil for an empty week: no activity, no summary post.
func (a *RecurringAnalyzer) GenerateWeeklySummary(items []dbmysql.FeedItem) *SummaryDraft {
	if len(items) == 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, item := range items {
		counts[item.ContentType]++
	}

	// stable order for the counts block
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Strings(types)

	var b strings.Builder
	fmt.Fprintf(&b, "This week the feed saw %d post(s).\n\n", len(items))
	b.WriteString("Activity by category:\n")
	for _, t := range types {
		fmt.Fprintf(&b, "- %s: %d\n", t, counts[t])
	}

	// highlight the posts predicted to draw the most attention
	ranked := make([]dbmysql.FeedItem, len(items))
	copy(ranked, items)
	sort.SliceStable(ranked, func(i, j int) bool {
		ei := a.engine.PredictEngagement(ranked[i].Description, common.ContentType(ranked[i].ContentType))
		ej := a.engine.PredictEngagement(ranked[j].Description, common.ContentType(ranked[j].ContentType))
		return ei.Score > ej.Score
	})

	b.WriteString("\nHighlights:\n")
	for i, item := range ranked {
		if i == 3 {
			break
		}
		fmt.Fprintf(&b, "- %s\n", item.Title)
	}

	return &SummaryDraft{
		Title:        fmt.Sprintf("Weekly summary — %d post(s)", len(items)),
		Description:  b.String(),
		ContentType:  common.ContentTypeAnnouncement,
		QualityScore: 8.0,
		Tone:         common.ToneInformational,
	}
}

// MissingContentSuggestion flags a content type that is absent or thin
// in the analysis window
type MissingContentSuggestion struct {
	ContentType string `json:"content_type"`
	Reason      string `json:"reason"`
}

// DetectMissingContent compares the window distribution against the
// expected baseline. With no items at all, everything is missing.
func (a *RecurringAnalyzer) DetectMissingContent(items []dbmysql.FeedItem, days int) []MissingContentSuggestion {
	counts := make(map[common.ContentType]int)
	for _, item := range items {
		counts[common.ContentType(item.ContentType)]++
	}

	var suggestions []MissingContentSuggestion
	for _, ct := range common.ExpectedContentTypes {
		switch n := counts[ct]; {
		case n == 0:
			suggestions = append(suggestions, MissingContentSuggestion{
				ContentType: ct.String(),
				Reason:      fmt.Sprintf("no %s posted in the last %d days", ct, days),
			})
		case n == 1 && len(items) >= 5:
			suggestions = append(suggestions, MissingContentSuggestion{
				ContentType: ct.String(),
				Reason:      fmt.Sprintf("only one %s in the last %d days, underrepresented", ct, days),
			})
		}
	}
	return suggestions
}

// GenerateDeadlineReminder drafts a reminder for an item whose deadline
// is imminent. Returns nil when there is no deadline or it is not within
// the reminder horizon.
func (a *RecurringAnalyzer) GenerateDeadlineReminder(item *dbmysql.FeedItem) *SummaryDraft {
	if item.Deadline == nil {
		return nil
	}

	now := time.Now()
	until := item.Deadline.Sub(now)
	if until < 0 || until > ReminderHorizonDays*24*time.Hour {
		return nil
	}

	daysLeft := int(until.Hours()/24) + 1
	return &SummaryDraft{
		Title: fmt.Sprintf("⏰ Reminder: %s", item.Title),
		Description: fmt.Sprintf(
			"Deadline approaching for %q: %s (%d day(s) left). Make sure everything is submitted on time.",
			item.Title, item.Deadline.Format("Mon 02 Jan 15:04"), daysLeft,
		),
		ContentType:  common.ContentTypeAnnouncement,
		QualityScore: 7.5,
		Tone:         common.ToneUrgent,
	}
}

// --------- BATCH ORCHESTRATION ---------

// windowItems loads the active items created inside the trailing window
func (a *RecurringAnalyzer) windowItems(ctx context.Context) ([]dbmysql.FeedItem, error) {
	windowStart := time.Now().Add(-AnalysisWindowDays * 24 * time.Hour)
	return a.itemRepo.ListItems(ctx, Filter{
		ActiveOnly:   true,
		CreatedAfter: &windowStart,
	})
}

// RunWeeklySummary publishes the weekly summary as a synthetic item.
// Returns the created item, or nil with a zero error for an empty week.
func (a *RecurringAnalyzer) RunWeeklySummary(ctx context.Context, actorID string) (*dbmysql.FeedItem, int, error) {
	items, err := a.windowItems(ctx)
	if err != nil {
		return nil, 0, err
	}

	draft := a.GenerateWeeklySummary(items)
	if draft == nil {
		return nil, len(items), nil
	}

	summary := buildSyntheticItem(*draft, actorID, time.Now())
	if err := a.itemRepo.CreateItem(ctx, summary); err != nil {
		return nil, len(items), err
	}
	return summary, len(items), nil
}

// MissingContentReport is the diagnostics payload for the missing-content view
type MissingContentReport struct {
	Suggestions    []MissingContentSuggestion `json:"suggestions"`
	ItemCount      int                        `json:"item_count"`
	Distribution   map[string]int             `json:"distribution"`
	AnalysisPeriod string                     `json:"analysis_period"`
}

func (a *RecurringAnalyzer) RunMissingContentCheck(ctx context.Context) (*MissingContentReport, error) {
	items, err := a.windowItems(ctx)
	if err != nil {
		return nil, err
	}

	distribution := make(map[string]int)
	for _, item := range items {
		distribution[item.ContentType]++
	}

	return &MissingContentReport{
		Suggestions:    a.DetectMissingContent(items, AnalysisWindowDays),
		ItemCount:      len(items),
		Distribution:   distribution,
		AnalysisPeriod: fmt.Sprintf("last %d days", AnalysisWindowDays),
	}, nil
}

// RunDeadlineReminderSweep creates a reminder for every active item with
// a deadline inside the horizon, skipping items that already got one in
// the last day. Rerunning the sweep within the same day is a no-op.
func (a *RecurringAnalyzer) RunDeadlineReminderSweep(ctx context.Context, actorID string) (int, error) {
	now := time.Now()
	horizon := now.Add(ReminderHorizonDays * 24 * time.Hour)

	items, err := a.itemRepo.ListItems(ctx, Filter{
		ActiveOnly:   true,
		DeadlineFrom: &now,
		DeadlineTo:   &horizon,
	})
	if err != nil {
		return 0, err
	}

	created := 0
	for i := range items {
		item := &items[i]

		draft := a.GenerateDeadlineReminder(item)
		if draft == nil {
			continue
		}

		// dedup: one reminder per item per day
		lookback := now.Add(-DedupLookback)
		existing, err := a.itemRepo.CountItems(ctx, Filter{
			TitleContains:   item.Title,
			AIGeneratedOnly: true,
			CreatedAfter:    &lookback,
		})
		if err != nil {
			return created, err
		}
		if existing > 0 {
			continue // duplicate suppressed, not an error
		}

		reminder := buildSyntheticItem(*draft, actorID, now)
		if err := a.itemRepo.CreateItem(ctx, reminder); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
