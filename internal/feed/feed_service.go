package feed

import (
	"context"
	"log"
	"strings"
	"time"

	"edufeed/internal/analysis"
	"edufeed/internal/common"
	"edufeed/internal/dbmysql"
)

// Draft is the caller-supplied shape of an item before enrichment
type Draft struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ContentType string     `json:"content_type"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	IsActive    bool       `json:"is_active"`
}

// FeedUsecase is what the HTTP handlers program against
type FeedUsecase interface {
	CreateItem(ctx context.Context, draft Draft, authorID string) (*dbmysql.FeedItem, error)
	UpdateItem(ctx context.Context, id int64, draft Draft, actorID string) (*dbmysql.FeedItem, error)
	DeleteItem(ctx context.Context, id int64, actorID string) error
	GetItem(ctx context.Context, id int64) (*dbmysql.FeedItem, error)
	ListItems(ctx context.Context, f Filter) ([]dbmysql.FeedItem, error)
	ListStats(ctx context.Context) (*ListStats, error)
	RealtimeCheck(text string, contentType string) *RealtimeResult
	AnalyzeItem(ctx context.Context, id int64) (*ItemAnalysis, error)
	SuggestTitles(description string, contentType string) ([]string, error)
	Dashboard(ctx context.Context) (*DashboardStats, error)
}

// FeedService runs the enrichment pipeline around item persistence.
// All analysis engine calls for one create/update are independent of
// each other but complete before anything is persisted; a heuristic
// failure degrades to a neutral value instead of blocking the save.
type FeedService struct {
	itemRepo Items
	engine   *analysis.Engine
}

func NewFeedService(items Items, engine *analysis.Engine) *FeedService {
	return &FeedService{
		itemRepo: items,
		engine:   engine,
	}
}

// draftToItem maps every draft field onto the entity explicitly. New
// draft fields must be added here by hand so none are silently dropped.
func draftToItem(draft Draft, authorID string) *dbmysql.FeedItem {
	return &dbmysql.FeedItem{
		Title:       strings.TrimSpace(draft.Title),
		Description: strings.TrimSpace(draft.Description),
		ContentType: common.ParseContentType(draft.ContentType).String(),
		Deadline:    draft.Deadline,
		IsActive:    draft.IsActive,
		AuthorID:    authorID,
		VideoStatus: common.VideoStatusNone.String(),
	}
}

func validateDraft(draft Draft) error {
	if err := common.ValidateTitle(draft.Title); err != nil {
		return err
	}
	if err := common.ValidateDescription(draft.Description); err != nil {
		return err
	}
	return common.ValidateContentType(common.ParseContentType(draft.ContentType).String())
}

// degraded runs one heuristic and absorbs any panic. The field keeps
// whatever neutral value it was initialized with; the post still saves.
func degraded(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("analysis degraded: %s: %v", name, r)
		}
	}()
	fn()
}

// enrich recomputes every derived field from the current base fields.
// Nothing is carried over from a previous pass.
func (s *FeedService) enrich(item *dbmysql.FeedItem) {
	ct := common.ContentType(item.ContentType)

	item.AISuggestions = nil
	item.AIExtractedDates = nil
	item.SuggestedResources = nil
	item.AIQualityScore = 5.0
	item.AITone = common.ToneInformational.String()

	degraded("suggestions", func() {
		item.AISuggestions = s.engine.SuggestImprovements(item.Description, ct)
	})
	degraded("dates", func() {
		for _, d := range s.engine.ExtractDates(item.Description) {
			item.AIExtractedDates = append(item.AIExtractedDates, d.Text)
		}
	})
	degraded("resources", func() {
		item.SuggestedResources = s.engine.SuggestResources(item.Description, ct)
	})
	degraded("quality", func() {
		item.AIQualityScore = s.engine.CalculateQualityScore(item.Description, ct)
	})
	degraded("tone", func() {
		suggested := s.engine.CheckTone(item.Description, ct)
		item.AITone = applyToneOverride(item.Description, suggested).String()
	})
}

// applyToneOverride layers the keyword rule over the engine suggestion.
// The rule is a precedence rule, not a fallback: it always wins.
func applyToneOverride(text string, suggested common.Tone) common.Tone {
	_ = suggested

	lower := strings.ToLower(text)
	if strings.Contains(lower, "urgent") || strings.Contains(lower, "immediate") {
		return common.ToneUrgent
	}
	for _, w := range []string{"thanks", "regards", "please"} {
		if strings.Contains(lower, w) {
			return common.ToneFormal
		}
	}
	return common.ToneInformational
}

// --------- ITEMS ---------

// CreateItem enriches a draft and persists it. Enrichment completes
// fully before the single save, so readers never see a half-enriched row.
func (s *FeedService) CreateItem(ctx context.Context, draft Draft, authorID string) (*dbmysql.FeedItem, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	item := draftToItem(draft, authorID)
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt

	s.enrich(item)

	if err := s.itemRepo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem overwrites the base fields and reruns the full enrichment
// suite. Only the author may update.
func (s *FeedService) UpdateItem(ctx context.Context, id int64, draft Draft, actorID string) (*dbmysql.FeedItem, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	item, err := s.itemRepo.GetItemByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.AuthorID != actorID {
		return nil, common.ErrPermissionDenied
	}

	item.Title = strings.TrimSpace(draft.Title)
	item.Description = strings.TrimSpace(draft.Description)
	item.ContentType = common.ParseContentType(draft.ContentType).String()
	item.Deadline = draft.Deadline
	item.IsActive = draft.IsActive
	item.UpdatedAt = time.Now()

	s.enrich(item)

	if err := s.itemRepo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *FeedService) DeleteItem(ctx context.Context, id int64, actorID string) error {
	item, err := s.itemRepo.GetItemByID(ctx, id)
	if err != nil {
		return err
	}
	if item.AuthorID != actorID {
		return common.ErrPermissionDenied
	}
	return s.itemRepo.DeleteItem(ctx, id)
}

func (s *FeedService) GetItem(ctx context.Context, id int64) (*dbmysql.FeedItem, error) {
	return s.itemRepo.GetItemByID(ctx, id)
}

func (s *FeedService) ListItems(ctx context.Context, f Filter) ([]dbmysql.FeedItem, error) {
	f.ActiveOnly = true
	return s.itemRepo.ListItems(ctx, f)
}

// ListStats is the stats block shown above the feed list
type ListStats struct {
	TotalItems   int64 `json:"total_items"`
	ContentTypes int   `json:"content_types"`
	UrgentItems  int64 `json:"urgent_items"`
}

// UrgentWindowDays bounds the "urgent items" stat. Deliberately separate
// from the 7-day analysis window: realtime urgency and weekly analysis
// are different features with different horizons.
const UrgentWindowDays = 3

func (s *FeedService) ListStats(ctx context.Context) (*ListStats, error) {
	total, err := s.itemRepo.CountItems(ctx, Filter{ActiveOnly: true})
	if err != nil {
		return nil, err
	}

	types, err := s.itemRepo.DistinctContentTypes(ctx, Filter{ActiveOnly: true})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	horizon := now.Add(UrgentWindowDays * 24 * time.Hour)
	urgent, err := s.itemRepo.CountItems(ctx, Filter{
		ActiveOnly:   true,
		DeadlineFrom: &now,
		DeadlineTo:   &horizon,
	})
	if err != nil {
		return nil, err
	}

	return &ListStats{
		TotalItems:   total,
		ContentTypes: len(types),
		UrgentItems:  urgent,
	}, nil
}

// --------- LIVE ANALYSIS ---------

// TextStats describes the raw text being checked
type TextStats struct {
	Length    int `json:"length"`
	Words     int `json:"words"`
	Sentences int `json:"sentences"`
}

// RealtimeResult is returned by the as-you-type check endpoint
type RealtimeResult struct {
	TooShort       bool                   `json:"too_short,omitempty"`
	GrammarIssues  []string               `json:"grammar_issues,omitempty"`
	Improvements   []string               `json:"improvements,omitempty"`
	ExtractedDates []string               `json:"extracted_dates,omitempty"`
	ToneSuggestion string                 `json:"tone_suggestion,omitempty"`
	Sentiment      *analysis.Sentiment    `json:"sentiment,omitempty"`
	Engagement     *analysis.Engagement   `json:"engagement,omitempty"`
	QualityScore   float64                `json:"quality_score"`
	AutoCorrect    string                 `json:"auto_correct,omitempty"`
	Stats          TextStats              `json:"stats"`
}

// RealtimeCheck runs the writing-assistant suite against draft text.
// Input below the minimum length short-circuits without touching the
// engine at all.
func (s *FeedService) RealtimeCheck(text string, contentType string) *RealtimeResult {
	if len(text) < analysis.MinRealtimeTextLen {
		return &RealtimeResult{TooShort: true}
	}

	ct := common.ParseContentType(contentType)

	grammar := s.engine.CheckGrammar(text)
	if len(grammar) > 5 {
		grammar = grammar[:5]
	}

	var dates []string
	for _, d := range s.engine.ExtractDates(text) {
		dates = append(dates, d.Text)
	}

	sentiment := s.engine.AnalyzeSentiment(text)
	engagement := s.engine.PredictEngagement(text, ct)

	return &RealtimeResult{
		GrammarIssues:  grammar,
		Improvements:   s.engine.SuggestImprovements(text, ct),
		ExtractedDates: dates,
		ToneSuggestion: s.engine.CheckTone(text, ct).String(),
		Sentiment:      &sentiment,
		Engagement:     &engagement,
		QualityScore:   s.engine.CalculateQualityScore(text, ct),
		AutoCorrect:    s.engine.AutoCorrectCommonErrors(text),
		Stats: TextStats{
			Length:    len(text),
			Words:     len(strings.Fields(text)),
			Sentences: strings.Count(text, ".") + strings.Count(text, "!") + strings.Count(text, "?"),
		},
	}
}

// ItemAnalysis is the full live analysis shown on the detail view
type ItemAnalysis struct {
	Sentiment   analysis.Sentiment  `json:"sentiment"`
	Emotion     string              `json:"emotion"`
	Engagement  analysis.Engagement `json:"engagement"`
	Urgency     string              `json:"urgency"`
	SpamCheck   analysis.SpamCheck  `json:"spam_check"`
	ActionItems []string            `json:"action_items"`
	Tags        []string            `json:"tags"`
}

func (s *FeedService) AnalyzeItem(ctx context.Context, id int64) (*ItemAnalysis, error) {
	item, err := s.itemRepo.GetItemByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ct := common.ContentType(item.ContentType)
	return &ItemAnalysis{
		Sentiment:   s.engine.AnalyzeSentiment(item.Description),
		Emotion:     s.engine.DetectEmotion(item.Description),
		Engagement:  s.engine.PredictEngagement(item.Description, ct),
		Urgency:     s.engine.DetectUrgencyLevel(item.Description, item.Deadline).String(),
		SpamCheck:   s.engine.DetectSpamLikelihood(item.Description),
		ActionItems: s.engine.ExtractActionItems(item.Description),
		Tags:        s.engine.SuggestTags(item.Description, ct),
	}, nil
}

// SuggestTitles proposes titles for a description. Rejects input too
// short to say anything meaningful about.
func (s *FeedService) SuggestTitles(description string, contentType string) ([]string, error) {
	if len(description) < analysis.MinTitleSuggestLen {
		return nil, common.NewValidationError("description too short for title suggestion")
	}
	return s.engine.SuggestTitle(description, common.ParseContentType(contentType)), nil
}
