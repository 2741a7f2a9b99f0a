package feed

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edufeed/internal/analysis"
	"edufeed/internal/common"
	"edufeed/internal/dbmysql"
)

func newServiceWithMock(t *testing.T) (*FeedService, *MockItems) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := NewMockItems(ctrl)
	return NewFeedService(mockRepo, analysis.NewEngine()), mockRepo
}

func TestFeedService_CreateItem_Enriches(t *testing.T) {
	svc, mockRepo := newServiceWithMock(t)
	ctx := context.Background()

	mockRepo.EXPECT().CreateItem(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, item *dbmysql.FeedItem) error {
			item.ItemID = 1
			return nil
		})

	draft := Draft{
		Title:       "Final exam",
		Description: "URGENT: submit your revision notes immediately. The exam covers all chapters.",
		ContentType: "assignment",
		IsActive:    true,
	}

	item, err := svc.CreateItem(ctx, draft, "alice")
	require.NoError(t, err)
	require.NotNil(t, item)

	assert.Equal(t, int64(1), item.ItemID)
	assert.Equal(t, "alice", item.AuthorID)
	assert.Equal(t, "assignment", item.ContentType)
	assert.Equal(t, common.VideoStatusNone.String(), item.VideoStatus)

	// enrichment ran before the save
	assert.GreaterOrEqual(t, item.AIQualityScore, 0.0)
	assert.LessOrEqual(t, item.AIQualityScore, 10.0)
	assert.Equal(t, common.ToneUrgent.String(), item.AITone)
	assert.NotEmpty(t, item.AISuggestions)
}

func TestFeedService_CreateItem_ValidationFailures(t *testing.T) {
	svc, _ := newServiceWithMock(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		draft Draft
	}{
		{"empty title", Draft{Title: "", Description: "something useful"}},
		{"empty description", Draft{Title: "A title", Description: ""}},
		{"title too long", Draft{Title: string(make([]byte, 201)), Description: "ok"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateItem(ctx, tt.draft, "alice")
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestFeedService_CreateItem_DefaultsUnknownContentType(t *testing.T) {
	svc, mockRepo := newServiceWithMock(t)
	ctx := context.Background()

	mockRepo.EXPECT().CreateItem(ctx, gomock.Any()).Return(nil)

	item, err := svc.CreateItem(ctx, Draft{
		Title:       "Hello",
		Description: "Just a plain update for everyone reading the feed today.",
		ContentType: "nonsense",
	}, "alice")
	require.NoError(t, err)
	assert.Equal(t, common.ContentTypeProgramme.String(), item.ContentType)
}

func TestApplyToneOverride(t *testing.T) {
	tests := []struct {
		name string
		text string
		want common.Tone
	}{
		{"urgent keyword", "this is URGENT, read now", common.ToneUrgent},
		{"immediate keyword", "immediate action needed", common.ToneUrgent},
		{"politeness", "please find the reading list attached", common.ToneFormal},
		{"thanks", "thanks for attending yesterday", common.ToneFormal},
		{"plain", "lecture notes are online", common.ToneInformational},
		// urgency outranks politeness when both appear
		{"urgent beats thanks", "urgent! thanks in advance", common.ToneUrgent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applyToneOverride(tt.text, common.ToneInformational)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFeedService_UpdateItem_Deterministic(t *testing.T) {
	svc, mockRepo := newServiceWithMock(t)
	ctx := context.Background()

	existing := &dbmysql.FeedItem{
		ItemID:      7,
		Title:       "Old title",
		Description: "old text",
		ContentType: "programme",
		AuthorID:    "alice",
	}

	draft := Draft{
		Title:       "Lab session",
		Description: "Please prepare the experiment worksheet and bring your lab coat. The session covers chapters three and four.",
		ContentType: "event",
		IsActive:    true,
	}

	var first, second dbmysql.FeedItem

	mockRepo.EXPECT().GetItemByID(ctx, int64(7)).Return(existing, nil).Times(2)
	gomock.InOrder(
		mockRepo.EXPECT().UpdateItem(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, item *dbmysql.FeedItem) error {
				first = *item
				return nil
			}),
		mockRepo.EXPECT().UpdateItem(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, item *dbmysql.FeedItem) error {
				second = *item
				return nil
			}),
	)

	_, err := svc.UpdateItem(ctx, 7, draft, "alice")
	require.NoError(t, err)
	_, err = svc.UpdateItem(ctx, 7, draft, "alice")
	require.NoError(t, err)

	// same input, same derived output
	assert.Equal(t, first.AIQualityScore, second.AIQualityScore)
	assert.Equal(t, first.AITone, second.AITone)
	assert.Equal(t, first.AISuggestions, second.AISuggestions)
	assert.Equal(t, first.AIExtractedDates, second.AIExtractedDates)
	assert.Equal(t, common.ToneFormal.String(), first.AITone)
}

func TestFeedService_UpdateItem_PermissionDenied(t *testing.T) {
	svc, mockRepo := newServiceWithMock(t)
	ctx := context.Background()

	mockRepo.EXPECT().GetItemByID(ctx, int64(3)).Return(&dbmysql.FeedItem{
		ItemID:   3,
		AuthorID: "alice",
	}, nil)

	_, err := svc.UpdateItem(ctx, 3, Draft{
		Title:       "Hijacked",
		Description: "should never be saved",
	}, "bob")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrPermissionDenied)
}

func TestFeedService_DeleteItem(t *testing.T) {
	svc, mockRepo := newServiceWithMock(t)
	ctx := context.Background()

	item := &dbmysql.FeedItem{ItemID: 9, AuthorID: "alice"}

	mockRepo.EXPECT().GetItemByID(ctx, int64(9)).Return(item, nil)
	mockRepo.EXPECT().DeleteItem(ctx, int64(9)).Return(nil)
	require.NoError(t, svc.DeleteItem(ctx, 9, "alice"))

	mockRepo.EXPECT().GetItemByID(ctx, int64(9)).Return(item, nil)
	err := svc.DeleteItem(ctx, 9, "bob")
	assert.ErrorIs(t, err, common.ErrPermissionDenied)
}

func TestFeedService_DeleteItem_NotFound(t *testing.T) {
	svc, mockRepo := newServiceWithMock(t)
	ctx := context.Background()

	mockRepo.EXPECT().GetItemByID(ctx, int64(404)).Return(nil, common.ErrNotFound)

	err := svc.DeleteItem(ctx, 404, "alice")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestFeedService_RealtimeCheck_TooShort(t *testing.T) {
	svc, _ := newServiceWithMock(t)

	result := svc.RealtimeCheck("hey", "announcement")
	require.NotNil(t, result)
	assert.True(t, result.TooShort)
	assert.Empty(t, result.GrammarIssues)
	assert.Nil(t, result.Sentiment)
	assert.Zero(t, result.QualityScore)
}

func TestFeedService_RealtimeCheck_FullSuite(t *testing.T) {
	svc, _ := newServiceWithMock(t)

	text := "teh exam  takes place on 2026-09-15 . please register before friday"
	result := svc.RealtimeCheck(text, "announcement")
	require.NotNil(t, result)

	assert.False(t, result.TooShort)
	assert.NotEmpty(t, result.GrammarIssues)
	assert.LessOrEqual(t, len(result.GrammarIssues), 5)
	assert.Contains(t, result.ExtractedDates, "2026-09-15")
	assert.NotNil(t, result.Sentiment)
	assert.NotNil(t, result.Engagement)
	assert.GreaterOrEqual(t, result.QualityScore, 0.0)
	assert.LessOrEqual(t, result.QualityScore, 10.0)
	assert.Contains(t, result.AutoCorrect, "The exam")
	assert.Equal(t, len(text), result.Stats.Length)
	assert.Greater(t, result.Stats.Words, 0)
}

func TestFeedService_SuggestTitles(t *testing.T) {
	svc, _ := newServiceWithMock(t)

	_, err := svc.SuggestTitles("short", "event")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrValidation)

	titles, err := svc.SuggestTitles("Guest lecture on distributed systems next Monday in the main hall.", "event")
	require.NoError(t, err)
	assert.Len(t, titles, 3)
	assert.Contains(t, titles[1], "Event: ")
}

func TestFeedService_ListItems_ForcesActiveOnly(t *testing.T) {
	svc, mockRepo := newServiceWithMock(t)
	ctx := context.Background()

	mockRepo.EXPECT().ListItems(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, f Filter) ([]dbmysql.FeedItem, error) {
			assert.True(t, f.ActiveOnly)
			return []dbmysql.FeedItem{}, nil
		})

	_, err := svc.ListItems(ctx, Filter{})
	require.NoError(t, err)
}

func TestFeedService_ListStats(t *testing.T) {
	svc, mockRepo := newServiceWithMock(t)
	ctx := context.Background()

	mockRepo.EXPECT().CountItems(ctx, Filter{ActiveOnly: true}).Return(int64(12), nil)
	mockRepo.EXPECT().DistinctContentTypes(ctx, Filter{ActiveOnly: true}).
		Return([]string{"assignment", "event"}, nil)
	mockRepo.EXPECT().CountItems(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, f Filter) (int64, error) {
			// the urgent window spans [now, now+3d]
			require.NotNil(t, f.DeadlineFrom)
			require.NotNil(t, f.DeadlineTo)
			assert.InDelta(t, UrgentWindowDays*24*time.Hour, f.DeadlineTo.Sub(*f.DeadlineFrom), float64(time.Minute))
			return 2, nil
		})

	stats, err := svc.ListStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(12), stats.TotalItems)
	assert.Equal(t, 2, stats.ContentTypes)
	assert.Equal(t, int64(2), stats.UrgentItems)
}

func TestFeedService_AnalyzeItem(t *testing.T) {
	svc, mockRepo := newServiceWithMock(t)
	ctx := context.Background()

	deadline := time.Now().Add(48 * time.Hour)
	mockRepo.EXPECT().GetItemByID(ctx, int64(5)).Return(&dbmysql.FeedItem{
		ItemID:      5,
		Title:       "Project deliverable",
		Description: "Submit the final report. Don't forget to attach the source code.",
		ContentType: "assignment",
		Deadline:    &deadline,
		AuthorID:    "alice",
	}, nil)

	got, err := svc.AnalyzeItem(ctx, 5)
	require.NoError(t, err)

	// deadline within 3 days floors urgency at high
	assert.Equal(t, common.UrgencyHigh.String(), got.Urgency)
	assert.NotEmpty(t, got.ActionItems)
	assert.Contains(t, got.Tags, "assignment")
	assert.False(t, got.SpamCheck.IsSpam)
}
