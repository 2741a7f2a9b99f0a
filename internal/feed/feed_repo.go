package feed

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"edufeed/internal/common"
	"edufeed/internal/dbmysql"
)

// Filter narrows item queries. Zero values mean "no constraint".
type Filter struct {
	Search          string // case-insensitive match on title or description
	TitleContains   string // case-insensitive containment on title only
	ContentType     string
	ActiveOnly      bool
	AIGeneratedOnly bool
	CreatedAfter    *time.Time
	DeadlineFrom    *time.Time
	DeadlineTo      *time.Time
	OrderBy         string // e.g. "created_at DESC", validated against a whitelist
	Limit           int
	Offset          int
}

// orderings accepted from the outside; anything else falls back to newest-first
var allowedOrderings = map[string]string{
	"created_at":        "created_at ASC",
	"-created_at":       "created_at DESC",
	"deadline":          "deadline ASC",
	"-deadline":         "deadline DESC",
	"title":             "title ASC",
	"-ai_quality_score": "ai_quality_score DESC",
}

// NormalizeOrdering maps an external ordering key to a SQL order clause
func NormalizeOrdering(key string) string {
	if clause, ok := allowedOrderings[key]; ok {
		return clause
	}
	return "created_at DESC"
}

// --------- ITEMS ---------
type Items interface {
	CreateItem(ctx context.Context, item *dbmysql.FeedItem) error
	GetItemByID(ctx context.Context, id int64) (*dbmysql.FeedItem, error)
	UpdateItem(ctx context.Context, item *dbmysql.FeedItem) error
	UpdateVideoFields(ctx context.Context, id int64, status string, url string, generatedAt *time.Time, meta *dbmysql.VideoMetadata) error
	DeleteItem(ctx context.Context, id int64) error
	ListItems(ctx context.Context, f Filter) ([]dbmysql.FeedItem, error)
	CountItems(ctx context.Context, f Filter) (int64, error)
	DistinctContentTypes(ctx context.Context, f Filter) ([]string, error)
}

type FeedRepository struct {
	db *gorm.DB
}

func NewFeedRepository(db *gorm.DB) *FeedRepository {
	return &FeedRepository{db: db}
}

func (r *FeedRepository) CreateItem(ctx context.Context, item *dbmysql.FeedItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *FeedRepository) GetItemByID(ctx context.Context, id int64) (*dbmysql.FeedItem, error) {
	var item dbmysql.FeedItem
	err := r.db.WithContext(ctx).First(&item, "item_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *FeedRepository) UpdateItem(ctx context.Context, item *dbmysql.FeedItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// UpdateVideoFields writes only the columns owned by the video pipeline.
// A full-row save here would revert edits made while a slow attempt runs.
func (r *FeedRepository) UpdateVideoFields(ctx context.Context, id int64, status string, url string, generatedAt *time.Time, meta *dbmysql.VideoMetadata) error {
	return r.db.WithContext(ctx).Model(&dbmysql.FeedItem{}).
		Where("item_id = ?", id).
		Select("video_status", "video_url", "video_generated_at", "video_meta").
		Updates(&dbmysql.FeedItem{
			VideoStatus:      status,
			VideoURL:         url,
			VideoGeneratedAt: generatedAt,
			VideoMeta:        meta,
		}).Error
}

func (r *FeedRepository) DeleteItem(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&dbmysql.FeedItem{}, "item_id = ?", id).Error
}

func (r *FeedRepository) ListItems(ctx context.Context, f Filter) ([]dbmysql.FeedItem, error) {
	var items []dbmysql.FeedItem
	q := r.applyFilter(r.db.WithContext(ctx).Model(&dbmysql.FeedItem{}), f)

	if f.OrderBy != "" {
		q = q.Order(f.OrderBy)
	} else {
		q = q.Order("created_at DESC")
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	err := q.Find(&items).Error
	return items, err
}

func (r *FeedRepository) CountItems(ctx context.Context, f Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&dbmysql.FeedItem{}), f).Count(&count).Error
	return count, err
}

func (r *FeedRepository) DistinctContentTypes(ctx context.Context, f Filter) ([]string, error) {
	var types []string
	err := r.applyFilter(r.db.WithContext(ctx).Model(&dbmysql.FeedItem{}), f).
		Distinct("content_type").
		Pluck("content_type", &types).Error
	return types, err
}

func (r *FeedRepository) applyFilter(q *gorm.DB, f Filter) *gorm.DB {
	if f.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	if f.Search != "" {
		pattern := "%" + escapeLike(f.Search) + "%"
		q = q.Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}
	if f.TitleContains != "" {
		q = q.Where("LOWER(title) LIKE LOWER(?)", "%"+escapeLike(f.TitleContains)+"%")
	}
	if f.ContentType != "" {
		q = q.Where("content_type = ?", f.ContentType)
	}
	if f.AIGeneratedOnly {
		q = q.Where("is_ai_generated = ?", true)
	}
	if f.CreatedAfter != nil {
		q = q.Where("created_at >= ?", *f.CreatedAfter)
	}
	if f.DeadlineFrom != nil {
		q = q.Where("deadline >= ?", *f.DeadlineFrom)
	}
	if f.DeadlineTo != nil {
		q = q.Where("deadline <= ?", *f.DeadlineTo)
	}
	return q
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}
