package dbmysql

import (
	"time"
)

// StringList is stored as a JSON column
type StringList []string

// VideoMetadata captures what the generation pipeline produced for an item.
// Persisted only on a fully successful attempt.
type VideoMetadata struct {
	Script    string  `json:"script"`
	Duration  float64 `json:"duration"`
	WordCount int     `json:"word_count"`
	Model     string  `json:"model"`
}

// feed_item.go
type FeedItem struct {
	ItemID      int64      `gorm:"primaryKey;autoIncrement;column:item_id" json:"id"`
	Title       string     `gorm:"column:title;size:200" json:"title"`
	Description string     `gorm:"column:description;type:text" json:"description"`
	ContentType string     `gorm:"type:ENUM('programme','assignment','announcement','event','resource');column:content_type" json:"content_type"`
	Deadline    *time.Time `gorm:"column:deadline" json:"deadline,omitempty"`
	IsActive    bool       `gorm:"column:is_active;default:true" json:"is_active"`
	AuthorID    string     `gorm:"column:author_id;size:64;index" json:"author_id"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at" json:"updated_at"`

	// Derived fields, recomputed on every enrichment pass
	AIQualityScore     float64    `gorm:"column:ai_quality_score" json:"ai_quality_score"`
	AITone             string     `gorm:"type:ENUM('urgent','formal','informational');column:ai_tone" json:"ai_tone"`
	AISuggestions      StringList `gorm:"column:ai_suggestions;type:json;serializer:json" json:"ai_suggestions"`
	AIExtractedDates   StringList `gorm:"column:ai_extracted_dates;type:json;serializer:json" json:"ai_extracted_dates"`
	SuggestedResources StringList `gorm:"column:suggested_resources;type:json;serializer:json" json:"suggested_resources"`
	IsAIGenerated      bool       `gorm:"column:is_ai_generated;default:false" json:"is_ai_generated"`

	// Promo video fields, owned by the video pipeline
	VideoStatus      string         `gorm:"type:ENUM('none','processing','completed','failed');column:video_status;default:'none'" json:"video_status"`
	VideoURL         string         `gorm:"column:video_url" json:"video_url,omitempty"`
	VideoGeneratedAt *time.Time     `gorm:"column:video_generated_at" json:"video_generated_at,omitempty"`
	VideoMeta        *VideoMetadata `gorm:"column:video_meta;type:json;serializer:json" json:"video_meta,omitempty"`
}

// IsUrgent reports whether the deadline falls within the next 3 days
func (f *FeedItem) IsUrgent(now time.Time) bool {
	if f.Deadline == nil {
		return false
	}
	return !f.Deadline.Before(now) && f.Deadline.Before(now.Add(3*24*time.Hour))
}
