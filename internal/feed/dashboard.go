package feed

import (
	"context"
	"sort"
	"time"

	"edufeed/internal/dbmysql"
)

// DashboardStats is the aggregate view across all active items
type DashboardStats struct {
	TotalItems       int                  `json:"total_items"`
	AvgQuality       float64              `json:"avg_quality"`
	TypeDistribution map[string]int       `json:"type_distribution"`
	ToneDistribution map[string]int       `json:"tone_distribution"`
	TopQualityItems  []dbmysql.FeedItem   `json:"top_quality_items"`
	UrgentItems      []dbmysql.FeedItem   `json:"urgent_items"`
}

// Dashboard aggregates over every active item. The item set of an
// educational feed is small enough that in-memory aggregation beats a
// pile of grouped queries.
func (s *FeedService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	items, err := s.itemRepo.ListItems(ctx, Filter{ActiveOnly: true})
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalItems:       len(items),
		TypeDistribution: make(map[string]int),
		ToneDistribution: make(map[string]int),
	}

	var qualitySum float64
	now := time.Now()
	for _, item := range items {
		qualitySum += item.AIQualityScore
		stats.TypeDistribution[item.ContentType]++

		tone := item.AITone
		if tone == "" {
			tone = "undefined"
		}
		stats.ToneDistribution[tone]++

		if item.IsUrgent(now) {
			stats.UrgentItems = append(stats.UrgentItems, item)
		}
	}

	if len(items) > 0 {
		avg := qualitySum / float64(len(items))
		stats.AvgQuality = float64(int(avg*10+0.5)) / 10
	}

	ranked := make([]dbmysql.FeedItem, len(items))
	copy(ranked, items)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AIQualityScore > ranked[j].AIQualityScore
	})
	if len(ranked) > 5 {
		ranked = ranked[:5]
	}
	stats.TopQualityItems = ranked

	return stats, nil
}
