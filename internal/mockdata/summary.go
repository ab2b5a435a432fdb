package mockdata

import (
	"fmt"
	"sort"
	"strings"

	"socially/models"
)

// Category is one dashboard tab
type Category string

const (
	CategoryOverview     Category = "overview"
	CategoryReels        Category = "reels"
	CategoryStaticImages Category = "static_images"
	CategoryCarousel     Category = "carousel"
)

// Categories lists the dashboard tabs in display order
var Categories = []Category{CategoryOverview, CategoryReels, CategoryStaticImages, CategoryCarousel}

var categoryTypes = map[Category]models.PostType{
	CategoryReels:        models.PostTypeReel,
	CategoryStaticImages: models.PostTypeStatic,
	CategoryCarousel:     models.PostTypeCarousel,
}

// ParseCategory accepts the tab id case-insensitively
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Includes reports whether posts of type t belong to the category.
// Overview covers every type, stories included.
func (c Category) Includes(t models.PostType) bool {
	if c == CategoryOverview {
		return true
	}
	return categoryTypes[c] == t
}

// Summarize aggregates the posts that fall in category
func Summarize(category Category, posts []models.SyntheticPost) models.AnalyticsSummary {
	summary := models.AnalyticsSummary{
		Category: string(category),
		Hashtags: []models.HashtagCount{},
	}
	tagCounts := map[string]int{}

	for _, p := range posts {
		if !category.Includes(p.PostType) {
			continue
		}
		summary.PostCount++
		summary.Totals.Likes += p.Likes
		summary.Totals.Comments += p.Comments
		summary.Totals.Shares += p.Shares
		summary.Totals.Saves += p.Saves
		summary.TotalReach += p.Reach
		for _, tag := range p.Hashtags {
			tagCounts[tag]++
		}
	}

	if n := float64(summary.PostCount); n > 0 {
		summary.Averages = models.MetricAverages{
			Likes:    float64(summary.Totals.Likes) / n,
			Comments: float64(summary.Totals.Comments) / n,
			Shares:   float64(summary.Totals.Shares) / n,
			Saves:    float64(summary.Totals.Saves) / n,
			Reach:    float64(summary.TotalReach) / n,
		}
	}

	for tag, count := range tagCounts {
		summary.Hashtags = append(summary.Hashtags, models.HashtagCount{Tag: tag, Count: count})
	}
	sort.Slice(summary.Hashtags, func(i, j int) bool {
		a, b := summary.Hashtags[i], summary.Hashtags[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Tag < b.Tag
	})

	return summary
}
