package mockdata

import (
	"testing"

	"socially/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("Static_Images")
	require.NoError(t, err)
	assert.Equal(t, CategoryStaticImages, c)

	_, err = ParseCategory("stories")
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	posts := []models.SyntheticPost{
		{PostType: models.PostTypeReel, Likes: 300, Comments: 30, Shares: 60, Saves: 40, Reach: 1000, Hashtags: []string{"#viral", "#trending"}},
		{PostType: models.PostTypeReel, Likes: 500, Comments: 50, Shares: 100, Saves: 60, Reach: 3000, Hashtags: []string{"#viral"}},
		{PostType: models.PostTypeStory, Likes: 20, Comments: 0, Shares: 1, Saves: 5, Reach: 800, Hashtags: []string{"#lifestyle"}},
	}

	reels := Summarize(CategoryReels, posts)
	assert.Equal(t, "reels", reels.Category)
	assert.Equal(t, 2, reels.PostCount)
	assert.Equal(t, models.MetricTotals{Likes: 800, Comments: 80, Shares: 160, Saves: 100}, reels.Totals)
	assert.Equal(t, 4000, reels.TotalReach)
	assert.InDelta(t, 400.0, reels.Averages.Likes, 1e-9)
	assert.InDelta(t, 2000.0, reels.Averages.Reach, 1e-9)
	assert.Equal(t, []models.HashtagCount{{Tag: "#viral", Count: 2}, {Tag: "#trending", Count: 1}}, reels.Hashtags)

	overview := Summarize(CategoryOverview, posts)
	assert.Equal(t, 3, overview.PostCount)
	assert.Equal(t, 4800, overview.TotalReach)

	carousel := Summarize(CategoryCarousel, posts)
	assert.Zero(t, carousel.PostCount)
	assert.Zero(t, carousel.Averages.Likes)
	assert.NotNil(t, carousel.Hashtags)
}
