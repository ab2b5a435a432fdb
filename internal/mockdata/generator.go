// Package mockdata fabricates social-media post metrics for the analytics dashboard.
package mockdata

import (
	"math/rand/v2"
	"time"

	"socially/models"
)

// Range is an inclusive integer interval
type Range struct {
	Min int
	Max int
}

// Contains reports whether v lies in [Min, Max]
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// MetricRanges bounds the engagement metrics of one post type
type MetricRanges struct {
	Likes    Range
	Comments Range
	Shares   Range
	Saves    Range
}

// MetricTable holds the per-type engagement ranges
var MetricTable = map[models.PostType]MetricRanges{
	models.PostTypeCarousel: {Likes: Range{100, 500}, Comments: Range{10, 50}, Shares: Range{5, 30}, Saves: Range{20, 100}},
	models.PostTypeReel:     {Likes: Range{200, 1000}, Comments: Range{20, 100}, Shares: Range{50, 200}, Saves: Range{30, 150}},
	models.PostTypeStatic:   {Likes: Range{50, 300}, Comments: Range{5, 30}, Shares: Range{2, 20}, Saves: Range{10, 50}},
	models.PostTypeStory:    {Likes: Range{20, 100}, Comments: Range{0, 10}, Shares: Range{1, 10}, Saves: Range{5, 20}},
}

// Hashtags is the tag vocabulary posts sample from
var Hashtags = []string{"#marketing", "#business", "#viral", "#trending", "#photography", "#lifestyle"}

var (
	// ReachRange applies to every post type
	ReachRange = Range{800, 8000}
	// HashtagCountRange bounds how many tags a post carries
	HashtagCountRange = Range{1, 4}
)

// Timestamps fall in [WindowStart, WindowEnd)
var (
	WindowStart = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	WindowEnd   = time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
)

// Generator draws synthetic posts from its random source.
// It is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator uses rng, or a time-seeded source when rng is nil
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return &Generator{rng: rng}
}

// NewSeededGenerator returns a reproducible generator
func NewSeededGenerator(seed uint64) *Generator {
	return NewGenerator(rand.New(rand.NewPCG(seed, seed)))
}

// Generate returns count posts. count <= 0 yields an empty slice.
func (g *Generator) Generate(count int) []models.SyntheticPost {
	if count <= 0 {
		return []models.SyntheticPost{}
	}
	posts := make([]models.SyntheticPost, 0, count)
	for i := 0; i < count; i++ {
		posts = append(posts, g.post())
	}
	return posts
}

func (g *Generator) post() models.SyntheticPost {
	postType := models.PostTypes[g.rng.IntN(len(models.PostTypes))]
	metrics := MetricTable[postType]

	return models.SyntheticPost{
		PostType:  postType,
		Timestamp: g.timestamp(),
		Likes:     g.intIn(metrics.Likes),
		Comments:  g.intIn(metrics.Comments),
		Shares:    g.intIn(metrics.Shares),
		Saves:     g.intIn(metrics.Saves),
		Hashtags:  g.hashtags(),
		Reach:     g.intIn(ReachRange),
	}
}

func (g *Generator) intIn(r Range) int {
	return r.Min + g.rng.IntN(r.Max-r.Min+1)
}

// timestamp has millisecond resolution so it survives the ISO round trip
func (g *Generator) timestamp() time.Time {
	span := WindowEnd.Sub(WindowStart).Milliseconds()
	return WindowStart.Add(time.Duration(g.rng.Int64N(span)) * time.Millisecond)
}

// hashtags samples with replacement, so duplicates are possible
func (g *Generator) hashtags() []string {
	n := g.intIn(HashtagCountRange)
	tags := make([]string, n)
	for i := range tags {
		tags[i] = Hashtags[g.rng.IntN(len(Hashtags))]
	}
	return tags
}
