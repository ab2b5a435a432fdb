package models

import (
	"strings"
	"time"
)

// PostType is the content format of a synthetic post
type PostType string

const (
	PostTypeCarousel PostType = "carousel"
	PostTypeReel     PostType = "reel"
	PostTypeStatic   PostType = "static"
	PostTypeStory    PostType = "story"
)

// PostTypes lists every post type in sampling order
var PostTypes = []PostType{PostTypeCarousel, PostTypeReel, PostTypeStatic, PostTypeStory}

// HashtagSeparator joins hashtags inside a single delimited-text field
const HashtagSeparator = ";"

// TimestampLayout is ISO-8601 in UTC with millisecond precision
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// SyntheticPost is one generated row of fabricated engagement metrics
type SyntheticPost struct {
	PostType  PostType  `json:"post_type"`
	Timestamp time.Time `json:"timestamp"`
	Likes     int       `json:"likes"`
	Comments  int       `json:"comments"`
	Shares    int       `json:"shares"`
	Saves     int       `json:"saves"`
	Hashtags  []string  `json:"hashtags"`
	Reach     int       `json:"reach"`
}

// HashtagField returns the hashtags joined for a single delimited-text column
func (p SyntheticPost) HashtagField() string {
	return strings.Join(p.Hashtags, HashtagSeparator)
}

// FormattedTimestamp returns the timestamp as written to export files
func (p SyntheticPost) FormattedTimestamp() string {
	return p.Timestamp.UTC().Format(TimestampLayout)
}
