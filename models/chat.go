// models/chat.go
package models

// ChatRequest is the body accepted by the chat endpoint
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatResponse carries the assistant reply back to the browser
type ChatResponse struct {
	Message string `json:"message"`
}

// AnalyticsSummary aggregates generated posts for one dashboard category
type AnalyticsSummary struct {
	Category   string         `json:"category"`
	PostCount  int            `json:"post_count"`
	Totals     MetricTotals   `json:"totals"`
	Averages   MetricAverages `json:"averages"`
	TotalReach int            `json:"total_reach"`
	Hashtags   []HashtagCount `json:"hashtags"`
}

type MetricTotals struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Shares   int `json:"shares"`
	Saves    int `json:"saves"`
}

type MetricAverages struct {
	Likes    float64 `json:"likes"`
	Comments float64 `json:"comments"`
	Shares   float64 `json:"shares"`
	Saves    float64 `json:"saves"`
	Reach    float64 `json:"reach"`
}

type HashtagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}
