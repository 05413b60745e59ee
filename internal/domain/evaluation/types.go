package evaluation

import (
	"context"
	"time"
)

// Feedback is one user's rating of a recommendation. Ratings use a 1-5 scale.
type Feedback struct {
	ID              string    `json:"id"`
	City            string    `json:"city"`
	OutfitType      string    `json:"outfit_type"`
	Relevance       int       `json:"relevance"`
	Satisfaction    int       `json:"satisfaction"`
	Diversity       int       `json:"diversity"`
	Personalization int       `json:"personalization"`
	Comment         string    `json:"comment,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Report aggregates collected feedback into study metrics.
type Report struct {
	Responses          int       `json:"n_responses"`
	AvgRelevance       float64   `json:"avg_relevance"`
	AvgSatisfaction    float64   `json:"avg_satisfaction"`
	AvgDiversity       float64   `json:"avg_diversity"`
	AvgPersonalization float64   `json:"avg_personalization"`
	WouldUseDailyPct   float64   `json:"would_use_daily_pct"`
	GeneratedAt        time.Time `json:"generated_at"`
}

// Repository persists feedback entries.
type Repository interface {
	Save(ctx context.Context, fb Feedback) error
	List(ctx context.Context) ([]Feedback, error)
}
