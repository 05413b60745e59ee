package evaluation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/vaesta/outfit-advisor/pkg/errors"
)

// Service collects recommendation feedback and reports study metrics.
type Service interface {
	SaveFeedback(ctx context.Context, fb Feedback) (Feedback, error)
	Report(ctx context.Context) (Report, error)
}

type service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires up the evaluation domain.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.With("component", "evaluation.service"),
		now:    time.Now,
	}
}

// SaveFeedback validates and persists one feedback entry.
func (s *service) SaveFeedback(ctx context.Context, fb Feedback) (Feedback, error) {
	fb.City = strings.TrimSpace(fb.City)
	fb.Comment = strings.TrimSpace(fb.Comment)
	for name, rating := range map[string]int{
		"relevance":    fb.Relevance,
		"satisfaction": fb.Satisfaction,
		"diversity":    fb.Diversity,
	} {
		if rating < 1 || rating > 5 {
			return Feedback{}, apperrors.Wrap("invalid_input", fmt.Sprintf("%s rating must be between 1 and 5", name), nil)
		}
	}
	// Personalization is an optional rating; zero means not answered.
	if fb.Personalization != 0 && (fb.Personalization < 1 || fb.Personalization > 5) {
		return Feedback{}, apperrors.Wrap("invalid_input", "personalization rating must be between 1 and 5", nil)
	}

	fb.ID = uuid.NewString()
	fb.CreatedAt = s.now().UTC()
	if err := s.repo.Save(ctx, fb); err != nil {
		return Feedback{}, apperrors.Wrap("storage_error", "persist feedback", err)
	}
	s.logger.Info("feedback recorded", "feedback", fb.ID, "satisfaction", fb.Satisfaction)
	return fb, nil
}

// Report aggregates all collected feedback. An empty store yields a zero
// report rather than an error.
func (s *service) Report(ctx context.Context) (Report, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return Report{}, apperrors.Wrap("storage_error", "load feedback", err)
	}

	report := Report{GeneratedAt: s.now().UTC()}
	if len(entries) == 0 {
		return report, nil
	}

	var (
		relevance, satisfaction, diversity float64
		personalization                    float64
		personalizationCount               int
		satisfiedDaily                     int
	)
	for _, fb := range entries {
		relevance += float64(fb.Relevance)
		satisfaction += float64(fb.Satisfaction)
		diversity += float64(fb.Diversity)
		if fb.Personalization > 0 {
			personalization += float64(fb.Personalization)
			personalizationCount++
		}
		if fb.Satisfaction >= 4 {
			satisfiedDaily++
		}
	}

	n := float64(len(entries))
	report.Responses = len(entries)
	report.AvgRelevance = relevance / n
	report.AvgSatisfaction = satisfaction / n
	report.AvgDiversity = diversity / n
	if personalizationCount > 0 {
		report.AvgPersonalization = personalization / float64(personalizationCount)
	}
	report.WouldUseDailyPct = float64(satisfiedDaily) / n * 100
	return report, nil
}
