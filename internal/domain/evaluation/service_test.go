package evaluation

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/vaesta/outfit-advisor/pkg/errors"
)

type stubFeedbackRepo struct {
	entries []Feedback
	saveErr error
}

func (r *stubFeedbackRepo) Save(_ context.Context, fb Feedback) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.entries = append(r.entries, fb)
	return nil
}

func (r *stubFeedbackRepo) List(_ context.Context) ([]Feedback, error) {
	return append([]Feedback(nil), r.entries...), nil
}

func newEvalService(repo Repository) *service {
	return &service{
		repo:   repo,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func TestSaveFeedbackAssignsIDAndTimestamp(t *testing.T) {
	svc := newEvalService(&stubFeedbackRepo{})

	fb, err := svc.SaveFeedback(context.Background(), Feedback{
		City:         "Paris",
		OutfitType:   "Layered",
		Relevance:    4,
		Satisfaction: 5,
		Diversity:    3,
	})
	require.NoError(t, err)
	require.NotEmpty(t, fb.ID)
	require.Equal(t, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), fb.CreatedAt)
}

func TestSaveFeedbackRejectsRatingsOutOfRange(t *testing.T) {
	svc := newEvalService(&stubFeedbackRepo{})
	ctx := context.Background()

	_, err := svc.SaveFeedback(ctx, Feedback{Relevance: 0, Satisfaction: 3, Diversity: 3})
	require.True(t, apperrors.IsCode(err, "invalid_input"))

	_, err = svc.SaveFeedback(ctx, Feedback{Relevance: 3, Satisfaction: 6, Diversity: 3})
	require.True(t, apperrors.IsCode(err, "invalid_input"))

	_, err = svc.SaveFeedback(ctx, Feedback{Relevance: 3, Satisfaction: 3, Diversity: 3, Personalization: 7})
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestReportAggregates(t *testing.T) {
	repo := &stubFeedbackRepo{}
	svc := newEvalService(repo)
	ctx := context.Background()

	for _, fb := range []Feedback{
		{Relevance: 4, Satisfaction: 5, Diversity: 3, Personalization: 4},
		{Relevance: 2, Satisfaction: 3, Diversity: 5},
	} {
		_, err := svc.SaveFeedback(ctx, fb)
		require.NoError(t, err)
	}

	report, err := svc.Report(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, report.Responses)
	require.InDelta(t, 3.0, report.AvgRelevance, 1e-9)
	require.InDelta(t, 4.0, report.AvgSatisfaction, 1e-9)
	require.InDelta(t, 4.0, report.AvgDiversity, 1e-9)
	// Only answered personalization ratings count.
	require.InDelta(t, 4.0, report.AvgPersonalization, 1e-9)
	require.InDelta(t, 50.0, report.WouldUseDailyPct, 1e-9)
}

func TestReportEmptyStore(t *testing.T) {
	svc := newEvalService(&stubFeedbackRepo{})
	report, err := svc.Report(context.Background())
	require.NoError(t, err)
	require.Zero(t, report.Responses)
	require.Zero(t, report.AvgSatisfaction)
}
