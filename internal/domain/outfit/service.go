package outfit

import (
	"context"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/vaesta/outfit-advisor/pkg/errors"
)

// Config wires runtime knobs for the recommendation engine.
type Config struct {
	// StyleFit is the inert personalization placeholder. With the neutral
	// default every item receives the same style contribution, so rankings
	// depend only on weather fit until preference data exists.
	StyleFit float64
	// Alternatives caps how many runner-up candidates a response carries.
	Alternatives int
}

// Service exposes weather-driven outfit recommendation.
type Service interface {
	Recommend(ctx context.Context, req Request) (Response, error)
}

type service struct {
	cfg     Config
	weather WeatherClient
	catalog CatalogSource
	history HistoryStore
	logger  *slog.Logger
	now     func() time.Time
}

// NewService wires up the recommendation domain.
func NewService(cfg Config, weather WeatherClient, catalog CatalogSource, history HistoryStore, logger *slog.Logger) Service {
	if cfg.StyleFit <= 0 {
		cfg.StyleFit = NeutralStyleFit
	}
	if cfg.Alternatives <= 0 {
		cfg.Alternatives = 2
	}
	return &service{
		cfg:     cfg,
		weather: weather,
		catalog: catalog,
		history: history,
		logger:  logger.With("component", "outfit.service"),
		now:     time.Now,
	}
}

func (s *service) Recommend(ctx context.Context, req Request) (Response, error) {
	city := strings.TrimSpace(req.City)
	if city == "" {
		return Response{}, apperrors.Wrap("invalid_input", "city cannot be empty", nil)
	}

	reading, err := s.weather.Current(ctx, city)
	if err != nil {
		return Response{}, apperrors.Wrap("weather_error", "failed to fetch weather", err)
	}
	if reading.City == "" {
		reading.City = city
	}

	required, err := ComputeRequirements(reading)
	if err != nil {
		return Response{}, err
	}

	catalog, err := s.catalog.List(ctx)
	if err != nil {
		return Response{}, apperrors.Wrap("catalog_error", "failed to load catalog", err)
	}

	var warnings []string
	now := s.now()

	// History is read once at request start. A failing store degrades to an
	// empty history instead of blocking the recommendation.
	history, err := s.history.LoadAll(ctx)
	if err != nil {
		s.logger.Warn("history load failed, diversity penalties skipped", "error", err)
		warnings = append(warnings, "recommendation history unavailable; recently worn items may repeat")
		history = map[string]time.Time{}
	}

	assembled, err := Assemble(catalog, required, history, now, s.cfg)
	if err != nil {
		return Response{}, err
	}

	// Written once at request end, after the outfit is final. A failed write
	// is reported but never discards the computed outfit.
	for _, sel := range assembled.Selections {
		if putErr := s.history.Put(ctx, sel.Item.ID, now); putErr != nil {
			s.logger.Warn("history write failed", "item", sel.Item.ID, "error", putErr)
			warnings = append(warnings, "recommendation history not persisted")
			break
		}
	}

	s.logger.Info("outfit recommended",
		"city", reading.City,
		"type", assembled.Type,
		"items", len(assembled.Selections),
		"matchPercent", assembled.MatchPercent,
	)

	return Response{
		City:     reading.City,
		Weather:  reading,
		Required: required,
		Outfit:   assembled,
		Warnings: warnings,
	}, nil
}
