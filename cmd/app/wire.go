//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/vaesta/outfit-advisor/internal/bootstrap"
	"github.com/vaesta/outfit-advisor/internal/domain/evaluation"
	"github.com/vaesta/outfit-advisor/internal/domain/outfit"
	"github.com/vaesta/outfit-advisor/internal/domain/wardrobe"
	"github.com/vaesta/outfit-advisor/internal/infra/config"
	"github.com/vaesta/outfit-advisor/internal/infra/weather/openweather"
	httpiface "github.com/vaesta/outfit-advisor/internal/interface/http"
	"github.com/vaesta/outfit-advisor/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideOutfitConfig,
		provideWardrobeConfig,
		provideWeatherClient,
		provideChatGPTClient,
		provideVisionClient,
		provideEmbedder,
		providePgxPool,
		provideWardrobeRepository,
		provideFeedbackRepository,
		provideImageStorage,
		provideCatalogSource,
		provideHistoryStore,
		outfit.NewService,
		wardrobe.NewService,
		evaluation.NewService,
		wire.Bind(new(outfit.WeatherClient), new(*openweather.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
