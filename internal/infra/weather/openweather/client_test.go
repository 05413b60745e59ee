package openweather

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCurrentParsesAndConvertsUnits(t *testing.T) {
	geo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Seoul", r.URL.Query().Get("q"))
		w.Write([]byte(`[{"name":"Seoul","lat":37.56,"lon":126.97}]`))
	}))
	defer geo.Close()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/weather", r.URL.Path)
		require.NotEmpty(t, r.URL.Query().Get("lat"))
		require.Equal(t, "metric", r.URL.Query().Get("units"))
		w.Write([]byte(`{
			"name":"Seoul",
			"main":{"temp":-5.2,"temp_min":-9.0,"temp_max":0.5},
			"wind":{"speed":3.5},
			"rain":{"1h":1.2}
		}`))
	}))
	defer api.Close()

	client := NewClient("test-key", api.URL, geo.URL, testLogger())
	reading, err := client.Current(context.Background(), "Seoul")
	require.NoError(t, err)
	require.Equal(t, "Seoul", reading.City)
	require.Equal(t, -5.2, reading.TemperatureC)
	require.Equal(t, 1.2, reading.PrecipitationMM)
	require.InDelta(t, 12.6, reading.WindSpeedKMH, 1e-9)
	require.True(t, reading.TempSwing)
}

func TestCurrentFallsBackToNameLookupWhenGeocodingFails(t *testing.T) {
	geo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer geo.Close()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Seoul", r.URL.Query().Get("q"))
		w.Write([]byte(`{"name":"Seoul","main":{"temp":20,"temp_min":19,"temp_max":21},"wind":{"speed":1},"rain":{}}`))
	}))
	defer api.Close()

	client := NewClient("test-key", api.URL, geo.URL, testLogger())
	reading, err := client.Current(context.Background(), "Seoul")
	require.NoError(t, err)
	require.Equal(t, 20.0, reading.TemperatureC)
	require.Zero(t, reading.PrecipitationMM)
	require.False(t, reading.TempSwing)
}

func TestCurrentWithoutKeyServesMock(t *testing.T) {
	client := NewClient("", "", "", testLogger())
	reading, err := client.Current(context.Background(), "Seoul")
	require.NoError(t, err)
	require.Equal(t, "Seoul", reading.City)
	require.Equal(t, 15.0, reading.TemperatureC)
	require.NoError(t, reading.Validate())
}

func TestCurrentUpstreamError(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer api.Close()

	client := NewClient("test-key", api.URL, api.URL, testLogger())
	_, err := client.Current(context.Background(), "Seoul")
	require.Error(t, err)
}
