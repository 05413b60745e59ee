package outfit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeRequirementsWarmthBands(t *testing.T) {
	cases := []struct {
		temp   float64
		warmth int
	}{
		{-20, 5},
		{-0.1, 5},
		{0, 4},
		{9.9, 4},
		{10, 3},
		{17.9, 3},
		{18, 2},
		{25, 2},
		{25.1, 1},
		{35, 1},
	}
	for _, tc := range cases {
		req, err := ComputeRequirements(WeatherReading{TemperatureC: tc.temp})
		require.NoError(t, err)
		require.Equal(t, tc.warmth, req.Warmth, "temp %.1f", tc.temp)
	}
}

func TestComputeRequirementsFreezingAlwaysWarmthFive(t *testing.T) {
	for temp := -60.0; temp < 0; temp += 3.7 {
		req, err := ComputeRequirements(WeatherReading{TemperatureC: temp})
		require.NoError(t, err)
		require.Equal(t, 5, req.Warmth)
	}
}

func TestComputeRequirementsImpermeability(t *testing.T) {
	cases := []struct {
		rain   float64
		expect int
	}{
		{0, 1},
		{0.5, 1},
		{0.6, 2},
		{2.4, 2},
		{2.5, 3},
		{12, 3},
	}
	for _, tc := range cases {
		req, err := ComputeRequirements(WeatherReading{TemperatureC: 15, PrecipitationMM: tc.rain})
		require.NoError(t, err)
		require.Equal(t, tc.expect, req.Impermeability, "rain %.1f", tc.rain)
	}
}

func TestComputeRequirementsLayering(t *testing.T) {
	req, err := ComputeRequirements(WeatherReading{TemperatureC: 20, WindSpeedKMH: 35})
	require.NoError(t, err)
	require.Equal(t, 5, req.Layering)

	req, err = ComputeRequirements(WeatherReading{TemperatureC: 20, TempSwing: true})
	require.NoError(t, err)
	require.Equal(t, 5, req.Layering)

	req, err = ComputeRequirements(WeatherReading{TemperatureC: 5, WindSpeedKMH: 10})
	require.NoError(t, err)
	require.Equal(t, 4, req.Layering)

	req, err = ComputeRequirements(WeatherReading{TemperatureC: 22, WindSpeedKMH: 10})
	require.NoError(t, err)
	require.Equal(t, 3, req.Layering)
}

func TestComputeRequirementsColdScenario(t *testing.T) {
	req, err := ComputeRequirements(WeatherReading{TemperatureC: -5, PrecipitationMM: 0, WindSpeedKMH: 10})
	require.NoError(t, err)
	require.Equal(t, RequiredAttributes{Warmth: 5, Impermeability: 1, Layering: 4}, req)
}

func TestComputeRequirementsIdempotent(t *testing.T) {
	reading := WeatherReading{TemperatureC: 8.5, PrecipitationMM: 1.2, WindSpeedKMH: 14}
	first, err := ComputeRequirements(reading)
	require.NoError(t, err)
	second, err := ComputeRequirements(reading)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestComputeRequirementsBoundsInvariant(t *testing.T) {
	for temp := -40.0; temp <= 45; temp += 4.3 {
		for _, rain := range []float64{0, 1, 5} {
			req, err := ComputeRequirements(WeatherReading{TemperatureC: temp, PrecipitationMM: rain, WindSpeedKMH: 12})
			require.NoError(t, err)
			require.GreaterOrEqual(t, req.Warmth, 1)
			require.LessOrEqual(t, req.Warmth, 5)
			require.GreaterOrEqual(t, req.Impermeability, 1)
			require.LessOrEqual(t, req.Impermeability, 3)
			require.GreaterOrEqual(t, req.Layering, 3)
			require.LessOrEqual(t, req.Layering, 5)
		}
	}
}

func TestComputeRequirementsRejectsMalformedReadings(t *testing.T) {
	bad := []WeatherReading{
		{TemperatureC: math.NaN()},
		{TemperatureC: math.Inf(1)},
		{TemperatureC: 15, PrecipitationMM: math.NaN()},
		{TemperatureC: 15, WindSpeedKMH: math.Inf(-1)},
		{TemperatureC: -120},
		{TemperatureC: 80},
		{TemperatureC: 15, PrecipitationMM: -1},
		{TemperatureC: 15, WindSpeedKMH: -3},
	}
	for _, reading := range bad {
		_, err := ComputeRequirements(reading)
		require.Error(t, err)
	}
}
