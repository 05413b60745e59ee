package outfit

// Precipitation and wind thresholds used by the requirement translator.
const (
	heavyRainMM = 2.5
	lightRainMM = 0.5
	highWindKMH = 30.0
)

// ComputeRequirements translates a weather reading into the attribute targets
// the scorer matches garments against. Pure and deterministic.
func ComputeRequirements(r WeatherReading) (RequiredAttributes, error) {
	if err := r.Validate(); err != nil {
		return RequiredAttributes{}, err
	}
	req := RequiredAttributes{
		Warmth:         warmthFor(r.TemperatureC),
		Impermeability: impermeabilityFor(r.PrecipitationMM),
	}
	req.Layering = layeringFor(r, req.Warmth)
	return req, nil
}

// warmthFor maps temperature to a 1-5 warmth target. Bands are inclusive on
// their lower edge: 0°C still asks for warmth 4, 25°C still asks for 2.
func warmthFor(tempC float64) int {
	switch {
	case tempC < 0:
		return 5
	case tempC < 10:
		return 4
	case tempC < 18:
		return 3
	case tempC <= 25:
		return 2
	default:
		return 1
	}
}

func impermeabilityFor(rainMM float64) int {
	switch {
	case rainMM >= heavyRainMM:
		return 3
	case rainMM > lightRainMM:
		return 2
	default:
		return 1
	}
}

// layeringFor asks for maximum layering flexibility in strong wind or when
// the forecast is volatile; otherwise the target follows the warmth band.
func layeringFor(r WeatherReading, warmth int) int {
	if r.WindSpeedKMH > highWindKMH || r.TempSwing {
		return 5
	}
	if warmth >= 3 {
		return 4
	}
	return 3
}
