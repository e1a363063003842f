package pops

// Environment is a small immutable per-step view over the weather
// coefficient raster, the lethal-temperature series, and the survival
// rate series, queried by the host pool and the kernels. It holds only
// borrowed references for the current step; it is rebuilt (cheaply)
// every step rather than mutated, so there is no global state (§9).
type Environment struct {
	weather           *Raster[float64]
	hasWeather        bool
	lethalTemperature *Raster[float64]
	hasLethal         bool
	survivalRate      *Raster[float64]
	hasSurvival       bool
}

// NewEnvironment builds the environment view for one step. Any of the
// rasters may be nil when the corresponding Config flag is disabled.
func NewEnvironment(weather, lethalTemperature, survivalRate *Raster[float64]) *Environment {
	return &Environment{
		weather:           weather,
		hasWeather:        weather != nil,
		lethalTemperature: lethalTemperature,
		hasLethal:         lethalTemperature != nil,
		survivalRate:      survivalRate,
		hasSurvival:       survivalRate != nil,
	}
}

// Weather returns the weather coefficient at (row,col), defaulting to
// 1 (no effect) when weather is disabled.
func (e *Environment) Weather(row, col int) float64 {
	if !e.hasWeather {
		return 1.0
	}
	return e.weather.At(row, col)
}

// LethalTemperature returns the lethal-temperature value at (row,col).
// ok is false when the series is disabled.
func (e *Environment) LethalTemperature(row, col int) (float64, bool) {
	if !e.hasLethal {
		return 0, false
	}
	return e.lethalTemperature.At(row, col), true
}

// SurvivalRate returns the survival-rate coefficient at (row,col),
// defaulting to 1 (no extra mortality) when disabled.
func (e *Environment) SurvivalRate(row, col int) float64 {
	if !e.hasSurvival {
		return 1.0
	}
	return e.survivalRate.At(row, col)
}
