package utils

import (
	"math"
	"math/rand"

	"github.com/nkosea07/MUSHROOM-SUBSTRATE-MONITOR/models"
)

// Physical sensor limits, independent of the configured targets.
const (
	simTempFloor     = 0.0
	simTempCeil      = 50.0
	simMoistureFloor = 0
	simMoistureCeil  = 100
	simPhFloor       = 0.0
	simPhCeil        = 14.0
)

// Per-tick perturbation bounds.
const (
	simTempDelta     = 0.5
	simMoistureDelta = 2.5
	simPhDelta       = 0.08
)

// SimulateReading produces a synthetic payload by perturbing the last stored
// reading, or the midpoint of the current targets when none exists. The rand
// source is injected so tests can seed it.
func SimulateReading(settings models.SystemSettings, last *models.SensorData, rng *rand.Rand) models.SensorIn {
	baseTemp := (settings.TempMin + settings.TempMax) / 2
	baseMoisture := float64(settings.MoistureMin+settings.MoistureMax) / 2
	basePh := (settings.PhMin + settings.PhMax) / 2

	if last != nil {
		baseTemp = last.Temperature
		baseMoisture = float64(last.Moisture)
		if last.Ph != nil {
			basePh = *last.Ph
		}
	}

	temperature := clamp(baseTemp+uniform(rng, simTempDelta), simTempFloor, simTempCeil)
	moisture := int(clamp(math.Round(baseMoisture+uniform(rng, simMoistureDelta)), simMoistureFloor, simMoistureCeil))
	ph := clamp(basePh+uniform(rng, simPhDelta), simPhFloor, simPhCeil)

	deviceID := "simulated-esp32"
	location := "simulation"

	return models.SensorIn{
		Temperature: &temperature,
		Moisture:    &moisture,
		Ph:          &ph,
		DeviceID:    &deviceID,
		Location:    &location,
		Thresholds: &models.Thresholds{
			TempMin:     &settings.TempMin,
			TempMax:     &settings.TempMax,
			MoistureMin: &settings.MoistureMin,
			MoistureMax: &settings.MoistureMax,
			PhMin:       &settings.PhMin,
			PhMax:       &settings.PhMax,
		},
	}
}

// uniform returns a value in [-delta, delta].
func uniform(rng *rand.Rand, delta float64) float64 {
	return (rng.Float64()*2 - 1) * delta
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
