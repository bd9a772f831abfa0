package utils

import (
	"fmt"

	"github.com/nkosea07/MUSHROOM-SUBSTRATE-MONITOR/models"
)

// BuildThresholdAlerts checks a normalized reading against its snapshotted
// thresholds and returns one draft alert per out-of-range parameter.
// Evaluation order is fixed (temperature, moisture, ph) and callers must
// persist alerts in the returned order.
func BuildThresholdAlerts(reading models.SensorData) []models.Alert {
	checks := []struct {
		parameter string
		value     *float64
		min       float64
		max       float64
	}{
		{"temperature", &reading.Temperature, reading.TempMin, reading.TempMax},
		{"moisture", floatPtr(float64(reading.Moisture)), float64(reading.MoistureMin), float64(reading.MoistureMax)},
		{"ph", reading.Ph, reading.PhMin, reading.PhMax},
	}

	var alerts []models.Alert
	for _, check := range checks {
		if check.value == nil {
			continue
		}
		value := *check.value
		if value >= check.min && value <= check.max {
			continue
		}

		var message string
		var threshold float64
		if value < check.min {
			message = fmt.Sprintf("%s below threshold (%.2f < %.2f)", check.parameter, value, check.min)
			threshold = check.min
		} else {
			message = fmt.Sprintf("%s above threshold (%.2f > %.2f)", check.parameter, value, check.max)
			threshold = check.max
		}

		alerts = append(alerts, models.Alert{
			Severity:       "critical",
			Parameter:      check.parameter,
			Message:        message,
			ThresholdValue: floatPtr(threshold),
			CurrentValue:   floatPtr(value),
			Resolved:       false,
		})
	}
	return alerts
}

func floatPtr(v float64) *float64 {
	return &v
}
