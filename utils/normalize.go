package utils

import (
	"fmt"

	"github.com/nkosea07/MUSHROOM-SUBSTRATE-MONITOR/models"
)

// NormalizeSensorPayload merges a raw payload with the effective thresholds
// into a canonical SensorData row. Payload-supplied threshold fields win over
// the current settings; ph defaults to 7.0. The caller persists the result.
func NormalizeSensorPayload(payload models.SensorIn, settings models.SystemSettings) (models.SensorData, error) {
	if payload.Temperature == nil {
		return models.SensorData{}, Validation("temperature is required")
	}
	if payload.Moisture == nil {
		return models.SensorData{}, Validation("moisture is required")
	}
	if *payload.Moisture < 0 || *payload.Moisture > 100 {
		return models.SensorData{}, Validation(fmt.Sprintf("moisture must be between 0 and 100, got %d", *payload.Moisture))
	}

	ph := 7.0
	if payload.Ph != nil {
		ph = *payload.Ph
	}
	if ph < 0 || ph > 14 {
		return models.SensorData{}, Validation(fmt.Sprintf("ph must be between 0 and 14, got %.2f", ph))
	}

	reading := models.SensorData{
		Temperature: *payload.Temperature,
		Moisture:    *payload.Moisture,
		Ph:          &ph,
		TempMin:     settings.TempMin,
		TempMax:     settings.TempMax,
		MoistureMin: settings.MoistureMin,
		MoistureMax: settings.MoistureMax,
		PhMin:       settings.PhMin,
		PhMax:       settings.PhMax,
		DeviceID:    payload.DeviceID,
		Location:    payload.Location,
	}

	if t := payload.Thresholds; t != nil {
		if t.TempMin != nil {
			reading.TempMin = *t.TempMin
		}
		if t.TempMax != nil {
			reading.TempMax = *t.TempMax
		}
		if t.MoistureMin != nil {
			reading.MoistureMin = *t.MoistureMin
		}
		if t.MoistureMax != nil {
			reading.MoistureMax = *t.MoistureMax
		}
		if t.PhMin != nil {
			reading.PhMin = *t.PhMin
		}
		if t.PhMax != nil {
			reading.PhMax = *t.PhMax
		}
	}

	return reading, nil
}
