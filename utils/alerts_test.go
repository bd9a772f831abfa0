package utils

import (
	"testing"

	"github.com/nkosea07/MUSHROOM-SUBSTRATE-MONITOR/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reading(temperature float64, moisture int, ph float64) models.SensorData {
	return models.SensorData{
		Temperature: temperature,
		Moisture:    moisture,
		Ph:          &ph,
		TempMin:     22.0,
		TempMax:     26.0,
		MoistureMin: 60,
		MoistureMax: 70,
		PhMin:       6.5,
		PhMax:       7.0,
	}
}

func TestBuildThresholdAlertsAllInRange(t *testing.T) {
	alerts := BuildThresholdAlerts(reading(24.0, 65, 6.8))
	assert.Empty(t, alerts)
}

func TestBuildThresholdAlertsBoundaryValuesAreInRange(t *testing.T) {
	assert.Empty(t, BuildThresholdAlerts(reading(22.0, 60, 6.5)))
	assert.Empty(t, BuildThresholdAlerts(reading(26.0, 70, 7.0)))
}

func TestBuildThresholdAlertsTemperatureAbove(t *testing.T) {
	alerts := BuildThresholdAlerts(reading(30.0, 65, 6.8))
	require.Len(t, alerts, 1)

	alert := alerts[0]
	assert.Equal(t, "temperature", alert.Parameter)
	assert.Equal(t, "critical", alert.Severity)
	require.NotNil(t, alert.ThresholdValue)
	assert.Equal(t, 26.0, *alert.ThresholdValue)
	require.NotNil(t, alert.CurrentValue)
	assert.Equal(t, 30.0, *alert.CurrentValue)
	assert.Contains(t, alert.Message, "above threshold")
	assert.Equal(t, "temperature above threshold (30.00 > 26.00)", alert.Message)
}

func TestBuildThresholdAlertsMoistureBelow(t *testing.T) {
	alerts := BuildThresholdAlerts(reading(24.0, 40, 6.8))
	require.Len(t, alerts, 1)

	alert := alerts[0]
	assert.Equal(t, "moisture", alert.Parameter)
	require.NotNil(t, alert.ThresholdValue)
	assert.Equal(t, 60.0, *alert.ThresholdValue)
	assert.Contains(t, alert.Message, "below threshold")
	assert.Equal(t, "moisture below threshold (40.00 < 60.00)", alert.Message)
}

func TestBuildThresholdAlertsEvaluationOrderIsFixed(t *testing.T) {
	alerts := BuildThresholdAlerts(reading(30.0, 40, 8.2))
	require.Len(t, alerts, 3)
	assert.Equal(t, "temperature", alerts[0].Parameter)
	assert.Equal(t, "moisture", alerts[1].Parameter)
	assert.Equal(t, "ph", alerts[2].Parameter)
}

func TestBuildThresholdAlertsSkipsNullPh(t *testing.T) {
	data := reading(24.0, 65, 6.8)
	data.Ph = nil
	assert.Empty(t, BuildThresholdAlerts(data))
}
