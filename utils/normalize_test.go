package utils

import (
	"testing"

	"github.com/nkosea07/MUSHROOM-SUBSTRATE-MONITOR/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings() models.SystemSettings {
	return models.SystemSettings{
		TempMin:     22.0,
		TempMax:     26.0,
		MoistureMin: 60,
		MoistureMax: 70,
		PhMin:       6.5,
		PhMax:       7.0,
	}
}

func floatp(v float64) *float64 { return &v }
func intp(v int) *int           { return &v }

func TestNormalizeSnapshotsSettings(t *testing.T) {
	payload := models.SensorIn{Temperature: floatp(24.5), Moisture: intp(65)}

	result, err := NormalizeSensorPayload(payload, testSettings())
	require.NoError(t, err)

	assert.Equal(t, 24.5, result.Temperature)
	assert.Equal(t, 65, result.Moisture)
	require.NotNil(t, result.Ph)
	assert.Equal(t, 7.0, *result.Ph) // default when absent
	assert.Equal(t, 22.0, result.TempMin)
	assert.Equal(t, 26.0, result.TempMax)
	assert.Equal(t, 60, result.MoistureMin)
	assert.Equal(t, 70, result.MoistureMax)
	assert.Equal(t, 6.5, result.PhMin)
	assert.Equal(t, 7.0, result.PhMax)
}

func TestNormalizePayloadThresholdsWin(t *testing.T) {
	payload := models.SensorIn{
		Temperature: floatp(24.5),
		Moisture:    intp(65),
		Thresholds: &models.Thresholds{
			TempMin:     floatp(18.0),
			MoistureMax: intp(80),
		},
	}

	result, err := NormalizeSensorPayload(payload, testSettings())
	require.NoError(t, err)

	assert.Equal(t, 18.0, result.TempMin)
	assert.Equal(t, 26.0, result.TempMax) // not overridden
	assert.Equal(t, 60, result.MoistureMin)
	assert.Equal(t, 80, result.MoistureMax)
}

func TestNormalizeMissingTemperature(t *testing.T) {
	_, err := NormalizeSensorPayload(models.SensorIn{Moisture: intp(65)}, testSettings())
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
}

func TestNormalizeMissingMoisture(t *testing.T) {
	_, err := NormalizeSensorPayload(models.SensorIn{Temperature: floatp(24.0)}, testSettings())
	require.Error(t, err)
}

func TestNormalizeMoistureOutOfBounds(t *testing.T) {
	_, err := NormalizeSensorPayload(models.SensorIn{Temperature: floatp(24.0), Moisture: intp(120)}, testSettings())
	require.Error(t, err)

	_, err = NormalizeSensorPayload(models.SensorIn{Temperature: floatp(24.0), Moisture: intp(-1)}, testSettings())
	require.Error(t, err)
}

func TestNormalizePhOutOfBounds(t *testing.T) {
	_, err := NormalizeSensorPayload(models.SensorIn{Temperature: floatp(24.0), Moisture: intp(65), Ph: floatp(15.0)}, testSettings())
	require.Error(t, err)
}

func TestNormalizeKeepsDeviceTags(t *testing.T) {
	deviceID := "esp32-lab"
	location := "rack-2"
	payload := models.SensorIn{
		Temperature: floatp(24.0),
		Moisture:    intp(65),
		DeviceID:    &deviceID,
		Location:    &location,
	}

	result, err := NormalizeSensorPayload(payload, testSettings())
	require.NoError(t, err)
	require.NotNil(t, result.DeviceID)
	assert.Equal(t, "esp32-lab", *result.DeviceID)
	require.NotNil(t, result.Location)
	assert.Equal(t, "rack-2", *result.Location)
}
