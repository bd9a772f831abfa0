package controllers

import (
	"math"
	"net/http"

	"github.com/nkosea07/MUSHROOM-SUBSTRATE-MONITOR/config"
	"github.com/nkosea07/MUSHROOM-SUBSTRATE-MONITOR/models"
	"github.com/nkosea07/MUSHROOM-SUBSTRATE-MONITOR/utils"

	"github.com/gin-gonic/gin"
)

func parameterStatus(value, min, max float64) string {
	if value < min {
		return "low"
	}
	if value > max {
		return "high"
	}
	return "optimal"
}

func round(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(value*factor) / factor
}

// deviationEntry builds the {status, current, target} block for one parameter.
func deviationEntry(current *float64, min, max float64, decimals int) gin.H {
	target := round((min+max)/2, decimals)
	if current == nil {
		return gin.H{"status": "unknown", "current": nil, "target": target}
	}
	return gin.H{
		"status":  parameterStatus(*current, min, max),
		"current": *current,
		"target":  target,
	}
}

// MonitoringReport aggregates recent history, the current targets and the
// control state into the dashboard's report payload: status classification,
// deviation targets, rolling averages and the two windowed series.
func MonitoringReport(c *gin.Context) {
	points := queryInt(c, "points", 20, 1, 200)
	logItems := queryInt(c, "log_items", 10, 1, 100)

	settings, err := config.GetOrCreateSettings(config.DB)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	state, err := config.GetOrCreateControlState(config.DB)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	window := points
	if logItems > window {
		window = logItems
	}
	fetchLimit := window
	if fetchLimit < 100 {
		fetchLimit = 100
	}

	var readings []models.SensorData
	if err := config.DB.Order("timestamp desc").Limit(fetchLimit).Find(&readings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sensor history"})
		return
	}

	var total int64
	if err := config.DB.Model(&models.SensorData{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count readings"})
		return
	}

	var current interface{}
	var currentTemp, currentMoisture, currentPh *float64
	if len(readings) > 0 {
		latest := readings[0]
		current = latest
		currentTemp = &latest.Temperature
		moisture := float64(latest.Moisture)
		currentMoisture = &moisture
		currentPh = latest.Ph
	}

	deviation := gin.H{
		"temperature": deviationEntry(currentTemp, settings.TempMin, settings.TempMax, 2),
		"moisture":    deviationEntry(currentMoisture, float64(settings.MoistureMin), float64(settings.MoistureMax), 1),
		"ph":          deviationEntry(currentPh, settings.PhMin, settings.PhMax, 2),
	}

	status := gin.H{
		"temperature": statusOf(deviation, "temperature"),
		"moisture":    statusOf(deviation, "moisture"),
		"ph":          statusOf(deviation, "ph"),
	}

	liveWindow := readings
	if len(liveWindow) > points {
		liveWindow = liveWindow[:points]
	}
	// Chronological order for charting.
	liveSeries := make([]models.SensorData, len(liveWindow))
	for i, reading := range liveWindow {
		liveSeries[len(liveWindow)-1-i] = reading
	}

	readingsLog := readings
	if len(readingsLog) > logItems {
		readingsLog = readingsLog[:logItems]
	}

	averages := computeAverages(readings, window)

	c.JSON(http.StatusOK, gin.H{
		"current":      current,
		"deviation":    deviation,
		"targets":      settings,
		"live_series":  liveSeries,
		"readings_log": readingsLog,
		"report": gin.H{
			"status":           status,
			"averages":         averages,
			"total_readings":   total,
			"active_actuators": state.ActiveActuators(),
			"max_actuators":    4,
		},
	})
}

func statusOf(deviation gin.H, parameter string) string {
	return deviation[parameter].(gin.H)["status"].(string)
}

// computeAverages returns the arithmetic means over the first window rows,
// or nil when no rows exist. Null ph values are skipped.
func computeAverages(readings []models.SensorData, window int) interface{} {
	if len(readings) == 0 {
		return nil
	}
	if window > len(readings) {
		window = len(readings)
	}

	var tempSum, moistureSum, phSum float64
	phCount := 0
	for _, reading := range readings[:window] {
		tempSum += reading.Temperature
		moistureSum += float64(reading.Moisture)
		if reading.Ph != nil {
			phSum += *reading.Ph
			phCount++
		}
	}

	n := float64(window)
	averages := gin.H{
		"temperature": round(tempSum/n, 2),
		"moisture":    round(moistureSum/n, 1),
		"ph":          nil,
	}
	if phCount > 0 {
		averages["ph"] = round(phSum/float64(phCount), 2)
	}
	return averages
}

// GetSystemOverview returns a compact snapshot for status pages: the latest
// reading, the unresolved alert count and recent actuator activity.
func GetSystemOverview(c *gin.Context) {
	var latestRows []models.SensorData
	if err := config.DB.Order("timestamp desc").Limit(1).Find(&latestRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sensor data"})
		return
	}

	var unresolved int64
	if err := config.DB.Model(&models.Alert{}).Where("resolved = ?", false).Count(&unresolved).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count alerts"})
		return
	}

	var recent []models.ActuatorLog
	if err := config.DB.Order("timestamp desc").Limit(10).Find(&recent).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch actuator history"})
		return
	}

	var latest interface{}
	if len(latestRows) > 0 {
		latest = latestRows[0]
	}

	actuation := make([]gin.H, 0, len(recent))
	for _, item := range recent {
		actuation = append(actuation, gin.H{
			"id":            item.ID,
			"timestamp":     item.Timestamp,
			"actuator_type": item.ActuatorType,
			"action":        item.Action,
			"triggered_by":  item.TriggeredBy,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"latest":            latest,
		"unresolved_alerts": unresolved,
		"recent_actuation":  actuation,
	})
}

// Health is the liveness probe.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
