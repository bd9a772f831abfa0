package controllers

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/nkosea07/MUSHROOM-SUBSTRATE-MONITOR/config"
	"github.com/nkosea07/MUSHROOM-SUBSTRATE-MONITOR/models"
	"github.com/nkosea07/MUSHROOM-SUBSTRATE-MONITOR/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// simRand feeds the reading simulator. rand.Rand is not safe for concurrent
// use, so handler-path draws are serialized by simMu.
var (
	simMu   sync.Mutex
	simRand = rand.New(rand.NewSource(time.Now().UnixNano()))
)

func drawSimulatedReading(settings models.SystemSettings, last *models.SensorData) models.SensorIn {
	simMu.Lock()
	defer simMu.Unlock()
	return utils.SimulateReading(settings, last, simRand)
}

// storeReading normalizes a payload against the current settings, persists
// the reading together with any threshold alerts in one transaction, and
// pushes both to WebSocket clients.
func storeReading(payload models.SensorIn) (models.SensorData, []models.Alert, error) {
	settings, err := config.GetOrCreateSettings(config.DB)
	if err != nil {
		return models.SensorData{}, nil, err
	}

	reading, err := utils.NormalizeSensorPayload(payload, settings)
	if err != nil {
		return models.SensorData{}, nil, err
	}
	reading.Timestamp = time.Now()

	alerts := utils.BuildThresholdAlerts(reading)
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&reading).Error; err != nil {
			return err
		}
		// Alerts are created in evaluation order; no other ordering key exists.
		for i := range alerts {
			alerts[i].Timestamp = reading.Timestamp
			if err := tx.Create(&alerts[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.SensorData{}, nil, err
	}

	BroadcastReading(reading)
	if len(alerts) > 0 {
		BroadcastAlerts(reading, alerts)
	}
	return reading, alerts, nil
}

func syncReading() (models.SensorData, error) {
	payload, err := config.Device.FetchCurrentData()
	if err != nil {
		return models.SensorData{}, utils.Upstream("Failed to fetch ESP32 data: " + err.Error())
	}
	reading, _, err := storeReading(*payload)
	return reading, err
}

func simulateReading() (models.SensorData, error) {
	settings, err := config.GetOrCreateSettings(config.DB)
	if err != nil {
		return models.SensorData{}, err
	}

	var last *models.SensorData
	var rows []models.SensorData
	if err := config.DB.Order("timestamp desc").Limit(1).Find(&rows).Error; err != nil {
		return models.SensorData{}, err
	}
	if len(rows) > 0 {
		last = &rows[0]
	}

	reading, _, err := storeReading(drawSimulatedReading(settings, last))
	return reading, err
}

// IngestSensorData processes a reading posted directly to the API.
func IngestSensorData(c *gin.Context) {
	var payload models.SensorIn
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sensor payload"})
		return
	}

	reading, _, err := storeReading(payload)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, reading)
}

// SyncSensorData fetches a real reading from the ESP32. Legal only in live mode.
func SyncSensorData(c *gin.Context) {
	mode, err := config.GetOrCreateRuntimeMode(config.DB, config.App.RuntimeModeDefault)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	if mode.Mode != "live" {
		utils.AbortWithError(c, utils.Conflict("sync requires live runtime mode; switch the runtime mode to live first"))
		return
	}

	reading, err := syncReading()
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, reading)
}

// SimulateSensorData stores a synthetic reading. Legal only in mock mode.
func SimulateSensorData(c *gin.Context) {
	mode, err := config.GetOrCreateRuntimeMode(config.DB, config.App.RuntimeModeDefault)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	if mode.Mode != "mock" {
		utils.AbortWithError(c, utils.Conflict("simulate requires mock runtime mode; switch the runtime mode to mock first"))
		return
	}

	reading, err := simulateReading()
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, reading)
}

// CollectSensorData stores one reading from whichever source the current
// runtime mode selects. It never fails due to mode, so it is the endpoint a
// periodic poller should call.
func CollectSensorData(c *gin.Context) {
	mode, err := config.GetOrCreateRuntimeMode(config.DB, config.App.RuntimeModeDefault)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	var reading models.SensorData
	if mode.Mode == "live" {
		reading, err = syncReading()
	} else {
		reading, err = simulateReading()
	}
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, reading)
}

// GetLatestSensorData returns the most recent reading.
func GetLatestSensorData(c *gin.Context) {
	var rows []models.SensorData
	if err := config.DB.Order("timestamp desc").Limit(1).Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sensor data"})
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No sensor data available"})
		return
	}
	c.JSON(http.StatusOK, rows[0])
}

// GetSensorHistory returns recent readings, most recent first.
func GetSensorHistory(c *gin.Context) {
	limit := queryInt(c, "limit", 100, 1, 2000)

	var records []models.SensorData
	if err := config.DB.Order("timestamp desc").Limit(limit).Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sensor history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": records, "count": len(records)})
}

// DownloadCSV sends the reading history as a CSV file.
func DownloadCSV(c *gin.Context) {
	var records []models.SensorData
	if err := config.DB.Order("timestamp desc").Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sensor history"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=sensor_data.csv")
	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"timestamp", "temperature", "moisture", "ph"})
	for _, record := range records {
		ph := ""
		if record.Ph != nil {
			ph = fmt.Sprintf("%.2f", *record.Ph)
		}
		writer.Write([]string{
			record.Timestamp.Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%.2f", record.Temperature),
			strconv.Itoa(record.Moisture),
			ph,
		})
	}
}

// queryInt reads an integer query parameter and clamps it into [min, max].
func queryInt(c *gin.Context, name string, fallback, min, max int) int {
	value := fallback
	if raw := c.Query(name); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			value = parsed
		}
	}
	if value < min {
		value = min
	}
	if value > max {
		value = max
	}
	return value
}
