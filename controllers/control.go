package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/nkosea07/MUSHROOM-SUBSTRATE-MONITOR/config"
	"github.com/nkosea07/MUSHROOM-SUBSTRATE-MONITOR/models"
	"github.com/nkosea07/MUSHROOM-SUBSTRATE-MONITOR/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Actuators the ESP32 firmware accepts on /api/control. The pH doser is a
// local-only actuator: commands touching it still update ControlState but are
// dropped from the outbound payload with a warning.
var deviceActuators = map[string]bool{
	"fan":        true,
	"heater":     true,
	"humidifier": true,
}

type actuatorField struct {
	name  string
	value *models.ActuatorValue
}

func commandActuators(cmd models.ControlCommand) []actuatorField {
	return []actuatorField{
		{"fan", cmd.Fan},
		{"heater", cmd.Heater},
		{"humidifier", cmd.Humidifier},
		{"ph_actuator", cmd.PhActuator},
	}
}

// buildControlPayload normalizes the command into the outbound device payload.
func buildControlPayload(cmd models.ControlCommand) (map[string]string, error) {
	outgoing := make(map[string]string)

	if cmd.Mode != nil {
		mode := strings.ToUpper(*cmd.Mode)
		if mode != "AUTO" && mode != "MANUAL" {
			return nil, utils.Validation("mode must be AUTO or MANUAL")
		}
		outgoing["mode"] = mode
	}

	for _, field := range commandActuators(cmd) {
		if field.value != nil {
			outgoing[field.name] = field.value.Action
		}
	}

	if len(outgoing) == 0 {
		return nil, utils.Validation("At least one control field is required")
	}
	return outgoing, nil
}

// SendControlCommand dispatches a control command: it decides whether the
// device is contacted (runtime mode plus the per-command simulate flag), then
// persists the control state change and the actuator audit rows atomically.
// A live-mode transport failure with fallback disabled aborts before any
// state is written.
func SendControlCommand(c *gin.Context) {
	var cmd models.ControlCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid control command"})
		return
	}

	outgoing, err := buildControlPayload(cmd)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	runtime, err := config.GetOrCreateRuntimeMode(config.DB, config.App.RuntimeModeDefault)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	effectiveMock := runtime.Mode == "mock" || cmd.Simulate
	var warnings []string

	if !effectiveMock {
		for name := range outgoing {
			if name == "mode" || deviceActuators[name] {
				continue
			}
			delete(outgoing, name)
			warnings = append(warnings, name+" is not supported by the device firmware; updating local state only")
		}
	}

	forwarded := false
	var deviceResponse map[string]interface{}

	if effectiveMock {
		warnings = append(warnings, "mock mode active: command applied to local state only, device not contacted")
	} else if len(outgoing) > 0 {
		response, sendErr := config.Device.SendControl(outgoing)
		if sendErr != nil {
			if !config.App.AllowLiveFallback {
				utils.AbortWithError(c, utils.Upstream("Failed to send command to ESP32: "+sendErr.Error()))
				return
			}
			warnings = append(warnings, "device unreachable, command applied to local state only: "+sendErr.Error())
		} else {
			forwarded = true
			deviceResponse = response
		}
	}

	update := config.ControlStateUpdate{Mode: cmd.Mode}
	for _, field := range commandActuators(cmd) {
		if field.value == nil {
			continue
		}
		on := field.value.On()
		switch field.name {
		case "fan":
			update.Fan = &on
		case "heater":
			update.Heater = &on
		case "humidifier":
			update.Humidifier = &on
		case "ph_actuator":
			update.PhActuator = &on
		}
	}

	latest := latestReadingSnapshot()

	var state models.ControlState
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		applied, applyErr := config.ApplyControlState(tx, update)
		if applyErr != nil {
			return applyErr
		}
		state = applied

		for _, field := range commandActuators(cmd) {
			if field.value == nil {
				continue
			}
			entry := models.ActuatorLog{
				Timestamp:       time.Now(),
				ActuatorType:    field.name,
				Action:          field.value.Action,
				DurationSeconds: 0.0,
				TriggeredBy:     "manual_api",
			}
			if latest != nil {
				entry.SensorTemperature = &latest.Temperature
				entry.SensorMoisture = &latest.Moisture
				entry.SensorPh = latest.Ph
			}
			if createErr := tx.Create(&entry).Error; createErr != nil {
				return createErr
			}
		}
		return nil
	})
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	message := "Command applied locally"
	if forwarded {
		message = "Command forwarded"
	}

	var warning interface{}
	if len(warnings) > 0 {
		warning = strings.Join(warnings, " | ")
	}

	c.JSON(http.StatusOK, models.ControlResponse{
		Success: true,
		Message: message,
		Payload: map[string]interface{}{
			"forwarded":       forwarded,
			"device_response": deviceResponse,
			"warning":         warning,
			"state":           state,
		},
	})
}

// GetControlState returns the persisted actuator state.
func GetControlState(c *gin.Context) {
	state, err := config.GetOrCreateControlState(config.DB)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// GetActuatorHistory returns recent actuator log entries, most recent first.
func GetActuatorHistory(c *gin.Context) {
	limit := queryInt(c, "limit", 50, 1, 500)

	var entries []models.ActuatorLog
	query := config.DB.Order("timestamp desc").Limit(limit)
	if actuatorType := c.Query("actuator_type"); actuatorType != "" {
		query = query.Where("actuator_type = ?", actuatorType)
	}
	if err := query.Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch actuator history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": entries, "count": len(entries)})
}

// latestReadingSnapshot returns the most recent reading, or nil if none exists.
func latestReadingSnapshot() *models.SensorData {
	var rows []models.SensorData
	if err := config.DB.Order("timestamp desc").Limit(1).Find(&rows).Error; err != nil || len(rows) == 0 {
		return nil
	}
	return &rows[0]
}
