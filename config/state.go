package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nkosea07/MUSHROOM-SUBSTRATE-MONITOR/models"
	"github.com/nkosea07/MUSHROOM-SUBSTRATE-MONITOR/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// The three singleton rows (settings, control state, runtime mode) all live
// at a fixed id. Read-modify-write happens inside one transaction holding a
// row lock, so concurrent updates on postgres cannot overwrite each other's
// columns. The sqlite driver ignores the lock clause; its writes serialize
// anyway.
const singletonID = 1

func lockForUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func defaultSettings() models.SystemSettings {
	return models.SystemSettings{
		ID:          singletonID,
		TempMin:     22.0,
		TempMax:     26.0,
		MoistureMin: 60,
		MoistureMax: 70,
		PhMin:       6.5,
		PhMax:       7.0,
	}
}

// GetOrCreateSettings returns the settings row, seeding defaults on first access.
func GetOrCreateSettings(db *gorm.DB) (models.SystemSettings, error) {
	var settings models.SystemSettings
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&settings, singletonID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				settings = defaultSettings()
				return tx.Create(&settings).Error
			}
			return err
		}
		return nil
	})
	return settings, err
}

// UpdateTargets applies a partial targets update. Every dimension must keep
// min < max after the merge or nothing is written.
func UpdateTargets(db *gorm.DB, update models.TargetUpdate) (models.SystemSettings, error) {
	var settings models.SystemSettings
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&settings, singletonID).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			settings = defaultSettings()
			if err := tx.Create(&settings).Error; err != nil {
				return err
			}
		}

		if update.TempMin != nil {
			settings.TempMin = *update.TempMin
		}
		if update.TempMax != nil {
			settings.TempMax = *update.TempMax
		}
		if update.MoistureMin != nil {
			settings.MoistureMin = *update.MoistureMin
		}
		if update.MoistureMax != nil {
			settings.MoistureMax = *update.MoistureMax
		}
		if update.PhMin != nil {
			settings.PhMin = *update.PhMin
		}
		if update.PhMax != nil {
			settings.PhMax = *update.PhMax
		}

		if settings.TempMin >= settings.TempMax {
			return utils.Validation(fmt.Sprintf("temp_min must be below temp_max (%.2f >= %.2f)", settings.TempMin, settings.TempMax))
		}
		if settings.MoistureMin >= settings.MoistureMax {
			return utils.Validation(fmt.Sprintf("moisture_min must be below moisture_max (%d >= %d)", settings.MoistureMin, settings.MoistureMax))
		}
		if settings.PhMin >= settings.PhMax {
			return utils.Validation(fmt.Sprintf("ph_min must be below ph_max (%.2f >= %.2f)", settings.PhMin, settings.PhMax))
		}

		settings.UpdatedAt = time.Now()
		return tx.Save(&settings).Error
	})
	return settings, err
}

// GetOrCreateControlState returns the control state row, seeding defaults
// (AUTO mode, all actuators off) on first access.
func GetOrCreateControlState(db *gorm.DB) (models.ControlState, error) {
	var state models.ControlState
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&state, singletonID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				state = models.ControlState{ID: singletonID, Mode: "AUTO"}
				return tx.Create(&state).Error
			}
			return err
		}
		return nil
	})
	return state, err
}

// ControlStateUpdate is a partial control state change. Nil fields keep
// their stored values.
type ControlStateUpdate struct {
	Mode       *string
	Fan        *bool
	Heater     *bool
	Humidifier *bool
	PhActuator *bool
}

// ApplyControlState merges the update into the singleton row. db may be a
// transaction when the caller needs the state change atomic with other writes.
func ApplyControlState(db *gorm.DB, update ControlStateUpdate) (models.ControlState, error) {
	var state models.ControlState
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&state, singletonID).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			state = models.ControlState{ID: singletonID, Mode: "AUTO"}
			if err := tx.Create(&state).Error; err != nil {
				return err
			}
		}

		if update.Mode != nil {
			state.Mode = strings.ToUpper(*update.Mode)
		}
		if update.Fan != nil {
			state.Fan = *update.Fan
		}
		if update.Heater != nil {
			state.Heater = *update.Heater
		}
		if update.Humidifier != nil {
			state.Humidifier = *update.Humidifier
		}
		if update.PhActuator != nil {
			state.PhActuator = *update.PhActuator
		}

		state.UpdatedAt = time.Now()
		return tx.Save(&state).Error
	})
	return state, err
}

// GetOrCreateRuntimeMode returns the runtime mode row, seeding the configured
// default on first access.
func GetOrCreateRuntimeMode(db *gorm.DB, defaultMode string) (models.RuntimeMode, error) {
	var mode models.RuntimeMode
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&mode, singletonID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				seed := strings.ToLower(defaultMode)
				if seed != "live" && seed != "mock" {
					seed = "live"
				}
				mode = models.RuntimeMode{ID: singletonID, Mode: seed}
				return tx.Create(&mode).Error
			}
			return err
		}
		return nil
	})
	return mode, err
}

// SetRuntimeMode switches between live and mock. Input is case-insensitive
// and stored lower-case; anything else is a validation error.
func SetRuntimeMode(db *gorm.DB, requested string) (models.RuntimeMode, error) {
	normalized := strings.ToLower(strings.TrimSpace(requested))
	if normalized != "live" && normalized != "mock" {
		return models.RuntimeMode{}, utils.Validation(fmt.Sprintf("runtime mode must be 'live' or 'mock', got %q", requested))
	}

	var mode models.RuntimeMode
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&mode, singletonID).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			mode = models.RuntimeMode{ID: singletonID, Mode: normalized}
			return tx.Create(&mode).Error
		}
		mode.Mode = normalized
		mode.UpdatedAt = time.Now()
		return tx.Save(&mode).Error
	})
	return mode, err
}
