package controllers

import (
	"github.com/nkosea07/MUSHROOM-SUBSTRATE-MONITOR/config"
	"github.com/nkosea07/MUSHROOM-SUBSTRATE-MONITOR/models"

	"gorm.io/gorm"
)

// MigrateModels runs the database migrations
func MigrateModels(db *gorm.DB) error {
	config.DB = db
	return db.AutoMigrate(
		&models.User{},
		&models.SensorData{},
		&models.Alert{},
		&models.ActuatorLog{},
		&models.SystemSettings{},
		&models.ControlState{},
		&models.RuntimeMode{},
	)
}
