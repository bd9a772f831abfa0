package config

import (
	"github.com/nkosea07/MUSHROOM-SUBSTRATE-MONITOR/models"

	"gorm.io/gorm"
)

// DB is a global variable to hold the database connection
var DB *gorm.DB

// DeviceAPI is the outbound ESP32 contract. The real client lives in utils;
// tests swap Device for a fake.
type DeviceAPI interface {
	FetchCurrentData() (*models.SensorIn, error)
	SendControl(payload map[string]string) (map[string]interface{}, error)
}

// Device is the global ESP32 client, set in main.
var Device DeviceAPI
