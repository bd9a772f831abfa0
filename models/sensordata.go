package models

import "time"

type SensorData struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Timestamp   time.Time `json:"timestamp" gorm:"index"`
	Temperature float64   `json:"temperature" gorm:"not null"`
	Moisture    int       `json:"moisture" gorm:"not null"`
	Ph          *float64  `json:"ph"`
	TempMin     float64   `json:"temp_min"`
	TempMax     float64   `json:"temp_max"`
	MoistureMin int       `json:"moisture_min"`
	MoistureMax int       `json:"moisture_max"`
	PhMin       float64   `json:"ph_min"`
	PhMax       float64   `json:"ph_max"`
	DeviceID    *string   `json:"device_id"`
	Location    *string   `json:"location"`
}

// Thresholds is an optional per-reading override of the global targets.
// Absent fields fall back to the current SystemSettings values.
type Thresholds struct {
	TempMin     *float64 `json:"temp_min"`
	TempMax     *float64 `json:"temp_max"`
	MoistureMin *int     `json:"moisture_min"`
	MoistureMax *int     `json:"moisture_max"`
	PhMin       *float64 `json:"ph_min"`
	PhMax       *float64 `json:"ph_max"`
}

// SensorIn is the raw ingest payload, either posted by a client or fetched
// from the ESP32. Temperature and moisture are required.
type SensorIn struct {
	Temperature *float64    `json:"temperature"`
	Moisture    *int        `json:"moisture"`
	Ph          *float64    `json:"ph"`
	Thresholds  *Thresholds `json:"thresholds"`
	DeviceID    *string     `json:"device_id"`
	Location    *string     `json:"location"`
}
