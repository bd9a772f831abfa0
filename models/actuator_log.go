package models

import "time"

// ActuatorLog is an append-only audit trail of actuator commands. Sensor
// values are a snapshot of the latest reading at command time, if any.
type ActuatorLog struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	Timestamp         time.Time `json:"timestamp" gorm:"index"`
	ActuatorType      string    `json:"actuator_type" gorm:"not null"`
	Action            string    `json:"action" gorm:"not null"`
	DurationSeconds   float64   `json:"duration_seconds" gorm:"default:0"`
	TriggeredBy       string    `json:"triggered_by" gorm:"not null"`
	SensorTemperature *float64  `json:"sensor_temperature"`
	SensorMoisture    *int      `json:"sensor_moisture"`
	SensorPh          *float64  `json:"sensor_ph"`
}
