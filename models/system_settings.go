package models

import "time"

// SystemSettings is a singleton row (fixed id=1) holding the global target
// ranges. New readings snapshot these values unless the payload overrides them.
type SystemSettings struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UpdatedAt   time.Time `json:"updated_at"`
	TempMin     float64   `json:"temp_min" gorm:"not null"`
	TempMax     float64   `json:"temp_max" gorm:"not null"`
	MoistureMin int       `json:"moisture_min" gorm:"not null"`
	MoistureMax int       `json:"moisture_max" gorm:"not null"`
	PhMin       float64   `json:"ph_min" gorm:"not null"`
	PhMax       float64   `json:"ph_max" gorm:"not null"`
}

// TargetUpdate is a partial update of SystemSettings. Absent fields keep
// their stored values.
type TargetUpdate struct {
	TempMin     *float64 `json:"temp_min"`
	TempMax     *float64 `json:"temp_max"`
	MoistureMin *int     `json:"moisture_min"`
	MoistureMax *int     `json:"moisture_max"`
	PhMin       *float64 `json:"ph_min"`
	PhMax       *float64 `json:"ph_max"`
}
