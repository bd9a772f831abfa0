package models

import "time"

type Alert struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	Timestamp      time.Time  `json:"timestamp" gorm:"index"`
	Severity       string     `json:"severity" gorm:"not null"`
	Parameter      string     `json:"parameter" gorm:"not null"`
	Message        string     `json:"message" gorm:"not null"`
	ThresholdValue *float64   `json:"threshold_value"`
	CurrentValue   *float64   `json:"current_value"`
	Resolved       bool       `json:"resolved" gorm:"default:false"`
	ResolvedAt     *time.Time `json:"resolved_at"`
}
