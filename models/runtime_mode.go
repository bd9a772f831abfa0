package models

import "time"

// RuntimeMode is a singleton row (fixed id=1) selecting between contacting
// the real ESP32 ("live") and synthesizing readings ("mock").
type RuntimeMode struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Mode      string    `json:"mode" gorm:"not null;default:live"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RuntimeModeUpdate struct {
	Mode string `json:"mode"`
}
