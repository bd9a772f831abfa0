package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ControlState is a singleton row (fixed id=1) holding the desired state of
// each actuator plus the AUTO/MANUAL mode.
type ControlState struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UpdatedAt  time.Time `json:"updated_at"`
	Mode       string    `json:"mode" gorm:"not null;default:AUTO"`
	Fan        bool      `json:"fan" gorm:"not null;default:false"`
	Heater     bool      `json:"heater" gorm:"not null;default:false"`
	Humidifier bool      `json:"humidifier" gorm:"not null;default:false"`
	PhActuator bool      `json:"ph_actuator" gorm:"not null;default:false"`
}

// ActiveActuators counts how many of the four actuators are switched on.
func (s ControlState) ActiveActuators() int {
	count := 0
	for _, on := range []bool{s.Fan, s.Heater, s.Humidifier, s.PhActuator} {
		if on {
			count++
		}
	}
	return count
}

// ActuatorValue accepts either a JSON boolean or a string and normalizes it
// to the device's ON/OFF vocabulary. A nil *ActuatorValue means the field was
// absent from the command, so the stored state is left untouched.
type ActuatorValue struct {
	Action string
}

func (v *ActuatorValue) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		if b {
			v.Action = "ON"
		} else {
			v.Action = "OFF"
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v.Action = strings.ToUpper(s)
		return nil
	}
	return fmt.Errorf("actuator value must be a boolean or a string")
}

func (v ActuatorValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Action)
}

// On reports whether the normalized action switches the actuator on.
func (v ActuatorValue) On() bool {
	return v.Action == "ON"
}

// ControlCommand is an inbound control request. All fields are optional but
// at least one of mode or an actuator must be present. Simulate forces
// mock handling for this command only.
type ControlCommand struct {
	Mode       *string        `json:"mode"`
	Fan        *ActuatorValue `json:"fan"`
	Heater     *ActuatorValue `json:"heater"`
	Humidifier *ActuatorValue `json:"humidifier"`
	PhActuator *ActuatorValue `json:"ph_actuator"`
	Simulate   bool           `json:"simulate"`
}

type ControlResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Payload map[string]interface{} `json:"payload"`
}
