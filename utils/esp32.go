package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nkosea07/MUSHROOM-SUBSTRATE-MONITOR/models"
)

// ESP32Client talks to the chamber firmware over HTTP. Calls carry a bounded
// timeout and no retry; retry policy belongs to the caller.
type ESP32Client struct {
	BaseURL string
	client  *http.Client
}

func NewESP32Client(baseURL string, timeout time.Duration) *ESP32Client {
	return &ESP32Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// FetchCurrentData reads the current sensor values from the device.
func (e *ESP32Client) FetchCurrentData() (*models.SensorIn, error) {
	resp, err := e.client.Get(e.BaseURL + "/api/data")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("ESP32 returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload models.SensorIn
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("invalid ESP32 data payload: %w", err)
	}
	return &payload, nil
}

// SendControl forwards an actuator command to the device and returns its
// response echo.
func (e *ESP32Client) SendControl(payload map[string]string) (map[string]interface{}, error) {
	requestBody, _ := json.Marshal(payload)
	resp, err := e.client.Post(e.BaseURL+"/api/control", "application/json", bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("ESP32 returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var echo map[string]interface{}
	if err := json.Unmarshal(body, &echo); err != nil {
		return nil, fmt.Errorf("invalid ESP32 control response: %w", err)
	}
	return echo, nil
}
