package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nkosea07/MUSHROOM-SUBSTRATE-MONITOR/config"
	"github.com/nkosea07/MUSHROOM-SUBSTRATE-MONITOR/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeDevice stands in for the ESP32 so tests control transport behavior.
type fakeDevice struct {
	data        *models.SensorIn
	fetchErr    error
	sendErr     error
	response    map[string]interface{}
	lastPayload map[string]string
	sendCalls   int
}

func (f *fakeDevice) FetchCurrentData() (*models.SensorIn, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.data, nil
}

func (f *fakeDevice) SendControl(payload map[string]string) (map[string]interface{}, error) {
	f.sendCalls++
	f.lastPayload = payload
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	if f.response != nil {
		return f.response, nil
	}
	return map[string]interface{}{"status": "ok"}, nil
}

var testDBCounter int

// setupTest wires an isolated in-memory database and a fake device into the
// package globals and returns the fake for per-test tweaking.
func setupTest(t *testing.T) *fakeDevice {
	t.Helper()
	gin.SetMode(gin.TestMode)

	testDBCounter++
	dsn := fmt.Sprintf("file:controllers_test_%d_%d?mode=memory&cache=shared", time.Now().UnixNano(), testDBCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, MigrateModels(db))

	config.Load()
	device := &fakeDevice{}
	config.Device = device
	return device
}

func testRouter() *gin.Engine {
	r := gin.New()
	r.GET("/api/health", Health)
	r.POST("/api/sensor/ingest", IngestSensorData)
	r.POST("/api/sensor/sync", SyncSensorData)
	r.POST("/api/sensor/simulate", SimulateSensorData)
	r.POST("/api/sensor/collect", CollectSensorData)
	r.GET("/api/sensor/latest", GetLatestSensorData)
	r.GET("/api/sensor/history", GetSensorHistory)
	r.GET("/api/alerts", GetAlerts)
	r.POST("/api/alerts/:id/resolve", ResolveAlert)
	r.POST("/api/control", SendControlCommand)
	r.GET("/api/control/state", GetControlState)
	r.GET("/api/control/history", GetActuatorHistory)
	r.GET("/api/settings/targets", GetTargets)
	r.PUT("/api/settings/targets", UpdateTargets)
	r.GET("/api/runtime/mode", GetRuntimeMode)
	r.PUT("/api/runtime/mode", UpdateRuntimeMode)
	r.GET("/api/monitoring/report", MonitoringReport)
	r.GET("/api/system/overview", GetSystemOverview)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	return decoded
}

func setRuntimeMode(t *testing.T, mode string) {
	t.Helper()
	_, err := config.SetRuntimeMode(config.DB, mode)
	require.NoError(t, err)
}

func ingestReading(t *testing.T, r *gin.Engine, temperature float64, moisture int, ph float64) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/sensor/ingest", gin.H{
		"temperature": temperature,
		"moisture":    moisture,
		"ph":          ph,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
