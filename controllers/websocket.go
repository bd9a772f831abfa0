package controllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/nkosea07/MUSHROOM-SUBSTRATE-MONITOR/config"
	"github.com/nkosea07/MUSHROOM-SUBSTRATE-MONITOR/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var (
	wsMutex   sync.Mutex
	wsClients = make(map[*websocket.Conn]bool)
)

// HandleWebSocket registers a dashboard client for push updates.
func HandleWebSocket(c *gin.Context) {
	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	wsMutex.Lock()
	wsClients[conn] = true
	wsMutex.Unlock()

	defer func() {
		wsMutex.Lock()
		delete(wsClients, conn)
		wsMutex.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func broadcast(message interface{}) {
	msg, _ := json.Marshal(message)

	wsMutex.Lock()
	defer wsMutex.Unlock()
	for conn := range wsClients {
		conn.WriteMessage(websocket.TextMessage, msg)
	}
}

// BroadcastReading pushes a new reading to all WebSocket clients.
func BroadcastReading(reading models.SensorData) {
	broadcast(gin.H{"type": "reading", "data": reading})
}

// BroadcastAlerts pushes threshold alert notifications alongside the
// unresolved alert count.
func BroadcastAlerts(reading models.SensorData, alerts []models.Alert) {
	var unresolved int64
	config.DB.Model(&models.Alert{}).Where("resolved = ?", false).Count(&unresolved)

	broadcast(gin.H{
		"type":             "alert",
		"message":          "Threshold alert raised!",
		"reading":          reading,
		"alerts":           alerts,
		"unresolved_count": unresolved,
	})
}
