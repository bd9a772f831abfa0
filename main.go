package main

import (
	"log"

	"github.com/nkosea07/MUSHROOM-SUBSTRATE-MONITOR/config"
	"github.com/nkosea07/MUSHROOM-SUBSTRATE-MONITOR/controllers"
	"github.com/nkosea07/MUSHROOM-SUBSTRATE-MONITOR/middlewares"
	"github.com/nkosea07/MUSHROOM-SUBSTRATE-MONITOR/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Load environment variables
	godotenv.Load()
	config.Load()

	// Connect to PostgreSQL database
	db, err := gorm.Open(postgres.Open(config.App.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	// Set the global DB in the config package and migrate models
	if err := controllers.MigrateModels(db); err != nil {
		log.Fatal("Failed to migrate models: ", err)
	}

	// Seed the singleton rows so read paths never race on first creation
	if _, err := config.GetOrCreateSettings(db); err != nil {
		log.Fatal("Failed to seed system settings: ", err)
	}
	if _, err := config.GetOrCreateControlState(db); err != nil {
		log.Fatal("Failed to seed control state: ", err)
	}
	if _, err := config.GetOrCreateRuntimeMode(db, config.App.RuntimeModeDefault); err != nil {
		log.Fatal("Failed to seed runtime mode: ", err)
	}

	// Outbound ESP32 client
	config.Device = utils.NewESP32Client(config.App.ESP32BaseURL, config.App.ESP32Timeout)

	// Set up Gin router with CORS configuration
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.App.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Public routes
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Mushroom backend is running"})
	})
	r.POST("/signup", controllers.Signup)
	r.POST("/login", controllers.Login)
	r.GET("/api/health", controllers.Health)

	// Protected routes using auth middleware
	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())
	api.GET("/ws", controllers.HandleWebSocket)
	api.POST("/sensor/ingest", controllers.IngestSensorData)
	api.POST("/sensor/sync", controllers.SyncSensorData)
	api.POST("/sensor/simulate", controllers.SimulateSensorData)
	api.POST("/sensor/collect", controllers.CollectSensorData)
	api.GET("/sensor/latest", controllers.GetLatestSensorData)
	api.GET("/sensor/history", controllers.GetSensorHistory)
	api.GET("/sensor/history.csv", controllers.DownloadCSV)
	api.GET("/alerts", controllers.GetAlerts)
	api.POST("/alerts/:id/resolve", controllers.ResolveAlert)
	api.POST("/control", controllers.SendControlCommand)
	api.GET("/control/state", controllers.GetControlState)
	api.GET("/control/history", controllers.GetActuatorHistory)
	api.GET("/settings/targets", controllers.GetTargets)
	api.PUT("/settings/targets", controllers.UpdateTargets)
	api.GET("/runtime/mode", controllers.GetRuntimeMode)
	api.PUT("/runtime/mode", controllers.UpdateRuntimeMode)
	api.GET("/monitoring/report", controllers.MonitoringReport)
	api.GET("/system/overview", controllers.GetSystemOverview)

	log.Printf("Starting mushroom backend on port %s (runtime mode default: %s)", config.App.Port, config.App.RuntimeModeDefault)
	r.Run(":" + config.App.Port)
}
