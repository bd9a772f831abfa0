package controllers

import (
	"net/http"

	"github.com/nkosea07/MUSHROOM-SUBSTRATE-MONITOR/config"
	"github.com/nkosea07/MUSHROOM-SUBSTRATE-MONITOR/models"
	"github.com/nkosea07/MUSHROOM-SUBSTRATE-MONITOR/utils"

	"github.com/gin-gonic/gin"
)

func runtimeModeResponse(mode models.RuntimeMode) gin.H {
	return gin.H{
		"mode":                mode.Mode,
		"updated_at":          mode.UpdatedAt,
		"esp32_base_url":      config.App.ESP32BaseURL,
		"allow_live_fallback": config.App.AllowLiveFallback,
	}
}

// GetRuntimeMode returns the current live/mock selector.
func GetRuntimeMode(c *gin.Context) {
	mode, err := config.GetOrCreateRuntimeMode(config.DB, config.App.RuntimeModeDefault)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, runtimeModeResponse(mode))
}

// UpdateRuntimeMode switches between live and mock.
func UpdateRuntimeMode(c *gin.Context) {
	var update models.RuntimeModeUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid runtime mode payload"})
		return
	}

	mode, err := config.SetRuntimeMode(config.DB, update.Mode)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, runtimeModeResponse(mode))
}
