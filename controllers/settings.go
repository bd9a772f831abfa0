package controllers

import (
	"net/http"

	"github.com/nkosea07/MUSHROOM-SUBSTRATE-MONITOR/config"
	"github.com/nkosea07/MUSHROOM-SUBSTRATE-MONITOR/models"
	"github.com/nkosea07/MUSHROOM-SUBSTRATE-MONITOR/utils"

	"github.com/gin-gonic/gin"
)

// GetTargets returns the global target ranges.
func GetTargets(c *gin.Context) {
	settings, err := config.GetOrCreateSettings(config.DB)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateTargets applies a partial update of the target ranges. Each dimension
// must keep min < max or nothing is written.
func UpdateTargets(c *gin.Context) {
	var update models.TargetUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid targets payload"})
		return
	}

	settings, err := config.UpdateTargets(config.DB, update)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
