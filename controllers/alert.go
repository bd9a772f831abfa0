package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/nkosea07/MUSHROOM-SUBSTRATE-MONITOR/config"
	"github.com/nkosea07/MUSHROOM-SUBSTRATE-MONITOR/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetAlerts lists alerts. By default only unresolved ones; with
// unresolved_only=false it returns the last week of alerts instead.
func GetAlerts(c *gin.Context) {
	unresolvedOnly := true
	if raw := c.Query("unresolved_only"); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			unresolvedOnly = parsed
		}
	}
	severity := c.Query("severity")

	var alerts []models.Alert
	var err error
	if unresolvedOnly {
		query := config.DB.Where("resolved = ?", false)
		if severity != "" {
			query = query.Where("severity = ?", severity)
		}
		err = query.Order("timestamp desc").Find(&alerts).Error
	} else {
		since := time.Now().Add(-168 * time.Hour)
		query := config.DB.Where("timestamp >= ?", since)
		if severity != "" {
			query = query.Where("severity = ?", severity)
		}
		err = query.Order("timestamp desc").Limit(500).Find(&alerts).Error
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch alerts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": alerts, "count": len(alerts)})
}

// ResolveAlert marks an alert resolved. Resolving an already-resolved alert
// just refreshes resolved_at.
func ResolveAlert(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
		return
	}

	var alert models.Alert
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&alert, "id = ?", id).Error; err != nil {
			return err
		}
		now := time.Now()
		alert.Resolved = true
		alert.ResolvedAt = &now
		return tx.Save(&alert).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve alert"})
		return
	}
	c.JSON(http.StatusOK, alert)
}
