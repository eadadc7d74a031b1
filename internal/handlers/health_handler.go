package handlers

import (
	"net/http"

	"github.com/farellandr/dealhub/internal/helpers"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Health(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	sqlDB, err := gormDB.DB()
	if err != nil {
		helpers.RespondWithError(c, http.StatusServiceUnavailable, "Database unavailable.")
		return
	}
	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		helpers.RespondWithError(c, http.StatusServiceUnavailable, "Database unavailable.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
