package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NguyenTrongThuan612/restaurant-management/utils"
)

func HealthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			utils.Respond(c, http.StatusServiceUnavailable, "database unreachable", nil)
			return
		}
		utils.Respond(c, http.StatusOK, "OK", gin.H{"database": "up"})
	}
}
