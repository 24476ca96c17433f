package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Respond writes the uniform API envelope every endpoint uses.
func Respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func AbortWith(c *gin.Context, status int, message string) {
	c.Abort()
	Respond(c, status, message, nil)
}

// ServerError exposes the raw error string; callers are expected to log it.
func ServerError(c *gin.Context, err error) {
	Respond(c, http.StatusInternalServerError, "Internal server error", gin.H{"error": err.Error()})
}
