package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// isoMillis matches the timestamp shape browsers produce with toISOString.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// HealthCheck reports liveness.
func (a *API) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(isoMillis),
	})
}
