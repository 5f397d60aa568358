// Package controllers controllers/health_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health answers load balancer checks.
func Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
