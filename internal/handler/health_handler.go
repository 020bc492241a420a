package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"backoffice-service/pkg/database"
)

// HealthCheck handles the health check endpoint
func HealthCheck(c echo.Context) error {
	status := "healthy"
	dbStatus := "up"
	if sqlDB, err := database.GetDB().DB(); err != nil || sqlDB.Ping() != nil {
		status = "degraded"
		dbStatus = "down"
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":   status,
		"database": dbStatus,
		"service":  "backoffice-service",
	})
}
