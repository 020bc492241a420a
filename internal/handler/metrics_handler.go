package handler

import (
	"github.com/labstack/echo/v4"

	"backoffice-service/prometheus"
)

// MetricsHandler exposes Prometheus metrics
func MetricsHandler(c echo.Context) error {
	handler := prometheus.GetPrometheusHandler()
	handler.ServeHTTP(c.Response(), c.Request())
	return nil
}
