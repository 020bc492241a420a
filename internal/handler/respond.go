package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"backoffice-service/internal/apperr"
	"backoffice-service/prometheus"
)

// writeError maps a domain error onto an HTTP response and records it.
func writeError(c echo.Context, log *zap.Logger, err error) error {
	status := apperr.HTTPStatus(err)
	kind := apperr.KindLabel(err)
	prometheus.RecordError(kind)

	if status == http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err))
		return c.JSON(status, echo.Map{"error": "internal error"})
	}
	log.Warn("request rejected", zap.String("kind", kind), zap.Error(err))
	return c.JSON(status, echo.Map{"error": err.Error()})
}

// parseID reads a numeric path parameter.
func parseID(c echo.Context, name string) (uint, bool) {
	var id uint
	if err := echo.PathParamsBinder(c).Uint(name, &id).BindError(); err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
