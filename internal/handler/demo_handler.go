package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"backoffice-service/internal/service"
	"backoffice-service/pkg/logger"
	"backoffice-service/prometheus"
)

// DemoHandler exposes the guided scenarios under /api/demo. Each scenario
// writes real rows through the same services the entity routes use.
type DemoHandler struct {
	demo *service.DemoService
}

// NewDemoHandler creates the demo handler.
func NewDemoHandler(demo *service.DemoService) *DemoHandler {
	return &DemoHandler{demo: demo}
}

// Register mounts the demo routes on the group.
func (h *DemoHandler) Register(g *echo.Group) {
	g.POST("/basic-crud", h.run("basic-crud", func() (map[string]interface{}, error) { return h.demo.RunBasicCrud() }))
	g.POST("/relationships", h.run("relationships", func() (map[string]interface{}, error) { return h.demo.RunRelationships() }))
	g.POST("/inheritance", h.run("inheritance", func() (map[string]interface{}, error) { return h.demo.RunInheritance() }))
	g.POST("/queries", h.run("queries", func() (map[string]interface{}, error) { return h.demo.RunQueries() }))
	g.POST("/orders", h.run("orders", func() (map[string]interface{}, error) { return h.demo.RunOrderOperations() }))
	g.POST("/batch", h.run("batch", func() (map[string]interface{}, error) { return h.demo.RunBatchOperations() }))
	g.POST("/rollback", h.run("rollback", func() (map[string]interface{}, error) { return h.demo.RunTransactionRollback() }))
	g.POST("/all", h.run("all", func() (map[string]interface{}, error) { return h.demo.RunAll() }))
}

func (h *DemoHandler) run(scenario string, fn func() (map[string]interface{}, error)) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)
		prometheus.RecordDemoRun(scenario)

		result, err := fn()
		if err != nil {
			log.Error("Demo scenario failed", zap.String("scenario", scenario), zap.Error(err))
			return writeError(c, log, err)
		}
		log.Info("Demo scenario completed", zap.String("scenario", scenario))
		return c.JSON(http.StatusOK, echo.Map{
			"scenario": scenario,
			"result":   result,
		})
	}
}
