package catalog

import (
	"github.com/anu-001/netflix-marketing-analytics/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the credit pipeline.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, l *zap.Logger) *Handler {
	return &Handler{service: service, logger: l}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog")
	group.Get("/status", h.HandleStatus)
	group.Get("/runs", h.HandleRuns)
	group.Get("/schema", h.HandleSchema)
	group.Post("/staging", h.HandleBuildStaging)
	group.Post("/process", h.HandleProcess)
}

// HandleStatus reports staging progress for a role.
// @Summary Staging Status
// @Description Returns total/processed/remaining counts for a role's staging table.
// @Tags catalog
// @Produce json
// @Param role query string false "Credit role (actors, directors)" default(actors)
// @Success 200 {object} StagingStatus
// @Failure 400 {object} map[string]string "Unknown role"
// @Router /catalog/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	role := c.Query("role", "actors")
	status, err := h.service.StagingStatus(role)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(status)
}

// HandleRuns returns the run ledger: per-table summary plus recent runs.
// @Summary Processing Runs
// @Description Returns the per-table run summary and the most recent ledger entries.
// @Tags catalog
// @Produce json
// @Param table query string false "Filter recent runs by target table"
// @Param limit query int false "Max recent runs" default(10)
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /catalog/runs [get]
func (h *Handler) HandleRuns(c *fiber.Ctx) error {
	summary, err := h.service.RunSummary()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	latest, err := h.service.LatestRuns(c.Query("table"), c.QueryInt("limit", 10))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"summary": summary,
		"latest":  latest,
	})
}

// HandleSchema verifies the catalog schema.
// @Summary Verify Schema
// @Description Checks that every expected catalog table exists with its required columns.
// @Tags catalog
// @Produce json
// @Success 200 {array} database.TableReport
// @Failure 500 {object} map[string]string
// @Router /catalog/schema [get]
func (h *Handler) HandleSchema(c *fiber.Ctx) error {
	reports, err := h.service.Verify()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(reports)
}

// HandleBuildStaging rebuilds a role's staging table from the export.
// @Summary Rebuild Staging
// @Description Truncates and rebuilds the staging table for a role from the configured export source.
// @Tags catalog
// @Produce json
// @Param role query string false "Credit role (actors, directors)" default(actors)
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /catalog/staging [post]
func (h *Handler) HandleBuildStaging(c *fiber.Ctx) error {
	role := c.Query("role", "actors")
	l := logger.WithRayID(h.logger, c)
	l.Info("staging rebuild requested", zap.String("role", role))

	count, err := h.service.BuildStaging(c.Context(), role)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"role": role, "staging_rows": count})
}

// HandleProcess runs the reconciliation pipeline for a role.
// @Summary Process Staging Rows
// @Description Reconciles all unprocessed staging rows for a role into relationship rows. Long-running.
// @Tags catalog
// @Produce json
// @Param role query string false "Credit role (actors, directors)" default(actors)
// @Param batch_size query int false "Rows per batch (0 = configured default)"
// @Success 200 {object} reconcile.Summary
// @Failure 500 {object} map[string]string
// @Router /catalog/process [post]
func (h *Handler) HandleProcess(c *fiber.Ctx) error {
	role := c.Query("role", "actors")
	batchSize := c.QueryInt("batch_size", 0)
	l := logger.WithRayID(h.logger, c)
	l.Info("processing requested", zap.String("role", role), zap.Int("batch_size", batchSize))

	summary, err := h.service.Process(c.Context(), role, batchSize)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(summary)
}
