package bookmarks

import (
	"context"
	"errors"

	"bookmark-sync/core/logger"
	"bookmark-sync/core/reconcile"
	"bookmark-sync/core/tree"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for syncing bookmarks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Post("/", h.HandleSync)
	group.Get("/diff", h.HandleDiff)
	group.Get("/state", h.HandleGetState)
	group.Delete("/state", h.HandleResetState)
}

// HandleSync runs a sync.
// @Summary Run Sync
// @Description Mirrors the source collections into the managed destination folder. Concurrent requests for the same mode share one run.
// @Tags sync
// @Accept json
// @Produce json
// @Param mode query string false "incremental (default) or full"
// @Success 200 {object} SyncResult "Run statistics"
// @Failure 400 {object} map[string]string "Unknown mode"
// @Failure 409 {object} map[string]string "Another sync is running"
// @Failure 422 {object} map[string]string "Source hierarchy is malformed"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	mode, err := reconcile.ParseMode(c.Query("mode"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Sync requested", zap.String("mode", string(mode)))
	result, err := h.service.Sync(c.UserContext(), mode)
	if err != nil {
		l.Error("Sync failed", zap.String("mode", string(mode)), zap.Error(err))
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}

// HandleDiff previews a sync.
// @Summary Preview Sync
// @Description Compares the source with the managed destination folder without changing anything.
// @Tags sync
// @Produce json
// @Success 200 {object} DiffReport "Pending changes"
// @Failure 422 {object} map[string]string "Source hierarchy is malformed"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/diff [get]
func (h *Handler) HandleDiff(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Diff(c.UserContext())
	if err != nil {
		l.Error("Diff failed", zap.Error(err))
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleGetState returns the stored sync state.
// @Summary Get Sync State
// @Description Returns the snapshot written by the last successful sync.
// @Tags sync
// @Produce json
// @Success 200 {object} state.SyncState "Stored snapshot"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/state [get]
func (h *Handler) HandleGetState(c *fiber.Ctx) error {
	st, err := h.service.State(c.UserContext())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to load sync state", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(st)
}

// HandleResetState clears the stored sync state.
// @Summary Reset Sync State
// @Description Forgets the stored snapshot so the next sync starts from scratch.
// @Tags sync
// @Produce json
// @Success 200 {object} map[string]string "Cleared"
// @Failure 409 {object} map[string]string "A sync is running"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/state [delete]
func (h *Handler) HandleResetState(c *fiber.Ctx) error {
	if err := h.service.Reset(c.UserContext()); err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to reset sync state", zap.Error(err))
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "cleared"})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, reconcile.ErrRunInProgress):
		return fiber.StatusConflict
	case errors.Is(err, tree.ErrMalformedTree):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}
