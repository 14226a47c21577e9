package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/etsy_atlas/internal/core/ports/services"
	"github.com/SscSPs/etsy_atlas/internal/dto"
	"github.com/SscSPs/etsy_atlas/internal/middleware"
	"github.com/gin-gonic/gin"
)

type capitalHandler struct {
	capitalService portssvc.CapitalSvcFacade
}

// RegisterCapitalRoutes registers the capital ledger routes.
func RegisterCapitalRoutes(rg *gin.RouterGroup, capitalService portssvc.CapitalSvcFacade) {
	h := &capitalHandler{capitalService: capitalService}

	capital := rg.Group("/capital")
	{
		capital.GET("", h.listEntries)
		capital.POST("", h.createEntry)
		capital.GET("/summary", h.summary)
		capital.GET("/:id", h.getEntry)
		capital.DELETE("/:id", h.deleteEntry)
	}
}

// createEntry godoc
// @Summary Record a capital movement
// @Description New entries are locked and cannot be deleted afterwards
// @Tags capital
// @Accept json
// @Produce json
// @Param entry body dto.CreateCapitalEntryRequest true "Capital entry"
// @Success 201 {object} dto.CapitalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to create capital entry"
// @Router /api/v1/capital [post]
func (h *capitalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCapitalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}

	submittedBy, _ := middleware.GetUserIDFromContext(c)
	if session, ok := middleware.GetSessionFromContext(c); ok && session.Email != "" {
		submittedBy = session.Email
	}

	entry, err := h.capitalService.CreateCapitalEntry(c.Request.Context(), req, submittedBy)
	if err != nil {
		respondWithError(c, err, "create capital entry")
		return
	}

	logger.Info("Capital entry created", slog.String("entry_id", entry.EntryID), slog.String("type", string(entry.Type)))
	c.JSON(http.StatusCreated, dto.ToCapitalEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a capital entry
// @Tags capital
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} dto.CapitalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /api/v1/capital/{id} [get]
func (h *capitalHandler) getEntry(c *gin.Context) {
	entry, err := h.capitalService.GetCapitalEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "retrieve capital entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToCapitalEntryResponse(entry))
}

// listEntries godoc
// @Summary List capital entries
// @Tags capital
// @Produce json
// @Param limit query int false "Limit number of results" default(50)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListCapitalResponse
// @Router /api/v1/capital [get]
func (h *capitalHandler) listEntries(c *gin.Context) {
	var params dto.ListCapitalParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}

	entries, err := h.capitalService.ListCapitalEntries(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondWithError(c, err, "list capital entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCapitalResponse(entries))
}

// summary godoc
// @Summary Capital summary
// @Tags capital
// @Produce json
// @Success 200 {object} domain.CapitalSummary
// @Router /api/v1/capital/summary [get]
func (h *capitalHandler) summary(c *gin.Context) {
	s, err := h.capitalService.Summary(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "summarise capital")
		return
	}
	c.JSON(http.StatusOK, s)
}

// deleteEntry godoc
// @Summary Delete a capital entry
// @Description Locked entries are refused with 409 ENTRY_LOCKED
// @Tags capital
// @Param id path string true "Entry ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is locked"
// @Router /api/v1/capital/{id} [delete]
func (h *capitalHandler) deleteEntry(c *gin.Context) {
	entryID := c.Param("id")
	if err := h.capitalService.DeleteCapitalEntry(c.Request.Context(), entryID); err != nil {
		respondWithError(c, err, "delete capital entry")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Capital entry deleted", slog.String("entry_id", entryID))
	c.Status(http.StatusNoContent)
}
