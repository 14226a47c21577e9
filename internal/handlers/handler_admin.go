package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/etsy_atlas/internal/core/ports/services"
	"github.com/SscSPs/etsy_atlas/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterAdminRoutes registers maintenance routes restricted to admins.
func RegisterAdminRoutes(rg *gin.RouterGroup, seedService portssvc.SeedSvc, userService portssvc.UserReaderSvc) {
	admin := rg.Group("/admin", middleware.RequireAdmin(userService))
	admin.POST("/seed", seedHandler(seedService))
}

// seedHandler godoc
// @Summary Seed demo data
// @Description Writes the demo users and orders into an empty store
// @Tags admin
// @Produce json
// @Success 201 {object} dto.SeedResponse
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 409 {object} map[string]string "Store already holds data"
// @Router /api/v1/admin/seed [post]
func seedHandler(seedService portssvc.SeedSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := seedService.Seed(c.Request.Context())
		if err != nil {
			respondWithError(c, err, "seed database")
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Info("Database seeded",
			slog.Int("users", resp.UsersSeeded), slog.Int("orders", resp.OrdersSeeded))
		c.JSON(http.StatusCreated, resp)
	}
}
