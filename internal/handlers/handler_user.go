package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/etsy_atlas/internal/apperrors"
	portssvc "github.com/SscSPs/etsy_atlas/internal/core/ports/services"
	"github.com/SscSPs/etsy_atlas/internal/dto"
	"github.com/SscSPs/etsy_atlas/internal/middleware"

	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{
		userService: us,
	}
}

// RegisterUserRoutes registers all user-related routes.
func RegisterUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	users := rg.Group("/users")
	{
		users.GET("/me", middleware.LoadUser(userService), h.getMe)
		users.GET("", middleware.RequireAdmin(userService), h.listUsers)
		users.GET("/:id", middleware.LoadUser(userService), h.getUser) // Own or admin
		users.PUT("/:id", h.updateUser)                                // Admin only
		users.DELETE("/:id", h.deleteUser)                             // Admin only
		users.POST("/:id/revoke-sessions", h.revokeSessions)           // Own or admin
	}
}

// getMe godoc
// @Summary Get the signed-in user
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /api/v1/users/me [get]
func (h *userHandler) getMe(c *gin.Context) {
	user, _ := middleware.GetUserFromContext(c)
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// getUser godoc
// @Summary Get a user by ID
// @Description Retrieves details for a specific user by their ID
// @Tags users
// @Produce  json
// @Param   id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (trying to access another user's details)"
// @Failure 404 {object} map[string]string "User not found"
// @Failure 500 {object} map[string]string "Failed to retrieve user"
// @Router /api/v1/users/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("id")

	caller, _ := middleware.GetUserFromContext(c)
	if caller.UserID != userID && !caller.IsAdmin() {
		logger.Warn("User forbidden to access another user's details", slog.String("target_id", userID))
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden", "code": apperrors.CodeForbidden})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "retrieve user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// listUsers godoc
// @Summary List users
// @Description Retrieves a list of users (admin only)
// @Tags users
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListUsersResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to list users"
// @Router /api/v1/users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondWithError(c, err, "list users")
		return
	}

	logger.Info("Users listed successfully", slog.Int("count", len(users)))
	c.JSON(http.StatusOK, dto.ToListUserResponse(users))
}

// updateUser godoc
// @Summary Update a user
// @Description Changes a user's name, role or disabled flag (admin only)
// @Tags users
// @Accept  json
// @Produce  json
// @Param   id path string true "User ID to update"
// @Param   user body dto.UpdateUserRequest true "User details to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "User not found"
// @Failure 500 {object} map[string]string "Failed to update user"
// @Router /api/v1/users/{id} [put]
func (h *userHandler) updateUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("id")

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}

	loggedInUserID, _ := middleware.GetUserIDFromContext(c)
	logger = logger.With(slog.String("target_user_id", userID))

	updatedUser, err := h.userService.UpdateUser(c.Request.Context(), userID, req, loggedInUserID)
	if err != nil {
		respondWithError(c, err, "update user")
		return
	}

	logger.Info("User updated successfully")
	c.JSON(http.StatusOK, dto.ToUserResponse(updatedUser))
}

// deleteUser godoc
// @Summary Delete a user
// @Description Removes a user account (admin only, never the caller's own)
// @Tags users
// @Param   id path string true "User ID to delete"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "User not found"
// @Failure 500 {object} map[string]string "Failed to delete user"
// @Router /api/v1/users/{id} [delete]
func (h *userHandler) deleteUser(c *gin.Context) {
	userID := c.Param("id")
	loggedInUserID, _ := middleware.GetUserIDFromContext(c)

	if err := h.userService.DeleteUser(c.Request.Context(), userID, loggedInUserID); err != nil {
		respondWithError(c, err, "delete user")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User deleted successfully", slog.String("target_user_id", userID))
	c.Status(http.StatusNoContent)
}

// revokeSessions godoc
// @Summary Revoke a user's sessions
// @Description Every session issued to the user before now stops verifying
// @Tags users
// @Param   id path string true "User ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "User not found"
// @Router /api/v1/users/{id}/revoke-sessions [post]
func (h *userHandler) revokeSessions(c *gin.Context) {
	userID := c.Param("id")
	loggedInUserID, _ := middleware.GetUserIDFromContext(c)

	if err := h.userService.RevokeSessions(c.Request.Context(), userID, loggedInUserID); err != nil {
		respondWithError(c, err, "revoke sessions")
		return
	}
	c.Status(http.StatusNoContent)
}
