package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/orgdash/internal/core/ports/services"
	"github.com/SscSPs/orgdash/internal/dto"
	"github.com/SscSPs/orgdash/internal/middleware"
	"github.com/gin-gonic/gin"
)

type adminHandler struct {
	accountService portssvc.AccountConfirmationSvc
}

func registerAdminRoutes(confirmed *gin.RouterGroup, as portssvc.AccountConfirmationSvc) {
	h := &adminHandler{accountService: as}
	confirmed.POST("/admin/users/:user_id/confirm", h.confirmUser)
}

// confirmUser godoc
// @Summary Confirm a user's account
// @Description Marks the target account as confirmed. The caller must hold the owner role.
// @Tags admin
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} dto.ConfirmUserResponse
// @Failure 403 {object} apperrors.AppError "Only account owners can confirm users"
// @Failure 404 {object} apperrors.AppError "User not found"
// @Security BearerAuth
// @Router /admin/users/{user_id}/confirm [post]
func (h *adminHandler) confirmUser(c *gin.Context) {
	requesterID, ok := currentUserID(c)
	if !ok {
		return
	}
	targetID := c.Param("user_id")
	if err := h.accountService.AdminConfirmUser(c.Request.Context(), requesterID, targetID); err != nil {
		respondError(c, err, "Failed to confirm user")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User confirmed by admin", slog.String("target_user_id", targetID))
	c.JSON(http.StatusOK, dto.ConfirmUserResponse{Success: true, UserID: targetID})
}
