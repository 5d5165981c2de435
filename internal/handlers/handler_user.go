package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/orgdash/internal/core/ports/services"
	"github.com/SscSPs/orgdash/internal/dto"
	"github.com/gin-gonic/gin"
)

// userHandler handles requests on the signed-in user's own account.
type userHandler struct {
	accountService  portssvc.AccountProfileSvc
	activityService portssvc.ActivitySvc
}

func newUserHandler(as portssvc.AccountProfileSvc, acts portssvc.ActivitySvc) *userHandler {
	return &userHandler{
		accountService:  as,
		activityService: acts,
	}
}

func registerUserRoutes(authed *gin.RouterGroup, as portssvc.AccountProfileSvc, acts portssvc.ActivitySvc) {
	h := newUserHandler(as, acts)

	user := authed.Group("/user")
	{
		user.GET("", h.getCurrentUser)
		user.PUT("", h.updateAccount)
		user.DELETE("", h.deleteAccount)
		user.PUT("/password", h.updatePassword)
		user.GET("/activity", h.listActivity)
	}
}

// getCurrentUser godoc
// @Summary Get the current user
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} apperrors.AppError "User not found"
// @Security BearerAuth
// @Router /user [get]
func (h *userHandler) getCurrentUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	user, err := h.accountService.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to get current user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updateAccount godoc
// @Summary Update name and email
// @Tags users
// @Accept json
// @Produce json
// @Param account body dto.UpdateAccountRequest true "New name and email"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 409 {object} apperrors.AppError "Email is already in use."
// @Security BearerAuth
// @Router /user [put]
func (h *userHandler) updateAccount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateAccountRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.accountService.UpdateAccount(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to update account")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updatePassword godoc
// @Summary Change password
// @Tags users
// @Accept json
// @Produce json
// @Param password body dto.UpdatePasswordRequest true "Current, new and confirmed password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} apperrors.AppError
// @Security BearerAuth
// @Router /user/password [put]
func (h *userHandler) updatePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdatePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.accountService.UpdatePassword(c.Request.Context(), userID, req); err != nil {
		respondError(c, err, "Failed to update password")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Success: "Password updated successfully."})
}

// deleteAccount godoc
// @Summary Delete the current account
// @Description Soft-deletes the account after verifying the password and leaves the organisation.
// @Tags users
// @Accept json
// @Param account body dto.DeleteAccountRequest true "Current password"
// @Success 204 "No Content"
// @Failure 400 {object} apperrors.AppError "Incorrect password"
// @Security BearerAuth
// @Router /user [delete]
func (h *userHandler) deleteAccount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.DeleteAccountRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.accountService.DeleteAccount(c.Request.Context(), userID, req); err != nil {
		respondError(c, err, "Failed to delete account")
		return
	}
	c.Status(http.StatusNoContent)
}

// listActivity godoc
// @Summary Recent activity
// @Description Returns the caller's ten most recent activity entries, newest first.
// @Tags users
// @Produce json
// @Success 200 {object} dto.ListActivityResponse
// @Security BearerAuth
// @Router /user/activity [get]
func (h *userHandler) listActivity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	entries, err := h.activityService.ListRecentActivity(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list activity")
		return
	}
	c.JSON(http.StatusOK, dto.ToListActivityResponse(entries))
}
