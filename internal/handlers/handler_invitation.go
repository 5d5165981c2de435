package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/orgdash/internal/core/ports/services"
	"github.com/SscSPs/orgdash/internal/dto"
	"github.com/SscSPs/orgdash/internal/middleware"
	"github.com/gin-gonic/gin"
)

// invitationHandler handles creating, cancelling and accepting invitations.
type invitationHandler struct {
	invitationService portssvc.InvitationSvcFacade
}

func newInvitationHandler(is portssvc.InvitationSvcFacade) *invitationHandler {
	return &invitationHandler{invitationService: is}
}

// registerInvitationRoutes registers invitation routes. Accepting only needs a session;
// managing invitations needs a confirmed account.
func registerInvitationRoutes(authed, confirmed *gin.RouterGroup, is portssvc.InvitationSvcFacade) {
	h := newInvitationHandler(is)

	authed.POST("/invitations/:invitation_id/accept", h.acceptInvitation)

	invitations := confirmed.Group("/organisation/invitations")
	{
		invitations.POST("", h.inviteMember)
		invitations.DELETE("/:invitation_id", h.cancelInvitation)
	}
}

// inviteMember godoc
// @Summary Invite someone into the organisation
// @Description Creates a pending invitation and emails it when email is enabled. Email failures do not fail the request.
// @Tags invitations
// @Accept json
// @Produce json
// @Param invitation body dto.InviteMemberRequest true "Email and role"
// @Success 201 {object} dto.InviteMemberResponse
// @Failure 400 {object} apperrors.AppError "Invalid email or role"
// @Failure 403 {object} apperrors.AppError "Only organisation owners can perform this action"
// @Failure 409 {object} apperrors.AppError "Already a member or already invited"
// @Security BearerAuth
// @Router /organisation/invitations [post]
func (h *invitationHandler) inviteMember(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.InviteMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.invitationService.InviteMember(c.Request.Context(), userID, req.Email, req.Role)
	if err != nil {
		respondError(c, err, "Failed to invite member")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Invitation created",
		slog.String("invitation_id", result.Invitation.InvitationID),
		slog.Bool("email_sent", result.EmailSent))
	c.JSON(http.StatusCreated, dto.InviteMemberResponse{
		Success:    result.Message,
		EmailSent:  result.EmailSent,
		Invitation: dto.ToInvitationResponse(result.Invitation),
	})
}

// cancelInvitation godoc
// @Summary Cancel a pending invitation
// @Tags invitations
// @Produce json
// @Param invitation_id path string true "Invitation ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} apperrors.AppError "Only organisation owners can perform this action"
// @Failure 404 {object} apperrors.AppError "Invitation not found or already processed"
// @Security BearerAuth
// @Router /organisation/invitations/{invitation_id} [delete]
func (h *invitationHandler) cancelInvitation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.invitationService.CancelInvitation(c.Request.Context(), userID, c.Param("invitation_id")); err != nil {
		respondError(c, err, "Failed to cancel invitation")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Success: "Invitation cancelled successfully"})
}

// acceptInvitation godoc
// @Summary Accept an invitation
// @Description Joins the inviting organisation with the invited role.
// @Tags invitations
// @Produce json
// @Param invitation_id path string true "Invitation ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} apperrors.AppError "Invalid or expired invitation."
// @Failure 409 {object} apperrors.AppError "You are already a member of this organisation."
// @Security BearerAuth
// @Router /invitations/{invitation_id}/accept [post]
func (h *invitationHandler) acceptInvitation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.invitationService.AcceptInvitation(c.Request.Context(), userID, c.Param("invitation_id")); err != nil {
		respondError(c, err, "Failed to accept invitation")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Success: "Invitation accepted successfully"})
}
