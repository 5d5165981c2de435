package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/orgdash/internal/core/ports/services"
	"github.com/SscSPs/orgdash/internal/dto"
	"github.com/gin-gonic/gin"
)

// organisationHandler handles requests on the caller's organisation.
type organisationHandler struct {
	organisationService portssvc.OrganisationSvcFacade
}

func newOrganisationHandler(orgs portssvc.OrganisationSvcFacade) *organisationHandler {
	return &organisationHandler{organisationService: orgs}
}

// registerOrganisationRoutes registers organisation routes. They require a confirmed account.
func registerOrganisationRoutes(confirmed *gin.RouterGroup, orgs portssvc.OrganisationSvcFacade) {
	h := newOrganisationHandler(orgs)

	org := confirmed.Group("/organisation")
	{
		org.GET("", h.getOrganisation)
		org.PUT("", h.updateOrganisationName)
		org.GET("/role", h.getRole)
		org.DELETE("/members/:member_id", h.removeMember)
	}
}

// getOrganisation godoc
// @Summary Get the caller's organisation
// @Description Returns the organisation with its members and pending invitations.
// @Tags organisation
// @Produce json
// @Success 200 {object} dto.OrganisationResponse
// @Failure 400 {object} apperrors.AppError "User is not part of an organisation"
// @Failure 403 {object} map[string]string "Account not confirmed"
// @Security BearerAuth
// @Router /organisation [get]
func (h *organisationHandler) getOrganisation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	org, err := h.organisationService.GetOrganisationForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to get organisation")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrganisationResponse(org))
}

// updateOrganisationName godoc
// @Summary Rename the organisation
// @Tags organisation
// @Accept json
// @Produce json
// @Param organisation body dto.UpdateOrganisationNameRequest true "New name"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 403 {object} apperrors.AppError "Only organisation owners can perform this action"
// @Security BearerAuth
// @Router /organisation [put]
func (h *organisationHandler) updateOrganisationName(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateOrganisationNameRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := h.organisationService.UpdateOrganisationName(c.Request.Context(), userID, req.Name); err != nil {
		respondError(c, err, "Failed to update organisation name")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Success: "Organisation name updated successfully"})
}

// getRole godoc
// @Summary Get the caller's organisation role
// @Description Role is null when the caller has no membership.
// @Tags organisation
// @Produce json
// @Success 200 {object} dto.OrganisationRoleResponse
// @Security BearerAuth
// @Router /organisation/role [get]
func (h *organisationHandler) getRole(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	role, err := h.organisationService.GetUserOrganisationRole(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to get organisation role")
		return
	}
	c.JSON(http.StatusOK, dto.OrganisationRoleResponse{Role: role})
}

// removeMember godoc
// @Summary Remove a member
// @Tags organisation
// @Produce json
// @Param member_id path string true "Membership ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} apperrors.AppError "Only organisation owners can perform this action"
// @Failure 404 {object} apperrors.AppError "Member not found in your organisation"
// @Security BearerAuth
// @Router /organisation/members/{member_id} [delete]
func (h *organisationHandler) removeMember(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.organisationService.RemoveOrganisationMember(c.Request.Context(), userID, c.Param("member_id")); err != nil {
		respondError(c, err, "Failed to remove organisation member")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Success: "Organisation member removed successfully"})
}
