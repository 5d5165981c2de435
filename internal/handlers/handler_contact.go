package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/orgdash/internal/core/ports/services"
	"github.com/SscSPs/orgdash/internal/dto"
	"github.com/gin-gonic/gin"
)

type contactHandler struct {
	contactService portssvc.ContactSvc
}

func registerContactRoutes(public *gin.RouterGroup, rateLimited gin.HandlerFunc, cs portssvc.ContactSvc) {
	h := &contactHandler{contactService: cs}
	public.POST("/contact", rateLimited, h.submitContact)
}

// submitContact godoc
// @Summary Send a contact form message
// @Tags contact
// @Accept json
// @Produce json
// @Param contact body dto.ContactRequest true "Contact form"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 502 {object} apperrors.AppError "Failed to send message. Please try again later."
// @Failure 503 {object} apperrors.AppError "Email service is not enabled."
// @Router /contact [post]
func (h *contactHandler) submitContact(c *gin.Context) {
	var req dto.ContactRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.contactService.SubmitContact(c.Request.Context(), req); err != nil {
		respondError(c, err, "Failed to submit contact form")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Success: "Your message has been sent. We'll get back to you soon."})
}
