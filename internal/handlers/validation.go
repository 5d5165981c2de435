package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/SscSPs/orgdash/internal/apperrors"
	"github.com/SscSPs/orgdash/internal/core/domain"
	"github.com/SscSPs/orgdash/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	validatorsOnce sync.Once
	validatorsErr  error
)

// registerValidators installs the custom binding rules on gin's validator.
func registerValidators() error {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			validatorsErr = errors.New("unexpected binding validator engine")
			return
		}
		validatorsErr = v.RegisterValidation("org_role", func(fl validator.FieldLevel) bool {
			_, err := domain.ParseRole(fl.Field().String())
			return err == nil
		})
	})
	return validatorsErr
}

// bindingError turns a binding failure into a 400 naming the offending fields.
func bindingError(err error) *apperrors.AppError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewBadRequestError("Invalid request body")
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "org_role":
			return apperrors.NewValidationFailedError(fmt.Sprintf("Invalid role %q", fe.Value()))
		case "required":
			fields = append(fields, fe.Field()+" is required")
		case "email":
			fields = append(fields, fe.Field()+" must be a valid email")
		case "min", "max":
			fields = append(fields, fmt.Sprintf("%s must be %s %s characters", fe.Field(), limitWord(fe.Tag()), fe.Param()))
		default:
			fields = append(fields, fe.Field()+" is invalid")
		}
	}
	return apperrors.NewValidationFailedError(strings.Join(fields, "; "))
}

func limitWord(tag string) string {
	if tag == "min" {
		return "at least"
	}
	return "at most"
}

// bindJSON binds the request body into req and writes a 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request body", slog.String("error", err.Error()))
		appErr := bindingError(err)
		c.JSON(appErr.Code, appErr)
		return false
	}
	return true
}

// respondError writes err as an AppError. Server-side failures are logged.
func respondError(c *gin.Context, err error, logMsg string) {
	appErr := apperrors.As(err)
	if appErr.Code >= 500 {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error(logMsg, slog.String("error", err.Error()))
	}
	c.JSON(appErr.Code, appErr)
}

// currentUserID returns the authenticated user's ID or writes a 401.
func currentUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		appErr := apperrors.NewUnauthorizedError("Unauthorized")
		c.JSON(appErr.Code, appErr)
		return "", false
	}
	return userID, true
}
