package handlers

import (
	"github.com/gin-gonic/gin"

	"exaura_site/internal/core"
	apperrors "exaura_site/internal/errors"
)

// APIResponse represents a standard API response structure
type APIResponse struct {
	Success      bool               `json:"success"`
	Data         interface{}        `json:"data,omitempty"`
	Error        *ErrorInfo         `json:"error,omitempty"`
	Message      string             `json:"message,omitempty"`
	Notification *core.Notification `json:"notification,omitempty"`
}

// ErrorInfo represents error information in API response
type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse sends a successful response with custom status code
func SuccessResponse(c *gin.Context, statusCode int, data interface{}, notification *core.Notification) {
	c.JSON(statusCode, APIResponse{
		Success:      true,
		Data:         data,
		Notification: notification,
	})
}

// ErrorResponseWithError sends an error response based on error type.
// Errors that are not *AppError are reported as internal and their details
// are not exposed.
func ErrorResponseWithError(c *gin.Context, err error, notification *core.Notification) {
	appErr := apperrors.GetAppError(err)
	info := &ErrorInfo{
		Type:    string(appErr.Type),
		Message: appErr.Message,
		Details: appErr.Details,
	}
	if !apperrors.IsAppError(err) {
		info.Details = ""
		_ = c.Error(err)
	}

	c.JSON(appErr.Code, APIResponse{
		Success:      false,
		Error:        info,
		Notification: notification,
	})
}
