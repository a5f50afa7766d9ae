package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"exaura_site/internal/core"
	apperrors "exaura_site/internal/errors"
	"exaura_site/internal/middleware"
	"exaura_site/internal/services"
)

// ContactSubmitter is the contact service as seen by the handler.
type ContactSubmitter interface {
	Submit(ctx context.Context, req services.ContactRequest) (*core.ContactMessage, error)
}

type ContactHandler struct {
	contacts    ContactSubmitter
	notifier    *services.Notifier
	defaultLang string
}

func NewContactHandler(contacts ContactSubmitter, notifier *services.Notifier, defaultLang string) *ContactHandler {
	return &ContactHandler{
		contacts:    contacts,
		notifier:    notifier,
		defaultLang: defaultLang,
	}
}

// Submit accepts the contact form as JSON or form data: POST /api/contact
func (h *ContactHandler) Submit(c *gin.Context) {
	lang := middleware.GetLanguage(c, h.defaultLang)

	var req services.ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		n := h.notifier.Notify(lang, core.NotificationError, services.NotifyContactInvalid)
		ErrorResponseWithError(c, apperrors.NewBadRequestError("Invalid request body", err.Error()), &n)
		return
	}
	req.Language = lang

	msg, err := h.contacts.Submit(c.Request.Context(), req)
	if err != nil {
		ErrorResponseWithError(c, err, h.failureNotification(lang, err))
		return
	}

	n := h.notifier.Notify(lang, core.NotificationSuccess, services.NotifyContactSuccess)
	SuccessResponse(c, http.StatusCreated, gin.H{"id": msg.ID}, &n)
}

func (h *ContactHandler) failureNotification(lang string, err error) *core.Notification {
	key := services.NotifyContactFailed
	if appErr := apperrors.GetAppError(err); apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		key = services.NotifyContactInvalid
		if appErr.Message == services.MissingFieldsMessage {
			key = services.NotifyContactMissing
		}
	}
	n := h.notifier.Notify(lang, core.NotificationError, key)
	return &n
}
