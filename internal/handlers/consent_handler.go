package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"exaura_site/internal/core"
	apperrors "exaura_site/internal/errors"
	"exaura_site/internal/middleware"
	"exaura_site/internal/services"
)

// VisitorCookieName identifies a browser for consent storage.
const VisitorCookieName = "exaura_visitor"

const visitorCookieMaxAge = 365 * 24 * time.Hour

// ConsentManager is the consent service as seen by the handler.
type ConsentManager interface {
	Get(ctx context.Context, visitor string) (core.ConsentState, error)
	Accept(ctx context.Context, visitor string) (core.ConsentState, error)
	Reject(ctx context.Context, visitor string) (core.ConsentState, error)
	SavePreferences(ctx context.Context, visitor string, analytics, marketing bool) (core.ConsentState, error)
	Clear(ctx context.Context, visitor string) error
}

type ConsentHandler struct {
	consent     ConsentManager
	notifier    *services.Notifier
	defaultLang string
}

func NewConsentHandler(consent ConsentManager, notifier *services.Notifier, defaultLang string) *ConsentHandler {
	return &ConsentHandler{
		consent:     consent,
		notifier:    notifier,
		defaultLang: defaultLang,
	}
}

// PreferencesRequest carries the custom cookie categories.
type PreferencesRequest struct {
	Analytics bool `json:"analytics" form:"analytics"`
	Marketing bool `json:"marketing" form:"marketing"`
}

// visitorID returns the visitor cookie, issuing a new one when missing or malformed.
func visitorID(c *gin.Context) string {
	if id, err := c.Cookie(VisitorCookieName); err == nil {
		if _, err := uuid.Parse(id); err == nil {
			return id
		}
	}
	id := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(VisitorCookieName, id, int(visitorCookieMaxAge.Seconds()), "/", "", false, true)
	return id
}

// Get reports the current choice: GET /api/consent
func (h *ConsentHandler) Get(c *gin.Context) {
	state, err := h.consent.Get(c.Request.Context(), visitorID(c))
	if err != nil {
		ErrorResponseWithError(c, err, nil)
		return
	}
	SuccessResponse(c, http.StatusOK, state, nil)
}

// Accept records consent to all cookies: POST /api/consent/accept
func (h *ConsentHandler) Accept(c *gin.Context) {
	h.respond(c, func(ctx context.Context, visitor string) (core.ConsentState, error) {
		return h.consent.Accept(ctx, visitor)
	})
}

// Reject records refusal of optional cookies: POST /api/consent/reject
func (h *ConsentHandler) Reject(c *gin.Context) {
	h.respond(c, func(ctx context.Context, visitor string) (core.ConsentState, error) {
		return h.consent.Reject(ctx, visitor)
	})
}

// SavePreferences records a custom choice: POST /api/consent/preferences
func (h *ConsentHandler) SavePreferences(c *gin.Context) {
	var req PreferencesRequest
	if err := c.ShouldBind(&req); err != nil {
		ErrorResponseWithError(c, apperrors.NewBadRequestError("Invalid request body", err.Error()), nil)
		return
	}
	h.respond(c, func(ctx context.Context, visitor string) (core.ConsentState, error) {
		return h.consent.SavePreferences(ctx, visitor, req.Analytics, req.Marketing)
	})
}

// Clear forgets the visitor's choice: DELETE /api/consent
func (h *ConsentHandler) Clear(c *gin.Context) {
	visitor := visitorID(c)
	if err := h.consent.Clear(c.Request.Context(), visitor); err != nil {
		ErrorResponseWithError(c, err, nil)
		return
	}
	SuccessResponse(c, http.StatusOK, core.ConsentState{ShowBanner: true}, nil)
}

func (h *ConsentHandler) respond(c *gin.Context, record func(ctx context.Context, visitor string) (core.ConsentState, error)) {
	state, err := record(c.Request.Context(), visitorID(c))
	if err != nil {
		ErrorResponseWithError(c, err, nil)
		return
	}
	lang := middleware.GetLanguage(c, h.defaultLang)
	n := h.notifier.Notify(lang, core.NotificationSuccess, services.NotifyConsentSaved)
	SuccessResponse(c, http.StatusOK, state, &n)
}
