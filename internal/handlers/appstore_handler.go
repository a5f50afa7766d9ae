package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"exaura_site/internal/core"
	"exaura_site/internal/middleware"
	"exaura_site/internal/services"
)

type AppStoreHandler struct {
	links       map[string]string
	notifier    *services.Notifier
	defaultLang string
	log         *slog.Logger
}

func NewAppStoreHandler(links map[string]string, notifier *services.Notifier, defaultLang string, log *slog.Logger) *AppStoreHandler {
	return &AppStoreHandler{
		links:       links,
		notifier:    notifier,
		defaultLang: defaultLang,
		log:         log,
	}
}

// Redirect sends the visitor to a store: GET /go/:store
func (h *AppStoreHandler) Redirect(c *gin.Context) {
	store := c.Param("store")
	if target, ok := h.links[store]; ok {
		h.log.Info("opening app store", "store", store)
		c.Redirect(http.StatusFound, target)
		return
	}

	h.log.Info("no valid store found", "store", store)
	lang := middleware.GetLanguage(c, h.defaultLang)
	n := h.notifier.Notify(lang, core.NotificationInfo, services.NotifyStoreSoon)
	c.JSON(http.StatusNotFound, APIResponse{Success: false, Notification: &n})
}
