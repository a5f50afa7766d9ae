package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"exaura_site/internal/handlers"
	"exaura_site/internal/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	HTML        *handlers.HTMLHandler
	Translation *handlers.TranslationHandler
	Contact     *handlers.ContactHandler
	Consent     *handlers.ConsentHandler
	AppStore    *handlers.AppStoreHandler
	// Fallback serves anything unmatched: the Vite proxy in dev, dist files in prod.
	Fallback gin.HandlerFunc
}

// New builds the gin engine. supported lists language codes with the
// default first; every other language gets its own /<lang>/ page.
func New(h Handlers, supported []string, log *slog.Logger) *gin.Engine {
	if len(supported) == 0 {
		supported = []string{"en"}
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(log))
	r.Use(middleware.LanguageDetector(supported))

	page := h.HTML.ServeHTTP
	r.GET("/", page)
	r.GET("/index.html", page)
	for _, lang := range supported[1:] {
		r.GET("/"+lang+"/", page)
		r.GET("/"+lang+"/index.html", page)
	}

	r.GET("/go/:store", h.AppStore.Redirect)

	api := r.Group("/api")
	{
		api.GET("/languages", h.Translation.Languages)
		api.GET("/translations", h.Translation.GetTranslations)
		api.GET("/translations/lookup", h.Translation.Lookup)

		api.POST("/contact", h.Contact.Submit)

		consent := api.Group("/consent")
		consent.GET("", h.Consent.Get)
		consent.DELETE("", h.Consent.Clear)
		consent.POST("/accept", h.Consent.Accept)
		consent.POST("/reject", h.Consent.Reject)
		consent.POST("/preferences", h.Consent.SavePreferences)
	}

	if h.Fallback != nil {
		r.NoRoute(h.Fallback)
	}

	return r
}
