package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"exaura_site/internal/core"
	apperrors "exaura_site/internal/errors"
	"exaura_site/internal/middleware"
)

type TranslationHandler struct {
	Translator  core.TranslationService
	DefaultLang string
	log         *slog.Logger
}

func NewTranslationHandler(t core.TranslationService, defaultLang string, log *slog.Logger) *TranslationHandler {
	return &TranslationHandler{
		Translator:  t,
		DefaultLang: defaultLang,
		log:         log,
	}
}

// table returns the table for the request language, falling back to the
// default language.
func (h *TranslationHandler) table(c *gin.Context) (string, core.Translations) {
	lang := middleware.GetLanguage(c, h.DefaultLang)

	translations, err := h.Translator.GetTranslations(lang)
	if err != nil {
		h.log.Warn("translations unavailable, using default language", "lang", lang, "error", err)
		lang = h.DefaultLang
		translations, _ = h.Translator.GetTranslations(lang)
	}
	if translations == nil {
		translations = core.Translations{}
	}
	return lang, translations
}

// GetTranslations serves the full table: GET /api/translations?lang=pt
func (h *TranslationHandler) GetTranslations(c *gin.Context) {
	_, translations := h.table(c)
	c.JSON(http.StatusOK, translations)
}

// LookupResult is the body of a successful key lookup.
type LookupResult struct {
	Lang  string      `json:"lang"`
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// Lookup resolves one key path: GET /api/translations/lookup?key=hero.title
func (h *TranslationHandler) Lookup(c *gin.Context) {
	key := c.Query("key")
	lang, translations := h.table(c)
	value, ok := translations.Lookup(key)
	if !ok {
		h.log.Warn("translation missing for key", "lang", lang, "key", key)
		ErrorResponseWithError(c, apperrors.NewNotFoundError("translation not found", key), nil)
		return
	}

	SuccessResponse(c, http.StatusOK, LookupResult{Lang: lang, Key: key, Value: value}, nil)
}

// Languages lists loaded languages: GET /api/languages
func (h *TranslationHandler) Languages(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, h.Translator.Languages(), nil)
}
