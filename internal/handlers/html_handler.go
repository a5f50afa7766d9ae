package handlers

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"exaura_site/internal/core"
	"exaura_site/internal/middleware"
	"exaura_site/internal/services"
)

type HTMLHandler struct {
	Translator  core.TranslationService
	Page        *services.PageTranslator
	DefaultLang string
	IsDev       bool
	DevTarget   string
	DistDir     string

	client *http.Client
	log    *slog.Logger
}

func NewHTMLHandler(t core.TranslationService, page *services.PageTranslator, defaultLang string, isDev bool, devTarget, distDir string, log *slog.Logger) *HTMLHandler {
	return &HTMLHandler{
		Translator:  t,
		Page:        page,
		DefaultLang: defaultLang,
		IsDev:       isDev,
		DevTarget:   devTarget,
		DistDir:     distDir,
		client:      &http.Client{Timeout: 10 * time.Second},
		log:         log,
	}
}

func (h *HTMLHandler) ServeHTTP(c *gin.Context) {
	lang := middleware.GetLanguage(c, h.DefaultLang)

	translations, err := h.Translator.GetTranslations(lang)
	if err != nil {
		h.log.Warn("error loading translations", "lang", lang, "error", err)
		translations, _ = h.Translator.GetTranslations(h.DefaultLang)
	}

	htmlContent, err := h.template(c)
	if err != nil {
		h.log.Error("failed to load page template", "error", err)
		if h.IsDev {
			c.String(http.StatusBadGateway, "Failed to connect to Vite Dev Server")
		} else {
			c.String(http.StatusInternalServerError, "index.html not found")
		}
		return
	}

	var out bytes.Buffer
	report, err := h.Page.Apply(bytes.NewReader(htmlContent), &out, translations, lang)
	if err != nil {
		h.log.Error("failed to translate page", "lang", lang, "error", err)
		c.String(http.StatusInternalServerError, "failed to render page")
		return
	}
	h.log.Debug("page translated", "lang", lang, "translated", report.Translated, "missing", len(report.Missing))

	c.Data(http.StatusOK, "text/html; charset=utf-8", out.Bytes())
}

// template loads index.html from the Vite dev server or the dist directory.
func (h *HTMLHandler) template(c *gin.Context) ([]byte, error) {
	if !h.IsDev {
		return os.ReadFile(filepath.Join(h.DistDir, "index.html"))
	}

	// Vite may not serve /pt/ itself; fall back to its root template.
	body, err := h.fetch(c, h.DevTarget+c.Request.URL.Path)
	if err != nil {
		body, err = h.fetch(c, h.DevTarget+"/")
	}
	return body, err
}

func (h *HTMLHandler) fetch(c *gin.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dev server returned %d for %s", resp.StatusCode, target)
	}
	return io.ReadAll(resp.Body)
}

// DevProxyHandler proxies everything else (assets) to Vite
func DevProxyHandler(target string) (gin.HandlerFunc, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("invalid dev target %q: %w", target, err)
	}
	proxy := httputil.NewSingleHostReverseProxy(u)
	return gin.WrapH(proxy), nil
}

// StaticHandler serves files from distDir and 404s for anything else.
func StaticHandler(distDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		fPath := filepath.Join(distDir, filepath.Clean("/"+c.Request.URL.Path))
		info, err := os.Stat(fPath)
		if err == nil && !info.IsDir() {
			c.File(fPath)
			return
		}
		c.String(http.StatusNotFound, "404 page not found")
	}
}
