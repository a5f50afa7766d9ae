package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const (
	// CtxLanguageKey is the gin context key holding the request language.
	CtxLanguageKey = "language"
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the visitor's language preference.
	LangCookieName = "exaura_lang"
)

// LanguageDetector resolves the request language and stores it in the
// context under CtxLanguageKey.
//
// Order: a /<lang> path prefix, the lang query param (persisted as a cookie),
// the language cookie, then Accept-Language. On "/" and "/index.html" a
// header match other than the default redirects to "/<lang>/".
// The first supported language is the default.
func LanguageDetector(supported []string) gin.HandlerFunc {
	if len(supported) == 0 {
		supported = []string{"en"}
	}
	defaultLang := supported[0]

	tags := make([]language.Tag, 0, len(supported))
	for _, code := range supported {
		tags = append(tags, language.Make(code))
	}
	matcher := language.NewMatcher(tags)

	isSupported := func(code string) (string, bool) {
		code = strings.ToLower(strings.TrimSpace(code))
		if code == "" {
			return "", false
		}
		tag, err := language.Parse(code)
		if err != nil {
			return "", false
		}
		base, _ := tag.Base()
		for _, s := range supported {
			if s == base.String() {
				return s, true
			}
		}
		return "", false
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path

		// 1. URL prefix
		for _, lang := range supported[1:] {
			if path == "/"+lang || strings.HasPrefix(path, "/"+lang+"/") {
				c.Set(CtxLanguageKey, lang)
				c.Next()
				return
			}
		}

		// 2. Explicit choice
		if lang, ok := isSupported(c.Query(LangParam)); ok {
			setLanguageCookie(c, lang)
			c.Set(CtxLanguageKey, lang)
			c.Next()
			return
		}
		if cookie, err := c.Cookie(LangCookieName); err == nil {
			if lang, ok := isSupported(cookie); ok {
				c.Set(CtxLanguageKey, lang)
				c.Next()
				return
			}
		}

		// 3. Browser preference
		lang := defaultLang
		if accept := c.GetHeader("Accept-Language"); accept != "" {
			if prefs, _, err := language.ParseAcceptLanguage(accept); err == nil && len(prefs) > 0 {
				tag, _, _ := matcher.Match(prefs...)
				base, _ := tag.Base()
				if matched, ok := isSupported(base.String()); ok {
					lang = matched
				}
			}
		}

		if (path == "/" || path == "/index.html") && lang != defaultLang {
			c.Redirect(http.StatusFound, "/"+lang+"/")
			c.Abort()
			return
		}

		c.Set(CtxLanguageKey, lang)
		c.Next()
	}
}

// GetLanguage returns the detected language, or fallback when none was set.
func GetLanguage(c *gin.Context, fallback string) string {
	if lang := c.GetString(CtxLanguageKey); lang != "" {
		return lang
	}
	return fallback
}

func setLanguageCookie(c *gin.Context, lang string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(LangCookieName, lang, int((365 * 24 * time.Hour).Seconds()), "/", "", false, false)
}
