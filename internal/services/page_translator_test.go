package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exaura_site/internal/core"
	"exaura_site/internal/logger"
)

const samplePage = `<!DOCTYPE html>
<html lang="en">
<head><title>Vite App</title></head>
<body>
<h1 data-translate="hero.title">Quit smoking</h1>
<p data-translate="hero.missing">Original copy</p>
<p data-translate="hero.empty">Placeholder copy</p>
<span data-translate="nav">Nav</span>
<form class="contact-form">
<input type="text" data-translate="contact.name" placeholder="Name">
<input type="email" data-translate="contact.email">
<input type="submit" data-translate="contact.send" value="Send">
<textarea data-translate="contact.message"></textarea>
</form>
<div class="progress-fill" data-width="75%" style="background: red; width: 0"></div>
<div class="progress-fill"></div>
<a class="app-store-btn" data-store="ios" href="#">iOS</a>
<a class="app-store-link" data-store="windows" href="#">Windows</a>
</body>
</html>`

func sampleTranslations() core.Translations {
	return core.Translations{
		"meta": map[string]interface{}{"title": "Exaura – Pare de fumar"},
		"hero": map[string]interface{}{"title": "Pare de fumar", "empty": ""},
		"nav":  map[string]interface{}{"home": "Início"},
		"contact": map[string]interface{}{
			"name":    "Seu nome",
			"email":   "Seu email",
			"message": "Sua mensagem",
			"send":    "Enviar",
		},
	}
}

func applySample(t *testing.T, table core.Translations) (string, Report) {
	t.Helper()
	translator := NewPageTranslator(logger.Discard(), map[string]string{"ios": "https://apps.apple.com/app/exaura"})

	var out bytes.Buffer
	report, err := translator.Apply(strings.NewReader(samplePage), &out, table, "pt")
	require.NoError(t, err)
	return out.String(), report
}

func TestPageTranslator_Apply(t *testing.T) {
	page, report := applySample(t, sampleTranslations())

	assert.Contains(t, page, `<html lang="pt">`)
	assert.Contains(t, page, `<h1 data-translate="hero.title">Pare de fumar</h1>`)
	assert.Contains(t, page, `<p data-translate="hero.missing">Original copy</p>`)
	assert.Contains(t, page, `<p data-translate="hero.empty"></p>`)
	assert.Contains(t, page, `<span data-translate="nav">Nav</span>`)
	assert.Contains(t, page, `<input type="text" data-translate="contact.name" placeholder="Seu nome"/>`)
	assert.Contains(t, page, `<input type="email" data-translate="contact.email" placeholder="Seu email"/>`)
	assert.Contains(t, page, `<textarea data-translate="contact.message" placeholder="Sua mensagem"></textarea>`)
	assert.Contains(t, page, `<input type="submit" data-translate="contact.send" value="Enviar"/>`)
	assert.Contains(t, page, `style="background: red; width: 75%"`)
	assert.Contains(t, page, `<a class="app-store-btn" data-store="ios" href="/go/ios">`)
	assert.Contains(t, page, `<a class="app-store-link" data-store="windows" href="#">`)
	assert.Contains(t, page, "<title>Exaura – Pare de fumar</title>")
	assert.Contains(t, page, "window.__INITIAL_STATE__ = {")

	assert.Equal(t, 6, report.Translated)
	assert.ElementsMatch(t, []string{"hero.missing", "nav"}, report.Missing)
	assert.Equal(t, 1, report.Progress)
	assert.Equal(t, 1, report.StoreLinks)
}

func TestPageTranslator_Apply_EmptyTable(t *testing.T) {
	page, report := applySample(t, nil)

	assert.Equal(t, 0, report.Translated)
	assert.Len(t, report.Missing, 8)
	assert.Contains(t, page, `<h1 data-translate="hero.title">Quit smoking</h1>`)
	assert.Contains(t, page, "<title>Vite App</title>")
	assert.Contains(t, page, "window.__INITIAL_STATE__ = {};")
}

func TestPageTranslator_InitialStateEscapesScript(t *testing.T) {
	table := core.Translations{"hero": map[string]interface{}{"title": "</script><script>alert(1)</script>"}}
	page, _ := applySample(t, table)

	assert.NotContains(t, page, "</script><script>alert(1)")
	assert.Contains(t, page, `\u003c/script\u003e`)
}

func TestMergeStyle(t *testing.T) {
	assert.Equal(t, "width: 50%", mergeStyle("", "width", "50%"))
	assert.Equal(t, "color: red; width: 50%", mergeStyle("color: red; WIDTH: 10px;", "width", "50%"))
}

func TestPageTranslator_Apply_VoidElements(t *testing.T) {
	const page = `<!DOCTYPE html>
<html>
<head>
<title>Vite App</title>
<meta name="description" data-translate="meta.description" content="d">
<link rel="icon" data-translate="meta.icon" href="/favicon.ico">
</head>
<body>
<img src="/hero.png" data-translate="hero.alt">
<br data-translate="hero.title">
<p data-translate="hero.title">Quit smoking</p>
</body>
</html>`

	table := core.Translations{
		"meta": map[string]interface{}{"description": "Pare de fumar hoje", "icon": "icone"},
		"hero": map[string]interface{}{"alt": "Pessoa feliz", "title": "Pare de fumar"},
	}
	translator := NewPageTranslator(logger.Discard(), nil)

	var out bytes.Buffer
	report, err := translator.Apply(strings.NewReader(page), &out, table, "pt")
	require.NoError(t, err)

	rendered := out.String()
	assert.Contains(t, rendered, `<meta name="description" data-translate="meta.description" content="Pare de fumar hoje"/>`)
	assert.Contains(t, rendered, `<img src="/hero.png" data-translate="hero.alt" alt="Pessoa feliz"/>`)
	assert.Contains(t, rendered, `<link rel="icon" data-translate="meta.icon" href="/favicon.ico"/>`)
	assert.Contains(t, rendered, `<br data-translate="hero.title"/>`)
	assert.Contains(t, rendered, `<p data-translate="hero.title">Pare de fumar</p>`)
	assert.Contains(t, rendered, "</html>")

	assert.Equal(t, 3, report.Translated)
	assert.ElementsMatch(t, []string{"meta.icon", "hero.title"}, report.Missing)
}
