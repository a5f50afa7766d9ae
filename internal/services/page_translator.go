package services

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"exaura_site/internal/core"
)

const (
	translateAttr = "data-translate"
	widthAttr     = "data-width"
	storeAttr     = "data-store"

	progressFillClass = "progress-fill"
)

var appStoreClasses = []string{"app-store-btn", "app-store-link"}

// titleKeys are tried in order for the document <title>.
var titleKeys = []string{"meta.title", "hero.title"}

// Report summarizes one pass over a page.
type Report struct {
	Translated int      `json:"translated"`
	Missing    []string `json:"missing,omitempty"`
	Progress   int      `json:"progress"`
	StoreLinks int      `json:"store_links"`
}

// PageTranslator rewrites an HTML document for one language.
type PageTranslator struct {
	log        *slog.Logger
	storeLinks map[string]string
}

// NewPageTranslator creates a translator. storeLinks holds the app store
// names that may be linked via data-store.
func NewPageTranslator(log *slog.Logger, storeLinks map[string]string) *PageTranslator {
	return &PageTranslator{
		log:        log,
		storeLinks: storeLinks,
	}
}

// Apply parses the page from r, rewrites it and renders the result to w.
//
// Elements tagged with data-translate get their text (or placeholder, for
// text/email inputs and textareas) replaced by the resolved value. Keys that
// do not resolve to a string are logged and the element is left unchanged.
func (p *PageTranslator) Apply(r io.Reader, w io.Writer, t core.Translations, lang string) (Report, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Report{}, fmt.Errorf("failed to parse html: %w", err)
	}

	var report Report
	p.walk(doc, t, lang, &report)

	if err := p.injectState(doc, t); err != nil {
		return report, err
	}
	p.setTitle(doc, t)

	if err := html.Render(w, doc); err != nil {
		return report, fmt.Errorf("failed to render html: %w", err)
	}
	return report, nil
}

func (p *PageTranslator) walk(n *html.Node, t core.Translations, lang string, report *Report) {
	if n.Type == html.ElementNode {
		if n.DataAtom == atom.Html {
			setAttr(n, "lang", lang)
		}
		if p.applyProgress(n) {
			report.Progress++
		}
		if p.applyStoreLink(n) {
			report.StoreLinks++
		}
		if key, ok := getAttr(n, translateAttr); ok {
			if translationTarget(n) == targetSkip {
				p.log.Warn("translation key on element without text", "key", key, "element", n.Data)
				report.Missing = append(report.Missing, key)
			} else if p.applyTranslation(n, key, t) {
				report.Translated++
				if translationTarget(n) == targetText {
					return
				}
			} else {
				report.Missing = append(report.Missing, key)
			}
		}
	}

	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		p.walk(c, t, lang, report)
		c = next
	}
}

func (p *PageTranslator) applyTranslation(n *html.Node, key string, t core.Translations) bool {
	value, ok := t.String(key)
	if !ok {
		p.log.Warn("translation missing for key", "key", key)
		return false
	}

	switch translationTarget(n) {
	case targetPlaceholder:
		setAttr(n, "placeholder", value)
	case targetValue:
		setAttr(n, "value", value)
	case targetContent:
		setAttr(n, "content", value)
	case targetAlt:
		setAttr(n, "alt", value)
	default:
		replaceText(n, value)
	}
	p.log.Debug("translated element", "key", key)
	return true
}

func (p *PageTranslator) applyProgress(n *html.Node) bool {
	if !hasClass(n, progressFillClass) {
		return false
	}
	width, ok := getAttr(n, widthAttr)
	if !ok || strings.TrimSpace(width) == "" {
		return false
	}
	style, _ := getAttr(n, "style")
	setAttr(n, "style", mergeStyle(style, "width", strings.TrimSpace(width)))
	return true
}

func (p *PageTranslator) applyStoreLink(n *html.Node) bool {
	matched := false
	for _, class := range appStoreClasses {
		if hasClass(n, class) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}
	store, _ := getAttr(n, storeAttr)
	if _, ok := p.storeLinks[store]; !ok {
		return false
	}
	setAttr(n, "href", "/go/"+store)
	return true
}

// injectState appends window.__INITIAL_STATE__ to <head> so client code can
// reuse the same table without another request.
func (p *PageTranslator) injectState(doc *html.Node, t core.Translations) error {
	if t == nil {
		t = core.Translations{}
	}
	state, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to encode initial state: %w", err)
	}

	script := &html.Node{Type: html.ElementNode, DataAtom: atom.Script, Data: "script"}
	script.AppendChild(&html.Node{
		Type: html.TextNode,
		Data: fmt.Sprintf("window.__INITIAL_STATE__ = %s;", state),
	})

	head := findElement(doc, atom.Head)
	if head == nil {
		head = doc
	}
	head.AppendChild(script)
	return nil
}

func (p *PageTranslator) setTitle(doc *html.Node, t core.Translations) {
	title := findElement(doc, atom.Title)
	if title == nil {
		return
	}
	for _, key := range titleKeys {
		if value, ok := t.String(key); ok && value != "" {
			replaceText(title, value)
			return
		}
	}
}

type target int

const (
	targetText target = iota
	targetPlaceholder
	targetValue
	targetContent
	targetAlt
	targetSkip
)

// voidElements cannot have children, so a text translation on them would
// make the document unrenderable.
var voidElements = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true,
	atom.Embed: true, atom.Hr: true, atom.Img: true, atom.Input: true,
	atom.Link: true, atom.Meta: true, atom.Source: true, atom.Track: true,
	atom.Wbr: true,
}

// translationTarget picks where a translated string goes. Text and email
// inputs and textareas take a placeholder; button-like inputs take a value.
// Other void elements are skipped, except meta content and img alt.
func translationTarget(n *html.Node) target {
	switch n.DataAtom {
	case atom.Textarea:
		return targetPlaceholder
	case atom.Meta:
		return targetContent
	case atom.Img:
		return targetAlt
	case atom.Input:
		inputType, _ := getAttr(n, "type")
		switch strings.ToLower(strings.TrimSpace(inputType)) {
		case "", "text", "email":
			return targetPlaceholder
		default:
			return targetValue
		}
	}
	if voidElements[n.DataAtom] {
		return targetSkip
	}
	return targetText
}

func replaceText(n *html.Node, text string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func hasClass(n *html.Node, class string) bool {
	classes, ok := getAttr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(classes) {
		if c == class {
			return true
		}
	}
	return false
}

// mergeStyle sets one declaration in an inline style, replacing an existing
// declaration for the same property.
func mergeStyle(style, property, value string) string {
	var decls []string
	for _, decl := range strings.Split(style, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		name, _, _ := strings.Cut(decl, ":")
		if strings.EqualFold(strings.TrimSpace(name), property) {
			continue
		}
		decls = append(decls, decl)
	}
	decls = append(decls, property+": "+value)
	return strings.Join(decls, "; ")
}
