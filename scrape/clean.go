package scrape

import (
	"regexp"
	"strings"

	"github.com/fwojciec/overviewer"
)

// noiseSelectors match elements that never carry a site's descriptive text:
// embedded code and media, page chrome, form controls, ads, consent banners,
// overlays, sidebars and menus, hidden elements, comments and share widgets.
var noiseSelectors = []string{
	"script", "style", "noscript", "iframe", "svg", "canvas", "video", "audio", "embed", "object",
	"nav", "footer", "header", "aside",
	"form", "button", "input", "textarea", "select", "option", "label",
	".ad", "#ad", `[class*="advert"]`, `[id*="advert"]`,
	".cookie", "#cookie", `[class*="cookie-consent"]`, `[id*="cookie-banner"]`,
	".popup", "#popup", ".modal", "#modal",
	".sidebar", "#sidebar", ".menu", "#menu", ".navigation", "#navigation",
	`[aria-hidden="true"]`, "[hidden]",
	".comments", "#comments", `[class*="comment-"]`, `[id*="comment-"]`,
	`[class*="social"]`, `[id*="social"]`, `[class*="share"]`, `[id*="share"]`,
}

var (
	blankLinesRe   = regexp.MustCompile(`\n\s*\n`)
	spaceRunRe     = regexp.MustCompile(`[ \t]{2,}`)
	leadingSpaceRe = regexp.MustCompile(`(?m)^[ \t]+`)
)

// Clean returns the readable text of doc with boilerplate removed and
// whitespace normalized. The document is left unchanged.
func Clean(doc overviewer.Document) string {
	text := doc.Text(noiseSelectors...)
	text = blankLinesRe.ReplaceAllString(text, "\n\n")
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = leadingSpaceRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
