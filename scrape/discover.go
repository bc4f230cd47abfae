package scrape

import (
	"net/url"
	"slices"
	"strings"

	"github.com/fwojciec/overviewer"
)

// MaxSubpages is the number of subpages Discover returns at most.
const MaxSubpages = 2

// subpageKeywords are path fragments of pages describing an organization.
var subpageKeywords = []string{
	"/about", "/company", "/who-we-are", "/story", "/mission", "/vision", "/profile", "/organization",
}

// linkTextKeywords are subpageKeywords in word form ("who we are").
var linkTextKeywords = func() []string {
	words := make([]string, len(subpageKeywords))
	for i, kw := range subpageKeywords {
		words[i] = strings.ReplaceAll(strings.ReplaceAll(kw, "/", ""), "-", " ")
	}
	return words
}()

// skippedExtensions mark links to files that are not markup.
var skippedExtensions = []string{".pdf", ".jpg", ".png", ".zip", ".mp4"}

// Discover returns up to MaxSubpages same-site links from doc that look like
// "about the organization" pages, shortest URL first.
func Discover(baseURL string, doc overviewer.Document) []string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}

	var found []string
	seen := make(map[string]bool)
	for _, link := range doc.Links() {
		resolved, ok := resolveLink(base, link.Href)
		if !ok {
			continue
		}
		if resolved.Host != base.Host {
			continue
		}
		path := strings.ToLower(resolved.Path)
		if hasAnySuffix(path, skippedExtensions) {
			continue
		}
		if !containsAny(path, subpageKeywords) && !containsAny(strings.ToLower(strings.TrimSpace(link.Text)), linkTextKeywords) {
			continue
		}

		u := resolved.String()
		if u == baseURL || seen[u] {
			continue
		}
		seen[u] = true
		found = append(found, u)
	}

	// Shorter URLs tend to be the canonical page; ties keep document order.
	slices.SortStableFunc(found, func(a, b string) int {
		return len(a) - len(b)
	})
	if len(found) > MaxSubpages {
		found = found[:MaxSubpages]
	}
	return found
}

// resolveLink resolves href against base and strips its fragment.
// Links with a scheme other than http or https are rejected.
func resolveLink(base *url.URL, href string) (*url.URL, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return nil, false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return nil, false
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	resolved.RawFragment = ""
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return nil, false
	}
	return resolved, true
}

func containsAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}
