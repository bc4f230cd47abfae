package scrape_test

import (
	"testing"

	"github.com/fwojciec/overviewer"
	"github.com/fwojciec/overviewer/mock"
	"github.com/fwojciec/overviewer/scrape"
	"github.com/stretchr/testify/assert"
)

func linksDoc(links ...overviewer.Link) *mock.Document {
	return &mock.Document{
		LinksFn: func() []overviewer.Link { return links },
	}
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	t.Run("returns the two shortest matching links, deduplicated", func(t *testing.T) {
		t.Parallel()

		doc := linksDoc(
			overviewer.Link{Href: "/about-us/team/leadership", Text: "Leadership"},
			overviewer.Link{Href: "/about", Text: "About"},
			overviewer.Link{Href: "/company/history", Text: "History"},
			overviewer.Link{Href: "/about", Text: "About again"},
			overviewer.Link{Href: "/our-story", Text: "Story"},
			overviewer.Link{Href: "/mission", Text: "Mission"},
		)

		got := scrape.Discover("https://example.com", doc)

		assert.Equal(t, []string{
			"https://example.com/about",
			"https://example.com/mission",
		}, got)
	})

	t.Run("resolves relative links and strips fragments", func(t *testing.T) {
		t.Parallel()

		doc := linksDoc(
			overviewer.Link{Href: "about#team", Text: "Team"},
		)

		got := scrape.Discover("https://example.com/en/home", doc)

		assert.Equal(t, []string{"https://example.com/en/about"}, got)
	})

	t.Run("matches on link text in word form", func(t *testing.T) {
		t.Parallel()

		doc := linksDoc(
			overviewer.Link{Href: "/team", Text: "  Who We Are "},
			overviewer.Link{Href: "/contact", Text: "Contact"},
		)

		got := scrape.Discover("https://example.com", doc)

		assert.Equal(t, []string{"https://example.com/team"}, got)
	})

	t.Run("matches paths case-insensitively", func(t *testing.T) {
		t.Parallel()

		doc := linksDoc(
			overviewer.Link{Href: "/About-Us", Text: "Us"},
		)

		got := scrape.Discover("https://example.com", doc)

		assert.Equal(t, []string{"https://example.com/About-Us"}, got)
	})

	t.Run("skips other hosts, files, the base URL and non-HTTP links", func(t *testing.T) {
		t.Parallel()

		doc := linksDoc(
			overviewer.Link{Href: "https://other.com/about", Text: "About them"},
			overviewer.Link{Href: "https://blog.example.com/about", Text: "About"},
			overviewer.Link{Href: "/about/brochure.PDF", Text: "About (PDF)"},
			overviewer.Link{Href: "/company/logo.png", Text: "Logo"},
			overviewer.Link{Href: "https://example.com", Text: "About"},
			overviewer.Link{Href: "#about", Text: "About"},
			overviewer.Link{Href: "mailto:hello@example.com", Text: "About"},
			overviewer.Link{Href: "javascript:void(0)", Text: "About"},
			overviewer.Link{Href: "", Text: "About"},
		)

		got := scrape.Discover("https://example.com", doc)

		assert.Empty(t, got)
	})

	t.Run("does not match keywords without a leading slash in the path", func(t *testing.T) {
		t.Parallel()

		doc := linksDoc(
			overviewer.Link{Href: "/roundabout", Text: "Traffic"},
		)

		got := scrape.Discover("https://example.com", doc)

		assert.Empty(t, got)
	})

	t.Run("returns nothing for a document without links", func(t *testing.T) {
		t.Parallel()

		got := scrape.Discover("https://example.com", linksDoc())

		assert.Empty(t, got)
	})
}
