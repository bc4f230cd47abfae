// Package goquery implements overviewer.Parser and overviewer.Document on
// top of github.com/PuerkitoBio/goquery.
package goquery

import (
	"bytes"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/overviewer"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Ensure Parser implements overviewer.Parser at compile time.
var _ overviewer.Parser = (*Parser)(nil)

// Parser parses markup into goquery documents.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes the markup using its encoding hint and parses it as HTML.
// An encoding label that cannot be resolved is ignored and the body is
// parsed as-is.
func (p *Parser) Parse(m *overviewer.Markup) (overviewer.Document, error) {
	if m == nil {
		return nil, overviewer.Errorf(overviewer.EINVALID, "markup required")
	}

	doc, err := goquery.NewDocumentFromReader(decode(m))
	if err != nil {
		return nil, overviewer.Errorf(overviewer.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Document{doc: doc}, nil
}

// decode returns a reader yielding UTF-8 text for m.
func decode(m *overviewer.Markup) io.Reader {
	if m.Encoding == "" {
		return bytes.NewReader(m.Body)
	}
	r, err := charset.NewReaderLabel(m.Encoding, bytes.NewReader(m.Body))
	if err != nil {
		return bytes.NewReader(m.Body)
	}
	return r
}

// Ensure Document implements overviewer.Document at compile time.
var _ overviewer.Document = (*Document)(nil)

// Document wraps a parsed goquery document.
type Document struct {
	doc *goquery.Document
}

// Links returns every a[href] element in document order.
func (d *Document) Links() []overviewer.Link {
	var links []overviewer.Link
	d.doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		links = append(links, overviewer.Link{
			Href: href,
			Text: sel.Text(),
		})
	})
	return links
}

// Text returns the document's text nodes, trimmed and joined by newlines.
// Excluded elements are removed from a copy, so repeated calls see the
// same document.
func (d *Document) Text(exclude ...string) string {
	root := d.doc.Selection.Clone()
	for _, selector := range exclude {
		root.Find(selector).Remove()
	}

	var parts []string
	for _, n := range root.Nodes {
		parts = appendText(parts, n)
	}
	return strings.Join(parts, "\n")
}

// appendText collects non-blank text nodes below n in document order.
func appendText(parts []string, n *html.Node) []string {
	switch n.Type {
	case html.TextNode:
		if s := strings.TrimSpace(n.Data); s != "" {
			parts = append(parts, s)
		}
		return parts
	case html.CommentNode, html.DoctypeNode:
		return parts
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		parts = appendText(parts, c)
	}
	return parts
}
