package mock

import "github.com/fwojciec/overviewer"

var _ overviewer.Document = (*Document)(nil)

// Document is a mock implementation of overviewer.Document.
type Document struct {
	LinksFn func() []overviewer.Link
	TextFn  func(exclude ...string) string
}

func (d *Document) Links() []overviewer.Link {
	return d.LinksFn()
}

func (d *Document) Text(exclude ...string) string {
	return d.TextFn(exclude...)
}

var _ overviewer.Parser = (*Parser)(nil)

// Parser is a mock implementation of overviewer.Parser.
type Parser struct {
	ParseFn func(m *overviewer.Markup) (overviewer.Document, error)
}

func (p *Parser) Parse(m *overviewer.Markup) (overviewer.Document, error) {
	return p.ParseFn(m)
}
