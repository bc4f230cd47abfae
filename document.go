package overviewer

// Link is a hyperlink element found in a Document.
type Link struct {
	Href string // raw href attribute
	Text string // visible link text
}

// Document is a parsed markup document.
// A Document belongs to the attempt that parsed it and is never shared.
type Document interface {
	// Links returns every anchor element carrying an href, in document order.
	Links() []Link

	// Text returns the visible text of the document with one newline between
	// text nodes. Elements matching any of the exclude CSS selectors are left
	// out. The document itself is not modified.
	Text(exclude ...string) string
}

// Parser turns raw markup into a Document.
type Parser interface {
	// Parse decodes m.Body using m.Encoding, when set, and parses the result.
	Parse(m *Markup) (Document, error)
}
