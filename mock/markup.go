package mock

import "github.com/fwojciec/leaders"

// Compile-time interface verification.
var (
	_ leaders.MarkupDocument = (*MarkupDocument)(nil)
	_ leaders.MarkupParser   = (*MarkupParser)(nil)
)

// MarkupDocument is a mock implementation of leaders.MarkupDocument.
type MarkupDocument struct {
	ParagraphsFn func() []string
	InfoboxFn    func() (*leaders.Table, error)
}

func (d *MarkupDocument) Paragraphs() []string {
	return d.ParagraphsFn()
}

func (d *MarkupDocument) Infobox() (*leaders.Table, error) {
	return d.InfoboxFn()
}

// MarkupParser is a mock implementation of leaders.MarkupParser.
type MarkupParser struct {
	ParseFn func(html string) (leaders.MarkupDocument, error)
}

func (p *MarkupParser) Parse(html string) (leaders.MarkupDocument, error) {
	return p.ParseFn(html)
}
