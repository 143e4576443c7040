package leaders

// MarkupDocument is a read-only structural view of one fetched article.
type MarkupDocument interface {
	// Paragraphs returns the text of every paragraph-level block in
	// document order, untrimmed.
	Paragraphs() []string

	// Infobox returns the first table carrying the infobox marker.
	// Returns ENOINFOBOX if the document has none.
	Infobox() (*Table, error)
}

// MarkupParser parses fetched HTML into a MarkupDocument.
type MarkupParser interface {
	Parse(html string) (MarkupDocument, error)
}

// Table is a generic key/value table.
type Table struct {
	Rows []Row
}

// Row is one table row. Header and data cells keep their document order.
type Row struct {
	Headers []Cell
	Data    []Cell
}

// Cell is a single table cell.
type Cell struct {
	// Text is the cell text with line breaks rendered as "\n".
	Text string

	// SectionHeader reports whether the cell opens a new section of the
	// table rather than labelling a field.
	SectionHeader bool
}
