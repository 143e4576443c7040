// Package goquery implements leaders.MarkupDocument on top of goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/leaders"
	"golang.org/x/net/html"
)

// Structural markers used by Wikipedia infobox templates.
const (
	infoboxSelector    = "table.infobox"
	sectionHeaderClass = "infobox-header"
)

// Compile-time interface verification.
var (
	_ leaders.MarkupParser   = (*Parser)(nil)
	_ leaders.MarkupDocument = (*Document)(nil)
)

// Parser parses HTML into Documents.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse implements leaders.MarkupParser.
func (p *Parser) Parse(raw string) (leaders.MarkupDocument, error) {
	doc, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Document is a read-only view of a parsed article.
type Document struct {
	doc *goquery.Document
}

// Parse parses HTML into a Document.
// Script and style elements are dropped so they never leak into cell or
// paragraph text.
func Parse(raw string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, leaders.Errorf(leaders.EINVALID, "failed to parse HTML: %v", err)
	}
	doc.Find("script, style").Remove()
	return &Document{doc: doc}, nil
}

// Paragraphs returns the text of every <p> element in document order.
func (d *Document) Paragraphs() []string {
	var paras []string
	d.doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		paras = append(paras, sel.Text())
	})
	return paras
}

// Infobox returns the rows of the first table with the "infobox" class.
// Rows of tables nested inside the infobox are not included.
func (d *Document) Infobox() (*leaders.Table, error) {
	box := d.doc.Find(infoboxSelector).First()
	if box.Length() == 0 {
		return nil, leaders.Errorf(leaders.ENOINFOBOX, "infobox not found")
	}

	table := &leaders.Table{}
	box.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if !tr.Closest("table").IsSelection(box) {
			return
		}
		var row leaders.Row
		tr.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
			c := leaders.Cell{
				Text:          cellText(cell),
				SectionHeader: cell.HasClass(sectionHeaderClass),
			}
			if goquery.NodeName(cell) == "th" {
				row.Headers = append(row.Headers, c)
			} else {
				row.Data = append(row.Data, c)
			}
		})
		table.Rows = append(table.Rows, row)
	})
	return table, nil
}

// cellText returns the text of a cell with <br> rendered as a line break.
func cellText(cell *goquery.Selection) string {
	clone := cell.Clone()
	clone.Find("br").Each(func(_ int, br *goquery.Selection) {
		br.ReplaceWithNodes(&html.Node{Type: html.TextNode, Data: "\n"})
	})
	return clone.Text()
}
