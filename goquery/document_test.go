package goquery_test

import (
	"testing"

	"github.com/fwojciec/leaders"
	"github.com/fwojciec/leaders/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_Paragraphs(t *testing.T) {
	t.Parallel()

	t.Run("returns paragraph text in document order", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.Parse(`<html><body>
<p>First <b>bold</b> paragraph.</p>
<div><p>Nested paragraph.</p></div>
<p></p>
</body></html>`)
		require.NoError(t, err)

		assert.Equal(t, []string{"First bold paragraph.", "Nested paragraph.", ""}, doc.Paragraphs())
	})

	t.Run("drops style and script content", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.Parse(`<p><style>.mw-parser-output{}</style>Born 1950.<script>var x = 1;</script></p>`)
		require.NoError(t, err)

		assert.Equal(t, []string{"Born 1950."}, doc.Paragraphs())
	})

	t.Run("returns nothing for a document without paragraphs", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.Parse(`<html><body><div>No paragraphs here</div></body></html>`)
		require.NoError(t, err)

		assert.Empty(t, doc.Paragraphs())
	})
}

func TestDocument_Infobox(t *testing.T) {
	t.Parallel()

	t.Run("returns rows with header and data cells", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.Parse(`<table class="infobox vcard"><tbody>
<tr><th colspan="2" class="infobox-header">Personal details</th></tr>
<tr><th class="infobox-label">Born</th><td class="infobox-data">John Doe<br>March 3, 1950</td></tr>
<tr><td colspan="2">Signature</td></tr>
</tbody></table>`)
		require.NoError(t, err)

		table, err := doc.Infobox()

		require.NoError(t, err)
		require.Len(t, table.Rows, 3)
		assert.Equal(t, leaders.Row{
			Headers: []leaders.Cell{{Text: "Personal details", SectionHeader: true}},
		}, table.Rows[0])
		assert.Equal(t, leaders.Row{
			Headers: []leaders.Cell{{Text: "Born"}},
			Data:    []leaders.Cell{{Text: "John Doe\nMarch 3, 1950"}},
		}, table.Rows[1])
		assert.Equal(t, leaders.Row{
			Data: []leaders.Cell{{Text: "Signature"}},
		}, table.Rows[2])
	})

	t.Run("uses the first infobox", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.Parse(`
<table class="wikitable"><tr><th>Not</th><td>this</td></tr></table>
<table class="infobox"><tr><th>First</th><td>one</td></tr></table>
<table class="infobox"><tr><th>Second</th><td>two</td></tr></table>`)
		require.NoError(t, err)

		table, err := doc.Infobox()

		require.NoError(t, err)
		require.Len(t, table.Rows, 1)
		assert.Equal(t, "First", table.Rows[0].Headers[0].Text)
	})

	t.Run("excludes rows of nested tables", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.Parse(`<table class="infobox"><tbody>
<tr><th>Spouse</th><td><table><tr><th>Jane</th><td>(m. 1977)</td></tr></table></td></tr>
<tr><th>Children</th><td>3</td></tr>
</tbody></table>`)
		require.NoError(t, err)

		table, err := doc.Infobox()

		require.NoError(t, err)
		require.Len(t, table.Rows, 2)
		assert.Equal(t, "Spouse", table.Rows[0].Headers[0].Text)
		assert.Equal(t, "Jane(m. 1977)", table.Rows[0].Data[0].Text)
		assert.Equal(t, "Children", table.Rows[1].Headers[0].Text)
	})

	t.Run("returns ENOINFOBOX when no infobox exists", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.Parse(`<html><body><table class="wikitable"><tr><td>x</td></tr></table></body></html>`)
		require.NoError(t, err)

		table, err := doc.Infobox()

		require.Error(t, err)
		assert.Nil(t, table)
		assert.Equal(t, leaders.ENOINFOBOX, leaders.ErrorCode(err))
	})
}

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	var _ leaders.MarkupParser = goquery.NewParser()

	doc, err := goquery.NewParser().Parse(`<p>Hello</p>`)

	require.NoError(t, err)
	assert.Equal(t, []string{"Hello"}, doc.Paragraphs())
}
