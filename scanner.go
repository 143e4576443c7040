package leaders

import "strings"

// scanState tracks whether the scanner is inside the personal details section.
type scanState int

const (
	outsideSection scanState = iota
	insideSection
)

// ScanPersonalDetails extracts the personal details section of the
// document's infobox.
//
// Rows are read in order. The section starts after a row whose header reads
// "Personal details" and ends at the next row carrying a section header.
// Inside the section every header cell declares a label and data cells are
// assigned to the labels of their row by position; surplus data cells go to
// the last label of the row. Labels repeated in a later section span replace
// the earlier values. Returns ENOINFOBOX if the document has no infobox.
func ScanPersonalDetails(doc MarkupDocument) (*PersonalDetails, error) {
	table, err := doc.Infobox()
	if err != nil {
		return nil, err
	}

	details := NewPersonalDetails()
	state := outsideSection
	for _, row := range table.Rows {
		switch state {
		case outsideSection:
			if opensPersonalDetails(row) {
				state = insideSection
			}
		case insideSection:
			switch {
			case opensPersonalDetails(row):
				// Repeated header, still the same section.
			case opensSection(row):
				state = outsideSection
			default:
				scanField(details, row)
			}
		}
	}

	details.Delete(PersonalDetailsLabel)
	return details, nil
}

func opensPersonalDetails(row Row) bool {
	for _, cell := range row.Headers {
		if cellLabel(cell.Text) == PersonalDetailsLabel {
			return true
		}
	}
	return false
}

func opensSection(row Row) bool {
	for _, cell := range row.Headers {
		if cell.SectionHeader {
			return true
		}
	}
	return false
}

// scanField records the labels and values of one row. Rows with values
// but no label are skipped.
func scanField(details *PersonalDetails, row Row) {
	if len(row.Headers) == 0 {
		return
	}

	labels := make([]string, len(row.Headers))
	for i, cell := range row.Headers {
		labels[i] = cellLabel(cell.Text)
		if labels[i] != "" {
			details.Set(labels[i], nil)
		}
	}

	for i, cell := range row.Data {
		label := labels[min(i, len(labels)-1)]
		if label == "" {
			continue
		}
		details.Set(label, NormalizeValue(cell.Text))
	}
}

// cellLabel trims a header cell and collapses its inner whitespace.
func cellLabel(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
