package leaders

import "strings"

// minLeadWords is the minimum number of whitespace-delimited tokens in a
// paragraph that qualifies as a biographical lead.
const minLeadWords = 15

// ExtractBiography returns the normalized text of the first paragraph that
// reads like a biographical lead: it mentions a number (usually a year) and
// runs to at least minLeadWords words. Paragraphs are considered strictly in
// document order. Returns ENOBIOGRAPHY if none qualifies.
func ExtractBiography(doc MarkupDocument) (string, error) {
	for _, para := range doc.Paragraphs() {
		text := strings.TrimSpace(para)
		if text == "" {
			continue
		}
		if isBiographicalLead(text) {
			return NormalizeParagraph(text), nil
		}
	}
	return "", Errorf(ENOBIOGRAPHY, "no biographical paragraph found")
}

func isBiographicalLead(text string) bool {
	return strings.ContainsAny(text, "0123456789") && len(strings.Fields(text)) >= minLeadWords
}
