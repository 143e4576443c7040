package leaders

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// Footnote and citation markers such as [1], [a] or [citation needed].
	citationRe = regexp.MustCompile(`(?s)\[.*?\]`)

	// A slash-delimited IPA guide opening a parenthetical, a clause or a
	// word, optionally preceded by a semicolon and followed by a short
	// respelling ending in a semicolon. Guides never contain digits, so
	// season and fiscal-year notation such as 1990/91 is left alone.
	pronunciationRe = regexp.MustCompile(`(^|[\s\p{Z}(;]);?/[^/\s\d][^/\d]*/(?:[^;()/\n]{0,40};)?`)

	// Audio and pronunciation markers left behind by locale templates.
	audioMarkerRe = regexp.MustCompile(`ⓘ|(?i:\buitspraak\b|écouter)`)

	emptyParensRe = regexp.MustCompile(`\([\s\p{Z}]*\)`)
	whitespaceRe  = regexp.MustCompile(`[\s\p{Z}]{2,}`)

	asideRe       = regexp.MustCompile(`(?s)\(.*?\)`)
	punctuationRe = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s\p{Z}]`)
)

// NormalizeParagraph cleans a biography paragraph extracted from markup.
// It removes citation markers and pronunciation guides, collapses empty
// parentheses and whitespace runs, and trims the result. Punctuation is kept.
//
// The cleanup passes are repeated until the text stops changing, so
// NormalizeParagraph(NormalizeParagraph(s)) == NormalizeParagraph(s).
// Every pass ends in NFC, since a removal can leave a combining mark next
// to a base letter it composes with.
func NormalizeParagraph(raw string) string {
	s := norm.NFC.String(raw)
	for {
		next := normalizeParagraphPass(s)
		if next == s {
			return s
		}
		s = next
	}
}

func normalizeParagraphPass(s string) string {
	s = citationRe.ReplaceAllString(s, "")
	s = pronunciationRe.ReplaceAllString(s, "${1}")
	s = audioMarkerRe.ReplaceAllString(s, "")
	s = emptyParensRe.ReplaceAllString(s, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return norm.NFC.String(strings.TrimSpace(s))
}

// NormalizeValue cleans an infobox data cell into its value lines.
// Parenthetical asides and punctuation are removed, whitespace runs are
// collapsed, and the text is split on line breaks. Empty lines are dropped.
// The returned slice is never nil.
func NormalizeValue(raw string) []string {
	s := asideRe.ReplaceAllString(raw, "")
	s = punctuationRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllStringFunc(s, func(run string) string {
		if strings.ContainsAny(run, "\n\r") {
			return "\n"
		}
		return " "
	})

	lines := []string{}
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
