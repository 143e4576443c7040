package leaders

// Enrich returns a copy of leader with the biography extracted from doc and,
// when detailed is set, the infobox personal details.
//
// Extraction failures are not fatal: the affected field is left empty and
// the failure is returned as a warning. The two extractions are independent.
func Enrich(leader *Leader, doc MarkupDocument, detailed bool) (*Leader, []error) {
	enriched := leader.Clone()

	var warnings []error
	if bio, err := ExtractBiography(doc); err != nil {
		warnings = append(warnings, err)
	} else {
		enriched.FirstWikiPara = bio
	}

	if detailed {
		if details, err := ScanPersonalDetails(doc); err != nil {
			warnings = append(warnings, err)
		} else {
			enriched.PersonalDetails = details
		}
	}

	return enriched, warnings
}
