// Package leaders extracts biographical facts about national political
// leaders. It lists leaders from the country-leaders directory API, fetches
// their Wikipedia articles, and enriches each record with the article's
// biographical lead paragraph and, for selected countries, the personal
// details block of the article infobox.
//
// This package contains domain types, interfaces and the pure extraction
// logic following Ben Johnson's Standard Package Layout. Implementations
// live in subdirectories named after their primary dependency (e.g.
// goquery/, http/, sqlite/).
package leaders
