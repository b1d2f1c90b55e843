package enrichment

import (
	"regexp"
	"strings"
)

var (
	noteRe    = regexp.MustCompile(`(?is)Augmented Note:(.*?)(?:LinkedIn Summary:|$)`)
	summaryRe = regexp.MustCompile(`(?is)LinkedIn Summary:(.*)`)
)

// parseNoteAndSummary extracts the two labeled sections from the model's
// free-text response. Anything that does not match degrades to empty
// strings; parse failure is never an error.
func parseNoteAndSummary(text string) (string, string) {
	if text == "" {
		return "", ""
	}

	var note, summary string
	if m := noteRe.FindStringSubmatch(text); m != nil {
		note = cleanSection(m[1])
	}
	if m := summaryRe.FindStringSubmatch(text); m != nil {
		summary = cleanSection(m[1])
	}
	return note, summary
}

func cleanSection(s string) string {
	s = strings.TrimSpace(s)
	// Models occasionally wrap the labels in markdown emphasis.
	s = strings.Trim(s, "*")
	return strings.TrimSpace(s)
}
