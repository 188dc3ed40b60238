package rank

import (
	"strings"
	"unicode"

	"jobwatch/internal/domain"
)

// hardIrrelevant is the fixed exclusion list for assistant/secretarial/
// insurance-adjacent roles. Applied before score filtering, behind its own
// toggle.
var hardIrrelevant = []string{
	"vorstandsassistenz",
	"management assistant",
	"assistant",
	"assistenz",
	"sekretariat",
	"insurance",
	"versicherung",
}

// leadershipTitles are unambiguous leadership words checked as whole tokens.
// Deliberately stricter than the scored leadership keyword list: "leiter" as
// a bare substring would star every "Schichtleiter" posting.
var leadershipTitles = map[string]bool{
	"laborleiter":      true,
	"teamleiter":       true,
	"gruppenleiter":    true,
	"abteilungsleiter": true,
	"leiter":           true,
	"head":             true,
	"lead":             true,
	"director":         true,
	"principal":        true,
}

// IsProbablyIrrelevant reports whether the title plus short description hits
// the hard exclusion list.
func IsProbablyIrrelevant(j domain.Job) bool {
	text := strings.ToLower(j.Title + " " + j.ShortDesc)
	for _, h := range hardIrrelevant {
		if strings.Contains(text, h) {
			return true
		}
	}
	return false
}

// LooksLeadership reports whether the title or short description contains one
// of the enumerated leadership titles as a whole word.
func LooksLeadership(j domain.Job) bool {
	text := strings.ToLower(j.Title + " " + j.ShortDesc)
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	for _, w := range words {
		if leadershipTitles[w] {
			return true
		}
	}
	return false
}
