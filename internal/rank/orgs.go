package rank

import (
	"strings"

	"jobwatch/internal/domain"
)

// MatchOrg classifies a company name against the target-organization
// directory. First match in directory order wins, so an earlier entry with a
// broader term shadows a later, more specific one; the default directory is
// ordered accordingly. Nil for blank input or no hit.
//
// This is a plain substring scan, not a normalized-name matcher; ambiguous
// overlaps between entries are a tolerated imprecision.
func MatchOrg(dir []domain.TargetOrg, company string) *domain.TargetOrg {
	name := strings.ToLower(strings.TrimSpace(company))
	if name == "" {
		return nil
	}
	for i := range dir {
		for _, term := range dir[i].MatchTerms {
			if term != "" && strings.Contains(name, term) {
				return &dir[i]
			}
		}
	}
	return nil
}
