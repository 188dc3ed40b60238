package rank

import (
	"fmt"
	"strings"

	"jobwatch/internal/domain"
)

// Scoring weights. Transparent on purpose: the breakdown returned alongside
// the score names every contribution.
const (
	focusWeight      = 10
	leadershipWeight = 6
	negativeWeight   = -12
)

const noMatchBreakdown = "keine Keyword-Treffer"

// Keywords are the three user-editable term lists. Terms are expected
// lowercased and trimmed; duplicates are allowed and each list element is
// tested independently.
type Keywords struct {
	Focus      []string
	Leadership []string
	Negative   []string
}

// Score computes the additive relevance score of a job and a human-readable
// breakdown of every contribution. Pure function of its inputs: re-invoked on
// every render so keyword edits take effect without re-querying.
//
// homeofficeBonus is added once when > 0 and the job came from the remote
// bucket.
func Score(j domain.Job, kw Keywords, homeofficeBonus int) (int, []string) {
	hay := haystack(j)

	score := 0
	var parts []string

	for _, k := range kw.Focus {
		if k != "" && strings.Contains(hay, k) {
			score += focusWeight
			parts = append(parts, fmt.Sprintf("%+d Fokus: %s", focusWeight, k))
		}
	}
	for _, k := range kw.Leadership {
		if k != "" && strings.Contains(hay, k) {
			score += leadershipWeight
			parts = append(parts, fmt.Sprintf("%+d Leitung: %s", leadershipWeight, k))
		}
	}
	for _, k := range kw.Negative {
		if k != "" && strings.Contains(hay, k) {
			score += negativeWeight
			parts = append(parts, fmt.Sprintf("%+d Negativ: %s", negativeWeight, k))
		}
	}
	if j.Remote && homeofficeBonus > 0 {
		score += homeofficeBonus
		parts = append(parts, fmt.Sprintf("%+d Homeoffice-Bonus", homeofficeBonus))
	}

	if len(parts) == 0 {
		parts = []string{noMatchBreakdown}
	}
	return score, parts
}

// haystack is the single lowercased text every term is tested against once,
// regardless of how many source fields it appears in.
func haystack(j domain.Job) string {
	return strings.ToLower(strings.Join([]string{
		j.Title,
		j.ShortDesc,
		j.Description,
		j.Tasks,
		j.Requirements,
		j.Company,
		j.Location,
	}, " "))
}
