package rank

import "jobwatch/internal/domain"

// NewKeys returns the identity keys present in the current set but absent
// from the previous snapshot: plain set difference. A record whose key
// changed shape since the snapshot (say it gained a provider reference it
// previously lacked) counts as new even if it is semantically the same
// posting; that imprecision is inherent to the identity scheme.
func NewKeys(current []domain.Job, prevKeys map[string]bool) map[string]bool {
	out := make(map[string]bool)
	for _, j := range current {
		if !prevKeys[j.Key] {
			out[j.Key] = true
		}
	}
	return out
}
