package domain

// TargetOrg is one entry of the static employer directory. List order defines
// match precedence: the first entry whose MatchTerms hit wins.
type TargetOrg struct {
	Name       string   `yaml:"name" json:"name"`
	MatchTerms []string `yaml:"match" json:"match"`
	CareerURL  string   `yaml:"career_url" json:"career_url"`
	Priority   string   `yaml:"priority,omitempty" json:"priority,omitempty"` // "high" or empty
}

// HighPriority reports whether the org is flagged for top placement in the
// default sort order.
func (o TargetOrg) HighPriority() bool { return o.Priority == "high" }
