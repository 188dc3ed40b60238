package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string
	Warnings []string
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus validation findings.
// Keyword lists are lowercased and trimmed but deliberately NOT deduplicated:
// matching is substring containment, so a repeated term is harmless, and
// users paste lists around freely.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	out.Keywords.Focus = normalizeTerms(out.Keywords.Focus)
	out.Keywords.Leadership = normalizeTerms(out.Keywords.Leadership)
	out.Keywords.Negative = normalizeTerms(out.Keywords.Negative)

	for i := range out.Orgs {
		out.Orgs[i].MatchTerms = normalizeTerms(out.Orgs[i].MatchTerms)
	}

	if out.Home.Lat < -90 || out.Home.Lat > 90 {
		res.addErr("home.lat must be -90..90")
	}
	if out.Home.Lon < -180 || out.Home.Lon > 180 {
		res.addErr("home.lon must be -180..180")
	}

	if out.Proximity.NearKm <= 0 {
		res.addErr("proximity.near_km must be > 0")
	}
	if out.Proximity.MidKm < out.Proximity.NearKm {
		res.addErr("proximity.mid_km must be >= proximity.near_km")
	}
	if out.Proximity.SpeedKmh <= 0 {
		res.addWarn("proximity.speed_kmh is not positive; travel time estimates are disabled.")
	}

	if strings.TrimSpace(out.Search.Location) == "" {
		res.addErr("search.location is required")
	}
	if out.Search.RadiusKm <= 0 {
		res.addErr("search.radius_km must be > 0")
	}
	if out.Search.Homeoffice && out.Search.HomeofficeRadiusKm <= 0 {
		res.addErr("search.homeoffice_radius_km must be > 0 when homeoffice is enabled")
	}
	if out.Search.MaxAgeDays < 0 {
		res.addErr("search.max_age_days must be >= 0")
	}
	if out.Search.PageSize <= 0 {
		res.addErr("search.page_size must be > 0")
	}

	if len(out.Profiles) == 0 {
		res.addErr("at least one search profile is required")
	}
	for i, p := range out.Profiles {
		if strings.TrimSpace(p.Name) == "" {
			res.addErr("profiles[%d].name is required", i)
		}
	}

	if out.Scoring.MinScore < 0 {
		res.addErr("scoring.min_score must be >= 0")
	}
	switch out.Scoring.SortMode {
	case "", "distance", "relevance":
	default:
		res.addErr("scoring.sort_mode must be distance or relevance, got %q", out.Scoring.SortMode)
	}

	if out.Cache.SearchTTLMinutes <= 0 {
		res.addWarn("cache.search_ttl_minutes is not positive; every render hits the provider.")
	}

	for i, o := range out.Orgs {
		if strings.TrimSpace(o.Name) == "" {
			res.addErr("orgs[%d].name is required", i)
		}
		if len(o.MatchTerms) == 0 {
			res.addErr("orgs[%d].match must have at least 1 term", i)
		}
		if o.Priority != "" && o.Priority != "high" {
			res.addErr("orgs[%d].priority must be \"high\" or absent, got %q", i, o.Priority)
		}
	}

	if out.Notify.Enabled {
		if strings.TrimSpace(out.Notify.SMTPHost) == "" {
			res.addErr("notify.smtp_host is required when notify.enabled=true")
		}
		if out.Notify.SMTPPort == 0 {
			res.addErr("notify.smtp_port is required when notify.enabled=true")
		}
		if strings.TrimSpace(out.Notify.To) == "" {
			res.addErr("notify.to is required when notify.enabled=true")
		}
	}

	return out, res
}

func normalizeTerms(xs []string) []string {
	var ys []string
	for _, x := range xs {
		x = strings.ToLower(strings.TrimSpace(x))
		if x == "" {
			continue
		}
		ys = append(ys, x)
	}
	return ys
}
