package normalize

import (
	"strings"

	"jobwatch/internal/domain"
)

// Raw is one job record exactly as the provider returned it. Field names and
// nesting vary between API versions, so every accessor here tries a
// prioritized list of alternates and degrades to a safe default instead of
// failing.
type Raw map[string]any

const (
	titlePlaceholder    = "Ohne Titel"
	locationPlaceholder = "—"
)

// Normalize produces the fixed-shape record the rest of the pipeline works
// with. profile and bucket tag where the hit came from; remote marks the
// homeoffice bucket.
func Normalize(r Raw, base, profile, bucket string, remote bool) domain.Job {
	title := Title(r)
	company := Company(r)
	location := Location(r)

	return domain.Job{
		Key:          IdentityKey(r),
		Title:        title,
		Company:      company,
		Location:     location,
		Coords:       Coords(r),
		ShortDesc:    StripHTML(stringField(r, "kurzbeschreibung", "beschreibungKurz", "kurztext")),
		Description:  StripHTML(stringField(r, "stellenbeschreibung", "beschreibung", "jobbeschreibung")),
		Tasks:        StripHTML(stringField(r, "aufgaben")),
		Requirements: StripHTML(stringField(r, "anforderungen")),
		DetailsURL:   DetailsURL(r, base),
		WebURL:       WebURL(r),
		Profile:      profile,
		Bucket:       bucket,
		Remote:       remote,
	}
}

// MergeDetails overlays a job-detail response onto a search hit. Detail
// records carry the full description where search hits often only have the
// short text; fields the detail record doesn't carry keep the hit's values.
func MergeDetails(j domain.Job, r Raw) domain.Job {
	if s := StripHTML(stringField(r, "stellenbeschreibung", "beschreibung", "jobbeschreibung")); s != "" {
		j.Description = s
	}
	if s := StripHTML(stringField(r, "aufgaben")); s != "" {
		j.Tasks = s
	}
	if s := StripHTML(stringField(r, "anforderungen")); s != "" {
		j.Requirements = s
	}
	if s := StripHTML(stringField(r, "kurzbeschreibung", "beschreibungKurz", "kurztext")); s != "" {
		j.ShortDesc = s
	}
	return j
}

// Dedup keeps the first occurrence per identity key, preserving input order.
func Dedup(jobs []domain.Job) []domain.Job {
	seen := make(map[string]bool, len(jobs))
	out := make([]domain.Job, 0, len(jobs))
	for _, j := range jobs {
		if seen[j.Key] {
			continue
		}
		seen[j.Key] = true
		out = append(out, j)
	}
	return out
}

// Title falls back through the known title field variants.
func Title(r Raw) string {
	if t := stringField(r, "titel", "beruf", "title"); t != "" {
		return t
	}
	return titlePlaceholder
}

// Company may legitimately be empty.
func Company(r Raw) string {
	return stringField(r, "arbeitgeber", "arbeitgeberName", "unternehmen")
}

// Location handles both the flat string form and the structured
// {ort, region, land} form.
func Location(r Raw) string {
	loc := firstPresent(r, "arbeitsort", "ort", "wo")
	switch v := loc.(type) {
	case string:
		return CleanText(v)
	case map[string]any:
		parts := make([]string, 0, 3)
		for _, k := range []string{"ort", "region", "land"} {
			if s := CleanText(asString(v[k])); s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			return locationPlaceholder
		}
		return strings.Join(parts, ", ")
	default:
		return locationPlaceholder
	}
}

// Coords checks the nested arbeitsort.koordinaten shape first, then a flat
// top-level koordinaten object. Nil when either component is missing or not
// numeric.
func Coords(r Raw) *domain.LatLon {
	if loc, ok := r["arbeitsort"].(map[string]any); ok {
		if ll := latlonFrom(loc["koordinaten"]); ll != nil {
			return ll
		}
	}
	return latlonFrom(r["koordinaten"])
}

// DetailsURL extracts the API detail link from _links, absolutized against
// base when relative. Empty when the provider sent none.
func DetailsURL(r Raw, base string) string {
	links, ok := r["_links"].(map[string]any)
	if !ok {
		return ""
	}
	for _, k := range []string{"details", "jobdetails"} {
		v, ok := links[k].(map[string]any)
		if !ok {
			continue
		}
		href, ok := v["href"].(string)
		if !ok || strings.TrimSpace(href) == "" {
			continue
		}
		if strings.HasPrefix(href, "http") {
			return href
		}
		return base + href
	}
	return ""
}

// WebURL builds the human-facing Jobsuche detail page. Only possible when
// the provider supplied a reference number.
func WebURL(r Raw) string {
	ref := providerRef(r)
	if ref == "" {
		return ""
	}
	return "https://www.arbeitsagentur.de/jobsuche/jobdetail/" + ref
}

func latlonFrom(v any) *domain.LatLon {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	lat, ok1 := asFloat(m["lat"])
	lon, ok2 := asFloat(m["lon"])
	if !ok1 || !ok2 {
		return nil
	}
	return &domain.LatLon{Lat: lat, Lon: lon}
}

// stringField returns the first non-blank string value among keys.
func stringField(r Raw, keys ...string) string {
	for _, k := range keys {
		if s := CleanText(asString(r[k])); s != "" {
			return s
		}
	}
	return ""
}

func firstPresent(r Raw, keys ...string) any {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
