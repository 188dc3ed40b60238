package normalize

import (
	"reflect"
	"strings"
	"testing"

	"jobwatch/internal/domain"
)

func TestTitleFallbacks(t *testing.T) {
	tests := []struct {
		name string
		raw  Raw
		want string
	}{
		{"titel wins", Raw{"titel": "Physiker", "beruf": "Physik", "title": "Physicist"}, "Physiker"},
		{"beruf second", Raw{"beruf": "Physik", "title": "Physicist"}, "Physik"},
		{"title third", Raw{"title": "Physicist"}, "Physicist"},
		{"placeholder", Raw{}, "Ohne Titel"},
		{"blank is absent", Raw{"titel": "   "}, "Ohne Titel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Title(tt.raw); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLocationShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  Raw
		want string
	}{
		{"flat string", Raw{"arbeitsort": "Leipzig"}, "Leipzig"},
		{
			"structured all parts",
			Raw{"arbeitsort": map[string]any{"ort": "Selb", "region": "Bayern", "land": "Deutschland"}},
			"Selb, Bayern, Deutschland",
		},
		{
			"structured partial",
			Raw{"arbeitsort": map[string]any{"ort": "Selb", "region": "  ", "land": ""}},
			"Selb",
		},
		{
			"structured empty",
			Raw{"arbeitsort": map[string]any{"ort": "", "region": ""}},
			"—",
		},
		{"missing entirely", Raw{}, "—"},
		{"ort fallback key", Raw{"ort": "Halle"}, "Halle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Location(tt.raw); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCoords(t *testing.T) {
	nested := Raw{"arbeitsort": map[string]any{"koordinaten": map[string]any{"lat": 51.3, "lon": 12.4}}}
	if ll := Coords(nested); ll == nil || ll.Lat != 51.3 || ll.Lon != 12.4 {
		t.Errorf("nested shape: got %+v", ll)
	}

	flat := Raw{"koordinaten": map[string]any{"lat": 51.3, "lon": 12.4}}
	if ll := Coords(flat); ll == nil || ll.Lat != 51.3 {
		t.Errorf("flat shape: got %+v", ll)
	}

	missing := Raw{"arbeitsort": map[string]any{"koordinaten": map[string]any{"lat": 51.3}}}
	if ll := Coords(missing); ll != nil {
		t.Errorf("missing lon: got %+v, want nil", ll)
	}

	junk := Raw{"koordinaten": map[string]any{"lat": "north", "lon": 12.4}}
	if ll := Coords(junk); ll != nil {
		t.Errorf("non-numeric lat: got %+v, want nil", ll)
	}
}

func TestDetailsURL(t *testing.T) {
	const base = "https://rest.example/jobsuche-service"

	abs := Raw{"_links": map[string]any{"details": map[string]any{"href": "https://rest.example/x/1"}}}
	if got := DetailsURL(abs, base); got != "https://rest.example/x/1" {
		t.Errorf("absolute: got %q", got)
	}

	rel := Raw{"_links": map[string]any{"jobdetails": map[string]any{"href": "/pc/v4/jobdetails/1"}}}
	if got := DetailsURL(rel, base); got != base+"/pc/v4/jobdetails/1" {
		t.Errorf("relative: got %q", got)
	}

	if got := DetailsURL(Raw{}, base); got != "" {
		t.Errorf("missing links: got %q, want empty", got)
	}
}

func TestIdentityKeyProviderRef(t *testing.T) {
	// Same reference number through different field variants collides.
	variants := []Raw{
		{"refnr": "123", "titel": "Teamleiter DSC"},
		{"refNr": "123", "titel": "TEAMLEITER DSC"},
		{"hashId": "123"},
		{"hashID": "123"},
	}
	for _, r := range variants {
		if got := IdentityKey(r); got != "ba:123" {
			t.Errorf("IdentityKey(%v) = %q, want ba:123", r, got)
		}
	}
}

func TestIdentityKeyContentHash(t *testing.T) {
	a := Raw{"titel": "Laborleiter", "arbeitgeber": "NETZSCH", "arbeitsort": "Selb"}
	b := Raw{"titel": "LABORLEITER", "arbeitgeber": "netzsch", "arbeitsort": "SELB"}
	c := Raw{"titel": "Laborleiter", "arbeitgeber": "Linseis", "arbeitsort": "Selb"}

	ka, kb, kc := IdentityKey(a), IdentityKey(b), IdentityKey(c)

	if !strings.HasPrefix(ka, "hx:") || len(ka) != len("hx:")+16 {
		t.Errorf("unexpected hash key shape: %q", ka)
	}
	if ka != kb {
		t.Errorf("case-insensitive tuple should collide: %q vs %q", ka, kb)
	}
	if ka == kc {
		t.Errorf("different company should not collide: %q", ka)
	}
}

func TestDedupKeepsFirstOccurrence(t *testing.T) {
	// Two records share ref "123" but differ in title casing; one unrelated.
	raws := []Raw{
		{"refnr": "123", "titel": "Teamleiter DSC-Labor"},
		{"refnr": "123", "titel": "TEAMLEITER DSC-LABOR"},
		{"refnr": "456", "titel": "Physiker"},
	}

	var jobs []domain.Job
	for _, r := range raws {
		jobs = append(jobs, Normalize(r, "https://base", "R&D", "Vor Ort (50 km)", false))
	}

	out := Dedup(jobs)
	if len(out) != 2 {
		t.Fatalf("got %d records, want 2", len(out))
	}
	if out[0].Key != "ba:123" {
		t.Errorf("first key = %q, want ba:123", out[0].Key)
	}
	if out[0].Title != "Teamleiter DSC-Labor" {
		t.Errorf("first occurrence should win, got title %q", out[0].Title)
	}
	if out[1].Key != "ba:456" {
		t.Errorf("second key = %q, want ba:456", out[1].Key)
	}
}

func TestNormalizeWebURLAndTags(t *testing.T) {
	r := Raw{"refnr": "10001-ABC", "titel": "Physiker", "arbeitgeber": "NETZSCH"}
	j := Normalize(r, "https://base", "R&D", "Homeoffice (200 km)", true)

	if j.WebURL != "https://www.arbeitsagentur.de/jobsuche/jobdetail/10001-ABC" {
		t.Errorf("web url = %q", j.WebURL)
	}
	if j.Profile != "R&D" || j.Bucket != "Homeoffice (200 km)" || !j.Remote {
		t.Errorf("tags not carried: %+v", j)
	}

	// no ref, no web link
	j2 := Normalize(Raw{"titel": "Physiker"}, "https://base", "R&D", "b", false)
	if j2.WebURL != "" {
		t.Errorf("web url without ref = %q, want empty", j2.WebURL)
	}
}

func TestMergeDetails(t *testing.T) {
	j := domain.Job{
		Key:       "ba:123",
		Title:     "Physiker",
		ShortDesc: "Kurztext aus der Suche",
	}

	merged := MergeDetails(j, Raw{
		"stellenbeschreibung": "<p>Vollständige <b>Beschreibung</b></p>",
		"aufgaben":            "DSC-Messungen",
	})
	if merged.Description != "Vollständige Beschreibung" {
		t.Errorf("description = %q", merged.Description)
	}
	if merged.Tasks != "DSC-Messungen" {
		t.Errorf("tasks = %q", merged.Tasks)
	}
	// fields absent from the detail record keep the search hit's values
	if merged.ShortDesc != "Kurztext aus der Suche" {
		t.Errorf("short desc = %q", merged.ShortDesc)
	}
	if merged.Key != "ba:123" || merged.Title != "Physiker" {
		t.Errorf("identity fields must survive: %+v", merged)
	}

	// an empty detail record changes nothing
	if got := MergeDetails(j, Raw{}); !reflect.DeepEqual(got, j) {
		t.Errorf("empty merge changed the job: %+v", got)
	}
}

func TestStripHTML(t *testing.T) {
	in := "<p>Wir suchen <b>Physiker</b> für&nbsp;DSC-Messungen.</p>"
	want := "Wir suchen Physiker für DSC-Messungen."
	if got := StripHTML(in); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := StripHTML("plain  text "); got != "plain text" {
		t.Errorf("plain passthrough: got %q", got)
	}
}
