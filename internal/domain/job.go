package domain

// LatLon is a WGS84 coordinate pair.
type LatLon struct {
	Lat float64
	Lon float64
}

// Job is the normalized view of one search hit. Downstream components only
// ever see this type; the raw provider shape stays inside the normalizer.
type Job struct {
	Key          string // "ba:<refnr>" or "hx:<content hash>"
	Title        string
	Company      string
	Location     string
	Coords       *LatLon
	ShortDesc    string
	Description  string
	Tasks        string
	Requirements string
	DetailsURL   string // API detail endpoint, may be empty
	WebURL       string // human-facing Jobsuche page, may be empty
	Profile      string // which query profile produced the hit
	Bucket       string // e.g. "Vor Ort (50 km)" / "Homeoffice (200 km)"
	Remote       bool   // hit came from the homeoffice bucket

	// Annotations filled in by the pipeline.
	Score      int
	Breakdown  []string
	DistanceKm *float64
	TravelMin  *int
	Tier       string // near/mid/far/unknown
	Org        *TargetOrg
	Leadership bool
	New        bool
	Rank       int // 1-based display index in final order
}
