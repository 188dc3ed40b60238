package state

import (
	"encoding/json"
	"time"

	"jobwatch/internal/domain"
)

const snapshotKey = "snapshot.json"

// Snapshot is the persisted result list of one explicit save. At most one
// exists; saving overwrites it wholesale, no history is kept.
type Snapshot struct {
	Timestamp *string        `json:"timestamp"`
	Items     []SnapshotItem `json:"items"`
}

// SnapshotItem carries enough of a job to diff by key and render the saved
// list.
type SnapshotItem struct {
	Key        string   `json:"key"`
	Title      string   `json:"title"`
	Company    string   `json:"company"`
	Location   string   `json:"location"`
	Score      int      `json:"score"`
	DistanceKm *float64 `json:"distance_km,omitempty"`
	Profile    string   `json:"profile,omitempty"`
	Bucket     string   `json:"bucket,omitempty"`
	WebURL     string   `json:"web_url,omitempty"`
}

// Keys returns the identity-key set of the snapshot for diffing.
func (s Snapshot) Keys() map[string]bool {
	out := make(map[string]bool, len(s.Items))
	for _, it := range s.Items {
		if it.Key != "" {
			out[it.Key] = true
		}
	}
	return out
}

// LoadSnapshot reads the persisted snapshot. No snapshot yet is a normal
// state: an empty snapshot with a nil timestamp, never an error.
func LoadSnapshot(st Store) (Snapshot, error) {
	b, err := st.Load(snapshotKey)
	if err != nil {
		return Snapshot{Items: []SnapshotItem{}}, err
	}
	if b == nil {
		return Snapshot{Items: []SnapshotItem{}}, nil
	}

	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return Snapshot{Items: []SnapshotItem{}}, err
	}
	if snap.Items == nil {
		snap.Items = []SnapshotItem{}
	}
	return snap, nil
}

// SaveSnapshot replaces the snapshot with the current ranked list and a
// fresh timestamp. Read-then-overwrite; no merge.
func SaveSnapshot(st Store, jobs []domain.Job, now time.Time) error {
	ts := now.Format("2006-01-02T15:04:05")
	snap := Snapshot{Timestamp: &ts, Items: make([]SnapshotItem, 0, len(jobs))}
	for _, j := range jobs {
		snap.Items = append(snap.Items, SnapshotItem{
			Key:        j.Key,
			Title:      j.Title,
			Company:    j.Company,
			Location:   j.Location,
			Score:      j.Score,
			DistanceKm: j.DistanceKm,
			Profile:    j.Profile,
			Bucket:     j.Bucket,
			WebURL:     j.WebURL,
		})
	}

	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return st.Save(snapshotKey, b)
}

// ClearSnapshot removes the snapshot; the next run diffs against nothing.
func ClearSnapshot(st Store) error {
	return st.Delete(snapshotKey)
}
