package state

import (
	"encoding/json"
	"time"
)

const checksKey = "company_checks.json"

// CheckEntry is the manual check bookkeeping for one target organization.
// Diff is never stored: it is recomputed from Count and PrevCount on read.
type CheckEntry struct {
	LastCheckedDate string `json:"lastCheckedDate"`
	Count           int    `json:"count"`
	PrevCount       int    `json:"prevCount"`
	Notes           string `json:"notes"`
}

// Diff is the change in interesting postings since the previous check.
func (e CheckEntry) Diff() int { return e.Count - e.PrevCount }

// CheckState maps organization name to its check entry. Entries come into
// existence lazily with zeroed defaults.
type CheckState map[string]CheckEntry

// Entry returns the entry for name, zeroed when never touched.
func (cs CheckState) Entry(name string) CheckEntry {
	return cs[name]
}

// MarkChecked rolls the current count into PrevCount, records the new count
// and stamps the check date.
func (cs CheckState) MarkChecked(name string, count int, now time.Time) {
	e := cs[name]
	e.PrevCount = e.Count
	e.Count = count
	e.LastCheckedDate = now.Format("2006-01-02")
	cs[name] = e
}

// SetNotes replaces the free-text notes without touching the counters.
func (cs CheckState) SetNotes(name, notes string) {
	e := cs[name]
	e.Notes = notes
	cs[name] = e
}

// Reset drops an organization back to zeroed defaults.
func (cs CheckState) Reset(name string) {
	delete(cs, name)
}

// LoadChecks reads the persisted check state; missing file means empty state.
func LoadChecks(st Store) (CheckState, error) {
	b, err := st.Load(checksKey)
	if err != nil {
		return CheckState{}, err
	}
	if b == nil {
		return CheckState{}, nil
	}

	var cs CheckState
	if err := json.Unmarshal(b, &cs); err != nil {
		return CheckState{}, err
	}
	if cs == nil {
		cs = CheckState{}
	}
	return cs, nil
}

// SaveChecks persists the full state, overwriting the previous file.
func SaveChecks(st Store, cs CheckState) error {
	b, err := json.MarshalIndent(cs, "", "  ")
	if err != nil {
		return err
	}
	return st.Save(checksKey, b)
}
