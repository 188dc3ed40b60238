package state

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"jobwatch/internal/domain"
)

// ExportRow is one organization of the check-state dump: the static
// directory entry joined with its check bookkeeping.
type ExportRow struct {
	Name            string `json:"name"`
	URL             string `json:"url"`
	Priority        string `json:"priority"`
	LastCheckedDate string `json:"lastCheckedDate"`
	Count           int    `json:"count"`
	PrevCount       int    `json:"prevCount"`
	Diff            int    `json:"diff"`
	Notes           string `json:"notes"`
}

// ExportRows joins the directory with the check state, in directory order.
// Organizations never checked appear with zeroed counters.
func ExportRows(dir []domain.TargetOrg, cs CheckState) []ExportRow {
	rows := make([]ExportRow, 0, len(dir))
	for _, o := range dir {
		e := cs.Entry(o.Name)
		rows = append(rows, ExportRow{
			Name:            o.Name,
			URL:             o.CareerURL,
			Priority:        o.Priority,
			LastCheckedDate: e.LastCheckedDate,
			Count:           e.Count,
			PrevCount:       e.PrevCount,
			Diff:            e.Diff(),
			Notes:           e.Notes,
		})
	}
	return rows
}

// WriteJSON writes the dump as an indented JSON array.
func WriteJSON(w io.Writer, rows []ExportRow) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// WriteCSV writes the same columns as a delimited table. encoding/csv
// quote-escapes embedded delimiters and newlines in notes.
func WriteCSV(w io.Writer, rows []ExportRow) error {
	cw := csv.NewWriter(w)

	header := []string{"name", "url", "priority", "lastCheckedDate", "count", "prevCount", "diff", "notes"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.Name,
			r.URL,
			r.Priority,
			r.LastCheckedDate,
			strconv.Itoa(r.Count),
			strconv.Itoa(r.PrevCount),
			strconv.Itoa(r.Diff),
			r.Notes,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
