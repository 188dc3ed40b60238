package state

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobwatch/internal/domain"
)

func exportFixture() ([]domain.TargetOrg, CheckState) {
	dir := []domain.TargetOrg{
		{Name: "NETZSCH-Gerätebau", CareerURL: "https://careers.netzsch.com", Priority: "high"},
		{Name: "Linseis", CareerURL: "https://www.linseis.com/karriere"},
	}
	cs := CheckState{}
	cs.MarkChecked("Linseis", 4, time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC))
	cs.SetNotes("Linseis", "Notiz, mit Komma")
	return dir, cs
}

func TestExportRowsDirectoryOrder(t *testing.T) {
	dir, cs := exportFixture()
	rows := ExportRows(dir, cs)
	require.Len(t, rows, 2)

	// never-checked org comes first with zeroed counters
	assert.Equal(t, "NETZSCH-Gerätebau", rows[0].Name)
	assert.Equal(t, "high", rows[0].Priority)
	assert.Zero(t, rows[0].Count)
	assert.Empty(t, rows[0].LastCheckedDate)

	assert.Equal(t, "Linseis", rows[1].Name)
	assert.Equal(t, 4, rows[1].Count)
	assert.Equal(t, 4, rows[1].Diff)
	assert.Equal(t, "2026-08-29", rows[1].LastCheckedDate)
}

func TestWriteJSON(t *testing.T) {
	dir, cs := exportFixture()
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, ExportRows(dir, cs)))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "NETZSCH-Gerätebau", decoded[0]["name"])
	assert.Equal(t, float64(4), decoded[1]["count"])
	assert.Equal(t, "Notiz, mit Komma", decoded[1]["notes"])
}

func TestWriteCSVQuotesNotes(t *testing.T) {
	dir, cs := exportFixture()
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, ExportRows(dir, cs)))

	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, []string{"name", "url", "priority", "lastCheckedDate", "count", "prevCount", "diff", "notes"}, recs[0])
	assert.Equal(t, "Notiz, mit Komma", recs[2][7])
	assert.Equal(t, "4", recs[2][4])
}
