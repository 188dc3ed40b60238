package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobwatch/internal/domain"
)

func TestSnapshotRoundtrip(t *testing.T) {
	st := MemStore{}
	d := 34.2
	jobs := []domain.Job{
		{Key: "ba:123", Title: "Teamleiter DSC-Labor", Company: "NETZSCH", Location: "Selb", Score: 16, DistanceKm: &d, Profile: "R&D", Bucket: "Vor Ort (50 km)"},
		{Key: "ba:456", Title: "Physiker", Company: "Linseis", Location: "Selb", Score: 10},
	}
	now := time.Date(2026, 8, 29, 14, 30, 0, 0, time.UTC)

	require.NoError(t, SaveSnapshot(st, jobs, now))

	snap, err := LoadSnapshot(st)
	require.NoError(t, err)
	require.NotNil(t, snap.Timestamp)
	assert.Equal(t, "2026-08-29T14:30:00", *snap.Timestamp)
	require.Len(t, snap.Items, 2)
	assert.Equal(t, "ba:123", snap.Items[0].Key)
	assert.Equal(t, "Teamleiter DSC-Labor", snap.Items[0].Title)
	require.NotNil(t, snap.Items[0].DistanceKm)
	assert.InDelta(t, 34.2, *snap.Items[0].DistanceKm, 1e-9)
	assert.Nil(t, snap.Items[1].DistanceKm)

	keys := snap.Keys()
	assert.True(t, keys["ba:123"])
	assert.True(t, keys["ba:456"])
	assert.Len(t, keys, 2)
}

func TestLoadSnapshotMissing(t *testing.T) {
	snap, err := LoadSnapshot(MemStore{})
	require.NoError(t, err)
	assert.Nil(t, snap.Timestamp)
	assert.Empty(t, snap.Items)
	assert.Empty(t, snap.Keys())
}

func TestClearSnapshot(t *testing.T) {
	st := MemStore{}
	require.NoError(t, SaveSnapshot(st, []domain.Job{{Key: "ba:1"}}, time.Now()))
	require.NoError(t, ClearSnapshot(st))

	snap, err := LoadSnapshot(st)
	require.NoError(t, err)
	assert.Empty(t, snap.Items)

	// clearing twice is fine
	require.NoError(t, ClearSnapshot(st))
}

func TestSnapshotOverwrites(t *testing.T) {
	st := MemStore{}
	require.NoError(t, SaveSnapshot(st, []domain.Job{{Key: "ba:1"}, {Key: "ba:2"}}, time.Now()))
	require.NoError(t, SaveSnapshot(st, []domain.Job{{Key: "ba:3"}}, time.Now()))

	snap, err := LoadSnapshot(st)
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "ba:3", snap.Items[0].Key)
}

func TestFileStoreRoundtrip(t *testing.T) {
	st := NewFileStore(t.TempDir())

	b, err := st.Load("snapshot.json")
	require.NoError(t, err)
	assert.Nil(t, b)

	require.NoError(t, st.Save("snapshot.json", []byte(`{"items":[]}`)))
	b, err = st.Load("snapshot.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, string(b))

	require.NoError(t, st.Delete("snapshot.json"))
	require.NoError(t, st.Delete("snapshot.json"))
}
