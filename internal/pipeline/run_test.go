package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobwatch/internal/config"
	"jobwatch/internal/provider"
)

// fakeProvider answers per query/homeoffice tuple and records every call.
type fakeProvider struct {
	mu    sync.Mutex
	calls []provider.SearchParams

	hits map[string][]map[string]any
	fail map[string]error
}

func callKey(p provider.SearchParams) string {
	if p.Homeoffice {
		return p.Query + "|ho"
	}
	return p.Query
}

func (f *fakeProvider) Search(_ context.Context, p provider.SearchParams) ([]map[string]any, error) {
	f.mu.Lock()
	f.calls = append(f.calls, p)
	f.mu.Unlock()
	if err := f.fail[callKey(p)]; err != nil {
		return nil, err
	}
	return f.hits[callKey(p)], nil
}

func (f *fakeProvider) BaseURL() string { return "https://rest.example" }

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Profiles = []config.Profile{
		{Name: "R&D", Query: "dsc"},
		{Name: "Vertrieb", Query: "vertrieb"},
	}
	cfg.Search.Homeoffice = true
	cfg.Scoring.OnlyRelevant = false
	cfg.Scoring.HideIrrelevant = false
	return cfg
}

func TestRunFansOutPerProfileAndBucket(t *testing.T) {
	pv := &fakeProvider{hits: map[string][]map[string]any{}}
	res := Run(context.Background(), pv, testConfig(), nil)

	require.Empty(t, res.Errors)
	assert.Empty(t, res.Jobs)
	// two profiles, each with an on-site and a homeoffice call
	assert.Len(t, pv.calls, 4)

	seenHO := 0
	for _, c := range pv.calls {
		if c.Homeoffice {
			seenHO++
			assert.Equal(t, testConfig().Search.HomeofficeRadiusKm, c.RadiusKm)
		} else {
			assert.Equal(t, testConfig().Search.RadiusKm, c.RadiusKm)
		}
	}
	assert.Equal(t, 2, seenHO)
}

func TestRunDedupsAcrossBuckets(t *testing.T) {
	rec := map[string]any{"refnr": "123", "titel": "Physiker DSC", "arbeitgeber": "NETZSCH"}
	pv := &fakeProvider{hits: map[string][]map[string]any{
		"dsc":    {rec},
		"dsc|ho": {rec},
	}}

	res := Run(context.Background(), pv, testConfig(), nil)
	require.Empty(t, res.Errors)
	require.Len(t, res.Jobs, 1)

	j := res.Jobs[0]
	assert.Equal(t, "ba:123", j.Key)
	// on-site bucket wins: it is built before the homeoffice bucket
	assert.Equal(t, "R&D", j.Profile)
	assert.False(t, j.Remote)
	assert.Contains(t, j.Bucket, "Vor Ort")
}

func TestRunCollectsErrorsWithoutAborting(t *testing.T) {
	pv := &fakeProvider{
		hits: map[string][]map[string]any{
			"vertrieb": {{"refnr": "9", "titel": "Vertriebsingenieur"}},
		},
		fail: map[string]error{
			"dsc": errors.New("Suche HTTP 503: wartung"),
		},
	}

	res := Run(context.Background(), pv, testConfig(), nil)
	require.Len(t, res.Jobs, 1)
	assert.Equal(t, "ba:9", res.Jobs[0].Key)

	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "R&D")
	assert.Contains(t, res.Errors[0], "Suche HTTP 503")
}

func TestRunAnnotatesAndDiffs(t *testing.T) {
	cfg := testConfig()
	cfg.Keywords.Focus = []string{"dsc"}
	cfg.Keywords.Leadership = []string{"teamleiter"}
	cfg.Keywords.Negative = nil

	pv := &fakeProvider{hits: map[string][]map[string]any{
		"dsc": {
			{
				"refnr":       "1",
				"titel":       "Teamleiter DSC-Labor",
				"arbeitgeber": "NETZSCH-Gerätebau GmbH",
				"arbeitsort": map[string]any{
					"ort":         "Selb",
					"koordinaten": map[string]any{"lat": 50.17, "lon": 12.13},
				},
			},
			{"refnr": "2", "titel": "Physiker"},
		},
	}}

	prev := map[string]bool{"ba:1": true}
	res := Run(context.Background(), pv, cfg, prev)
	require.Len(t, res.Jobs, 2)

	// only ba:2 is new relative to the snapshot
	assert.Equal(t, map[string]bool{"ba:2": true}, res.NewKeys)

	byKey := map[string]int{}
	for i, j := range res.Jobs {
		byKey[j.Key] = i
	}
	lead := res.Jobs[byKey["ba:1"]]
	assert.Equal(t, 16, lead.Score, "+10 focus +6 leadership")
	assert.True(t, lead.Leadership)
	assert.False(t, lead.New)
	require.NotNil(t, lead.Org)
	assert.Equal(t, "NETZSCH-Gerätebau", lead.Org.Name)
	require.NotNil(t, lead.DistanceKm)
	assert.Greater(t, *lead.DistanceKm, 100.0)
	require.NotNil(t, lead.TravelMin)

	plain := res.Jobs[byKey["ba:2"]]
	assert.True(t, plain.New)
	assert.Nil(t, plain.DistanceKm)
	assert.Equal(t, "unknown", plain.Tier)

	// rank indexes match final order
	for i, j := range res.Jobs {
		assert.Equal(t, i+1, j.Rank)
	}
}

func TestRunFilters(t *testing.T) {
	cfg := testConfig()
	cfg.Keywords.Focus = []string{"dsc"}
	cfg.Scoring.HideIrrelevant = true
	cfg.Scoring.OnlyRelevant = true
	cfg.Scoring.MinScore = 8

	pv := &fakeProvider{hits: map[string][]map[string]any{
		"dsc": {
			{"refnr": "1", "titel": "Physiker DSC"},
			{"refnr": "2", "titel": "Assistenz der Geschäftsführung DSC"},
			{"refnr": "3", "titel": "Gärtner"},
		},
	}}

	res := Run(context.Background(), pv, cfg, nil)
	require.Len(t, res.Jobs, 1)
	assert.Equal(t, "ba:1", res.Jobs[0].Key)
}

func TestRunDeterministicOrder(t *testing.T) {
	cfg := testConfig()
	pv := &fakeProvider{hits: map[string][]map[string]any{
		"dsc":      {{"refnr": "1", "titel": "Alpha"}, {"refnr": "2", "titel": "Beta"}},
		"vertrieb": {{"refnr": "3", "titel": "Gamma"}},
	}}

	first := Run(context.Background(), pv, cfg, nil)
	for i := 0; i < 5; i++ {
		again := Run(context.Background(), pv, cfg, nil)
		require.Len(t, again.Jobs, len(first.Jobs))
		for k := range first.Jobs {
			assert.Equal(t, first.Jobs[k].Key, again.Jobs[k].Key)
		}
	}
}
