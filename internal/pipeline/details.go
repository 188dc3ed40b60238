package pipeline

import (
	"context"

	"jobwatch/internal/domain"
	"jobwatch/internal/normalize"
)

// DetailProvider loads one job-detail record from the API.
type DetailProvider interface {
	FetchDetails(ctx context.Context, rawURL string) (map[string]any, error)
}

// Enrich loads the detail record for j and merges it into the hit. A job
// without a detail URL comes back unchanged: its summary fields are the
// fallback view. On a fetch error the unchanged job is returned alongside the
// error so callers can still render the summary.
func Enrich(ctx context.Context, dp DetailProvider, j domain.Job) (domain.Job, error) {
	if j.DetailsURL == "" {
		return j, nil
	}
	raw, err := dp.FetchDetails(ctx, j.DetailsURL)
	if err != nil {
		return j, err
	}
	return normalize.MergeDetails(j, normalize.Raw(raw)), nil
}
