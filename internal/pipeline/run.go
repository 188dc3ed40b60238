package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"jobwatch/internal/config"
	"jobwatch/internal/domain"
	"jobwatch/internal/geo"
	"jobwatch/internal/normalize"
	"jobwatch/internal/provider"
	"jobwatch/internal/rank"
)

// SearchProvider is the narrow collaborator contract for the job-search API.
type SearchProvider interface {
	Search(ctx context.Context, p provider.SearchParams) ([]map[string]any, error)
	BaseURL() string
}

// Result of one pipeline run.
type Result struct {
	Jobs    []domain.Job    // deduplicated, filtered, annotated, in final order
	NewKeys map[string]bool // identity keys absent from the previous snapshot
	Errors  []string        // per-profile/bucket diagnostics, never fatal
}

// call is one profile×bucket provider invocation.
type call struct {
	profile config.Profile
	bucket  string
	remote  bool
	params  provider.SearchParams
}

// Run executes the whole pipeline: fan out provider calls, normalize and
// dedup the raw hits, apply the filters, annotate, diff against the previous
// snapshot keys and order deterministically. One failing call contributes
// zero records plus one diagnostic; the others proceed.
func Run(ctx context.Context, pv SearchProvider, cfg config.Config, prevKeys map[string]bool) Result {
	calls := buildCalls(cfg)

	type slot struct {
		jobs []domain.Job
		err  string
	}
	slots := make([]slot, len(calls))

	// Calls run concurrently, but slots keep the caller-specified profile
	// order with the on-site bucket before remote. Dedup's first-occurrence
	// rule stays deterministic that way.
	var g errgroup.Group
	for i, c := range calls {
		i, c := i, c
		g.Go(func() error {
			raws, err := pv.Search(ctx, c.params)
			if err != nil {
				slots[i].err = fmt.Sprintf("%s (%s): %v", c.profile.Name, c.bucket, err)
				return nil
			}
			jobs := make([]domain.Job, 0, len(raws))
			for _, r := range raws {
				jobs = append(jobs, normalize.Normalize(normalize.Raw(r), pv.BaseURL(), c.profile.Name, c.bucket, c.remote))
			}
			slots[i].jobs = jobs
			return nil
		})
	}
	_ = g.Wait()

	var res Result
	var all []domain.Job
	for _, s := range slots {
		if s.err != "" {
			res.Errors = append(res.Errors, s.err)
		}
		all = append(all, s.jobs...)
	}

	jobs := normalize.Dedup(all)
	log.Debug().Int("raw", len(all)).Int("unique", len(jobs)).Msg("dedup")

	kw := rank.Keywords{
		Focus:      cfg.Keywords.Focus,
		Leadership: cfg.Keywords.Leadership,
		Negative:   cfg.Keywords.Negative,
	}

	if cfg.Scoring.HideIrrelevant {
		jobs = discard(jobs, rank.IsProbablyIrrelevant)
	}
	if cfg.Scoring.OnlyRelevant {
		jobs = discard(jobs, func(j domain.Job) bool {
			score, _ := rank.Score(j, kw, cfg.Scoring.HomeofficeBonus)
			return score < cfg.Scoring.MinScore
		})
	}

	for i := range jobs {
		annotate(&jobs[i], cfg, kw)
	}

	res.NewKeys = rank.NewKeys(jobs, prevKeys)
	for i := range jobs {
		jobs[i].New = res.NewKeys[jobs[i].Key]
	}

	rank.Order(jobs, cfg.Scoring.SortMode)
	res.Jobs = jobs

	log.Info().
		Int("hits", len(jobs)).
		Int("new", len(res.NewKeys)).
		Int("errors", len(res.Errors)).
		Msg("pipeline run complete")
	return res
}

func buildCalls(cfg config.Config) []call {
	var calls []call
	for _, p := range cfg.Profiles {
		calls = append(calls, call{
			profile: p,
			bucket:  fmt.Sprintf("Vor Ort (%d km)", cfg.Search.RadiusKm),
			params: provider.SearchParams{
				Location:   cfg.Search.Location,
				RadiusKm:   cfg.Search.RadiusKm,
				Query:      p.Query,
				MaxAgeDays: cfg.Search.MaxAgeDays,
				PageSize:   cfg.Search.PageSize,
			},
		})
		if cfg.Search.Homeoffice {
			calls = append(calls, call{
				profile: p,
				bucket:  fmt.Sprintf("Homeoffice (%d km)", cfg.Search.HomeofficeRadiusKm),
				remote:  true,
				params: provider.SearchParams{
					Location:   cfg.Search.Location,
					RadiusKm:   cfg.Search.HomeofficeRadiusKm,
					Query:      p.Query,
					MaxAgeDays: cfg.Search.MaxAgeDays,
					PageSize:   cfg.Search.PageSize,
					Homeoffice: true,
				},
			})
		}
	}
	return calls
}

func annotate(j *domain.Job, cfg config.Config, kw rank.Keywords) {
	j.Score, j.Breakdown = rank.Score(*j, kw, cfg.Scoring.HomeofficeBonus)

	if j.Coords != nil {
		d := geo.HaversineKm(cfg.Home.Lat, cfg.Home.Lon, j.Coords.Lat, j.Coords.Lon)
		j.DistanceKm = &d
	}
	j.TravelMin = geo.TravelMinutes(j.DistanceKm, cfg.Proximity.SpeedKmh)
	j.Tier = geo.Tier(j.DistanceKm, cfg.Proximity.NearKm, cfg.Proximity.MidKm)

	j.Org = rank.MatchOrg(cfg.Orgs, j.Company)
	j.Leadership = rank.LooksLeadership(*j)
}

func discard(jobs []domain.Job, drop func(domain.Job) bool) []domain.Job {
	out := jobs[:0]
	for _, j := range jobs {
		if !drop(j) {
			out = append(out, j)
		}
	}
	return out
}
