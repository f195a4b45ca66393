// Package aggregate orchestrates one discovery run: it dispatches every
// eligible source adapter concurrently, collects partial results and
// per-source outcomes, and drives normalization and deduplication into a
// single AggregationResult. No source failure is fatal; the worst outcome
// is an empty result with all-error outcomes, which is valid.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/jobradar/internal/config"
	"github.com/jonathan/jobradar/internal/dedupe"
	"github.com/jonathan/jobradar/internal/fetch"
	"github.com/jonathan/jobradar/internal/normalize"
	"github.com/jonathan/jobradar/internal/ratelimit"
	"github.com/jonathan/jobradar/internal/search"
	"github.com/jonathan/jobradar/internal/sources"
	"github.com/jonathan/jobradar/internal/types"
)

// Per-run ceilings on external call volume.
const (
	// maxSearchQueries bounds generated search-engine queries per run
	maxSearchQueries = 10
	// maxTargetCompanies bounds career-page lookups per run
	maxTargetCompanies = 30
)

// Aggregator owns the shared HTTP client and the source registry for
// discovery runs. Create one per process, Close when done.
type Aggregator struct {
	client  *fetch.Client
	sources []sources.Source
	budget  time.Duration
}

// New wires an Aggregator from configuration: shared client, search
// provider (Serper when its key is present, Google Custom Search as the
// alternative), per-source limiters, and all eight source adapters.
// Keyed adapters are still registered without a credential so their
// unavailability shows up in outcomes.
func New(ctx context.Context, cfg *config.Config) (*Aggregator, error) {
	if cfg == nil {
		cfg = &config.Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := fetch.NewClient(&fetch.Options{Timeout: cfg.FetchTimeoutOrDefault()})

	var provider search.Provider
	switch {
	case cfg.SerperAPIKey != "":
		provider = search.NewSerper(client, cfg.SerperAPIKey, "")
	case cfg.GoogleAPIKey != "":
		google, err := search.NewGoogle(ctx, cfg.GoogleAPIKey, cfg.GoogleCX)
		if err != nil {
			return nil, err
		}
		provider = google
	}

	var render sources.Renderer
	if cfg.UseBrowser {
		verbose := cfg.Verbose
		render = func(ctx context.Context, url string, timeout time.Duration) (string, error) {
			return fetch.RenderPage(ctx, url, timeout, verbose)
		}
	}

	// Serper enforces ~1 req/s; resolution and query calls share one
	// limiter because they hit the same host.
	searchLimiter := searchPacer(cfg)

	registry := []sources.Source{
		sources.NewCareers(client, provider, searchLimiter),
		sources.NewSerper(provider, searchLimiter),
		sources.NewRemoteOK(client, ""),
		sources.NewWeWorkRemotely(client, ""),
		sources.NewWellfound(client, "", render),
		sources.NewWorkAtAStartup(client, ""),
		sources.NewHNJobs(client, ""),
		sources.NewRemoteCo(client, ""),
	}

	return &Aggregator{
		client:  client,
		sources: registry,
		budget:  cfg.RunBudgetOrDefault(),
	}, nil
}

// searchPacer builds the limiter shared by the search-backed adapters. A
// configured burst selects the token bucket; otherwise requests are evenly
// spaced at the configured rate.
func searchPacer(cfg *config.Config) ratelimit.Limiter {
	if cfg.SearchBurst > 0 {
		return ratelimit.NewTokenBucket(cfg.SearchBurst, cfg.SearchRateOrDefault())
	}
	return ratelimit.PerSecond(cfg.SearchRateOrDefault())
}

// Close releases pooled network resources.
func (a *Aggregator) Close() {
	if a.client != nil {
		a.client.Close()
	}
}

// sourceRun is one source's slot in the fan-out. Each goroutine writes
// only its own slot, so no locking is needed.
type sourceRun struct {
	postings []types.RawPosting
	err      error
}

// Discover runs one aggregation for the profile. It always returns a
// result, even when every source fails or returns nothing.
func (a *Aggregator) Discover(ctx context.Context, profile *types.SearchProfile) (*types.AggregationResult, error) {
	if profile == nil {
		return nil, fmt.Errorf("profile is required")
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid search profile: %w", err)
	}

	started := time.Now()
	bounded := boundProfile(profile)

	runCtx, cancel := context.WithTimeout(ctx, a.budget)
	defer cancel()

	runs := make([]sourceRun, len(a.sources))
	var g errgroup.Group
	for i, src := range a.sources {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					runs[i].err = fmt.Errorf("source panicked: %v", r)
				}
			}()
			runs[i].postings, runs[i].err = src.Fetch(runCtx, bounded)
			return nil
		})
	}
	_ = g.Wait() // goroutines report through their slots, never an error

	var all []types.RawPosting
	outcomes := make(map[types.Source]types.SourceOutcome, len(a.sources))
	for i, src := range a.sources {
		run := runs[i]
		all = append(all, run.postings...)

		outcome := types.SourceOutcome{
			Source: src.Name(),
			Count:  len(run.postings),
		}
		if run.err != nil {
			outcome.Err = run.err.Error()
			outcome.Unavailable = errors.Is(run.err, sources.ErrUnavailable)
		}
		outcomes[src.Name()] = outcome
	}

	unique := dedupe.Postings(normalize.Postings(all))

	return &types.AggregationResult{
		RunID:    uuid.NewString(),
		Postings: unique,
		Outcomes: outcomes,
		Total:    len(unique),
		Elapsed:  time.Since(started),
	}, nil
}

// boundProfile applies the per-run query ceilings without mutating the
// caller's profile.
func boundProfile(profile *types.SearchProfile) *types.SearchProfile {
	bounded := *profile
	if len(bounded.SearchQueries) > maxSearchQueries {
		bounded.SearchQueries = bounded.SearchQueries[:maxSearchQueries]
	}
	if len(bounded.TargetCompanies) > maxTargetCompanies {
		bounded.TargetCompanies = bounded.TargetCompanies[:maxTargetCompanies]
	}
	return &bounded
}
