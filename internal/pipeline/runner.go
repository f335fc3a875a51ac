// Package pipeline orchestrates one full pass: fetch, normalize, dedup,
// classify, score, pick, persist.
package pipeline

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jaehoon-dev/themeradar/internal/config"
	"github.com/jaehoon-dev/themeradar/internal/feeds"
	"github.com/jaehoon-dev/themeradar/internal/logging"
	"github.com/jaehoon-dev/themeradar/internal/quotes"
	"github.com/jaehoon-dev/themeradar/internal/report"
	"github.com/jaehoon-dev/themeradar/internal/scoring"
	"github.com/jaehoon-dev/themeradar/internal/store"
	"github.com/jaehoon-dev/themeradar/internal/themes"
)

// sourceTimeout bounds a single feed fetch.
const sourceTimeout = 30 * time.Second

// Result is the outcome of one pipeline pass.
type Result struct {
	RunID     string // empty when history is disabled
	NewsCount int    // deduplicated items fed to the classifier
	Counts    []themes.Count
	Themes    []scoring.ReportRow
	Picks     []scoring.Pick
	Files     report.Files
}

// Runner wires the pipeline stages together. Sources and provider are
// injected so offline runs stay deterministic.
type Runner struct {
	cfg        *config.Config
	sources    []feeds.Source
	provider   quotes.Provider
	history    *store.Store // optional: nil disables run history
	normalizer *feeds.Normalizer
	filter     *feeds.Filter
	classifier *themes.Classifier
	writer     *report.Writer
}

// NewRunner creates a Runner. history may be nil.
func NewRunner(cfg *config.Config, sources []feeds.Source, provider quotes.Provider, history *store.Store) *Runner {
	return &Runner{
		cfg:        cfg,
		sources:    sources,
		provider:   provider,
		history:    history,
		normalizer: feeds.NewNormalizer(feeds.GoqueryStripper{}),
		filter:     feeds.DefaultFilter(),
		classifier: themes.NewClassifier(cfg.ThemeKeywords),
		writer:     report.NewWriter(cfg.OutputDir, cfg.FilePrefix),
	}
}

// Run executes one full pass. Classification, scoring and selection always
// produce a well-formed result; only persistence failures are returned,
// after the in-memory result has been computed.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.RunTimeoutSeconds)*time.Second)
	defer cancel()

	items := r.fetchAll(ctx)
	items = r.filter.FilterItems(items)
	items = feeds.Dedup(items, r.cfg.NewsLimit)
	logging.Info("news collected", "items", len(items))

	counts := r.classifier.Classify(items)
	logging.Info("themes detected", "themes", len(counts))

	// One quote snapshot per run: the report average and the pick change
	// for a ticker must come from the same prices, and the backend is hit
	// at most once per ticker.
	provider := quotes.NewCachedProvider(r.provider)
	rows := scoring.BuildReport(ctx, counts, r.cfg.ThemeStocks, provider, r.cfg.MaxConcurrentFetches)
	picks := scoring.PickStocks(ctx, counts, r.cfg.ThemeStocks, provider, r.cfg.TopPicks, r.cfg.MaxConcurrentFetches)

	result := Result{
		NewsCount: len(items),
		Counts:    counts,
		Themes:    rows,
		Picks:     picks,
	}

	files, err := r.writer.Write(ctx, rows, picks)
	result.Files = files
	if err != nil {
		// The in-memory result is complete; a silent persistence failure
		// would hide data loss, so it surfaces to the caller.
		return result, err
	}

	if r.history != nil {
		runID, err := r.history.SaveRun(time.Now(), len(items), rows, picks)
		if err != nil {
			logging.Warn("run history save failed", "err", err)
		} else {
			result.RunID = runID
		}
	}

	return result, nil
}

// fetchAll fetches every source in parallel and normalizes the entries.
// A failing source contributes zero items, never an error: an absent feed
// is the same as an empty one.
func (r *Runner) fetchAll(ctx context.Context) []feeds.Item {
	// Batches are indexed by source so the merged order only depends on
	// configuration, not on which fetch finishes first.
	batches := make([][]feeds.Item, len(r.sources))

	var g errgroup.Group
	g.SetLimit(r.cfg.MaxConcurrentFetches)

	for i, src := range r.sources {
		i, src := i, src // per-iteration copies for Go <1.22 loop semantics
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}

			fetchCtx, cancel := context.WithTimeout(ctx, sourceTimeout)
			defer cancel()

			entries, err := src.Fetch(fetchCtx)
			if err != nil {
				logging.Warn("feed fetch failed", "source", src.Name(), "err", err)
				return nil // never fail the group - errors reported per-source
			}

			normalized := make([]feeds.Item, 0, len(entries))
			for _, e := range entries {
				normalized = append(normalized, r.normalizer.Normalize(ctx, e))
			}
			batches[i] = normalized

			logging.Debug("feed fetched", "source", src.Name(), "entries", len(entries))
			return nil
		})
	}

	_ = g.Wait()

	var items []feeds.Item
	for _, batch := range batches {
		items = append(items, batch...)
	}
	return items
}
