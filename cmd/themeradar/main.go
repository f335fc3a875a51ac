// themeradar runs one news-theme scoring pass: it ingests the configured
// feeds, clusters headlines into themes, scores candidate stocks per theme,
// and writes the theme report and pick list to disk.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jaehoon-dev/themeradar/internal/config"
	"github.com/jaehoon-dev/themeradar/internal/feeds"
	"github.com/jaehoon-dev/themeradar/internal/feeds/rss"
	"github.com/jaehoon-dev/themeradar/internal/feeds/seeded"
	"github.com/jaehoon-dev/themeradar/internal/logging"
	"github.com/jaehoon-dev/themeradar/internal/pipeline"
	"github.com/jaehoon-dev/themeradar/internal/quotes"
	"github.com/jaehoon-dev/themeradar/internal/store"
)

func main() {
	configPath := flag.String("config", "config.json", "path to config file")
	outDir := flag.String("out", "", "override output directory")
	offline := flag.Bool("offline", false, "use seeded feed and quote data (no network)")
	seed := flag.Int64("seed", 1, "seed for offline mode")
	flag.Parse()

	if err := logging.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}
	defer logging.Close()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal("Failed to load config: %v", err)
	}
	if *outDir != "" {
		cfg.OutputDir = *outDir
	}

	sources := buildSources(cfg, *offline, *seed)
	provider := buildProvider(cfg, *offline, *seed)

	var history *store.Store
	if cfg.StorePath != "" {
		history, err = store.Open(cfg.StorePath)
		if err != nil {
			logging.Warn("run history disabled", "err", err)
		} else {
			defer history.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = feeds.WithReportZone(ctx, feeds.KST)

	runner := pipeline.NewRunner(cfg, sources, provider, history)
	result, err := runner.Run(ctx)
	if err != nil {
		fatal("Report persistence failed: %v", err)
	}

	printSummary(result)
}

// buildSources returns seeded sources offline, RSS sources otherwise.
func buildSources(cfg *config.Config, offline bool, seed int64) []feeds.Source {
	if offline {
		return []feeds.Source{seeded.New("오프라인 피드", seed)}
	}

	sources := make([]feeds.Source, 0, len(cfg.Feeds))
	for _, f := range cfg.Feeds {
		sources = append(sources, rss.New(f.Name, f.URL, 15*time.Second))
	}
	return sources
}

// buildProvider returns the HTTP quote client when an endpoint is
// configured, otherwise the deterministic seeded provider.
func buildProvider(cfg *config.Config, offline bool, seed int64) quotes.Provider {
	if !offline && cfg.Quotes.Endpoint != "" {
		return quotes.NewHTTPProvider(
			cfg.Quotes.Endpoint,
			time.Duration(cfg.Quotes.TimeoutSeconds)*time.Second,
			cfg.Quotes.RatePerSecond,
		)
	}
	return quotes.NewSeededProvider(seed)
}

func printSummary(result pipeline.Result) {
	fmt.Printf("뉴스 %d건 분석, 테마 %d개 감지\n\n", result.NewsCount, len(result.Counts))

	fmt.Println("== 테마 리포트 ==")
	for _, row := range result.Themes {
		fmt.Printf("  %-12s 뉴스 %2d건  평균 %+6.2f%%  강도 %.1f  위험 %d\n",
			row.Theme, row.NewsCount, row.AvgDeltaPct, row.Strength, row.RiskTier)
	}

	fmt.Println("\n== 추천 종목 ==")
	for i, p := range result.Picks {
		volume := "-"
		if p.HasVolume() {
			volume = fmt.Sprintf("%d", p.Volume.Value)
		}
		fmt.Printf("  %d. [%s] %s (%s)  %+.2f%%  AI %.2f  거래량 %s\n",
			i+1, p.Theme, p.StockName, p.Ticker, p.ChangePct, p.AIScore, volume)
	}

	fmt.Printf("\n리포트 저장: %s\n", result.Files.ThemeCSV)
}

func fatal(format string, args ...interface{}) {
	logging.Error(fmt.Sprintf(format, args...))
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
