package scoring

import (
	"context"
	"testing"

	"github.com/jaehoon-dev/themeradar/internal/config"
	"github.com/jaehoon-dev/themeradar/internal/quotes"
	"github.com/jaehoon-dev/themeradar/internal/themes"
)

func TestPickStocksEligibility(t *testing.T) {
	provider := fakeProvider{quotes: map[string]quotes.Quote{
		"NOQUOTE":  {},
		"LOWVOL":   fullQuote(105, 100, 10_000),  // volume below 30k
		"OUTLIER":  fullQuote(150, 100, 100_000), // +50% change
		"ELIGIBLE": fullQuote(110, 100, 100_000), // +10%
	}}

	counts := []themes.Count{{Theme: "테마", Count: 10}}
	stockMap := map[string][]config.Stock{
		"테마": {
			{Name: "무시세", Ticker: "NOQUOTE"},
			{Name: "저유동", Ticker: "LOWVOL"},
			{Name: "이상치", Ticker: "OUTLIER"},
			{Name: "적격", Ticker: "ELIGIBLE"},
		},
	}

	picks := PickStocks(context.Background(), counts, stockMap, provider, 5, 4)

	if len(picks) != 1 {
		t.Fatalf("expected 1 pick, got %d", len(picks))
	}
	if picks[0].Ticker != "ELIGIBLE" {
		t.Errorf("only the eligible stock should be picked, got %s", picks[0].Ticker)
	}
}

func TestPickStocksMissingVolumePasses(t *testing.T) {
	q := quotes.Quote{
		Last: quotes.Float{Value: 105, Valid: true},
		Prev: quotes.Float{Value: 100, Valid: true},
	}
	provider := fakeProvider{quotes: map[string]quotes.Quote{"NOVOL": q}}

	counts := []themes.Count{{Theme: "테마", Count: 4}}
	stockMap := map[string][]config.Stock{"테마": {{Name: "무거래량", Ticker: "NOVOL"}}}

	picks := PickStocks(context.Background(), counts, stockMap, provider, 5, 4)

	if len(picks) != 1 {
		t.Fatalf("unknown volume must not reject, got %d picks", len(picks))
	}
	if picks[0].HasVolume() {
		t.Error("pick should report volume as absent")
	}
}

func TestPickStocksScoreAndCapping(t *testing.T) {
	// +30% is inside the 35% outlier bound but above the 25% scoring cap.
	provider := fakeProvider{quotes: map[string]quotes.Quote{
		"X": fullQuote(130, 100, 100_000),
	}}
	counts := []themes.Count{{Theme: "테마", Count: 20}}
	stockMap := map[string][]config.Stock{"테마": {{Name: "엑스", Ticker: "X"}}}

	picks := PickStocks(context.Background(), counts, stockMap, provider, 5, 4)

	if len(picks) != 1 {
		t.Fatalf("expected 1 pick, got %d", len(picks))
	}
	p := picks[0]
	if p.ChangePct < 29.99 || p.ChangePct > 30.01 {
		t.Errorf("reported change must stay uncapped, got %f", p.ChangePct)
	}
	// score = 1.0*0.4 + (25/25)*0.6 = 1.0 -> ai 100
	if p.AIScore != 100.0 {
		t.Errorf("ai score = %f, want 100.0", p.AIScore)
	}
}

func TestPickStocksNegativeScoreStillPicked(t *testing.T) {
	// A modest decline on a quiet news day yields a negative score; the
	// theme's only eligible stock must still be selected.
	provider := fakeProvider{quotes: map[string]quotes.Quote{
		"DOWN": fullQuote(90, 100, 100_000), // -10%
	}}
	counts := []themes.Count{{Theme: "테마", Count: 1}}
	stockMap := map[string][]config.Stock{"테마": {{Name: "하락", Ticker: "DOWN"}}}

	picks := PickStocks(context.Background(), counts, stockMap, provider, 5, 4)

	if len(picks) != 1 {
		t.Fatalf("eligible stock with a negative score must be picked, got %d picks", len(picks))
	}
	// score = 0.05*0.4 + (-10/25)*0.6 = -0.22 -> ai -22
	if got := picks[0].AIScore; got < -22.01 || got > -21.99 {
		t.Errorf("ai score = %f, want -22.0", got)
	}
}

func TestPickStocksNegativeTiePrefersHigher(t *testing.T) {
	// Both candidates score negative; the less negative one wins.
	provider := fakeProvider{quotes: map[string]quotes.Quote{
		"WORSE":  fullQuote(80, 100, 100_000), // -20%
		"BETTER": fullQuote(95, 100, 100_000), // -5%
	}}
	counts := []themes.Count{{Theme: "테마", Count: 2}}
	stockMap := map[string][]config.Stock{
		"테마": {{Name: "더하락", Ticker: "WORSE"}, {Name: "덜하락", Ticker: "BETTER"}},
	}

	picks := PickStocks(context.Background(), counts, stockMap, provider, 5, 4)

	if len(picks) != 1 {
		t.Fatalf("expected 1 pick, got %d", len(picks))
	}
	if picks[0].Ticker != "BETTER" {
		t.Errorf("higher of two negative scores should win, got %s", picks[0].Ticker)
	}
}

func TestPickStocksTieKeepsInputOrder(t *testing.T) {
	// Identical quotes: strict-greater-than means the first stock wins.
	q := fullQuote(110, 100, 100_000)
	provider := fakeProvider{quotes: map[string]quotes.Quote{"A": q, "B": q}}

	counts := []themes.Count{{Theme: "테마", Count: 6}}
	stockMap := map[string][]config.Stock{"테마": {{Name: "첫째", Ticker: "A"}, {Name: "둘째", Ticker: "B"}}}

	picks := PickStocks(context.Background(), counts, stockMap, provider, 5, 4)

	if len(picks) != 1 {
		t.Fatalf("one pick per theme, got %d", len(picks))
	}
	if picks[0].Ticker != "A" {
		t.Errorf("tie should keep input stock order, got %s", picks[0].Ticker)
	}
}

func TestPickStocksOnePerThemeSortedAcross(t *testing.T) {
	provider := fakeProvider{quotes: map[string]quotes.Quote{
		"LOW":  fullQuote(101, 100, 100_000), // +1%
		"HIGH": fullQuote(120, 100, 100_000), // +20%
	}}

	counts := []themes.Count{
		{Theme: "먼저", Count: 10},
		{Theme: "나중", Count: 10},
	}
	stockMap := map[string][]config.Stock{
		"먼저": {{Name: "로우", Ticker: "LOW"}},
		"나중": {{Name: "하이", Ticker: "HIGH"}},
	}

	picks := PickStocks(context.Background(), counts, stockMap, provider, 5, 4)

	if len(picks) != 2 {
		t.Fatalf("expected 2 picks, got %d", len(picks))
	}
	if picks[0].Theme != "나중" {
		t.Errorf("picks must sort by ai score across themes, got %s first", picks[0].Theme)
	}
}

func TestPickStocksTopN(t *testing.T) {
	provider := fakeProvider{quotes: map[string]quotes.Quote{
		"A": fullQuote(110, 100, 100_000),
		"B": fullQuote(108, 100, 100_000),
		"C": fullQuote(106, 100, 100_000),
	}}

	counts := []themes.Count{
		{Theme: "t1", Count: 5},
		{Theme: "t2", Count: 5},
		{Theme: "t3", Count: 5},
	}
	stockMap := map[string][]config.Stock{
		"t1": {{Name: "에이", Ticker: "A"}},
		"t2": {{Name: "비", Ticker: "B"}},
		"t3": {{Name: "씨", Ticker: "C"}},
	}

	picks := PickStocks(context.Background(), counts, stockMap, provider, 2, 4)

	if len(picks) != 2 {
		t.Fatalf("topN=2 should cap output, got %d", len(picks))
	}
	if picks[0].Ticker != "A" || picks[1].Ticker != "B" {
		t.Errorf("top two scores should survive, got %s, %s", picks[0].Ticker, picks[1].Ticker)
	}
}

func TestPickStocksThemeWindowIsEight(t *testing.T) {
	provider := fakeProvider{quotes: map[string]quotes.Quote{
		"Q": fullQuote(105, 100, 100_000),
	}}

	var counts []themes.Count
	stockMap := map[string][]config.Stock{}
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"} {
		counts = append(counts, themes.Count{Theme: name, Count: 1})
		stockMap[name] = []config.Stock{{Name: "큐", Ticker: "Q"}}
	}

	picks := PickStocks(context.Background(), counts, stockMap, provider, 100, 4)

	if len(picks) != 8 {
		t.Errorf("themes beyond the first 8 must be ignored, got %d picks", len(picks))
	}
	for _, p := range picks {
		if p.Theme == "i" {
			t.Error("ninth theme should not be considered")
		}
	}
}

func TestPickStocksNoEligibleThemes(t *testing.T) {
	provider := fakeProvider{}
	counts := []themes.Count{{Theme: "테마", Count: 3}}
	stockMap := map[string][]config.Stock{"테마": {{Name: "에이", Ticker: "A"}}}

	picks := PickStocks(context.Background(), counts, stockMap, provider, 5, 4)
	if len(picks) != 0 {
		t.Errorf("no eligible candidates should yield no picks, got %d", len(picks))
	}
}
