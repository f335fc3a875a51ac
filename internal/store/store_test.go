package store

import (
	"testing"
	"time"

	"github.com/jaehoon-dev/themeradar/internal/quotes"
	"github.com/jaehoon-dev/themeradar/internal/scoring"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGetRun(t *testing.T) {
	s := openTestStore(t)

	rows := []scoring.ReportRow{
		{Theme: "반도체", NewsCount: 12, AvgDeltaPct: 3.25, Strength: 4.1, RiskTier: 1},
		{Theme: "AI", NewsCount: 8, AvgDeltaPct: -1.5, Strength: 2.3, RiskTier: 4},
	}
	picks := []scoring.Pick{
		{
			Theme: "반도체", StockName: "삼성전자", Ticker: "005930",
			ChangePct: 2.75, NewsCount: 12, AIScore: 72.5,
			Volume: quotes.Int{Value: 1234567, Valid: true},
		},
		{
			Theme: "AI", StockName: "네이버", Ticker: "035420",
			ChangePct: -0.5, NewsCount: 8, AIScore: 14.8,
		},
	}

	id, err := s.SaveRun(time.Now(), 42, rows, picks)
	if err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if id == "" {
		t.Fatal("SaveRun should return a run id")
	}

	run, err := s.GetRun(id)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}

	if run.NewsCount != 42 {
		t.Errorf("news count = %d, want 42", run.NewsCount)
	}
	if len(run.Themes) != 2 || run.Themes[0] != rows[0] || run.Themes[1] != rows[1] {
		t.Errorf("theme rows not round-tripped: %+v", run.Themes)
	}
	if len(run.Picks) != 2 {
		t.Fatalf("expected 2 picks, got %d", len(run.Picks))
	}
	if !run.Picks[0].Volume.Valid || run.Picks[0].Volume.Value != 1234567 {
		t.Errorf("known volume lost: %+v", run.Picks[0].Volume)
	}
	if run.Picks[1].Volume.Valid {
		t.Errorf("absent volume should stay absent: %+v", run.Picks[1].Volume)
	}
}

func TestRecentRunsOrder(t *testing.T) {
	s := openTestStore(t)

	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		id, err := s.SaveRun(base.Add(time.Duration(i)*time.Hour), i, nil, nil)
		if err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
		ids = append(ids, id)
	}

	runs, err := s.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("limit not applied, got %d runs", len(runs))
	}
	if runs[0].ID != ids[2] || runs[1].ID != ids[1] {
		t.Errorf("runs not ordered newest first: %v", runs)
	}
}

func TestGetRunMissing(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.GetRun("nope"); err == nil {
		t.Error("missing run should return an error")
	}
}
