// Package report persists the theme report and stock picks to disk, as
// BOM-prefixed CSV for spreadsheets and as structured JSON.
package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jaehoon-dev/themeradar/internal/feeds"
	"github.com/jaehoon-dev/themeradar/internal/logging"
	"github.com/jaehoon-dev/themeradar/internal/scoring"
)

// utf8BOM makes Excel detect UTF-8 in the CSV files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Files lists the four artifacts written for one run.
type Files struct {
	ThemeCSV  string
	ThemeJSON string
	PicksCSV  string
	PicksJSON string
}

// Writer persists run artifacts under a directory. All four files of a run
// share one generation timestamp; re-running within the same second may
// collide, which is accepted rather than guarded.
type Writer struct {
	dir    string
	prefix string
	now    func() time.Time
}

// NewWriter creates a Writer. The prefix may be empty.
func NewWriter(dir, prefix string) *Writer {
	return &Writer{dir: dir, prefix: prefix, now: time.Now}
}

// Write persists the theme report and picks. The directory is created if
// missing. CSVs are written before JSONs; if JSON serialization fails the
// CSVs stay on disk, there is no rollback across artifacts.
func (w *Writer) Write(ctx context.Context, rows []scoring.ReportRow, picks []scoring.Pick) (Files, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return Files{}, fmt.Errorf("create output dir: %w", err)
	}

	generated := w.now().In(feeds.ReportZone(ctx))
	stamp := generated.Format("20060102_150405")

	files := Files{
		ThemeCSV:  w.path("theme_report", stamp, "csv"),
		ThemeJSON: w.path("theme_report", stamp, "json"),
		PicksCSV:  w.path("stock_picks", stamp, "csv"),
		PicksJSON: w.path("stock_picks", stamp, "json"),
	}

	if err := writeCSV(files.ThemeCSV, themeHeader, themeRecords(rows)); err != nil {
		return files, fmt.Errorf("write theme csv: %w", err)
	}
	if err := writeCSV(files.PicksCSV, pickHeader, pickRecords(picks)); err != nil {
		return files, fmt.Errorf("write picks csv: %w", err)
	}

	if err := writeJSON(files.ThemeJSON, themeDoc{GeneratedAt: generated, Themes: rows}); err != nil {
		return files, fmt.Errorf("write theme json: %w", err)
	}
	if err := writeJSON(files.PicksJSON, picksDoc{GeneratedAt: generated, Picks: pickDocs(picks)}); err != nil {
		return files, fmt.Errorf("write picks json: %w", err)
	}

	logging.Info("report written", "dir", w.dir, "stamp", stamp,
		"themes", len(rows), "picks", len(picks))

	return files, nil
}

func (w *Writer) path(kind, stamp, ext string) string {
	return filepath.Join(w.dir, fmt.Sprintf("%s%s_%s.%s", w.prefix, kind, stamp, ext))
}

var themeHeader = []string{"테마", "뉴스 수", "평균 등락률(%)", "투자강도", "위험등급"}

func themeRecords(rows []scoring.ReportRow) [][]string {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.Theme,
			strconv.Itoa(r.NewsCount),
			strconv.FormatFloat(r.AvgDeltaPct, 'f', 2, 64),
			strconv.FormatFloat(r.Strength, 'f', 1, 64),
			strconv.Itoa(r.RiskTier),
		})
	}
	return records
}

var pickHeader = []string{"테마", "종목명", "티커", "등락률(%)", "뉴스 빈도", "AI 점수", "거래량"}

func pickRecords(picks []scoring.Pick) [][]string {
	records := make([][]string, 0, len(picks))
	for _, p := range picks {
		volume := ""
		if p.Volume.Valid {
			volume = strconv.FormatInt(p.Volume.Value, 10)
		}
		records = append(records, []string{
			p.Theme,
			p.StockName,
			p.Ticker,
			strconv.FormatFloat(p.ChangePct, 'f', 2, 64),
			strconv.Itoa(p.NewsCount),
			strconv.FormatFloat(p.AIScore, 'f', 2, 64),
			volume,
		})
	}
	return records
}

// writeCSV writes a BOM-prefixed CSV file with a header row.
func writeCSV(path string, header []string, records [][]string) error {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	cw := csv.NewWriter(&buf)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(records); err != nil {
		return err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	return os.WriteFile(path, buf.Bytes(), 0644)
}

type themeDoc struct {
	GeneratedAt time.Time           `json:"generated_at"`
	Themes      []scoring.ReportRow `json:"themes"`
}

// pickDoc mirrors scoring.Pick with volume made optional for JSON output.
type pickDoc struct {
	Theme     string  `json:"theme"`
	StockName string  `json:"stock_name"`
	Ticker    string  `json:"ticker"`
	ChangePct float64 `json:"change_pct"`
	NewsCount int     `json:"news_count"`
	AIScore   float64 `json:"ai_score"`
	Volume    *int64  `json:"volume,omitempty"`
}

type picksDoc struct {
	GeneratedAt time.Time `json:"generated_at"`
	Picks       []pickDoc `json:"picks"`
}

func pickDocs(picks []scoring.Pick) []pickDoc {
	docs := make([]pickDoc, 0, len(picks))
	for _, p := range picks {
		doc := pickDoc{
			Theme:     p.Theme,
			StockName: p.StockName,
			Ticker:    p.Ticker,
			ChangePct: p.ChangePct,
			NewsCount: p.NewsCount,
			AIScore:   p.AIScore,
		}
		if p.Volume.Valid {
			v := p.Volume.Value
			doc.Volume = &v
		}
		docs = append(docs, doc)
	}
	return docs
}

func writeJSON(path string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
