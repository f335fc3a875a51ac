package feeds

import (
	"context"
	"testing"
	"time"
)

func TestNormalizeMissingFields(t *testing.T) {
	n := NewNormalizer(nil)

	item := n.Normalize(context.Background(), Entry{})

	if item.Title != "" || item.Link != "" || item.Description != "" {
		t.Errorf("empty entry should normalize to empty strings, got %+v", item)
	}
	if !item.Published.IsZero() {
		t.Errorf("missing published time should stay zero, got %v", item.Published)
	}
	if item.Recency != "" {
		t.Errorf("missing published time should render empty recency, got %q", item.Recency)
	}
}

func TestNormalizeUnparseableTime(t *testing.T) {
	n := NewNormalizer(nil)

	item := n.Normalize(context.Background(), Entry{
		Title:     "테스트",
		Published: "not a timestamp",
	})

	if !item.Published.IsZero() {
		t.Errorf("unparseable time should stay zero, got %v", item.Published)
	}
	if item.Recency != "" {
		t.Errorf("unparseable time should render empty recency, got %q", item.Recency)
	}
}

func TestNormalizeConvertsToReportZone(t *testing.T) {
	n := NewNormalizer(nil)

	item := n.Normalize(context.Background(), Entry{
		Published: "Mon, 02 Jan 2006 15:04:05 +0000",
	})

	if item.Published.IsZero() {
		t.Fatal("expected parseable time")
	}
	_, offset := item.Published.Zone()
	if offset != 9*60*60 {
		t.Errorf("published time should be in UTC+9, got offset %d", offset)
	}
}

func TestTableStripper(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"실적<br>발표", "실적 발표"},
		{"<p>본문</p>", "본문"},
		{"앞<br/>뒤", "앞 뒤"},
		{"마크업 없음", "마크업 없음"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := TableStripper{}.Strip(tt.in)
			if got != tt.want {
				t.Errorf("Strip(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestGoqueryStripper(t *testing.T) {
	got := GoqueryStripper{}.Strip(`<p>삼성전자 <b>실적</b> 발표</p>`)
	if got != "삼성전자 실적 발표" {
		t.Errorf("Strip() = %q, want %q", got, "삼성전자 실적 발표")
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, KST)

	tests := []struct {
		name      string
		published time.Time
		want      string
	}{
		{"just now", now.Add(-30 * time.Second), "방금 전"},
		{"future counts as just now", now.Add(time.Minute), "방금 전"},
		{"minutes", now.Add(-5 * time.Minute), "5분 전"},
		{"fifty nine minutes", now.Add(-59 * time.Minute), "59분 전"},
		{"one hour", now.Add(-60 * time.Minute), "1시간 전"},
		{"floor hours", now.Add(-119 * time.Minute), "1시간 전"},
		{"two hours", now.Add(-2 * time.Hour), "2시간 전"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := relativeTime(now, tt.published)
			if got != tt.want {
				t.Errorf("relativeTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReportZoneDefault(t *testing.T) {
	loc := ReportZone(context.Background())
	_, offset := time.Now().In(loc).Zone()
	if offset != 9*60*60 {
		t.Errorf("default report zone should be UTC+9, got offset %d", offset)
	}

	custom := time.FixedZone("TEST", 3600)
	ctx := WithReportZone(context.Background(), custom)
	if got := ReportZone(ctx); got != custom {
		t.Errorf("ReportZone should return the context value")
	}
}
