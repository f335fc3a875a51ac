// Package config holds the run configuration: feed sources, the theme
// keyword dictionaries, and the theme-to-stock reference data.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// FeedConfig identifies a single RSS source.
type FeedConfig struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Stock is one (display name, ticker) pair mapped under a theme.
type Stock struct {
	Name   string `json:"name"`
	Ticker string `json:"ticker"`
}

// QuoteConfig controls the quote provider.
type QuoteConfig struct {
	// Endpoint is the HTTP quote backend. Empty means use the seeded
	// offline provider.
	Endpoint string `json:"endpoint,omitempty"`

	// TimeoutSeconds bounds a single quote request.
	TimeoutSeconds int `json:"timeout_seconds"`

	// RatePerSecond throttles quote requests against the backend.
	RatePerSecond float64 `json:"rate_per_second"`
}

// Config is the full application configuration. Loaded once at startup and
// treated as read-only for the duration of a run.
type Config struct {
	Feeds []FeedConfig `json:"feeds"`

	// ThemeKeywords maps theme name -> lowercase keyword substrings.
	ThemeKeywords map[string][]string `json:"theme_keywords"`

	// ThemeStocks maps theme name -> ordered candidate stocks.
	ThemeStocks map[string][]Stock `json:"theme_stocks"`

	// NewsLimit caps how many deduplicated items feed the classifier.
	NewsLimit int `json:"news_limit"`

	// TopPicks caps the number of stock picks in the final report.
	TopPicks int `json:"top_picks"`

	// OutputDir receives the generated report files.
	OutputDir string `json:"output_dir"`

	// FilePrefix is prepended to generated report filenames.
	FilePrefix string `json:"file_prefix,omitempty"`

	Quotes QuoteConfig `json:"quotes"`

	// RunTimeoutSeconds bounds a full pipeline pass.
	RunTimeoutSeconds int `json:"run_timeout_seconds"`

	// MaxConcurrentFetches limits parallel feed and quote operations.
	MaxConcurrentFetches int `json:"max_concurrent_fetches"`

	// StorePath is the sqlite run-history database. Empty disables history.
	StorePath string `json:"store_path,omitempty"`
}

// DefaultConfig returns the built-in Korean market configuration.
func DefaultConfig() *Config {
	return &Config{
		Feeds: []FeedConfig{
			{Name: "한경 증권", URL: "https://www.hankyung.com/feed/finance"},
			{Name: "매경 증권", URL: "https://www.mk.co.kr/rss/50200011/"},
			{Name: "연합 경제", URL: "https://www.yna.co.kr/rss/economy.xml"},
		},
		ThemeKeywords: map[string][]string{
			"반도체":  {"반도체", "hbm", "파운드리", "웨이퍼", "d램", "낸드"},
			"AI":   {"ai", "인공지능", "챗봇", "생성형", "llm", "데이터센터"},
			"2차전지": {"2차전지", "배터리", "양극재", "음극재", "전고체", "리튬"},
			"바이오":  {"바이오", "신약", "임상", "제약", "항암"},
			"자동차":  {"자동차", "전기차", "자율주행", "모빌리티"},
			"로봇":   {"로봇", "협동로봇", "휴머노이드"},
			"방산":   {"방산", "방위", "미사일", "수출 계약"},
			"조선":   {"조선", "수주", "lng선", "컨테이너선"},
			"게임":   {"게임", "신작", "콘솔", "모바일게임"},
			"엔터":   {"엔터", "아이돌", "콘서트", "음반"},
		},
		ThemeStocks: map[string][]Stock{
			"반도체":  {{"삼성전자", "005930"}, {"SK하이닉스", "000660"}, {"한미반도체", "042700"}},
			"AI":   {{"네이버", "035420"}, {"카카오", "035720"}, {"폴라리스오피스", "041020"}},
			"2차전지": {{"LG에너지솔루션", "373220"}, {"삼성SDI", "006400"}, {"에코프로비엠", "247540"}},
			"바이오":  {{"삼성바이오로직스", "207940"}, {"셀트리온", "068270"}, {"알테오젠", "196170"}},
			"자동차":  {{"현대차", "005380"}, {"기아", "000270"}, {"현대모비스", "012330"}},
			"로봇":   {{"레인보우로보틱스", "277810"}, {"두산로보틱스", "454910"}},
			"방산":   {{"한화에어로스페이스", "012450"}, {"LIG넥스원", "079550"}, {"현대로템", "064350"}},
			"조선":   {{"HD한국조선해양", "009540"}, {"삼성중공업", "010140"}, {"한화오션", "042660"}},
			"게임":   {{"크래프톤", "259960"}, {"엔씨소프트", "036570"}, {"넷마블", "251270"}},
			"엔터":   {{"하이브", "352820"}, {"JYP Ent.", "035900"}, {"에스엠", "041510"}},
		},
		NewsLimit:            50,
		TopPicks:             5,
		OutputDir:            "reports",
		Quotes:               QuoteConfig{TimeoutSeconds: 5, RatePerSecond: 8},
		RunTimeoutSeconds:    120,
		MaxConcurrentFetches: 5,
		StorePath:            filepath.Join("reports", "history.db"),
	}
}

// Load reads config from the given path, or returns defaults if the file
// does not exist. A corrupt file is an error: silently dropping the user's
// theme dictionaries would change every score downstream.
//
// Sections present in the file replace the built-in values wholesale; a
// file's theme maps are the whole dictionary, never merged into the
// defaults. Omitted sections fall back to defaults, except store_path,
// which stays empty (history disabled) unless the file names a path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if len(cfg.ThemeKeywords) == 0 {
		return nil, fmt.Errorf("config %s: no theme keywords", path)
	}
	if len(cfg.ThemeStocks) == 0 {
		return nil, fmt.Errorf("config %s: no theme stocks", path)
	}

	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// applyEnv overrides selected fields from environment variables.
func (c *Config) applyEnv() {
	if dir := os.Getenv("THEMERADAR_OUTPUT_DIR"); dir != "" {
		c.OutputDir = dir
	}
	if endpoint := os.Getenv("THEMERADAR_QUOTE_ENDPOINT"); endpoint != "" {
		c.Quotes.Endpoint = endpoint
	}
	if limit := os.Getenv("THEMERADAR_NEWS_LIMIT"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 {
			c.NewsLimit = n
		}
	}
	if top := os.Getenv("THEMERADAR_TOP_PICKS"); top != "" {
		if n, err := strconv.Atoi(top); err == nil && n > 0 {
			c.TopPicks = n
		}
	}
	if feeds := os.Getenv("THEMERADAR_FEEDS"); feeds != "" {
		var list []FeedConfig
		if err := json.Unmarshal([]byte(feeds), &list); err == nil && len(list) > 0 {
			c.Feeds = list
		}
	}
}

// applyDefaults fills sections a partial config file omitted. A nil map
// means the section was absent; an explicitly empty one is kept as-is so
// Load can reject it.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Feeds == nil {
		c.Feeds = def.Feeds
	}
	if c.ThemeKeywords == nil {
		c.ThemeKeywords = def.ThemeKeywords
	}
	if c.ThemeStocks == nil {
		c.ThemeStocks = def.ThemeStocks
	}
	if c.NewsLimit <= 0 {
		c.NewsLimit = 50
	}
	if c.TopPicks <= 0 {
		c.TopPicks = 5
	}
	if c.OutputDir == "" {
		c.OutputDir = "reports"
	}
	if c.Quotes.TimeoutSeconds <= 0 {
		c.Quotes.TimeoutSeconds = 5
	}
	if c.Quotes.RatePerSecond <= 0 {
		c.Quotes.RatePerSecond = 8
	}
	if c.RunTimeoutSeconds <= 0 {
		c.RunTimeoutSeconds = 120
	}
	if c.MaxConcurrentFetches <= 0 {
		c.MaxConcurrentFetches = 5
	}
}
