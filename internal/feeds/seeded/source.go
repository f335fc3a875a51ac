// Package seeded provides a deterministic offline feed source. It stands in
// for live RSS when the network is unavailable, so full pipeline runs stay
// reproducible.
package seeded

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jaehoon-dev/themeradar/internal/feeds"
)

// headlines are combined with the seed to produce a stable entry set.
var headlines = []struct {
	title string
	desc  string
}{
	{"삼성전자, HBM4 양산 일정 앞당긴다", "반도체 업계에 따르면 차세대 HBM 수요가 급증하고 있다."},
	{"AI 데이터센터 투자 확대에 전력주 동반 강세", "생성형 AI 붐으로 데이터센터 전력 수요가 늘었다."},
	{"2차전지 소재주, 전고체 배터리 기대감에 상승", "양극재 업체들의 수주 소식이 이어졌다."},
	{"바이오 신약 임상 3상 결과 발표 임박", "제약 업계가 항암 신약 결과를 주시하고 있다."},
	{"전기차 보조금 개편안 발표", "자율주행 규제 완화 논의도 함께 진행된다."},
	{"휴머노이드 로봇 시연회 성황", "협동로봇 수요가 제조업 전반으로 확산되고 있다."},
	{"방산 수출 계약 추가 체결", "미사일 방어체계 수출이 확대됐다."},
	{"조선 빅3, LNG선 수주 랠리 지속", "컨테이너선 발주도 회복세를 보였다."},
	{"게임 대형 신작 출시 첫 주 흥행", "모바일게임 매출 순위가 급변했다."},
	{"엔터주, 월드투어 콘서트 매진 소식에 강세", "음반 판매량도 사상 최대치를 기록했다."},
}

// Source returns a fixed set of Korean finance headlines. The seed shuffles
// order and staggers timestamps so runs with different seeds still exercise
// dedup and recency paths.
type Source struct {
	name string
	seed int64
	now  func() time.Time
}

// New creates a seeded source.
func New(name string, seed int64) *Source {
	return &Source{name: name, seed: seed, now: time.Now}
}

func (s *Source) Name() string {
	return s.name
}

func (s *Source) Fetch(ctx context.Context) ([]feeds.Entry, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	rng := rand.New(rand.NewSource(s.seed))
	order := rng.Perm(len(headlines))

	now := s.now().In(feeds.KST)
	entries := make([]feeds.Entry, 0, len(headlines))
	for i, idx := range order {
		h := headlines[idx]
		published := now.Add(-time.Duration(i*7+rng.Intn(5)) * time.Minute)
		entries = append(entries, feeds.Entry{
			Title:       h.title,
			Link:        fmt.Sprintf("https://news.example.co.kr/article/%d%03d", s.seed, idx),
			Published:   published.Format(time.RFC1123Z),
			Description: h.desc,
		})
	}

	return entries, nil
}
