package copygen

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPlatform is returned for a platform key that is not in the table.
var ErrUnknownPlatform = errors.New("unknown platform")

// Platform is an ad placement with its copy length limits. Limits are
// counted in characters (runes), spaces included.
type Platform struct {
	Key              string `json:"key"`
	Name             string `json:"name"`
	DisplayName      string `json:"display_name"`
	TitleLimit       int    `json:"title_limit"`
	DescriptionLimit int    `json:"description_limit"`
	Color            string `json:"color"`
	Strategy         string `json:"-"`
}

var platforms = []Platform{
	{
		Key: "naver", Name: "네이버", DisplayName: "Naver",
		TitleLimit: 15, DescriptionLimit: 45, Color: "#03C75A",
		Strategy: `네이버 검색광고 최적화 전략
• 검색 의도가 명확한 사용자 대상 직접적 혜택 어필
• 쇼핑검색 연동을 고려한 상품명/브랜드명 포함
• 모바일 우선 짧고 임팩트 있는 메시지 구성`,
	},
	{
		Key: "meta", Name: "메타", DisplayName: "Meta",
		TitleLimit: 40, DescriptionLimit: 125, Color: "#1877F2",
		Strategy: `메타(페이스북/인스타그램) SNS 광고 전략
• 소셜 피드에서 스크롤을 멈추게 하는 요소 강화
• 시각적 콘텐츠와 조화되는 감정적 스토리텔링
• 공유/댓글을 유도하는 참여형 메시지 구성`,
	},
	{
		Key: "google", Name: "구글", DisplayName: "Google",
		TitleLimit: 30, DescriptionLimit: 90, Color: "#4285F4",
		Strategy: `구글 검색/디스플레이 광고 최적화 전략
• 검색 결과 노출을 위한 키워드 전략적 배치
• 명확하고 직관적인 가치 제안
• 다양한 디바이스 환경에 맞는 간결한 메시지 구조`,
	},
	{
		Key: "kakao", Name: "카카오", DisplayName: "Kakao",
		TitleLimit: 30, DescriptionLimit: 75, Color: "#FEE500",
		Strategy: `카카오 플랫폼 광고 전략
• 카카오톡 친구 추천/공유를 활용한 바이럴 요소 포함
• 친근하고 정감 있는 톤앤매너
• 일상 대화체를 활용한 자연스러운 관심 유발`,
	},
}

// Platforms returns every supported platform in display order.
func Platforms() []Platform {
	out := make([]Platform, len(platforms))
	copy(out, platforms)
	return out
}

// Lookup finds a platform by key, case-insensitively.
func Lookup(key string) (Platform, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, p := range platforms {
		if p.Key == key {
			return p, true
		}
	}
	return Platform{}, false
}

// Keys returns the platform keys in display order.
func Keys() []string {
	keys := make([]string, len(platforms))
	for i, p := range platforms {
		keys[i] = p.Key
	}
	return keys
}

// Resolve maps keys to platforms, dropping duplicates. It fails on the first
// unknown key so no work is started for a bad request.
func Resolve(keys []string) ([]Platform, error) {
	seen := make(map[string]bool)
	var out []Platform
	for _, k := range keys {
		p, ok := Lookup(k)
		if !ok {
			return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnknownPlatform, k, strings.Join(Keys(), ", "))
		}
		if seen[p.Key] {
			continue
		}
		seen[p.Key] = true
		out = append(out, p)
	}
	return out, nil
}
