package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ironsheep/bannercopy/internal/llm"
)

const (
	// Temperature keeps the analysis close to the extracted text.
	Temperature = 0.3

	// MaxTokens bounds the analysis response.
	MaxTokens = 800
)

// ErrNoText is returned when there is no extracted text to analyze.
var ErrNoText = errors.New("no text to analyze")

// Analyzer turns extracted banner text into a Report with one chat call.
type Analyzer struct {
	provider llm.Provider
}

// NewAnalyzer creates an Analyzer backed by provider.
func NewAnalyzer(provider llm.Provider) *Analyzer {
	return &Analyzer{provider: provider}
}

// Analyze requests a marketing analysis of text and parses the response.
func (a *Analyzer) Analyze(ctx context.Context, text string) (*Report, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrNoText
	}

	resp, err := a.provider.ChatCompletion(ctx, llm.ChatRequest{
		Messages:    []llm.Message{llm.User(Prompt(text))},
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("marketing analysis failed: %w", err)
	}

	return Parse(strings.TrimSpace(resp.Content), text), nil
}

// Prompt builds the analysis request for text.
func Prompt(text string) string {
	return `당신은 10년 경력의 디지털 마케팅 전문가입니다. 다음 OCR 추출 텍스트를 분석하여 실무에 바로 활용 가능한 마케팅 인사이트를 제공해주세요.

추출된 텍스트:
` + text + `

실무 중심 분석 요구사항:
1. 타겟 페르소나를 구체적으로 정의 (연령, 성별, 관심사, 구매력, 라이프스타일 등)
2. 경쟁 우위 요소를 명확히 식별하고 활용 방안 제시
3. 플랫폼별 어필 포인트 차별화 방향 분석
4. 예상 CTR 향상 요소와 구체적 개선 포인트 도출

응답 형식 (이모티콘 사용 금지):
제품명: [제품/서비스명을 명확히 식별]
핵심가치: [고객에게 제공하는 핵심 가치와 차별화 포인트]
타겟고객: [구체적 페르소나 - 연령대, 성별, 소득수준, 관심사, 구매패턴 포함]
해결문제: [타겟이 겪는 구체적 페인포인트와 니즈]
차별화요소: [경쟁사 대비 명확한 우위점과 포지셔닝 전략]
감정어필: [감정적 트리거 요소와 심리적 동기 유발 포인트]
논리어필: [합리적 구매 근거와 객관적 혜택]
행동유도: [효과적인 CTA 전략과 전환 최적화 방안]
가격전략: [가격/할인 정보 및 가격 경쟁력, 없으면 "정보없음"]
핵심키워드: [광고 최적화용 키워드 5개를 쉼표로 구분]

위 형식을 정확히 준수해주세요.`
}
