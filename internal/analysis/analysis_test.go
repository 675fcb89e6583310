package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/bannercopy/internal/llm"
)

type fakeProvider struct {
	content string
	err     error
	reqs    []llm.ChatRequest
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) ChatCompletion(_ context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return nil, f.err
	}
	return &llm.ChatResponse{Provider: "fake", Content: f.content}, nil
}

const koreanResponse = `제품명: 그린티 토너
핵심가치: 민감 피부 진정
타겟고객: 20-30대 여성
피부 고민이 많은 직장인
해결문제: 건조함과 트러블
차별화요소: 제주 녹차 추출물 80%
감정어필: 하루의 피로를 씻어내는 상쾌함
논리어필: 피부과 테스트 완료
행동유도: 지금 구매하고 샘플 받기
가격전략: 첫 구매 30% 할인
핵심키워드: 녹차, 토너, 진정, 민감피부, 보습`

func TestParse_Korean(t *testing.T) {
	r := Parse(koreanResponse, "원문")

	assert.Equal(t, "그린티 토너", r.ProductName)
	assert.Equal(t, "민감 피부 진정", r.CoreValue)
	assert.Equal(t, "20-30대 여성\n피부 고민이 많은 직장인", r.TargetCustomer, "values run to the next label")
	assert.Equal(t, "건조함과 트러블", r.ProblemSolved)
	assert.Equal(t, "제주 녹차 추출물 80%", r.Differentiator)
	assert.Equal(t, "지금 구매하고 샘플 받기", r.CallToAction)
	require.NotNil(t, r.PricingStrategy)
	assert.Equal(t, "첫 구매 30% 할인", *r.PricingStrategy)
	assert.Equal(t, []string{"녹차", "토너", "진정", "민감피부", "보습"}, r.Keywords)
	assert.Equal(t, "원문", r.ExtractedText)
}

func TestParse_English(t *testing.T) {
	content := `**Product Name:** Aurora Lamp
- Core Value: Sleep better
Target Customer: Night-shift workers
Target audience notes belong to the customer field
Pricing: none
Keywords: lamp, sleep , , light`

	r := Parse(content, "")

	assert.Equal(t, "Aurora Lamp", r.ProductName)
	assert.Equal(t, "Sleep better", r.CoreValue)
	assert.Equal(t, "Night-shift workers\nTarget audience notes belong to the customer field", r.TargetCustomer)
	assert.Nil(t, r.PricingStrategy)
	assert.Equal(t, []string{"lamp", "sleep", "light"}, r.Keywords)
}

func TestParse_Defaults(t *testing.T) {
	r := Parse("the model ignored the format", "text")

	assert.Equal(t, "제품/서비스", r.ProductName)
	assert.Equal(t, "핵심 가치 제안", r.CoreValue)
	assert.Equal(t, "CTA 전략", r.CallToAction)
	assert.Nil(t, r.PricingStrategy)
	assert.Equal(t, DefaultKeywords, r.Keywords)
}

func TestParse_PartialFieldsDefaultIndependently(t *testing.T) {
	r := Parse("제품명: 러닝화\n핵심가치:\n가격전략: 정보없음", "")

	assert.Equal(t, "러닝화", r.ProductName)
	assert.Equal(t, "핵심 가치 제안", r.CoreValue, "blank value keeps the default")
	assert.Nil(t, r.PricingStrategy)
	assert.Equal(t, "타겟 고객", r.TargetCustomer)
}

func TestParse_DefaultKeywordsNotShared(t *testing.T) {
	r := Parse("", "")
	r.Keywords[0] = "changed"

	assert.Equal(t, "브랜드", DefaultKeywords[0])
}

func TestParse_LabelWithoutColon(t *testing.T) {
	r := Parse("제품명 러닝화\n제품명칭은 무시", "")

	assert.Equal(t, "러닝화\n제품명칭은 무시", r.ProductName)
}

func TestReport_Brief(t *testing.T) {
	r := Parse(koreanResponse, "")
	brief := r.Brief()

	assert.Contains(t, brief, "핵심 가치 제안: 민감 피부 진정")
	assert.Contains(t, brief, "가격 전략: 첫 구매 30% 할인")
	assert.Contains(t, brief, "핵심 키워드: 녹차, 토너, 진정, 민감피부, 보습")

	r.PricingStrategy = nil
	assert.NotContains(t, r.Brief(), "가격 전략")
}

func TestAnalyzer_Analyze(t *testing.T) {
	fake := &fakeProvider{content: "  " + koreanResponse + "\n"}
	a := NewAnalyzer(fake)

	r, err := a.Analyze(context.Background(), "  그린티 토너 30% 할인 ")
	require.NoError(t, err)

	assert.Equal(t, "그린티 토너", r.ProductName)
	assert.Equal(t, "그린티 토너 30% 할인", r.ExtractedText)

	require.Len(t, fake.reqs, 1)
	req := fake.reqs[0]
	assert.InDelta(t, 0.3, req.Temperature, 1e-9)
	assert.Equal(t, 800, req.MaxTokens)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, "user", req.Messages[0].Role)
	assert.Contains(t, req.Messages[0].Content, "그린티 토너 30% 할인")
}

func TestAnalyzer_Errors(t *testing.T) {
	t.Run("no text", func(t *testing.T) {
		fake := &fakeProvider{}
		_, err := NewAnalyzer(fake).Analyze(context.Background(), " \n ")
		assert.ErrorIs(t, err, ErrNoText)
		assert.Empty(t, fake.reqs)
	})

	t.Run("provider failure", func(t *testing.T) {
		boom := errors.New("rate limited")
		_, err := NewAnalyzer(&fakeProvider{err: boom}).Analyze(context.Background(), "text")
		assert.ErrorIs(t, err, boom)
	})
}
