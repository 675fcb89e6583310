package copygen

// Variation is one creative strategy. Each platform gets one copy per
// variation.
type Variation struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Temperature float64 `json:"temperature"`
	Strategy    string  `json:"strategy"`
	Approach    string  `json:"-"`
}

var variations = []Variation{
	{
		ID: 1, Name: "안전형", Temperature: 0.3,
		Strategy: "신뢰성과 검증된 혜택 중심. 구체적 수치와 사회적 증거 활용",
		Approach: `기능/혜택 중심의 직접적 어필 전략
• 구체적 수치, 통계, 객관적 근거 활용
• "입증된", "검증된" 등 신뢰성 키워드 사용
• 명확한 기능적 혜택과 실용적 가치 강조`,
	},
	{
		ID: 2, Name: "최적화형", Temperature: 0.7,
		Strategy: "감정과 논리의 균형. FOMO 심리와 명확한 가치 제안 조합",
		Approach: `감정적 공감대와 스토리텔링 전략
• 고객의 상황과 니즈에 공감하는 메시지
• "당신을 위한", "맞춤형" 등 개인화 표현
• 감정적 만족과 실용적 해결책의 조화`,
	},
	{
		ID: 3, Name: "도전형", Temperature: 1.0,
		Strategy: "독창적이고 파격적 접근. 화제성과 차별화로 주목도 극대화",
		Approach: `호기심 유발과 반전 메시지 전략
• 질문형, 반전형, 도발적 표현 활용
• 기존 상식을 뒤집는 새로운 관점 제시
• 독특하고 기억에 남는 창의적 표현`,
	},
}

// Variations returns the creative strategies in ID order.
func Variations() []Variation {
	out := make([]Variation, len(variations))
	copy(out, variations)
	return out
}
