package copygen

import (
	"fmt"
	"strings"

	"github.com/ironsheep/bannercopy/internal/analysis"
)

// Prompt builds the request for one platform and variation.
func Prompt(p Platform, v Variation, text, requirements string, report *analysis.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "당신은 %s 플랫폼 전문 퍼포먼스 마케터입니다. %s 전략으로 고성과 카피를 작성해주세요.\n\n", p.Name, v.Name)
	fmt.Fprintf(&b, "【소재 분석】\n%s\n", text)
	if report != nil {
		fmt.Fprintf(&b, "\n【마케팅 분석 보고서 활용】\n%s\n", report.Brief())
	}
	if requirements = strings.TrimSpace(requirements); requirements != "" {
		fmt.Fprintf(&b, "\n【마케터 특별 요구사항】\n%s\n", requirements)
	}
	fmt.Fprintf(&b, "\n【플랫폼 전략】\n%s\n", p.Strategy)
	fmt.Fprintf(&b, "\n【%s 고유 접근법】\n%s\n%s\n", v.Name, v.Approach, v.Strategy)
	fmt.Fprintf(&b, "\n【매체별 길이 제한 준수 필수】\n• 제목: 정확히 %d자 이내로 작성 (공백 포함)\n• 설명: 정확히 %d자 이내로 작성 (공백 포함)\n",
		p.TitleLimit, p.DescriptionLimit)
	b.WriteString("\n【금지사항】\n- 이모티콘 사용 금지\n- 다른 전략과 유사한 표현 금지\n- 글자 수 초과 금지\n")
	fmt.Fprintf(&b, "\n【응답 형식】\n제목: [%d자 이내 %s 고유 제목]\n설명: [%d자 이내 %s 차별화 설명]",
		p.TitleLimit, v.Name, p.DescriptionLimit, v.Name)

	return b.String()
}
