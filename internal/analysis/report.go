package analysis

import (
	"fmt"
	"strings"
)

// Report is the marketing analysis derived from a banner's extracted text.
// Every string field is always populated; fields the model did not answer
// carry a generic default.
type Report struct {
	ProductName     string   `json:"product_name"`
	CoreValue       string   `json:"core_value"`
	TargetCustomer  string   `json:"target_customer"`
	ProblemSolved   string   `json:"problem_solved"`
	Differentiator  string   `json:"differentiator"`
	EmotionalAppeal string   `json:"emotional_appeal"`
	LogicalAppeal   string   `json:"logical_appeal"`
	CallToAction    string   `json:"call_to_action"`
	PricingStrategy *string  `json:"pricing_strategy"`
	Keywords        []string `json:"keywords"`
	ExtractedText   string   `json:"extracted_text"`
}

// DefaultKeywords is used when the response lists no keywords.
var DefaultKeywords = []string{"브랜드", "가치", "혜택", "품질", "신뢰"}

// field describes one labelled line of the analysis response.
type field struct {
	labels []string
	def    string
	set    func(r *Report, v string)
}

// fields lists the response labels in prompt order. Longer English labels
// precede their prefixes so "Product Name" is not read as "Product".
var fields = []field{
	{[]string{"제품명", "Product Name", "Product"}, "제품/서비스", func(r *Report, v string) { r.ProductName = v }},
	{[]string{"핵심가치", "Core Value"}, "핵심 가치 제안", func(r *Report, v string) { r.CoreValue = v }},
	{[]string{"타겟고객", "Target Customer", "Target"}, "타겟 고객", func(r *Report, v string) { r.TargetCustomer = v }},
	{[]string{"해결문제", "Problem Solved", "Problem"}, "해결하는 문제", func(r *Report, v string) { r.ProblemSolved = v }},
	{[]string{"차별화요소", "Differentiator"}, "차별화 요소", func(r *Report, v string) { r.Differentiator = v }},
	{[]string{"감정어필", "Emotional Appeal"}, "감정적 어필", func(r *Report, v string) { r.EmotionalAppeal = v }},
	{[]string{"논리어필", "Logical Appeal"}, "논리적 어필", func(r *Report, v string) { r.LogicalAppeal = v }},
	{[]string{"행동유도", "Call To Action", "CTA"}, "CTA 전략", func(r *Report, v string) { r.CallToAction = v }},
	{[]string{"가격전략", "Pricing Strategy", "Pricing"}, "", func(r *Report, v string) {
		if p := pricing(v); p != "" {
			r.PricingStrategy = &p
		}
	}},
	{[]string{"핵심키워드", "Keywords"}, "", func(r *Report, v string) {
		if kw := splitKeywords(v); len(kw) > 0 {
			r.Keywords = kw
		}
	}},
}

// Parse reads a labelled analysis response. A value runs from its label to
// the next line that starts with a known label. Missing or blank fields fall
// back to their defaults independently, so Parse never fails.
func Parse(content, extracted string) *Report {
	r := &Report{ExtractedText: extracted}
	for _, f := range fields {
		f.set(r, f.def)
	}
	r.Keywords = append([]string(nil), DefaultKeywords...)

	values := make(map[int][]string)
	current := -1
	for _, line := range strings.Split(content, "\n") {
		if idx, rest, ok := matchLabel(line); ok {
			current = idx
			values[idx] = []string{rest}
			continue
		}
		if current >= 0 {
			values[current] = append(values[current], strings.TrimSpace(line))
		}
	}

	for idx, lines := range values {
		v := strings.TrimSpace(strings.Join(lines, "\n"))
		if v == "" {
			continue
		}
		fields[idx].set(r, v)
	}
	return r
}

// matchLabel reports whether line starts a field and returns the field index
// and the text after the label. Korean labels may be followed by a colon or
// whitespace; English labels need a colon.
func matchLabel(line string) (int, string, bool) {
	s := strings.TrimSpace(line)
	s = strings.TrimLeft(s, "-*•#> \t")
	s = strings.ReplaceAll(s, "**", "")
	lower := strings.ToLower(s)

	for i, f := range fields {
		for _, label := range f.labels {
			if !strings.HasPrefix(lower, strings.ToLower(label)) {
				continue
			}
			rest := strings.TrimLeft(s[len(label):], " \t")
			colon := strings.HasPrefix(rest, ":") || strings.HasPrefix(rest, "：")
			switch {
			case colon:
			case isASCII(label):
				continue
			case len(rest) == len(s)-len(label) && rest != "":
				// A longer word that merely shares the prefix.
				continue
			}
			rest = strings.TrimPrefix(strings.TrimPrefix(rest, ":"), "：")
			return i, strings.TrimSpace(rest), true
		}
	}
	return -1, "", false
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// pricing returns v, or "" when the model reported no pricing information.
func pricing(v string) string {
	v = strings.Trim(strings.TrimSpace(v), `"'`)
	if v == "" || strings.Contains(v, "정보없음") {
		return ""
	}
	switch strings.ToLower(v) {
	case "none", "n/a", "no information", "없음":
		return ""
	}
	return v
}

func splitKeywords(v string) []string {
	var out []string
	for _, k := range strings.Split(v, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// Brief renders the report as the context block handed to copy generation.
func (r *Report) Brief() string {
	var b strings.Builder
	fmt.Fprintf(&b, "• 핵심 가치 제안: %s\n", r.CoreValue)
	fmt.Fprintf(&b, "• 타겟 고객: %s\n", r.TargetCustomer)
	fmt.Fprintf(&b, "• 해결하는 문제: %s\n", r.ProblemSolved)
	fmt.Fprintf(&b, "• 차별화 요소: %s\n", r.Differentiator)
	fmt.Fprintf(&b, "• 감정적 어필: %s\n", r.EmotionalAppeal)
	fmt.Fprintf(&b, "• 논리적 어필: %s\n", r.LogicalAppeal)
	fmt.Fprintf(&b, "• 행동 유도 전략: %s\n", r.CallToAction)
	if r.PricingStrategy != nil {
		fmt.Fprintf(&b, "• 가격 전략: %s\n", *r.PricingStrategy)
	}
	fmt.Fprintf(&b, "• 핵심 키워드: %s", strings.Join(r.Keywords, ", "))
	return b.String()
}
