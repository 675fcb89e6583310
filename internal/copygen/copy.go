package copygen

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Copy is one generated title/description pair.
type Copy struct {
	VariationID      int    `json:"variation_id"`
	Variation        string `json:"variation"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	TitleRunes       int    `json:"title_chars"`
	DescriptionRunes int    `json:"description_chars"`
	WithinLimits     bool   `json:"within_limits"`
	Error            string `json:"error,omitempty"`

	// Err is the generation failure behind a placeholder copy.
	Err error `json:"-"`
}

// Failed reports whether c is a placeholder for a failed generation.
func (c Copy) Failed() bool {
	return c.Err != nil
}

// Clipboard renders c the way it is pasted into an ad manager.
func (c Copy) Clipboard(p Platform) string {
	return fmt.Sprintf("[%s #%d]\n제목: %s\n설명: %s", p.Name, c.VariationID, c.Title, c.Description)
}

func newCopy(p Platform, v Variation, title, description string) Copy {
	c := Copy{
		VariationID:      v.ID,
		Variation:        v.Name,
		Title:            title,
		Description:      description,
		TitleRunes:       utf8.RuneCountInString(title),
		DescriptionRunes: utf8.RuneCountInString(description),
	}
	c.WithinLimits = c.TitleRunes <= p.TitleLimit && c.DescriptionRunes <= p.DescriptionLimit
	return c
}

func failedCopy(p Platform, v Variation, err error) Copy {
	c := newCopy(p, v, fallbackTitle(v), "생성 실패: "+err.Error())
	c.WithinLimits = false
	c.Err = err
	c.Error = err.Error()
	return c
}

func fallbackTitle(v Variation) string {
	return v.Name + " 카피"
}

const fallbackDescription = "카피 생성 중 오류 발생"

var (
	titleLabels       = []string{"제목:", "제목 :", "Title:"}
	descriptionLabels = []string{"설명:", "설명 :", "Description:"}
)

// ParseCopy extracts the title and description from a model response of the
// form "제목: ...\n설명: ...". English labels are accepted too. A title ends
// at the line break or at a description label on the same line; a
// description is the rest of its line. Missing parts fall back to fixed
// placeholders.
func ParseCopy(content string, v Variation) (title, description string) {
	title = fallbackTitle(v)
	description = fallbackDescription

	var gotTitle, gotDesc bool
	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimLeft(strings.ReplaceAll(strings.TrimSpace(raw), "**", ""), "-*• ")

		if !gotTitle {
			if rest, ok := cutLabel(line, titleLabels); ok {
				if i, ok := indexLabel(rest, descriptionLabels); ok {
					if d := cleanValue(afterLabel(rest[i:], descriptionLabels)); d != "" && !gotDesc {
						description, gotDesc = d, true
					}
					rest = rest[:i]
				}
				if t := cleanValue(rest); t != "" {
					title, gotTitle = t, true
				}
				continue
			}
		}
		if !gotDesc {
			if rest, ok := cutLabel(line, descriptionLabels); ok {
				if d := cleanValue(rest); d != "" {
					description, gotDesc = d, true
				}
			}
		}
	}
	return title, description
}

func cutLabel(line string, labels []string) (string, bool) {
	for _, l := range labels {
		if len(line) >= len(l) && strings.EqualFold(line[:len(l)], l) {
			return line[len(l):], true
		}
	}
	return "", false
}

func indexLabel(s string, labels []string) (int, bool) {
	for _, l := range labels {
		if i := strings.Index(s, l); i >= 0 {
			return i, true
		}
	}
	return 0, false
}

func afterLabel(s string, labels []string) string {
	rest, _ := cutLabel(s, labels)
	return rest
}

func cleanValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"“”'[]`)
	return strings.TrimSpace(s)
}
