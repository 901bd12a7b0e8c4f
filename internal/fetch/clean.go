package fetch

import (
	"regexp"
	"strings"
)

// noisePatterns match lines that are journalist bylines, contact details or
// copyright notices rather than article prose.
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`[\w.+-]+@[\w-]+\.[\w.-]+`),                   // email addresses
	regexp.MustCompile(`\d{2,4}-\d{3,4}-\d{4}`),                      // phone numbers
	regexp.MustCompile(`(?i)copyright|all rights reserved|[ⓒ©]`),     // copyright notices
	regexp.MustCompile(`무단\s*전재|재배포\s*금지`),                  // redistribution bans
	regexp.MustCompile(`^[가-힣]{2,4}\s*기자(\s|$)`),                 // reporter bylines
	regexp.MustCompile(`^\[?(카카오톡|메일|전화|제보)\]?\s*[:@]`),    // tip-line contacts
}

// unwantedKeywords flag boilerplate sentences injected by publisher CMSes:
// comment-policy notices, app-download prompts, recommendation credits.
var unwantedKeywords = []string{
	"댓글 정책",
	"앱 다운",
	"뉴스 알고리즘",
	"추천 기사",
	"많이 본 뉴스",
	"프리미엄콘텐츠",
	"구독하기",
	"네이버에서 보기",
	"기사제보",
}

// CleanNoise removes noise lines from extracted text: bylines, contact
// details, copyright footers and known boilerplate phrases. The operation is
// idempotent.
func CleanNoise(text string) string {
	var kept []string

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isNoiseLine(line) {
			continue
		}
		kept = append(kept, line)
	}

	return strings.Join(kept, "\n")
}

func isNoiseLine(line string) bool {
	for _, pattern := range noisePatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	for _, keyword := range unwantedKeywords {
		if strings.Contains(line, keyword) {
			return true
		}
	}
	return false
}

// KoreanRatio returns the share of Hangul among alphabetic characters:
// hangul / (hangul + latin). Returns 0 when the text has no alphabetic
// characters at all.
func KoreanRatio(text string) float64 {
	var hangul, latin int
	for _, r := range text {
		switch {
		case r >= '가' && r <= '힣':
			hangul++
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			latin++
		}
	}
	if hangul+latin == 0 {
		return 0
	}
	return float64(hangul) / float64(hangul+latin)
}

// IsKoreanText reports whether the text's Hangul ratio meets the threshold.
// Texts with no alphabetic characters are never considered Korean.
func IsKoreanText(text string, threshold float64) bool {
	ratio := KoreanRatio(text)
	if ratio == 0 {
		return false
	}
	return ratio >= threshold
}
