package fetch

import (
	"strings"

	"codeberg.org/readeck/go-readability/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// articleSelectors maps publisher domains to the element holding the article
// body. Domains are keyed without a leading "www.".
var articleSelectors = map[string]string{
	"newsis.com":         "div.view_text",
	"news1.kr":           "div#articleBody",
	"yna.co.kr":          "div#articleWrap",
	"heraldcorp.com":     "div.view_con_t",
	"biz.heraldcorp.com": "div.view_con_t",
	"kbs.co.kr":          "div#cont_newstext",
	"sisajournal.com":    "div.view_con",
	"asiatoday.co.kr":    "div#articleBody",
	"koreaherald.com":    "div.article-text",
	"sedaily.com":        "div#v_article",
	"donga.com":          "div.article_txt",
	"hankyung.com":       "div#articletxt",
	"joongang.co.kr":     "div#article_body",
	"ohmynews.com":       "div#article_view",
	"pressian.com":       "div.view_con_tx",
	"mt.co.kr":           "div#textBody",
	"edaily.co.kr":       "div.news_body",
	"mk.co.kr":           "div#article_body",
	"fnnews.com":         "div.articleCont",
	"busan.com":          "div#news_body_area",
}

// boilerplateSelectors are stripped before any text extraction: comment
// widgets, app-download banners, related-article modules and similar chrome.
const boilerplateSelectors = "script, style, noscript, iframe, " +
	"[class*='comment'], [id*='comment'], " +
	"[class*='related'], [id*='related'], " +
	"[class*='app-down'], [class*='appdown'], " +
	"[class*='recommend'], [id*='recommend'], " +
	"[class*='banner'], [class*='sns'], [class*='share']"

// extractWithReadability runs the readability heuristic over the HTML and
// returns its plain-text rendering, or "" when nothing usable comes out.
func extractWithReadability(html string) string {
	article, err := readability.FromReader(strings.NewReader(html), nil)
	if err != nil {
		return ""
	}

	var buf strings.Builder
	if err := article.RenderText(&buf); err != nil {
		return ""
	}
	return normalizeLines(buf.String())
}

// extractWithSelectors strips boilerplate and returns the text of the
// publisher-mapped element when the domain is known and the selector
// matches, otherwise the whole-page text. A parse failure degrades to plain
// tag stripping.
func extractWithSelectors(html, domain string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return normalizeLines(stripTags(html))
	}

	doc.Find(boilerplateSelectors).Remove()

	if selector, ok := articleSelectors[domain]; ok {
		if sel := doc.Find(selector); sel.Length() > 0 {
			return normalizeLines(blockText(sel))
		}
	}
	return normalizeLines(blockText(doc.Selection))
}

// blockText renders a selection's text with newlines between block elements
// so line-oriented noise removal can work on it.
func blockText(sel *goquery.Selection) string {
	var builder strings.Builder
	blocks := sel.Find("p, h1, h2, h3, h4, h5, h6, li, blockquote, td")
	if blocks.Length() == 0 {
		return sel.Text()
	}
	blocks.Each(func(_ int, item *goquery.Selection) {
		text := strings.TrimSpace(item.Text())
		if text != "" {
			builder.WriteString(text)
			builder.WriteString("\n")
		}
	})
	return builder.String()
}

// stripTags removes all HTML tags, keeping text only.
func stripTags(html string) string {
	return bluemonday.StrictPolicy().Sanitize(html)
}

// normalizeLines trims every line and drops empty ones.
func normalizeLines(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
