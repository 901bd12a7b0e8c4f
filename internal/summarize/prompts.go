package summarize

import (
	"fmt"
	"strings"

	"newswave/internal/core"
)

// StyleProvider supplies category-specific prompt guidance. It is a
// pluggable prompt-construction strategy: the default implementation carries
// built-in Korean few-shot examples and tone guides, and deployments can
// swap in their own.
type StyleProvider interface {
	// ConsolidationContext returns the context line injected into the
	// consolidation prompt for this category.
	ConsolidationContext(category core.Category) string
	// FewShot returns a worked consolidation example block for this
	// category, or "" when none exists.
	FewShot(category core.Category) string
	// NarrationStyle returns the tone/style block for the narration prompt.
	NarrationStyle(category core.Category) string
}

// DefaultStyles is the built-in StyleProvider.
type DefaultStyles struct{}

type fewShotExample struct {
	input  []string
	output string
}

var fewShotExamples = map[string]fewShotExample{
	"economy": {
		input: []string{
			"[기사 1] 삼성전자가 3분기 영업이익 10조원을 기록했다고 28일 발표했다. 이는 전년 동기 대비 30% 증가한 수치다.",
			"[기사 2] 삼성전자 3분기 실적 발표 후 주가가 3% 상승했다. 시장 예상치 9.5조원을 크게 상회한 결과다.",
			"[기사 3] 반도체 업황 회복으로 삼성전자 실적이 개선됐다. 메모리 반도체 가격 상승이 주요 요인으로 분석된다.",
		},
		output: "삼성전자가 28일 3분기 영업이익 10조원을 기록했다고 발표했다. 이는 전년 동기 대비 30% 증가한 수치로 시장 예상치 9.5조원을 크게 상회했다. 실적 발표 직후 삼성전자 주가는 전일 대비 3% 상승하며 투자자들의 긍정적 반응을 보였다. 반도체 업황 회복과 메모리 반도체 가격 상승이 이번 실적 개선의 주요 동력으로 분석되고 있어, 4분기에도 이런 상승세가 이어질지 주목된다.",
	},
	"politics": {
		input: []string{
			"[기사 1] 정부가 부동산 정책 개편안을 29일 발표할 예정이다. 주택 공급 확대가 핵심 내용으로 알려졌다.",
			"[기사 2] 야당은 정부 부동산 정책이 서민 주거 안정에 도움이 되지 않는다고 비판했다.",
			"[기사 3] 부동산업계는 새 정책이 시장 안정화에 기여할 것으로 기대한다고 밝혔다.",
		},
		output: "정부가 29일 부동산 정책 개편안을 발표할 예정이다. 주택 공급 확대를 핵심으로 하는 이번 정책에 대해 여야와 업계의 반응이 엇갈리고 있다. 정부는 주택 공급 확대를 통한 시장 안정화를 목표로 한다고 밝혔으나, 야당은 서민 주거 안정에 실질적 도움이 되지 않을 것이라고 비판했다. 반면 부동산업계는 새 정책이 시장 안정화에 긍정적 영향을 미칠 것으로 기대한다고 입장을 표했다.",
	},
	"society": {
		input: []string{
			"[기사 1] 서울시가 청년 주거 지원을 위해 월세 보조금을 30만원으로 확대한다고 발표했다.",
			"[기사 2] 청년들은 월세 보조금 확대에 환영 의사를 표했지만 여전히 부족하다는 반응이다.",
			"[기사 3] 시민단체는 근본적인 주거비 해결책이 필요하다고 지적했다.",
		},
		output: "서울시가 청년 주거 부담 완화를 위해 월세 보조금을 기존보다 확대해 30만원으로 지원한다고 발표했다. 이번 정책에 대해 청년들은 환영 의사를 표했지만, 여전히 높은 주거비에 비해 부족하다는 반응을 보이고 있다. 시민단체들은 일시적 보조금보다는 주거비 상승의 근본적 원인을 해결하는 정책이 필요하다고 지적하며, 보다 체계적인 청년 주거 정책 마련을 촉구했다.",
	},
	"tech": {
		input: []string{
			"[기사 1] 네이버가 새로운 AI 검색 서비스 '하이퍼클로바X'를 공개했다. 생성형 AI 기술을 활용한 것이 특징이다.",
			"[기사 2] 하이퍼클로바X는 기존 검색과 달리 대화형으로 답변을 제공한다고 네이버가 설명했다.",
			"[기사 3] IT업계는 네이버의 AI 검색이 구글과의 경쟁에서 차별화 요소가 될 것으로 전망했다.",
		},
		output: "네이버가 생성형 AI 기술을 활용한 새로운 검색 서비스 '하이퍼클로바X'를 공개했다. 기존 키워드 검색과 달리 사용자와 대화하듯 자연스럽게 답변을 제공하는 것이 핵심 특징이다. IT업계에서는 이번 서비스가 구글 등 글로벌 검색 엔진과의 경쟁에서 네이버만의 차별화 요소로 작용할 것으로 분석하고 있어, 국내 검색 시장에 새로운 변화를 가져올지 주목된다.",
	},
	"culture": {
		input: []string{
			"[기사 1] BTS 멤버 지민의 솔로 앨범이 빌보드 200 차트 2위에 올랐다.",
			"[기사 2] 지민은 한국 솔로 가수 최초로 빌보드 200 톱3에 진입하는 기록을 세웠다.",
			"[기사 3] 팬들은 SNS를 통해 지민의 성과를 축하하며 응원 메시지를 전했다.",
		},
		output: "BTS 멤버 지민의 솔로 앨범이 빌보드 200 차트 2위에 오르며 한국 솔로 가수 최초로 톱3 진입이라는 역사적 기록을 달성했다. 이는 K-팝 솔로 아티스트로서는 전례 없는 성과로, 지민의 글로벌 영향력을 다시 한번 입증했다. 전 세계 팬들은 SNS를 통해 축하와 응원 메시지를 쏟아내며 이번 성과를 함께 기뻐하고 있다.",
	},
	"sports": {
		input: []string{
			"[기사 1] 손흥민이 토트넘과의 경기에서 2골을 넣으며 팀 승리를 이끌었다.",
			"[기사 2] 이번 경기로 손흥민은 시즌 15골을 기록하며 개인 최고 기록에 근접했다.",
			"[기사 3] 토트넘 팬들은 손흥민의 활약에 열광하며 'Son is the King'이라고 외쳤다.",
		},
		output: "손흥민이 토트넘 경기에서 멀티골을 터뜨리며 팀 승리의 주역으로 나섰다. 이번 2골로 시즌 15골을 기록한 손흥민은 개인 최고 기록 경신을 눈앞에 두고 있어 더욱 의미가 크다. 경기장을 가득 메운 토트넘 팬들은 'Son is the King'을 연호하며 손흥민의 환상적인 활약에 열광했고, 그의 꾸준한 득점 행진이 팀의 상위권 도약에 핵심 동력이 되고 있다.",
	},
}

var consolidationContexts = map[string]string{
	"politics": "정책의 배경과 영향, 다양한 시각을 균형 있게",
	"economy":  "경제 지표의 의미와 일반인에게 미치는 영향에 주목해서",
	"society":  "사회 문제의 원인과 영향, 시민들의 반응을 포함해서",
	"culture":  "문화적 의미와 트렌드, 대중의 관심을 포함해서",
	"tech":     "기술의 혁신성과 실생활 응용 가능성을 중심으로",
	"sports":   "경기 결과와 선수들의 스토리, 팬들의 반응을 중심으로",
}

type narrationStyle struct {
	tone     string
	approach string
	examples string
}

var narrationStyles = map[string]narrationStyle{
	"politics": {
		tone:     "신중하고 균형 잡힌",
		approach: "복잡한 정치 상황을 쉽게 풀어 설명하고 다양한 시각을 제시",
		examples: "'이 정책이 우리 생활에 어떤 영향을 줄까요', '양쪽 입장을 정리해 보면'",
	},
	"economy": {
		tone:     "전문적이면서 친근한",
		approach: "경제 용어를 일상 언어로 풀어내고 실생활과의 연관성을 강조",
		examples: "'쉽게 말하면', '우리 지갑에는 어떤 의미일까요', '예를 들어'",
	},
	"society": {
		tone:     "따뜻하고 공감하는",
		approach: "사람들의 이야기에 집중하고 감정적 공감대를 형성",
		examples: "'정말 안타까운 일인데요', '많은 분들이 공감하실 텐데요'",
	},
	"culture": {
		tone:     "밝고 즐거운",
		approach: "재미있고 생동감 있게 문화적 의미와 트렌드를 설명",
		examples: "'정말 흥미롭죠', '요즘 핫한', '문화적으로 보면'",
	},
	"tech": {
		tone:     "호기심 가득한",
		approach: "기술을 쉽게 설명하고 미래 전망과 일상과의 연관성을 강조",
		examples: "'기술적으로는', '앞으로는 어떻게 될까요', '우리 생활은 어떻게 바뀔까요'",
	},
	"sports": {
		tone:     "열정적이고 생동감 있는",
		approach: "현장감 있게 전달하고 선수와 팀의 스토리를 강조",
		examples: "'정말 대단하죠', '감동적인 순간이었는데요'",
	},
}

// ConsolidationContext returns the per-category context line for the
// consolidation prompt.
func (DefaultStyles) ConsolidationContext(category core.Category) string {
	if context, ok := consolidationContexts[category.Key]; ok {
		return context
	}
	return "핵심 사실과 그 의미를"
}

// FewShot returns the worked consolidation example for the category.
func (DefaultStyles) FewShot(category core.Category) string {
	example, ok := fewShotExamples[category.Key]
	if !ok {
		return ""
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "**좋은 통합 요약의 예 (%s 분야):**\n", category.NameKo)
	builder.WriteString(strings.Join(example.input, "\n"))
	fmt.Fprintf(&builder, "\n\n→ **통합 요약**: %s\n\n", example.output)
	builder.WriteString("위 예시처럼 중복을 제거하고 중요한 정보를 논리적으로 연결해 작성해 주세요.\n\n")
	return builder.String()
}

// NarrationStyle returns the tone/style block for the narration prompt.
func (DefaultStyles) NarrationStyle(category core.Category) string {
	style, ok := narrationStyles[category.Key]
	if !ok {
		return "**일반 뉴스 브리핑 스타일:**\n- 톤: 친근하고 신뢰감 있는\n- 접근: 균형 잡힌 시각으로 정보를 전달\n\n"
	}
	return fmt.Sprintf("**%s 분야 특화 스타일:**\n- 톤: %s 분위기로\n- 접근: %s\n- 자주 쓰는 표현: %s\n\n",
		category.NameKo, style.tone, style.approach, style.examples)
}

// BuildConsolidationPrompt builds the prompt that merges one cluster of
// near-duplicate articles into a single representative summary. Members are
// expected to be individually capped by the caller.
func BuildConsolidationPrompt(category core.Category, members []string, styles StyleProvider) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "당신은 뉴스 요약 전문가입니다. '%s' 분야의 유사 기사들을 완성도 높은 하나의 요약으로 통합해 주세요.\n\n",
		category.NameKo)
	builder.WriteString(styles.FewShot(category))
	builder.WriteString("**통합 요약 작성 가이드:**\n")
	builder.WriteString("1. **핵심 사실 추출**: 가장 중요한 사실을 우선순위대로 정리\n")
	builder.WriteString("2. **중복 제거**: 반복되는 내용은 한 번만 언급하고 중요도에 따라 강조\n")
	fmt.Fprintf(&builder, "3. **맥락 제공**: %s 포함\n", styles.ConsolidationContext(category))
	builder.WriteString("4. **논리적 구성**: 시간 순서나 중요도에 따라 자연스럽게 연결\n")
	builder.WriteString("5. **구체적 정보 유지**: 날짜, 수치, 인명 등 구체적 정보를 보존\n")
	builder.WriteString("6. **균형 잡힌 시각**: 여러 관점이 있으면 공정하게 제시\n\n")
	builder.WriteString("**품질 기준:**\n")
	builder.WriteString("- 독립적으로 읽어도 이해되는 완결된 요약\n")
	builder.WriteString("- 중요한 정보를 빠뜨리지 않되 간결하게\n")
	builder.WriteString("- 자연스러운 한국어 문체\n")
	builder.WriteString("- 500-700자 (음성 변환에 최적화)\n\n")
	builder.WriteString("**통합할 기사:**\n")
	for i, member := range members {
		fmt.Fprintf(&builder, "[기사 %d]\n%s\n\n", i+1, member)
	}
	builder.WriteString("위 기사들을 바탕으로 통합 요약을 작성해 주세요:")

	return builder.String()
}

// BuildNarrationPrompt builds the final long-form narration prompt. The
// length window is carried entirely in the instructions; output length is
// not enforced post-hoc.
func BuildNarrationPrompt(category core.Category, summaries []string, styles StyleProvider, minLength, maxLength int) string {
	var builder strings.Builder

	builder.WriteString("당신은 친근하고 신뢰할 수 있는 뉴스 진행자입니다. ")
	builder.WriteString("오늘의 중요한 뉴스를 친구에게 들려주듯 자연스럽고 따뜻한 톤으로 이야기해 주세요.\n\n")
	fmt.Fprintf(&builder, "**청취자:** '%s' 분야에 관심 있는 일반인\n", category.NameKo)
	builder.WriteString("**목표:** 복잡한 뉴스를 알기 쉽고 재미있게 전달하기\n")
	builder.WriteString("**스타일:** 대화하듯 자연스럽게, 때로는 감탄사와 추임새도 섞어서\n\n")
	builder.WriteString(styles.NarrationStyle(category))
	builder.WriteString("**오늘의 뉴스 요약:**\n")
	for _, summary := range summaries {
		fmt.Fprintf(&builder, "- %s\n", summary)
	}
	builder.WriteString("\n**원고 작성 가이드:**\n")
	builder.WriteString("1. **자연스러운 시작**: '안녕하세요, 오늘도 함께해 주셔서 감사합니다' 같은 인사\n")
	fmt.Fprintf(&builder, "2. **카테고리 소개**: '오늘 %s 분야에 정말 흥미로운 소식이 많네요'\n", category.NameKo)
	builder.WriteString("3. **뉴스 연결**: 각 뉴스 사이에 '그런데요', '정말 놀라운 건', '왜 중요하냐면' 같은 자연스러운 연결어 사용\n")
	builder.WriteString("4. **감정 표현**: '와, 이건 정말...', '음, 생각해 보면...' 같은 자연스러운 반응\n")
	builder.WriteString("5. **쉬운 설명**: 어려운 용어는 '쉽게 말하면', '다시 말해' 로 풀어서\n")
	builder.WriteString("6. **진행자의 시각**: '개인적으로는', '저는 이 부분이 인상적이었어요' 포함\n")
	builder.WriteString("7. **자연스러운 마무리**: '오늘 브리핑은 여기까지입니다. 내일도 좋은 소식으로 찾아뵙겠습니다'\n\n")
	builder.WriteString("**음성 변환 최적화:**\n")
	builder.WriteString("- 문장을 너무 길게 쓰지 말고 자연스러운 호흡 지점에서 끊어 주세요\n")
	builder.WriteString("- 강조할 부분에는 '정말', '바로', '특히' 같은 부사를 활용\n")
	builder.WriteString("- 감탄사 활용: '아', '오', '음', '그런데', '근데'\n\n")
	builder.WriteString("**길이 요건:**\n")
	fmt.Fprintf(&builder, "- 최소 %d자 이상 (음성으로 약 3~4분 분량)\n", minLength)
	fmt.Fprintf(&builder, "- 최대 %d자 이하\n", maxLength)
	builder.WriteString("- 각 뉴스마다 충분한 설명과 배경 정보를 포함\n\n")
	builder.WriteString("**중요:** 실제 사람이 말하듯 자연스럽고 친근하게 써 주세요. ")
	builder.WriteString("뉴스 앵커가 아니라 친구가 재미있는 이야기를 들려주는 분위기로!")

	return builder.String()
}
