package content

import "strings"

// Placeholders substituted into instruction templates.
const (
	TopicPlaceholder    = "<<TOPIC>>"
	CategoryPlaceholder = "<<CATEGORY>>"
	KeywordPlaceholder  = "<<KEYWORD>>"
)

// DefaultInstructions is the instruction template offered when the user has
// none of their own. It targets Korean car buyers in their 30s to 50s.
const DefaultInstructions = `마크다운 문법을 사용하여 블로그 포스트를 작성합니다.
주어진 "<<TOPIC>>" 과 관련된 포스트를 작성하며, 이 포스트의 카테고리는 "<<CATEGORY>>" 입니다.
[분량] 공백 포함 한글 2,000자 내외
[문체] 친근한 설명문 형식. 이모지 활용, 중요 정보 강조, 전문용어 쉬운 표현으로 부가 설명, 의문문 활용 등 블로그 특유의 정보 전달 방식 사용
[신뢰도 제고] 학습된 자료 중 관련 데이터 수치 데이터를 제공하고 출처명시
[가독성 높이기] 300자 내외 문단, 소제목 사용, 시각 자료 활용
[해시태그] 포스트 내용과 관련 해시태그 3~5개를 마지막 라인에 작성합니다.
* 차량 구매에 관심있는 30~50대 한국인을 주요 타겟으로 합니다.
* 포스트 상단에는 글의 요약을 제공합니다.`

// StyleExemplar is appended to every instruction template so the model has a
// concrete post to imitate.
const StyleExemplar = ` [예시 포스트 작성-참조 필요]
##리스렌트 자동차세 어떻게 납부하나요?
###이 상품을 이용하면 내가 직접 안내도 된다

작성일 2023.12.26.

####인트로
돌아온 12월, 자동차세는 납부하셨나요?

자동차를 구매하면 매년 내야 하는 자동차세. 만약 리스나 장기렌트로 차량을 타고 있다면 어떻게 납부해야 할까요?

오늘은 자동차세란 무엇이고 리스와 장기렌트 이용 시 자동차세를 어떻게 납부하게 되는지에 대해 이야기 나누려 합니다.

####자동차세란 무엇인가요? 👇
🚖 자동차세
자동차세란 자동차를 소유하고 있는 개인이 납부하는 세금입니다. 차량 소유에 대한 재산세의 성격과 도로 이용 등을 통해 발생하는 환경 오염에 대한 부담금의 성격을 동시에 지니고 있습니다.

#####📅 자동차세는 언제 납부 하나요?

자동차세를 납부하는 방법은 두 가지에요. 매년 1월 1년치 자동차세를 한 번에 완납할 수 있으며, 이 경우 약 7%의 감면 혜택을 받을 수 있습니다.

일 년에 두 번으로 나누어 분납도 가능한데요. 이 경우 1기분의 6월, 2기분은 12월로 6개월에 한 번씩 납부합니다. 만약 6월과 12월 차량을 신규 등록한다면 그 달에 한하여 자동차세는 다음 달인 7월 혹은 1월에 고지됩니다.

#####💰 자동차세는 어떻게 산정되나요?

자동차세의 경우 승용차, 승합차, 화물차 등 차종마다 산정 방법이 조금씩 다른데요. 개인용 승용차의 경우 배기량이 기준이 됩니다.

비 영업용 승용차를 기준으로 1,000cc 이하일 때 cc 당 80원, 1,600cc 이하일 때에는 cc 당 140원, 1,600cc를 초과했을 때에는 cc 당 200원이 부과됩니다. cc가 높을수록 자동차세 또한 높은 것이죠.

#####⚡️ 전기차는 자동차세를 어떻게 내나요?

배기량이 없는 전기차의 경우는 예외로 분류되어 비영업용 승용차 기준 대당 10만 원을 납부하고 있는데요. 최근 이 세액에 대한 형평성이 논란이 되며 가격 혹은 차량의 무게를 기준으로 자동차세가 재편될 가능성이 높아지고 있습니다.

🤔 그렇다면 리스나 장기렌트의 경우에는 자동차세를 어떻게 납부할까요?

####리스렌트는 자동차세를 어떻게 낼까?👇
#####📃 리스의 자동차세

리스와 장기렌트 또한 자동차세 납부의 의무에서 예외는 아닌데요.

리스의 자동차세는 차량 구매와 마찬가지로 이용자가 스스로 납부하게 됩니다. 1월 완납 혹은 6월과 12월 두차례 분납이 가능한 것이죠.

#####🧾 장기렌트의 자동차세

장기렌트의 경우 조금 다릅니다. 렌트카 회사에서 자동차세를 먼저 납부하고 이용자는 월 이용료에 나눠 납부하는데요.

그래서 장기렌트의 이용자는 자동차세를 신경 쓸 필요가 없습니다. 고배기량의 자동차라서 자동차세가 부담되거나, 매년 내야하는 자동차세를 챙기기가 불편했던 분들이라면 장기렌트도 좋은 선택이 될 수 있겠네요.

💡 자동차세 납부 이외에도 다양한 리스와 장기렌트의 장점은 리스의 장점과 단점, 장기렌트의 장점과 단점 콘텐츠에서 확인해 보실 수 있습니다.

####🪧 마치며
매년 6월과 12월 납부하는 자동차세. 매년 돌아오는 납부 기간이 조금은 귀찮다면 직접 납부할 필요가 없는 장기렌트는 어떨까요?
`

// QualitySystemPrompt instructs the model used by ClaudeEvaluator.
const QualitySystemPrompt = `You are a blog editor reviewing a Korean marketing blog post. Score it from 0 to 100 against these criteria:
- Length close to 2,000 Korean characters including spaces
- Friendly explanatory tone with emoji, emphasis and easy explanations of jargon
- Concrete figures with named sources
- Paragraphs of about 300 characters with subheadings
- A summary at the top of the post
- 3 to 5 related hashtags on the last line

When you are done, use the save_quality_assessment tool to provide:
1. score: An integer from 0 to 100
2. feedback: Two or three sentences in Korean describing what to improve`

// Assemble replaces every occurrence of the topic and category placeholders
// in template. An empty value leaves its placeholder in place, which keeps
// previews readable while the user is still typing.
func Assemble(template, topic, category string) string {
	prompt := template
	if topic != "" {
		prompt = strings.ReplaceAll(prompt, TopicPlaceholder, topic)
	}

	if category != "" {
		prompt = strings.ReplaceAll(prompt, CategoryPlaceholder, category)
	}

	return prompt
}

// BuildPrompt appends the style exemplar to instructions and substitutes the
// placeholders. This is the prompt sent to the generation service.
func BuildPrompt(instructions, topic, category string) string {
	return Assemble(instructions+StyleExemplar, topic, category)
}

// ApplyKeyword substitutes a batch row's keyword into its topic.
func ApplyKeyword(topic, keyword string) string {
	return strings.ReplaceAll(topic, KeywordPlaceholder, keyword)
}
