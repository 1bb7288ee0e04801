package usecase

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	finentity "github.com/Get2Core/fs-project/internal/feature/financials/domain/entity"
)

const (
	eok            = 100_000_000 // 1억원
	maxSummaryRune = 500
)

var (
	summaryBalanceAccounts = []string{"자산총계", "부채총계", "자본총계"}
	summaryIncomeAccounts  = []string{"매출액", "영업이익", "당기순이익(손실)"}

	krw = message.NewPrinter(language.Korean)
)

// BuildSummary は統合財務諸表をプロンプト用のテキスト要約に変換します。
// 金額は億ウォン単位、比率は最新年度のものです。
func BuildSummary(st finentity.IntegratedStatement, fs finentity.FsType) string {
	var lines []string

	if len(st.Periods) > 0 {
		lo, hi := st.Periods[0].Year, st.Periods[0].Year
		for _, p := range st.Periods[1:] {
			lo = min(lo, p.Year)
			hi = max(hi, p.Year)
		}
		lines = append(lines, fmt.Sprintf("📅 분석 기간: %d년 ~ %d년 (%d개년)", lo, hi, len(st.Periods)), "")
	}

	bs := st.BalanceSheet.Get(fs)
	if len(bs) > 0 {
		lines = append(lines, "📊 재무상태표 (단위: 억원)", strings.Repeat("-", 50))
		lines = appendAccounts(lines, bs, summaryBalanceAccounts)
		lines = append(lines, "")
	}

	is := st.IncomeStatement.Get(fs)
	if len(is) > 0 {
		lines = append(lines, "💰 손익계산서 (단위: 억원)", strings.Repeat("-", 50))
		lines = appendAccounts(lines, is, summaryIncomeAccounts)
		lines = append(lines, "")
	}

	if len(bs) > 0 && len(is) > 0 && len(st.Periods) > 0 {
		lines = append(lines, "📈 주요 재무 비율 (최근 연도 기준)", strings.Repeat("-", 50))
		lines = append(lines, ratios(bs, is)...)
	}

	return strings.Join(lines, "\n")
}

func appendAccounts(lines []string, series map[string][]finentity.Point, accounts []string) []string {
	for _, account := range accounts {
		points, ok := series[account]
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("\n【%s】", account))
		for _, p := range points {
			lines = append(lines, fmt.Sprintf("  %d년: %s억원", p.Year, FormatEok(p.Amount)))
		}
	}
	return lines
}

func ratios(bs, is map[string][]finentity.Point) []string {
	liabilities := latest(bs, "부채총계")
	equity := latest(bs, "자본총계")
	revenue := latest(is, "매출액")
	operating := latest(is, "영업이익")
	net := latest(is, "당기순이익(손실)")

	var out []string
	if equity > 0 {
		out = append(out, fmt.Sprintf("  부채비율: %.1f%%", percent(liabilities, equity)))
	}
	if revenue > 0 {
		out = append(out,
			fmt.Sprintf("  영업이익률: %.1f%%", percent(operating, revenue)),
			fmt.Sprintf("  순이익률: %.1f%%", percent(net, revenue)),
		)
	}
	if equity > 0 {
		out = append(out, fmt.Sprintf("  자기자본이익률(ROE): %.1f%%", percent(net, equity)))
	}
	return out
}

func latest(series map[string][]finentity.Point, account string) int64 {
	points := series[account]
	if len(points) == 0 {
		return 0
	}
	return points[len(points)-1].Amount
}

func percent(a, b int64) float64 {
	return float64(a) / float64(b) * 100
}

// FormatEok はウォン金額を億単位に丸め、3桁区切りで表示します（例: 1,234）。
func FormatEok(amount int64) string {
	return krw.Sprintf("%d", int64(math.RoundToEven(float64(amount)/eok)))
}

// TruncateSummary はレスポンス用に要約を500文字で切り詰めます。
func TruncateSummary(s string) string {
	if utf8.RuneCountInString(s) <= maxSummaryRune {
		return s
	}
	return string([]rune(s)[:maxSummaryRune]) + "..."
}

// BuildPrompt は財務諸表の説明を依頼するプロンプトを組み立てます。
func BuildPrompt(companyName, fsTypeName, summary string) string {
	return fmt.Sprintf(`
다음은 %s의 %s 재무제표 데이터입니다. 
일반인도 이해하기 쉽게 재무 상태와 경영 성과를 설명해주세요.

%s

다음 내용을 포함하여 설명해주세요:
1. **재무 상태 요약**: 자산, 부채, 자본의 변화와 의미
2. **경영 성과 분석**: 매출, 영업이익, 당기순이익의 추세
3. **주요 특징**: 눈에 띄는 변화나 특이사항
4. **투자자 관점**: 이 데이터가 투자자에게 시사하는 점

설명은 친근하고 이해하기 쉬운 언어로 작성해주세요.
전문용어를 사용할 때는 간단한 설명을 덧붙여주세요.
최대 1000자 이내로 작성해주세요.
`, companyName, fsTypeName, summary)
}
