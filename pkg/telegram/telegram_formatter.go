package telegram

import (
	"fmt"
	"strings"

	"golang-stock-sentiment/internal/sentiment/dto"
)

// maxHeadlines bounds how many headlines are listed in one message.
const maxHeadlines = 5

// FormatAnalysisForTelegram formats an analysis result into a Markdown message.
func FormatAnalysisForTelegram(result *dto.AnalysisResult) string {
	var builder strings.Builder

	builder.WriteString("--- 📰 *News Sentiment* ---\n\n")
	builder.WriteString(fmt.Sprintf("📈 *Ticker:* `%s`\n", result.Ticker))

	var verdictIcon string
	switch {
	case strings.HasPrefix(result.Verdict, "Bullish"):
		verdictIcon = "🚀"
	case strings.HasPrefix(result.Verdict, "Bearish"):
		verdictIcon = "📉"
	default:
		verdictIcon = "😐"
	}
	builder.WriteString(fmt.Sprintf("%s *Verdict:* %s\n", verdictIcon, result.Verdict))
	builder.WriteString(fmt.Sprintf("📊 *Bullish:* %d | *Bearish:* %d | *Neutral:* %d\n",
		result.Counts.Bullish, result.Counts.Bearish, result.Counts.Neutral))

	if len(result.Items) > 0 {
		builder.WriteString("\n*Headlines:*\n")
		for i, item := range result.Items {
			if i == maxHeadlines {
				builder.WriteString(fmt.Sprintf("_...and %d more_\n", len(result.Items)-maxHeadlines))
				break
			}
			builder.WriteString(fmt.Sprintf("%s %s _(%.0f%%)_\n", sentimentIcon(item.Sentiment), escapeMarkdown(item.Headline), item.Confidence*100))
		}
	}

	return builder.String()
}

func sentimentIcon(label string) string {
	switch label {
	case "Positive":
		return "😊"
	case "Negative":
		return "😟"
	default:
		return "😐"
	}
}

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
