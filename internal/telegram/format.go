package telegram

import (
	"fmt"
	"strings"

	"github.com/orgball2608/sentiment-trend-analyzer/internal/domain"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/formatter"
)

const maxPreviewRunes = 120

var (
	sentimentOrder = []domain.Sentiment{domain.SentimentPositive, domain.SentimentNegative, domain.SentimentNeutral}
	emotionOrder   = []domain.Emotion{
		domain.EmotionJoy, domain.EmotionAnger, domain.EmotionSadness,
		domain.EmotionFear, domain.EmotionSurprise, domain.EmotionNeutral,
	}
)

// FormatSummary renders a run summary as MarkdownV2.
func FormatSummary(s domain.AnalysisSummary) string {
	var sb strings.Builder

	sb.WriteString("*Analysis completed*\n")
	fmt.Fprintf(&sb, "Topic: *%s*\n", formatter.EscapeMarkdownV2(s.Topic))
	fmt.Fprintf(&sb, "Posts: %s\n", number(s.TotalPosts))

	sb.WriteString("\n*Sentiment*\n")
	for _, label := range sentimentOrder {
		fmt.Fprintf(&sb, "%s: %s\n", label, number(s.SentimentDistribution[label]))
	}

	sb.WriteString("\n*Emotion*\n")
	for _, label := range emotionOrder {
		if c := s.EmotionDistribution[label]; c > 0 {
			fmt.Fprintf(&sb, "%s: %s\n", label, number(c))
		}
	}

	fmt.Fprintf(&sb, "\n`%s`", formatter.EscapeMarkdownV2(s.RunID))

	return sb.String()
}

// FormatTrend renders daily sentiment counts as MarkdownV2, oldest day first.
func FormatTrend(topic string, points []domain.TrendPoint) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "*Trend for %s*\n", formatter.EscapeMarkdownV2(topic))
	if len(points) == 0 {
		sb.WriteString(formatter.EscapeMarkdownV2("No analyzed posts in this window."))
		return sb.String()
	}

	for _, p := range points {
		fmt.Fprintf(&sb, "`%s` positive %s, negative %s, neutral %s\n",
			formatter.EscapeMarkdownV2(p.Date), number(p.Positive), number(p.Negative), number(p.Neutral))
	}

	return sb.String()
}

// FormatResults lists stored posts with a short text preview.
func FormatResults(topic string, posts []domain.AnalyzedPost) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "*Latest results for %s*\n", formatter.EscapeMarkdownV2(topic))
	if len(posts) == 0 {
		sb.WriteString(formatter.EscapeMarkdownV2("Nothing stored yet. Try /analyze first."))
		return sb.String()
	}

	for i, p := range posts {
		fmt.Fprintf(&sb, "%d\\. *%s* / %s: %s\n",
			i+1, p.Sentiment, p.Emotion,
			formatter.EscapeMarkdownV2(preview(p.Text)))
	}

	return sb.String()
}

func number(n int) string {
	return formatter.EscapeMarkdownV2(formatter.FormatNumber(n))
}

func preview(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if r := []rune(text); len(r) > maxPreviewRunes {
		return string(r[:maxPreviewRunes]) + "..."
	}
	return text
}
