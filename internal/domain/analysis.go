package domain

import (
	"strings"
	"time"
)

// MaxPostTextLen caps the analyzed text stored per post, counted in characters.
const MaxPostTextLen = 5000

type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	}
	return false
}

type Emotion string

const (
	EmotionJoy      Emotion = "Joy"
	EmotionAnger    Emotion = "Anger"
	EmotionSadness  Emotion = "Sadness"
	EmotionFear     Emotion = "Fear"
	EmotionSurprise Emotion = "Surprise"
	EmotionNeutral  Emotion = "Neutral"
)

func (e Emotion) Valid() bool {
	switch e {
	case EmotionJoy, EmotionAnger, EmotionSadness, EmotionFear, EmotionSurprise, EmotionNeutral:
		return true
	}
	return false
}

// RawPost is a fetched post before classification. It is never persisted.
type RawPost struct {
	Title     string
	Body      string
	URL       string
	Score     int
	Subreddit string
	CreatedAt time.Time
}

// Text joins title and body the way the classifiers see them.
func (p RawPost) Text() string {
	return p.Title + " " + p.Body
}

type AnalyzedPost struct {
	ID        int64     `json:"id"`
	Topic     string    `json:"topic"`
	Text      string    `json:"post_text"`
	Sentiment Sentiment `json:"sentiment"`
	Emotion   Emotion   `json:"emotion"`
	CreatedAt time.Time `json:"created_at"`
}

type AnalysisSummary struct {
	RunID                 string            `json:"run_id"`
	Topic                 string            `json:"topic"`
	TotalPosts            int               `json:"total_posts"`
	Posts                 []AnalyzedPost    `json:"posts"`
	SentimentDistribution map[Sentiment]int `json:"sentiment_distribution"`
	EmotionDistribution   map[Emotion]int   `json:"emotion_distribution"`
}

type TrendPoint struct {
	Date     string `json:"date"`
	Positive int    `json:"positive"`
	Negative int    `json:"negative"`
	Neutral  int    `json:"neutral"`
}

// Total is the number of posts counted in the bucket.
func (p TrendPoint) Total() int {
	return p.Positive + p.Negative + p.Neutral
}

// Add counts one post by its stored sentiment label. Anything that is not
// exactly positive or negative, ignoring case, lands in neutral.
func (p *TrendPoint) Add(sentiment string) {
	switch strings.ToLower(sentiment) {
	case "positive":
		p.Positive++
	case "negative":
		p.Negative++
	default:
		p.Neutral++
	}
}

// TruncateRunes cuts s to at most n characters without splitting a rune.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
