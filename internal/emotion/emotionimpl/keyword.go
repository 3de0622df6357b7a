package emotionimpl

import (
	"strings"

	"github.com/orgball2608/sentiment-trend-analyzer/internal/domain"
)

type keywordSet struct {
	emotion domain.Emotion
	words   []string
}

// Order is the tie-break priority: earlier sets win equal counts.
var keywordSets = []keywordSet{
	{domain.EmotionJoy, []string{"happy", "excited", "thrilled", "joy", "delighted", "pleased", "wonderful", "amazing", "great"}},
	{domain.EmotionAnger, []string{"angry", "furious", "mad", "rage", "frustrated", "annoyed", "irritated", "disgusted"}},
	{domain.EmotionSadness, []string{"sad", "depressed", "disappointed", "unhappy", "miserable", "sorrow"}},
	{domain.EmotionFear, []string{"afraid", "scared", "fear", "worried", "anxious", "terrified", "frightened"}},
	{domain.EmotionSurprise, []string{"surprised", "shocked", "amazed", "astonished", "unexpected"}},
}

// KeywordClassifier counts, per emotion, how many of its keywords occur as
// substrings of the lower-cased text.
type KeywordClassifier struct{}

func (KeywordClassifier) Classify(text string) domain.Emotion {
	lower := strings.ToLower(text)

	best, bestCount := domain.EmotionNeutral, 0
	for _, set := range keywordSets {
		count := 0
		for _, w := range set.words {
			if strings.Contains(lower, w) {
				count++
			}
		}
		if count > bestCount {
			best, bestCount = set.emotion, count
		}
	}

	return best
}
