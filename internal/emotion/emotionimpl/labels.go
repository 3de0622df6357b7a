package emotionimpl

import (
	"strings"

	"github.com/orgball2608/sentiment-trend-analyzer/internal/domain"
)

var modelLabels = map[string]domain.Emotion{
	"joy":      domain.EmotionJoy,
	"anger":    domain.EmotionAnger,
	"sadness":  domain.EmotionSadness,
	"fear":     domain.EmotionFear,
	"surprise": domain.EmotionSurprise,
	"neutral":  domain.EmotionNeutral,
}

// FromLabel maps a raw model label, ignoring case. Unknown labels are Neutral.
func FromLabel(label string) domain.Emotion {
	if e, ok := modelLabels[strings.ToLower(strings.TrimSpace(label))]; ok {
		return e
	}
	return domain.EmotionNeutral
}
