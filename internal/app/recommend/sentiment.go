// internal/app/recommend/sentiment.go
package recommend

import (
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
)

// Mood categories derived from a user's 30-day journal sentiment average.
const (
	MoodNegative = "negative"
	MoodNeutral  = "neutral"
	MoodPositive = "positive"
)

// Thresholds for mood categorization. The exact cut points are a heuristic,
// not a contract; they only need to separate clearly-down from clearly-up.
const (
	negativeBelow = -0.2
	positiveAbove = 0.2
)

// Small sentiment lexicon. Words are matched after case folding and
// diacritic stripping, so "Héroïque" and "heroique" score the same.
var lexicon = map[string]float64{
	// positive
	"happy": 1, "joy": 1, "joyful": 1, "grateful": 1, "thankful": 1,
	"hopeful": 1, "hope": 0.5, "calm": 0.5, "peaceful": 1, "proud": 1,
	"excited": 1, "love": 1, "loved": 1, "great": 0.5, "good": 0.5,
	"better": 0.5, "wonderful": 1, "amazing": 1, "fun": 0.5, "relaxed": 0.5,
	"supported": 1, "connected": 0.5, "energized": 1, "accomplished": 1,

	// negative
	"sad": -1, "unhappy": -1, "angry": -1, "anxious": -1, "anxiety": -1,
	"stressed": -1, "stress": -0.5, "lonely": -1, "alone": -0.5,
	"tired": -0.5, "exhausted": -1, "worried": -1, "afraid": -1,
	"scared": -1, "depressed": -1, "hopeless": -1, "overwhelmed": -1,
	"bad": -0.5, "worse": -0.5, "terrible": -1, "awful": -1, "hurt": -0.5,
	"cry": -1, "crying": -1, "fail": -0.5, "failed": -0.5,
}

// Score returns a lexicon sentiment score for free text in [-1, 1].
// Zero means neutral or no recognized words.
func Score(s string) float64 {
	var sum float64
	var hits int
	for _, w := range strings.FieldsFunc(text.Fold(s), func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < '0' || r > '9')
	}) {
		if v, ok := lexicon[w]; ok {
			sum += v
			hits++
		}
	}
	if hits == 0 {
		return 0
	}
	score := sum / float64(hits)
	if score > 1 {
		return 1
	}
	if score < -1 {
		return -1
	}
	return score
}

// Mood buckets a sentiment average into negative/neutral/positive.
func Mood(sentiment float64) string {
	switch {
	case sentiment < negativeBelow:
		return MoodNegative
	case sentiment > positiveAbove:
		return MoodPositive
	default:
		return MoodNeutral
	}
}
