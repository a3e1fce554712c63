// internal/app/recommend/buckets.go
package recommend

import (
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
)

// Event buckets. An event lands in the first bucket whose keyword list
// matches its folded title+description; everything else is BucketOther.
const (
	BucketSupportive  = "supportive"
	BucketEducational = "educational"
	BucketProsocial   = "prosocial"
	BucketOther       = "other"
)

var bucketKeywords = []struct {
	name  string
	words []string
}{
	{BucketSupportive, []string{
		"support", "listening", "counsel", "therapy", "grief", "healing",
		"wellness", "mindfulness", "meditation", "circle", "peer", "care",
		"mental health", "recovery", "comfort",
	}},
	{BucketEducational, []string{
		"workshop", "class", "course", "training", "learn", "seminar",
		"lecture", "tutorial", "skills", "education", "study", "talk",
	}},
	{BucketProsocial, []string{
		"volunteer", "cleanup", "clean up", "donate", "donation", "drive",
		"fundraiser", "charity", "shelter", "food bank", "community service",
		"plant", "mentor", "helping",
	}},
}

// Bucket classifies an event by keyword match on its title+description.
func Bucket(title, description string) string {
	folded := text.Fold(title + " " + description)
	for _, b := range bucketKeywords {
		for _, w := range b.words {
			if strings.Contains(folded, w) {
				return b.name
			}
		}
	}
	return BucketOther
}

// BucketForMood maps a user's mood onto the bucket to recommend from:
// a down mood gets supportive events, an up mood gets prosocial ones, and
// neutral gets educational.
func BucketForMood(mood string) string {
	switch mood {
	case MoodNegative:
		return BucketSupportive
	case MoodPositive:
		return BucketProsocial
	default:
		return BucketEducational
	}
}
