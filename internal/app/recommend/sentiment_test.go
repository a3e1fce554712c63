package recommend_test

import (
	"testing"

	"github.com/communitycare/carehub/internal/app/recommend"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"empty", "", 0},
		{"no recognized words", "the quick brown fox", 0},
		{"single positive", "happy", 1},
		{"single negative", "sad", -1},
		{"mixed cancels out", "happy sad", 0},
		{"averaged", "happy good", 0.75},
		{"case insensitive", "HAPPY", 1},
		{"punctuation split", "happy, grateful!", 1},
		{"diacritics folded", "so hàppy today", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := recommend.Score(tt.in); got != tt.want {
				t.Fatalf("Score(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestScore_Bounds(t *testing.T) {
	if got := recommend.Score("happy joy love amazing wonderful"); got > 1 {
		t.Fatalf("score exceeded upper bound: %v", got)
	}
	if got := recommend.Score("sad angry terrible awful hopeless"); got < -1 {
		t.Fatalf("score exceeded lower bound: %v", got)
	}
}

func TestMood(t *testing.T) {
	tests := []struct {
		sentiment float64
		want      string
	}{
		{-1, recommend.MoodNegative},
		{-0.21, recommend.MoodNegative},
		{-0.2, recommend.MoodNeutral},
		{0, recommend.MoodNeutral},
		{0.2, recommend.MoodNeutral},
		{0.21, recommend.MoodPositive},
		{1, recommend.MoodPositive},
	}
	for _, tt := range tests {
		if got := recommend.Mood(tt.sentiment); got != tt.want {
			t.Errorf("Mood(%v) = %q, want %q", tt.sentiment, got, tt.want)
		}
	}
}
