package models

import (
	"fmt"
	"strings"
)

// Mood is how the user felt after completing a habit
type Mood string

const (
	MoodExcellent Mood = "excellent"
	MoodGood      Mood = "good"
	MoodNeutral   Mood = "neutral"
	MoodBad       Mood = "bad"
	MoodTerrible  Mood = "terrible"
)

// Moods lists every mood from best to worst
var Moods = []Mood{MoodExcellent, MoodGood, MoodNeutral, MoodBad, MoodTerrible}

// Score maps a mood to its ordinal value (terrible=1 ... excellent=5).
// Unknown moods score 0.
func (m Mood) Score() int {
	switch m {
	case MoodExcellent:
		return 5
	case MoodGood:
		return 4
	case MoodNeutral:
		return 3
	case MoodBad:
		return 2
	case MoodTerrible:
		return 1
	default:
		return 0
	}
}

func (m Mood) Valid() bool {
	return m.Score() > 0
}

// ParseMood parses a mood name case-insensitively
func ParseMood(s string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("invalid mood %q (expected one of excellent, good, neutral, bad, terrible)", s)
	}
	return m, nil
}

// MoodPtr is a convenience for optional mood fields
func MoodPtr(m Mood) *Mood {
	return &m
}
