package entities

import (
	"errors"
	"fmt"
)

// ErrInvalidQuality is returned when a review carries a rating outside the
// four known values. Check with errors.Is.
var ErrInvalidQuality = errors.New("invalid quality rating")

// Quality represents the user's assessment of recall quality for one review.
type Quality string

const (
	QualityAgain Quality = "again" // failed to recall
	QualityHard  Quality = "hard"  // recalled with difficulty
	QualityGood  Quality = "good"  // recalled with some effort
	QualityEasy  Quality = "easy"  // recalled effortlessly
)

// Qualities lists all valid ratings in ascending order of recall quality.
var Qualities = []Quality{QualityAgain, QualityHard, QualityGood, QualityEasy}

// IsValid reports whether q is one of the four known ratings.
func (q Quality) IsValid() bool {
	switch q {
	case QualityAgain, QualityHard, QualityGood, QualityEasy:
		return true
	}
	return false
}

func (q Quality) String() string {
	return string(q)
}

// ParseQuality converts a stored or user-supplied string into a Quality.
// Unknown values yield ErrInvalidQuality.
func ParseQuality(s string) (Quality, error) {
	q := Quality(s)
	if !q.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidQuality, s)
	}
	return q, nil
}
