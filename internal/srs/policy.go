package srs

import (
	"errors"
	"fmt"
	"time"

	"github.com/almasov/flashdeck/internal/domain/entities"
)

// ErrInvalidPolicy is returned when a scheduling policy fails validation.
// Check with errors.Is.
var ErrInvalidPolicy = errors.New("invalid scheduling policy")

// Policy holds the scheduling configuration for interval computation and
// day-boundary math. It is immutable per evaluation; build one from config
// at startup and pass it by value.
type Policy struct {
	// Initial intervals (days) applied on the very first review of an item,
	// looked up directly by rating.
	InitialAgain int
	InitialHard  int
	InitialGood  int
	InitialEasy  int

	// Multiplicative factors applied to the current interval on subsequent
	// reviews. Again shrinks (< 1), Easy grows (> 1).
	FactorAgain float64
	FactorHard  float64
	FactorGood  float64
	FactorEasy  float64

	// MaximumInterval is the upper clamp, in days.
	MaximumInterval int

	// Anchor is the civil time zone used for "today" and day-boundary
	// decisions. It must be supplied explicitly; there is no default zone.
	Anchor *time.Location
}

// DefaultPolicy returns the stock policy with the given anchor zone.
func DefaultPolicy(anchor *time.Location) Policy {
	return Policy{
		InitialAgain:    1,
		InitialHard:     2,
		InitialGood:     4,
		InitialEasy:     7,
		FactorAgain:     0.5,
		FactorHard:      1.0,
		FactorGood:      1.2,
		FactorEasy:      1.3,
		MaximumInterval: 365,
		Anchor:          anchor,
	}
}

// InitialInterval returns the first-review interval for the given rating.
func (p Policy) InitialInterval(q entities.Quality) (int, error) {
	switch q {
	case entities.QualityAgain:
		return p.InitialAgain, nil
	case entities.QualityHard:
		return p.InitialHard, nil
	case entities.QualityGood:
		return p.InitialGood, nil
	case entities.QualityEasy:
		return p.InitialEasy, nil
	}
	return 0, fmt.Errorf("%w: %q", entities.ErrInvalidQuality, q)
}

// Factor returns the interval multiplier for the given rating.
func (p Policy) Factor(q entities.Quality) (float64, error) {
	switch q {
	case entities.QualityAgain:
		return p.FactorAgain, nil
	case entities.QualityHard:
		return p.FactorHard, nil
	case entities.QualityGood:
		return p.FactorGood, nil
	case entities.QualityEasy:
		return p.FactorEasy, nil
	}
	return 0, fmt.Errorf("%w: %q", entities.ErrInvalidQuality, q)
}

// Validate checks that the policy is internally consistent.
func (p Policy) Validate() error {
	for _, iv := range []struct {
		name string
		days int
	}{
		{"again", p.InitialAgain},
		{"hard", p.InitialHard},
		{"good", p.InitialGood},
		{"easy", p.InitialEasy},
	} {
		if iv.days < 1 {
			return fmt.Errorf("%w: initial interval %s = %d, must be >= 1", ErrInvalidPolicy, iv.name, iv.days)
		}
	}

	for _, f := range []struct {
		name   string
		factor float64
	}{
		{"again", p.FactorAgain},
		{"hard", p.FactorHard},
		{"good", p.FactorGood},
		{"easy", p.FactorEasy},
	} {
		if f.factor <= 0 {
			return fmt.Errorf("%w: factor %s = %f, must be > 0", ErrInvalidPolicy, f.name, f.factor)
		}
	}

	if p.FactorAgain >= 1 {
		return fmt.Errorf("%w: again factor %f must shrink the interval (< 1)", ErrInvalidPolicy, p.FactorAgain)
	}
	if p.FactorEasy <= 1 {
		return fmt.Errorf("%w: easy factor %f must grow the interval (> 1)", ErrInvalidPolicy, p.FactorEasy)
	}
	if p.MaximumInterval < 1 {
		return fmt.Errorf("%w: maximum interval %d must be >= 1", ErrInvalidPolicy, p.MaximumInterval)
	}
	if p.Anchor == nil {
		return fmt.Errorf("%w: anchor time zone is required", ErrInvalidPolicy)
	}

	return nil
}
