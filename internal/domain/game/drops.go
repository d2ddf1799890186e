package game

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrBadDropRate reports a drop rate string that cannot be parsed or
// falls outside (0, 1].
var ErrBadDropRate = errors.New("game: bad drop rate")

// ParseDropRate converts a drop rate string to a probability. It
// accepts fraction ("1/5000"), percentage ("2%") and plain decimal
// ("0.002") forms.
func ParseDropRate(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrBadDropRate)
	}
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrBadDropRate, s)
		}
		d, err := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if err != nil || d == 0 {
			return 0, fmt.Errorf("%w: %q", ErrBadDropRate, s)
		}
		return validRate(n/d, s)
	}
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		p, err := strconv.ParseFloat(strings.TrimSpace(pct), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrBadDropRate, s)
		}
		return validRate(p/100.0, s)
	}
	p, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadDropRate, s)
	}
	return validRate(p, s)
}

func validRate(p float64, src string) (float64, error) {
	if math.IsNaN(p) || p <= 0 || p > 1 {
		return 0, fmt.Errorf("%w: %q out of (0,1]", ErrBadDropRate, src)
	}
	return p, nil
}

// CumulativeProbability returns the chance of at least one success in
// the given number of independent attempts at rate p.
func CumulativeProbability(p float64, attempts int) float64 {
	if attempts <= 0 || p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	return 1 - math.Pow(1-p, float64(attempts))
}

// ExpectedAttempts returns the mean number of attempts before the
// first success at rate p, or 0 when p is not positive.
func ExpectedAttempts(p float64) int {
	if p <= 0 {
		return 0
	}
	return int(1 / p)
}

// LuckFactor compares attempts made against the expected count. Values
// above 1 mean the grind has run past its expected duration.
func LuckFactor(p float64, attempts int) float64 {
	expected := ExpectedAttempts(p)
	if expected == 0 {
		return 0
	}
	return float64(attempts) / float64(expected)
}
