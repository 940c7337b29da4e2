package palgen

import (
	"fmt"
	"strings"
)

// FindNearest returns the index of the candidate closest to target by sum
// of squared channel differences. Candidates are scanned in index order
// and the best is only replaced on a strict improvement, so the lowest
// index wins ties.
func FindNearest(target RGB, candidates []RGB) (int, error) {
	if len(candidates) == 0 {
		return 0, ErrEmptyPalette
	}
	return nearestIndex(target, candidates), nil
}

func nearestIndex(target RGB, candidates []RGB) int {
	best := 0
	bestDist := target.distanceSq(candidates[0])
	for i := 1; i < len(candidates); i++ {
		if d := target.distanceSq(candidates[i]); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Matcher finds the palette index closest to a target color. All
// implementations agree exactly: squared RGB distance, lowest index on
// ties.
type Matcher interface {
	Nearest(target RGB) int
}

// MatcherKind names a Matcher implementation.
type MatcherKind string

const (
	// MatcherBrute scans every palette color for every lookup.
	MatcherBrute MatcherKind = "brute"
	// MatcherKDTree searches a k-d tree built over the palette.
	MatcherKDTree MatcherKind = "kdtree"
)

// ParseMatcherKind maps a name to a MatcherKind, case-insensitively.
func ParseMatcherKind(s string) (MatcherKind, error) {
	switch k := MatcherKind(strings.ToLower(strings.TrimSpace(s))); k {
	case "", MatcherBrute:
		return MatcherBrute, nil
	case MatcherKDTree, "kd":
		return MatcherKDTree, nil
	default:
		return "", fmt.Errorf("unknown matcher %q, options are brute or kdtree", s)
	}
}

// NewMatcher builds the Matcher of the given kind over colors.
func NewMatcher(kind MatcherKind, colors []RGB) (Matcher, error) {
	switch kind {
	case MatcherBrute, "":
		return NewBruteForceMatcher(colors)
	case MatcherKDTree:
		return NewKDTreeMatcher(colors)
	default:
		return nil, fmt.Errorf("unknown matcher %q", kind)
	}
}

// BruteForceMatcher compares the target against every palette color.
type BruteForceMatcher struct {
	colors []RGB
}

// NewBruteForceMatcher returns a brute force matcher over a copy of colors.
func NewBruteForceMatcher(colors []RGB) (*BruteForceMatcher, error) {
	if len(colors) == 0 {
		return nil, ErrEmptyPalette
	}
	c := make([]RGB, len(colors))
	copy(c, colors)
	return &BruteForceMatcher{colors: c}, nil
}

// Nearest implements Matcher.
func (m *BruteForceMatcher) Nearest(target RGB) int {
	return nearestIndex(target, m.colors)
}
