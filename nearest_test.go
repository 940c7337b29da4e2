package palgen

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindNearest(t *testing.T) {
	testCases := []struct {
		name       string
		target     RGB
		candidates []RGB
		want       int
	}{
		{"exact duplicate keeps lowest index", RGB{10, 10, 10},
			[]RGB{{10, 10, 10}, {10, 10, 10}, {5, 5, 5}}, 0},
		{"equidistant keeps lowest index", RGB{10, 10, 10},
			[]RGB{{20, 20, 20}, {0, 0, 0}}, 0},
		{"closest later entry", RGB{200, 10, 10},
			[]RGB{{0, 0, 0}, {255, 255, 255}, {255, 0, 0}}, 2},
		{"far target beyond legacy cutoff", RGB{255, 255, 255},
			[]RGB{{0, 0, 0}, {10, 0, 0}}, 1},
		{"single candidate", RGB{1, 2, 3}, []RGB{{200, 100, 0}}, 0},
		{"duplicate after closer", RGB{100, 100, 100},
			[]RGB{{0, 0, 0}, {99, 99, 99}, {101, 101, 101}, {99, 99, 99}}, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FindNearest(tc.target, tc.candidates)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)

			for _, kind := range []MatcherKind{MatcherBrute, MatcherKDTree} {
				m, err := NewMatcher(kind, tc.candidates)
				require.NoError(t, err)
				assert.Equal(t, tc.want, m.Nearest(tc.target), "matcher %s", kind)
			}
		})
	}
}

func TestFindNearestEmpty(t *testing.T) {
	_, err := FindNearest(RGB{}, nil)
	assert.ErrorIs(t, err, ErrEmptyPalette)

	for _, kind := range []MatcherKind{MatcherBrute, MatcherKDTree} {
		_, err := NewMatcher(kind, []RGB{})
		assert.ErrorIs(t, err, ErrEmptyPalette, "matcher %s", kind)
	}
}

func randomPalette(rng *rand.Rand, n int, levels int) []RGB {
	step := 256 / levels
	colors := make([]RGB, n)
	for i := range colors {
		colors[i] = RGB{
			uint8(rng.Intn(levels) * step),
			uint8(rng.Intn(levels) * step),
			uint8(rng.Intn(levels) * step),
		}
	}
	return colors
}

func TestKDTreeMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	// Coarse levels produce many duplicates and equidistant candidates,
	// which is where tie-breaking goes wrong.
	for _, tc := range []struct{ size, levels int }{
		{1, 256}, {2, 4}, {7, 2}, {16, 4}, {64, 8}, {256, 256}, {300, 6},
	} {
		colors := randomPalette(rng, tc.size, tc.levels)
		brute, err := NewBruteForceMatcher(colors)
		require.NoError(t, err)
		tree, err := NewKDTreeMatcher(colors)
		require.NoError(t, err)

		for i := 0; i < 2000; i++ {
			target := RGB{uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256))}
			if i%4 == 0 {
				// Targets on the palette lattice hit exact ties.
				target = randomPalette(rng, 1, tc.levels)[0]
			}
			want := brute.Nearest(target)
			if got := tree.Nearest(target); got != want {
				t.Fatalf("size %d levels %d target %v: kdtree %d (%v), brute %d (%v)",
					tc.size, tc.levels, target, got, colors[got], want, colors[want])
			}
		}
	}
}

func TestKDTreeKeepsEveryColor(t *testing.T) {
	colors := randomPalette(rand.New(rand.NewSource(7)), 100, 256)
	tree, err := NewKDTreeMatcher(colors)
	require.NoError(t, err)

	var count func(*ColorNode) int
	count = func(n *ColorNode) int {
		if n == nil {
			return 0
		}
		return 1 + count(n.Left) + count(n.Right)
	}
	assert.Equal(t, len(colors), count(tree.root))
}

func TestParseMatcherKind(t *testing.T) {
	for in, want := range map[string]MatcherKind{
		"": MatcherBrute, "brute": MatcherBrute, "KDTree": MatcherKDTree, "kd": MatcherKDTree,
	} {
		got, err := ParseMatcherKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseMatcherKind("octree")
	assert.Error(t, err)
}
