package palgen

import (
	"sort"
)

// ColorNode represents a node in a KD-tree that stores palette colors.
// Each node holds a color with its palette index, a left child, a right
// child, and the axis along which the colors are split.
type ColorNode struct {
	Color       RGB
	Index       int
	Left, Right *ColorNode
	SplitAxis   int
}

type indexedColor struct {
	color RGB
	index int
}

// KDTreeMatcher answers nearest-color queries with a KD-tree. It returns
// exactly what BruteForceMatcher returns, including the lowest-index
// tie-break, at a fraction of the cost for large palettes.
type KDTreeMatcher struct {
	root *ColorNode
}

// NewKDTreeMatcher builds a KD-tree over colors. Duplicate colors are all
// kept so that ties resolve to the lowest index.
func NewKDTreeMatcher(colors []RGB) (*KDTreeMatcher, error) {
	if len(colors) == 0 {
		return nil, ErrEmptyPalette
	}
	entries := make([]indexedColor, len(colors))
	for i, c := range colors {
		entries[i] = indexedColor{c, i}
	}
	return &KDTreeMatcher{root: buildKDTree(entries)}, nil
}

// Nearest implements Matcher.
func (m *KDTreeMatcher) Nearest(target RGB) int {
	best := nearestResult{index: m.root.Index, dist: target.distanceSq(m.root.Color)}
	m.root.nearestNeighbor(target, &best)
	return best.index
}

// buildKDTree constructs a KD-tree from a list of colors. Unlike a
// depth-capped tree every color ends up in a node, which exact matching
// requires.
func buildKDTree(entries []indexedColor) *ColorNode {
	if len(entries) == 0 {
		return nil
	}

	// Choose splitting axis based on the dimension with the largest variance
	axis := chooseSplitAxis(entries)

	// Sort colors along the chosen axis
	sort.Slice(entries, func(i, j int) bool {
		ci, cj := entries[i].color.component(axis), entries[j].color.component(axis)
		if ci != cj {
			return ci < cj
		}
		return entries[i].index < entries[j].index
	})

	median := len(entries) / 2
	return &ColorNode{
		Color:     entries[median].color,
		Index:     entries[median].index,
		Left:      buildKDTree(entries[:median]),
		Right:     buildKDTree(entries[median+1:]),
		SplitAxis: axis,
	}
}

// chooseSplitAxis returns the axis (0=R, 1=G, 2=B) with the largest
// variance.
func chooseSplitAxis(entries []indexedColor) int {
	var mean, variance [3]float64
	for _, e := range entries {
		for axis := 0; axis < 3; axis++ {
			mean[axis] += float64(e.color.component(axis))
		}
	}
	for axis := range mean {
		mean[axis] /= float64(len(entries))
	}
	for _, e := range entries {
		for axis := 0; axis < 3; axis++ {
			d := float64(e.color.component(axis)) - mean[axis]
			variance[axis] += d * d
		}
	}

	if variance[0] > variance[1] && variance[0] > variance[2] {
		return 0 // R axis
	} else if variance[1] > variance[2] {
		return 1 // G axis
	}
	return 2 // B axis
}

type nearestResult struct {
	index int
	dist  int
}

// better reports whether a candidate beats the current best. Equal
// distances go to the lower palette index.
func (r *nearestResult) better(index, dist int) bool {
	return dist < r.dist || (dist == r.dist && index < r.index)
}

// nearestNeighbor walks the tree, updating best with any closer node.
func (node *ColorNode) nearestNeighbor(target RGB, best *nearestResult) {
	if node == nil {
		return
	}

	if dist := node.Color.distanceSq(target); best.better(node.Index, dist) {
		best.index, best.dist = node.Index, dist
	}

	t := int(target.component(node.SplitAxis))
	n := int(node.Color.component(node.SplitAxis))
	next, other := node.Right, node.Left
	if t < n {
		next, other = node.Left, node.Right
	}

	next.nearestNeighbor(target, best)

	// Everything on the other side is at least axisDistance^2 away. An
	// equal distance may still hold a lower index, so only a strictly
	// larger bound prunes.
	axisDistance := t - n
	if axisDistance*axisDistance <= best.dist {
		other.nearestNeighbor(target, best)
	}
}
