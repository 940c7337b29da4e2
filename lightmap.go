package palgen

import (
	"fmt"
	"log/slog"

	"github.com/wbrown/palgen/imageutil"
)

// Lightmap records, for every palette color and every shade step, the
// palette index closest to that color darkened by the step. Shade 0 is
// full brightness; shade s darkens by s/shades, so the last step never
// reaches black.
type Lightmap struct {
	shades  int
	palette Palette
	// indices is row-major by palette index: indices[i*shades+s].
	indices []int
}

// LightmapOption is a functional option for GenerateLightmap.
type LightmapOption func(*lightmapConfig)

type lightmapConfig struct {
	matcher  MatcherKind
	progress func(done, total int)
	logger   *slog.Logger
}

// WithMatcher selects the nearest-color search. The default is
// MatcherBrute.
func WithMatcher(kind MatcherKind) LightmapOption {
	return func(c *lightmapConfig) {
		c.matcher = kind
	}
}

// WithProgress registers a callback invoked after each palette color has
// been shaded, with the number of colors done and the total.
func WithProgress(fn func(done, total int)) LightmapOption {
	return func(c *lightmapConfig) {
		c.progress = fn
	}
}

// WithLightmapLogger sets the logger used for generation diagnostics.
func WithLightmapLogger(logger *slog.Logger) LightmapOption {
	return func(c *lightmapConfig) {
		c.logger = logger
	}
}

// GenerateLightmap shades every color of p in shades steps and maps each
// darkened color back to its nearest palette entry. Every cell of the
// result refers to an actual palette color.
func GenerateLightmap(p Palette, shades int, opts ...LightmapOption) (*Lightmap, error) {
	cfg := lightmapConfig{matcher: MatcherBrute, logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if shades < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidShades, shades)
	}
	matcher, err := NewMatcher(cfg.matcher, p.colors)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s matcher: %w", cfg.matcher, err)
	}

	n := p.Len()
	lm := &Lightmap{
		shades:  shades,
		palette: p,
		indices: make([]int, n*shades),
	}
	for i, c := range p.colors {
		for s := 0; s < shades; s++ {
			ideal := c.darken(float64(s) / float64(shades))
			lm.indices[i*shades+s] = matcher.Nearest(ideal)
		}
		if cfg.progress != nil {
			cfg.progress(i+1, n)
		}
	}

	cfg.logger.Debug("generated lightmap",
		"colors", n, "shades", shades, "matcher", cfg.matcher)
	return lm, nil
}

// Shades returns the number of shade steps.
func (lm *Lightmap) Shades() int { return lm.shades }

// Len returns the number of palette colors covered.
func (lm *Lightmap) Len() int { return lm.palette.Len() }

// Palette returns the palette the lightmap was generated from.
func (lm *Lightmap) Palette() Palette { return lm.palette }

// Index returns the palette index chosen for palette color i at shade s.
func (lm *Lightmap) Index(i, s int) int {
	return lm.indices[i*lm.shades+s]
}

// At returns the palette color chosen for palette color i at shade s.
func (lm *Lightmap) At(i, s int) RGB {
	return lm.palette.colors[lm.Index(i, s)]
}

// Grid returns the lightmap as grid[shade][paletteIndex].
func (lm *Lightmap) Grid() [][]RGB {
	grid := make([][]RGB, lm.shades)
	for s := range grid {
		grid[s] = make([]RGB, lm.Len())
		for i := range grid[s] {
			grid[s][i] = lm.At(i, s)
		}
	}
	return grid
}

// Image renders the lightmap as a raster Shades() wide and Len() tall:
// one row per palette color, one column per shade step.
func (lm *Lightmap) Image() *imageutil.RGBAImage {
	return lm.ImagePadded(lm.Len())
}

// ImagePadded renders the lightmap like Image but at least rows tall,
// filling the extra rows with black. Passing the palette capacity gives
// a lightmap whose rows line up with every possible palette index.
func (lm *Lightmap) ImagePadded(rows int) *imageutil.RGBAImage {
	if rows < lm.Len() {
		rows = lm.Len()
	}
	img := imageutil.NewRGBAImage(lm.shades, rows)
	for i := 0; i < rows; i++ {
		for s := 0; s < lm.shades; s++ {
			c := Black
			if i < lm.Len() {
				c = lm.At(i, s)
			}
			img.SetRGB(s, i, imageutil.RGB(c))
		}
	}
	return img
}

// Save writes the lightmap raster to path, padded to rows when rows
// exceeds the palette length.
func (lm *Lightmap) Save(path string, rows int) error {
	if err := imageutil.SaveImage(lm.ImagePadded(rows), path); err != nil {
		return fmt.Errorf("failed to write lightmap %s: %w", path, err)
	}
	return nil
}
