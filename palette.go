package palgen

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/wbrown/palgen/imageutil"
)

// Builder accumulates colors into a palette of fixed capacity. Colors are
// only ever appended; insertion order is the palette index order. Index 0
// is often treated as transparent by engines but gets no special handling
// here.
//
// A Builder is not safe for concurrent use. Call Finalize to obtain an
// immutable Palette for lightmap generation.
type Builder struct {
	width, height int
	colors        []RGB
	logger        *slog.Logger
}

// BuilderOption is a functional option for configuring a Builder.
type BuilderOption func(*Builder)

// WithLogger sets the logger used for builder diagnostics.
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = logger
	}
}

// NewBuilder creates an empty palette builder holding at most
// width*height colors.
func NewBuilder(width, height int, opts ...BuilderOption) (*Builder, error) {
	b := &Builder{logger: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}
	if err := b.Resize(width, height); err != nil {
		return nil, err
	}
	return b, nil
}

// Resize discards every color and resets the builder to an empty palette
// of the given dimensions.
func (b *Builder) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidSize, width, height)
	}
	b.width = width
	b.height = height
	b.colors = make([]RGB, 0, width*height)

	b.logger.Info("palette resized",
		"colors", width*height, "width", width, "height", height)
	return nil
}

// Width returns the palette raster width.
func (b *Builder) Width() int { return b.width }

// Height returns the palette raster height.
func (b *Builder) Height() int { return b.height }

// Cap returns the maximum number of colors the palette can hold.
func (b *Builder) Cap() int { return b.width * b.height }

// Len returns the number of colors appended so far.
func (b *Builder) Len() int { return len(b.colors) }

// AppendColor appends a single color. Appending to a full palette fails
// with ErrCapacityExceeded and leaves the builder unchanged.
func (b *Builder) AppendColor(c RGB) error {
	if len(b.colors)+1 > b.Cap() {
		return fmt.Errorf("%w: %d colors at %dx%d",
			ErrCapacityExceeded, b.Cap(), b.width, b.height)
	}
	b.colors = append(b.colors, c)
	return nil
}

// AppendRange appends length colors interpolated from start to end under
// curve. The first appended color is start and the last is end. A range
// that does not fit in the remaining capacity appends nothing.
func (b *Builder) AppendRange(start, end RGB, length int, curve Curve, param float64) error {
	if length < 2 {
		return fmt.Errorf("%w: length %d", ErrInvalidRange, length)
	}
	if err := curve.Validate(param); err != nil {
		return err
	}
	if len(b.colors)+length > b.Cap() {
		return fmt.Errorf("%w: range of %d colors after %d of %d",
			ErrCapacityExceeded, length, len(b.colors), b.Cap())
	}

	// Dividing by length-1 makes the final ratio exactly 1.
	for i := 0; i < length; i++ {
		ratio := float64(i) / float64(length-1)
		if err := b.AppendColor(Interpolate(start, end, ratio, curve, param)); err != nil {
			return err
		}
	}
	return nil
}

// AppendLinear appends a linear range from start to end.
func (b *Builder) AppendLinear(start, end RGB, length int) error {
	return b.AppendRange(start, end, length, CurveLinear, 1)
}

// Finalize returns an immutable snapshot of the colors appended so far.
// The builder can keep growing afterwards without affecting the snapshot.
func (b *Builder) Finalize() Palette {
	colors := make([]RGB, len(b.colors))
	copy(colors, b.colors)
	return Palette{width: b.width, height: b.height, colors: colors}
}

// BuilderFromImage creates a builder sized to img and appends every pixel
// in row-major order. Rasters with transparent pixels are rejected.
func BuilderFromImage(img image.Image, opts ...BuilderOption) (*Builder, error) {
	if o, ok := img.(interface{ Opaque() bool }); ok && !o.Opaque() {
		return nil, ErrAlphaRaster
	}
	bounds := img.Bounds()
	b, err := NewBuilder(bounds.Dx(), bounds.Dy(), opts...)
	if err != nil {
		return nil, err
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if err := b.AppendColor(RGBFromColor(img.At(x, y))); err != nil {
				return nil, err
			}
		}
	}
	b.logger.Info("loaded palette", "colors", b.Len())
	return b, nil
}

// LoadPalette reads a palette raster from path. See BuilderFromImage.
func LoadPalette(path string, opts ...BuilderOption) (*Builder, error) {
	img, err := imageutil.LoadImage(path)
	if err != nil {
		return nil, err
	}
	b, err := BuilderFromImage(img, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load palette %s: %w", path, err)
	}
	return b, nil
}

// Palette is a finished, read-only palette: an ordered list of colors laid
// out row-major on a width x height raster.
type Palette struct {
	width, height int
	colors        []RGB
}

// NewPalette wraps colors as a palette snapshot on a width x height
// raster. It fails if the colors do not fit.
func NewPalette(width, height int, colors []RGB) (Palette, error) {
	if width <= 0 || height <= 0 {
		return Palette{}, fmt.Errorf("%w: got %dx%d", ErrInvalidSize, width, height)
	}
	if len(colors) > width*height {
		return Palette{}, fmt.Errorf("%w: %d colors at %dx%d",
			ErrCapacityExceeded, len(colors), width, height)
	}
	c := make([]RGB, len(colors))
	copy(c, colors)
	return Palette{width: width, height: height, colors: c}, nil
}

func (p Palette) Width() int  { return p.width }
func (p Palette) Height() int { return p.height }
func (p Palette) Cap() int    { return p.width * p.height }
func (p Palette) Len() int    { return len(p.colors) }

// At returns the color at palette index i.
func (p Palette) At(i int) RGB { return p.colors[i] }

// Colors returns a copy of the palette colors in index order.
func (p Palette) Colors() []RGB {
	c := make([]RGB, len(p.colors))
	copy(c, p.colors)
	return c
}

// Image renders the palette as a width x height raster. Colors fill
// positions 0..Len()-1 row-major; the remaining pixels are opaque black.
func (p Palette) Image() *imageutil.RGBAImage {
	img := imageutil.NewRGBAImage(p.width, p.height)
	for i := 0; i < p.Cap(); i++ {
		c := Black
		if i < len(p.colors) {
			c = p.colors[i]
		}
		img.SetRGB(i%p.width, i/p.width, imageutil.RGB(c))
	}
	return img
}

// Save writes the palette raster to path.
func (p Palette) Save(path string) error {
	if err := imageutil.SaveImage(p.Image(), path); err != nil {
		return fmt.Errorf("failed to write palette %s: %w", path, err)
	}
	return nil
}
