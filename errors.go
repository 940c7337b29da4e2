package palgen

import "errors"

var (
	// ErrCapacityExceeded is returned when an append would grow a palette
	// past width*height colors.
	ErrCapacityExceeded = errors.New("palette size exceeded, please expand the palette size")

	// ErrInvalidRange is returned for color ranges shorter than 2 colors.
	// Single colors go through AppendColor.
	ErrInvalidRange = errors.New("color range must be at least 2 colors long, use AppendColor instead")

	// ErrEmptyPalette is returned when a nearest-color search has no
	// candidates to choose from.
	ErrEmptyPalette = errors.New("palette has no colors")

	ErrInvalidSize   = errors.New("palette width and height must be > 0")
	ErrInvalidCurve  = errors.New("invalid interpolation curve")
	ErrInvalidShades = errors.New("lightmap shades must be >= 1")

	// ErrAlphaRaster is returned when loading a palette from a raster that
	// carries transparency.
	ErrAlphaRaster = errors.New("palette raster must be opaque RGB")

	ErrInvalidRecipe = errors.New("invalid palette recipe")
	ErrCorruptTable  = errors.New("corrupt lightmap table")
)
