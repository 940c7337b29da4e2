package preview

import (
	"image/color"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrown/palgen"
)

func testPalette(t *testing.T) palgen.Palette {
	t.Helper()
	b, err := palgen.NewBuilder(4, 2, palgen.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	require.NoError(t, b.AppendLinear(palgen.RGB{}, palgen.RGB{R: 255, G: 255, B: 255}, 6))
	return b.Finalize()
}

func TestPaletteSheetSize(t *testing.T) {
	sheet, err := Palette(testPalette(t), Options{Scale: 10})
	require.NoError(t, err)
	assert.Equal(t, 40, sheet.Bounds().Dx())
	assert.Equal(t, 20, sheet.Bounds().Dy())

	// Without labels every pixel of a cell is the cell color.
	for y := 10; y < 20; y++ {
		for x := 10; x < 20; x++ {
			assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, sheet.NRGBAAt(x, y))
		}
	}
}

func TestPaletteSheetDefaultScale(t *testing.T) {
	sheet, err := Palette(testPalette(t), Options{})
	require.NoError(t, err)
	assert.Equal(t, 4*24, sheet.Bounds().Dx())
}

func TestLabelsDrawOnUsedCellsOnly(t *testing.T) {
	p := testPalette(t)
	plain, err := Palette(p, Options{Scale: 32})
	require.NoError(t, err)
	labelled, err := Palette(p, Options{Scale: 32, Labels: true})
	require.NoError(t, err)

	changed := func(cx, cy int) bool {
		for y := cy * 32; y < (cy+1)*32; y++ {
			for x := cx * 32; x < (cx+1)*32; x++ {
				if plain.NRGBAAt(x, y) != labelled.NRGBAAt(x, y) {
					return true
				}
			}
		}
		return false
	}
	assert.True(t, changed(0, 0), "black cell gets a white label")
	assert.True(t, changed(1, 1), "white cell gets a black label")
	assert.False(t, changed(3, 1), "unused cells stay blank")
}

func TestLabelsSkippedWhenCellsTooSmall(t *testing.T) {
	p := testPalette(t)
	plain, err := Palette(p, Options{Scale: MinLabelScale - 1})
	require.NoError(t, err)
	labelled, err := Palette(p, Options{Scale: MinLabelScale - 1, Labels: true})
	require.NoError(t, err)
	assert.Equal(t, plain.Pix, labelled.Pix)
}

func TestLightmapSheet(t *testing.T) {
	lm, err := palgen.GenerateLightmap(testPalette(t), 3)
	require.NoError(t, err)

	sheet, err := Lightmap(lm, Options{Scale: 16, Labels: true})
	require.NoError(t, err)
	assert.Equal(t, 3*16, sheet.Bounds().Dx())
	assert.Equal(t, 6*16, sheet.Bounds().Dy())
}

func TestContrast(t *testing.T) {
	assert.Equal(t, palgen.Black, contrast(palgen.RGB{R: 255, G: 255, B: 255}))
	assert.Equal(t, palgen.RGB{R: 255, G: 255, B: 255}, contrast(palgen.RGB{R: 0, G: 0, B: 200}))
}
