// Package preview renders enlarged swatch sheets of palettes and
// lightmaps, optionally labelling every cell with its palette index.
package preview

import (
	"fmt"
	"image"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/wbrown/palgen"
)

// MinLabelScale is the smallest cell size that still gets index labels.
const MinLabelScale = 12

// Options controls sheet rendering.
type Options struct {
	// Scale is the edge length of one cell in pixels. Zero means 24.
	Scale int
	// Labels draws the palette index on each cell.
	Labels bool
}

func (o Options) scale() int {
	if o.Scale <= 0 {
		return 24
	}
	return o.Scale
}

var monoFont *truetype.Font

func loadFont() (*truetype.Font, error) {
	if monoFont != nil {
		return monoFont, nil
	}
	f, err := freetype.ParseFont(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse label font: %w", err)
	}
	monoFont = f
	return f, nil
}

// Palette renders p as a sheet of Width x Height cells. Unused cells are
// black and never labelled.
func Palette(p palgen.Palette, opts Options) (*image.NRGBA, error) {
	return render(p.Image(), opts, func(x, y int) (string, bool) {
		i := y*p.Width() + x
		return strconv.Itoa(i), i < p.Len()
	})
}

// Lightmap renders lm as a sheet with one row per palette color and one
// column per shade. Each cell is labelled with the palette index it maps
// to.
func Lightmap(lm *palgen.Lightmap, opts Options) (*image.NRGBA, error) {
	return render(lm.Image(), opts, func(x, y int) (string, bool) {
		return strconv.Itoa(lm.Index(y, x)), true
	})
}

func render(src image.Image, opts Options, label func(x, y int) (string, bool)) (*image.NRGBA, error) {
	scale := opts.scale()
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	dst := imaging.Resize(src, w*scale, h*scale, imaging.NearestNeighbor)
	if !opts.Labels || scale < MinLabelScale {
		return dst, nil
	}

	ttf, err := loadFont()
	if err != nil {
		return nil, err
	}
	size := float64(scale) / 2.5
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(ttf)
	ctx.SetFontSize(size)
	ctx.SetClip(dst.Bounds())
	ctx.SetDst(dst)
	ctx.SetHinting(font.HintingFull)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			text, ok := label(x, y)
			if !ok {
				continue
			}
			c := palgen.RGBFromColor(src.At(src.Bounds().Min.X+x, src.Bounds().Min.Y+y))
			ctx.SetSrc(image.NewUniform(contrast(c)))
			pt := freetype.Pt(x*scale+2, y*scale+int(size)+1)
			if _, err := ctx.DrawString(text, pt); err != nil {
				return nil, fmt.Errorf("failed to draw label %q: %w", text, err)
			}
		}
	}
	return dst, nil
}

// contrast picks black or white text, whichever stands out more against c
// by BT.601 luminance.
func contrast(c palgen.RGB) palgen.RGB {
	lum := (299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000
	if lum >= 128 {
		return palgen.Black
	}
	return palgen.RGB{R: 255, G: 255, B: 255}
}
