package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli"

	"github.com/wbrown/palgen"
	"github.com/wbrown/palgen/imageutil"
	"github.com/wbrown/palgen/internal/config"
	"github.com/wbrown/palgen/preview"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Error loading config", "error", err)
		os.Exit(1)
	}

	app := newApp(cfg)
	if err := app.Run(os.Args); err != nil {
		slog.Error("Error running palgen", "error", err)
		os.Exit(1)
	}
}

func newApp(cfg config.Config) *cli.App {
	app := cli.NewApp()
	app.Name = "palgen"
	app.Usage = "build indexed color palettes and their lightmaps"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "Enable debug logging",
		},
	}
	app.Before = func(c *cli.Context) error {
		level := slog.LevelInfo
		if c.Bool("verbose") || cfg.Verbose {
			level = slog.LevelDebug
		}
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		slog.SetDefault(slog.New(handler))
		return nil
	}

	lightmapFlags := []cli.Flag{
		cli.IntFlag{
			Name:  "shades",
			Usage: "Number of shade steps (0 = recipe or PALGEN_SHADES)",
		},
		cli.StringFlag{
			Name:  "matcher",
			Usage: "Nearest color search: brute or kdtree",
			Value: cfg.Matcher,
		},
		cli.BoolFlag{
			Name:  "pad",
			Usage: "Pad the lightmap with black rows up to the palette capacity",
		},
		cli.StringFlag{
			Name:  "table",
			Usage: "Also write a compact .lightmap index table to this path",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:      "build",
			Usage:     "Build a palette from a recipe and generate its lightmap",
			ArgsUsage: "[recipe name or path]",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "out-dir",
					Usage: "Directory for output files",
					Value: cfg.OutputDir,
				},
				cli.StringFlag{
					Name:  "palette-out",
					Usage: "Palette raster file name",
					Value: "final_palette.png",
				},
				cli.StringFlag{
					Name:  "lightmap-out",
					Usage: "Lightmap raster file name",
					Value: "final_lightmap.png",
				},
				cli.BoolFlag{
					Name:  "preview",
					Usage: "Also write labelled preview sheets",
				},
				cli.IntFlag{
					Name:  "preview-scale",
					Usage: "Preview cell size in pixels",
					Value: cfg.PreviewScale,
				},
			}, lightmapFlags...),
			Action: func(c *cli.Context) error { return runBuild(c, cfg) },
		},
		{
			Name:      "lightmap",
			Usage:     "Generate a lightmap for an existing palette raster",
			ArgsUsage: "<palette image>",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "out",
					Usage: "Lightmap raster path",
					Value: "lightmap.png",
				},
			}, lightmapFlags...),
			Action: func(c *cli.Context) error { return runLightmap(c, cfg) },
		},
		{
			Name:      "preview",
			Usage:     "Render a labelled swatch sheet of a palette raster",
			ArgsUsage: "<palette image>",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "out",
					Usage: "Sheet path",
					Value: "palette_preview.png",
				},
				cli.IntFlag{
					Name:  "scale",
					Usage: "Cell size in pixels",
					Value: cfg.PreviewScale,
				},
				cli.BoolFlag{
					Name:  "no-labels",
					Usage: "Do not draw palette indices",
				},
			},
			Action: runPreview,
		},
		{
			Name:      "inspect",
			Usage:     "Print a .lightmap table and optionally export its rasters",
			ArgsUsage: "<table>",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "export",
					Usage: "Write <prefix>_palette.png and <prefix>_lightmap.png",
				},
			},
			Action: runInspect,
		},
		{
			Name:   "recipes",
			Usage:  "List the built-in recipes",
			Action: runRecipes,
		},
	}
	return app
}

func runBuild(c *cli.Context, cfg config.Config) error {
	name := "classic"
	if c.NArg() > 0 {
		name = c.Args().Get(0)
	}
	recipe, err := palgen.LoadRecipe(name)
	if err != nil {
		return err
	}
	builder, err := recipe.Build()
	if err != nil {
		return err
	}
	p := builder.Finalize()

	outDir := c.String("out-dir")
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	palettePath := filepath.Join(outDir, c.String("palette-out"))
	if err := p.Save(palettePath); err != nil {
		return err
	}
	slog.Info("wrote palette", "colors", p.Len(), "unused", p.Cap()-p.Len(), "path", palettePath)

	shades := pickShades(c.Int("shades"), recipe.Shades, cfg.Shades)
	lm, err := generate(c, cfg, p, shades, filepath.Join(outDir, c.String("lightmap-out")))
	if err != nil {
		return err
	}

	if c.Bool("preview") {
		opts := preview.Options{Scale: c.Int("preview-scale"), Labels: true}
		base := strings.TrimSuffix(palettePath, filepath.Ext(palettePath))
		if err := writePreviews(p, lm, opts, base); err != nil {
			return err
		}
	}
	return nil
}

func runLightmap(c *cli.Context, cfg config.Config) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelp(c, "lightmap")
		return errors.New("no palette image provided")
	}
	path := c.Args().Get(0)
	builder, err := palgen.LoadPalette(path)
	if err != nil {
		return err
	}
	_, err = generate(c, cfg, builder.Finalize(), pickShades(c.Int("shades"), 0, cfg.Shades), c.String("out"))
	return err
}

// generate builds the lightmap for p, writes its raster to path and, when
// requested, the compact table.
func generate(c *cli.Context, cfg config.Config, p palgen.Palette, shades int, path string) (*palgen.Lightmap, error) {
	kind, err := palgen.ParseMatcherKind(c.String("matcher"))
	if err != nil {
		return nil, err
	}
	lm, err := palgen.GenerateLightmap(p, shades,
		palgen.WithMatcher(kind),
		palgen.WithProgress(printProgress("Generating lightmap")),
	)
	if err != nil {
		return nil, err
	}

	rows := lm.Len()
	if c.Bool("pad") || cfg.PadLightmap {
		rows = p.Cap()
	}
	if err := lm.Save(path, rows); err != nil {
		return nil, err
	}
	slog.Info("wrote lightmap", "colors", lm.Len(), "shades", shades, "path", path)

	if tablePath := c.String("table"); tablePath != "" {
		id, err := palgen.SaveLightmapTable(tablePath, lm)
		if err != nil {
			return nil, err
		}
		slog.Info("wrote lightmap table", "id", id, "path", tablePath)
	}
	return lm, nil
}

func runPreview(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelp(c, "preview")
		return errors.New("no palette image provided")
	}
	builder, err := palgen.LoadPalette(c.Args().Get(0))
	if err != nil {
		return err
	}
	sheet, err := preview.Palette(builder.Finalize(), preview.Options{
		Scale:  c.Int("scale"),
		Labels: !c.Bool("no-labels"),
	})
	if err != nil {
		return err
	}
	if err := imageutil.SaveImage(sheet, c.String("out")); err != nil {
		return err
	}
	slog.Info("wrote preview", "path", c.String("out"))
	return nil
}

func runInspect(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelp(c, "inspect")
		return errors.New("no table provided")
	}
	table, err := palgen.LoadLightmapTable(c.Args().Get(0))
	if err != nil {
		return err
	}
	p, lm, err := table.Restore()
	if err != nil {
		return err
	}

	fmt.Printf("id:      %s\n", table.ID)
	fmt.Printf("palette: %d colors at %dx%d (%d unused)\n",
		p.Len(), p.Width(), p.Height(), p.Cap()-p.Len())
	fmt.Printf("shades:  %d\n", lm.Shades())
	for i := 0; i < p.Len(); i++ {
		fmt.Printf("%4d %s ->", i, p.At(i).Hex())
		for s := 0; s < lm.Shades(); s++ {
			fmt.Printf(" %d", lm.Index(i, s))
		}
		fmt.Println()
	}

	if prefix := c.String("export"); prefix != "" {
		if err := p.Save(prefix + "_palette.png"); err != nil {
			return err
		}
		if err := lm.Save(prefix+"_lightmap.png", lm.Len()); err != nil {
			return err
		}
	}
	return nil
}

func runRecipes(c *cli.Context) error {
	for _, name := range palgen.EmbeddedRecipes() {
		r, err := palgen.LoadRecipe(name)
		if err != nil {
			return err
		}
		fmt.Printf("%-10s %dx%d, %d entries, %d shades\n",
			name, r.Width, r.Height, len(r.Entries), r.Shades)
	}
	return nil
}

func writePreviews(p palgen.Palette, lm *palgen.Lightmap, opts preview.Options, base string) error {
	sheet, err := preview.Palette(p, opts)
	if err != nil {
		return err
	}
	if err := imageutil.SaveImage(sheet, base+"_preview.png"); err != nil {
		return err
	}
	sheet, err = preview.Lightmap(lm, opts)
	if err != nil {
		return err
	}
	if err := imageutil.SaveImage(sheet, base+"_lightmap_preview.png"); err != nil {
		return err
	}
	slog.Info("wrote previews", "prefix", base)
	return nil
}

// pickShades returns the first positive value of flag, recipe and the
// configured default.
func pickShades(flag, recipe, fallback int) int {
	switch {
	case flag > 0:
		return flag
	case recipe > 0:
		return recipe
	default:
		return fallback
	}
}

// printProgress returns a progress callback that redraws a percentage on
// stderr and ends the line when done.
func printProgress(label string) func(done, total int) {
	return func(done, total int) {
		pct := int(math.Ceil(float64(done) / float64(total) * 100))
		fmt.Fprintf(os.Stderr, "%s [%3d%%]\r", label, pct)
		if done == total {
			fmt.Fprintln(os.Stderr)
		}
	}
}
