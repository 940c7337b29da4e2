package palgen

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
)

//go:embed recipes/*.json
var recipeFS embed.FS

// Recipe describes a palette build: the raster size, the ordered color
// entries to append and the number of lightmap shades to generate.
type Recipe struct {
	Name    string        `json:"name"`
	Width   int           `json:"width"`
	Height  int           `json:"height"`
	Shades  int           `json:"shades"`
	Entries []RecipeEntry `json:"entries"`
}

// RecipeEntry is either a single color (Color set) or an interpolated
// range from Start to End.
type RecipeEntry struct {
	Color  string  `json:"color,omitempty"`
	Start  string  `json:"start,omitempty"`
	End    string  `json:"end,omitempty"`
	Length int     `json:"length,omitempty"`
	Curve  string  `json:"curve,omitempty"`
	Param  float64 `json:"param,omitempty"`
}

// EmbeddedRecipes lists the names of the recipes compiled into the binary.
func EmbeddedRecipes() []string {
	entries, err := recipeFS.ReadDir("recipes")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names
}

// LoadRecipe loads a recipe by embedded name (e.g. "classic") or, failing
// that, from the filesystem.
func LoadRecipe(nameOrPath string) (Recipe, error) {
	// First, try the VFS.
	data, vfsErr := recipeFS.ReadFile(path.Join("recipes", nameOrPath+".json"))
	if vfsErr != nil {
		// If the VFS fails, try the filesystem.
		var fsErr error
		data, fsErr = os.ReadFile(nameOrPath)
		if fsErr != nil {
			return Recipe{}, fmt.Errorf("error reading recipe: %w", fsErr)
		}
	}
	return ParseRecipe(data)
}

// ParseRecipe decodes a JSON recipe and validates its shape. Colors and
// curves are checked when the recipe is built.
func ParseRecipe(data []byte) (Recipe, error) {
	var r Recipe
	if err := json.Unmarshal(data, &r); err != nil {
		return Recipe{}, fmt.Errorf("%w: error unmarshalling JSON: %v", ErrInvalidRecipe, err)
	}
	if r.Width <= 0 || r.Height <= 0 {
		return Recipe{}, fmt.Errorf("%w: width and height must be > 0", ErrInvalidRecipe)
	}
	if r.Shades < 0 {
		return Recipe{}, fmt.Errorf("%w: shades must be >= 0", ErrInvalidRecipe)
	}
	for i, e := range r.Entries {
		if e.Color == "" && (e.Start == "" || e.End == "") {
			return Recipe{}, fmt.Errorf("%w: entry %d needs color or start and end",
				ErrInvalidRecipe, i)
		}
		if e.Color != "" && (e.Start != "" || e.End != "") {
			return Recipe{}, fmt.Errorf("%w: entry %d mixes color with a range",
				ErrInvalidRecipe, i)
		}
	}
	return r, nil
}

// Build runs the recipe against a fresh builder.
func (r Recipe) Build(opts ...BuilderOption) (*Builder, error) {
	b, err := NewBuilder(r.Width, r.Height, opts...)
	if err != nil {
		return nil, err
	}
	for i, e := range r.Entries {
		if err := e.apply(b); err != nil {
			return nil, fmt.Errorf("recipe %q entry %d: %w", r.Name, i, err)
		}
	}
	return b, nil
}

func (e RecipeEntry) apply(b *Builder) error {
	if e.Color != "" {
		c, err := ParseHex(e.Color)
		if err != nil {
			return err
		}
		return b.AppendColor(c)
	}

	start, err := ParseHex(e.Start)
	if err != nil {
		return err
	}
	end, err := ParseHex(e.End)
	if err != nil {
		return err
	}
	curve, err := ParseCurve(e.Curve)
	if err != nil {
		return err
	}
	param := e.Param
	if param == 0 {
		param = 1
	}
	return b.AppendRange(start, end, e.Length, curve, param)
}
