package palgen

import (
	"bytes"
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"math"
	"os"

	"github.com/google/uuid"
)

// LightmapTable is the compact on-disk form of a palette and its
// lightmap: colors packed as 0xRRGGBB and one palette index per cell.
// Engines that index into the palette directly load this instead of the
// lightmap raster.
type LightmapTable struct {
	ID      string
	Width   int
	Height  int
	Shades  int
	Colors  []uint32
	Indices []uint16 // row-major by palette index, Shades per row
}

// CompactLightmap packs lm into a LightmapTable with a fresh ID.
func CompactLightmap(lm *Lightmap) (LightmapTable, error) {
	p := lm.Palette()
	if p.Len() > math.MaxUint16+1 {
		return LightmapTable{}, fmt.Errorf("palette of %d colors does not fit 16-bit indices", p.Len())
	}
	colors := make([]uint32, p.Len())
	for i, c := range p.colors {
		colors[i] = c.toUint32()
	}
	indices := make([]uint16, len(lm.indices))
	for i, idx := range lm.indices {
		indices[i] = uint16(idx)
	}
	return LightmapTable{
		ID:      uuid.NewString(),
		Width:   p.Width(),
		Height:  p.Height(),
		Shades:  lm.Shades(),
		Colors:  colors,
		Indices: indices,
	}, nil
}

// Restore rebuilds the palette and lightmap stored in the table.
func (t LightmapTable) Restore() (Palette, *Lightmap, error) {
	if t.Shades < 1 || len(t.Indices) != len(t.Colors)*t.Shades {
		return Palette{}, nil, fmt.Errorf("%w: %d indices for %d colors x %d shades",
			ErrCorruptTable, len(t.Indices), len(t.Colors), t.Shades)
	}
	colors := make([]RGB, len(t.Colors))
	for i, v := range t.Colors {
		colors[i] = rgbFromUint32(v)
	}
	p, err := NewPalette(t.Width, t.Height, colors)
	if err != nil {
		return Palette{}, nil, fmt.Errorf("%w: %v", ErrCorruptTable, err)
	}
	indices := make([]int, len(t.Indices))
	for i, idx := range t.Indices {
		if int(idx) >= len(colors) {
			return Palette{}, nil, fmt.Errorf("%w: index %d out of range", ErrCorruptTable, idx)
		}
		indices[i] = int(idx)
	}
	return p, &Lightmap{shades: t.Shades, palette: p, indices: indices}, nil
}

// SaveLightmapTable writes lm as a gzip-compressed gob LightmapTable and
// returns the table ID.
func SaveLightmapTable(path string, lm *Lightmap) (string, error) {
	table, err := CompactLightmap(lm)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	gzw := gzip.NewWriter(&buf)
	if err := gob.NewEncoder(gzw).Encode(table); err != nil {
		return "", fmt.Errorf("failed to encode lightmap table for %s: %w", path, err)
	}
	if err := gzw.Close(); err != nil {
		return "", fmt.Errorf("failed to close gzip writer for %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write lightmap table %s: %w", path, err)
	}
	return table.ID, nil
}

// LoadLightmapTable reads a table written by SaveLightmapTable.
func LoadLightmapTable(path string) (LightmapTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LightmapTable{}, fmt.Errorf("failed to read file: %w", err)
	}

	gzr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return LightmapTable{}, fmt.Errorf("%w: %v", ErrCorruptTable, err)
	}
	defer gzr.Close()

	var table LightmapTable
	if err := gob.NewDecoder(gzr).Decode(&table); err != nil {
		return LightmapTable{}, fmt.Errorf("%w: failed to decode: %v", ErrCorruptTable, err)
	}
	if _, err := uuid.Parse(table.ID); err != nil {
		return LightmapTable{}, fmt.Errorf("%w: bad table id %q", ErrCorruptTable, table.ID)
	}
	return table, nil
}
