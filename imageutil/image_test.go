package imageutil

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestNewRGBAImage(t *testing.T) {
	img := NewRGBAImage(100, 50)
	if img.Width() != 100 {
		t.Errorf("Expected width 100, got %d", img.Width())
	}
	if img.Height() != 50 {
		t.Errorf("Expected height 50, got %d", img.Height())
	}
	if !img.Opaque() {
		t.Error("New image should be opaque black")
	}
	if got := img.GetRGB(99, 49); got != (RGB{}) {
		t.Errorf("Expected black, got %v", got)
	}
}

func TestRGBAImageGetSetRGB(t *testing.T) {
	img := NewRGBAImage(10, 10)
	c := RGB{R: 100, G: 150, B: 200}
	img.SetRGB(5, 5, c)

	got := img.GetRGB(5, 5)
	if got != c {
		t.Errorf("Expected %v, got %v", c, got)
	}
}

func TestRGBAImageClone(t *testing.T) {
	img := NewRGBAImage(10, 10)
	img.SetRGB(5, 5, RGB{R: 255, G: 0, B: 0})

	clone := img.Clone()
	if clone.GetRGB(5, 5) != img.GetRGB(5, 5) {
		t.Error("Clone should have same pixel values")
	}

	// Modify clone, original should be unchanged
	clone.SetRGB(5, 5, RGB{R: 0, G: 255, B: 0})
	if img.GetRGB(5, 5).G != 0 {
		t.Error("Modifying clone should not affect original")
	}
}

func TestRGBAImageFromImageMovesOrigin(t *testing.T) {
	src := image.NewNRGBA(image.Rect(3, 4, 5, 6))
	src.Set(3, 4, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	src.Set(4, 5, color.NRGBA{R: 40, G: 50, B: 60, A: 255})

	img := RGBAImageFromImage(src)
	if img.Width() != 2 || img.Height() != 2 {
		t.Fatalf("Expected 2x2, got %dx%d", img.Width(), img.Height())
	}
	if got := img.GetRGB(0, 0); got != (RGB{10, 20, 30}) {
		t.Errorf("Expected (10,20,30) at origin, got %v", got)
	}
	if got := img.GetRGB(1, 1); got != (RGB{40, 50, 60}) {
		t.Errorf("Expected (40,50,60) at (1,1), got %v", got)
	}
}

func stripes(width, height int) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGB(x, y, RGB{R: uint8(x * 16), G: uint8(y * 16), B: uint8((x + y) * 8)})
		}
	}
	return img
}

func TestLoadSaveImageLossless(t *testing.T) {
	tmpDir := t.TempDir()
	img := stripes(16, 16)

	for _, ext := range []string{".png", ".bmp", ".tiff", ".unknown"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(tmpDir, "test"+ext)
			if err := SaveImage(img, path); err != nil {
				t.Fatalf("Failed to save %s: %v", ext, err)
			}

			loaded, err := LoadImage(path)
			if err != nil {
				t.Fatalf("Failed to load %s: %v", ext, err)
			}
			for y := 0; y < 16; y++ {
				for x := 0; x < 16; x++ {
					if loaded.GetRGB(x, y) != img.GetRGB(x, y) {
						t.Fatalf("Pixel (%d,%d) mismatch: saved %v, loaded %v",
							x, y, img.GetRGB(x, y), loaded.GetRGB(x, y))
					}
				}
			}
		})
	}
}

func TestLoadImageErrors(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := LoadImage(filepath.Join(tmpDir, "missing.png")); err == nil {
		t.Error("Expected error for missing file")
	}

	garbage := filepath.Join(tmpDir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadImage(garbage); err == nil {
		t.Error("Expected error for undecodable file")
	}
}
