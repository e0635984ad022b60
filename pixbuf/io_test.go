package pixbuf

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestDecodeFormatSelection(t *testing.T) {
	nrgba := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	nrgba.Set(1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 40})

	gray := image.NewGray(image.Rect(0, 0, 3, 2))
	gray.SetGray(2, 0, color.Gray{Y: 99})

	// Opaque RGBA encodes as truecolor without an alpha channel.
	rgb := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for i := 3; i < len(rgb.Pix); i += 4 {
		rgb.Pix[i-3], rgb.Pix[i] = 120, 255
	}

	tests := []struct {
		name   string
		img    image.Image
		format Format
	}{
		{"nrgba keeps alpha", nrgba, FormatRGBA8},
		{"gray has no alpha", gray, FormatRGB8},
		{"opaque truecolor has no alpha", rgb, FormatRGB8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := png.Encode(&buf, tt.img); err != nil {
				t.Fatal(err)
			}
			got, err := Decode(&buf)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if got.Format() != tt.format {
				t.Errorf("Format() = %v, want %v", got.Format(), tt.format)
			}
		})
	}
}

func TestDecodePixels(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.Set(1, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 128})

	var enc bytes.Buffer
	_ = png.Encode(&enc, src)

	got, err := Decode(&enc)
	if err != nil {
		t.Fatal(err)
	}
	if r, g, b, a := got.GetRGBA(1, 0); r != 200 || g != 100 || b != 50 || a != 128 {
		t.Errorf("pixel = (%d,%d,%d,%d)", r, g, b, a)
	}
}

func TestFromImageRGBA(t *testing.T) {
	opaque := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := 3; i < len(opaque.Pix); i += 4 {
		opaque.Pix[i] = 255
	}
	translucent := image.NewRGBA(image.Rect(0, 0, 2, 2))
	translucent.Set(0, 0, color.RGBA{R: 50, A: 100})

	tests := []struct {
		name   string
		img    image.Image
		format Format
	}{
		{"opaque", opaque, FormatRGB8},
		{"translucent", translucent, FormatRGBA8},
		{"transparent 16-bit", image.NewRGBA64(image.Rect(0, 0, 1, 1)), FormatRGBA8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromImage(tt.img)
			if err != nil {
				t.Fatal(err)
			}
			if got.Format() != tt.format {
				t.Errorf("Format() = %v, want %v", got.Format(), tt.format)
			}
		})
	}
}

func TestDecodeJPEGIsOpaque(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	var enc bytes.Buffer
	if err := jpeg.Encode(&enc, img, nil); err != nil {
		t.Fatal(err)
	}
	got, err := Decode(&enc)
	if err != nil {
		t.Fatal(err)
	}
	if got.HasAlpha() {
		t.Error("JPEG decoded with an alpha channel")
	}
}

func TestDecodeUnsupported(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("definitely not an image")))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Decode() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load("/does/not/exist.png")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want ErrNotExist", err)
	}
}

func TestSaveLoadPNG(t *testing.T) {
	src := gradient(5, 4, FormatRGBA8)
	path := filepath.Join(t.TempDir(), "out.png")
	if err := src.SavePNG(path); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(src) {
		t.Error("PNG round trip changed pixels")
	}
}
