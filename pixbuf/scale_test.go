package pixbuf

import (
	"errors"
	"testing"
)

func TestFitToHeight(t *testing.T) {
	tests := []struct {
		w, h, height, wantW, wantH int
	}{
		{100, 50, 24, 48, 24},
		{100, 50, 48, 96, 48},
		{30, 40, 48, 36, 48},
		{1, 1000, 10, 1, 10},
	}
	for _, tt := range tests {
		w, h := FitToHeight(tt.w, tt.h, tt.height)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("FitToHeight(%d, %d, %d) = %dx%d, want %dx%d", tt.w, tt.h, tt.height, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestFitToWidth(t *testing.T) {
	tests := []struct {
		w, h, width, wantW, wantH int
	}{
		{100, 50, 24, 24, 12},
		{40, 30, 48, 48, 36},
		{1000, 1, 10, 10, 1},
	}
	for _, tt := range tests {
		w, h := FitToWidth(tt.w, tt.h, tt.width)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("FitToWidth(%d, %d, %d) = %dx%d, want %dx%d", tt.w, tt.h, tt.width, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestScale(t *testing.T) {
	for _, f := range []Format{FormatRGB8, FormatRGBA8} {
		t.Run(f.String(), func(t *testing.T) {
			src, _ := New(4, 2, f)
			src.Fill(40, 80, 120, 255)

			dst, err := Scale(src, 12, 6)
			if err != nil {
				t.Fatal(err)
			}
			if dst.Width() != 12 || dst.Height() != 6 {
				t.Fatalf("size = %dx%d", dst.Width(), dst.Height())
			}
			if dst.Format() != f {
				t.Errorf("Format() = %v, want %v", dst.Format(), f)
			}
			// A uniform source stays uniform whatever the filter.
			for y := range 6 {
				for x := range 12 {
					r, g, b, _ := dst.GetRGBA(x, y)
					if r != 40 || g != 80 || b != 120 {
						t.Fatalf("pixel (%d,%d) = (%d,%d,%d)", x, y, r, g, b)
					}
				}
			}
		})
	}
}

func TestScaleSameSizeCopies(t *testing.T) {
	src := gradient(3, 3, FormatRGBA8)
	dst, err := Scale(src, 3, 3)
	if err != nil {
		t.Fatal(err)
	}
	if !dst.Equal(src) {
		t.Error("Scale() to the same size changed pixels")
	}
	_ = dst.SetRGBA(0, 0, 1, 1, 1, 1)
	if dst.Equal(src) {
		t.Error("Scale() to the same size aliased the source")
	}
}

func TestScaleInvalid(t *testing.T) {
	src, _ := New(2, 2, FormatRGB8)
	if _, err := Scale(src, 0, 2); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("Scale(0x2) error = %v", err)
	}
}
