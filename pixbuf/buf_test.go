package pixbuf

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		height  int
		format  Format
		wantErr error
	}{
		{"valid RGBA8", 100, 100, FormatRGBA8, nil},
		{"valid RGB8", 50, 20, FormatRGB8, nil},
		{"1x1 minimum", 1, 1, FormatBGRA8, nil},
		{"zero width", 0, 100, FormatRGBA8, ErrInvalidDimensions},
		{"negative height", 100, -1, FormatRGBA8, ErrInvalidDimensions},
		{"invalid format", 100, 100, Format(255), ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := New(tt.width, tt.height, tt.format)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if buf.Width() != tt.width || buf.Height() != tt.height {
				t.Errorf("Bounds() = %dx%d, want %dx%d", buf.Width(), buf.Height(), tt.width, tt.height)
			}
			if want := tt.format.RowBytes(tt.width); buf.Stride() != want {
				t.Errorf("Stride() = %d, want %d", buf.Stride(), want)
			}
			if len(buf.Data()) != buf.Stride()*tt.height {
				t.Errorf("len(Data()) = %d, want %d", len(buf.Data()), buf.Stride()*tt.height)
			}
		})
	}
}

func TestFromRaw(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		stride  int
		wantErr error
	}{
		{"tight", 4 * 4 * 2, 16, nil},
		{"padded", 20 + 16, 20, nil},
		{"stride too small", 64, 12, ErrInvalidStride},
		{"data too small", 20, 16, ErrDataTooSmall},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromRaw(make([]byte, tt.size), 4, 2, FormatRGBA8, tt.stride)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("FromRaw() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetSetRGBA(t *testing.T) {
	for _, f := range []Format{FormatRGB8, FormatRGBA8, FormatBGRA8} {
		t.Run(f.String(), func(t *testing.T) {
			b, _ := New(3, 2, f)
			if err := b.SetRGBA(2, 1, 10, 20, 30, 40); err != nil {
				t.Fatalf("SetRGBA() error = %v", err)
			}
			r, g, bl, a := b.GetRGBA(2, 1)
			wantA := uint8(40)
			if !f.HasAlpha() {
				wantA = 255
			}
			if r != 10 || g != 20 || bl != 30 || a != wantA {
				t.Errorf("GetRGBA() = (%d,%d,%d,%d), want (10,20,30,%d)", r, g, bl, a, wantA)
			}
			if err := b.SetRGBA(3, 0, 0, 0, 0, 0); !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("SetRGBA(out of bounds) error = %v, want ErrOutOfBounds", err)
			}
		})
	}
}

func TestBGRAByteOrder(t *testing.T) {
	b, _ := New(1, 1, FormatBGRA8)
	_ = b.SetRGBA(0, 0, 1, 2, 3, 4)
	want := []byte{3, 2, 1, 4}
	for i, v := range want {
		if b.Data()[i] != v {
			t.Fatalf("Data() = %v, want %v", b.Data(), want)
		}
	}
}

func TestFill(t *testing.T) {
	for _, f := range []Format{FormatRGB8, FormatRGBA8} {
		b, _ := New(7, 5, f)
		b.Fill(9, 8, 7, 6)
		for y := range 5 {
			for x := range 7 {
				r, g, bl, _ := b.GetRGBA(x, y)
				if r != 9 || g != 8 || bl != 7 {
					t.Fatalf("%v: pixel (%d,%d) = (%d,%d,%d)", f, x, y, r, g, bl)
				}
			}
		}
	}
}

func TestConvert(t *testing.T) {
	src, _ := New(2, 2, FormatRGBA8)
	_ = src.SetRGBA(1, 1, 100, 150, 200, 50)

	rgb, err := src.Convert(FormatRGB8)
	if err != nil {
		t.Fatal(err)
	}
	if r, g, b, a := rgb.GetRGBA(1, 1); r != 100 || g != 150 || b != 200 || a != 255 {
		t.Errorf("RGB8 pixel = (%d,%d,%d,%d)", r, g, b, a)
	}

	bgra, _ := rgb.Convert(FormatBGRA8)
	if r, g, b, a := bgra.GetRGBA(1, 1); r != 100 || g != 150 || b != 200 || a != 255 {
		t.Errorf("BGRA8 pixel = (%d,%d,%d,%d)", r, g, b, a)
	}

	if _, err := src.Convert(Format(9)); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Convert(invalid) error = %v", err)
	}
}

func TestEqualIgnoresStride(t *testing.T) {
	tight, _ := New(2, 2, FormatRGB8)
	tight.Fill(1, 2, 3, 255)

	raw := make([]byte, 8*2)
	padded, _ := FromRaw(raw, 2, 2, FormatRGB8, 8)
	padded.Fill(1, 2, 3, 255)

	if !tight.Equal(padded) {
		t.Error("Equal() = false for identical pixels with different strides")
	}
	if !padded.Clone().Equal(tight) {
		t.Error("Clone() changed pixels")
	}
	_ = padded.SetRGBA(0, 0, 0, 0, 0, 0)
	if tight.Equal(padded) {
		t.Error("Equal() = true after modification")
	}
}

func TestIsOpaque(t *testing.T) {
	b, _ := New(2, 2, FormatRGBA8)
	b.Fill(0, 0, 0, 255)
	if !b.IsOpaque() {
		t.Error("IsOpaque() = false for opaque fill")
	}
	_ = b.SetRGBA(1, 1, 0, 0, 0, 254)
	if b.IsOpaque() {
		t.Error("IsOpaque() = true with a translucent pixel")
	}
	rgb, _ := New(1, 1, FormatRGB8)
	if !rgb.IsOpaque() {
		t.Error("RGB8 must always be opaque")
	}
}
