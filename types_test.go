package panelbg

import (
	"errors"
	"image/color"
	"testing"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{"none", TypeNone, false},
		{"", TypeNone, false},
		{"Color", TypeColor, false},
		{" image ", TypeImage, false},
		{"gradient", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseType(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseType(%q) error = %v", tt.in, err)
			continue
		}
		if err != nil && !errors.Is(err, ErrUnknownType) {
			t.Errorf("ParseType(%q) error = %v, want ErrUnknownType", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseType(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if !tt.wantErr && tt.in != "" && got.String() != normalize(tt.in) {
			t.Errorf("%v.String() = %q", got, got.String())
		}
	}
}

func normalize(s string) string {
	out := make([]byte, 0, len(s))
	for i := range len(s) {
		c := s[i]
		if c == ' ' {
			continue
		}
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}

func TestParseOrientation(t *testing.T) {
	for _, o := range []Orientation{OrientationTop, OrientationBottom, OrientationLeft, OrientationRight} {
		got, err := ParseOrientation(o.String())
		if err != nil || got != o {
			t.Errorf("ParseOrientation(%q) = %v, %v", o.String(), got, err)
		}
	}
	if _, err := ParseOrientation("diagonal"); !errors.Is(err, ErrUnknownOrientation) {
		t.Errorf("ParseOrientation(diagonal) error = %v", err)
	}
	if !OrientationLeft.IsVertical() || !OrientationRight.IsVertical() || OrientationTop.IsVertical() {
		t.Error("IsVertical mismatch")
	}
}

func TestHex(t *testing.T) {
	c, err := ParseHex("#1a2B3c")
	if err != nil {
		t.Fatal(err)
	}
	if c != (RGB{0x1a, 0x2b, 0x3c}) {
		t.Errorf("ParseHex = %+v", c)
	}
	if c.Hex() != "1a2b3c" {
		t.Errorf("Hex() = %q", c.Hex())
	}
	for _, bad := range []string{"", "12345", "zzzzzz", "#1234567"} {
		if _, err := ParseHex(bad); err == nil {
			t.Errorf("ParseHex(%q) should fail", bad)
		}
	}
}

func TestRGBAPremultiplies(t *testing.T) {
	tests := []struct {
		alpha uint8
		want  color.RGBA
	}{
		{255, color.RGBA{200, 100, 0, 255}},
		{0, color.RGBA{0, 0, 0, 0}},
		{128, color.RGBA{100, 50, 0, 128}},
	}
	for _, tt := range tests {
		if got := (RGB{200, 100, 0}).RGBA(tt.alpha); got != tt.want {
			t.Errorf("RGBA(%d) = %v, want %v", tt.alpha, got, tt.want)
		}
	}
}
