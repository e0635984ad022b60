package panelbg

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Errors.
var (
	// ErrNoBackground is returned by a DesktopSource when the root window
	// has no wallpaper.
	ErrNoBackground = errors.New("panelbg: no desktop background")

	// ErrInvalidIdentity is returned by ParseString for malformed input.
	ErrInvalidIdentity = errors.New("panelbg: invalid background identity")

	// ErrUnknownType is returned when parsing an unknown background type.
	ErrUnknownType = errors.New("panelbg: unknown background type")

	// ErrUnknownOrientation is returned when parsing an unknown orientation.
	ErrUnknownOrientation = errors.New("panelbg: unknown orientation")
)

// ScreenID identifies an X screen.
type ScreenID int

// Orientation is the panel edge a panel is attached to.
type Orientation uint8

// Panel orientations.
const (
	OrientationTop Orientation = iota
	OrientationBottom
	OrientationLeft
	OrientationRight
)

// IsVertical reports whether panels with this orientation run top to bottom.
func (o Orientation) IsVertical() bool {
	return o == OrientationLeft || o == OrientationRight
}

// String returns the orientation name.
func (o Orientation) String() string {
	switch o {
	case OrientationTop:
		return "top"
	case OrientationBottom:
		return "bottom"
	case OrientationLeft:
		return "left"
	case OrientationRight:
		return "right"
	default:
		return "Orientation(" + strconv.Itoa(int(o)) + ")"
	}
}

// ParseOrientation parses "top", "bottom", "left" or "right".
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top", "":
		return OrientationTop, nil
	case "bottom":
		return OrientationBottom, nil
	case "left":
		return OrientationLeft, nil
	case "right":
		return OrientationRight, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOrientation, s)
}

// Type is the kind of background.
type Type uint8

// Background types.
const (
	TypeNone Type = iota
	TypeColor
	TypeImage
)

// String returns the type name used in configuration files.
func (t Type) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeColor:
		return "color"
	case TypeImage:
		return "image"
	default:
		return "Type(" + strconv.Itoa(int(t)) + ")"
	}
}

// ParseType parses "none", "color" or "image".
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return TypeNone, nil
	case "color":
		return TypeColor, nil
	case "image":
		return TypeImage, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// RGB is an opaque 8-bit color.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as six lowercase hex digits, "rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}

// RGBA returns the color with the given alpha as a color.RGBA.
// color.RGBA is premultiplied; the channels are scaled accordingly.
func (c RGB) RGBA(alpha uint8) color.RGBA {
	mul := func(v uint8) uint8 { return uint8((uint16(v)*uint16(alpha) + 127) / 255) }
	return color.RGBA{R: mul(c.R), G: mul(c.G), B: mul(c.B), A: alpha}
}

// ParseHex parses "rrggbb" with an optional leading '#'.
func ParseHex(s string) (RGB, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("panelbg: invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("panelbg: invalid hex color %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Rect is a panel region in root window coordinates.
type Rect struct {
	X, Y          int
	Width, Height int
}

// SameSize reports whether r and o have equal dimensions.
func (r Rect) SameSize(o Rect) bool {
	return r.Width == o.Width && r.Height == o.Height
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}
