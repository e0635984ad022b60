package panelbg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/panelbg/surface"
)

// Identity is the parsed form of MakeString output. Child widgets use it to
// match the panel background without running a pipeline of their own.
// Type is TypeImage whenever a pixmap is bound, including for translucent
// colors.
type Identity struct {
	Type   Type
	Pixmap surface.PixmapID
	X, Y   int
	Color  RGB
}

// MakeString describes what the window currently shows, for a child placed
// at (x, y) inside the panel:
//
//	pixmap:<id>,<x>,<y>   a drawable is bound
//	color:<rrggbb>        a solid color is bound
//	none:                 the default style is shown
//
// It returns "" for a pixmap background that is not bound yet.
func (s *State) MakeString(x, y int) string {
	t := s.EffectiveType()
	if t == TypeImage || (t == TypeColor && s.hasAlpha) {
		if s.isPrepared && s.bound != 0 {
			return fmt.Sprintf("pixmap:%d,%d,%d", s.bound, x, y)
		}
		if t == TypeImage {
			return ""
		}
	}
	if t == TypeColor {
		return "color:" + s.color.Color.Hex()
	}
	return "none:"
}

// ParseString parses the output of MakeString.
func ParseString(str string) (Identity, error) {
	kind, rest, ok := strings.Cut(str, ":")
	if !ok {
		return Identity{}, fmt.Errorf("%w: %q", ErrInvalidIdentity, str)
	}

	switch kind {
	case "none":
		if rest != "" {
			return Identity{}, fmt.Errorf("%w: %q", ErrInvalidIdentity, str)
		}
		return Identity{Type: TypeNone}, nil

	case "color":
		c, err := ParseHex(rest)
		if err != nil || strings.HasPrefix(rest, "#") {
			return Identity{}, fmt.Errorf("%w: %q", ErrInvalidIdentity, str)
		}
		return Identity{Type: TypeColor, Color: c}, nil

	case "pixmap":
		parts := strings.Split(rest, ",")
		if len(parts) != 3 {
			return Identity{}, fmt.Errorf("%w: %q", ErrInvalidIdentity, str)
		}
		id, err := strconv.ParseUint(parts[0], 10, 32)
		if err != nil || id == 0 {
			return Identity{}, fmt.Errorf("%w: pixmap id %q", ErrInvalidIdentity, parts[0])
		}
		x, errX := strconv.Atoi(parts[1])
		y, errY := strconv.Atoi(parts[2])
		if errX != nil || errY != nil {
			return Identity{}, fmt.Errorf("%w: offset in %q", ErrInvalidIdentity, str)
		}
		return Identity{Type: TypeImage, Pixmap: surface.PixmapID(id), X: x, Y: y}, nil
	}
	return Identity{}, fmt.Errorf("%w: %q", ErrInvalidIdentity, str)
}

// String formats the identity the way MakeString does.
func (id Identity) String() string {
	switch {
	case id.Pixmap != 0:
		return fmt.Sprintf("pixmap:%d,%d,%d", id.Pixmap, id.X, id.Y)
	case id.Type == TypeColor:
		return "color:" + id.Color.Hex()
	default:
		return "none:"
	}
}
