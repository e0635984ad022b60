package pixbuf

// Format represents a pixel storage format.
type Format uint8

const (
	// FormatRGB8 is 24-bit RGB (3 bytes per pixel, no alpha).
	// Decoded images without an alpha channel use this format.
	FormatRGB8 Format = iota

	// FormatRGBA8 is 32-bit RGBA with straight (non-premultiplied) alpha.
	// This is the working format for compositing.
	FormatRGBA8

	// FormatBGRA8 is 32-bit BGRA with straight alpha, the byte order of
	// ZPixmap images on little-endian TrueColor X servers.
	FormatBGRA8

	// formatCount is the number of formats (for internal use).
	formatCount
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// BytesPerPixel is the number of bytes per pixel.
	BytesPerPixel int

	// HasAlpha indicates if the format has an alpha channel.
	HasAlpha bool
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatRGB8:  {BytesPerPixel: 3, HasAlpha: false},
	FormatRGBA8: {BytesPerPixel: 4, HasAlpha: true},
	FormatBGRA8: {BytesPerPixel: 4, HasAlpha: true},
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// BytesPerPixel returns the number of bytes per pixel for this format.
func (f Format) BytesPerPixel() int {
	return f.Info().BytesPerPixel
}

// HasAlpha returns true if this format has an alpha channel.
func (f Format) HasAlpha() bool {
	return f.Info().HasAlpha
}

// IsValid returns true if the format is a valid known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// RowBytes calculates the number of bytes needed for a row of the given width.
func (f Format) RowBytes(width int) int {
	return width * f.BytesPerPixel()
}

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatRGB8:
		return "RGB8"
	case FormatRGBA8:
		return "RGBA8"
	case FormatBGRA8:
		return "BGRA8"
	default:
		return "Unknown"
	}
}
