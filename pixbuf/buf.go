// Package pixbuf provides the pixel buffers and pixel operations behind a
// panel background: decoding, aspect-preserving scaling, quarter-turn
// rotation, tiling, cropping and alpha compositing.
//
// Buffers are plain byte slices with an explicit stride so they can be handed
// to the X server (or any other target) without conversion. All operations
// return new buffers unless their name says otherwise (Fill, DrawOver, ...).
package pixbuf

import (
	"bytes"
	"errors"
)

// Common errors for buffer operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("pixbuf: invalid dimensions")

	// ErrInvalidFormat is returned when the format is not recognized.
	ErrInvalidFormat = errors.New("pixbuf: invalid format")

	// ErrInvalidStride is returned when stride is less than minimum required.
	ErrInvalidStride = errors.New("pixbuf: stride too small for width")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("pixbuf: data buffer too small")

	// ErrOutOfBounds is returned when pixel coordinates are outside buffer bounds.
	ErrOutOfBounds = errors.New("pixbuf: coordinates out of bounds")
)

// Buf is a rectangular pixel buffer.
//
// Buf is not safe for concurrent mutation. Buffers shared between panels
// (the desktop snapshot, decoded images) are treated as read-only.
type Buf struct {
	data   []byte
	width  int
	height int
	stride int
	format Format
}

// New creates a zeroed buffer with the given dimensions and format.
func New(width, height int, format Format) (*Buf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}

	stride := format.RowBytes(width)
	return &Buf{
		data:   make([]byte, stride*height),
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}, nil
}

// FromRaw creates a Buf from existing data without copying.
// The caller must ensure data remains valid for the lifetime of the Buf.
// Stride must be at least format.RowBytes(width).
func FromRaw(data []byte, width, height int, format Format, stride int) (*Buf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	if stride < format.RowBytes(width) {
		return nil, ErrInvalidStride
	}

	required := stride*(height-1) + format.RowBytes(width)
	if len(data) < required {
		return nil, ErrDataTooSmall
	}

	return &Buf{
		data:   data,
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}, nil
}

// mustNew is New for dimensions that were already validated by the caller.
func mustNew(width, height int, format Format) *Buf {
	b, err := New(width, height, format)
	if err != nil {
		panic(err)
	}
	return b
}

// Clone creates a deep copy of the buffer with a tight stride.
func (b *Buf) Clone() *Buf {
	c := mustNew(b.width, b.height, b.format)
	for y := range b.height {
		copy(c.RowBytes(y), b.RowBytes(y))
	}
	return c
}

// Width returns the buffer width in pixels.
func (b *Buf) Width() int {
	return b.width
}

// Height returns the buffer height in pixels.
func (b *Buf) Height() int {
	return b.height
}

// Stride returns the number of bytes per row (including padding).
func (b *Buf) Stride() int {
	return b.stride
}

// Format returns the pixel format.
func (b *Buf) Format() Format {
	return b.format
}

// HasAlpha reports whether the buffer carries an alpha channel.
func (b *Buf) HasAlpha() bool {
	return b.format.HasAlpha()
}

// Bounds returns the buffer dimensions as (width, height).
func (b *Buf) Bounds() (int, int) {
	return b.width, b.height
}

// Data returns the raw pixel data slice.
func (b *Buf) Data() []byte {
	return b.data
}

// RowBytes returns a slice of the pixel data for row y.
// Returns nil if y is out of bounds.
func (b *Buf) RowBytes(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	start := y * b.stride
	return b.data[start : start+b.format.RowBytes(b.width)]
}

// PixelOffset returns the byte offset of pixel (x, y) in the data slice.
// Returns -1 if coordinates are out of bounds.
func (b *Buf) PixelOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return y*b.stride + x*b.format.BytesPerPixel()
}

// GetRGBA returns the color at (x, y) as straight (r, g, b, a).
// Formats without alpha report a=255. Out-of-bounds reads return zero.
func (b *Buf) GetRGBA(x, y int) (r, g, bl, a uint8) {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return 0, 0, 0, 0
	}
	p := b.data[off:]

	switch b.format {
	case FormatRGB8:
		return p[0], p[1], p[2], 255
	case FormatRGBA8:
		return p[0], p[1], p[2], p[3]
	case FormatBGRA8:
		return p[2], p[1], p[0], p[3]
	default:
		return 0, 0, 0, 0
	}
}

// SetRGBA sets the color at (x, y). Alpha is dropped for formats without it.
// Returns ErrOutOfBounds if coordinates are outside the buffer.
func (b *Buf) SetRGBA(x, y int, r, g, bl, a uint8) error {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return ErrOutOfBounds
	}
	b.putRGBA(off, r, g, bl, a)
	return nil
}

func (b *Buf) putRGBA(off int, r, g, bl, a uint8) {
	p := b.data[off:]
	switch b.format {
	case FormatRGB8:
		p[0], p[1], p[2] = r, g, bl
	case FormatRGBA8:
		p[0], p[1], p[2], p[3] = r, g, bl, a
	case FormatBGRA8:
		p[0], p[1], p[2], p[3] = bl, g, r, a
	}
}

// Clear sets all pixels to zero (transparent black for formats with alpha).
func (b *Buf) Clear() {
	for y := range b.height {
		clear(b.RowBytes(y))
	}
}

// Fill sets every pixel to the given color.
func (b *Buf) Fill(r, g, bl, a uint8) {
	bpp := b.format.BytesPerPixel()
	if b.height == 0 || b.width == 0 {
		return
	}
	// Write the first pixel, then double the filled span of the first row.
	row := b.RowBytes(0)
	b.putRGBA(0, r, g, bl, a)
	for n := bpp; n < len(row); n *= 2 {
		copy(row[n:], row[:n])
	}
	for y := 1; y < b.height; y++ {
		copy(b.RowBytes(y), row)
	}
}

// Equal reports whether two buffers have the same size, format and pixels.
// Stride padding is ignored.
func (b *Buf) Equal(o *Buf) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.width != o.width || b.height != o.height || b.format != o.format {
		return false
	}
	for y := range b.height {
		if !bytes.Equal(b.RowBytes(y), o.RowBytes(y)) {
			return false
		}
	}
	return true
}

// Convert returns a copy of the buffer in the given format.
// Converting to a format without alpha drops the alpha channel;
// converting from one without alpha produces opaque pixels.
func (b *Buf) Convert(format Format) (*Buf, error) {
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	if format == b.format {
		return b.Clone(), nil
	}

	dst := mustNew(b.width, b.height, format)
	dbpp := format.BytesPerPixel()
	for y := range b.height {
		off := y * dst.stride
		for x := range b.width {
			r, g, bl, a := b.GetRGBA(x, y)
			dst.putRGBA(off+x*dbpp, r, g, bl, a)
		}
	}
	return dst, nil
}

// IsOpaque reports whether every pixel is fully opaque.
// Buffers without an alpha channel are always opaque.
func (b *Buf) IsOpaque() bool {
	if !b.format.HasAlpha() {
		return true
	}
	for y := range b.height {
		row := b.RowBytes(y)
		for i := 3; i < len(row); i += 4 {
			if row[i] != 255 {
				return false
			}
		}
	}
	return true
}
