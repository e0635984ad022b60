package pixbuf

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // register GIF decoder
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when no registered codec recognizes the data.
	ErrUnsupportedFormat = errors.New("pixbuf: unsupported image format")

	// ErrEmptyImage is returned when a decoded image has no pixels.
	ErrEmptyImage = errors.New("pixbuf: empty image")
)

// Load decodes the image file at path.
// Any codec registered with the image package is accepted; PNG, JPEG, GIF,
// BMP, TIFF and WebP are always available.
func Load(path string) (*Buf, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("pixbuf: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// Decode decodes an image from r, auto-detecting the codec.
func Decode(r io.Reader) (*Buf, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, ErrUnsupportedFormat
		}
		return nil, fmt.Errorf("pixbuf: decode: %w", err)
	}
	return FromImage(img)
}

// FromImage converts a standard library image into a Buf.
//
// Images without an alpha channel become FormatRGB8: gray, YCbCr, CMYK,
// opaque palettes, and opaque RGBA images, which is how codecs return
// truecolor files. Everything else becomes FormatRGBA8 even if every pixel
// happens to be opaque, matching what an image viewer would report as
// "has an alpha channel".
func FromImage(img image.Image) (*Buf, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyImage
	}

	format := FormatRGB8
	if hasAlphaChannel(img) {
		format = FormatRGBA8
	}
	buf := mustNew(width, height, format)

	// Fast path for NRGBA images
	if nrgba, ok := img.(*image.NRGBA); ok && format == FormatRGBA8 {
		for y := range height {
			src := nrgba.Pix[y*nrgba.Stride:]
			copy(buf.RowBytes(y), src[:width*4])
		}
		return buf, nil
	}

	bpp := format.BytesPerPixel()
	for y := range height {
		off := y * buf.stride
		for x := range width {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			buf.putRGBA(off+x*bpp, c.R, c.G, c.B, c.A)
		}
	}
	return buf, nil
}

func hasAlphaChannel(img image.Image) bool {
	switch m := img.(type) {
	case *image.Gray, *image.Gray16, *image.YCbCr, *image.CMYK:
		return false
	case *image.RGBA:
		// image/png, x/image/bmp and x/image/tiff decode truecolor files
		// without an alpha channel to opaque RGBA images.
		return !m.Opaque()
	case *image.RGBA64:
		return !m.Opaque()
	case *image.Paletted:
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// ToImage converts the buffer to an *image.NRGBA.
func (b *Buf) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	if b.format == FormatRGBA8 {
		for y := range b.height {
			copy(img.Pix[y*img.Stride:], b.RowBytes(y))
		}
		return img
	}
	for y := range b.height {
		dst := img.Pix[y*img.Stride:]
		for x := range b.width {
			r, g, bl, a := b.GetRGBA(x, y)
			dst[x*4], dst[x*4+1], dst[x*4+2], dst[x*4+3] = r, g, bl, a
		}
	}
	return img
}

// EncodePNG encodes the buffer as PNG to the given writer.
func (b *Buf) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, b.ToImage()); err != nil {
		return fmt.Errorf("pixbuf: encode PNG: %w", err)
	}
	return nil
}

// SavePNG saves the buffer as a PNG file.
func (b *Buf) SavePNG(path string) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("pixbuf: create file: %w", err)
	}
	if err := b.EncodePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
