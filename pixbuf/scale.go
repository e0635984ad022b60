package pixbuf

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// FitToHeight returns the size of a w×h image scaled to the given height
// with its aspect ratio preserved. The width is never less than one pixel.
func FitToHeight(w, h, height int) (int, int) {
	if h <= 0 || height <= 0 {
		return w, h
	}
	nw := w * height / h
	if nw < 1 {
		nw = 1
	}
	return nw, height
}

// FitToWidth returns the size of a w×h image scaled to the given width
// with its aspect ratio preserved. The height is never less than one pixel.
func FitToWidth(w, h, width int) (int, int) {
	if w <= 0 || width <= 0 {
		return w, h
	}
	nh := h * width / w
	if nh < 1 {
		nh = 1
	}
	return width, nh
}

// Scale returns src resampled to width×height with a bilinear filter.
// The result keeps the source format. Scaling to the source size returns a
// copy.
func Scale(src *Buf, width, height int) (*Buf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if width == src.width && height == src.height {
		return src.Clone(), nil
	}

	in := src.ToImage()
	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.BiLinear.Scale(out, out.Bounds(), in, in.Bounds(), xdraw.Src, nil)

	return fromNRGBA(out, src.format), nil
}

// fromNRGBA copies img into a new buffer of the given format.
func fromNRGBA(img *image.NRGBA, format Format) *Buf {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	buf := mustNew(w, h, format)
	if format == FormatRGBA8 {
		for y := range h {
			copy(buf.RowBytes(y), img.Pix[y*img.Stride:y*img.Stride+w*4])
		}
		return buf
	}

	bpp := format.BytesPerPixel()
	for y := range h {
		src := img.Pix[y*img.Stride:]
		off := y * buf.stride
		for x := range w {
			p := src[x*4:]
			buf.putRGBA(off+x*bpp, p[0], p[1], p[2], p[3])
		}
	}
	return buf
}
