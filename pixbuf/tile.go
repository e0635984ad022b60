package pixbuf

// Tile returns a width×height buffer covered by repeated copies of src,
// starting at the top-left corner. A 1×1 source is flood-filled with its
// single pixel; larger sources are repeated row by row.
func Tile(src *Buf, width, height int) (*Buf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}

	dst := mustNew(width, height, src.format)
	if src.width == 1 && src.height == 1 {
		r, g, b, a := src.GetRGBA(0, 0)
		dst.Fill(r, g, b, a)
		return dst, nil
	}

	srcRowLen := src.format.RowBytes(src.width)
	for y := range height {
		row := dst.RowBytes(y)
		n := copy(row, src.RowBytes(y%src.height))
		// Extend by doubling the already-repeated span; offsets stay aligned
		// to whole source rows so the pattern never shifts.
		for n < len(row) {
			span := n
			if span > len(row)-n {
				span = len(row) - n
			}
			span -= span % srcRowLen
			if span == 0 {
				span = copy(row[n:], row[:srcRowLen])
			} else {
				copy(row[n:], row[:span])
			}
			n += span
		}
	}
	return dst, nil
}

// Crop returns the width×height rectangle of src whose top-left corner is
// (x, y). Pixels of the rectangle outside src are left blank (zero), so a
// rectangle partially or fully past the edge of src is never an error.
func Crop(src *Buf, x, y, width, height int) (*Buf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}

	dst := mustNew(width, height, src.format)

	// Intersection of the requested rectangle with src, in src coordinates.
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+width, src.width), min(y+height, src.height)
	if x0 >= x1 || y0 >= y1 {
		return dst, nil
	}

	bpp := src.format.BytesPerPixel()
	for sy := y0; sy < y1; sy++ {
		s := src.data[sy*src.stride+x0*bpp : sy*src.stride+x1*bpp]
		d := dst.data[(sy-y)*dst.stride+(x0-x)*bpp:]
		copy(d, s)
	}
	return dst, nil
}
