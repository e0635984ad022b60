package pixbuf

import "github.com/gogpu/panelbg/internal/blend"

// FillOver composites a solid straight-alpha color over every pixel of dst,
// in place. Alpha 0 leaves dst untouched; alpha 255 is a plain fill.
func FillOver(dst *Buf, r, g, b, a uint8) {
	switch a {
	case 0:
		return
	case 255:
		dst.Fill(r, g, b, 255)
		return
	}

	bpp := dst.format.BytesPerPixel()
	for y := range dst.height {
		off := y * dst.stride
		for x := range dst.width {
			o := off + x*bpp
			dr, dg, db, da := dst.GetRGBA(x, y)
			nr, ng, nb, na := blend.SourceOver(r, g, b, a, dr, dg, db, da)
			dst.putRGBA(o, nr, ng, nb, na)
		}
	}
}

// DrawOver composites src over dst with src's top-left corner at (x, y),
// in place. Parts of src outside dst are clipped.
func DrawOver(dst, src *Buf, x, y int) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+src.width, dst.width), min(y+src.height, dst.height)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	bpp := dst.format.BytesPerPixel()
	for dy := y0; dy < y1; dy++ {
		off := dy * dst.stride
		for dx := x0; dx < x1; dx++ {
			sr, sg, sb, sa := src.GetRGBA(dx-x, dy-y)
			dr, dg, db, da := dst.GetRGBA(dx, dy)
			r, g, b, a := blend.SourceOver(sr, sg, sb, sa, dr, dg, db, da)
			dst.putRGBA(off+dx*bpp, r, g, b, a)
		}
	}
}

// DrawTiledOver composites src repeated across the whole of dst, in place.
// The first copy sits at the top-left corner.
func DrawTiledOver(dst, src *Buf) {
	for y := 0; y < dst.height; y += src.height {
		for x := 0; x < dst.width; x += src.width {
			DrawOver(dst, src, x, y)
		}
	}
}

