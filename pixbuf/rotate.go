package pixbuf

// Rotate90 returns src turned a quarter turn counter-clockwise.
// A W×H buffer becomes H×W; source pixel (x, y) lands at (y, W-1-x).
//
// Three- and four-channel buffers are handled by separate loops so the
// alpha byte is always copied as alpha and never reinterpreted as color.
func Rotate90(src *Buf) *Buf {
	dst := mustNew(src.height, src.width, src.format)
	if src.format.BytesPerPixel() == 3 {
		rotate90RGB(dst, src)
	} else {
		rotate90RGBA(dst, src)
	}
	return dst
}

// Rotate270 returns src turned a quarter turn clockwise.
// A W×H buffer becomes H×W; source pixel (x, y) lands at (H-1-y, x).
func Rotate270(src *Buf) *Buf {
	dst := mustNew(src.height, src.width, src.format)
	if src.format.BytesPerPixel() == 3 {
		rotate270RGB(dst, src)
	} else {
		rotate270RGBA(dst, src)
	}
	return dst
}

func rotate90RGB(dst, src *Buf) {
	width, height := src.width, src.height
	for y := range height {
		row := src.data[y*src.stride:]
		for x := range width {
			s := row[x*3:]
			d := dst.data[y*3+dst.stride*(width-x-1):]
			d[0], d[1], d[2] = s[0], s[1], s[2]
		}
	}
}

func rotate90RGBA(dst, src *Buf) {
	width, height := src.width, src.height
	for y := range height {
		row := src.data[y*src.stride:]
		for x := range width {
			s := row[x*4:]
			d := dst.data[y*4+dst.stride*(width-x-1):]
			d[0], d[1], d[2], d[3] = s[0], s[1], s[2], s[3]
		}
	}
}

func rotate270RGB(dst, src *Buf) {
	width, height := src.width, src.height
	for y := range height {
		row := src.data[y*src.stride:]
		for x := range width {
			s := row[x*3:]
			d := dst.data[(height-y-1)*3+dst.stride*x:]
			d[0], d[1], d[2] = s[0], s[1], s[2]
		}
	}
}

func rotate270RGBA(dst, src *Buf) {
	width, height := src.width, src.height
	for y := range height {
		row := src.data[y*src.stride:]
		for x := range width {
			s := row[x*4:]
			d := dst.data[(height-y-1)*4+dst.stride*x:]
			d[0], d[1], d[2], d[3] = s[0], s[1], s[2], s[3]
		}
	}
}
