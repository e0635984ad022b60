// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package x11

import (
	"image/color"

	"github.com/gogpu/panelbg/pixbuf"
)

// fromBGRA copies a BGRA pixel block, as returned by the X server for
// 24 and 32 bit visuals, into an opaque RGB buffer. The pad byte of a depth
// 24 drawable carries no alpha and is ignored.
func fromBGRA(pix []byte, stride, width, height int) (*pixbuf.Buf, error) {
	src, err := pixbuf.FromRaw(pix, width, height, pixbuf.FormatBGRA8, stride)
	if err != nil {
		return nil, err
	}
	dst, err := pixbuf.New(width, height, pixbuf.FormatRGB8)
	if err != nil {
		return nil, err
	}
	for y := range height {
		s := src.RowBytes(y)
		d := dst.RowBytes(y)
		for x := range width {
			d[x*3+0] = s[x*4+2]
			d[x*3+1] = s[x*4+1]
			d[x*3+2] = s[x*4+0]
		}
	}
	return dst, nil
}

// toBGRA writes buf into a BGRA pixel block with the given stride.
// Translucent pixels are flattened onto black since the window pixmap has
// no alpha channel.
func toBGRA(buf *pixbuf.Buf, pix []byte, stride int) {
	for y := range buf.Height() {
		row := pix[y*stride:]
		for x := range buf.Width() {
			r, g, b, a := buf.GetRGBA(x, y)
			if a != 255 {
				r = mul255(r, a)
				g = mul255(g, a)
				b = mul255(b, a)
			}
			row[x*4+0] = b
			row[x*4+1] = g
			row[x*4+2] = r
			row[x*4+3] = 0xff
		}
	}
}

func mul255(v, a uint8) uint8 {
	return uint8((uint16(v)*uint16(a) + 127) / 255)
}

// pixelValue packs an opaque color for a TrueColor visual with the given
// channel masks.
func pixelValue(c color.RGBA, redMask, greenMask, blueMask uint32) uint32 {
	return scaleToMask(c.R, redMask) | scaleToMask(c.G, greenMask) | scaleToMask(c.B, blueMask)
}

func scaleToMask(v uint8, mask uint32) uint32 {
	if mask == 0 {
		return 0
	}
	shift := 0
	for mask>>shift&1 == 0 {
		shift++
	}
	bits := 0
	for mask>>(shift+bits)&1 == 1 {
		bits++
	}
	top := uint32(1)<<bits - 1
	return (uint32(v)*top + 127) / 255 << shift
}
