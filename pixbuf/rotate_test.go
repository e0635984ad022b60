package pixbuf

import "testing"

// gradient returns a w×h buffer whose pixels are all distinct.
func gradient(w, h int, f Format) *Buf {
	b, _ := New(w, h, f)
	for y := range h {
		for x := range w {
			_ = b.SetRGBA(x, y, uint8(x), uint8(y), uint8(x*7+y*13), uint8(200+x+y))
		}
	}
	return b
}

func TestRotate90Mapping(t *testing.T) {
	for _, f := range []Format{FormatRGB8, FormatRGBA8} {
		t.Run(f.String(), func(t *testing.T) {
			const w, h = 5, 3
			src := gradient(w, h, f)
			dst := Rotate90(src)

			if dst.Width() != h || dst.Height() != w {
				t.Fatalf("Rotate90() size = %dx%d, want %dx%d", dst.Width(), dst.Height(), h, w)
			}
			for y := range h {
				for x := range w {
					sr, sg, sb, sa := src.GetRGBA(x, y)
					dr, dg, db, da := dst.GetRGBA(y, w-x-1)
					if sr != dr || sg != dg || sb != db || sa != da {
						t.Fatalf("pixel (%d,%d) -> (%d,%d): got (%d,%d,%d,%d), want (%d,%d,%d,%d)",
							x, y, y, w-x-1, dr, dg, db, da, sr, sg, sb, sa)
					}
				}
			}
		})
	}
}

func TestRotate270Mapping(t *testing.T) {
	for _, f := range []Format{FormatRGB8, FormatRGBA8} {
		t.Run(f.String(), func(t *testing.T) {
			const w, h = 4, 6
			src := gradient(w, h, f)
			dst := Rotate270(src)
			for y := range h {
				for x := range w {
					sr, sg, sb, sa := src.GetRGBA(x, y)
					dr, dg, db, da := dst.GetRGBA(h-y-1, x)
					if sr != dr || sg != dg || sb != db || sa != da {
						t.Fatalf("pixel (%d,%d) moved incorrectly", x, y)
					}
				}
			}
		})
	}
}

func TestRotateRoundTrip(t *testing.T) {
	for _, f := range []Format{FormatRGB8, FormatRGBA8} {
		t.Run(f.String(), func(t *testing.T) {
			src := gradient(7, 3, f)

			if got := Rotate270(Rotate90(src)); !got.Equal(src) {
				t.Error("Rotate270(Rotate90(src)) != src")
			}
			four := Rotate90(Rotate90(Rotate90(Rotate90(src))))
			if !four.Equal(src) {
				t.Error("four quarter turns != src")
			}
			half := Rotate90(Rotate90(src))
			if !half.Equal(Rotate270(Rotate270(src))) {
				t.Error("half turn differs by direction")
			}
		})
	}
}

// TestRotateKeepsAlpha makes sure the four-channel loop does not shift the
// alpha byte into a color channel.
func TestRotateKeepsAlpha(t *testing.T) {
	src, _ := New(3, 1, FormatRGBA8)
	_ = src.SetRGBA(0, 0, 1, 2, 3, 10)
	_ = src.SetRGBA(1, 0, 4, 5, 6, 20)
	_ = src.SetRGBA(2, 0, 7, 8, 9, 30)

	dst := Rotate90(src)
	want := [][4]uint8{{7, 8, 9, 30}, {4, 5, 6, 20}, {1, 2, 3, 10}}
	for y, w := range want {
		r, g, b, a := dst.GetRGBA(0, y)
		if [4]uint8{r, g, b, a} != w {
			t.Errorf("row %d = %v, want %v", y, [4]uint8{r, g, b, a}, w)
		}
	}
}
