package pixbuf

import "testing"

func TestFillOverExtremes(t *testing.T) {
	base := gradient(6, 4, FormatRGBA8)

	zero := base.Clone()
	FillOver(zero, 255, 0, 0, 0)
	if !zero.Equal(base) {
		t.Error("FillOver(alpha=0) modified the destination")
	}

	full := base.Clone()
	FillOver(full, 9, 8, 7, 255)
	for y := range 4 {
		for x := range 6 {
			if r, g, b, a := full.GetRGBA(x, y); r != 9 || g != 8 || b != 7 || a != 255 {
				t.Fatalf("pixel (%d,%d) = (%d,%d,%d,%d)", x, y, r, g, b, a)
			}
		}
	}
}

func TestFillOverHalf(t *testing.T) {
	dst, _ := New(2, 2, FormatRGBA8)
	dst.Fill(0, 0, 0, 255)
	FillOver(dst, 255, 255, 255, 128)
	r, g, b, a := dst.GetRGBA(1, 1)
	if r != 128 || g != 128 || b != 128 || a != 255 {
		t.Errorf("pixel = (%d,%d,%d,%d), want (128,128,128,255)", r, g, b, a)
	}
}

func TestDrawOverClips(t *testing.T) {
	dst, _ := New(4, 4, FormatRGBA8)
	src, _ := New(3, 3, FormatRGB8)
	src.Fill(50, 60, 70, 255)

	DrawOver(dst, src, 2, -1)

	for y := range 4 {
		for x := range 4 {
			r, _, _, a := dst.GetRGBA(x, y)
			inside := x >= 2 && y <= 1
			if inside && (r != 50 || a != 255) {
				t.Errorf("pixel (%d,%d) not painted", x, y)
			}
			if !inside && a != 0 {
				t.Errorf("pixel (%d,%d) painted outside the source", x, y)
			}
		}
	}
}

func TestDrawTiledOver(t *testing.T) {
	dst, _ := New(7, 5, FormatRGBA8)
	dst.Fill(0, 0, 255, 255)

	tile, _ := New(2, 2, FormatRGBA8)
	_ = tile.SetRGBA(0, 0, 255, 0, 0, 255)
	// the rest of the tile is transparent

	DrawTiledOver(dst, tile)

	for y := range 5 {
		for x := range 7 {
			r, _, b, _ := dst.GetRGBA(x, y)
			red := x%2 == 0 && y%2 == 0
			if red && (r != 255 || b != 0) {
				t.Errorf("pixel (%d,%d) should be red", x, y)
			}
			if !red && (r != 0 || b != 255) {
				t.Errorf("pixel (%d,%d) should show the destination", x, y)
			}
		}
	}
}
