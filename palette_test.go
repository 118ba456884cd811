package evergreen

import "testing"

func TestPaletteSizes(t *testing.T) {
	if len(GiftPalette) != 5 || len(NeonPalette) != 5 {
		t.Errorf("palette sizes = %d/%d, want 5/5", len(GiftPalette), len(NeonPalette))
	}
	if paletteFor(CategoryStar) != nil {
		t.Error("star should have no palette")
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff0000")
	if err != nil {
		t.Fatal(err)
	}
	if c != (Color{1, 0, 0}) {
		t.Errorf("color = %v, want red", c)
	}
	if _, err := ParseColor("gold"); err == nil {
		t.Error("expected error for non-hex color")
	}
}

func TestColorHex(t *testing.T) {
	for _, s := range []string{"#8a0000", "#003311", "#ffd700"} {
		c, err := ParseColor(s)
		if err != nil {
			t.Fatal(err)
		}
		if got := c.Hex(); got != s {
			t.Errorf("Hex() = %s, want %s", got, s)
		}
	}
}

func TestColorBlend(t *testing.T) {
	black := Color{}
	white := Color{1, 1, 1}
	mid := black.Blend(white, 0.5)
	if !near(mid.R, 0.5) || !near(mid.G, 0.5) || !near(mid.B, 0.5) {
		t.Errorf("blend = %v, want mid grey", mid)
	}
	if got := black.Blend(white, 0); got != black {
		t.Errorf("blend at 0 = %v, want black", got)
	}
}

func TestColorRGBA8(t *testing.T) {
	r, g, b, a := GoldMetallic.RGBA8()
	if r != 0xff || g != 0xd7 || b != 0 || a != 0xff {
		t.Errorf("gold = %02x%02x%02x%02x, want ffd700ff", r, g, b, a)
	}
	r, _, _, _ = Color{R: 2}.RGBA8()
	if r != 0xff {
		t.Errorf("overbright red = %d, want 255", r)
	}
}

func TestCategoryAndStateStrings(t *testing.T) {
	if CategoryGlow.String() != "glow" || Category(9).String() != "unknown" {
		t.Error("unexpected category names")
	}
	if Assembled.String() != "assembled" || Scattered.String() != "scattered" {
		t.Error("unexpected state names")
	}
	if Assembled.Target() != 1 || Scattered.Target() != 0 {
		t.Error("unexpected state targets")
	}
}
