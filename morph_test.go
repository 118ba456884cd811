package evergreen

import (
	"math"
	"testing"
)

func near(a, b float64) bool {
	return math.Abs(a-b) <= eps
}

func nearVec(a, b Vec3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func TestAnimatorConvergesUp(t *testing.T) {
	a := NewAnimator(2.5, 0)
	prev := a.Factor()
	reached := -1
	for i := 0; i < 1000; i++ {
		a.Advance(Assembled, 1.0/60)
		f := a.Factor()
		if f > 1 {
			t.Fatalf("tick %d: factor = %v overshoots 1", i, f)
		}
		if reached < 0 {
			if f <= prev {
				t.Fatalf("tick %d: factor %v did not increase from %v", i, f, prev)
			}
			if f == 1 {
				reached = i
			}
		} else if f != 1 {
			t.Fatalf("tick %d: factor = %v after converging, want 1", i, f)
		}
		prev = f
	}
	if reached < 0 {
		t.Fatalf("factor never reached 1, last = %v", prev)
	}
}

func TestAnimatorConvergesDown(t *testing.T) {
	a := NewAnimator(2.5, 1)
	prev := a.Factor()
	for i := 0; i < 1000 && prev > 0; i++ {
		a.Advance(Scattered, 1.0/60)
		f := a.Factor()
		if f >= prev || f < 0 {
			t.Fatalf("tick %d: factor %v, previous %v", i, f, prev)
		}
		prev = f
	}
	if prev != 0 {
		t.Fatalf("factor = %v, want exactly 0", prev)
	}
	if !a.Advance(Scattered, 1.0/60) || a.Factor() != 0 {
		t.Errorf("settled factor moved to %v", a.Factor())
	}
}

func TestAnimatorLargeStepClamps(t *testing.T) {
	a := NewAnimator(2.5, 1)
	if !a.Advance(Scattered, 1.0) {
		t.Error("Advance should report settled")
	}
	if a.Factor() != 0 {
		t.Errorf("factor = %v, want 0", a.Factor())
	}
}

func TestAnimatorSnapsWithinEpsilon(t *testing.T) {
	a := NewAnimator(2.5, 0.9995)
	a.Advance(Assembled, 0)
	if a.Factor() != 1 {
		t.Errorf("factor = %v, want snap to 1", a.Factor())
	}

	b := NewAnimator(2.5, 0.5)
	b.Advance(Assembled, 0)
	if b.Factor() != 0.5 {
		t.Errorf("factor = %v, want 0.5 unchanged for zero delta", b.Factor())
	}
}

func TestNewAnimatorClamps(t *testing.T) {
	if f := NewAnimator(1, 2).Factor(); f != 1 {
		t.Errorf("factor = %v, want 1", f)
	}
	if f := NewAnimator(1, -3).Factor(); f != 0 {
		t.Errorf("factor = %v, want 0", f)
	}
}

func TestHoverOffset(t *testing.T) {
	if h := hoverOffset(0.95, math.Pi); !near(h, 0.2) {
		t.Errorf("hover = %v, want 0.2", h)
	}
	if h := hoverOffset(0.9, math.Pi); h != 0 {
		t.Errorf("hover at threshold = %v, want 0", h)
	}
	if h := hoverOffset(0.2, 1.3); h != 0 {
		t.Errorf("hover scattered = %v, want 0", h)
	}
}

func TestBulkTransform(t *testing.T) {
	rec := ParticleRecord{
		Assembled: Vec3{1, 2, 3},
		Scatter:   Vec3{-10, 5, 8},
		Rotation:  Vec3{0.1, 0.2, 0.3},
		Scale:     0.5,
		Category:  CategoryBulk,
		Color:     GiftPalette[2],
	}

	tr := bulkTransform(&rec, 0, 3, 0)
	if tr.Position != rec.Scatter {
		t.Errorf("scattered position = %v, want %v", tr.Position, rec.Scatter)
	}
	if !nearVec(tr.Rotation, Vec3{6.1, 6.2, 6.3}) {
		t.Errorf("scattered rotation = %v, want base + 6", tr.Rotation)
	}
	if !near(tr.Scale, 0.1) {
		t.Errorf("scattered scale = %v, want 0.1", tr.Scale)
	}
	if tr.Color != rec.Color {
		t.Errorf("color = %v, want %v", tr.Color, rec.Color)
	}

	tr = bulkTransform(&rec, 1, 3, 0.15)
	if !nearVec(tr.Position, Vec3{1, 2.15, 3}) {
		t.Errorf("assembled position = %v, want (1, 2.15, 3)", tr.Position)
	}
	if tr.Rotation != rec.Rotation {
		t.Errorf("assembled rotation = %v, want frozen at %v", tr.Rotation, rec.Rotation)
	}
	if !near(tr.Scale, 0.5) {
		t.Errorf("assembled scale = %v, want 0.5", tr.Scale)
	}

	tr = bulkTransform(&rec, 0.5, 0, 0)
	if !nearVec(tr.Position, Vec3{-4.5, 3.5, 5.5}) {
		t.Errorf("midway position = %v", tr.Position)
	}
	if !near(tr.Scale, 0.5*0.6) {
		t.Errorf("midway scale = %v, want 0.3", tr.Scale)
	}
}

func TestGlowTransform(t *testing.T) {
	rec := ParticleRecord{
		Assembled: Vec3{2, 0, -1},
		Scatter:   Vec3{4, 4, 4},
		Rotation:  Vec3{1, 1, 1},
		Scale:     0.2,
		Category:  CategoryGlow,
	}

	tr := glowTransform(&rec, 3, 0, 1.5, 0)
	if tr.Position != rec.Scatter {
		t.Errorf("scattered position = %v, want %v", tr.Position, rec.Scatter)
	}
	if tr.Rotation != (Vec3{}) {
		t.Errorf("rotation = %v, want zero", tr.Rotation)
	}
	wantScale := 0.2 * (1 + math.Sin(1.5*3+3)*0.3)
	if !near(tr.Scale, wantScale) {
		t.Errorf("scale = %v, want %v", tr.Scale, wantScale)
	}

	elapsed, i := 0.7, 5
	orbit := math.Sin(elapsed+float64(i)) * 0.3
	want := Vec3{
		2 + math.Cos(elapsed*2+float64(i))*orbit,
		0.05,
		-1 + math.Sin(elapsed*2+float64(i))*orbit,
	}
	tr = glowTransform(&rec, i, 1, elapsed, 0.05)
	if !nearVec(tr.Position, want) {
		t.Errorf("assembled position = %v, want %v", tr.Position, want)
	}
}

func TestStarTransform(t *testing.T) {
	rec := ParticleRecord{
		Assembled: Vec3{0, 6.5, 0},
		Scatter:   Vec3{3, 25, -4},
		Scale:     1.5,
		Category:  CategoryStar,
		Color:     GoldMetallic,
	}
	tr := starTransform(&rec, 0, 2, 0)
	if tr.Position != rec.Scatter {
		t.Errorf("scattered position = %v", tr.Position)
	}
	if !near(tr.Scale, 0.1) {
		t.Errorf("scattered scale = %v, want 0.1", tr.Scale)
	}
	if !nearVec(tr.Rotation, Vec3{0, 1, math.Sin(2) * 0.1}) {
		t.Errorf("rotation = %v", tr.Rotation)
	}

	tr = starTransform(&rec, 1, 2, 0.1)
	if !nearVec(tr.Position, Vec3{0, 6.6, 0}) {
		t.Errorf("assembled position = %v, want (0, 6.6, 0)", tr.Position)
	}
	if !near(tr.Scale, 1.2) {
		t.Errorf("assembled scale = %v, want 1.2", tr.Scale)
	}
}

func TestParticleTransformDispatch(t *testing.T) {
	rec := ParticleRecord{Scatter: Vec3{1, 1, 1}, Assembled: Vec3{2, 2, 2}, Scale: 1, Category: CategoryStar}
	if got, want := particleTransform(&rec, 0, 0.5, 1, 0), starTransform(&rec, 0.5, 1, 0); got != want {
		t.Errorf("star dispatch = %v, want %v", got, want)
	}
	rec.Category = CategoryGlow
	if got, want := particleTransform(&rec, 4, 0.5, 1, 0), glowTransform(&rec, 4, 0.5, 1, 0); got != want {
		t.Errorf("glow dispatch = %v, want %v", got, want)
	}
}
