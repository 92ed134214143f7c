package starling

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestBatcherGroupsByState(t *testing.T) {
	texA := ebiten.NewImage(4, 4)
	texB := ebiten.NewImage(4, 4)

	newTextured := func(tex *ebiten.Image) *Quad {
		q := NewQuad("q", 4, 4, ColorWhite, true)
		q.Texture = tex
		return q
	}

	r := NewBatcher()
	r.BatchQuad(newTextured(texA), 1, IdentityMatrix)
	r.BatchQuad(newTextured(texA), 1, IdentityMatrix)
	// texture change
	r.BatchQuad(newTextured(texB), 1, IdentityMatrix)
	// tint change
	r.BatchQuad(newTextured(texB), 0.5, IdentityMatrix)
	// blend change
	additive := newTextured(texB)
	additive.BlendMode = BlendAdd
	r.BatchQuad(additive, 1, IdentityMatrix)

	batches := r.Batches()
	want := []int{2, 1, 1, 1}
	if len(batches) != len(want) {
		t.Fatalf("batches = %d, want %d", len(batches), len(want))
	}
	for i, n := range want {
		if batches[i].NumQuads() != n {
			t.Errorf("batch %d has %d quads, want %d", i, batches[i].NumQuads(), n)
		}
	}
	if batches[0].Texture() != texA || batches[1].Texture() != texB {
		t.Error("batch textures do not follow submission order")
	}
	if batches[3].BlendMode() != BlendAdd {
		t.Errorf("last batch blend = %v, want add", batches[3].BlendMode())
	}
}

func TestBatcherSeparatesAlphaConventions(t *testing.T) {
	newHalfRed := func(pma bool) *Quad {
		q := NewQuad("q", 4, 4, 0xFF0000, pma)
		for i := 0; i < 4; i++ {
			q.SetVertexAlpha(i, 0.5)
		}
		return q
	}

	r := NewBatcher()
	r.BatchQuad(newHalfRed(false), 1, IdentityMatrix)
	r.BatchQuad(newHalfRed(true), 1, IdentityMatrix)

	batches := r.Batches()
	if len(batches) != 2 {
		t.Fatalf("batches = %d, want 2", len(batches))
	}
	for i, b := range batches {
		for _, v := range b.VertexData().AppendEbitenVertices(nil, 0, 4, 1, 1) {
			if !approx32(v.ColorR, 0.5) || v.ColorA != 0.5 {
				t.Errorf("batch %d color = (%v, %v), want premultiplied (0.5, 0.5)", i, v.ColorR, v.ColorA)
			}
		}
	}
}

func TestBatcherSkipsHiddenQuads(t *testing.T) {
	r := NewBatcher()
	hidden := NewQuad("hidden", 1, 1, ColorWhite, true)
	hidden.Visible = false
	disposed := NewQuad("disposed", 1, 1, ColorWhite, true)
	disposed.Dispose()

	r.BatchQuad(hidden, 1, IdentityMatrix)
	r.BatchQuad(disposed, 1, IdentityMatrix)
	if n := len(r.Batches()); n != 0 {
		t.Errorf("batches = %d, want 0", n)
	}
}

func TestBatcherRenderStatsAndReset(t *testing.T) {
	screen := ebiten.NewImage(32, 32)
	r := NewBatcher()
	r.BatchQuad(NewQuad("a", 4, 4, ColorWhite, true), 1, IdentityMatrix)
	r.BatchQuad(NewQuad("b", 4, 4, ColorWhite, true), 1, TranslateMatrix(8, 0))
	r.BatchQuad(NewQuad("c", 4, 4, 0xFF0000, true), 1, TranslateMatrix(16, 0))

	r.Render(screen)
	stats := r.Stats()
	if stats.Batches != 2 || stats.Quads != 3 || stats.DrawCalls != 2 {
		t.Errorf("stats = %+v, want 2 batches, 3 quads, 2 draw calls", stats)
	}
	if n := len(r.Batches()); n != 0 {
		t.Errorf("batches after Render = %d, want 0", n)
	}

	// Buffers are reused across frames.
	r.BatchQuad(NewQuad("a", 4, 4, ColorWhite, true), 1, IdentityMatrix)
	if n := len(r.Batches()); n != 1 {
		t.Errorf("batches = %d, want 1", n)
	}
	if len(r.batches) != 2 {
		t.Errorf("batch buffers = %d, want 2 reused", len(r.batches))
	}
}

func TestBatcherReset(t *testing.T) {
	r := NewBatcher()
	r.BatchQuad(NewQuad("a", 1, 1, ColorWhite, true), 1, IdentityMatrix)
	r.BatchQuad(NewQuad("b", 1, 1, 0x00FF00, true), 1, IdentityMatrix)
	r.Reset()
	if n := len(r.Batches()); n != 0 {
		t.Errorf("batches after Reset = %d, want 0", n)
	}
}

func BenchmarkBatcherFrame(b *testing.B) {
	screen := ebiten.NewImage(256, 256)
	quads := make([]*Quad, 500)
	for i := range quads {
		quads[i] = NewQuad("q", 8, 8, 0x808080, true)
		quads[i].X = float64(i % 32 * 8)
		quads[i].Y = float64(i / 32 * 8)
	}
	r := NewBatcher()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, q := range quads {
			r.BatchQuad(q, 1, q.TransformationMatrix())
		}
		r.Render(screen)
	}
}
