package starling

import (
	"math"
	"testing"
)

func rectApprox(a, b Rect) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) && approx(a.Width, b.Width) && approx(a.Height, b.Height)
}

func TestNewQuad(t *testing.T) {
	q := NewQuad("q", 10, 20, 0x336699, false)
	if q.Name != "q" || q.ScaleX != 1 || q.ScaleY != 1 || q.Alpha != 1 || !q.Visible {
		t.Errorf("defaults = %+v", q)
	}
	vd := q.VertexData()
	if vd.NumVertices() != 4 {
		t.Fatalf("NumVertices = %d, want 4", vd.NumVertices())
	}

	wantPos := [][2]float32{{0, 0}, {10, 0}, {0, 20}, {10, 20}}
	wantUV := [][2]float32{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	for i := 0; i < 4; i++ {
		if x, y := vd.Position(i); x != wantPos[i][0] || y != wantPos[i][1] {
			t.Errorf("Position(%d) = (%v, %v), want %v", i, x, y, wantPos[i])
		}
		if u, v := vd.TexCoords(i); u != wantUV[i][0] || v != wantUV[i][1] {
			t.Errorf("TexCoords(%d) = (%v, %v), want %v", i, u, v, wantUV[i])
		}
		if c := q.VertexColor(i); !colorClose(c, 0x336699) {
			t.Errorf("VertexColor(%d) = %06x", i, c)
		}
	}
	if !q.Tinted() {
		t.Error("colored quad should be tinted")
	}
	if NewQuad("w", 1, 1, ColorWhite, true).Tinted() {
		t.Error("white quad should not be tinted")
	}
}

func TestQuadVertexColorAndAlpha(t *testing.T) {
	q := NewQuad("q", 1, 1, ColorWhite, true)
	q.SetVertexColor(2, 0xFF0000)
	q.SetVertexAlpha(3, 0.5)

	if c := q.VertexColor(2); c != 0xFF0000 {
		t.Errorf("VertexColor(2) = %06x, want ff0000", c)
	}
	if c := q.Color(); c != ColorWhite {
		t.Errorf("Color = %06x, want first vertex white", c)
	}
	if a := q.VertexAlpha(3); a != 0.5 {
		t.Errorf("VertexAlpha(3) = %v, want 0.5", a)
	}
	if !q.PremultipliedAlpha() {
		t.Error("PremultipliedAlpha = false")
	}

	q.SetColor(0x00FF00)
	for i := 0; i < 4; i++ {
		if c := q.VertexColor(i); c != 0x00FF00 {
			t.Errorf("VertexColor(%d) = %06x after SetColor", i, c)
		}
	}
}

func TestQuadTransformationMatrix(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(q *Quad)
		px, py float64
		wx, wy float64
	}{
		{"identity", func(q *Quad) {}, 3, 4, 3, 4},
		{"translate", func(q *Quad) { q.X, q.Y = 10, 20 }, 1, 1, 11, 21},
		{"scale", func(q *Quad) { q.ScaleX, q.ScaleY = 2, 3 }, 1, 1, 2, 3},
		{"pivot maps to position", func(q *Quad) {
			q.X, q.Y = 10, 20
			q.PivotX, q.PivotY = 5, 5
			q.ScaleX = 2
		}, 5, 5, 10, 20},
		{"rotate", func(q *Quad) { q.Rotation = math.Pi / 2 }, 1, 0, 0, 1},
		{"skewX", func(q *Quad) { q.SkewX = math.Pi / 4 }, 0, 1, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQuad("q", 10, 10, ColorWhite, false)
			tt.setup(q)
			m := q.TransformationMatrix()
			x, y := m.TransformPoint(tt.px, tt.py)
			if !approx(x, tt.wx) || !approx(y, tt.wy) {
				t.Errorf("(%v, %v) -> (%v, %v), want (%v, %v)", tt.px, tt.py, x, y, tt.wx, tt.wy)
			}
		})
	}
}

func TestQuadBounds(t *testing.T) {
	q := NewQuad("q", 10, 20, ColorWhite, false)
	q.X, q.Y = 100, 50
	if got, want := q.Bounds(nil), (Rect{100, 50, 10, 20}); !rectApprox(got, want) {
		t.Errorf("Bounds(nil) = %v, want %v", got, want)
	}

	local := IdentityMatrix
	if got, want := q.Bounds(&local), (Rect{0, 0, 10, 20}); got != want {
		t.Errorf("Bounds(identity) = %v, want %v", got, want)
	}

	q.X, q.Y = 0, 0
	q.Rotation = math.Pi / 2
	if got, want := q.Bounds(nil), (Rect{-20, 0, 20, 10}); !rectApprox(got, want) {
		t.Errorf("rotated Bounds = %v, want %v", got, want)
	}
}

func TestQuadProperties(t *testing.T) {
	q := NewQuad("q", 1, 1, ColorWhite, false)
	names := []string{"x", "y", "scaleX", "scaleY", "rotation", "skewX", "skewY", "pivotX", "pivotY", "alpha"}
	for i, name := range names {
		v := float64(i) + 0.5
		if !q.SetProperty(name, v) {
			t.Errorf("SetProperty(%q) = false", name)
			continue
		}
		if got, ok := q.Property(name); !ok || got != v {
			t.Errorf("Property(%q) = %v, %v, want %v", name, got, ok, v)
		}
	}
	if q.X != 0.5 || q.Alpha != 9.5 {
		t.Errorf("fields not written: X = %v, Alpha = %v", q.X, q.Alpha)
	}

	if !q.SetProperty("color", 0xFF00FF) {
		t.Fatal("SetProperty(color) = false")
	}
	if got, _ := q.Property("color"); uint32(got) != 0xFF00FF {
		t.Errorf("color = %06x, want ff00ff", uint32(got))
	}

	if _, ok := q.Property("depth"); ok {
		t.Error("Property(depth) reported ok")
	}
	if q.SetProperty("depth", 1) {
		t.Error("SetProperty(depth) reported ok")
	}
}

func TestQuadWidthHeight(t *testing.T) {
	q := NewQuad("q", 10, 20, ColorWhite, false)
	if w, _ := q.Property("width"); w != 10 {
		t.Errorf("width = %v, want 10", w)
	}

	q.SetProperty("width", 30)
	q.SetProperty("height", 10)
	if !approx(q.ScaleX, 3) || !approx(q.ScaleY, 0.5) {
		t.Errorf("scale = (%v, %v), want (3, 0.5)", q.ScaleX, q.ScaleY)
	}
	if h, _ := q.Property("height"); !approx(h, 10) {
		t.Errorf("height = %v, want 10", h)
	}

	q.ScaleX = 0
	q.SetProperty("width", 5)
	if !approx(q.ScaleX, 0.5) {
		t.Errorf("ScaleX from zero = %v, want 0.5", q.ScaleX)
	}
}

func TestQuadDispose(t *testing.T) {
	q := NewQuad("q", 1, 1, ColorWhite, false)
	if q.IsDisposed() {
		t.Fatal("new quad is disposed")
	}
	q.Dispose()
	if !q.IsDisposed() {
		t.Fatal("Dispose did not mark the quad")
	}
}

func TestQuadCopyVertexDataTransformedTo(t *testing.T) {
	q := NewQuad("q", 2, 2, 0x00FF00, false)
	dst := NewVertexData(8, false)
	q.CopyVertexDataTransformedTo(dst, 4, TranslateMatrix(10, 10))

	if x, y := dst.Position(7); x != 12 || y != 12 {
		t.Errorf("Position(7) = (%v, %v), want (12, 12)", x, y)
	}
	if c := dst.Color(4); c != 0x00FF00 {
		t.Errorf("Color(4) = %06x, want 00ff00", c)
	}
	if x, y := dst.Position(0); x != 0 || y != 0 {
		t.Error("vertices outside the target range changed")
	}
}
