package starling

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Quad is a renderable rectangle made of four vertices (top-left, top-right,
// bottom-left, bottom-right). It carries the transform properties tweens
// animate and the vertex data batches consume. When Texture is nil the quad
// is drawn as a solid color.
type Quad struct {
	Name string

	// Transform (local)
	X, Y         float64
	ScaleX       float64
	ScaleY       float64
	Rotation     float64
	SkewX, SkewY float64
	PivotX       float64
	PivotY       float64

	Alpha     float64
	Visible   bool
	BlendMode BlendMode
	Texture   *ebiten.Image

	vertexData *VertexData
	disposed   bool
}

// NewQuad creates a width x height quad of the given 0xRRGGBB color.
func NewQuad(name string, width, height float32, color uint32, premultipliedAlpha bool) *Quad {
	q := &Quad{
		Name:       name,
		ScaleX:     1,
		ScaleY:     1,
		Alpha:      1,
		Visible:    true,
		vertexData: NewVertexData(4, premultipliedAlpha),
	}
	vd := q.vertexData
	vd.SetPosition(1, width, 0)
	vd.SetPosition(2, 0, height)
	vd.SetPosition(3, width, height)
	vd.SetTexCoords(1, 1, 0)
	vd.SetTexCoords(2, 0, 1)
	vd.SetTexCoords(3, 1, 1)
	vd.SetUniformColor(color)
	return q
}

// VertexData returns the quad's local vertex data. Changes are visible to
// the next batch.
func (q *Quad) VertexData() *VertexData { return q.vertexData }

// SetColor sets the color of all four vertices.
func (q *Quad) SetColor(color uint32) { q.vertexData.SetUniformColor(color) }

// Color returns the color of the first vertex.
func (q *Quad) Color() uint32 { return q.vertexData.Color(0) }

// SetVertexColor sets the color of one vertex.
func (q *Quad) SetVertexColor(vertexID int, color uint32) {
	q.vertexData.SetColor(vertexID, color)
}

// VertexColor returns the color of one vertex.
func (q *Quad) VertexColor(vertexID int) uint32 { return q.vertexData.Color(vertexID) }

// SetVertexAlpha sets the alpha of one vertex.
func (q *Quad) SetVertexAlpha(vertexID int, alpha float32) {
	q.vertexData.SetAlpha(vertexID, alpha)
}

// VertexAlpha returns the alpha of one vertex.
func (q *Quad) VertexAlpha(vertexID int) float32 { return q.vertexData.Alpha(vertexID) }

// Tinted reports whether any vertex is colored or translucent.
func (q *Quad) Tinted() bool { return q.vertexData.Tinted() }

// PremultipliedAlpha reports the color convention of the vertex data.
func (q *Quad) PremultipliedAlpha() bool { return q.vertexData.PremultipliedAlpha() }

// TransformationMatrix returns the local transform. Composition order:
//
//	Translate(-PivotX, -PivotY) -> Scale -> Skew -> Rotate -> Translate(X, Y)
func (q *Quad) TransformationMatrix() Matrix {
	sx := q.ScaleX
	sy := q.ScaleY

	sin, cos := math.Sincos(q.Rotation)

	var tanSkewX, tanSkewY float64
	if q.SkewX != 0 {
		tanSkewX = math.Tan(q.SkewX)
	}
	if q.SkewY != 0 {
		tanSkewY = math.Tan(q.SkewY)
	}

	a := sx
	b := tanSkewY * sx
	c := tanSkewX * sy
	d := sy
	preTx := -q.PivotX*sx - tanSkewX*q.PivotY*sy
	preTy := -tanSkewY*q.PivotX*sx - q.PivotY*sy

	return Matrix{
		cos*a - sin*b,
		sin*a + cos*b,
		cos*c - sin*d,
		sin*c + cos*d,
		cos*preTx - sin*preTy + q.X,
		sin*preTx + cos*preTy + q.Y,
	}
}

// Bounds returns the quad's bounding box in the space m maps into. A nil m
// means the parent space (the quad's own transformation matrix).
func (q *Quad) Bounds(m *Matrix) Rect {
	if m == nil {
		local := q.TransformationMatrix()
		m = &local
	}
	return q.vertexData.Bounds(m, 0, 4)
}

// CopyVertexDataTransformedTo writes the four vertices into target at
// vertexID, transforming positions by m.
func (q *Quad) CopyVertexDataTransformedTo(target *VertexData, vertexID int, m Matrix) {
	q.vertexData.CopyTransformedTo(target, vertexID, &m, 0, 4)
}

// Dispose marks the quad as dead. Tweens animating it stop on their next
// advance.
func (q *Quad) Dispose() { q.disposed = true }

// IsDisposed reports whether Dispose was called.
func (q *Quad) IsDisposed() bool { return q.disposed }

// --- Target ---

type quadProperty struct {
	get func(*Quad) float64
	set func(*Quad, float64)
}

var quadProperties = map[string]quadProperty{
	"x":        {func(q *Quad) float64 { return q.X }, func(q *Quad, v float64) { q.X = v }},
	"y":        {func(q *Quad) float64 { return q.Y }, func(q *Quad, v float64) { q.Y = v }},
	"scaleX":   {func(q *Quad) float64 { return q.ScaleX }, func(q *Quad, v float64) { q.ScaleX = v }},
	"scaleY":   {func(q *Quad) float64 { return q.ScaleY }, func(q *Quad, v float64) { q.ScaleY = v }},
	"rotation": {func(q *Quad) float64 { return q.Rotation }, func(q *Quad, v float64) { q.Rotation = v }},
	"skewX":    {func(q *Quad) float64 { return q.SkewX }, func(q *Quad, v float64) { q.SkewX = v }},
	"skewY":    {func(q *Quad) float64 { return q.SkewY }, func(q *Quad, v float64) { q.SkewY = v }},
	"pivotX":   {func(q *Quad) float64 { return q.PivotX }, func(q *Quad, v float64) { q.PivotX = v }},
	"pivotY":   {func(q *Quad) float64 { return q.PivotY }, func(q *Quad, v float64) { q.PivotY = v }},
	"alpha":    {func(q *Quad) float64 { return q.Alpha }, func(q *Quad, v float64) { q.Alpha = v }},
	"color": {
		func(q *Quad) float64 { return float64(q.Color()) },
		func(q *Quad, v float64) { q.SetColor(colorValue(v) & 0xFFFFFF) },
	},
	"width":  {func(q *Quad) float64 { return q.Bounds(nil).Width }, (*Quad).setWidth},
	"height": {func(q *Quad) float64 { return q.Bounds(nil).Height }, (*Quad).setHeight},
}

// setWidth scales the quad so its parent-space bounds are width wide.
func (q *Quad) setWidth(width float64) {
	if nearZero(q.ScaleX) {
		q.ScaleX = 1
	}
	if actual := math.Abs(q.Bounds(nil).Width / q.ScaleX); actual != 0 {
		q.ScaleX = width / actual
	}
}

// setHeight scales the quad so its parent-space bounds are height high.
func (q *Quad) setHeight(height float64) {
	if nearZero(q.ScaleY) {
		q.ScaleY = 1
	}
	if actual := math.Abs(q.Bounds(nil).Height / q.ScaleY); actual != 0 {
		q.ScaleY = height / actual
	}
}

func nearZero(v float64) bool { return v > -1e-8 && v < 1e-8 }

// Property returns a named property. Supported names are x, y, scaleX,
// scaleY, rotation, skewX, skewY, pivotX, pivotY, alpha, color, width and
// height. Width and height are measured in the parent space; setting them
// changes the scale.
func (q *Quad) Property(name string) (float64, bool) {
	p, ok := quadProperties[name]
	if !ok {
		return 0, false
	}
	return p.get(q), true
}

// SetProperty sets a named property and reports whether it exists.
func (q *Quad) SetProperty(name string, value float64) bool {
	p, ok := quadProperties[name]
	if !ok {
		return false
	}
	p.set(q, value)
	return true
}
