package starling

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// MaxQuadsPerBatch is the most quads one batch holds, keeping vertex indices
// within 16 bits.
const MaxQuadsPerBatch = 16383

// minBatchCapacity is the quad capacity of a batch after its first grow.
const minBatchCapacity = 16

// QuadBatch collects the transformed vertex data of many quads that share a
// texture, blend mode and tint state, so they can be drawn with one
// DrawTriangles32 call.
type QuadBatch struct {
	vertexData *VertexData
	indices    []uint32
	numQuads   int

	texture   *ebiten.Image
	blendMode BlendMode
	tinted    bool

	// reused upload buffer
	verts []ebiten.Vertex
}

// NewQuadBatch creates an empty batch.
func NewQuadBatch() *QuadBatch {
	return &QuadBatch{vertexData: NewVertexData(0, true)}
}

// NumQuads returns the number of quads in the batch.
func (b *QuadBatch) NumQuads() int { return b.numQuads }

// Capacity returns the number of quads the buffers currently hold.
func (b *QuadBatch) Capacity() int { return b.vertexData.NumVertices() / 4 }

// Tinted reports whether the batch needs the tinted shader path.
func (b *QuadBatch) Tinted() bool { return b.tinted }

// Texture returns the batch texture, nil for solid colors.
func (b *QuadBatch) Texture() *ebiten.Image { return b.texture }

// BlendMode returns the batch blend mode.
func (b *QuadBatch) BlendMode() BlendMode { return b.blendMode }

// VertexData returns the shared vertex buffer. Only the first NumQuads*4
// vertices are meaningful.
func (b *QuadBatch) VertexData() *VertexData { return b.vertexData }

// Indices returns the index buffer for the quads in the batch: two triangles
// per quad, TL-TR-BL and TR-BR-BL.
func (b *QuadBatch) Indices() []uint32 { return b.indices[:b.numQuads*6] }

// Reset empties the batch, keeping its buffers.
func (b *QuadBatch) Reset() {
	b.numQuads = 0
	b.texture = nil
	b.blendMode = BlendAuto
	b.tinted = false
}

// AddQuad appends q's vertices, transformed by m, scaling their alpha by
// parentAlpha*q.Alpha. texture overrides q.Texture when not nil; blend
// overrides q.BlendMode unless it is BlendAuto. The first quad decides the
// batch state; callers check IsStateChange before adding more.
func (b *QuadBatch) AddQuad(q *Quad, parentAlpha float64, texture *ebiten.Image, m Matrix, blend BlendMode) {
	if texture == nil {
		texture = q.Texture
	}
	alpha := parentAlpha * q.Alpha
	vertexID := b.numQuads * 4

	if b.numQuads+1 > b.Capacity() {
		b.expand()
	}
	if b.numQuads == 0 {
		b.blendMode = blend.Resolve(q.BlendMode)
		b.texture = texture
		b.tinted = q.Tinted() || alpha != 1
		b.vertexData.SetPremultipliedAlpha(q.PremultipliedAlpha(), false)
	}

	q.CopyVertexDataTransformedTo(b.vertexData, vertexID, m)
	if alpha != 1 {
		b.vertexData.ScaleAlpha(vertexID, float32(alpha), 4)
	}
	b.numQuads++
}

// IsStateChange reports whether adding numQuads quads with the given state
// requires flushing the batch first. alpha is the combined alpha the quads
// will be drawn with, premultipliedAlpha the color convention of their
// vertex data and blend their resolved blend mode. Quads are copied without
// converting colors, so a batch never mixes conventions.
func (b *QuadBatch) IsStateChange(tinted bool, alpha float64, premultipliedAlpha bool, texture *ebiten.Image, blend BlendMode, numQuads int) bool {
	switch {
	case b.numQuads == 0:
		return false
	case b.numQuads+numQuads > MaxQuadsPerBatch:
		return true
	case b.vertexData.PremultipliedAlpha() != premultipliedAlpha:
		return true
	case b.texture == nil && texture == nil:
		return b.blendMode != blend || b.tinted != (tinted || alpha != 1)
	case b.texture != nil && texture != nil:
		return b.texture != texture ||
			b.tinted != (tinted || alpha != 1) ||
			b.blendMode != blend
	default:
		return true
	}
}

// expand doubles the quad capacity and extends the index buffer.
func (b *QuadBatch) expand() {
	oldCapacity := b.Capacity()
	newCapacity := oldCapacity * 2
	if newCapacity < minBatchCapacity {
		newCapacity = minBatchCapacity
	}
	if newCapacity > MaxQuadsPerBatch {
		newCapacity = MaxQuadsPerBatch
	}
	b.vertexData.SetNumVertices(newCapacity * 4)
	for i := oldCapacity; i < newCapacity; i++ {
		base := uint32(i * 4)
		b.indices = append(b.indices,
			base+0, base+1, base+2,
			base+1, base+3, base+2,
		)
	}
}

// Render submits the batch to target in a single DrawTriangles32 call.
// Solid-color batches are drawn with a 1x1 white texture.
func (b *QuadBatch) Render(target *ebiten.Image) {
	if b.numQuads == 0 {
		return
	}
	img := b.texture
	if img == nil {
		img = ensureWhitePixel()
	}
	size := img.Bounds().Size()

	b.verts = b.vertexData.AppendEbitenVertices(b.verts[:0], 0, b.numQuads*4, float32(size.X), float32(size.Y))

	var op ebiten.DrawTrianglesOptions
	op.Blend = b.blendMode.Resolve(BlendNormal).EbitenBlend()
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	target.DrawTriangles32(b.verts, b.Indices(), img, &op)
}

// whitePixel is created lazily; the package is single-threaded, so no
// sync.Once.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	return whitePixel
}
