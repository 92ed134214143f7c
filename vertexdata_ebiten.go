package starling

import "github.com/hajimehoshi/ebiten/v2"

// AppendEbitenVertices appends numVertices vertices starting at vertexID to
// dst as ebiten.Vertex values and returns the extended slice. A negative
// numVertices means "to the end".
//
// Texture coordinates are scaled by (texWidth, texHeight) into the texel
// space ebiten expects. Colors are emitted premultiplied, matching
// ebiten.ColorScaleModePremultipliedAlpha, regardless of how the buffer
// stores them.
func (vd *VertexData) AppendEbitenVertices(dst []ebiten.Vertex, vertexID, numVertices int, texWidth, texHeight float32) []ebiten.Vertex {
	numVertices = vd.resolveRange(vertexID, numVertices)
	off := vertexID * ElementsPerVertex
	for i := 0; i < numVertices; i++ {
		v := vd.rawData[off : off+ElementsPerVertex]
		r, g, b, a := v[2], v[3], v[4], v[5]
		if !vd.premultipliedAlpha {
			r, g, b = r*a, g*a, b*a
		}
		dst = append(dst, ebiten.Vertex{
			DstX:   v[0],
			DstY:   v[1],
			SrcX:   v[6] * texWidth,
			SrcY:   v[7] * texHeight,
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: a,
		})
		off += ElementsPerVertex
	}
	return dst
}
