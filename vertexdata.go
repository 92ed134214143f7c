package starling

import (
	"math"

	"github.com/pkg/errors"
)

// Vertex layout. Every vertex occupies ElementsPerVertex consecutive float32
// slots: x, y, r, g, b, a, u, v.
const (
	ElementsPerVertex = 8
	PositionOffset    = 0
	ColorOffset       = 2
	TexCoordOffset    = 6
)

// minAlpha keeps premultiplied colors recoverable: an alpha of exactly zero
// would erase the RGB channels.
const minAlpha = 0.001

// VertexData stores interleaved per-vertex attributes in one flat float32
// slice suitable for direct upload to the GPU.
//
// Color channels are kept in [0, 1]. When premultipliedAlpha is set, the RGB
// channels are stored already multiplied by the vertex alpha; the accessors
// hide the difference. Alpha is always clamped to [0.001, 1] on write.
//
// Vertex indices are caller-guaranteed; an index outside [0, NumVertices)
// panics with an error wrapping ErrIndexOutOfRange.
type VertexData struct {
	rawData            []float32
	numVertices        int
	premultipliedAlpha bool
}

// NewVertexData creates a buffer of numVertices opaque white vertices at the
// origin.
func NewVertexData(numVertices int, premultipliedAlpha bool) *VertexData {
	vd := &VertexData{premultipliedAlpha: premultipliedAlpha}
	vd.SetNumVertices(numVertices)
	return vd
}

// NumVertices returns the number of vertices in the buffer.
func (vd *VertexData) NumVertices() int { return vd.numVertices }

// SetNumVertices resizes the buffer. Existing vertices below the old count
// keep their attributes; new vertices are opaque white at the origin with
// zero texture coordinates.
func (vd *VertexData) SetNumVertices(n int) {
	if n < 0 {
		panic(errors.Wrapf(ErrInvalidArgument, "negative vertex count %d", n))
	}
	old := vd.numVertices
	need := n * ElementsPerVertex
	if cap(vd.rawData) < need {
		grown := make([]float32, need)
		copy(grown, vd.rawData)
		vd.rawData = grown
	} else {
		vd.rawData = vd.rawData[:need]
	}
	for i := old; i < n; i++ {
		v := vd.rawData[i*ElementsPerVertex : (i+1)*ElementsPerVertex]
		v[0], v[1] = 0, 0
		v[2], v[3], v[4], v[5] = 1, 1, 1, 1
		v[6], v[7] = 0, 0
	}
	vd.numVertices = n
}

// RawData returns the underlying storage, exactly NumVertices*ElementsPerVertex
// floats long. The slice aliases the buffer and is invalidated by resizing.
func (vd *VertexData) RawData() []float32 { return vd.rawData }

// PremultipliedAlpha reports whether RGB channels are stored premultiplied.
func (vd *VertexData) PremultipliedAlpha() bool { return vd.premultipliedAlpha }

// SetPremultipliedAlpha changes the color storage convention. When updateData
// is true and the flag changes, every vertex's RGB channels are rewritten so
// the represented colors stay the same. Vertices whose old divisor is zero
// are left untouched.
func (vd *VertexData) SetPremultipliedAlpha(value, updateData bool) {
	if value == vd.premultipliedAlpha {
		return
	}
	if updateData {
		for off := ColorOffset; off < len(vd.rawData); off += ElementsPerVertex {
			alpha := vd.rawData[off+3]
			divisor := float32(1)
			if vd.premultipliedAlpha {
				divisor = alpha
			}
			multiplier := float32(1)
			if value {
				multiplier = alpha
			}
			if divisor == 0 {
				continue
			}
			vd.rawData[off] = vd.rawData[off] / divisor * multiplier
			vd.rawData[off+1] = vd.rawData[off+1] / divisor * multiplier
			vd.rawData[off+2] = vd.rawData[off+2] / divisor * multiplier
		}
	}
	vd.premultipliedAlpha = value
}

// Tinted reports whether any vertex has a color or alpha slot different from
// 1. Renderers use it to pick the tinted shader path.
func (vd *VertexData) Tinted() bool {
	for off := ColorOffset; off < len(vd.rawData); off += ElementsPerVertex {
		c := vd.rawData[off : off+4]
		if c[0] != 1 || c[1] != 1 || c[2] != 1 || c[3] != 1 {
			return true
		}
	}
	return false
}

// --- Per-vertex accessors ---

// SetPosition sets the position of a vertex.
func (vd *VertexData) SetPosition(vertexID int, x, y float32) {
	off := vd.offset(vertexID) + PositionOffset
	vd.rawData[off] = x
	vd.rawData[off+1] = y
}

// Position returns the position of a vertex.
func (vd *VertexData) Position(vertexID int) (x, y float32) {
	off := vd.offset(vertexID) + PositionOffset
	return vd.rawData[off], vd.rawData[off+1]
}

// TranslateVertex moves a vertex by (dx, dy).
func (vd *VertexData) TranslateVertex(vertexID int, dx, dy float32) {
	off := vd.offset(vertexID) + PositionOffset
	vd.rawData[off] += dx
	vd.rawData[off+1] += dy
}

// TransformVertex applies m in place to the positions of numVertices
// consecutive vertices starting at vertexID.
func (vd *VertexData) TransformVertex(vertexID int, m Matrix, numVertices int) {
	vd.checkSpan(vertexID, numVertices)
	off := vertexID*ElementsPerVertex + PositionOffset
	for i := 0; i < numVertices; i++ {
		x := float64(vd.rawData[off])
		y := float64(vd.rawData[off+1])
		vd.rawData[off] = float32(m[0]*x + m[2]*y + m[4])
		vd.rawData[off+1] = float32(m[3]*y + m[1]*x + m[5])
		off += ElementsPerVertex
	}
}

// SetColorAndAlpha sets the 0xRRGGBB color and the alpha of a vertex. Alpha
// is clamped to [0.001, 1].
func (vd *VertexData) SetColorAndAlpha(vertexID int, color uint32, alpha float32) {
	alpha = clampAlpha(alpha)
	off := vd.offset(vertexID) + ColorOffset
	multiplier := float32(1)
	if vd.premultipliedAlpha {
		multiplier = alpha
	}
	vd.rawData[off] = float32((color>>16)&0xff) / 255 * multiplier
	vd.rawData[off+1] = float32((color>>8)&0xff) / 255 * multiplier
	vd.rawData[off+2] = float32(color&0xff) / 255 * multiplier
	vd.rawData[off+3] = alpha
}

// SetColor sets the 0xRRGGBB color of a vertex, keeping its alpha.
func (vd *VertexData) SetColor(vertexID int, color uint32) {
	off := vd.offset(vertexID) + ColorOffset
	multiplier := float32(1)
	if vd.premultipliedAlpha {
		multiplier = vd.rawData[off+3]
	}
	vd.rawData[off] = float32((color>>16)&0xff) / 255 * multiplier
	vd.rawData[off+1] = float32((color>>8)&0xff) / 255 * multiplier
	vd.rawData[off+2] = float32(color&0xff) / 255 * multiplier
}

// Color returns the un-premultiplied 0xRRGGBB color of a vertex. Channels are
// truncated, not rounded, to 8 bits.
func (vd *VertexData) Color(vertexID int) uint32 {
	off := vd.offset(vertexID) + ColorOffset
	divisor := float64(1)
	if vd.premultipliedAlpha {
		divisor = float64(vd.rawData[off+3])
	}
	if divisor == 0 {
		return 0
	}
	r := float64(vd.rawData[off]) / divisor
	g := float64(vd.rawData[off+1]) / divisor
	b := float64(vd.rawData[off+2]) / divisor
	return channelByte(r)<<16 | channelByte(g)<<8 | channelByte(b)
}

// SetAlpha sets the alpha of a vertex, clamped to [0.001, 1]. With
// premultiplied storage the RGB channels are rewritten to match.
func (vd *VertexData) SetAlpha(vertexID int, alpha float32) {
	if vd.premultipliedAlpha {
		vd.SetColorAndAlpha(vertexID, vd.Color(vertexID), alpha)
		return
	}
	vd.rawData[vd.offset(vertexID)+ColorOffset+3] = clampAlpha(alpha)
}

// Alpha returns the alpha of a vertex.
func (vd *VertexData) Alpha(vertexID int) float32 {
	return vd.rawData[vd.offset(vertexID)+ColorOffset+3]
}

// SetTexCoords sets the texture coordinates of a vertex. Values are
// conventionally in [0, 1] but are not checked.
func (vd *VertexData) SetTexCoords(vertexID int, u, v float32) {
	off := vd.offset(vertexID) + TexCoordOffset
	vd.rawData[off] = u
	vd.rawData[off+1] = v
}

// TexCoords returns the texture coordinates of a vertex.
func (vd *VertexData) TexCoords(vertexID int) (u, v float32) {
	off := vd.offset(vertexID) + TexCoordOffset
	return vd.rawData[off], vd.rawData[off+1]
}

// --- Bulk operations ---

// SetUniformColor sets the color of every vertex, keeping alpha values.
func (vd *VertexData) SetUniformColor(color uint32) {
	for i := 0; i < vd.numVertices; i++ {
		vd.SetColor(i, color)
	}
}

// SetUniformAlpha sets the alpha of every vertex.
func (vd *VertexData) SetUniformAlpha(alpha float32) {
	for i := 0; i < vd.numVertices; i++ {
		vd.SetAlpha(i, alpha)
	}
}

// ScaleAlpha multiplies the alpha of numVertices vertices starting at
// vertexID by factor. A negative numVertices means "to the end". A factor of
// exactly 1 is a no-op.
func (vd *VertexData) ScaleAlpha(vertexID int, factor float32, numVertices int) {
	if factor == 1 {
		return
	}
	numVertices = vd.resolveRange(vertexID, numVertices)
	if vd.premultipliedAlpha {
		for i := vertexID; i < vertexID+numVertices; i++ {
			vd.SetAlpha(i, vd.Alpha(i)*factor)
		}
		return
	}
	off := vertexID*ElementsPerVertex + ColorOffset + 3
	for i := 0; i < numVertices; i++ {
		vd.rawData[off] = clampAlpha(vd.rawData[off] * factor)
		off += ElementsPerVertex
	}
}

// Bounds returns the axis-aligned bounding box of the positions of
// numVertices vertices starting at vertexID, transformed by m when m is not
// nil. A negative numVertices means "to the end". An empty range yields a
// zero-sized rectangle at the (transformed) origin.
func (vd *VertexData) Bounds(m *Matrix, vertexID, numVertices int) Rect {
	numVertices = vd.resolveRange(vertexID, numVertices)
	if numVertices == 0 {
		if m == nil {
			return Rect{}
		}
		x, y := m.TransformPoint(0, 0)
		return Rect{X: x, Y: y}
	}

	minX, minY := math.MaxFloat64, math.MaxFloat64
	maxX, maxY := -math.MaxFloat64, -math.MaxFloat64
	off := vertexID*ElementsPerVertex + PositionOffset
	for i := 0; i < numVertices; i++ {
		x := float64(vd.rawData[off])
		y := float64(vd.rawData[off+1])
		if m != nil {
			x, y = m.TransformPoint(x, y)
		}
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
		off += ElementsPerVertex
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Clone returns a deep copy of numVertices vertices starting at vertexID
// (a negative numVertices means "to the end"). The clone shares the
// premultiplied-alpha setting.
func (vd *VertexData) Clone(vertexID, numVertices int) *VertexData {
	numVertices = vd.resolveRange(vertexID, numVertices)
	start := vertexID * ElementsPerVertex
	raw := make([]float32, numVertices*ElementsPerVertex)
	copy(raw, vd.rawData[start:start+len(raw)])
	return &VertexData{
		rawData:            raw,
		numVertices:        numVertices,
		premultipliedAlpha: vd.premultipliedAlpha,
	}
}

// CopyTo copies numVertices vertices starting at vertexID into target,
// starting at targetVertexID. A negative numVertices means "to the end".
func (vd *VertexData) CopyTo(target *VertexData, targetVertexID, vertexID, numVertices int) {
	vd.CopyTransformedTo(target, targetVertexID, nil, vertexID, numVertices)
}

// CopyTransformedTo copies numVertices vertices starting at vertexID into
// target, starting at targetVertexID, transforming positions by m when m is
// not nil. Colors and texture coordinates are copied untouched, so both
// buffers are expected to share the premultiplied-alpha setting.
//
// target must already hold enough vertices. Source and target may be the
// same buffer, including overlapping ranges.
func (vd *VertexData) CopyTransformedTo(target *VertexData, targetVertexID int, m *Matrix, vertexID, numVertices int) {
	numVertices = vd.resolveRange(vertexID, numVertices)
	target.checkSpan(targetVertexID, numVertices)
	if numVertices == 0 {
		return
	}

	src := vd.rawData[vertexID*ElementsPerVertex : (vertexID+numVertices)*ElementsPerVertex]
	dst := target.rawData[targetVertexID*ElementsPerVertex : (targetVertexID+numVertices)*ElementsPerVertex]
	if m == nil {
		copy(dst, src)
		return
	}

	// Walk backwards when the target range starts inside the source range
	// of the same buffer, so unread source vertices are never overwritten.
	first, last, step := 0, numVertices, 1
	if target == vd && targetVertexID > vertexID {
		first, last, step = numVertices-1, -1, -1
	}
	for i := first; i != last; i += step {
		off := i * ElementsPerVertex
		x := float64(src[off])
		y := float64(src[off+1])
		var v [ElementsPerVertex]float32
		copy(v[:], src[off:off+ElementsPerVertex])
		v[0] = float32(m[0]*x + m[2]*y + m[4])
		v[1] = float32(m[3]*y + m[1]*x + m[5])
		copy(dst[off:off+ElementsPerVertex], v[:])
	}
}

// Append adds the vertices of other to the end of the buffer. Attribute
// conventions are not checked: a premultiplied-alpha mismatch is the
// caller's responsibility.
func (vd *VertexData) Append(other *VertexData) {
	vd.rawData = append(vd.rawData, other.rawData[:other.numVertices*ElementsPerVertex]...)
	vd.numVertices += other.numVertices
}

// --- Index helpers ---

func (vd *VertexData) offset(vertexID int) int {
	if vertexID < 0 || vertexID >= vd.numVertices {
		panic(errors.Wrapf(ErrIndexOutOfRange, "vertex %d of %d", vertexID, vd.numVertices))
	}
	return vertexID * ElementsPerVertex
}

// checkSpan panics unless [vertexID, vertexID+numVertices) lies inside the
// buffer.
func (vd *VertexData) checkSpan(vertexID, numVertices int) {
	if vertexID < 0 || numVertices < 0 || vertexID+numVertices > vd.numVertices {
		panic(errors.Wrapf(ErrIndexOutOfRange, "vertices [%d, %d) of %d",
			vertexID, vertexID+numVertices, vd.numVertices))
	}
}

// resolveRange resolves a (vertexID, numVertices) pair where a negative count
// means "to the end". A range reaching past the end panics.
func (vd *VertexData) resolveRange(vertexID, numVertices int) int {
	if vertexID < 0 || vertexID > vd.numVertices {
		panic(errors.Wrapf(ErrIndexOutOfRange, "vertex %d of %d", vertexID, vd.numVertices))
	}
	if numVertices < 0 {
		return vd.numVertices - vertexID
	}
	vd.checkSpan(vertexID, numVertices)
	return numVertices
}

func clampAlpha(a float32) float32 {
	if a < minAlpha {
		return minAlpha
	}
	if a > 1 {
		return 1
	}
	return a
}

// channelByte converts a [0, 1] channel to 0..255 by truncation.
func channelByte(v float64) uint32 {
	c := int(v * 255)
	if c < 0 {
		return 0
	}
	if c > 255 {
		return 255
	}
	return uint32(c)
}
