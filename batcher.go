package starling

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// BatchStats describes the work done by the latest Batcher.Render.
type BatchStats struct {
	Batches   int
	Quads     int
	DrawCalls int
	Duration  time.Duration
}

// Batcher sorts quads into consecutive QuadBatches, starting a new batch on
// every state change (texture, blend mode, tint, color convention,
// capacity). Quads are drawn
// in submission order.
type Batcher struct {
	batches []*QuadBatch
	current int
	stats   BatchStats
}

// NewBatcher creates an empty batcher.
func NewBatcher() *Batcher {
	return &Batcher{batches: []*QuadBatch{NewQuadBatch()}}
}

// BatchQuad queues q, transformed by m and faded by parentAlpha. Invisible
// quads are skipped.
func (r *Batcher) BatchQuad(q *Quad, parentAlpha float64, m Matrix) {
	if !q.Visible || q.disposed {
		return
	}
	blend := q.BlendMode.Resolve(BlendNormal)
	b := r.batches[r.current]
	if b.IsStateChange(q.Tinted(), parentAlpha*q.Alpha, q.PremultipliedAlpha(), q.Texture, blend, 1) {
		b = r.nextBatch()
	}
	b.AddQuad(q, parentAlpha, nil, m, blend)
}

// Batches returns the batches filled since the last Render.
func (r *Batcher) Batches() []*QuadBatch {
	n := r.current + 1
	if r.batches[r.current].NumQuads() == 0 {
		n--
	}
	return r.batches[:n]
}

// Render draws every queued batch to target, then resets the batcher for
// the next frame.
func (r *Batcher) Render(target *ebiten.Image) {
	start := time.Now()
	stats := BatchStats{}
	for _, b := range r.Batches() {
		b.Render(target)
		stats.Batches++
		stats.Quads += b.NumQuads()
		stats.DrawCalls++
	}
	stats.Duration = time.Since(start)
	r.stats = stats
	Logger().Debug("batcher render",
		"batches", stats.Batches, "quads", stats.Quads,
		"drawCalls", stats.DrawCalls, "duration", stats.Duration)
	r.Reset()
}

// Reset drops all queued quads, keeping batch buffers for reuse.
func (r *Batcher) Reset() {
	for _, b := range r.batches[:r.current+1] {
		b.Reset()
	}
	r.current = 0
}

// Stats returns the statistics of the latest Render.
func (r *Batcher) Stats() BatchStats { return r.stats }

func (r *Batcher) nextBatch() *QuadBatch {
	r.current++
	if r.current == len(r.batches) {
		r.batches = append(r.batches, NewQuadBatch())
	}
	return r.batches[r.current]
}
