// Package starling is the vertex batching and tween animation core of a
// retained-mode 2D display framework for [Ebitengine].
//
// The package provides two leaf subsystems that a renderer and a frame loop
// call into, plus the glue that exercises them:
//
//   - [VertexData], a flat buffer of interleaved per-vertex attributes
//     (position, color, alpha, texture coordinates) ready for GPU upload,
//     with premultiplied-alpha bookkeeping, tint detection, bounds and
//     affine-transformed copies.
//   - [Tween], a property interpolation state machine with pluggable
//     transitions, repeat and reverse cycles, delays and callbacks, advanced
//     by a single [Tween.AdvanceTime] call per frame.
//
// # Vertex data
//
// Every vertex occupies [ElementsPerVertex] float32 slots in the order
// x, y, r, g, b, a, u, v:
//
//	vd := starling.NewVertexData(4, true)
//	vd.SetPosition(1, 100, 0)
//	vd.SetColorAndAlpha(1, 0xFF8000, 0.5)
//	upload(vd.RawData())
//
// [QuadBatch] and [Batcher] collect the vertex data of many [Quad] values
// into shared buffers and submit them with a single DrawTriangles32 call per
// state change.
//
// # Tweens
//
// A tween animates named numeric properties on any [Target]:
//
//	juggler := starling.NewJuggler(starling.NewTweenPool())
//	tw, _ := starling.NewTween(quad, 1.5, starling.TransitionEaseOut)
//	tw.MoveTo(200, 100)
//	tw.Animate("rotation#deg", 90)
//	tw.OnComplete = func(*starling.Tween) { log.Println("done") }
//	juggler.Add(tw)
//
//	// once per frame:
//	juggler.AdvanceTime(1.0 / 60)
//
// There is no global juggler; the frame loop owns one and advances it.
// Easing curves come from [gween/ease] and are registered under Starling's
// transition names.
//
// Everything in this package is single-threaded and meant to be driven from
// the game loop goroutine.
//
// [Ebitengine]: https://ebitengine.org
// [gween/ease]: https://github.com/tanema/gween
package starling
