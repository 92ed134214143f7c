package starling

import "github.com/hajimehoshi/ebiten/v2"

// BlendMode selects how a quad is composited onto the render target. All
// factors assume premultiplied source colors, which is what [QuadBatch]
// submits.
type BlendMode uint8

const (
	BlendAuto     BlendMode = iota // inherit from the parent; normal at the root
	BlendNormal                    // source-over
	BlendNone                      // opaque copy
	BlendAdd                       // additive
	BlendMultiply                  // source * destination; only darkens
	BlendScreen                    // 1 - (1-src)*(1-dst); only brightens
	BlendErase                     // destination-out
	BlendBelow                     // destination-over
)

var blendModeNames = [...]string{
	BlendAuto:     "auto",
	BlendNormal:   "normal",
	BlendNone:     "none",
	BlendAdd:      "add",
	BlendMultiply: "multiply",
	BlendScreen:   "screen",
	BlendErase:    "erase",
	BlendBelow:    "below",
}

// String returns the Starling name of the blend mode.
func (b BlendMode) String() string {
	if int(b) < len(blendModeNames) {
		return blendModeNames[b]
	}
	return "unknown"
}

// Resolve returns b, or parent when b is BlendAuto. BlendAuto at the root
// resolves to BlendNormal.
func (b BlendMode) Resolve(parent BlendMode) BlendMode {
	if b != BlendAuto {
		return b
	}
	if parent == BlendAuto {
		return BlendNormal
	}
	return parent
}

// EbitenBlend returns the ebiten.Blend equivalent of the blend mode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendNone:
		return ebiten.BlendCopy
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendMultiply:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendScreen:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendErase:
		return ebiten.BlendDestinationOut
	case BlendBelow:
		return ebiten.BlendDestinationOver
	default:
		return ebiten.BlendSourceOver
	}
}
