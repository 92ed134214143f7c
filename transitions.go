package starling

import (
	"github.com/pkg/errors"
	"github.com/tanema/gween/ease"
)

// Transition maps a normalized time ratio in [0, 1] to animation progress.
// Progress usually stays in [0, 1] but may overshoot (back, elastic).
type Transition func(ratio float64) float64

// Transition names understood by NewTween and GetTransition.
const (
	TransitionLinear           = "linear"
	TransitionEaseIn           = "easeIn"
	TransitionEaseOut          = "easeOut"
	TransitionEaseInOut        = "easeInOut"
	TransitionEaseOutIn        = "easeOutIn"
	TransitionEaseInBack       = "easeInBack"
	TransitionEaseOutBack      = "easeOutBack"
	TransitionEaseInOutBack    = "easeInOutBack"
	TransitionEaseOutInBack    = "easeOutInBack"
	TransitionEaseInElastic    = "easeInElastic"
	TransitionEaseOutElastic   = "easeOutElastic"
	TransitionEaseInOutElastic = "easeInOutElastic"
	TransitionEaseOutInElastic = "easeOutInElastic"
	TransitionEaseInBounce     = "easeInBounce"
	TransitionEaseOutBounce    = "easeOutBounce"
	TransitionEaseInOutBounce  = "easeInOutBounce"
	TransitionEaseOutInBounce  = "easeOutInBounce"
)

// transitions is the name registry. Like the rest of the package it is only
// touched from the game loop goroutine.
var transitions = map[string]Transition{}

func init() {
	for name, fn := range map[string]ease.TweenFunc{
		TransitionEaseIn:           ease.InCubic,
		TransitionEaseOut:          ease.OutCubic,
		TransitionEaseInOut:        ease.InOutCubic,
		TransitionEaseOutIn:        ease.OutInCubic,
		TransitionEaseInBack:       ease.InBack,
		TransitionEaseOutBack:      ease.OutBack,
		TransitionEaseInOutBack:    ease.InOutBack,
		TransitionEaseOutInBack:    ease.OutInBack,
		TransitionEaseInElastic:    ease.InElastic,
		TransitionEaseOutElastic:   ease.OutElastic,
		TransitionEaseInOutElastic: ease.InOutElastic,
		TransitionEaseOutInElastic: ease.OutInElastic,
		TransitionEaseInBounce:     ease.InBounce,
		TransitionEaseOutBounce:    ease.OutBounce,
		TransitionEaseInOutBounce:  ease.InOutBounce,
		TransitionEaseOutInBounce:  ease.OutInBounce,

		// gween names, for scripts written against ease.*
		"inQuad": ease.InQuad, "outQuad": ease.OutQuad, "inOutQuad": ease.InOutQuad,
		"inQuart": ease.InQuart, "outQuart": ease.OutQuart, "inOutQuart": ease.InOutQuart,
		"inQuint": ease.InQuint, "outQuint": ease.OutQuint, "inOutQuint": ease.InOutQuint,
		"inSine": ease.InSine, "outSine": ease.OutSine, "inOutSine": ease.InOutSine,
		"inExpo": ease.InExpo, "outExpo": ease.OutExpo, "inOutExpo": ease.InOutExpo,
		"inCirc": ease.InCirc, "outCirc": ease.OutCirc, "inOutCirc": ease.InOutCirc,
	} {
		transitions[name] = FromEase(fn)
	}
	// Kept in float64 so linear tweens land on exact values; the gween
	// curves work in float32.
	transitions[TransitionLinear] = func(ratio float64) float64 { return ratio }
}

// FromEase adapts a gween easing function to a Transition.
func FromEase(fn ease.TweenFunc) Transition {
	return func(ratio float64) float64 {
		switch ratio {
		case 0:
			return 0
		case 1:
			return 1
		}
		return float64(fn(float32(ratio), 0, 1, 1))
	}
}

// GetTransition returns the transition registered under name. Unknown names
// fail with ErrInvalidArgument.
func GetTransition(name string) (Transition, error) {
	fn, ok := transitions[name]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidArgument, "unknown transition %q", name)
	}
	return fn, nil
}

// RegisterTransition adds or replaces a named transition.
func RegisterTransition(name string, fn Transition) error {
	if fn == nil {
		return errors.Wrapf(ErrInvalidArgument, "nil transition %q", name)
	}
	transitions[name] = fn
	return nil
}
