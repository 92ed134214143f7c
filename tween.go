package starling

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

// Target is anything a tween can animate: a store of numeric properties
// addressed by name. Implementations typically dispatch through a fixed
// table of getters and setters (see Quad) instead of reflection.
//
// SetProperty is called synchronously from Tween.AdvanceTime and may have
// side effects of its own.
//
// A tween keeps its target reachable until it is pooled or reset onto
// another target. Targets that implement IsDisposed() bool end their tweens
// early once disposed; other targets stay alive for as long as a tween
// animating them is scheduled, so use Juggler.RemoveTweens when dropping
// one.
type Target interface {
	Property(name string) (float64, bool)
	SetProperty(name string, value float64) bool
}

// disposable is implemented by targets with an explicit end of life. A tween
// whose target reports IsDisposed stops without writing.
type disposable interface {
	IsDisposed() bool
}

// PropertyMap is a map-backed Target. Setting an unknown name adds it.
// It is used through a pointer so tweens and jugglers can compare targets.
// It has no dispose state, so a scheduled tween keeps it alive.
type PropertyMap struct {
	values map[string]float64
}

// NewPropertyMap creates a PropertyMap holding a copy of values.
func NewPropertyMap(values map[string]float64) *PropertyMap {
	m := &PropertyMap{values: make(map[string]float64, len(values))}
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

// Property returns the named value.
func (m *PropertyMap) Property(name string) (float64, bool) {
	v, ok := m.values[name]
	return v, ok
}

// SetProperty stores the named value.
func (m *PropertyMap) SetProperty(name string, value float64) bool {
	if m.values == nil {
		m.values = make(map[string]float64)
	}
	m.values[name] = value
	return true
}

// Get returns the named value, or zero.
func (m *PropertyMap) Get(name string) float64 {
	return m.values[name]
}

// PropertyHint selects how a property is interpolated.
type PropertyHint uint8

const (
	HintNone PropertyHint = iota // linear interpolation
	HintRGB                      // per-channel interpolation of a packed 0xAARRGGBB color
	HintRad                      // shortest-path angle in radians
	HintDeg                      // shortest-path angle in degrees
)

// HintMarker separates a property name from its hint, as in "rotation#deg".
const HintMarker = "#"

// parseProperty splits a property string into its name and hint. Names
// containing "color" or "Color" imply HintRGB. An unrecognized hint yields
// HintNone and an error wrapping ErrUnknownHint.
func parseProperty(property string) (string, PropertyHint, error) {
	name, hint, hasHint := strings.Cut(property, HintMarker)
	if strings.Contains(property, "color") || strings.Contains(property, "Color") {
		return name, HintRGB, nil
	}
	if !hasHint {
		return name, HintNone, nil
	}
	switch hint {
	case "rgb":
		return name, HintRGB, nil
	case "rad":
		return name, HintRad, nil
	case "deg":
		return name, HintDeg, nil
	}
	return name, HintNone, errors.Wrapf(ErrUnknownHint, "property %q: hint %q", name, hint)
}

type tweenProperty struct {
	name  string
	hint  PropertyHint
	start float64 // NaN until captured from the target
	end   float64
}

// minTweenTime keeps the time ratio finite for zero-length tweens.
const minTweenTime = 0.0001

// Tween animates numeric properties of a Target over time.
//
// A tween does nothing on its own; call AdvanceTime once per frame, usually
// through a Juggler. Start values are read from the target the first time
// the tween advances past its delay, not when properties are registered.
//
// With a repeat count other than 1 the tween restarts after each cycle,
// optionally waiting RepeatDelay seconds and, with Reverse, playing every
// odd cycle backwards. A repeat count of 0 repeats forever.
type Tween struct {
	removeSignal

	target         Target
	transition     Transition
	transitionName string
	props          []tweenProperty

	totalTime    float64
	currentTime  float64
	progress     float64
	delay        float64
	roundToInt   bool
	reverse      bool
	repeatCount  int
	repeatDelay  float64
	currentCycle int
	nextTween    *Tween

	// generation changes on every Reset, so AdvanceTime can tell that a
	// callback recycled the tween and drop the rest of the time step.
	generation uint64
	pooled     bool

	// Callbacks, run synchronously inside AdvanceTime. OnComplete runs after
	// the remove signal, so it may reset the tween and add it to a juggler
	// again.
	OnStart    func(*Tween)
	OnUpdate   func(*Tween)
	OnRepeat   func(*Tween)
	OnComplete func(*Tween)

	// OnWarning receives tolerated anomalies: unknown hints (ErrUnknownHint)
	// and properties the target does not expose (ErrInvalidProperty).
	OnWarning func(*Tween, error)
}

// NewTween creates a tween of target lasting totalTime seconds, using the
// named transition. Unknown transition names fail with ErrInvalidArgument.
func NewTween(target Target, totalTime float64, transition string) (*Tween, error) {
	t := &Tween{}
	if err := t.Reset(target, totalTime, transition); err != nil {
		return nil, err
	}
	return t, nil
}

// Reset reinitializes the tween exactly as NewTween would, dropping all
// properties and callbacks. Remove listeners are kept, so a tween reset
// while it is scheduled still leaves its juggler when it completes.
func (t *Tween) Reset(target Target, totalTime float64, transition string) error {
	fn, err := GetTransition(transition)
	if err != nil {
		return err
	}
	t.reset(target, totalTime)
	t.transition = fn
	t.transitionName = transition
	return nil
}

func (t *Tween) reset(target Target, totalTime float64) {
	t.target = target
	t.currentTime = 0
	t.totalTime = math.Max(minTweenTime, totalTime)
	t.progress = 0
	t.delay = 0
	t.repeatDelay = 0
	t.roundToInt = false
	t.reverse = false
	t.repeatCount = 1
	t.currentCycle = -1
	t.nextTween = nil
	t.OnStart = nil
	t.OnUpdate = nil
	t.OnRepeat = nil
	t.OnComplete = nil
	t.OnWarning = nil
	clear(t.props)
	t.props = t.props[:0]
	t.pooled = false
	t.generation++
}

// --- Properties ---

// Animate registers a property to move towards endValue. The property may
// carry a hint suffix ("rotation#deg", "angle#rad", "tint#rgb"); names
// containing "color" or "Color" are interpolated per channel without one.
// An unknown hint is reported through OnWarning and the package logger and
// falls back to linear interpolation.
func (t *Tween) Animate(property string, endValue float64) {
	if t.target == nil {
		return
	}
	name, hint, err := parseProperty(property)
	if err != nil {
		t.warn(err)
	}
	t.props = append(t.props, tweenProperty{name: name, hint: hint, start: math.NaN(), end: endValue})
}

// MoveTo animates "x" and "y".
func (t *Tween) MoveTo(x, y float64) {
	t.Animate("x", x)
	t.Animate("y", y)
}

// ScaleTo animates "scaleX" and "scaleY" to the same factor.
func (t *Tween) ScaleTo(factor float64) {
	t.Animate("scaleX", factor)
	t.Animate("scaleY", factor)
}

// FadeTo animates "alpha".
func (t *Tween) FadeTo(alpha float64) {
	t.Animate("alpha", alpha)
}

// RotateTo animates "rotation" along the shortest path. unit is "rad" or
// "deg"; empty means radians.
func (t *Tween) RotateTo(angle float64, unit string) {
	if unit == "" {
		unit = "rad"
	}
	t.Animate("rotation"+HintMarker+unit, angle)
}

// EndValue returns the end value of an animated property, addressed by its
// name without hint. Properties that are not animated fail with
// ErrInvalidProperty.
func (t *Tween) EndValue(property string) (float64, error) {
	for i := range t.props {
		if t.props[i].name == property {
			return t.props[i].end, nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidProperty, "property %q is not animated", property)
}

// AnimatesProperty reports whether the named property is animated.
func (t *Tween) AnimatesProperty(property string) bool {
	_, err := t.EndValue(property)
	return err == nil
}

// --- Advancing ---

// AdvanceTime moves the tween forward by dt seconds. Time left over after
// the end of a cycle is applied to the next cycle, so one large step can run
// several repeat callbacks. If a callback resets the tween, the rest of the
// step is dropped.
func (t *Tween) AdvanceTime(dt float64) {
	gen := t.generation
	for dt != 0 && t.generation == gen {
		dt = t.advanceCycle(dt, gen)
	}
}

// advanceCycle advances within the current cycle and returns the time that
// overflowed past its end.
func (t *Tween) advanceCycle(dt float64, gen uint64) float64 {
	if t.target == nil || t.IsComplete() {
		return 0
	}
	if d, ok := t.target.(disposable); ok && d.IsDisposed() {
		t.currentTime = t.totalTime
		t.repeatCount = 1
		t.dispatchRemove(t)
		return 0
	}

	previousTime := t.currentTime
	restTime := t.totalTime - t.currentTime
	carryOver := 0.0
	if dt > restTime {
		carryOver = dt - restTime
	}

	t.currentTime += dt
	if t.currentTime <= 0 {
		return 0 // delay not over yet
	}
	if t.currentTime > t.totalTime {
		t.currentTime = t.totalTime
	}

	if t.currentCycle < 0 && previousTime <= 0 && t.currentTime > 0 {
		t.currentCycle++
		if t.OnStart != nil {
			t.OnStart(t)
			if t.generation != gen {
				return 0
			}
		}
	}

	ratio := t.currentTime / t.totalTime
	if t.reverse && t.currentCycle%2 == 1 {
		ratio = 1 - ratio
	}
	t.progress = t.transition(ratio)

	for i := 0; i < len(t.props); i++ {
		p := &t.props[i]
		if math.IsNaN(p.start) {
			v, ok := t.target.Property(p.name)
			if !ok {
				t.warn(errors.Wrapf(ErrInvalidProperty, "target has no property %q", p.name))
				v = 0
			}
			p.start = v
		}
		t.apply(p)
		if t.generation != gen {
			return 0
		}
	}

	if t.OnUpdate != nil {
		t.OnUpdate(t)
		if t.generation != gen {
			return 0
		}
	}

	if previousTime < t.totalTime && t.currentTime >= t.totalTime {
		if t.repeatCount == 0 || t.repeatCount > 1 {
			t.currentTime = -t.repeatDelay
			t.currentCycle++
			if t.repeatCount > 1 {
				t.repeatCount--
			}
			if t.OnRepeat != nil {
				t.OnRepeat(t)
			}
		} else {
			// Listeners may recycle the tween; keep the callback first.
			onComplete := t.OnComplete
			t.dispatchRemove(t)
			if onComplete != nil {
				onComplete(t)
			}
		}
	}

	return carryOver
}

func (t *Tween) apply(p *tweenProperty) {
	switch p.hint {
	case HintRGB:
		t.target.SetProperty(p.name, float64(lerpRGB(colorValue(p.start), colorValue(p.end), t.progress)))
	case HintRad:
		t.applyAngle(math.Pi, p)
	case HintDeg:
		t.applyAngle(180, p)
	default:
		t.applyStandard(p.name, p.start, p.end)
	}
}

func (t *Tween) applyStandard(name string, start, end float64) {
	v := start + t.progress*(end-start)
	if t.roundToInt {
		v = math.Floor(v + 0.5)
	}
	t.target.SetProperty(name, v)
}

// applyAngle moves the end value by whole turns until it is at most half a
// turn away from the start, then interpolates linearly.
func (t *Tween) applyAngle(pi float64, p *tweenProperty) {
	end := p.end
	if !math.IsInf(end, 0) && !math.IsInf(p.start, 0) {
		for math.Abs(end-p.start) > pi {
			if p.start < end {
				end -= 2 * pi
			} else {
				end += 2 * pi
			}
		}
	}
	t.applyStandard(p.name, p.start, end)
}

// lerpRGB interpolates each 8-bit channel of two 0xAARRGGBB colors.
func lerpRGB(start, end uint32, progress float64) uint32 {
	sa, sr, sg, sb := ColorChannels(start)
	ea, er, eg, eb := ColorChannels(end)
	return lerpChannel(sa, ea, progress)<<24 |
		lerpChannel(sr, er, progress)<<16 |
		lerpChannel(sg, eg, progress)<<8 |
		lerpChannel(sb, eb, progress)
}

func lerpChannel(s, e uint8, progress float64) uint32 {
	v := float64(s) + (float64(e)-float64(s))*progress
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint32(v)
}

func colorValue(v float64) uint32 {
	if !(v > 0) {
		return 0
	}
	if v >= math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}

func (t *Tween) warn(err error) {
	Logger().Warn("tween", "error", err)
	if t.OnWarning != nil {
		t.OnWarning(t, err)
	}
}

// --- State ---

// IsComplete reports whether the tween has finished its last cycle.
func (t *Tween) IsComplete() bool {
	return t.repeatCount == 1 && t.currentTime >= t.totalTime
}

// Target returns the animated object, or nil after the tween was pooled.
func (t *Tween) Target() Target { return t.target }

// Transition returns the name of the transition, or "custom" for one set
// with SetTransitionFunc.
func (t *Tween) Transition() string { return t.transitionName }

// SetTransition selects a registered transition by name.
func (t *Tween) SetTransition(name string) error {
	fn, err := GetTransition(name)
	if err != nil {
		return err
	}
	t.transition = fn
	t.transitionName = name
	return nil
}

// TransitionFunc returns the active transition.
func (t *Tween) TransitionFunc() Transition { return t.transition }

// SetTransitionFunc installs a custom transition. A nil function fails with
// ErrInvalidArgument.
func (t *Tween) SetTransitionFunc(fn Transition) error {
	if fn == nil {
		return errors.Wrap(ErrInvalidArgument, "nil transition function")
	}
	t.transition = fn
	t.transitionName = "custom"
	return nil
}

// TotalTime returns the duration of one cycle in seconds.
func (t *Tween) TotalTime() float64 { return t.totalTime }

// CurrentTime returns the time into the current cycle. It is negative while
// a delay or repeat delay is running.
func (t *Tween) CurrentTime() float64 { return t.currentTime }

// Progress returns the latest transition output.
func (t *Tween) Progress() float64 { return t.progress }

// CurrentCycle returns the zero-based cycle, or -1 before the tween started.
func (t *Tween) CurrentCycle() int { return t.currentCycle }

// Delay returns the delay before the first cycle.
func (t *Tween) Delay() float64 { return t.delay }

// SetDelay sets the delay in seconds before the tween starts.
func (t *Tween) SetDelay(delay float64) {
	t.currentTime = t.currentTime + t.delay - delay
	t.delay = delay
}

// RepeatCount returns the number of remaining cycles, 0 meaning forever.
func (t *Tween) RepeatCount() int { return t.repeatCount }

// SetRepeatCount sets how often the tween runs; 0 repeats forever.
func (t *Tween) SetRepeatCount(n int) {
	if n < 0 {
		n = 0
	}
	t.repeatCount = n
}

// RepeatDelay returns the pause between cycles.
func (t *Tween) RepeatDelay() float64 { return t.repeatDelay }

// SetRepeatDelay sets the pause between cycles in seconds.
func (t *Tween) SetRepeatDelay(d float64) { t.repeatDelay = d }

// Reverse reports whether odd cycles play backwards.
func (t *Tween) Reverse() bool { return t.reverse }

// SetReverse makes every odd cycle play backwards.
func (t *Tween) SetReverse(v bool) { t.reverse = v }

// RoundToInt reports whether linear values are rounded to integers.
func (t *Tween) RoundToInt() bool { return t.roundToInt }

// SetRoundToInt rounds every linearly interpolated value to the nearest
// integer, halves rounding up.
func (t *Tween) SetRoundToInt(v bool) { t.roundToInt = v }

// NextTween returns the tween a Juggler adds when this one is removed.
func (t *Tween) NextTween() *Tween { return t.nextTween }

// SetNextTween chains another tween to start when this one completes.
func (t *Tween) SetNextTween(next *Tween) { t.nextTween = next }
