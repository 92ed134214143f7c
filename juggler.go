package starling

import (
	"maps"
	"slices"
)

// Animatable is anything that can be advanced in time.
type Animatable interface {
	AdvanceTime(dt float64)
}

// RemoveNotifier is implemented by animatables that ask their scheduler to
// detach them, as Tween and DelayedCall do when they finish. Owners must be
// comparable; registering the same owner twice replaces its listener.
type RemoveNotifier interface {
	AddRemoveListener(owner any, fn func(Animatable))
	RemoveRemoveListener(owner any)
}

type removeListener struct {
	owner any
	fn    func(Animatable)
}

// removeSignal is the "remove me" signal shared by Tween and DelayedCall.
type removeSignal struct {
	removeListeners []removeListener
}

// AddRemoveListener registers fn to run when the object asks to be removed
// from its scheduler.
func (s *removeSignal) AddRemoveListener(owner any, fn func(Animatable)) {
	for i := range s.removeListeners {
		if s.removeListeners[i].owner == owner {
			s.removeListeners[i].fn = fn
			return
		}
	}
	s.removeListeners = append(s.removeListeners, removeListener{owner: owner, fn: fn})
}

// RemoveRemoveListener drops the listener registered by owner.
func (s *removeSignal) RemoveRemoveListener(owner any) {
	for i := range s.removeListeners {
		if s.removeListeners[i].owner == owner {
			s.removeListeners = slices.Delete(s.removeListeners, i, i+1)
			return
		}
	}
}

// dispatchRemove runs the listeners registered at the time of the call.
// Listeners may add or remove listeners, or recycle the object.
func (s *removeSignal) dispatchRemove(a Animatable) {
	if len(s.removeListeners) == 0 {
		return
	}
	listeners := slices.Clone(s.removeListeners)
	for _, l := range listeners {
		l.fn(a)
	}
}

func (s *removeSignal) hasRemoveListener(owner any) bool {
	for i := range s.removeListeners {
		if s.removeListeners[i].owner == owner {
			return true
		}
	}
	return false
}

func (s *removeSignal) clearRemoveListeners() {
	clear(s.removeListeners)
	s.removeListeners = s.removeListeners[:0]
}

// --- Events ---

// AnimationEventType identifies a juggler event.
type AnimationEventType uint8

const (
	EventAnimatableAdded   AnimationEventType = iota // an object joined the juggler
	EventAnimatableRemoved                           // an object left the juggler
)

// AnimationEvent describes a change to a juggler's object list.
type AnimationEvent struct {
	Type   AnimationEventType
	Object Animatable
	// Target is the animated object when Object is a Tween.
	Target Target
	// ElapsedTime is the juggler's clock when the event happened.
	ElapsedTime float64
}

// EventSink receives juggler events, e.g. to forward them into an ECS.
type EventSink interface {
	EmitEvent(event AnimationEvent)
}

// --- Juggler ---

// Juggler advances a set of animatables once per frame and detaches them
// when they signal removal. There is no global juggler: the frame loop owns
// one and calls AdvanceTime every tick.
//
// Objects added during AdvanceTime are advanced from the next call on.
// Removal during AdvanceTime leaves a hole that is compacted in place.
type Juggler struct {
	objects     []Animatable
	elapsedTime float64
	pool        *TweenPool
	sink        EventSink
}

// pooledTween keys the listener that recycles tweens created by
// Juggler.Tween.
type pooledTween struct{ j *Juggler }

// NewJuggler creates a juggler. Tweens created with Juggler.Tween are taken
// from and returned to pool; pool may be nil.
func NewJuggler(pool *TweenPool) *Juggler {
	return &Juggler{pool: pool}
}

// SetEventSink forwards add/remove events to sink. Pass nil to stop.
func (j *Juggler) SetEventSink(sink EventSink) {
	j.sink = sink
}

// Pool returns the juggler's tween pool, possibly nil.
func (j *Juggler) Pool() *TweenPool { return j.pool }

// ElapsedTime returns the total time the juggler has been advanced.
func (j *Juggler) ElapsedTime() float64 { return j.elapsedTime }

// Len returns the number of objects in the juggler.
func (j *Juggler) Len() int {
	n := 0
	for _, obj := range j.objects {
		if obj != nil {
			n++
		}
	}
	return n
}

// Add adds obj unless it is nil or already present.
func (j *Juggler) Add(obj Animatable) {
	if obj == nil || j.Contains(obj) {
		return
	}
	j.objects = append(j.objects, obj)
	if n, ok := obj.(RemoveNotifier); ok {
		n.AddRemoveListener(j, j.onRemove)
	}
	j.emit(EventAnimatableAdded, obj)
}

// Contains reports whether obj is in the juggler.
func (j *Juggler) Contains(obj Animatable) bool {
	return obj != nil && slices.Index(j.objects, obj) >= 0
}

// Remove detaches obj. Removing an absent object is a no-op.
func (j *Juggler) Remove(obj Animatable) {
	if obj == nil {
		return
	}
	if n, ok := obj.(RemoveNotifier); ok {
		n.RemoveRemoveListener(j)
	}
	if i := slices.Index(j.objects, obj); i >= 0 {
		j.objects[i] = nil
		j.emit(EventAnimatableRemoved, obj)
	}
}

// RemoveTweens detaches every tween animating target. Tweens created by
// Juggler.Tween go back to the pool. Targets are compared with ==, so they
// must be comparable (pointers usually are).
func (j *Juggler) RemoveTweens(target Target) {
	if target == nil {
		return
	}
	for i := len(j.objects) - 1; i >= 0; i-- {
		if t, ok := j.objects[i].(*Tween); ok && t.target == target {
			pooled := j.ownsPooled(t)
			j.Remove(t)
			if pooled {
				j.pool.Put(t)
			}
		}
	}
}

// ContainsTweens reports whether a tween animating target is in the juggler.
func (j *Juggler) ContainsTweens(target Target) bool {
	if target == nil {
		return false
	}
	for _, obj := range j.objects {
		if t, ok := obj.(*Tween); ok && t.target == target {
			return true
		}
	}
	return false
}

// Purge removes every object at once. Tweens created by Juggler.Tween go
// back to the pool.
func (j *Juggler) Purge() {
	for i := len(j.objects) - 1; i >= 0; i-- {
		obj := j.objects[i]
		if obj == nil {
			continue
		}
		if n, ok := obj.(RemoveNotifier); ok {
			n.RemoveRemoveListener(j)
		}
		j.objects[i] = nil
		j.emit(EventAnimatableRemoved, obj)
		if t, ok := obj.(*Tween); ok && j.ownsPooled(t) {
			j.pool.Put(t)
		}
	}
}

// ownsPooled reports whether t was created by j.Tween and is still waiting
// to be returned to the pool.
func (j *Juggler) ownsPooled(t *Tween) bool {
	return j.pool != nil && t.hasRemoveListener(pooledTween{j})
}

// AdvanceTime advances every object by dt seconds.
func (j *Juggler) AdvanceTime(dt float64) {
	j.elapsedTime += dt
	n := len(j.objects)
	if n == 0 {
		return
	}

	// Shift objects into empty slots along the way. Objects appended while
	// iterating (beyond n) wait for the next frame.
	cur, i := 0, 0
	for ; i < n; i++ {
		obj := j.objects[i]
		if obj == nil {
			continue
		}
		if cur != i {
			j.objects[cur] = obj
			j.objects[i] = nil
		}
		obj.AdvanceTime(dt)
		cur++
	}

	if cur != i {
		n = len(j.objects)
		for i < n {
			j.objects[cur] = j.objects[i]
			cur++
			i++
		}
		clear(j.objects[cur:])
		j.objects = j.objects[:cur]
	}
}

// onRemove detaches obj and starts its chained tween, if any.
func (j *Juggler) onRemove(obj Animatable) {
	j.Remove(obj)
	if t, ok := obj.(*Tween); ok && t.IsComplete() && t.nextTween != nil {
		j.Add(t.nextTween)
	}
}

func (j *Juggler) emit(typ AnimationEventType, obj Animatable) {
	if j.sink == nil {
		return
	}
	ev := AnimationEvent{Type: typ, Object: obj, ElapsedTime: j.elapsedTime}
	if t, ok := obj.(*Tween); ok {
		ev.Target = t.target
	}
	j.sink.EmitEvent(ev)
}

// --- Convenience constructors ---

// RepeatForever makes a TweenConfig repeat endlessly.
const RepeatForever = -1

// TweenConfig describes a tween created by Juggler.Tween or loaded from a
// tween script.
type TweenConfig struct {
	// Transition name; empty means linear.
	Transition string `yaml:"transition"`
	Delay      float64 `yaml:"delay"`
	// RepeatCount is the number of cycles. Zero keeps the default single
	// run; RepeatForever repeats endlessly.
	RepeatCount int     `yaml:"repeatCount"`
	RepeatDelay float64 `yaml:"repeatDelay"`
	Reverse     bool    `yaml:"reverse"`
	RoundToInt  bool    `yaml:"roundToInt"`
	// Properties maps property names (hints allowed) to end values.
	Properties map[string]float64 `yaml:"properties"`

	OnStart    func(*Tween) `yaml:"-"`
	OnUpdate   func(*Tween) `yaml:"-"`
	OnRepeat   func(*Tween) `yaml:"-"`
	OnComplete func(*Tween) `yaml:"-"`
}

// apply configures t from c. Properties are registered in name order.
func (c *TweenConfig) apply(t *Tween) {
	t.SetDelay(c.Delay)
	switch {
	case c.RepeatCount == RepeatForever:
		t.SetRepeatCount(0)
	case c.RepeatCount > 0:
		t.SetRepeatCount(c.RepeatCount)
	}
	t.SetRepeatDelay(c.RepeatDelay)
	t.SetReverse(c.Reverse)
	t.SetRoundToInt(c.RoundToInt)
	for _, name := range slices.Sorted(maps.Keys(c.Properties)) {
		t.Animate(name, c.Properties[name])
	}
	t.OnStart = c.OnStart
	t.OnUpdate = c.OnUpdate
	t.OnRepeat = c.OnRepeat
	t.OnComplete = c.OnComplete
}

// Tween creates a tween of target from cfg and adds it to the juggler.
// The tween comes from the juggler's pool and goes back to it once it has
// been removed, before its OnComplete callback runs; do not keep references
// to it past completion.
func (j *Juggler) Tween(target Target, totalTime float64, cfg TweenConfig) (*Tween, error) {
	transition := cfg.Transition
	if transition == "" {
		transition = TransitionLinear
	}

	var t *Tween
	var err error
	if j.pool != nil {
		t, err = j.pool.Get(target, totalTime, transition)
	} else {
		t, err = NewTween(target, totalTime, transition)
	}
	if err != nil {
		return nil, err
	}
	cfg.apply(t)

	j.Add(t)
	if j.pool != nil {
		pool := j.pool
		t.AddRemoveListener(pooledTween{j}, func(Animatable) { pool.Put(t) })
	}
	return t, nil
}

// DelayCall runs fn after delay seconds of juggler time.
func (j *Juggler) DelayCall(fn func(), delay float64) *DelayedCall {
	if fn == nil {
		return nil
	}
	dc := NewDelayedCall(fn, delay)
	j.Add(dc)
	return dc
}
