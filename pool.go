package starling

// TweenPool is a free list of retired tweens. It is an explicit object owned
// by whoever schedules tweens (usually a Juggler); there is no global pool.
//
// Put clears every reference a tween holds (target, callbacks, chained
// tween, remove listeners, properties) so a pooled tween never keeps a dead
// object alive. Get reinitializes a pooled tween exactly like NewTween.
type TweenPool struct {
	free []*Tween
}

// NewTweenPool creates an empty pool.
func NewTweenPool() *TweenPool {
	return &TweenPool{}
}

// Get returns a recycled tween, or a new one when the pool is empty.
func (p *TweenPool) Get(target Target, totalTime float64, transition string) (*Tween, error) {
	n := len(p.free)
	if n == 0 {
		return NewTween(target, totalTime, transition)
	}
	t := p.free[n-1]
	if err := t.Reset(target, totalTime, transition); err != nil {
		return nil, err
	}
	p.free[n-1] = nil
	p.free = p.free[:n-1]
	return t, nil
}

// Put retires t into the pool. Putting a tween that is already pooled is a
// no-op. The caller must not use t afterwards.
func (p *TweenPool) Put(t *Tween) {
	if t == nil || t.pooled {
		return
	}
	t.reset(nil, 0)
	t.clearRemoveListeners()
	t.transition = nil
	t.transitionName = ""
	t.pooled = true
	p.free = append(p.free, t)
}

// Len returns the number of pooled tweens.
func (p *TweenPool) Len() int { return len(p.free) }
