package starling

import "math"

// DelayedCall runs a function after a delay of advanced time, optionally
// repeating. Add it to a Juggler, or use Juggler.DelayCall.
type DelayedCall struct {
	removeSignal

	call        func()
	currentTime float64
	totalTime   float64
	repeatCount int
}

// NewDelayedCall creates a call that fires once after delay seconds.
func NewDelayedCall(call func(), delay float64) *DelayedCall {
	dc := &DelayedCall{}
	dc.Reset(call, delay)
	return dc
}

// Reset reinitializes the call with a new function and delay. Remove
// listeners are kept, so a call reset inside a juggler is still removed once
// it fires.
func (dc *DelayedCall) Reset(call func(), delay float64) {
	dc.call = call
	dc.currentTime = 0
	dc.totalTime = math.Max(delay, minTweenTime)
	dc.repeatCount = 1
}

// AdvanceTime moves the call forward by dt seconds, firing it (possibly
// several times when repeating) as the delay elapses.
func (dc *DelayedCall) AdvanceTime(dt float64) {
	for dt > 0 && dc.call != nil {
		previousTime := dc.currentTime
		dc.currentTime = math.Min(dc.totalTime, dc.currentTime+dt)
		if previousTime >= dc.totalTime || dc.currentTime < dc.totalTime {
			return
		}

		if dc.repeatCount == 0 || dc.repeatCount > 1 {
			dc.call()
			if dc.repeatCount > 0 {
				dc.repeatCount--
			}
			dc.currentTime = 0
			dt = previousTime + dt - dc.totalTime
			continue
		}

		call := dc.call
		dc.dispatchRemove(dc)
		call()
		return
	}
}

// IsComplete reports whether the last repetition has fired.
func (dc *DelayedCall) IsComplete() bool {
	return dc.repeatCount == 1 && dc.currentTime >= dc.totalTime
}

// TotalTime returns the delay in seconds.
func (dc *DelayedCall) TotalTime() float64 { return dc.totalTime }

// CurrentTime returns the time elapsed in the current repetition.
func (dc *DelayedCall) CurrentTime() float64 { return dc.currentTime }

// RepeatCount returns the remaining repetitions, 0 meaning forever.
func (dc *DelayedCall) RepeatCount() int { return dc.repeatCount }

// SetRepeatCount sets how often the call fires; 0 repeats forever.
func (dc *DelayedCall) SetRepeatCount(n int) {
	if n < 0 {
		n = 0
	}
	dc.repeatCount = n
}
