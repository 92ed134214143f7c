package starling

import (
	"testing"

	"github.com/pkg/errors"
)

const sampleScript = `
tweens:
  - id: intro
    target: hero
    time: 1
    transition: linear
    properties:
      x: 100
      rotation#deg: 90
  - target: hero
    after: intro
    time: 1
    properties:
      alpha: 0
  - target: coin
    time: 0.5
    delay: 0.5
    repeatCount: -1
    reverse: true
    roundToInt: true
    properties:
      y: 10
`

func TestLoadTweenScript(t *testing.T) {
	script, err := LoadTweenScript([]byte(sampleScript))
	if err != nil {
		t.Fatal(err)
	}
	if len(script.Tweens) != 3 {
		t.Fatalf("tweens = %d, want 3", len(script.Tweens))
	}
	first, coin := script.Tweens[0], script.Tweens[2]
	if first.ID != "intro" || first.Target != "hero" || first.Time != 1 || first.Transition != TransitionLinear {
		t.Errorf("first entry = %+v", first)
	}
	if first.Properties["rotation#deg"] != 90 {
		t.Errorf("properties = %v", first.Properties)
	}
	if script.Tweens[1].After != "intro" {
		t.Errorf("After = %q, want intro", script.Tweens[1].After)
	}
	if coin.RepeatCount != RepeatForever || !coin.Reverse || !coin.RoundToInt || coin.Delay != 0.5 {
		t.Errorf("coin entry = %+v", coin)
	}
}

func TestLoadTweenScriptErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"empty", `tweens: []`},
		{"malformed", `tweens: [`},
		{"missing target", "tweens:\n  - time: 1\n"},
		{"negative time", "tweens:\n  - target: a\n    time: -1\n"},
		{"unknown transition", "tweens:\n  - target: a\n    time: 1\n    transition: wobble\n"},
		{"unknown after", "tweens:\n  - target: a\n    time: 1\n    after: b\n"},
		{"after later id", "tweens:\n  - target: a\n    after: b\n  - id: b\n    target: a\n"},
		{"duplicate id", "tweens:\n  - id: a\n    target: a\n  - id: a\n    target: a\n"},
		{"two tweens after one id", "tweens:\n  - id: a\n    target: a\n  - target: a\n    after: a\n  - target: b\n    after: a\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadTweenScript([]byte(tt.script)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadTweenScriptValidationErrorsWrap(t *testing.T) {
	_, err := LoadTweenScript([]byte("tweens:\n  - time: 1\n"))
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestTweenScriptApply(t *testing.T) {
	script, err := LoadTweenScript([]byte(sampleScript))
	if err != nil {
		t.Fatal(err)
	}
	hero := NewQuad("hero", 10, 10, ColorWhite, false)
	coin := NewPropertyMap(map[string]float64{"y": 0})

	pool := NewTweenPool()
	j := NewJuggler(pool)
	tweens, err := script.Apply(j, map[string]Target{"hero": hero, "coin": coin})
	if err != nil {
		t.Fatal(err)
	}
	if len(tweens) != 3 {
		t.Fatalf("tweens = %d, want 3", len(tweens))
	}
	if j.Len() != 2 {
		t.Errorf("juggler has %d objects, want 2 (chained tween waits)", j.Len())
	}
	if tweens[0].NextTween() != tweens[1] {
		t.Error("second tween not chained after intro")
	}
	if tweens[2].RepeatCount() != 0 || !tweens[2].Reverse() || !tweens[2].RoundToInt() {
		t.Error("coin tween not configured from the script")
	}

	j.AdvanceTime(0.5)
	if hero.X != 50 || hero.Rotation != 45 {
		t.Errorf("hero = (%v, %v), want x 50, rotation 45", hero.X, hero.Rotation)
	}
	j.AdvanceTime(0.5)
	if hero.X != 100 {
		t.Errorf("hero.X = %v, want 100", hero.X)
	}
	j.AdvanceTime(0.5)
	if hero.Alpha != 0.5 {
		t.Errorf("hero.Alpha = %v, want 0.5 from the chained tween", hero.Alpha)
	}
}

func TestTweenScriptApplyUnknownTarget(t *testing.T) {
	script, err := LoadTweenScript([]byte(sampleScript))
	if err != nil {
		t.Fatal(err)
	}
	j := NewJuggler(nil)
	_, err = script.Apply(j, map[string]Target{"hero": NewPropertyMap(nil)})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
	if j.Len() != 0 {
		t.Error("failed Apply added tweens")
	}
}
