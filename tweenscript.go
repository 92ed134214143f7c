package starling

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// TweenScriptEntry is one tween in a script.
type TweenScriptEntry struct {
	// ID names the tween so later entries can chain after it.
	ID string `yaml:"id"`
	// Target is looked up in the map passed to Apply.
	Target string  `yaml:"target"`
	Time   float64 `yaml:"time"`
	// After chains this tween to start when the tween with that ID
	// completes, instead of starting immediately. A tween has at most one
	// successor; fan-out is rejected by LoadTweenScript.
	After string `yaml:"after"`

	TweenConfig `yaml:",inline"`
}

// TweenScript is a declarative list of tweens, loaded from YAML:
//
//	tweens:
//	  - id: intro
//	    target: hero
//	    time: 1.5
//	    transition: easeOut
//	    properties:
//	      x: 200
//	      rotation#deg: 90
//	  - target: hero
//	    after: intro
//	    time: 0.5
//	    repeatCount: -1
//	    reverse: true
//	    properties:
//	      alpha: 0.2
type TweenScript struct {
	Tweens []TweenScriptEntry `yaml:"tweens"`
}

// LoadTweenScript parses and validates a YAML tween script.
func LoadTweenScript(data []byte) (*TweenScript, error) {
	var script TweenScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, errors.Wrap(err, "parse tween script")
	}
	if len(script.Tweens) == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "parse tween script: no tweens")
	}

	ids := make(map[string]bool)
	successors := make(map[string]int)
	for i, e := range script.Tweens {
		if e.Target == "" {
			return nil, errors.Wrapf(ErrInvalidArgument, "tween %d: missing target", i)
		}
		if e.Time < 0 {
			return nil, errors.Wrapf(ErrInvalidArgument, "tween %d: negative time %v", i, e.Time)
		}
		if e.Transition != "" {
			if _, err := GetTransition(e.Transition); err != nil {
				return nil, errors.Wrapf(err, "tween %d", i)
			}
		}
		if e.After != "" {
			if !ids[e.After] {
				return nil, errors.Wrapf(ErrInvalidArgument, "tween %d: after %q: no earlier tween with that id", i, e.After)
			}
			if prev, ok := successors[e.After]; ok {
				return nil, errors.Wrapf(ErrInvalidArgument, "tween %d: after %q: already followed by tween %d", i, e.After, prev)
			}
			successors[e.After] = i
		}
		if e.ID != "" {
			if ids[e.ID] {
				return nil, errors.Wrapf(ErrInvalidArgument, "tween %d: duplicate id %q", i, e.ID)
			}
			ids[e.ID] = true
		}
	}
	return &script, nil
}

// Apply creates the script's tweens on the given targets. Tweens without
// After are added to j right away; chained ones start when their
// predecessor completes. Every target name must be present in targets.
func (s *TweenScript) Apply(j *Juggler, targets map[string]Target) ([]*Tween, error) {
	for i, e := range s.Tweens {
		if targets[e.Target] == nil {
			return nil, errors.Wrapf(ErrInvalidArgument, "tween %d: unknown target %q", i, e.Target)
		}
	}

	byID := make(map[string]*Tween)
	out := make([]*Tween, 0, len(s.Tweens))
	for i, e := range s.Tweens {
		target := targets[e.Target]
		var t *Tween
		var err error
		if e.After == "" {
			t, err = j.Tween(target, e.Time, e.TweenConfig)
		} else {
			t, err = e.newChained(target)
			if err == nil {
				byID[e.After].SetNextTween(t)
			}
		}
		if err != nil {
			return out, errors.Wrapf(err, "tween %d", i)
		}
		if e.ID != "" {
			byID[e.ID] = t
		}
		out = append(out, t)
	}
	return out, nil
}

func (e *TweenScriptEntry) newChained(target Target) (*Tween, error) {
	transition := e.Transition
	if transition == "" {
		transition = TransitionLinear
	}
	t, err := NewTween(target, e.Time, transition)
	if err != nil {
		return nil, err
	}
	e.TweenConfig.apply(t)
	return t, nil
}
