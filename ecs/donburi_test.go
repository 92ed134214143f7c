package ecs

import (
	"testing"

	"github.com/ImaginationSydney/starling"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	if NewDonburiSink(world) == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_JugglerLifecycle(t *testing.T) {
	world := donburi.NewWorld()
	juggler := starling.NewJuggler(nil)
	juggler.SetEventSink(NewDonburiSink(world))

	var received []starling.AnimationEvent
	AnimationEventType.Subscribe(world, func(w donburi.World, e starling.AnimationEvent) {
		received = append(received, e)
	})

	target := starling.NewPropertyMap(map[string]float64{"x": 0})
	tw, err := starling.NewTween(target, 1.0, starling.TransitionLinear)
	if err != nil {
		t.Fatal(err)
	}
	tw.Animate("x", 10)
	juggler.Add(tw)
	juggler.AdvanceTime(1.0)

	// Events are queued until processed.
	AnimationEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if received[0].Type != starling.EventAnimatableAdded || received[0].Object != starling.Animatable(tw) {
		t.Errorf("event 0: %+v", received[0])
	}
	if received[0].Target != starling.Target(target) {
		t.Errorf("event 0 target = %v, want %v", received[0].Target, target)
	}
	if received[1].Type != starling.EventAnimatableRemoved {
		t.Errorf("event 1 type = %v, want removed", received[1].Type)
	}
	if received[1].ElapsedTime != 1.0 {
		t.Errorf("event 1 elapsed = %v, want 1", received[1].ElapsedTime)
	}
}

func TestDonburiSink_ImplementsEventSink(t *testing.T) {
	world := donburi.NewWorld()
	var sink starling.EventSink = NewDonburiSink(world)
	_ = sink
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	AnimationEventType.Subscribe(world, func(w donburi.World, e starling.AnimationEvent) {
		count1++
	})
	AnimationEventType.Subscribe(world, func(w donburi.World, e starling.AnimationEvent) {
		count2++
	})

	sink.EmitEvent(starling.AnimationEvent{Type: starling.EventAnimatableAdded})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
