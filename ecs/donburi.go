package ecs

import (
	"github.com/ImaginationSydney/starling"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// AnimationEventType is the Donburi event type for juggler events.
var AnimationEventType = events.NewEventType[starling.AnimationEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// published to AnimationEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) starling.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event starling.AnimationEvent) {
	AnimationEventType.Publish(s.world, event)
}
