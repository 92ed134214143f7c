// Package ecs provides ECS adapters for starling.
//
// The primary adapter is [NewDonburiSink], which forwards juggler events
// (animatables added and removed) into a [Donburi] world as typed events.
// Subscribe to [AnimationEventType] in your ECS systems to receive them.
//
// Usage:
//
//	juggler.SetEventSink(ecs.NewDonburiSink(world))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
