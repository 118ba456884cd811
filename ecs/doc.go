// Package ecs bridges an evergreen engine into a [Donburi] world.
//
// [NewDonburiObserver] republishes state changes and settle notifications as
// typed Donburi events; subscribe to [StateChangeEventType] or
// [SettledEventType] in your systems to receive them. [Mirror] keeps one
// entity per particle with a [Particle] component carrying its transform.
//
// Usage:
//
//	eng.Observe(ecs.NewDonburiObserver(world))
//	mirror := ecs.NewMirror(world, eng)
//	// each frame:
//	eng.Tick(elapsed, dt)
//	mirror.Sync()
//	events.ProcessAllEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
