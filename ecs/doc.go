// Package ecs bridges pigface engine effects into a [Donburi] world.
//
// [NewDonburiStore] publishes every executed effect as a typed event on
// [EffectEventType]. [Tracker] is a ready-made subscriber that keeps running
// totals in a [Tally] component, which the window host shows in its debug
// overlay.
//
// Usage:
//
//	world := donburi.NewWorld()
//	tracker := ecs.NewTracker(world)
//	engine.SetEffectStore(ecs.NewDonburiStore(world))
//	// once per frame:
//	tracker.Process()
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
