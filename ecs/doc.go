// Package ecs provides ECS adapters for feather's interaction events and
// carousel selection.
//
// [NewDonburiStore] bridges pointer and click events on nodes with a
// non-zero EntityID into a [Donburi] world as typed events. Subscribe to
// [InteractionEventType] in your ECS systems to receive them.
// [BridgeSelection] does the same for a carousel's selection changes via
// [SelectionEventType].
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//	ecs.BridgeSelection(world, carousel)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
