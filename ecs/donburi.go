package ecs

import (
	"github.com/phanxgames/feather"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for feather interaction events.
// Subscribe to this in your ECS systems to receive pointer and click events.
var InteractionEventType = events.NewEventType[feather.InteractionEvent]()

// SelectionEvent is published when a bridged carousel's selection changes.
// Title is empty when the selection was cleared.
type SelectionEvent struct {
	Carousel string
	OldIndex int
	NewIndex int
	Title    string
}

// SelectionEventType is the Donburi event type for carousel selection changes.
var SelectionEventType = events.NewEventType[SelectionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) feather.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event feather.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

// BridgeSelection publishes every selection change of c to
// SelectionEventType in world. Call the returned func to stop.
func BridgeSelection(world donburi.World, c *feather.Carousel) (remove func()) {
	return c.SelectionChanged.Subscribe(func(ch feather.SelectionChange) {
		ev := SelectionEvent{
			Carousel: c.Node().Name,
			OldIndex: ch.OldIndex,
			NewIndex: ch.NewIndex,
		}
		if ch.NewItem != nil {
			ev.Title = ch.NewItem.Title.Get()
		}
		SelectionEventType.Publish(world, ev)
	})
}
