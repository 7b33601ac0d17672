package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/pigface"
)

// EffectEventType is the Donburi event type for executed engine effects.
var EffectEventType = events.NewEventType[pigface.Effect]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EffectStore backed by a Donburi world. Effects
// are queued until EffectEventType.ProcessEvents runs.
func NewDonburiStore(world donburi.World) pigface.EffectStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEffect(f pigface.Effect) {
	EffectEventType.Publish(s.world, f)
}
