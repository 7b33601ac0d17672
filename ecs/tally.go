package ecs

import (
	"github.com/yohamta/donburi"

	"github.com/phanxgames/pigface"
)

// TallyData counts what the engine did.
type TallyData struct {
	Moves   int // eye offset writes
	Ticks   int // animation frames requested
	Oinks   int // sounds from the snout
	Blinks  int // sounds from a held blink
}

// Tally is the component holding a TallyData.
var Tally = donburi.NewComponentType[TallyData]()

// Tracker owns one Tally entity and feeds it from EffectEventType.
type Tracker struct {
	world  donburi.World
	entity donburi.Entity
}

// NewTracker creates the tally entity in world and subscribes to effects.
func NewTracker(world donburi.World) *Tracker {
	t := &Tracker{world: world, entity: world.Create(Tally)}
	EffectEventType.Subscribe(world, t.onEffect)
	return t
}

// Process delivers queued effects to the tally.
func (t *Tracker) Process() {
	EffectEventType.ProcessEvents(t.world)
}

// Totals returns the current counts.
func (t *Tracker) Totals() TallyData {
	return *Tally.Get(t.world.Entry(t.entity))
}

func (t *Tracker) onEffect(w donburi.World, f pigface.Effect) {
	d := Tally.Get(w.Entry(t.entity))
	switch f.Type {
	case pigface.EffectMoveEye:
		d.Moves++
	case pigface.EffectRequestTick:
		d.Ticks++
	case pigface.EffectPlaySound:
		if f.Cause == pigface.SoundBlink {
			d.Blinks++
		} else {
			d.Oinks++
		}
	}
}
