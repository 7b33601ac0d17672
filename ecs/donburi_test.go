package ecs

import (
	"testing"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/pigface"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitEffect(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []pigface.Effect
	EffectEventType.Subscribe(world, func(w donburi.World, f pigface.Effect) {
		received = append(received, f)
	})

	store.EmitEffect(pigface.Effect{
		Type:   pigface.EffectMoveEye,
		Eye:    pigface.EyeRight,
		Offset: pigface.Vec2{X: 3, Y: -4},
	})
	store.EmitEffect(pigface.Effect{Type: pigface.EffectPlaySound, Cause: pigface.SoundBlink})

	// Effects are queued until processed.
	if len(received) != 0 {
		t.Fatalf("received %d effects before processing", len(received))
	}
	EffectEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 effects, got %d", len(received))
	}
	if e0 := received[0]; e0.Type != pigface.EffectMoveEye || e0.Eye != pigface.EyeRight || e0.Offset != (pigface.Vec2{X: 3, Y: -4}) {
		t.Errorf("effect 0: %+v", e0)
	}
	if e1 := received[1]; e1.Type != pigface.EffectPlaySound || e1.Cause != pigface.SoundBlink {
		t.Errorf("effect 1: %+v", e1)
	}
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	EffectEventType.Subscribe(world, func(w donburi.World, f pigface.Effect) { count1++ })
	EffectEventType.Subscribe(world, func(w donburi.World, f pigface.Effect) { count2++ })

	store.EmitEffect(pigface.Effect{Type: pigface.EffectCancelTick})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

type nopRenderer struct{}

func (nopRenderer) SetEyeOffset(pigface.EyeID, float64, float64) {}

func TestTrackerCountsEngineEffects(t *testing.T) {
	world := donburi.NewWorld()
	tracker := NewTracker(world)

	clock := &pigface.ManualClock{}
	frames := &pigface.FrameQueue{}
	engine, err := pigface.NewEngine(pigface.DefaultConfig(), nopRenderer{}, clock, frames)
	if err != nil {
		t.Fatal(err)
	}
	engine.SetEffectStore(NewDonburiStore(world))

	engine.PointerMove(300, 300) // two eye moves
	engine.Activate()            // one oink
	engine.PointerRelease()      // cancel + tick request
	tracker.Process()

	got := tracker.Totals()
	want := TallyData{Moves: 2, Ticks: 1, Oinks: 1}
	if got != want {
		t.Errorf("Totals() = %+v, want %+v", got, want)
	}
}
