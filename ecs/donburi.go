package ecs

import (
	"github.com/phanxgames/evergreen"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// StateChangeEvent is published when the engine picks up a new target state.
type StateChangeEvent struct {
	Prev, Next evergreen.AssemblyState
}

// SettledEvent is published when the morph factor reaches its target.
type SettledEvent struct {
	State  evergreen.AssemblyState
	Factor float64
}

// StateChangeEventType is the Donburi event type for assembly state changes.
var StateChangeEventType = events.NewEventType[StateChangeEvent]()

// SettledEventType is the Donburi event type for settle notifications.
var SettledEventType = events.NewEventType[SettledEvent]()

type donburiObserver struct {
	world donburi.World
}

// NewDonburiObserver returns an Observer that publishes engine notifications
// to StateChangeEventType and SettledEventType. Events are queued until the
// world's systems call ProcessEvents.
func NewDonburiObserver(world donburi.World) evergreen.Observer {
	return &donburiObserver{world: world}
}

func (o *donburiObserver) OnStateChange(prev, next evergreen.AssemblyState) {
	StateChangeEventType.Publish(o.world, StateChangeEvent{Prev: prev, Next: next})
}

func (o *donburiObserver) OnSettled(state evergreen.AssemblyState, factor float64) {
	SettledEventType.Publish(o.world, SettledEvent{State: state, Factor: factor})
}

// ParticleData is the per-entity mirror of one engine particle.
type ParticleData struct {
	// Index is the particle's slot in the engine's transform arena.
	Index    int
	ID       int
	Category evergreen.Category
	evergreen.Transform
}

// Particle is the component holding a ParticleData.
var Particle = donburi.NewComponentType[ParticleData]()

var particleQuery = donburi.NewQuery(filter.Contains(Particle))

// Mirror keeps one Donburi entity per engine particle and copies the latest
// transforms onto them.
type Mirror struct {
	world    donburi.World
	eng      *evergreen.Engine
	entities []donburi.Entity
}

// NewMirror creates an entity for every particle of eng in world and fills
// them with the current transforms.
func NewMirror(world donburi.World, eng *evergreen.Engine) *Mirror {
	m := &Mirror{world: world, eng: eng}
	m.Sync()
	return m
}

// Sync copies the engine's transforms onto the mirrored entities. When the
// particle count changed (after Reconfigure) the entities are recreated.
func (m *Mirror) Sync() {
	records := m.eng.Records()
	if len(records) != len(m.entities) {
		m.rebuild(len(records))
	}
	transforms := m.eng.Transforms()
	for i, e := range m.entities {
		entry := m.world.Entry(e)
		Particle.SetValue(entry, ParticleData{
			Index:     i,
			ID:        records[i].ID,
			Category:  records[i].Category,
			Transform: transforms[i],
		})
	}
}

func (m *Mirror) rebuild(n int) {
	for _, e := range m.entities {
		if m.world.Valid(e) {
			m.world.Remove(e)
		}
	}
	m.entities = m.entities[:0]
	for range n {
		m.entities = append(m.entities, m.world.Create(Particle))
	}
}

// Entities returns the mirrored entities in arena order.
func (m *Mirror) Entities() []donburi.Entity {
	return m.entities
}

// EachParticle calls fn for every particle entity in world.
func EachParticle(world donburi.World, fn func(*ParticleData)) {
	particleQuery.Each(world, func(entry *donburi.Entry) {
		fn(Particle.Get(entry))
	})
}

// CountParticles returns the number of particle entities in world.
func CountParticles(world donburi.World) int {
	return particleQuery.Count(world)
}
