package collision

import (
	"time"

	"github.com/simforge/simforge/internal/core/entity"
	"github.com/simforge/simforge/internal/core/geom"
)

// Event types published on the bus by the collision system.
const (
	EventEnter = "collision.enter"
	EventExit  = "collision.exit"
)

// ContactEvent is published when a pair starts or stops overlapping.
// A and B are ordered by entity id; the manifold normal points from B
// toward A. Exit events carry a zero manifold.
type ContactEvent struct {
	A        entity.ID
	B        entity.ID
	Manifold geom.Manifold

	typeStr string
	ts      time.Time
}

func (e ContactEvent) Type() string         { return e.typeStr }
func (e ContactEvent) Timestamp() time.Time { return e.ts }
func (e ContactEvent) Data() any            { return e }

func newEnterEvent(a, b entity.ID, m geom.Manifold) ContactEvent {
	return ContactEvent{A: a, B: b, Manifold: m, typeStr: EventEnter, ts: time.Now()}
}

func newExitEvent(a, b entity.ID) ContactEvent {
	return ContactEvent{A: a, B: b, typeStr: EventExit, ts: time.Now()}
}
