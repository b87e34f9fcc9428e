package component

import (
	"github.com/samdwyer/deepdelve/internal/ecs"
	"github.com/samdwyer/deepdelve/internal/world"
)

// Intents live for one tick and are cleared by the system that consumes them.
type (
	WantsToMelee struct {
		Target ecs.Entity
	}
	WantsToPickUp struct {
		Item ecs.Entity
	}
	WantsToUseItem struct {
		Item   ecs.Entity
		Target Target
	}
	WantsToDropItem struct {
		Item ecs.Entity
	}
)

// TargetKind selects which field of a Target is meaningful.
type TargetKind int

const (
	TargetSelf TargetKind = iota
	TargetEntity
	TargetPosition
)

func (k TargetKind) String() string {
	switch k {
	case TargetSelf:
		return "self"
	case TargetEntity:
		return "entity"
	case TargetPosition:
		return "position"
	default:
		return "unknown"
	}
}

// Target is what a used item is aimed at.
type Target struct {
	Kind   TargetKind
	Entity ecs.Entity
	Point  world.Point
}

func SelfTarget() Target                  { return Target{Kind: TargetSelf} }
func EntityTarget(e ecs.Entity) Target    { return Target{Kind: TargetEntity, Entity: e} }
func PositionTarget(p world.Point) Target { return Target{Kind: TargetPosition, Point: p} }
