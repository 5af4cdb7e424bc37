package models

import "fmt"

type actorKind uint8

const (
	actorSystem actorKind = iota
	actorHuman
)

// Actor identifies who performed a mutation: a human staff member or the system itself.
// The zero value is the system actor.
type Actor struct {
	kind actorKind
	id   string
}

// SystemActor marks automatic actions such as workload-based assignment.
var SystemActor = Actor{kind: actorSystem}

// HumanActor returns an actor for an authenticated staff user.
func HumanActor(id string) Actor {
	return Actor{kind: actorHuman, id: id}
}

// ActorFromRef converts a nullable stored reference back into an Actor.
func ActorFromRef(ref *string) Actor {
	if ref == nil || *ref == "" {
		return SystemActor
	}
	return HumanActor(*ref)
}

func (a Actor) IsSystem() bool {
	return a.kind == actorSystem
}

// ID returns the user id of a human actor.
func (a Actor) ID() (string, bool) {
	if a.kind != actorHuman {
		return "", false
	}
	return a.id, true
}

// Ref is the storage form: nil for the system actor.
func (a Actor) Ref() *string {
	if a.kind != actorHuman {
		return nil
	}
	id := a.id
	return &id
}

// Label is used in history entries, where the system actor is recorded as "system".
func (a Actor) Label() string {
	if a.kind != actorHuman {
		return "system"
	}
	return a.id
}

func (a Actor) String() string {
	if a.kind != actorHuman {
		return "Actor(system)"
	}
	return fmt.Sprintf("Actor(%s)", a.id)
}
