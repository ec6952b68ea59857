// Package views invalida las vistas que dependen del listado de mascotas
// después de cada mutación.
package views

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// HomePath es la vista que muestra el listado.
const HomePath = "/"

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Event describe una mutación que deja obsoleta una vista.
type Event struct {
	ID      string    `json:"id"`
	Action  Action    `json:"action"`
	PetID   int64     `json:"pet_id"`
	ActorID int64     `json:"actor_id"`
	Path    string    `json:"path"`
	At      time.Time `json:"at"`
}

func NewEvent(action Action, petID, actorID int64, at time.Time) Event {
	return Event{
		ID:      uuid.NewString(),
		Action:  action,
		PetID:   petID,
		ActorID: actorID,
		Path:    HomePath,
		At:      at.UTC(),
	}
}

type Invalidator interface {
	Invalidate(ctx context.Context, ev Event) error
}

// Multi ejecuta todos los invalidadores aunque alguno falle.
type Multi []Invalidator

func (m Multi) Invalidate(ctx context.Context, ev Event) error {
	var errs []error
	for _, inv := range m {
		if inv == nil {
			continue
		}
		if err := inv.Invalidate(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Nop struct{}

func (Nop) Invalidate(context.Context, Event) error { return nil }
