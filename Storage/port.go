package Storage

import (
	"context"
	"errors"

	"PreStart/Models"
)

// Collection names shared by both backends.
const (
	InspectionsCollection = "inspections"
	DriversCollection     = "drivers"
	WorkshopsCollection   = "workshops"
)

// ErrLastItem is returned when a delete would empty a collection that must keep
// at least one entry (drivers, workshops). The collection is left untouched.
var ErrLastItem = errors.New("cannot delete the last remaining item")

// ErrNotFound is returned when the given id does not name a stored record.
var ErrNotFound = errors.New("record not found")

// InspectionStore is the archive of finalized inspections. Add never
// overwrites; List orders by creation time descending; Subscribe delivers the
// full current collection immediately and again after every change.
type InspectionStore interface {
	Add(ctx context.Context, record *Models.Inspection) (string, error)
	List(ctx context.Context) ([]Models.Inspection, error)
	Delete(ctx context.Context, id string) error
	Subscribe(fn func([]Models.Inspection)) (func(), error)
}

// DriverStore holds the driver roster. Delete refuses to remove the last
// driver.
type DriverStore interface {
	Add(ctx context.Context, driver *Models.Driver) (string, error)
	List(ctx context.Context) ([]Models.Driver, error)
	Delete(ctx context.Context, id string) error
	Subscribe(fn func([]Models.Driver)) (func(), error)
}

// WorkshopStore holds the workshop directory. Update edits name and email in
// place; Delete refuses to remove the last workshop.
type WorkshopStore interface {
	Add(ctx context.Context, workshop *Models.Workshop) (string, error)
	List(ctx context.Context) ([]Models.Workshop, error)
	Update(ctx context.Context, id, name, email string) error
	Delete(ctx context.Context, id string) error
	Subscribe(fn func([]Models.Workshop)) (func(), error)
}
