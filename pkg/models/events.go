package models

import (
	"time"

	"github.com/achmadwirra/inventory-asset/pkg/metadata"
)

// Event is a fact produced by a domain mutation. Mutations return the
// events they emitted instead of buffering them on the entity; the
// service consumes the slice to build audit descriptions and then drops
// it. Events are never persisted as their own log.
type Event interface {
	event()
}

type AssetAssigned struct {
	AssetID    int
	UserID     int
	AssignedAt time.Time
}

type AssetReturned struct {
	AssetID    int
	ReturnedAt time.Time
}

type AssetStatusChanged struct {
	AssetID   int
	OldStatus metadata.Status
	NewStatus metadata.Status
}

func (AssetAssigned) event()      {}
func (AssetReturned) event()      {}
func (AssetStatusChanged) event() {}
