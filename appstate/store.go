/*
store.go - Persistence interface for the six record collections

PURPOSE:
  Defines the interface between the state controller and durable
  storage: one keyed collection per entity type, plus the two secondary
  desklog lookups. Different implementations can use SQLite or
  in-memory storage.

CONTRACT (per collection):
  ListX:   all records
  AddX:    insert; fails with ErrDuplicateID if the id exists, leaving
           the collection unchanged
  PutX:    replace by id (upsert)
  DeleteX: remove by id; a no-op (nil error) when absent

  Sources and stock entries are add-only: no update or delete methods
  exist for them.

ATOMICITY:
  Each operation is atomic only within its own collection. There are no
  cross-collection transactions; the Delivered -> Sold rule is two
  writes sequenced by the controller.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: durable SQLite store
  - store/memory/memory.go: in-memory store for tests

SEE ALSO:
  - controller.go: The sole caller of every mutating method
*/
package appstate

import (
	"context"
	"time"

	"github.com/lotworks/dealdesk/desklog"
	"github.com/lotworks/dealdesk/directory"
	"github.com/lotworks/dealdesk/inventory"
)

// Store persists the six record collections. The controller is the
// sole writer; implementations only need single-writer sequencing.
type Store interface {
	ListUsers(ctx context.Context) ([]directory.User, error)
	AddUser(ctx context.Context, u directory.User) error
	PutUser(ctx context.Context, u directory.User) error
	DeleteUser(ctx context.Context, id string) error

	ListSources(ctx context.Context) ([]directory.Source, error)
	AddSource(ctx context.Context, s directory.Source) error

	ListLocations(ctx context.Context) ([]directory.Location, error)
	AddLocation(ctx context.Context, l directory.Location) error
	PutLocation(ctx context.Context, l directory.Location) error
	DeleteLocation(ctx context.Context, id string) error

	ListVehicles(ctx context.Context) ([]inventory.Vehicle, error)
	AddVehicle(ctx context.Context, v inventory.Vehicle) error
	PutVehicle(ctx context.Context, v inventory.Vehicle) error
	DeleteVehicle(ctx context.Context, id string) error

	ListStockEntries(ctx context.Context) ([]inventory.StockNumberEntry, error)
	AddStockEntry(ctx context.Context, e inventory.StockNumberEntry) error

	ListDesklogEntries(ctx context.Context) ([]desklog.Entry, error)
	AddDesklogEntry(ctx context.Context, e desklog.Entry) error
	PutDesklogEntry(ctx context.Context, e desklog.Entry) error
	DeleteDesklogEntry(ctx context.Context, id string) error

	// DesklogByStatus returns entries whose DealStatus matches exactly.
	DesklogByStatus(ctx context.Context, status desklog.DealStatus) ([]desklog.Entry, error)

	// DesklogByDateRange returns entries whose Date falls in [from, to],
	// bounds inclusive. Filtering is on Date, not CreatedAt.
	DesklogByDateRange(ctx context.Context, from, to time.Time) ([]desklog.Entry, error)
}
