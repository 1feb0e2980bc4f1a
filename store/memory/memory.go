// Package memory provides an in-memory Store implementation for
// testing and demos. Records live in insertion order, matching how the
// durable store surfaces them.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lotworks/dealdesk/appstate"
	"github.com/lotworks/dealdesk/desklog"
	"github.com/lotworks/dealdesk/directory"
	"github.com/lotworks/dealdesk/inventory"
)

// Store keeps all six collections in memory.
type Store struct {
	mu           sync.RWMutex
	users        []directory.User
	sources      []directory.Source
	locations    []directory.Location
	vehicles     []inventory.Vehicle
	stockEntries []inventory.StockNumberEntry
	desklog      []desklog.Entry
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{}
}

var _ appstate.Store = (*Store)(nil)

// =============================================================================
// USERS
// =============================================================================

func (s *Store) ListUsers(_ context.Context) ([]directory.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]directory.User(nil), s.users...), nil
}

func (s *Store) AddUser(_ context.Context, u directory.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == u.ID {
			return fmt.Errorf("add user %q: %w", u.ID, appstate.ErrDuplicateID)
		}
	}
	s.users = append(s.users, u)
	return nil
}

func (s *Store) PutUser(_ context.Context, u directory.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == u.ID {
			s.users[i] = u
			return nil
		}
	}
	s.users = append(s.users, u)
	return nil
}

func (s *Store) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = deleteByID(s.users, id, func(u directory.User) string { return u.ID })
	return nil
}

// =============================================================================
// SOURCES
// =============================================================================

func (s *Store) ListSources(_ context.Context) ([]directory.Source, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]directory.Source(nil), s.sources...), nil
}

func (s *Store) AddSource(_ context.Context, src directory.Source) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.sources {
		if s.sources[i].ID == src.ID {
			return fmt.Errorf("add source %q: %w", src.ID, appstate.ErrDuplicateID)
		}
	}
	s.sources = append(s.sources, src)
	return nil
}

// =============================================================================
// LOCATIONS
// =============================================================================

func (s *Store) ListLocations(_ context.Context) ([]directory.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]directory.Location(nil), s.locations...), nil
}

func (s *Store) AddLocation(_ context.Context, l directory.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.locations {
		if s.locations[i].ID == l.ID {
			return fmt.Errorf("add location %q: %w", l.ID, appstate.ErrDuplicateID)
		}
	}
	s.locations = append(s.locations, l)
	return nil
}

func (s *Store) PutLocation(_ context.Context, l directory.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.locations {
		if s.locations[i].ID == l.ID {
			s.locations[i] = l
			return nil
		}
	}
	s.locations = append(s.locations, l)
	return nil
}

func (s *Store) DeleteLocation(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations = deleteByID(s.locations, id, func(l directory.Location) string { return l.ID })
	return nil
}

// =============================================================================
// VEHICLES
// =============================================================================

func (s *Store) ListVehicles(_ context.Context) ([]inventory.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]inventory.Vehicle(nil), s.vehicles...), nil
}

func (s *Store) AddVehicle(_ context.Context, v inventory.Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.vehicles {
		if s.vehicles[i].ID == v.ID {
			return fmt.Errorf("add vehicle %q: %w", v.ID, appstate.ErrDuplicateID)
		}
	}
	s.vehicles = append(s.vehicles, v)
	return nil
}

func (s *Store) PutVehicle(_ context.Context, v inventory.Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.vehicles {
		if s.vehicles[i].ID == v.ID {
			s.vehicles[i] = v
			return nil
		}
	}
	s.vehicles = append(s.vehicles, v)
	return nil
}

func (s *Store) DeleteVehicle(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vehicles = deleteByID(s.vehicles, id, func(v inventory.Vehicle) string { return v.ID })
	return nil
}

// =============================================================================
// STOCK ENTRIES
// =============================================================================

func (s *Store) ListStockEntries(_ context.Context) ([]inventory.StockNumberEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]inventory.StockNumberEntry(nil), s.stockEntries...), nil
}

func (s *Store) AddStockEntry(_ context.Context, e inventory.StockNumberEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.stockEntries {
		if s.stockEntries[i].ID == e.ID {
			return fmt.Errorf("add stock entry %q: %w", e.ID, appstate.ErrDuplicateID)
		}
	}
	s.stockEntries = append(s.stockEntries, e)
	return nil
}

// =============================================================================
// DESKLOG
// =============================================================================

func (s *Store) ListDesklogEntries(_ context.Context) ([]desklog.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]desklog.Entry(nil), s.desklog...), nil
}

func (s *Store) AddDesklogEntry(_ context.Context, e desklog.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.desklog {
		if s.desklog[i].ID == e.ID {
			return fmt.Errorf("add desklog entry %q: %w", e.ID, appstate.ErrDuplicateID)
		}
	}
	s.desklog = append(s.desklog, e)
	return nil
}

func (s *Store) PutDesklogEntry(_ context.Context, e desklog.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.desklog {
		if s.desklog[i].ID == e.ID {
			s.desklog[i] = e
			return nil
		}
	}
	s.desklog = append(s.desklog, e)
	return nil
}

func (s *Store) DeleteDesklogEntry(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.desklog = deleteByID(s.desklog, id, func(e desklog.Entry) string { return e.ID })
	return nil
}

func (s *Store) DesklogByStatus(_ context.Context, status desklog.DealStatus) ([]desklog.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []desklog.Entry
	for _, e := range s.desklog {
		if e.DealStatus == status {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Store) DesklogByDateRange(_ context.Context, from, to time.Time) ([]desklog.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []desklog.Entry
	for _, e := range s.desklog {
		if !e.Date.Before(from) && !e.Date.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func deleteByID[T any](items []T, id string, idOf func(T) string) []T {
	out := items[:0]
	for _, it := range items {
		if idOf(it) != id {
			out = append(out, it)
		}
	}
	return out
}
