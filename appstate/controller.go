/*
controller.go - Application state controller

PURPOSE:
  The sole mutation gateway for the six record collections. Keeps an
  in-memory mirror of everything in the Store and mediates every write:

    1. check the current user's capability (vehicle/desklog mutations)
    2. validate input and derive system-assigned fields
    3. write through to the Store
    4. on success, update the cache to mirror exactly what was persisted

  If the store write fails the cache is left unchanged, so cache and
  store stay consistent: the cache reflects confirmed writes only.

DERIVED FIELDS:
  AddUser:          permissions come entirely from the role
  AddVehicle:       stock number from NextStockNumber over the greatest
                    existing one; callers cannot supply it
  UpdateVehicle:    merge; the stored stock number always survives
  Add/UpdateDesklogEntry: CreatedAt/UpdatedAt refreshed; a resulting
                    Delivered status marks the referenced vehicle
                    (matched by stock number) Sold - <DealType> as a
                    second write, silently skipped when no vehicle
                    matches

BOOTSTRAP:
  Initialize loads all collections and, if the user collection is
  empty, synthesizes one default admin (fixed id, full permissions)
  before exposing any state. The initial current user prefers an admin,
  else the first user.

CONCURRENCY:
  Single-process, single-writer-at-a-time. A mutex keeps the cache
  coherent under the HTTP layer's concurrent reads, but two overlapping
  AddVehicle calls from separate processes would race on the
  scan-then-assign of stock numbers; that is out of scope here.

SEE ALSO:
  - store.go: The persistence contract this writes through
  - inventory/stocknum.go: Stock number successor function
*/
package appstate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lotworks/dealdesk/desklog"
	"github.com/lotworks/dealdesk/directory"
	"github.com/lotworks/dealdesk/inventory"
)

// DefaultAdminID is the fixed id of the admin synthesized on first run.
const DefaultAdminID = "admin-1"

func defaultAdmin() directory.User {
	return directory.User{
		ID:          DefaultAdminID,
		Name:        "Admin User",
		Email:       "admin@example.com",
		Role:        directory.RoleAdmin,
		Permissions: directory.PermissionsForRole(directory.RoleAdmin),
	}
}

// Controller owns the in-memory mirror of the six collections and is
// the only writer to the Store.
type Controller struct {
	store Store

	mu             sync.RWMutex
	users          []directory.User
	sources        []directory.Source
	locations      []directory.Location
	vehicles       []inventory.Vehicle
	stockEntries   []inventory.StockNumberEntry
	desklogEntries []desklog.Entry
	currentUser    *directory.User
	initialized    bool
}

// New creates a controller over the given store. Call Initialize before
// reading or mutating state.
func New(store Store) *Controller {
	return &Controller{store: store}
}

// Initialize loads every collection into the cache, bootstraps the
// default admin when the user collection is empty, and selects the
// initial current user. Calling it again is a no-op.
func (c *Controller) Initialize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}

	users, err := c.store.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	sources, err := c.store.ListSources(ctx)
	if err != nil {
		return fmt.Errorf("load sources: %w", err)
	}
	locations, err := c.store.ListLocations(ctx)
	if err != nil {
		return fmt.Errorf("load locations: %w", err)
	}
	vehicles, err := c.store.ListVehicles(ctx)
	if err != nil {
		return fmt.Errorf("load vehicles: %w", err)
	}
	stockEntries, err := c.store.ListStockEntries(ctx)
	if err != nil {
		return fmt.Errorf("load stock entries: %w", err)
	}
	desklogEntries, err := c.store.ListDesklogEntries(ctx)
	if err != nil {
		return fmt.Errorf("load desklog: %w", err)
	}

	// At least one user must exist for the application to function.
	if len(users) == 0 {
		admin := defaultAdmin()
		if err := c.store.AddUser(ctx, admin); err != nil {
			return fmt.Errorf("bootstrap default admin: %w", err)
		}
		users = append(users, admin)
	}

	c.users = users
	c.sources = sources
	c.locations = locations
	c.vehicles = vehicles
	c.stockEntries = stockEntries
	c.desklogEntries = desklogEntries

	c.currentUser = nil
	for i := range users {
		if users[i].Role == directory.RoleAdmin {
			u := users[i]
			c.currentUser = &u
			break
		}
	}
	if c.currentUser == nil && len(users) > 0 {
		u := users[0]
		c.currentUser = &u
	}

	c.initialized = true
	return nil
}

// =============================================================================
// SNAPSHOTS (read-only copies for the display layer)
// =============================================================================

// Users returns a copy of the user collection.
func (c *Controller) Users() []directory.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]directory.User, len(c.users))
	copy(out, c.users)
	return out
}

// Sources returns a copy of the source collection.
func (c *Controller) Sources() []directory.Source {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]directory.Source, len(c.sources))
	for i, s := range c.sources {
		s.SubCategories = append([]string(nil), s.SubCategories...)
		out[i] = s
	}
	return out
}

// Locations returns a copy of the location collection.
func (c *Controller) Locations() []directory.Location {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]directory.Location, len(c.locations))
	copy(out, c.locations)
	return out
}

// Vehicles returns a copy of the vehicle collection.
func (c *Controller) Vehicles() []inventory.Vehicle {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]inventory.Vehicle, len(c.vehicles))
	copy(out, c.vehicles)
	return out
}

// StockEntries returns a copy of the stock-number pairing log.
func (c *Controller) StockEntries() []inventory.StockNumberEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]inventory.StockNumberEntry, len(c.stockEntries))
	copy(out, c.stockEntries)
	return out
}

// DesklogEntries returns a copy of the desklog collection.
func (c *Controller) DesklogEntries() []desklog.Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]desklog.Entry, len(c.desklogEntries))
	copy(out, c.desklogEntries)
	return out
}

// CurrentUser returns the selected user, if any.
func (c *Controller) CurrentUser() (directory.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.currentUser == nil {
		return directory.User{}, false
	}
	return *c.currentUser, true
}

// SetCurrentUser selects the acting user by id. Pure in-memory
// selection; nothing is persisted.
func (c *Controller) SetCurrentUser(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.users {
		if c.users[i].ID == id {
			u := c.users[i]
			c.currentUser = &u
			return nil
		}
	}
	return fmt.Errorf("set current user %q: %w", id, ErrNotFound)
}

// =============================================================================
// USERS
// =============================================================================

// NewUser is the caller-supplied part of a user. Permissions are
// derived from the role and cannot be passed in.
type NewUser struct {
	Name  string
	Email string
	Role  directory.Role
}

// UserUpdate fully replaces a user's mutable fields, including role and
// permissions independently of each other.
type UserUpdate struct {
	Name        string
	Email       string
	Role        directory.Role
	Permissions directory.Permissions
}

// AddUser creates a user with role-derived permissions.
func (c *Controller) AddUser(ctx context.Context, in NewUser) (directory.User, error) {
	if in.Name == "" {
		return directory.User{}, invalidField("name", "required")
	}
	if !in.Role.Valid() {
		return directory.User{}, invalidField("role", fmt.Sprintf("unknown role %q", in.Role))
	}

	u := directory.User{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Email:       in.Email,
		Role:        in.Role,
		Permissions: directory.PermissionsForRole(in.Role),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.store.AddUser(ctx, u); err != nil {
		return directory.User{}, err
	}
	c.users = append(c.users, u)
	return u, nil
}

// UpdateUser replaces a user's fields by id.
func (c *Controller) UpdateUser(ctx context.Context, id string, in UserUpdate) (directory.User, error) {
	if !in.Role.Valid() {
		return directory.User{}, invalidField("role", fmt.Sprintf("unknown role %q", in.Role))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexByID(c.users, id, func(u directory.User) string { return u.ID })
	if i < 0 {
		return directory.User{}, fmt.Errorf("update user %q: %w", id, ErrNotFound)
	}

	u := directory.User{
		ID:          id,
		Name:        in.Name,
		Email:       in.Email,
		Role:        in.Role,
		Permissions: in.Permissions,
	}
	if err := c.store.PutUser(ctx, u); err != nil {
		return directory.User{}, err
	}
	c.users[i] = u
	if c.currentUser != nil && c.currentUser.ID == id {
		c.currentUser = &u
	}
	return u, nil
}

// DeleteUser removes a user by id. Deleting an absent id is a no-op.
func (c *Controller) DeleteUser(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.DeleteUser(ctx, id); err != nil {
		return err
	}
	c.users = removeByID(c.users, id, func(u directory.User) string { return u.ID })
	return nil
}

// =============================================================================
// SOURCES & LOCATIONS
// =============================================================================

// NewSource is the caller-supplied part of a source.
type NewSource struct {
	Location      string
	SubCategories []string
}

// AddSource creates a source. Sources are add-only.
func (c *Controller) AddSource(ctx context.Context, in NewSource) (directory.Source, error) {
	if in.Location == "" {
		return directory.Source{}, invalidField("location", "required")
	}

	s := directory.Source{
		ID:            uuid.NewString(),
		Location:      in.Location,
		SubCategories: append([]string(nil), in.SubCategories...),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.store.AddSource(ctx, s); err != nil {
		return directory.Source{}, err
	}
	c.sources = append(c.sources, s)
	return s, nil
}

// NewLocation is the caller-supplied part of a location.
type NewLocation struct {
	Name    string
	Address string
	City    string
	State   string
	Zip     string
}

// AddLocation creates a dealership location.
func (c *Controller) AddLocation(ctx context.Context, in NewLocation) (directory.Location, error) {
	if in.Name == "" {
		return directory.Location{}, invalidField("name", "required")
	}

	l := directory.Location{
		ID:      uuid.NewString(),
		Name:    in.Name,
		Address: in.Address,
		City:    in.City,
		State:   in.State,
		Zip:     in.Zip,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.store.AddLocation(ctx, l); err != nil {
		return directory.Location{}, err
	}
	c.locations = append(c.locations, l)
	return l, nil
}

// UpdateLocation replaces a location's fields by id.
func (c *Controller) UpdateLocation(ctx context.Context, id string, in NewLocation) (directory.Location, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexByID(c.locations, id, func(l directory.Location) string { return l.ID })
	if i < 0 {
		return directory.Location{}, fmt.Errorf("update location %q: %w", id, ErrNotFound)
	}

	l := directory.Location{
		ID:      id,
		Name:    in.Name,
		Address: in.Address,
		City:    in.City,
		State:   in.State,
		Zip:     in.Zip,
	}
	if err := c.store.PutLocation(ctx, l); err != nil {
		return directory.Location{}, err
	}
	c.locations[i] = l
	return l, nil
}

// DeleteLocation removes a location by id. Deleting an absent id is a
// no-op.
func (c *Controller) DeleteLocation(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.DeleteLocation(ctx, id); err != nil {
		return err
	}
	c.locations = removeByID(c.locations, id, func(l directory.Location) string { return l.ID })
	return nil
}

// =============================================================================
// VEHICLES
// =============================================================================

// NewVehicle is the caller-supplied part of a vehicle. The stock number
// is always assigned by the controller; there is no way to supply one.
type NewVehicle struct {
	Make              string
	Model             string
	Year              int
	VIN               string
	PurchaseDate      time.Time
	PurchasePrice     decimal.Decimal
	Buyer             string
	Source            inventory.SourceRef
	BluetoothDeviceID string
	Status            inventory.Status
}

// VehicleUpdate merges onto an existing vehicle. Nil fields are left
// untouched. The stock number is not part of the update surface at all.
type VehicleUpdate struct {
	Make              *string
	Model             *string
	Year              *int
	VIN               *string
	PurchaseDate      *time.Time
	PurchasePrice     *decimal.Decimal
	Buyer             *string
	Source            *inventory.SourceRef
	BluetoothDeviceID *string
	Status            *inventory.Status
}

// AddVehicle creates a vehicle with the next sequential stock number,
// computed from the lexicographically greatest one currently assigned.
func (c *Controller) AddVehicle(ctx context.Context, in NewVehicle) (inventory.Vehicle, error) {
	if in.Make == "" {
		return inventory.Vehicle{}, invalidField("make", "required")
	}
	if in.Model == "" {
		return inventory.Vehicle{}, invalidField("model", "required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var last string
	for i := range c.vehicles {
		if c.vehicles[i].StockNumber > last {
			last = c.vehicles[i].StockNumber
		}
	}
	stockNumber, err := inventory.NextStockNumber(last)
	if err != nil {
		return inventory.Vehicle{}, fmt.Errorf("assign stock number: %w", err)
	}

	v := inventory.Vehicle{
		ID:                uuid.NewString(),
		Make:              in.Make,
		Model:             in.Model,
		Year:              in.Year,
		VIN:               in.VIN,
		PurchaseDate:      in.PurchaseDate,
		PurchasePrice:     in.PurchasePrice,
		Buyer:             in.Buyer,
		Source:            in.Source,
		StockNumber:       stockNumber,
		BluetoothDeviceID: in.BluetoothDeviceID,
		Status:            in.Status,
	}

	if err := c.store.AddVehicle(ctx, v); err != nil {
		return inventory.Vehicle{}, err
	}
	c.vehicles = append(c.vehicles, v)
	return v, nil
}

// UpdateVehicle merges the supplied fields onto the stored record. The
// existing stock number is preserved unconditionally. Requires the
// editVehicles capability.
func (c *Controller) UpdateVehicle(ctx context.Context, id string, in VehicleUpdate) (inventory.Vehicle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireLocked(func(p directory.Permissions) bool { return p.EditVehicles }); err != nil {
		return inventory.Vehicle{}, err
	}

	i := indexByID(c.vehicles, id, func(v inventory.Vehicle) string { return v.ID })
	if i < 0 {
		return inventory.Vehicle{}, fmt.Errorf("update vehicle %q: %w", id, ErrNotFound)
	}

	v := c.vehicles[i]
	if in.Make != nil {
		v.Make = *in.Make
	}
	if in.Model != nil {
		v.Model = *in.Model
	}
	if in.Year != nil {
		v.Year = *in.Year
	}
	if in.VIN != nil {
		v.VIN = *in.VIN
	}
	if in.PurchaseDate != nil {
		v.PurchaseDate = *in.PurchaseDate
	}
	if in.PurchasePrice != nil {
		v.PurchasePrice = *in.PurchasePrice
	}
	if in.Buyer != nil {
		v.Buyer = *in.Buyer
	}
	if in.Source != nil {
		v.Source = *in.Source
	}
	if in.BluetoothDeviceID != nil {
		v.BluetoothDeviceID = *in.BluetoothDeviceID
	}
	if in.Status != nil {
		v.Status = *in.Status
	}

	if err := c.store.PutVehicle(ctx, v); err != nil {
		return inventory.Vehicle{}, err
	}
	c.vehicles[i] = v
	return v, nil
}

// DeleteVehicle removes a vehicle by id. Requires the deleteVehicles
// capability. A vehicle that has already been sold cannot be deleted.
// Deleting an absent id is a no-op.
func (c *Controller) DeleteVehicle(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireLocked(func(p directory.Permissions) bool { return p.DeleteVehicles }); err != nil {
		return err
	}

	i := indexByID(c.vehicles, id, func(v inventory.Vehicle) string { return v.ID })
	if i >= 0 && c.vehicles[i].Status.Sold {
		return fmt.Errorf("delete vehicle %q: %w", id, ErrVehicleSold)
	}

	if err := c.store.DeleteVehicle(ctx, id); err != nil {
		return err
	}
	c.vehicles = removeByID(c.vehicles, id, func(v inventory.Vehicle) string { return v.ID })
	return nil
}

// UpdateVehicleStatus sets the status of the vehicle with the given
// stock number. A missing stock number is a silent no-op: the deal flow
// references vehicles by stock number with no integrity guarantee.
func (c *Controller) UpdateVehicleStatus(ctx context.Context, stockNumber string, status inventory.Status) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setVehicleStatusLocked(ctx, stockNumber, status)
}

func (c *Controller) setVehicleStatusLocked(ctx context.Context, stockNumber string, status inventory.Status) error {
	for i := range c.vehicles {
		if c.vehicles[i].StockNumber != stockNumber {
			continue
		}
		v := c.vehicles[i]
		v.Status = status
		if err := c.store.PutVehicle(ctx, v); err != nil {
			return err
		}
		c.vehicles[i] = v
		return nil
	}
	return nil
}

// =============================================================================
// STOCK NUMBER ENTRIES (device pairing log)
// =============================================================================

// NewStockEntry pairs a stock number with a Bluetooth device id.
type NewStockEntry struct {
	StockNumber string
	DeviceID    string
}

// AddStockEntry records a stock-number/device pairing. Both fields are
// required; the pairing flow surfaces validation failures to the user.
func (c *Controller) AddStockEntry(ctx context.Context, in NewStockEntry) (inventory.StockNumberEntry, error) {
	if in.StockNumber == "" {
		return inventory.StockNumberEntry{}, invalidField("stockNumber", "required")
	}
	if in.DeviceID == "" {
		return inventory.StockNumberEntry{}, invalidField("deviceId", "required")
	}

	e := inventory.StockNumberEntry{
		ID:          uuid.NewString(),
		StockNumber: in.StockNumber,
		DeviceID:    in.DeviceID,
		CreatedAt:   time.Now().UTC(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.store.AddStockEntry(ctx, e); err != nil {
		return inventory.StockNumberEntry{}, err
	}
	c.stockEntries = append(c.stockEntries, e)
	return e, nil
}

// =============================================================================
// DESKLOG
// =============================================================================

// DesklogInput is the caller-supplied part of a desklog entry. The id
// and timestamps are system-assigned.
type DesklogInput struct {
	DealStatus   desklog.DealStatus
	DealType     desklog.DealType
	VehicleType  desklog.VehicleType
	RDR          string
	DealNumber   string
	Date         time.Time
	Customer     desklog.Customer
	StockNumber  string
	Salesperson  string
	SalesManager string
	FIManager    string
	FrontGross   decimal.Decimal
	BackGross    decimal.Decimal
	TotalGross   decimal.Decimal
	ACV          decimal.Decimal
	Allowance    decimal.Decimal
	Delta        decimal.Decimal
	Notes        string
}

func (in DesklogInput) validate() error {
	if !in.DealStatus.Valid() {
		return invalidField("dealStatus", fmt.Sprintf("unknown status %q", in.DealStatus))
	}
	if !in.DealType.Valid() {
		return invalidField("dealType", fmt.Sprintf("unknown type %q", in.DealType))
	}
	if !in.VehicleType.Valid() {
		return invalidField("vehicleType", fmt.Sprintf("unknown type %q", in.VehicleType))
	}
	return nil
}

func (in DesklogInput) entry(id string, now time.Time) desklog.Entry {
	return desklog.Entry{
		ID:           id,
		DealStatus:   in.DealStatus,
		DealType:     in.DealType,
		VehicleType:  in.VehicleType,
		RDR:          in.RDR,
		DealNumber:   in.DealNumber,
		Date:         in.Date,
		Customer:     in.Customer,
		StockNumber:  in.StockNumber,
		Salesperson:  in.Salesperson,
		SalesManager: in.SalesManager,
		FIManager:    in.FIManager,
		FrontGross:   in.FrontGross,
		BackGross:    in.BackGross,
		TotalGross:   in.TotalGross,
		ACV:          in.ACV,
		Allowance:    in.Allowance,
		Delta:        in.Delta,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// AddDesklogEntry records a sales transaction. Requires the editDeals
// capability. A Delivered entry marks the referenced vehicle sold.
func (c *Controller) AddDesklogEntry(ctx context.Context, in DesklogInput) (desklog.Entry, error) {
	if err := in.validate(); err != nil {
		return desklog.Entry{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireLocked(func(p directory.Permissions) bool { return p.EditDeals }); err != nil {
		return desklog.Entry{}, err
	}

	e := in.entry(uuid.NewString(), time.Now().UTC())
	if err := c.store.AddDesklogEntry(ctx, e); err != nil {
		return desklog.Entry{}, err
	}
	c.desklogEntries = append(c.desklogEntries, e)

	if err := c.applyDeliveryLocked(ctx, e); err != nil {
		return desklog.Entry{}, err
	}
	return e, nil
}

// UpdateDesklogEntry replaces a sales transaction by id, refreshing its
// timestamps. Requires the editDeals capability. A resulting Delivered
// status marks the referenced vehicle sold.
func (c *Controller) UpdateDesklogEntry(ctx context.Context, id string, in DesklogInput) (desklog.Entry, error) {
	if err := in.validate(); err != nil {
		return desklog.Entry{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireLocked(func(p directory.Permissions) bool { return p.EditDeals }); err != nil {
		return desklog.Entry{}, err
	}

	i := indexByID(c.desklogEntries, id, func(e desklog.Entry) string { return e.ID })
	if i < 0 {
		return desklog.Entry{}, fmt.Errorf("update desklog entry %q: %w", id, ErrNotFound)
	}

	e := in.entry(id, time.Now().UTC())
	if err := c.store.PutDesklogEntry(ctx, e); err != nil {
		return desklog.Entry{}, err
	}
	c.desklogEntries[i] = e

	if err := c.applyDeliveryLocked(ctx, e); err != nil {
		return desklog.Entry{}, err
	}
	return e, nil
}

// applyDeliveryLocked performs the one cross-entity rule: a Delivered
// deal marks the vehicle with the matching stock number as sold with
// that deal type. No match means no write and no error.
func (c *Controller) applyDeliveryLocked(ctx context.Context, e desklog.Entry) error {
	if e.DealStatus != desklog.StatusDelivered {
		return nil
	}
	return c.setVehicleStatusLocked(ctx, e.StockNumber, inventory.Sold(e.DealType))
}

// DeleteDesklogEntry removes a sales transaction by id. Requires the
// deleteDeals capability. Deleting an absent id is a no-op.
func (c *Controller) DeleteDesklogEntry(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireLocked(func(p directory.Permissions) bool { return p.DeleteDeals }); err != nil {
		return err
	}

	if err := c.store.DeleteDesklogEntry(ctx, id); err != nil {
		return err
	}
	c.desklogEntries = removeByID(c.desklogEntries, id, func(e desklog.Entry) string { return e.ID })
	return nil
}

// DesklogByStatus returns entries with exactly the given status.
func (c *Controller) DesklogByStatus(ctx context.Context, status desklog.DealStatus) ([]desklog.Entry, error) {
	return c.store.DesklogByStatus(ctx, status)
}

// DesklogByDateRange returns entries whose Date falls in [from, to].
func (c *Controller) DesklogByDateRange(ctx context.Context, from, to time.Time) ([]desklog.Entry, error) {
	return c.store.DesklogByDateRange(ctx, from, to)
}

// =============================================================================
// HELPERS
// =============================================================================

// requireLocked checks a capability of the current user. Caller holds mu.
func (c *Controller) requireLocked(has func(directory.Permissions) bool) error {
	if c.currentUser == nil {
		return ErrNoCurrentUser
	}
	if !has(c.currentUser.Permissions) {
		return ErrPermissionDenied
	}
	return nil
}

func indexByID[T any](items []T, id string, idOf func(T) string) int {
	for i := range items {
		if idOf(items[i]) == id {
			return i
		}
	}
	return -1
}

func removeByID[T any](items []T, id string, idOf func(T) string) []T {
	out := items[:0]
	for _, it := range items {
		if idOf(it) != id {
			out = append(out, it)
		}
	}
	return out
}
