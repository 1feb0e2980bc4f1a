/*
Package sqlite provides the SQLite-backed implementation of the storage
interface.

PURPOSE:
  Implements appstate.Store using SQLite: one table per record
  collection (users, sources, locations, vehicles, stock_entries,
  desklog), plus the two secondary desklog lookups (by deal status and
  by date range).

KEY TABLES:
  users:         Accounts with role and the five capability flags
  sources:       Acquisition channels (sub-categories as JSON)
  locations:     Dealership sites
  vehicles:      Purchased vehicles with their assigned stock numbers
  stock_entries: Stock-number/Bluetooth-device pairing log
  desklog:       Sales transactions with gross-profit figures

INDEXES:
  idx_desklog_status, idx_desklog_date back the two secondary lookups.
  idx_vehicles_stock backs the stock-number match in the deal flow.

DATA ENCODING:
  Timestamps are RFC3339 TEXT. Money is decimal TEXT (exact, no float
  drift). Source sub-categories are a JSON array in one column.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety; the controller is the single
  writer, the mutex only keeps overlapping reads coherent.

WAL MODE:
  SQLite is opened with WAL for better read concurrency and crash
  recovery.

USAGE:
  store, err := sqlite.New("./data/dealdesk.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - appstate/store.go: Interface definition and contract
  - store/memory/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/lotworks/dealdesk/appstate"
	"github.com/lotworks/dealdesk/desklog"
	"github.com/lotworks/dealdesk/directory"
	"github.com/lotworks/dealdesk/inventory"
)

// Store implements appstate.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ appstate.Store = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema. Additive only: new tables and
// indexes may be introduced without discarding existing collections.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		role TEXT NOT NULL,
		edit_vehicles BOOLEAN NOT NULL DEFAULT FALSE,
		delete_vehicles BOOLEAN NOT NULL DEFAULT FALSE,
		view_deals BOOLEAN NOT NULL DEFAULT FALSE,
		edit_deals BOOLEAN NOT NULL DEFAULT FALSE,
		delete_deals BOOLEAN NOT NULL DEFAULT FALSE
	);

	CREATE TABLE IF NOT EXISTS sources (
		id TEXT PRIMARY KEY,
		location TEXT NOT NULL,
		sub_categories_json TEXT
	);

	CREATE TABLE IF NOT EXISTS locations (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT,
		city TEXT,
		state TEXT,
		zip TEXT
	);

	CREATE TABLE IF NOT EXISTS vehicles (
		id TEXT PRIMARY KEY,
		make TEXT NOT NULL,
		model TEXT NOT NULL,
		year INTEGER,
		vin TEXT,
		purchase_date TEXT,
		purchase_price TEXT,
		buyer TEXT,
		source_location TEXT,
		source_sub_category TEXT,
		stock_number TEXT NOT NULL,
		bluetooth_device_id TEXT,
		status TEXT NOT NULL DEFAULT 'Available'
	);

	CREATE INDEX IF NOT EXISTS idx_vehicles_stock
		ON vehicles(stock_number);

	CREATE TABLE IF NOT EXISTS stock_entries (
		id TEXT PRIMARY KEY,
		stock_number TEXT NOT NULL,
		device_id TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS desklog (
		id TEXT PRIMARY KEY,
		deal_status TEXT NOT NULL,
		deal_type TEXT NOT NULL,
		vehicle_type TEXT NOT NULL,
		rdr TEXT,
		deal_number TEXT,
		date TEXT NOT NULL,
		customer_name TEXT,
		customer_phone TEXT,
		customer_email TEXT,
		stock_number TEXT,
		salesperson TEXT,
		sales_manager TEXT,
		fi_manager TEXT,
		front_gross TEXT,
		back_gross TEXT,
		total_gross TEXT,
		acv TEXT,
		allowance TEXT,
		delta TEXT,
		notes TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_desklog_status
		ON desklog(deal_status);
	CREATE INDEX IF NOT EXISTS idx_desklog_date
		ON desklog(date);
	CREATE INDEX IF NOT EXISTS idx_desklog_stock
		ON desklog(stock_number);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// USERS
// =============================================================================

// ListUsers returns all users.
func (s *Store) ListUsers(ctx context.Context) ([]directory.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, role,
		        edit_vehicles, delete_vehicles, view_deals, edit_deals, delete_deals
		 FROM users ORDER BY rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []directory.User
	for rows.Next() {
		var u directory.User
		var email sql.NullString
		if err := rows.Scan(&u.ID, &u.Name, &email, &u.Role,
			&u.Permissions.EditVehicles, &u.Permissions.DeleteVehicles,
			&u.Permissions.ViewDeals, &u.Permissions.EditDeals,
			&u.Permissions.DeleteDeals); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		u.Email = email.String
		users = append(users, u)
	}
	return users, rows.Err()
}

// AddUser inserts a user; a duplicate id fails fast.
func (s *Store) AddUser(ctx context.Context, u directory.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users
		 (id, name, email, role, edit_vehicles, delete_vehicles, view_deals, edit_deals, delete_deals)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, string(u.Role),
		u.Permissions.EditVehicles, u.Permissions.DeleteVehicles,
		u.Permissions.ViewDeals, u.Permissions.EditDeals, u.Permissions.DeleteDeals,
	)
	return addErr("user", u.ID, err)
}

// PutUser replaces a user by id (upsert).
func (s *Store) PutUser(ctx context.Context, u directory.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users
		 (id, name, email, role, edit_vehicles, delete_vehicles, view_deals, edit_deals, delete_deals)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			role = excluded.role,
			edit_vehicles = excluded.edit_vehicles,
			delete_vehicles = excluded.delete_vehicles,
			view_deals = excluded.view_deals,
			edit_deals = excluded.edit_deals,
			delete_deals = excluded.delete_deals`,
		u.ID, u.Name, u.Email, string(u.Role),
		u.Permissions.EditVehicles, u.Permissions.DeleteVehicles,
		u.Permissions.ViewDeals, u.Permissions.EditDeals, u.Permissions.DeleteDeals,
	)
	return err
}

// DeleteUser removes a user. Deleting an absent id is a no-op.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	return err
}

// =============================================================================
// SOURCES
// =============================================================================

// ListSources returns all sources.
func (s *Store) ListSources(ctx context.Context) ([]directory.Source, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, location, sub_categories_json FROM sources ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to query sources: %w", err)
	}
	defer rows.Close()

	var sources []directory.Source
	for rows.Next() {
		var src directory.Source
		var subsJSON sql.NullString
		if err := rows.Scan(&src.ID, &src.Location, &subsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan source: %w", err)
		}
		if subsJSON.Valid && subsJSON.String != "" {
			if err := json.Unmarshal([]byte(subsJSON.String), &src.SubCategories); err != nil {
				return nil, fmt.Errorf("failed to decode sub-categories: %w", err)
			}
		}
		sources = append(sources, src)
	}
	return sources, rows.Err()
}

// AddSource inserts a source; a duplicate id fails fast. Sources have
// no update or delete path.
func (s *Store) AddSource(ctx context.Context, src directory.Source) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	subsJSON, err := json.Marshal(src.SubCategories)
	if err != nil {
		return fmt.Errorf("failed to encode sub-categories: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO sources (id, location, sub_categories_json) VALUES (?, ?, ?)",
		src.ID, src.Location, string(subsJSON),
	)
	return addErr("source", src.ID, err)
}

// =============================================================================
// LOCATIONS
// =============================================================================

// ListLocations returns all dealership locations.
func (s *Store) ListLocations(ctx context.Context) ([]directory.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, address, city, state, zip FROM locations ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	var locations []directory.Location
	for rows.Next() {
		var l directory.Location
		var address, city, state, zip sql.NullString
		if err := rows.Scan(&l.ID, &l.Name, &address, &city, &state, &zip); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		l.Address = address.String
		l.City = city.String
		l.State = state.String
		l.Zip = zip.String
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

// AddLocation inserts a location; a duplicate id fails fast.
func (s *Store) AddLocation(ctx context.Context, l directory.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO locations (id, name, address, city, state, zip) VALUES (?, ?, ?, ?, ?, ?)",
		l.ID, l.Name, l.Address, l.City, l.State, l.Zip,
	)
	return addErr("location", l.ID, err)
}

// PutLocation replaces a location by id (upsert).
func (s *Store) PutLocation(ctx context.Context, l directory.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO locations (id, name, address, city, state, zip)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			address = excluded.address,
			city = excluded.city,
			state = excluded.state,
			zip = excluded.zip`,
		l.ID, l.Name, l.Address, l.City, l.State, l.Zip,
	)
	return err
}

// DeleteLocation removes a location. Deleting an absent id is a no-op.
func (s *Store) DeleteLocation(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM locations WHERE id = ?", id)
	return err
}

// =============================================================================
// VEHICLES
// =============================================================================

const vehicleColumns = `id, make, model, year, vin, purchase_date, purchase_price,
	buyer, source_location, source_sub_category, stock_number, bluetooth_device_id, status`

// ListVehicles returns all vehicles ordered by stock number.
func (s *Store) ListVehicles(ctx context.Context) ([]inventory.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+vehicleColumns+" FROM vehicles ORDER BY stock_number")
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []inventory.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

func scanVehicle(rows *sql.Rows) (inventory.Vehicle, error) {
	var (
		v            inventory.Vehicle
		vin          sql.NullString
		purchaseDate sql.NullString
		price        sql.NullString
		buyer        sql.NullString
		srcLocation  sql.NullString
		srcSub       sql.NullString
		deviceID     sql.NullString
		status       string
	)

	err := rows.Scan(&v.ID, &v.Make, &v.Model, &v.Year, &vin, &purchaseDate,
		&price, &buyer, &srcLocation, &srcSub, &v.StockNumber, &deviceID, &status)
	if err != nil {
		return v, fmt.Errorf("failed to scan vehicle: %w", err)
	}

	v.VIN = vin.String
	v.Buyer = buyer.String
	v.Source = inventory.SourceRef{Location: srcLocation.String, SubCategory: srcSub.String}
	v.BluetoothDeviceID = deviceID.String
	if purchaseDate.Valid {
		v.PurchaseDate, _ = time.Parse(time.RFC3339, purchaseDate.String)
	}
	v.PurchasePrice = parseDecimal(price.String)
	v.Status, err = inventory.ParseStatus(status)
	if err != nil {
		return v, fmt.Errorf("failed to decode vehicle status: %w", err)
	}
	return v, nil
}

func (s *Store) execVehicle(ctx context.Context, query string, v inventory.Vehicle) error {
	_, err := s.db.ExecContext(ctx, query,
		v.ID, v.Make, v.Model, v.Year, v.VIN,
		v.PurchaseDate.UTC().Format(time.RFC3339),
		v.PurchasePrice.String(),
		v.Buyer, v.Source.Location, v.Source.SubCategory,
		v.StockNumber, v.BluetoothDeviceID, v.Status.String(),
	)
	return err
}

// AddVehicle inserts a vehicle; a duplicate id fails fast.
func (s *Store) AddVehicle(ctx context.Context, v inventory.Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.execVehicle(ctx,
		`INSERT INTO vehicles (`+vehicleColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, v)
	return addErr("vehicle", v.ID, err)
}

// PutVehicle replaces a vehicle by id (upsert).
func (s *Store) PutVehicle(ctx context.Context, v inventory.Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.execVehicle(ctx,
		`INSERT INTO vehicles (`+vehicleColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			make = excluded.make,
			model = excluded.model,
			year = excluded.year,
			vin = excluded.vin,
			purchase_date = excluded.purchase_date,
			purchase_price = excluded.purchase_price,
			buyer = excluded.buyer,
			source_location = excluded.source_location,
			source_sub_category = excluded.source_sub_category,
			stock_number = excluded.stock_number,
			bluetooth_device_id = excluded.bluetooth_device_id,
			status = excluded.status`, v)
}

// DeleteVehicle removes a vehicle. Deleting an absent id is a no-op.
func (s *Store) DeleteVehicle(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM vehicles WHERE id = ?", id)
	return err
}

// =============================================================================
// STOCK ENTRIES
// =============================================================================

// ListStockEntries returns the stock-number/device pairing log.
func (s *Store) ListStockEntries(ctx context.Context) ([]inventory.StockNumberEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, stock_number, device_id, created_at FROM stock_entries ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("failed to query stock entries: %w", err)
	}
	defer rows.Close()

	var entries []inventory.StockNumberEntry
	for rows.Next() {
		var e inventory.StockNumberEntry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.StockNumber, &e.DeviceID, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan stock entry: %w", err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// AddStockEntry inserts a pairing record; a duplicate id fails fast.
// Entries are never updated or deleted.
func (s *Store) AddStockEntry(ctx context.Context, e inventory.StockNumberEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO stock_entries (id, stock_number, device_id, created_at) VALUES (?, ?, ?, ?)",
		e.ID, e.StockNumber, e.DeviceID, e.CreatedAt.UTC().Format(time.RFC3339),
	)
	return addErr("stock entry", e.ID, err)
}

// =============================================================================
// DESKLOG
// =============================================================================

const desklogColumns = `id, deal_status, deal_type, vehicle_type, rdr, deal_number, date,
	customer_name, customer_phone, customer_email, stock_number,
	salesperson, sales_manager, fi_manager,
	front_gross, back_gross, total_gross, acv, allowance, delta,
	notes, created_at, updated_at`

// ListDesklogEntries returns all desklog entries ordered by deal date.
func (s *Store) ListDesklogEntries(ctx context.Context) ([]desklog.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryDesklog(ctx,
		"SELECT "+desklogColumns+" FROM desklog ORDER BY date, rowid")
}

// DesklogByStatus returns entries whose deal status matches exactly.
func (s *Store) DesklogByStatus(ctx context.Context, status desklog.DealStatus) ([]desklog.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryDesklog(ctx,
		"SELECT "+desklogColumns+" FROM desklog WHERE deal_status = ? ORDER BY date, rowid",
		string(status))
}

// DesklogByDateRange returns entries with date in [from, to], bounds
// inclusive. The filter is on the entry's deal date, not created_at.
func (s *Store) DesklogByDateRange(ctx context.Context, from, to time.Time) ([]desklog.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryDesklog(ctx,
		"SELECT "+desklogColumns+" FROM desklog WHERE date >= ? AND date <= ? ORDER BY date, rowid",
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
}

func (s *Store) queryDesklog(ctx context.Context, query string, args ...any) ([]desklog.Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query desklog: %w", err)
	}
	defer rows.Close()

	var entries []desklog.Entry
	for rows.Next() {
		e, err := scanDesklogEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanDesklogEntry(rows *sql.Rows) (desklog.Entry, error) {
	var (
		e                     desklog.Entry
		rdr, dealNumber       sql.NullString
		custName, custPhone   sql.NullString
		custEmail             sql.NullString
		stockNumber           sql.NullString
		salesperson, salesMgr sql.NullString
		fiManager, notes      sql.NullString
		front, back, total    sql.NullString
		acv, allowance, delta sql.NullString
		date, created, updated string
	)

	err := rows.Scan(&e.ID, &e.DealStatus, &e.DealType, &e.VehicleType,
		&rdr, &dealNumber, &date,
		&custName, &custPhone, &custEmail, &stockNumber,
		&salesperson, &salesMgr, &fiManager,
		&front, &back, &total, &acv, &allowance, &delta,
		&notes, &created, &updated)
	if err != nil {
		return e, fmt.Errorf("failed to scan desklog entry: %w", err)
	}

	e.RDR = rdr.String
	e.DealNumber = dealNumber.String
	e.Customer = desklog.Customer{Name: custName.String, Phone: custPhone.String, Email: custEmail.String}
	e.StockNumber = stockNumber.String
	e.Salesperson = salesperson.String
	e.SalesManager = salesMgr.String
	e.FIManager = fiManager.String
	e.Notes = notes.String
	e.FrontGross = parseDecimal(front.String)
	e.BackGross = parseDecimal(back.String)
	e.TotalGross = parseDecimal(total.String)
	e.ACV = parseDecimal(acv.String)
	e.Allowance = parseDecimal(allowance.String)
	e.Delta = parseDecimal(delta.String)
	e.Date, _ = time.Parse(time.RFC3339, date)
	e.CreatedAt, _ = time.Parse(time.RFC3339, created)
	e.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return e, nil
}

func (s *Store) execDesklog(ctx context.Context, query string, e desklog.Entry) error {
	_, err := s.db.ExecContext(ctx, query,
		e.ID, string(e.DealStatus), string(e.DealType), string(e.VehicleType),
		e.RDR, e.DealNumber, e.Date.UTC().Format(time.RFC3339),
		e.Customer.Name, e.Customer.Phone, e.Customer.Email, e.StockNumber,
		e.Salesperson, e.SalesManager, e.FIManager,
		e.FrontGross.String(), e.BackGross.String(), e.TotalGross.String(),
		e.ACV.String(), e.Allowance.String(), e.Delta.String(),
		e.Notes,
		e.CreatedAt.UTC().Format(time.RFC3339), e.UpdatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// AddDesklogEntry inserts an entry; a duplicate id fails fast.
func (s *Store) AddDesklogEntry(ctx context.Context, e desklog.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.execDesklog(ctx,
		`INSERT INTO desklog (`+desklogColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, e)
	return addErr("desklog entry", e.ID, err)
}

// PutDesklogEntry replaces an entry by id (upsert).
func (s *Store) PutDesklogEntry(ctx context.Context, e desklog.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.execDesklog(ctx,
		`INSERT INTO desklog (`+desklogColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			deal_status = excluded.deal_status,
			deal_type = excluded.deal_type,
			vehicle_type = excluded.vehicle_type,
			rdr = excluded.rdr,
			deal_number = excluded.deal_number,
			date = excluded.date,
			customer_name = excluded.customer_name,
			customer_phone = excluded.customer_phone,
			customer_email = excluded.customer_email,
			stock_number = excluded.stock_number,
			salesperson = excluded.salesperson,
			sales_manager = excluded.sales_manager,
			fi_manager = excluded.fi_manager,
			front_gross = excluded.front_gross,
			back_gross = excluded.back_gross,
			total_gross = excluded.total_gross,
			acv = excluded.acv,
			allowance = excluded.allowance,
			delta = excluded.delta,
			notes = excluded.notes,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at`, e)
}

// DeleteDesklogEntry removes an entry. Deleting an absent id is a no-op.
func (s *Store) DeleteDesklogEntry(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM desklog WHERE id = ?", id)
	return err
}

// =============================================================================
// HELPERS
// =============================================================================

// addErr maps a unique-constraint violation on an insert to the
// duplicate-id sentinel, leaving other errors wrapped.
func addErr(kind, id string, err error) error {
	if err == nil {
		return nil
	}
	if isUniqueConstraintError(err) {
		return fmt.Errorf("add %s %q: %w", kind, id, appstate.ErrDuplicateID)
	}
	return fmt.Errorf("failed to add %s: %w", kind, err)
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func parseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
