/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types
  decouple the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

MONEY:
  Money fields are decimal.Decimal: requests may send them as JSON
  numbers or strings, responses render them as exact decimal strings.

DATES:
  Calendar dates (purchase date, deal date) use YYYY-MM-DD. System
  timestamps use RFC3339.

VALIDATION:
  Validation is done in handlers and the state controller, not in DTOs.
  DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/lotworks/dealdesk/directory"
)

// =============================================================================
// USERS
// =============================================================================

// UserDTO represents a user in API responses.
type UserDTO struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Email       string                `json:"email"`
	Role        string                `json:"role"`
	Permissions directory.Permissions `json:"permissions"`
}

// CreateUserRequest is the request to create a user. Permissions are
// derived from the role and cannot be supplied.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UpdateUserRequest replaces a user's fields, role and permissions
// independently of each other.
type UpdateUserRequest struct {
	Name        string                `json:"name"`
	Email       string                `json:"email"`
	Role        string                `json:"role"`
	Permissions directory.Permissions `json:"permissions"`
}

// SetCurrentUserRequest selects the acting user.
type SetCurrentUserRequest struct {
	ID string `json:"id"`
}

// =============================================================================
// SOURCES & LOCATIONS
// =============================================================================

// SourceDTO represents an acquisition source in API responses.
type SourceDTO struct {
	ID            string   `json:"id"`
	Location      string   `json:"location"`
	SubCategories []string `json:"sub_categories"`
}

// CreateSourceRequest is the request to create a source.
type CreateSourceRequest struct {
	Location      string   `json:"location"`
	SubCategories []string `json:"sub_categories"`
}

// LocationDTO represents a dealership site in API responses.
type LocationDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}

// LocationRequest is the request body for creating or updating a
// location.
type LocationRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}

// =============================================================================
// VEHICLES
// =============================================================================

// SourceRefDTO is the by-value source reference carried on a vehicle.
type SourceRefDTO struct {
	Location    string `json:"location"`
	SubCategory string `json:"sub_category"`
}

// VehicleDTO represents a vehicle in API responses.
type VehicleDTO struct {
	ID                string          `json:"id"`
	Make              string          `json:"make"`
	Model             string          `json:"model"`
	Year              int             `json:"year"`
	VIN               string          `json:"vin"`
	PurchaseDate      string          `json:"purchase_date"`
	PurchasePrice     decimal.Decimal `json:"purchase_price"`
	Buyer             string          `json:"buyer"`
	Source            SourceRefDTO    `json:"source"`
	StockNumber       string          `json:"stock_number"`
	BluetoothDeviceID string          `json:"bluetooth_device_id,omitempty"`
	Status            string          `json:"status"`
}

// CreateVehicleRequest is the request to create a vehicle. A supplied
// stock number is ignored; the controller always assigns one.
type CreateVehicleRequest struct {
	Make              string          `json:"make"`
	Model             string          `json:"model"`
	Year              int             `json:"year"`
	VIN               string          `json:"vin"`
	PurchaseDate      string          `json:"purchase_date"`
	PurchasePrice     decimal.Decimal `json:"purchase_price"`
	Buyer             string          `json:"buyer"`
	Source            SourceRefDTO    `json:"source"`
	BluetoothDeviceID string          `json:"bluetooth_device_id,omitempty"`
	StockNumber       string          `json:"stock_number,omitempty"`
}

// UpdateVehicleRequest merges onto an existing vehicle; absent fields
// are left untouched. A supplied stock number is ignored.
type UpdateVehicleRequest struct {
	Make              *string          `json:"make,omitempty"`
	Model             *string          `json:"model,omitempty"`
	Year              *int             `json:"year,omitempty"`
	VIN               *string          `json:"vin,omitempty"`
	PurchaseDate      *string          `json:"purchase_date,omitempty"`
	PurchasePrice     *decimal.Decimal `json:"purchase_price,omitempty"`
	Buyer             *string          `json:"buyer,omitempty"`
	Source            *SourceRefDTO    `json:"source,omitempty"`
	BluetoothDeviceID *string          `json:"bluetooth_device_id,omitempty"`
	Status            *string          `json:"status,omitempty"`
	StockNumber       string           `json:"stock_number,omitempty"`
}

// =============================================================================
// STOCK ENTRIES
// =============================================================================

// StockEntryDTO represents a stock-number/device pairing.
type StockEntryDTO struct {
	ID          string `json:"id"`
	StockNumber string `json:"stock_number"`
	DeviceID    string `json:"device_id"`
	CreatedAt   string `json:"created_at"`
}

// CreateStockEntryRequest records a pairing from the device flow.
type CreateStockEntryRequest struct {
	StockNumber string `json:"stock_number"`
	DeviceID    string `json:"device_id"`
}

// =============================================================================
// DESKLOG
// =============================================================================

// CustomerDTO is the buyer-side contact on a deal.
type CustomerDTO struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// DesklogEntryDTO represents a sales transaction in API responses.
type DesklogEntryDTO struct {
	ID           string          `json:"id"`
	DealStatus   string          `json:"deal_status"`
	DealType     string          `json:"deal_type"`
	VehicleType  string          `json:"vehicle_type"`
	RDR          string          `json:"rdr"`
	DealNumber   string          `json:"deal_number"`
	Date         string          `json:"date"`
	Customer     CustomerDTO     `json:"customer"`
	StockNumber  string          `json:"stock_number"`
	Salesperson  string          `json:"salesperson"`
	SalesManager string          `json:"sales_manager"`
	FIManager    string          `json:"fi_manager"`
	FrontGross   decimal.Decimal `json:"front_gross"`
	BackGross    decimal.Decimal `json:"back_gross"`
	TotalGross   decimal.Decimal `json:"total_gross"`
	ACV          decimal.Decimal `json:"acv"`
	Allowance    decimal.Decimal `json:"allowance"`
	Delta        decimal.Decimal `json:"delta"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

// DesklogEntryRequest is the request body for creating or updating a
// desklog entry. The timestamps are system-assigned.
type DesklogEntryRequest struct {
	DealStatus   string          `json:"deal_status"`
	DealType     string          `json:"deal_type"`
	VehicleType  string          `json:"vehicle_type"`
	RDR          string          `json:"rdr"`
	DealNumber   string          `json:"deal_number"`
	Date         string          `json:"date"`
	Customer     CustomerDTO     `json:"customer"`
	StockNumber  string          `json:"stock_number"`
	Salesperson  string          `json:"salesperson"`
	SalesManager string          `json:"sales_manager"`
	FIManager    string          `json:"fi_manager"`
	FrontGross   decimal.Decimal `json:"front_gross"`
	BackGross    decimal.Decimal `json:"back_gross"`
	TotalGross   decimal.Decimal `json:"total_gross"`
	ACV          decimal.Decimal `json:"acv"`
	Allowance    decimal.Decimal `json:"allowance"`
	Delta        decimal.Decimal `json:"delta"`
	Notes        string          `json:"notes"`
}

// ErrorResponse is the JSON body for failed requests.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
