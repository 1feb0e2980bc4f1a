/*
handlers.go - HTTP API handlers for the dealership record manager

PURPOSE:
  Exposes the application state controller via REST. Handles HTTP
  request/response, JSON serialization, and delegates every mutation to
  the controller (the sole writer).

ENDPOINTS:
  Users:
    GET    /api/users                  List users
    POST   /api/users                  Create user (permissions derived)
    PUT    /api/users/{id}             Replace user fields
    DELETE /api/users/{id}             Delete user
    GET    /api/users/current          The selected acting user
    POST   /api/users/current          Select the acting user

  Reference data:
    GET/POST          /api/sources     Sources are add-only
    GET/POST          /api/locations
    PUT/DELETE        /api/locations/{id}

  Inventory:
    GET/POST          /api/vehicles
    PUT/DELETE        /api/vehicles/{id}
    GET/POST          /api/stock-entries

  Desklog:
    GET    /api/desklog                ?status= or ?from=&to= filters
    POST   /api/desklog
    PUT    /api/desklog/{id}
    DELETE /api/desklog/{id}

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 403: Capability check failed
  - 404: Record not found
  - 409: Duplicate id, deleting a sold vehicle
  - 500: Internal errors

AUTHORIZATION:
  The controller enforces the capability checks on vehicle/desklog
  mutations; this layer additionally hides the desklog read surface
  from users without viewDeals, mirroring the original UI.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lotworks/dealdesk/appstate"
	"github.com/lotworks/dealdesk/desklog"
	"github.com/lotworks/dealdesk/directory"
	"github.com/lotworks/dealdesk/inventory"
)

const dateLayout = "2006-01-02"

// Handler holds the handlers' single dependency: the state controller.
type Handler struct {
	State *appstate.Controller
}

// NewHandler creates a handler over the given controller.
func NewHandler(state *appstate.Controller) *Handler {
	return &Handler{State: state}
}

// =============================================================================
// USER HANDLERS
// =============================================================================

// ListUsers returns all users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users := h.State.Users()
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = userDTO(u)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateUser creates a user. Permissions are derived from the role;
// any supplied ones are not even part of the request shape.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	u, err := h.State.AddUser(r.Context(), appstate.NewUser{
		Name:  req.Name,
		Email: req.Email,
		Role:  directory.Role(req.Role),
	})
	if err != nil {
		writeFailure(w, "Failed to create user", err)
		return
	}
	writeJSON(w, http.StatusCreated, userDTO(u))
}

// UpdateUser replaces a user's fields, including role and permissions.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	u, err := h.State.UpdateUser(r.Context(), id, appstate.UserUpdate{
		Name:        req.Name,
		Email:       req.Email,
		Role:        directory.Role(req.Role),
		Permissions: req.Permissions,
	})
	if err != nil {
		writeFailure(w, "Failed to update user", err)
		return
	}
	writeJSON(w, http.StatusOK, userDTO(u))
}

// DeleteUser removes a user by id.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.State.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeFailure(w, "Failed to delete user", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetCurrentUser returns the selected acting user.
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	u, ok := h.State.CurrentUser()
	if !ok {
		writeError(w, http.StatusNotFound, "No current user selected", nil)
		return
	}
	writeJSON(w, http.StatusOK, userDTO(u))
}

// SetCurrentUser selects the acting user by id. In-memory only.
func (h *Handler) SetCurrentUser(w http.ResponseWriter, r *http.Request) {
	var req SetCurrentUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.State.SetCurrentUser(req.ID); err != nil {
		writeFailure(w, "Failed to set current user", err)
		return
	}
	u, _ := h.State.CurrentUser()
	writeJSON(w, http.StatusOK, userDTO(u))
}

// =============================================================================
// SOURCE & LOCATION HANDLERS
// =============================================================================

// ListSources returns all acquisition sources.
func (h *Handler) ListSources(w http.ResponseWriter, r *http.Request) {
	sources := h.State.Sources()
	dtos := make([]SourceDTO, len(sources))
	for i, s := range sources {
		dtos[i] = SourceDTO{ID: s.ID, Location: s.Location, SubCategories: s.SubCategories}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateSource creates a source. There is no update or delete.
func (h *Handler) CreateSource(w http.ResponseWriter, r *http.Request) {
	var req CreateSourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	s, err := h.State.AddSource(r.Context(), appstate.NewSource{
		Location:      req.Location,
		SubCategories: req.SubCategories,
	})
	if err != nil {
		writeFailure(w, "Failed to create source", err)
		return
	}
	writeJSON(w, http.StatusCreated, SourceDTO{ID: s.ID, Location: s.Location, SubCategories: s.SubCategories})
}

// ListLocations returns all dealership locations.
func (h *Handler) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations := h.State.Locations()
	dtos := make([]LocationDTO, len(locations))
	for i, l := range locations {
		dtos[i] = locationDTO(l)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateLocation creates a dealership location.
func (h *Handler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var req LocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	l, err := h.State.AddLocation(r.Context(), locationInput(req))
	if err != nil {
		writeFailure(w, "Failed to create location", err)
		return
	}
	writeJSON(w, http.StatusCreated, locationDTO(l))
}

// UpdateLocation replaces a location's fields.
func (h *Handler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req LocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	l, err := h.State.UpdateLocation(r.Context(), id, locationInput(req))
	if err != nil {
		writeFailure(w, "Failed to update location", err)
		return
	}
	writeJSON(w, http.StatusOK, locationDTO(l))
}

// DeleteLocation removes a location by id.
func (h *Handler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	if err := h.State.DeleteLocation(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeFailure(w, "Failed to delete location", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// VEHICLE HANDLERS
// =============================================================================

// ListVehicles returns all vehicles.
func (h *Handler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles := h.State.Vehicles()
	dtos := make([]VehicleDTO, len(vehicles))
	for i, v := range vehicles {
		dtos[i] = vehicleDTO(v)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateVehicle creates a vehicle. The stock number is assigned by the
// controller; a supplied one is ignored.
func (h *Handler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req CreateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	purchaseDate, err := parseDate(req.PurchaseDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid purchase_date format (use YYYY-MM-DD)", err)
		return
	}

	v, err := h.State.AddVehicle(r.Context(), appstate.NewVehicle{
		Make:              req.Make,
		Model:             req.Model,
		Year:              req.Year,
		VIN:               req.VIN,
		PurchaseDate:      purchaseDate,
		PurchasePrice:     req.PurchasePrice,
		Buyer:             req.Buyer,
		Source:            inventory.SourceRef{Location: req.Source.Location, SubCategory: req.Source.SubCategory},
		BluetoothDeviceID: req.BluetoothDeviceID,
	})
	if err != nil {
		writeFailure(w, "Failed to create vehicle", err)
		return
	}
	writeJSON(w, http.StatusCreated, vehicleDTO(v))
}

// UpdateVehicle merges the supplied fields onto a vehicle. The stored
// stock number survives regardless of the payload.
func (h *Handler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	update := appstate.VehicleUpdate{
		Make:              req.Make,
		Model:             req.Model,
		Year:              req.Year,
		VIN:               req.VIN,
		PurchasePrice:     req.PurchasePrice,
		Buyer:             req.Buyer,
		BluetoothDeviceID: req.BluetoothDeviceID,
	}
	if req.PurchaseDate != nil {
		d, err := parseDate(*req.PurchaseDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid purchase_date format (use YYYY-MM-DD)", err)
			return
		}
		update.PurchaseDate = &d
	}
	if req.Source != nil {
		ref := inventory.SourceRef{Location: req.Source.Location, SubCategory: req.Source.SubCategory}
		update.Source = &ref
	}
	if req.Status != nil {
		st, err := inventory.ParseStatus(*req.Status)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid vehicle status", err)
			return
		}
		update.Status = &st
	}

	v, err := h.State.UpdateVehicle(r.Context(), id, update)
	if err != nil {
		writeFailure(w, "Failed to update vehicle", err)
		return
	}
	writeJSON(w, http.StatusOK, vehicleDTO(v))
}

// DeleteVehicle removes a vehicle by id. Sold vehicles are refused.
func (h *Handler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	if err := h.State.DeleteVehicle(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeFailure(w, "Failed to delete vehicle", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// STOCK ENTRY HANDLERS (device pairing flow)
// =============================================================================

// ListStockEntries returns the stock-number/device pairing log.
func (h *Handler) ListStockEntries(w http.ResponseWriter, r *http.Request) {
	entries := h.State.StockEntries()
	dtos := make([]StockEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = StockEntryDTO{
			ID:          e.ID,
			StockNumber: e.StockNumber,
			DeviceID:    e.DeviceID,
			CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateStockEntry records a stock-number/device pairing.
func (h *Handler) CreateStockEntry(w http.ResponseWriter, r *http.Request) {
	var req CreateStockEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	e, err := h.State.AddStockEntry(r.Context(), appstate.NewStockEntry{
		StockNumber: req.StockNumber,
		DeviceID:    req.DeviceID,
	})
	if err != nil {
		writeFailure(w, "Failed to create stock entry", err)
		return
	}
	writeJSON(w, http.StatusCreated, StockEntryDTO{
		ID:          e.ID,
		StockNumber: e.StockNumber,
		DeviceID:    e.DeviceID,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
	})
}

// =============================================================================
// DESKLOG HANDLERS
// =============================================================================

// ListDesklogEntries returns desklog entries, optionally filtered by
// ?status= or ?from=&to= (inclusive, YYYY-MM-DD). Requires viewDeals.
func (h *Handler) ListDesklogEntries(w http.ResponseWriter, r *http.Request) {
	u, ok := h.State.CurrentUser()
	if !ok || !u.Permissions.ViewDeals {
		writeError(w, http.StatusForbidden, "Viewing deals requires the viewDeals permission", nil)
		return
	}

	var (
		entries []desklog.Entry
		err     error
	)
	switch {
	case r.URL.Query().Get("status") != "":
		var status desklog.DealStatus
		status, err = desklog.ParseDealStatus(r.URL.Query().Get("status"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid status filter", err)
			return
		}
		entries, err = h.State.DesklogByStatus(r.Context(), status)
	case r.URL.Query().Get("from") != "" || r.URL.Query().Get("to") != "":
		var from, to time.Time
		from, err = parseDate(r.URL.Query().Get("from"))
		if err == nil {
			to, err = parseDate(r.URL.Query().Get("to"))
		}
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date filter (use YYYY-MM-DD)", err)
			return
		}
		// Inclusive bounds: extend "to" across its whole day.
		entries, err = h.State.DesklogByDateRange(r.Context(), from, to.Add(24*time.Hour-time.Nanosecond))
	default:
		entries = h.State.DesklogEntries()
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list desklog entries", err)
		return
	}

	dtos := make([]DesklogEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = desklogDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateDesklogEntry records a sales transaction. A Delivered entry
// marks the referenced vehicle sold.
func (h *Handler) CreateDesklogEntry(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decodeDesklogInput(w, r)
	if !ok {
		return
	}

	e, err := h.State.AddDesklogEntry(r.Context(), in)
	if err != nil {
		writeFailure(w, "Failed to create desklog entry", err)
		return
	}
	writeJSON(w, http.StatusCreated, desklogDTO(e))
}

// UpdateDesklogEntry replaces a sales transaction by id.
func (h *Handler) UpdateDesklogEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	in, ok := h.decodeDesklogInput(w, r)
	if !ok {
		return
	}

	e, err := h.State.UpdateDesklogEntry(r.Context(), id, in)
	if err != nil {
		writeFailure(w, "Failed to update desklog entry", err)
		return
	}
	writeJSON(w, http.StatusOK, desklogDTO(e))
}

// DeleteDesklogEntry removes a sales transaction by id.
func (h *Handler) DeleteDesklogEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.State.DeleteDesklogEntry(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeFailure(w, "Failed to delete desklog entry", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decodeDesklogInput(w http.ResponseWriter, r *http.Request) (appstate.DesklogInput, bool) {
	var req DesklogEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return appstate.DesklogInput{}, false
	}

	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return appstate.DesklogInput{}, false
	}

	return appstate.DesklogInput{
		DealStatus:   desklog.DealStatus(req.DealStatus),
		DealType:     desklog.DealType(req.DealType),
		VehicleType:  desklog.VehicleType(req.VehicleType),
		RDR:          req.RDR,
		DealNumber:   req.DealNumber,
		Date:         date,
		Customer:     desklog.Customer{Name: req.Customer.Name, Phone: req.Customer.Phone, Email: req.Customer.Email},
		StockNumber:  req.StockNumber,
		Salesperson:  req.Salesperson,
		SalesManager: req.SalesManager,
		FIManager:    req.FIManager,
		FrontGross:   req.FrontGross,
		BackGross:    req.BackGross,
		TotalGross:   req.TotalGross,
		ACV:          req.ACV,
		Allowance:    req.Allowance,
		Delta:        req.Delta,
		Notes:        req.Notes,
	}, true
}

// =============================================================================
// DTO CONVERSIONS & HELPERS
// =============================================================================

func userDTO(u directory.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        string(u.Role),
		Permissions: u.Permissions,
	}
}

func locationDTO(l directory.Location) LocationDTO {
	return LocationDTO{ID: l.ID, Name: l.Name, Address: l.Address, City: l.City, State: l.State, Zip: l.Zip}
}

func locationInput(req LocationRequest) appstate.NewLocation {
	return appstate.NewLocation{Name: req.Name, Address: req.Address, City: req.City, State: req.State, Zip: req.Zip}
}

func vehicleDTO(v inventory.Vehicle) VehicleDTO {
	return VehicleDTO{
		ID:                v.ID,
		Make:              v.Make,
		Model:             v.Model,
		Year:              v.Year,
		VIN:               v.VIN,
		PurchaseDate:      v.PurchaseDate.Format(dateLayout),
		PurchasePrice:     v.PurchasePrice,
		Buyer:             v.Buyer,
		Source:            SourceRefDTO{Location: v.Source.Location, SubCategory: v.Source.SubCategory},
		StockNumber:       v.StockNumber,
		BluetoothDeviceID: v.BluetoothDeviceID,
		Status:            v.Status.String(),
	}
}

func desklogDTO(e desklog.Entry) DesklogEntryDTO {
	return DesklogEntryDTO{
		ID:           e.ID,
		DealStatus:   string(e.DealStatus),
		DealType:     string(e.DealType),
		VehicleType:  string(e.VehicleType),
		RDR:          e.RDR,
		DealNumber:   e.DealNumber,
		Date:         e.Date.Format(dateLayout),
		Customer:     CustomerDTO{Name: e.Customer.Name, Phone: e.Customer.Phone, Email: e.Customer.Email},
		StockNumber:  e.StockNumber,
		Salesperson:  e.Salesperson,
		SalesManager: e.SalesManager,
		FIManager:    e.FIManager,
		FrontGross:   e.FrontGross,
		BackGross:    e.BackGross,
		TotalGross:   e.TotalGross,
		ACV:          e.ACV,
		Allowance:    e.Allowance,
		Delta:        e.Delta,
		Notes:        e.Notes,
		CreatedAt:    e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    e.UpdatedAt.Format(time.RFC3339),
	}
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	return time.Parse(dateLayout, s)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeFailure maps controller/store errors onto HTTP statuses.
func writeFailure(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, appstate.ErrValidation):
		writeError(w, http.StatusBadRequest, message, err)
	case errors.Is(err, appstate.ErrPermissionDenied), errors.Is(err, appstate.ErrNoCurrentUser):
		writeError(w, http.StatusForbidden, message, err)
	case errors.Is(err, appstate.ErrNotFound):
		writeError(w, http.StatusNotFound, message, err)
	case errors.Is(err, appstate.ErrDuplicateID), errors.Is(err, appstate.ErrVehicleSold):
		writeError(w, http.StatusConflict, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}
