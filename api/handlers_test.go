/*
handlers_test.go - HTTP API tests over the full router

Tests for:
- User creation with role-derived permissions, current-user switching
- Vehicle creation with server-assigned stock numbers (client values ignored)
- The delivered-deal flow marking vehicles sold
- Permission failures surfacing as 403s, validation as 400s
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotworks/dealdesk/appstate"
	"github.com/lotworks/dealdesk/directory"
	"github.com/lotworks/dealdesk/store/memory"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) (*appstate.Controller, http.Handler) {
	t.Helper()
	c := appstate.New(memory.New())
	require.NoError(t, c.Initialize(context.Background()))
	return c, NewRouter(NewHandler(c))
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func createVehicle(t *testing.T, h http.Handler) VehicleDTO {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/vehicles", CreateVehicleRequest{
		Make:         "Honda",
		Model:        "Accord",
		Year:         2023,
		VIN:          "1HGCM82633A004352",
		PurchaseDate: "2025-03-10",
		Buyer:        "Dana Fields",
		Source:       SourceRefDTO{Location: "Manheim", SubCategory: "Lane 4"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[VehicleDTO](t, rec)
}

func desklogRequest(stockNumber, status, dealType string) DesklogEntryRequest {
	return DesklogEntryRequest{
		DealStatus:  status,
		DealType:    dealType,
		VehicleType: "Used",
		DealNumber:  "D-1001",
		Date:        "2025-04-02",
		Customer:    CustomerDTO{Name: "Pat Moreno", Phone: "555-0141"},
		StockNumber: stockNumber,
		Salesperson: "Lee Graham",
	}
}

// =============================================================================
// USERS
// =============================================================================

func TestCreateUser_DerivesPermissions(t *testing.T) {
	_, h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/users", CreateUserRequest{
		Name: "Ben", Email: "ben@example.com", Role: "buyer",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	u := decodeBody[UserDTO](t, rec)
	assert.Equal(t, "buyer", u.Role)
	assert.Equal(t, directory.Permissions{}, u.Permissions)
	assert.NotEmpty(t, u.ID)
}

func TestCreateUser_UnknownRoleIs400(t *testing.T) {
	_, h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/users", CreateUserRequest{Name: "X", Role: "manager"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCurrentUser_DefaultsToAdmin(t *testing.T) {
	_, h := newTestServer(t)

	rec := doJSON(t, h, http.MethodGet, "/api/users/current", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	u := decodeBody[UserDTO](t, rec)
	assert.Equal(t, appstate.DefaultAdminID, u.ID)
}

func TestSetCurrentUser(t *testing.T) {
	_, h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/users", CreateUserRequest{Name: "Ben", Role: "buyer"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[UserDTO](t, rec)

	rec = doJSON(t, h, http.MethodPost, "/api/users/current", SetCurrentUserRequest{ID: created.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/users/current", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created.ID, decodeBody[UserDTO](t, rec).ID)

	rec = doJSON(t, h, http.MethodPost, "/api/users/current", SetCurrentUserRequest{ID: "missing"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateUser_NotFound(t *testing.T) {
	_, h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPut, "/api/users/missing", UpdateUserRequest{Name: "X", Role: "buyer"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// =============================================================================
// VEHICLES
// =============================================================================

func TestCreateVehicle_AssignsStockNumber(t *testing.T) {
	_, h := newTestServer(t)

	v1 := createVehicle(t, h)
	v2 := createVehicle(t, h)

	assert.Equal(t, "A000001", v1.StockNumber)
	assert.Equal(t, "A000002", v2.StockNumber)
	assert.Equal(t, "Available", v1.Status)
}

func TestCreateVehicle_ClientStockNumberIgnored(t *testing.T) {
	_, h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/vehicles", CreateVehicleRequest{
		Make:         "Honda",
		Model:        "Accord",
		Year:         2023,
		PurchaseDate: "2025-03-10",
		StockNumber:  "Z999999",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	v := decodeBody[VehicleDTO](t, rec)
	assert.Equal(t, "A000001", v.StockNumber, "stock numbers are server-assigned")
}

func TestUpdateVehicle_StockNumberImmutable(t *testing.T) {
	_, h := newTestServer(t)
	v := createVehicle(t, h)

	model := "Accord Hybrid"
	rec := doJSON(t, h, http.MethodPut, "/api/vehicles/"+v.ID, UpdateVehicleRequest{
		Model:       &model,
		StockNumber: "B000001",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	updated := decodeBody[VehicleDTO](t, rec)
	assert.Equal(t, "Accord Hybrid", updated.Model)
	assert.Equal(t, v.StockNumber, updated.StockNumber)
}

func TestCreateVehicle_BadDateIs400(t *testing.T) {
	_, h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/vehicles", CreateVehicleRequest{
		Make: "Honda", Model: "Accord", PurchaseDate: "03/10/2025",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteVehicle_SoldIs409(t *testing.T) {
	_, h := newTestServer(t)
	v := createVehicle(t, h)

	rec := doJSON(t, h, http.MethodPost, "/api/desklog", desklogRequest(v.StockNumber, "Delivered", "Retail"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, "/api/vehicles/"+v.ID, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

// =============================================================================
// DESKLOG
// =============================================================================

func TestCreateDesklogEntry_DeliveredMarksVehicleSold(t *testing.T) {
	_, h := newTestServer(t)
	v := createVehicle(t, h)

	rec := doJSON(t, h, http.MethodPost, "/api/desklog", desklogRequest(v.StockNumber, "Delivered", "Retail"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/vehicles", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	vehicles := decodeBody[[]VehicleDTO](t, rec)
	require.Len(t, vehicles, 1)
	assert.Equal(t, "Sold - Retail", vehicles[0].Status)
}

func TestCreateDesklogEntry_UnknownStatusIs400(t *testing.T) {
	_, h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/desklog", desklogRequest("A000001", "Shipped", "Retail"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListDesklog_RequiresViewDeals(t *testing.T) {
	c, h := newTestServer(t)

	// Admin can list
	rec := doJSON(t, h, http.MethodGet, "/api/desklog", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// A plain buyer cannot
	buyer, err := c.AddUser(context.Background(), appstate.NewUser{Name: "Ben", Role: directory.RoleBuyer})
	require.NoError(t, err)
	require.NoError(t, c.SetCurrentUser(buyer.ID))

	rec = doJSON(t, h, http.MethodGet, "/api/desklog", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateDesklog_WithoutEditDealsIs403(t *testing.T) {
	c, h := newTestServer(t)

	buyer, err := c.AddUser(context.Background(), appstate.NewUser{Name: "Ben", Role: directory.RoleBuyer})
	require.NoError(t, err)
	require.NoError(t, c.SetCurrentUser(buyer.ID))

	rec := doJSON(t, h, http.MethodPost, "/api/desklog", desklogRequest("A000001", "Pending", "Retail"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListDesklog_StatusAndDateFilters(t *testing.T) {
	_, h := newTestServer(t)

	req := desklogRequest("A000001", "Pending", "Retail")
	require.Equal(t, http.StatusCreated, doJSON(t, h, http.MethodPost, "/api/desklog", req).Code)

	req = desklogRequest("A000002", "Delivered", "Retail")
	req.Date = "2025-05-20"
	require.Equal(t, http.StatusCreated, doJSON(t, h, http.MethodPost, "/api/desklog", req).Code)

	rec := doJSON(t, h, http.MethodGet, "/api/desklog?status=Delivered", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	entries := decodeBody[[]DesklogEntryDTO](t, rec)
	require.Len(t, entries, 1)
	assert.Equal(t, "A000002", entries[0].StockNumber)

	// The range includes its last day
	rec = doJSON(t, h, http.MethodGet, "/api/desklog?from=2025-04-01&to=2025-04-02", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	entries = decodeBody[[]DesklogEntryDTO](t, rec)
	require.Len(t, entries, 1)
	assert.Equal(t, "A000001", entries[0].StockNumber)

	rec = doJSON(t, h, http.MethodGet, "/api/desklog?from=bad&to=dates", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateDesklogEntry_ResetsNothingVisibleButSucceeds(t *testing.T) {
	_, h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/desklog", desklogRequest("A000001", "Pending", "Retail"))
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[DesklogEntryDTO](t, rec)

	rec = doJSON(t, h, http.MethodPut, "/api/desklog/"+created.ID, desklogRequest("A000001", "Cancelled", "Retail"))
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeBody[DesklogEntryDTO](t, rec)
	assert.Equal(t, "Cancelled", updated.DealStatus)
	assert.Equal(t, created.ID, updated.ID)
}

func TestDeleteDesklogEntry(t *testing.T) {
	_, h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/desklog", desklogRequest("A000001", "Pending", "Retail"))
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[DesklogEntryDTO](t, rec)

	rec = doJSON(t, h, http.MethodDelete, "/api/desklog/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/desklog", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody[[]DesklogEntryDTO](t, rec))
}

// =============================================================================
// SOURCES, LOCATIONS, STOCK ENTRIES
// =============================================================================

func TestCreateAndListSources(t *testing.T) {
	_, h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/sources", CreateSourceRequest{
		Location: "Manheim", SubCategories: []string{"Lane 1"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/sources", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sources := decodeBody[[]SourceDTO](t, rec)
	require.Len(t, sources, 1)
	assert.Equal(t, "Manheim", sources[0].Location)
}

func TestLocationLifecycle(t *testing.T) {
	_, h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/locations", LocationRequest{Name: "Main Lot", City: "Dayton"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[LocationDTO](t, rec)

	rec = doJSON(t, h, http.MethodPut, "/api/locations/"+created.ID, LocationRequest{Name: "North Lot"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "North Lot", decodeBody[LocationDTO](t, rec).Name)

	rec = doJSON(t, h, http.MethodDelete, "/api/locations/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCreateStockEntry(t *testing.T) {
	_, h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/stock-entries", CreateStockEntryRequest{
		StockNumber: "A000001", DeviceID: "beacon-17",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	e := decodeBody[StockEntryDTO](t, rec)
	assert.NotEmpty(t, e.ID)
	assert.NotEmpty(t, e.CreatedAt)

	rec = doJSON(t, h, http.MethodPost, "/api/stock-entries", CreateStockEntryRequest{DeviceID: "beacon-17"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
