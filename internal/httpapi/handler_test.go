package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"dormhub/internal/dispatch"
	"dormhub/internal/docstore"
	"dormhub/internal/domain"
	"dormhub/internal/roomstore"
	"dormhub/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type apiFixture struct {
	docs  *docstore.MemoryStore
	rooms *roomstore.Store
	loop  *dispatch.Loop
	srv   *httptest.Server
}

func newAPIFixture(t *testing.T) *apiFixture {
	log := zap.NewNop()
	loop := dispatch.NewLoop(log)
	loop.Start()
	t.Cleanup(loop.Stop)

	docs := docstore.NewMemoryStore()
	rooms := roomstore.New(loop, log)

	roomService := service.NewRoomService(docs, rooms, log)
	residentService := service.NewResidentService(docs, rooms, log)
	assignmentService := service.NewAssignmentService(docs, rooms, "Semesterly", log)
	reservationService := service.NewReservationService(docs, log)
	contractService := service.NewContractService(docs, log)

	router := NewRouter(log)
	router.RegisterRoomRoutes(NewRoomHandler(roomService, log))
	router.RegisterResidentRoutes(NewResidentHandler(residentService, assignmentService, log))
	router.RegisterReservationRoutes(NewReservationHandler(reservationService, log))
	router.RegisterContractRoutes(NewContractHandler(contractService, log))
	router.RegisterHealthRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &apiFixture{docs: docs, rooms: rooms, loop: loop, srv: srv}
}

func (f *apiFixture) flush() { f.loop.PostWait(func() {}) }

func (f *apiFixture) do(t *testing.T, method, path string, body any) *http.Response {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, f.srv.URL+path, &buf)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeResult(t *testing.T, resp *http.Response, result any) {
	defer resp.Body.Close()
	envelope := struct {
		Code   int             `json:"code"`
		Result json.RawMessage `json:"result"`
	}{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, ResultSuccess, envelope.Code)
	if result != nil {
		require.NoError(t, json.Unmarshal(envelope.Result, result))
	}
}

func (f *apiFixture) seedTenant(t *testing.T, tenant domain.Tenant) {
	require.NoError(t, f.docs.Set(context.Background(), "users", tenant.UserID, tenant.ToDoc()))
}

func TestAssignRoomFlow(t *testing.T) {
	f := newAPIFixture(t)
	f.seedTenant(t, domain.Tenant{UserID: "s-100", Email: "ana@dorm.io", FullName: "Ana Lovelace"})

	// Create a double room.
	resp := f.do(t, http.MethodPost, "/api/v1/rooms", map[string]any{
		"buildingId":   "b1",
		"buildingName": "North Hall",
		"roomNumber":   "101",
		"floor":        1,
		"roomType":     "Shared(D)",
		"rate":         450,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var created struct {
		Room domain.Room `json:"room"`
	}
	decodeResult(t, resp, &created)
	assert.Equal(t, 2, created.Room.Capacity)
	f.flush()

	// The new room shows up as selectable.
	resp = f.do(t, http.MethodGet, "/api/v1/residents/s-100/selectable-rooms", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var selectable struct {
		Items []struct {
			Room      domain.Room `json:"room"`
			Occupancy int         `json:"occupancy"`
		} `json:"items"`
	}
	decodeResult(t, resp, &selectable)
	require.Len(t, selectable.Items, 1)
	assert.Equal(t, "101", selectable.Items[0].Room.ID)

	// Assigning without an end date is rejected before any write.
	resp = f.do(t, http.MethodPost, "/api/v1/residents/s-100/assign-room", map[string]any{
		"roomId": "101",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Assign with an end date: room change plus a new contract.
	resp = f.do(t, http.MethodPost, "/api/v1/residents/s-100/assign-room", map[string]any{
		"roomId":          "101",
		"contractEndDate": "2025-12-31",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var assigned struct {
		Tenant   domain.Tenant    `json:"tenant"`
		Room     domain.Room      `json:"room"`
		Contract *domain.Contract `json:"contract"`
	}
	decodeResult(t, resp, &assigned)
	assert.Equal(t, "101", assigned.Tenant.RoomID)
	require.NotNil(t, assigned.Contract)
	assert.Equal(t, "Semesterly", assigned.Contract.ContractType)
	assert.Equal(t, 450.0, assigned.Contract.RentAmount)

	// Contract lookup by tenant works through the API.
	resp = f.do(t, http.MethodGet, "/api/v1/contracts/by-tenant/s-100", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var contract domain.Contract
	decodeResult(t, resp, &contract)
	assert.Equal(t, assigned.Contract.ID, contract.ID)
}

func TestAssignRoom_UnknownResidentIs404(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, http.MethodPost, "/api/v1/residents/ghost/assign-room", map[string]any{
		"roomId":          "101",
		"contractEndDate": "2025-12-31",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReservationFlowOverHTTP(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, http.MethodPost, "/api/v1/reservations", map[string]any{
		"firstName":           "Ana",
		"lastName":            "Lovelace",
		"studentId":           "s-100",
		"email":               "ana@dorm.io",
		"gender":              "Female",
		"currentYear":         "Sophomore",
		"contractType":        "Semesterly",
		"preferredMoveInDate": "2025-09-01",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var reservation domain.Reservation
	decodeResult(t, resp, &reservation)
	assert.Equal(t, "Pending", reservation.Status)

	resp = f.do(t, http.MethodPost, "/api/v1/reservations/"+reservation.ID+"/approve", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var approved struct {
		Tenant domain.Tenant `json:"tenant"`
	}
	decodeResult(t, resp, &approved)
	assert.Equal(t, "s-100", approved.Tenant.UserID)

	// The new tenant appears in the resident directory.
	resp = f.do(t, http.MethodGet, "/api/v1/residents?search=ana", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var residents struct {
		Items []struct {
			Tenant         domain.Tenant `json:"tenant"`
			ContractStatus string        `json:"contract_status"`
		} `json:"items"`
	}
	decodeResult(t, resp, &residents)
	require.Len(t, residents.Items, 1)
	assert.Equal(t, "No Contract", residents.Items[0].ContractStatus)
}

func TestRoomEndpoints_MethodNotAllowed(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, http.MethodDelete, "/api/v1/rooms", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestBadJSONIs400(t *testing.T) {
	f := newAPIFixture(t)

	req, err := http.NewRequest(http.MethodPost, f.srv.URL+"/api/v1/rooms", bytes.NewBufferString("{nope"))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, http.MethodGet, "/health", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
