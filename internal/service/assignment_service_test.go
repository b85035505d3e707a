package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"dormhub/internal/dispatch"
	"dormhub/internal/docstore"
	"dormhub/internal/domain"
	"dormhub/internal/roomstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// countingStore wraps a document store and counts write operations, so tests
// can assert that a rejected request performed zero writes.
type countingStore struct {
	docstore.Store
	writes int
}

func (s *countingStore) Set(ctx context.Context, collection, id string, doc docstore.Document) error {
	s.writes++
	return s.Store.Set(ctx, collection, id, doc)
}

func (s *countingStore) Update(ctx context.Context, collection, id string, fields docstore.Document) error {
	s.writes++
	return s.Store.Update(ctx, collection, id, fields)
}

func (s *countingStore) Delete(ctx context.Context, collection, id string) error {
	s.writes++
	return s.Store.Delete(ctx, collection, id)
}

// flakyStore fails Update calls against one collection.
type flakyStore struct {
	docstore.Store
	failCollection string
}

func (s *flakyStore) Update(ctx context.Context, collection, id string, fields docstore.Document) error {
	if collection == s.failCollection {
		return &docstore.RemoteError{Op: "update", Collection: collection, ID: id, Err: errors.New("connection reset")}
	}
	return s.Store.Update(ctx, collection, id, fields)
}

type assignmentFixture struct {
	docs  *countingStore
	rooms *roomstore.Store
	loop  *dispatch.Loop
	svc   *assignmentService
	now   time.Time
}

func newAssignmentFixture(t *testing.T, store docstore.Store) *assignmentFixture {
	loop := dispatch.NewLoop(zap.NewNop())
	loop.Start()
	t.Cleanup(loop.Stop)

	docs := &countingStore{Store: store}
	rooms := roomstore.New(loop, zap.NewNop())
	svc := NewAssignmentService(docs, rooms, "Semesterly", zap.NewNop()).(*assignmentService)

	now := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	return &assignmentFixture{docs: docs, rooms: rooms, loop: loop, svc: svc, now: now}
}

func (f *assignmentFixture) flush() {
	f.loop.PostWait(func() {})
}

func (f *assignmentFixture) seedRoom(t *testing.T, room domain.Room) {
	require.NoError(t, f.docs.Store.Set(context.Background(), ColRooms, room.ID, room.ToDoc()))
	f.rooms.Upsert(room)
	f.flush()
}

func (f *assignmentFixture) seedTenant(t *testing.T, tenant domain.Tenant) {
	require.NoError(t, f.docs.Store.Set(context.Background(), ColUsers, tenant.UserID, tenant.ToDoc()))
}

func doubleRoom(id string) domain.Room {
	return domain.Room{
		ID:           id,
		BuildingID:   "b1",
		BuildingName: "North Hall",
		RoomNumber:   id,
		Floor:        1,
		RoomType:     domain.RoomTypeSharedD,
		Capacity:     2,
		Rate:         450,
		Status:       domain.RoomAvailable,
	}
}

func TestSelectableRooms_ExcludesFullRooms(t *testing.T) {
	f := newAssignmentFixture(t, docstore.NewMemoryStore())
	f.seedRoom(t, doubleRoom("101"))
	f.seedRoom(t, doubleRoom("102"))
	f.seedTenant(t, domain.Tenant{UserID: "a", RoomID: "101"})
	f.seedTenant(t, domain.Tenant{UserID: "b", RoomID: "101"})
	f.seedTenant(t, domain.Tenant{UserID: "c"})

	resp, err := f.svc.SelectableRooms(context.Background(), SelectableRoomsRequest{TenantID: "c"})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, "102", resp.Items[0].Room.ID)
	assert.Equal(t, 0, resp.Items[0].Occupancy)
}

func TestSelectableRooms_IncludesCurrentRoomEvenWhenFull(t *testing.T) {
	f := newAssignmentFixture(t, docstore.NewMemoryStore())
	full := doubleRoom("101")
	full.Status = domain.RoomOccupied
	f.seedRoom(t, full)
	f.seedTenant(t, domain.Tenant{UserID: "a", RoomID: "101"})
	f.seedTenant(t, domain.Tenant{UserID: "b", RoomID: "101"})

	resp, err := f.svc.SelectableRooms(context.Background(), SelectableRoomsRequest{TenantID: "a"})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, "101", resp.Items[0].Room.ID)
	assert.Equal(t, 2, resp.Items[0].Occupancy)
}

func TestAssignRoom_CreatesContract(t *testing.T) {
	f := newAssignmentFixture(t, docstore.NewMemoryStore())
	f.seedRoom(t, doubleRoom("101"))
	f.seedTenant(t, domain.Tenant{UserID: "a"})

	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	resp, err := f.svc.AssignRoom(context.Background(), AssignRoomRequest{
		TenantID:        "a",
		RoomID:          "101",
		ContractEndDate: end,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Contract)

	c := resp.Contract
	assert.Equal(t, "a", c.TenantID)
	assert.Equal(t, "101", c.RoomID)
	assert.Equal(t, "Semesterly", c.ContractType)
	assert.Equal(t, 450.0, c.RentAmount)
	assert.True(t, c.DateSigned.Equal(f.now))
	assert.True(t, c.StartDate.Equal(f.now))
	assert.True(t, c.EndDate.Equal(end))

	assert.Equal(t, "101", resp.Tenant.RoomID)
	assert.Equal(t, c.ID, resp.Tenant.ContractID)

	// Both sides of the link landed in the store.
	doc, err := f.docs.Get(context.Background(), ColUsers, "a")
	require.NoError(t, err)
	assert.Equal(t, "101", doc["roomID"])
	assert.Equal(t, c.ID, doc["contractID"])
	_, err = f.docs.Get(context.Background(), ColContracts, c.ID)
	assert.NoError(t, err)
}

func TestAssignRoom_MissingEndDateWritesNothing(t *testing.T) {
	f := newAssignmentFixture(t, docstore.NewMemoryStore())
	f.seedRoom(t, doubleRoom("101"))
	f.seedTenant(t, domain.Tenant{UserID: "a"})

	_, err := f.svc.AssignRoom(context.Background(), AssignRoomRequest{TenantID: "a", RoomID: "101"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, 0, f.docs.writes)
}

func TestAssignRoom_NoRoomSelected(t *testing.T) {
	f := newAssignmentFixture(t, docstore.NewMemoryStore())

	_, err := f.svc.AssignRoom(context.Background(), AssignRoomRequest{TenantID: "a"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, 0, f.docs.writes)
}

func TestAssignRoom_SameRoomSkipsRoomWrite(t *testing.T) {
	f := newAssignmentFixture(t, docstore.NewMemoryStore())
	f.seedRoom(t, doubleRoom("101"))
	f.seedTenant(t, domain.Tenant{UserID: "a", RoomID: "101", ContractID: "c-1"})

	resp, err := f.svc.AssignRoom(context.Background(), AssignRoomRequest{TenantID: "a", RoomID: "101"})
	require.NoError(t, err)
	assert.Nil(t, resp.Contract)
	assert.Equal(t, 0, f.docs.writes)
}

func TestAssignRoom_FullRoomFlipsToOccupied(t *testing.T) {
	f := newAssignmentFixture(t, docstore.NewMemoryStore())
	f.seedRoom(t, doubleRoom("101"))
	f.seedTenant(t, domain.Tenant{UserID: "a", RoomID: "101", ContractID: "c-1"})
	f.seedTenant(t, domain.Tenant{UserID: "b", ContractID: "c-2"})

	resp, err := f.svc.AssignRoom(context.Background(), AssignRoomRequest{TenantID: "b", RoomID: "101"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoomOccupied, resp.Room.Status)

	doc, err := f.docs.Get(context.Background(), ColRooms, "101")
	require.NoError(t, err)
	assert.Equal(t, domain.RoomOccupied, doc["status"])

	f.flush()
	cached, ok := f.rooms.Get("101")
	require.True(t, ok)
	assert.Equal(t, domain.RoomOccupied, cached.Status)
}

func TestAssignRoom_HalfFullRoomStaysAvailable(t *testing.T) {
	f := newAssignmentFixture(t, docstore.NewMemoryStore())
	f.seedRoom(t, doubleRoom("101"))
	f.seedTenant(t, domain.Tenant{UserID: "a", ContractID: "c-1"})

	resp, err := f.svc.AssignRoom(context.Background(), AssignRoomRequest{TenantID: "a", RoomID: "101"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoomAvailable, resp.Room.Status)
}

func TestAssignRoom_UnknownTenant(t *testing.T) {
	f := newAssignmentFixture(t, docstore.NewMemoryStore())
	f.seedRoom(t, doubleRoom("101"))

	_, err := f.svc.AssignRoom(context.Background(), AssignRoomRequest{TenantID: "ghost", RoomID: "101"})
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestAssignRoom_AdminIsNotATenant(t *testing.T) {
	f := newAssignmentFixture(t, docstore.NewMemoryStore())
	f.seedRoom(t, doubleRoom("101"))
	admin := domain.Admin{UserID: "staff", Email: "staff@x.io", StaffRole: "Manager"}
	require.NoError(t, f.docs.Store.Set(context.Background(), ColUsers, admin.UserID, admin.ToDoc()))

	_, err := f.svc.AssignRoom(context.Background(), AssignRoomRequest{TenantID: "staff", RoomID: "101"})
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestAssignRoom_WriteFailureSurfacesPersistenceError(t *testing.T) {
	flaky := &flakyStore{Store: docstore.NewMemoryStore(), failCollection: ColUsers}
	f := newAssignmentFixture(t, flaky)
	f.seedRoom(t, doubleRoom("101"))
	f.seedTenant(t, domain.Tenant{UserID: "a", ContractID: "c-1"})

	_, err := f.svc.AssignRoom(context.Background(), AssignRoomRequest{TenantID: "a", RoomID: "101"})
	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "update tenant room", pe.Op)
}
