package service

import (
	"context"
	"testing"

	"dormhub/internal/dispatch"
	"dormhub/internal/docstore"
	"dormhub/internal/domain"
	"dormhub/internal/roomstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newBuildingFixture(t *testing.T) (BuildingService, *docstore.MemoryStore, *roomstore.Store, *dispatch.Loop) {
	loop := dispatch.NewLoop(zap.NewNop())
	loop.Start()
	t.Cleanup(loop.Stop)

	docs := docstore.NewMemoryStore()
	rooms := roomstore.New(loop, zap.NewNop())
	return NewBuildingService(docs, rooms, zap.NewNop()), docs, rooms, loop
}

func TestCreateBuilding_Validation(t *testing.T) {
	svc, _, _, _ := newBuildingFixture(t)
	ctx := context.Background()

	_, err := svc.CreateBuilding(ctx, CreateBuildingRequest{Floors: 3})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateBuilding(ctx, CreateBuildingRequest{Name: "North Hall"})
	assert.ErrorIs(t, err, ErrValidation)

	b, err := svc.CreateBuilding(ctx, CreateBuildingRequest{Name: "North Hall", Floors: 3, TotalRooms: 30})
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID)
}

func TestListBuildings(t *testing.T) {
	svc, _, _, _ := newBuildingFixture(t)
	ctx := context.Background()

	_, err := svc.CreateBuilding(ctx, CreateBuildingRequest{Name: "North Hall", Floors: 3})
	require.NoError(t, err)
	_, err = svc.CreateBuilding(ctx, CreateBuildingRequest{Name: "South Hall", Floors: 2})
	require.NoError(t, err)

	buildings, err := svc.ListBuildings(ctx)
	require.NoError(t, err)
	assert.Len(t, buildings, 2)
}

func TestBuildingOccupancy(t *testing.T) {
	svc, docs, rooms, loop := newBuildingFixture(t)
	ctx := context.Background()

	rooms.ReplaceAll([]domain.Room{
		{ID: "101", BuildingID: "b1", RoomNumber: "101", RoomType: domain.RoomTypeSharedD, Capacity: 2, Status: domain.RoomAvailable},
		{ID: "102", BuildingID: "b1", RoomNumber: "102", RoomType: domain.RoomTypeSingle, Capacity: 1, Status: domain.RoomOccupied},
		{ID: "103", BuildingID: "b1", RoomNumber: "103", RoomType: domain.RoomTypeSingle, Capacity: 1, Status: domain.RoomMaintenance},
		{ID: "201", BuildingID: "b2", RoomNumber: "201", RoomType: domain.RoomTypeSingle, Capacity: 1, Status: domain.RoomAvailable},
	})
	loop.PostWait(func() {})

	for _, tenant := range []domain.Tenant{
		{UserID: "a", RoomID: "101"},
		{UserID: "b", RoomID: "102"},
	} {
		require.NoError(t, docs.Set(ctx, ColUsers, tenant.UserID, tenant.ToDoc()))
	}

	resp, err := svc.BuildingOccupancy(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, 3, resp.TotalRooms)
	assert.Equal(t, 1, resp.OccupiedRooms)
	// 101 is half full and counts as available; 103 is under maintenance and
	// counts as neither.
	assert.Equal(t, 1, resp.AvailableRooms)
	assert.Equal(t, 2, resp.Residents)

	_, err = svc.BuildingOccupancy(ctx, "")
	assert.ErrorIs(t, err, ErrValidation)
}
