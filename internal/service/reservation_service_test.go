package service

import (
	"context"
	"testing"
	"time"

	"dormhub/internal/docstore"
	"dormhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func validReservation() CreateReservationRequest {
	return CreateReservationRequest{
		FirstName:           "Ana",
		LastName:            "Lovelace",
		StudentID:           "s-100",
		Email:               "ana@dorm.io",
		Gender:              "Female",
		CurrentYear:         "Sophomore",
		ContractType:        "Semesterly",
		PreferredMoveInDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateReservation(t *testing.T) {
	docs := docstore.NewMemoryStore()
	svc := NewReservationService(docs, zap.NewNop())

	r, err := svc.CreateReservation(context.Background(), validReservation())
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, domain.ReservationPending, r.Status)

	stored, err := docs.Get(context.Background(), ColReservations, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "s-100", stored["studentId"])
}

func TestCreateReservation_Validation(t *testing.T) {
	svc := NewReservationService(docstore.NewMemoryStore(), zap.NewNop())

	missingName := validReservation()
	missingName.FirstName = ""
	_, err := svc.CreateReservation(context.Background(), missingName)
	assert.ErrorIs(t, err, ErrValidation)

	missingDate := validReservation()
	missingDate.PreferredMoveInDate = time.Time{}
	_, err = svc.CreateReservation(context.Background(), missingDate)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListPending_SortedByMoveInDate(t *testing.T) {
	docs := docstore.NewMemoryStore()
	svc := NewReservationService(docs, zap.NewNop())

	late := validReservation()
	late.StudentID = "s-late"
	late.PreferredMoveInDate = time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.CreateReservation(context.Background(), late)
	require.NoError(t, err)

	early := validReservation()
	early.StudentID = "s-early"
	_, err = svc.CreateReservation(context.Background(), early)
	require.NoError(t, err)

	pending, err := svc.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "s-early", pending[0].StudentID)
	assert.Equal(t, "s-late", pending[1].StudentID)
}

func TestApprove_CreatesTenantWithoutRoomOrContract(t *testing.T) {
	docs := docstore.NewMemoryStore()
	svc := NewReservationService(docs, zap.NewNop())

	r, err := svc.CreateReservation(context.Background(), validReservation())
	require.NoError(t, err)

	resp, err := svc.Approve(context.Background(), r.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.ReservationApproved, resp.Reservation.Status)
	assert.Equal(t, "s-100", resp.Tenant.UserID)
	assert.Equal(t, "Ana Lovelace", resp.Tenant.FullName)
	assert.Empty(t, resp.Tenant.RoomID)
	assert.Empty(t, resp.Tenant.ContractID)
	// The student id is the initial password.
	assert.Equal(t, domain.HashPassword("s-100"), resp.Tenant.PasswordHash)

	doc, err := docs.Get(context.Background(), ColUsers, "s-100")
	require.NoError(t, err)
	assert.Equal(t, string(domain.RoleTenant), doc["userType"])
	assert.Nil(t, doc["roomID"])
	assert.Nil(t, doc["contractID"])

	// Already approved: a second approval is rejected.
	_, err = svc.Approve(context.Background(), r.ID)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestReject(t *testing.T) {
	docs := docstore.NewMemoryStore()
	svc := NewReservationService(docs, zap.NewNop())

	r, err := svc.CreateReservation(context.Background(), validReservation())
	require.NoError(t, err)

	require.NoError(t, svc.Reject(context.Background(), r.ID))

	doc, err := docs.Get(context.Background(), ColReservations, r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationRejected, doc["status"])

	pending, err := svc.ListPending(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestApprove_UnknownReservation(t *testing.T) {
	svc := NewReservationService(docstore.NewMemoryStore(), zap.NewNop())
	_, err := svc.Approve(context.Background(), "ghost")
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}
