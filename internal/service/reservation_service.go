package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"dormhub/internal/docstore"
	"dormhub/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReservationService handles prospective-tenant applications. Approval is the
// only path that creates tenant accounts.
type ReservationService interface {
	CreateReservation(ctx context.Context, req CreateReservationRequest) (*domain.Reservation, error)
	ListPending(ctx context.Context) ([]domain.Reservation, error)
	Approve(ctx context.Context, reservationID string) (*ApproveReservationResponse, error)
	Reject(ctx context.Context, reservationID string) error
}

type reservationService struct {
	docs   docstore.Store
	logger *zap.Logger
}

func NewReservationService(docs docstore.Store, logger *zap.Logger) ReservationService {
	return &reservationService{docs: docs, logger: logger}
}

type CreateReservationRequest struct {
	FirstName           string
	LastName            string
	StudentID           string
	Email               string
	Gender              string
	CurrentYear         string
	ContractType        string
	PreferredMoveInDate time.Time
}

type ApproveReservationResponse struct {
	Reservation domain.Reservation `json:"reservation"`
	Tenant      domain.Tenant      `json:"tenant"`
}

func (s *reservationService) CreateReservation(ctx context.Context, req CreateReservationRequest) (*domain.Reservation, error) {
	switch {
	case req.FirstName == "" || req.LastName == "":
		return nil, validationf("first and last name are required")
	case req.StudentID == "":
		return nil, validationf("student id is required")
	case req.Email == "":
		return nil, validationf("email is required")
	case req.Gender == "" || req.CurrentYear == "" || req.ContractType == "":
		return nil, validationf("gender, current year and contract type are required")
	case req.PreferredMoveInDate.IsZero():
		return nil, validationf("preferred move-in date is required")
	}

	r := domain.Reservation{
		ID:                  uuid.NewString(),
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		StudentID:           req.StudentID,
		Email:               req.Email,
		Gender:              req.Gender,
		CurrentYear:         req.CurrentYear,
		ContractType:        req.ContractType,
		PreferredMoveInDate: req.PreferredMoveInDate,
		Status:              domain.ReservationPending,
	}
	if err := s.docs.Set(ctx, ColReservations, r.ID, r.ToDoc()); err != nil {
		return nil, persistence("create reservation", err)
	}
	s.logger.Info("reservation submitted",
		zap.String("reservation_id", r.ID),
		zap.String("student_id", r.StudentID))
	return &r, nil
}

func (s *reservationService) ListPending(ctx context.Context) ([]domain.Reservation, error) {
	docs, err := s.docs.Query(ctx, ColReservations, "status", domain.ReservationPending)
	if err != nil {
		return nil, fmt.Errorf("list pending reservations: %w", err)
	}
	out := make([]domain.Reservation, 0, len(docs))
	for _, doc := range docs {
		out = append(out, domain.ReservationFromDoc(doc))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PreferredMoveInDate.Before(out[j].PreferredMoveInDate)
	})
	return out, nil
}

// Approve creates the tenant account from the reservation, with no room and
// no contract yet and the student id as the initial password, then marks the
// reservation Approved.
func (s *reservationService) Approve(ctx context.Context, reservationID string) (*ApproveReservationResponse, error) {
	r, err := s.load(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if r.Status != domain.ReservationPending {
		return nil, validationf("reservation %s is already %s", r.ID, r.Status)
	}

	tenant := domain.Tenant{
		UserID:       r.StudentID,
		Email:        r.Email,
		PasswordHash: domain.HashPassword(r.StudentID),
		FullName:     r.FirstName + " " + r.LastName,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		GenderType:   r.Gender,
		StudentID:    r.StudentID,
		CurrentYear:  r.CurrentYear,
	}
	if err := s.docs.Set(ctx, ColUsers, tenant.UserID, tenant.ToDoc()); err != nil {
		return nil, persistence("create tenant from reservation", err)
	}
	if err := s.docs.Update(ctx, ColReservations, r.ID, docstore.Document{"status": domain.ReservationApproved}); err != nil {
		return nil, persistence("mark reservation approved", err)
	}
	r.Status = domain.ReservationApproved

	s.logger.Info("reservation approved",
		zap.String("reservation_id", r.ID),
		zap.String("tenant_id", tenant.UserID))
	return &ApproveReservationResponse{Reservation: r, Tenant: tenant}, nil
}

func (s *reservationService) Reject(ctx context.Context, reservationID string) error {
	r, err := s.load(ctx, reservationID)
	if err != nil {
		return err
	}
	if r.Status != domain.ReservationPending {
		return validationf("reservation %s is already %s", r.ID, r.Status)
	}
	if err := s.docs.Update(ctx, ColReservations, r.ID, docstore.Document{"status": domain.ReservationRejected}); err != nil {
		return persistence("mark reservation rejected", err)
	}
	s.logger.Info("reservation rejected", zap.String("reservation_id", r.ID))
	return nil
}

func (s *reservationService) load(ctx context.Context, reservationID string) (domain.Reservation, error) {
	if reservationID == "" {
		return domain.Reservation{}, validationf("reservation id is required")
	}
	doc, err := s.docs.Get(ctx, ColReservations, reservationID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return domain.Reservation{}, fmt.Errorf("reservation %s: %w", reservationID, err)
		}
		return domain.Reservation{}, fmt.Errorf("load reservation %s: %w", reservationID, err)
	}
	return domain.ReservationFromDoc(doc), nil
}
