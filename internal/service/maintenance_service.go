package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"dormhub/internal/docstore"
	"dormhub/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaintenanceService handles tenant repair tickets and admin status updates.
type MaintenanceService interface {
	SubmitRequest(ctx context.Context, req SubmitMaintenanceRequest) (*domain.MaintenanceRequest, error)
	ListForTenant(ctx context.Context, tenantID string) ([]domain.MaintenanceRequest, error)
	ListByStatus(ctx context.Context, status string) ([]domain.MaintenanceRequest, error)
	UpdateStatus(ctx context.Context, requestID, status string) (*domain.MaintenanceRequest, error)
}

type maintenanceService struct {
	docs     docstore.Store
	notifier Notifier
	now      func() time.Time
	logger   *zap.Logger
}

func NewMaintenanceService(docs docstore.Store, notifier Notifier, logger *zap.Logger) MaintenanceService {
	return &maintenanceService{docs: docs, notifier: notifier, now: time.Now, logger: logger}
}

type SubmitMaintenanceRequest struct {
	TenantID         string
	IssueDescription string
}

func (s *maintenanceService) SubmitRequest(ctx context.Context, req SubmitMaintenanceRequest) (*domain.MaintenanceRequest, error) {
	if req.IssueDescription == "" {
		return nil, validationf("issue description is required")
	}
	tenant, err := loadTenant(ctx, s.docs, req.TenantID)
	if err != nil {
		return nil, err
	}

	m := domain.MaintenanceRequest{
		ID:               uuid.NewString(),
		TenantID:         tenant.UserID,
		RoomID:           tenant.RoomID,
		IssueDescription: req.IssueDescription,
		Status:           domain.MaintenancePending,
		DateSubmitted:    s.now(),
	}
	if err := s.docs.Set(ctx, ColMaintenance, m.ID, m.ToDoc()); err != nil {
		return nil, persistence("submit maintenance request", err)
	}
	s.logger.Info("maintenance request submitted",
		zap.String("request_id", m.ID),
		zap.String("tenant_id", m.TenantID),
		zap.String("room_id", m.RoomID))
	s.notifier.MaintenanceEvent(ctx, "submitted", m)
	return &m, nil
}

func (s *maintenanceService) ListForTenant(ctx context.Context, tenantID string) ([]domain.MaintenanceRequest, error) {
	if tenantID == "" {
		return nil, validationf("tenant id is required")
	}
	docs, err := s.docs.Query(ctx, ColMaintenance, "tenantId", tenantID)
	if err != nil {
		return nil, fmt.Errorf("list maintenance requests: %w", err)
	}
	return sortedRequests(docs), nil
}

func (s *maintenanceService) ListByStatus(ctx context.Context, status string) ([]domain.MaintenanceRequest, error) {
	var docs []docstore.Document
	var err error
	if status == "" {
		docs, err = s.docs.List(ctx, ColMaintenance)
	} else {
		docs, err = s.docs.Query(ctx, ColMaintenance, "status", status)
	}
	if err != nil {
		return nil, fmt.Errorf("list maintenance requests: %w", err)
	}
	return sortedRequests(docs), nil
}

func (s *maintenanceService) UpdateStatus(ctx context.Context, requestID, status string) (*domain.MaintenanceRequest, error) {
	switch status {
	case domain.MaintenancePending, domain.MaintenanceInProgress, domain.MaintenanceCompleted:
	default:
		return nil, validationf("unknown maintenance status %q", status)
	}
	doc, err := s.docs.Get(ctx, ColMaintenance, requestID)
	if err != nil {
		return nil, fmt.Errorf("load maintenance request %s: %w", requestID, err)
	}
	if err := s.docs.Update(ctx, ColMaintenance, requestID, docstore.Document{"status": status}); err != nil {
		return nil, persistence("update maintenance status", err)
	}
	m := domain.MaintenanceRequestFromDoc(doc)
	m.Status = status
	s.logger.Info("maintenance status updated",
		zap.String("request_id", m.ID),
		zap.String("status", status))
	s.notifier.MaintenanceEvent(ctx, "status-changed", m)
	return &m, nil
}

func sortedRequests(docs []docstore.Document) []domain.MaintenanceRequest {
	out := make([]domain.MaintenanceRequest, 0, len(docs))
	for _, doc := range docs {
		out = append(out, domain.MaintenanceRequestFromDoc(doc))
	}
	// newest first, the order the dashboard shows them
	sort.Slice(out, func(i, j int) bool { return out[i].DateSubmitted.After(out[j].DateSubmitted) })
	return out
}
