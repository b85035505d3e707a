package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"dormhub/internal/docstore"
	"dormhub/internal/domain"

	"go.uber.org/zap"
)

// PaymentService records rent payments, one document per tenant and month,
// and exports a tenant's payment history as an xlsx workbook.
type PaymentService interface {
	RecordPayment(ctx context.Context, req RecordPaymentRequest) (*domain.Payment, error)
	ListPayments(ctx context.Context, tenantID string) ([]domain.Payment, error)
	ExportPayments(ctx context.Context, tenantID string) ([]byte, error)
}

type paymentService struct {
	docs   docstore.Store
	now    func() time.Time
	logger *zap.Logger
}

func NewPaymentService(docs docstore.Store, logger *zap.Logger) PaymentService {
	return &paymentService{docs: docs, now: time.Now, logger: logger}
}

type RecordPaymentRequest struct {
	TenantID  string
	Month     string
	Amount    float64
	Method    string
	PayerName string
}

func (s *paymentService) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*domain.Payment, error) {
	switch {
	case req.Month == "":
		return nil, validationf("no month selected")
	case req.Method == "":
		return nil, validationf("no payment method selected")
	case req.Amount <= 0:
		return nil, validationf("amount must be positive")
	}
	tenant, err := loadTenant(ctx, s.docs, req.TenantID)
	if err != nil {
		return nil, err
	}

	p := domain.Payment{
		ID:        tenant.UserID + ":" + req.Month,
		TenantID:  tenant.UserID,
		Month:     req.Month,
		Amount:    req.Amount,
		Method:    req.Method,
		PayerName: req.PayerName,
		DatePaid:  s.now(),
	}
	if err := s.docs.Set(ctx, ColPayments, p.ID, p.ToDoc()); err != nil {
		return nil, persistence("record payment", err)
	}
	s.logger.Info("payment recorded",
		zap.String("tenant_id", p.TenantID),
		zap.String("month", p.Month),
		zap.Float64("amount", p.Amount))
	return &p, nil
}

func (s *paymentService) ListPayments(ctx context.Context, tenantID string) ([]domain.Payment, error) {
	if tenantID == "" {
		return nil, validationf("tenant id is required")
	}
	docs, err := s.docs.Query(ctx, ColPayments, "tenantId", tenantID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	out := make([]domain.Payment, 0, len(docs))
	for _, doc := range docs {
		out = append(out, domain.PaymentFromDoc(doc))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DatePaid.Before(out[j].DatePaid) })
	return out, nil
}

func (s *paymentService) ExportPayments(ctx context.Context, tenantID string) ([]byte, error) {
	payments, err := s.ListPayments(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return generatePaymentHistoryExcel(payments)
}
