package service

import (
	"context"
	"fmt"

	"dormhub/internal/docstore"
	"dormhub/internal/domain"

	"go.uber.org/zap"
)

// ContractService reads contracts; they are written only by the assignment
// workflow and immutable afterwards.
type ContractService interface {
	GetContract(ctx context.Context, contractID string) (*domain.Contract, error)
	GetContractForTenant(ctx context.Context, tenantID string) (*domain.Contract, error)
}

type contractService struct {
	docs   docstore.Store
	logger *zap.Logger
}

func NewContractService(docs docstore.Store, logger *zap.Logger) ContractService {
	return &contractService{docs: docs, logger: logger}
}

func (s *contractService) GetContract(ctx context.Context, contractID string) (*domain.Contract, error) {
	if contractID == "" {
		return nil, validationf("contract id is required")
	}
	doc, err := s.docs.Get(ctx, ColContracts, contractID)
	if err != nil {
		return nil, fmt.Errorf("load contract %s: %w", contractID, err)
	}
	c := domain.ContractFromDoc(doc)
	return &c, nil
}

func (s *contractService) GetContractForTenant(ctx context.Context, tenantID string) (*domain.Contract, error) {
	tenant, err := loadTenant(ctx, s.docs, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant.ContractID == "" {
		return nil, fmt.Errorf("tenant %s has no contract: %w", tenantID, docstore.ErrNotFound)
	}
	return s.GetContract(ctx, tenant.ContractID)
}
