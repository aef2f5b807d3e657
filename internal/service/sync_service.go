package service

import (
	"context"
	"fmt"
	"log"

	"transitdesk/internal/carma"
	"transitdesk/internal/models"
	"transitdesk/internal/repository"
)

// SyncService reconciles the operator table against the carrier registry
type SyncService struct {
	client    *carma.Client
	operators *repository.OperatorRepository
}

// NewSyncService creates a new sync service
func NewSyncService(client *carma.Client, operators *repository.OperatorRepository) *SyncService {
	return &SyncService{
		client:    client,
		operators: operators,
	}
}

// SyncOperators fetches the carrier list from the registry and inserts an
// operator record for every carrier not yet known. Existing operators are
// never modified; carriers are matched by name. Returns the number of
// operators created.
func (s *SyncService) SyncOperators(ctx context.Context) (int, error) {
	carriers, err := s.client.ListCarriers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list carriers: %w", err)
	}

	known, err := s.operators.ExistingNames()
	if err != nil {
		return 0, fmt.Errorf("failed to load existing operators: %w", err)
	}

	created := 0
	for _, carrier := range carriers {
		if carrier.DisplayName == "" || known[carrier.DisplayName] {
			continue
		}

		_, err := s.operators.Create(&models.Operator{
			Name:        carrier.DisplayName,
			Description: fmt.Sprintf("Imported from carrier registry (code %s)", carrier.CarrierCode),
			Status:      models.StatusRegistered,
			Source:      models.SourceCarma,
			IsLive:      true,
		})
		if err != nil {
			return created, fmt.Errorf("failed to create operator %q: %w", carrier.DisplayName, err)
		}

		known[carrier.DisplayName] = true
		created++
		log.Printf("Operator imported from registry: name=%s, code=%s", carrier.DisplayName, carrier.CarrierCode)
	}

	log.Printf("Operator sync complete: carriers=%d, created=%d", len(carriers), created)
	return created, nil
}
