package service

import (
	"context"
	"fmt"

	"github.com/zaikahq/zaika/internal/domain"
	"github.com/zaikahq/zaika/internal/repo"
	"go.uber.org/zap"
)

type AuditService struct {
	auditRepo repo.StatusAuditRepository
	logger    *zap.SugaredLogger
}

func NewAuditService(auditRepo repo.StatusAuditRepository, logger *zap.SugaredLogger) *AuditService {
	return &AuditService{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// ProcessStatusEvent persists one queue-delivered status transition.
func (s *AuditService) ProcessStatusEvent(ctx context.Context, event domain.StatusEvent) error {
	audit := &domain.StatusAudit{
		EntityType: event.EntityType,
		EntityID:   event.EntityID,
		EventType:  event.EventType,
		OldStatus:  event.OldStatus,
		NewStatus:  event.NewStatus,
		Reason:     event.Reason,
		ActorID:    event.ActorID,
		Timestamp:  event.Timestamp,
	}

	if err := s.auditRepo.Create(ctx, audit); err != nil {
		return fmt.Errorf("failed to record status audit: %w", err)
	}

	s.logger.Infow("status audit recorded",
		"entity_type", event.EntityType, "entity_id", event.EntityID, "new_status", event.NewStatus)

	return nil
}

// Timeline returns the recorded transitions for one entity, newest first.
func (s *AuditService) Timeline(ctx context.Context, entityType, entityID string, limit int) ([]domain.StatusAudit, error) {
	audits, err := s.auditRepo.GetByEntity(ctx, entityType, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load timeline: %w", err)
	}

	return audits, nil
}
