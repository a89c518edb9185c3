package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zaikahq/zaika/internal/domain"
	"github.com/zaikahq/zaika/internal/queue"
	"github.com/zaikahq/zaika/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var ErrCampaignNotDraft = errors.New("campaign is not a draft")

type CampaignService struct {
	campaignRepo repo.CampaignRepository
	orderRepo    repo.OrderRepository
	broker       queue.Broker
	logger       *zap.SugaredLogger
}

func NewCampaignService(
	campaignRepo repo.CampaignRepository,
	orderRepo repo.OrderRepository,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *CampaignService {
	return &CampaignService{
		campaignRepo: campaignRepo,
		orderRepo:    orderRepo,
		broker:       broker,
		logger:       logger,
	}
}

// PreviewAudience returns how many customers the audience rule matches
// right now. The count is advisory; dispatch re-resolves the audience.
func (s *CampaignService) PreviewAudience(ctx context.Context, audience domain.Audience) (int, error) {
	phones, err := s.orderRepo.AudiencePhones(ctx, audience, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to resolve audience: %w", err)
	}

	return len(phones), nil
}

// Schedule moves a draft to scheduled and enqueues it for the dispatch
// worker.
func (s *CampaignService) Schedule(ctx context.Context, id primitive.ObjectID) (*domain.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !campaign.Status.CanTransitionTo(domain.CampaignScheduled) {
		return nil, fmt.Errorf("%w: status %s", ErrCampaignNotDraft, campaign.Status)
	}

	now := time.Now()
	campaign.Status = domain.CampaignScheduled
	campaign.ScheduledAt = &now

	if err := s.campaignRepo.Update(ctx, campaign); err != nil {
		return nil, fmt.Errorf("failed to schedule campaign: %w", err)
	}

	message := domain.CampaignDispatchMessage{CampaignID: campaign.ID.Hex()}
	payload, err := json.Marshal(message)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal dispatch message: %w", err)
	}

	if err := s.broker.Publish(ctx, queue.QueueCampaignDispatch, payload); err != nil {
		return nil, fmt.Errorf("failed to enqueue campaign: %w", err)
	}

	s.logger.Infow("campaign scheduled", "campaign_id", campaign.ID.Hex(), "audience", campaign.TargetAudience)

	return campaign, nil
}

// Dispatch resolves the audience and delivers the campaign. Message
// delivery is handed to the logger-backed outbox; there is no SMS gateway
// in this deployment.
func (s *CampaignService) Dispatch(ctx context.Context, id primitive.ObjectID) error {
	campaign, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !campaign.Status.CanTransitionTo(domain.CampaignSent) {
		s.logger.Warnw("skipping dispatch for non-scheduled campaign",
			"campaign_id", campaign.ID.Hex(), "status", campaign.Status)
		return nil
	}

	phones, err := s.orderRepo.AudiencePhones(ctx, campaign.TargetAudience, time.Now())
	if err != nil {
		return fmt.Errorf("failed to resolve audience: %w", err)
	}

	sent := 0
	for _, phone := range phones {
		message := strings.ReplaceAll(campaign.MessageTemplate, "{phone}", phone)
		s.logger.Infow("campaign message", "campaign_id", campaign.ID.Hex(), "to", phone, "body", message)
		sent++
	}

	now := time.Now()
	campaign.Status = domain.CampaignSent
	campaign.RecipientCount = len(phones)
	campaign.SentCount = sent
	campaign.SentAt = &now

	if err := s.campaignRepo.Update(ctx, campaign); err != nil {
		return fmt.Errorf("failed to mark campaign sent: %w", err)
	}

	s.logger.Infow("campaign dispatched", "campaign_id", campaign.ID.Hex(), "recipients", len(phones))

	return nil
}
