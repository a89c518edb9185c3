package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/zaikahq/zaika/internal/domain"
	"github.com/zaikahq/zaika/internal/queue"
	"github.com/zaikahq/zaika/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type CampaignDispatchWorker struct {
	campaignService *service.CampaignService
	broker          queue.Broker
	logger          *zap.SugaredLogger
	ctx             context.Context
	cancel          context.CancelFunc
}

func NewCampaignDispatchWorker(
	campaignService *service.CampaignService,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *CampaignDispatchWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &CampaignDispatchWorker{
		campaignService: campaignService,
		broker:          broker,
		logger:          logger,
		ctx:             ctx,
		cancel:          cancel,
	}
}

func (w *CampaignDispatchWorker) Start() error {
	w.logger.Info("starting campaign dispatch worker")

	return w.broker.Subscribe(w.ctx, queue.QueueCampaignDispatch, w.handleMessage)
}

func (w *CampaignDispatchWorker) Stop() {
	w.logger.Info("stopping campaign dispatch worker")
	w.cancel()
}

func (w *CampaignDispatchWorker) handleMessage(ctx context.Context, message []byte) error {
	var msg domain.CampaignDispatchMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		w.logger.Errorw("failed to unmarshal dispatch message", "error", err)
		return fmt.Errorf("failed to unmarshal dispatch message: %w", err)
	}

	campaignID, err := primitive.ObjectIDFromHex(msg.CampaignID)
	if err != nil {
		w.logger.Errorw("invalid campaign ID", "campaign_id", msg.CampaignID, "error", err)
		return fmt.Errorf("invalid campaign ID: %w", err)
	}

	if err := w.campaignService.Dispatch(ctx, campaignID); err != nil {
		w.logger.Errorw("failed to dispatch campaign", "campaign_id", msg.CampaignID, "error", err)
		return err
	}

	return nil
}
