package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "draft"
	CampaignScheduled CampaignStatus = "scheduled"
	CampaignSent      CampaignStatus = "sent"
)

var campaignTransitions = map[CampaignStatus][]CampaignStatus{
	CampaignDraft:     {CampaignScheduled},
	CampaignScheduled: {CampaignSent},
	CampaignSent:      {},
}

func (s CampaignStatus) CanTransitionTo(next CampaignStatus) bool {
	for _, allowed := range campaignTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Audience string

const (
	// AudienceAll targets every customer with at least one order.
	AudienceAll Audience = "all"
	// AudienceRecent targets customers who ordered in the last 30 days.
	AudienceRecent Audience = "recent"
	// AudienceInactive targets customers whose last order is older than 90 days.
	AudienceInactive Audience = "inactive"
)

func (a Audience) Valid() bool {
	switch a {
	case AudienceAll, AudienceRecent, AudienceInactive:
		return true
	}
	return false
}

type Campaign struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	TargetAudience  Audience           `bson:"target_audience" json:"target_audience"`
	MessageTemplate string             `bson:"message_template" json:"message_template"`
	Status          CampaignStatus     `bson:"status" json:"status"`
	RecipientCount  int                `bson:"recipient_count" json:"recipient_count"`
	SentCount       int                `bson:"sent_count" json:"sent_count"`
	ScheduledAt     *time.Time         `bson:"scheduled_at,omitempty" json:"scheduled_at,omitempty"`
	SentAt          *time.Time         `bson:"sent_at,omitempty" json:"sent_at,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}
