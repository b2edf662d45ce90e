package publishers

import (
	"context"
	"encoding/json"

	"github.com/braddotcoffee/MinimalRoboBanana/internal/constants"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/metrics"
	"github.com/braddotcoffee/MinimalRoboBanana/pkg/mq"
	"go.uber.org/zap"
)

// RedemptionAnnouncement is the public confirmation emitted after a debit
// commits. Delivery is best-effort; the debit is the durable side effect.
type RedemptionAnnouncement struct {
	UserID     int64  `json:"user_id"`
	RewardName string `json:"reward_name"`
}

type AnnouncementPublisher interface {
	PublishRedemption(ctx context.Context, announcement RedemptionAnnouncement) error
}

type announcementPublisher struct {
	publisher mq.Publisher
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

func NewAnnouncementPublisher(publisher mq.Publisher, logger *zap.Logger,
	metrics *metrics.Metrics) AnnouncementPublisher {
	return &announcementPublisher{publisher: publisher, logger: logger, metrics: metrics}
}

func (p *announcementPublisher) PublishRedemption(ctx context.Context, announcement RedemptionAnnouncement) error {
	body, _ := json.Marshal(announcement)

	if err := p.publisher.Publish(ctx, "", constants.QueueAnnouncement, body); err != nil {
		p.logger.Error("Failed to publish redemption announcement",
			zap.Int64("user_id", announcement.UserID),
			zap.String("reward", announcement.RewardName),
			zap.Error(err),
		)
		p.metrics.RecordAnnouncement("error")
		return err
	}

	p.metrics.RecordAnnouncement("published")

	return nil
}
