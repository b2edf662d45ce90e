package consumers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/braddotcoffee/MinimalRoboBanana/internal/config"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/constants"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/publishers"
	"github.com/braddotcoffee/MinimalRoboBanana/pkg/chatgateway"
	"github.com/braddotcoffee/MinimalRoboBanana/pkg/mq"
	"go.uber.org/zap"
)

// AnnouncementConsumer posts the public "redeemed" confirmation into the
// stream channel, mentioning the redeeming user.
type AnnouncementConsumer interface {
	Consume(ctx context.Context) error
}

type announcementConsumer struct {
	gateway  chatgateway.Gateway
	consumer mq.Consumer
	cfg      *config.Config
	logger   *zap.Logger
}

func NewAnnouncementConsumer(gateway chatgateway.Gateway, consumer mq.Consumer,
	cfg *config.Config, logger *zap.Logger) AnnouncementConsumer {
	return &announcementConsumer{gateway: gateway, consumer: consumer, cfg: cfg, logger: logger}
}

func (a *announcementConsumer) Consume(ctx context.Context) error {
	return a.consumer.Consume(ctx, 1, constants.QueueAnnouncement, a.handleAnnouncement)
}

func (a *announcementConsumer) handleAnnouncement(ctx context.Context, body []byte) error {
	var announcement publishers.RedemptionAnnouncement
	if err := json.Unmarshal(body, &announcement); err != nil {
		a.logger.Warn("invalid announcement event", zap.Error(err))
		return err
	}

	text := fmt.Sprintf("<@%d> redeemed %s!", announcement.UserID, announcement.RewardName)

	_, err := a.gateway.Announce(ctx, a.cfg.Bot.StreamChannelID, text)
	if err != nil {
		a.logger.Error("Failed to post announcement",
			zap.Int64("user_id", announcement.UserID),
			zap.String("reward", announcement.RewardName),
			zap.Error(err),
		)

		if errors.Is(err, chatgateway.ErrRateLimited) || errors.Is(err, chatgateway.ErrTimeout) {
			return mq.Temporary(err)
		}

		return err
	}

	return nil
}
