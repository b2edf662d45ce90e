package consumers

import (
	"context"
	"encoding/json"

	"github.com/braddotcoffee/MinimalRoboBanana/internal/config"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/constants"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/service"
	"github.com/braddotcoffee/MinimalRoboBanana/pkg/mq"
	"go.uber.org/zap"
)

// MessageConsumer feeds chat activity into the accrual engine. It drops the
// bot's own messages, messages from excluded bot accounts, and anything
// outside the monitored stream channel.
type MessageConsumer interface {
	Consume(ctx context.Context) error
}

type messageConsumer struct {
	accrual  service.AccrualService
	consumer mq.Consumer
	cfg      *config.Config
	logger   *zap.Logger
}

func NewMessageConsumer(accrual service.AccrualService, consumer mq.Consumer,
	cfg *config.Config, logger *zap.Logger) MessageConsumer {
	return &messageConsumer{accrual: accrual, consumer: consumer, cfg: cfg, logger: logger}
}

func (m *messageConsumer) Consume(ctx context.Context) error {
	return m.consumer.Consume(ctx, 10, constants.QueueChatMessage, m.handleMessage)
}

func (m *messageConsumer) handleMessage(ctx context.Context, body []byte) error {
	var event MessageEvent
	if err := json.Unmarshal(body, &event); err != nil {
		m.logger.Warn("invalid message event", zap.Error(err))
		return err
	}

	if m.excluded(event.UserID) {
		return nil
	}

	if event.ChannelID != m.cfg.Bot.StreamChannelID {
		return nil
	}

	return m.accrual.Accrue(ctx, event.UserID)
}

func (m *messageConsumer) excluded(userID int64) bool {
	if userID == m.cfg.Bot.SelfID {
		return true
	}

	for _, id := range m.cfg.Bot.ExcludedBotIDs {
		if userID == id {
			return true
		}
	}

	return false
}
