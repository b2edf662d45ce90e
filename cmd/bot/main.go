package main

import (
	"context"

	"github.com/braddotcoffee/MinimalRoboBanana/internal/config"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/constants"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/consumers"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/database"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/metrics"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/publishers"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/repository"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/service"
	"github.com/braddotcoffee/MinimalRoboBanana/pkg/chatgateway"
	"github.com/braddotcoffee/MinimalRoboBanana/pkg/httpclient"
	"github.com/braddotcoffee/MinimalRoboBanana/pkg/mq"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			metrics.NewMetrics,
			database.NewConnection,
			NewMQConnection,
			NewChatGateway,
			NewAnnouncementPublisher,

			repository.NewLedgerRepository,
			repository.NewRewardRepository,
			repository.NewTransactionManager,
			service.NewAccrualService,
			service.NewPointsService,
			service.NewRewardService,

			NewMessageConsumer,
			NewCommandConsumer,
		),
		fx.Invoke(runConsumers),
	).Run()
}

func runConsumers(messageConsumer consumers.MessageConsumer, commandConsumer consumers.CommandConsumer,
	rabbit *mq.RabbitMQ, logger *zap.Logger, lc fx.Lifecycle,
) {
	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			queues := []string{constants.QueueChatMessage, constants.QueueChatCommand, constants.QueueAnnouncement}
			if err := rabbit.DeclareTopology(queues); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}

			go func() {
				if err := messageConsumer.Consume(appCtx); err != nil {
					logger.Error("message consumer exited", zap.Error(err))
				}
			}()

			go func() {
				if err := commandConsumer.Consume(appCtx); err != nil {
					logger.Error("command consumer exited", zap.Error(err))
				}
			}()

			logger.Info("bot consumers started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping bot consumers")
			cancel()
			return rabbit.Close()
		},
	})
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewChatGateway(cfg *config.Config) chatgateway.Gateway {
	client := httpclient.NewHTTPClient(cfg.ChatGateway.Timeout)
	return chatgateway.NewGateway(cfg.ChatGateway, client)
}

func NewAnnouncementPublisher(rabbit *mq.RabbitMQ, logger *zap.Logger, m *metrics.Metrics) (publishers.AnnouncementPublisher, error) {
	publisher, err := rabbit.CreatePublisher()
	if err != nil {
		return nil, err
	}

	return publishers.NewAnnouncementPublisher(publisher, logger, m), nil
}

func NewMessageConsumer(rabbit *mq.RabbitMQ, accrual service.AccrualService,
	cfg *config.Config, logger *zap.Logger) (consumers.MessageConsumer, error) {
	consumer, err := rabbit.CreateConsumer()
	if err != nil {
		return nil, err
	}

	return consumers.NewMessageConsumer(accrual, consumer, cfg, logger), nil
}

func NewCommandConsumer(rabbit *mq.RabbitMQ, points service.PointsService, rewards service.RewardService,
	announcer publishers.AnnouncementPublisher, gateway chatgateway.Gateway,
	logger *zap.Logger) (consumers.CommandConsumer, error) {
	consumer, err := rabbit.CreateConsumer()
	if err != nil {
		return nil, err
	}

	return consumers.NewCommandConsumer(points, rewards, announcer, gateway, consumer, logger), nil
}
