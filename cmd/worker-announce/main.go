package main

import (
	"context"

	"github.com/braddotcoffee/MinimalRoboBanana/internal/config"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/constants"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/consumers"
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
			NewMQConnection,
			NewChatGateway,
			NewAnnouncementConsumer,
		),
		fx.Invoke(runAnnouncementConsumer),
	).Run()
}

func runAnnouncementConsumer(announcementConsumer consumers.AnnouncementConsumer,
	rabbit *mq.RabbitMQ, logger *zap.Logger, lc fx.Lifecycle,
) {
	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareTopology([]string{constants.QueueAnnouncement}); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}

			go func() {
				if err := announcementConsumer.Consume(appCtx); err != nil {
					logger.Error("announcement consumer exited", zap.Error(err))
				}
			}()

			logger.Info("announcement consumer started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping announcement consumer")
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

func NewAnnouncementConsumer(rabbit *mq.RabbitMQ, gateway chatgateway.Gateway,
	cfg *config.Config, logger *zap.Logger) (consumers.AnnouncementConsumer, error) {
	consumer, err := rabbit.CreateConsumer()
	if err != nil {
		return nil, err
	}

	return consumers.NewAnnouncementConsumer(gateway, consumer, cfg, logger), nil
}
