package consumers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/braddotcoffee/MinimalRoboBanana/internal/constants"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/publishers"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/service"
	"github.com/braddotcoffee/MinimalRoboBanana/pkg/chatgateway"
	"github.com/braddotcoffee/MinimalRoboBanana/pkg/mq"
	"go.uber.org/zap"
)

// CommandConsumer routes slash-command invocations to the points and reward
// services. Every reply is private to the invoking user; the public
// redemption confirmation goes through the announcement queue instead.
type CommandConsumer interface {
	Consume(ctx context.Context) error
}

type commandConsumer struct {
	points    service.PointsService
	rewards   service.RewardService
	announcer publishers.AnnouncementPublisher
	gateway   chatgateway.Gateway
	consumer  mq.Consumer
	logger    *zap.Logger
}

func NewCommandConsumer(points service.PointsService, rewards service.RewardService,
	announcer publishers.AnnouncementPublisher, gateway chatgateway.Gateway,
	consumer mq.Consumer, logger *zap.Logger) CommandConsumer {
	return &commandConsumer{
		points:    points,
		rewards:   rewards,
		announcer: announcer,
		gateway:   gateway,
		consumer:  consumer,
		logger:    logger,
	}
}

func (c *commandConsumer) Consume(ctx context.Context) error {
	return c.consumer.Consume(ctx, 1, constants.QueueChatCommand, c.handleCommand)
}

func (c *commandConsumer) handleCommand(ctx context.Context, body []byte) error {
	var event CommandEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.logger.Warn("invalid command event", zap.Error(err))
		return err
	}

	switch event.Command {
	case CommandRedeem:
		return c.redeem(ctx, event)
	case CommandListRewards:
		return c.listRewards(ctx, event)
	case CommandPointBalance:
		return c.pointBalance(ctx, event)
	case CommandAddReward:
		return c.addReward(ctx, event)
	case CommandRemoveReward:
		return c.removeReward(ctx, event)
	case CommandGivePoints:
		return c.givePoints(ctx, event)
	default:
		c.logger.Warn("unknown command", zap.String("command", event.Command))
		return nil
	}
}

func (c *commandConsumer) redeem(ctx context.Context, event CommandEvent) error {
	// No reward named: show the balance and what it can buy.
	if event.Reward == "" {
		return c.redeemMenu(ctx, event)
	}

	result, err := c.rewards.Redeem(ctx, event.Reward, event.UserID)
	if err != nil {
		return c.replyRedeemFailure(ctx, event, err)
	}

	if err := c.announcer.PublishRedemption(ctx, publishers.RedemptionAnnouncement{
		UserID:     event.UserID,
		RewardName: result.Name,
	}); err != nil {
		// The debit already committed; the announcement is best-effort.
		c.logger.Warn("redemption announcement dropped",
			zap.Int64("user_id", event.UserID),
			zap.String("reward", result.Name),
			zap.Error(err),
		)
	}

	return nil
}

func (c *commandConsumer) replyRedeemFailure(ctx context.Context, event CommandEvent, err error) error {
	var serviceErr service.Error
	if !errors.As(err, &serviceErr) {
		return c.reply(ctx, event.UserID, "Something went wrong, please try again")
	}

	switch serviceErr.Code {
	case constants.ErrCodeRewardNotFound:
		return c.reply(ctx, event.UserID, fmt.Sprintf("Could not find reward %q", event.Reward))
	case constants.ErrCodeInsufficientPoints:
		var insufficient *service.InsufficientPointsError
		if errors.As(err, &insufficient) {
			return c.reply(ctx, event.UserID, fmt.Sprintf(
				"You do not have enough points for %s. Point Balance: %d, Cost: %d",
				event.Reward, insufficient.Balance, insufficient.Cost))
		}
		return c.reply(ctx, event.UserID, fmt.Sprintf("You do not have enough points for %s", event.Reward))
	default:
		return c.reply(ctx, event.UserID, "Something went wrong, please try again")
	}
}

func (c *commandConsumer) redeemMenu(ctx context.Context, event CommandEvent) error {
	balance, err := c.points.GetBalance(ctx, event.UserID)
	if err != nil {
		return c.reply(ctx, event.UserID, "Something went wrong, please try again")
	}

	rewards, err := c.rewards.ListRewards(ctx)
	if err != nil {
		return c.reply(ctx, event.UserID, "Something went wrong, please try again")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You currently have %d points\n\n", balance)
	for _, reward := range rewards {
		fmt.Fprintf(&sb, "(%d) %s\n", reward.PointCost, reward.Name)
	}

	return c.reply(ctx, event.UserID, sb.String())
}

func (c *commandConsumer) listRewards(ctx context.Context, event CommandEvent) error {
	rewards, err := c.rewards.ListRewards(ctx)
	if err != nil {
		return c.reply(ctx, event.UserID, "Something went wrong, please try again")
	}

	var sb strings.Builder
	sb.WriteString("The rewards currently available to redeem are:\n\n")
	for _, reward := range rewards {
		fmt.Fprintf(&sb, "(%d) %s\n", reward.PointCost, reward.Name)
	}

	return c.reply(ctx, event.UserID, sb.String())
}

func (c *commandConsumer) pointBalance(ctx context.Context, event CommandEvent) error {
	balance, err := c.points.GetBalance(ctx, event.UserID)
	if err != nil {
		return c.reply(ctx, event.UserID, "Something went wrong, please try again")
	}

	return c.reply(ctx, event.UserID, fmt.Sprintf("You currently have %d points", balance))
}

func (c *commandConsumer) addReward(ctx context.Context, event CommandEvent) error {
	reward, err := c.rewards.AddReward(ctx, event.Reward, event.Cost)
	if err != nil {
		var serviceErr service.Error
		if errors.As(err, &serviceErr) && serviceErr.Code == constants.ErrCodeValidationFailed {
			return c.reply(ctx, event.UserID, "Point cost must be zero or greater")
		}
		return c.reply(ctx, event.UserID, "Something went wrong, please try again")
	}

	return c.reply(ctx, event.UserID,
		fmt.Sprintf("Added reward %s costing %d points", reward.Name, reward.PointCost))
}

func (c *commandConsumer) removeReward(ctx context.Context, event CommandEvent) error {
	err := c.rewards.RemoveReward(ctx, event.Reward)
	if err != nil {
		var serviceErr service.Error
		if errors.As(err, &serviceErr) && serviceErr.Code == constants.ErrCodeRewardNotFound {
			return c.reply(ctx, event.UserID, fmt.Sprintf("Could not find reward %q", event.Reward))
		}
		return c.reply(ctx, event.UserID, "Something went wrong, please try again")
	}

	return c.reply(ctx, event.UserID, fmt.Sprintf("Removed reward %s", event.Reward))
}

func (c *commandConsumer) givePoints(ctx context.Context, event CommandEvent) error {
	newBalance, err := c.points.GivePoints(ctx, event.TargetID, event.Amount)
	if err != nil {
		var serviceErr service.Error
		if errors.As(err, &serviceErr) {
			switch serviceErr.Code {
			case constants.ErrCodeUserNotFound:
				return c.reply(ctx, event.UserID,
					fmt.Sprintf("<@%d> has no point balance yet", event.TargetID))
			case constants.ErrCodeValidationFailed:
				return c.reply(ctx, event.UserID, "Amount must be greater than zero")
			}
		}
		return c.reply(ctx, event.UserID, "Something went wrong, please try again")
	}

	return c.reply(ctx, event.UserID,
		fmt.Sprintf("Gave %d points to <@%d>. New balance: %d", event.Amount, event.TargetID, newBalance))
}

func (c *commandConsumer) reply(ctx context.Context, userID int64, text string) error {
	if _, err := c.gateway.Reply(ctx, userID, text); err != nil {
		c.logger.Error("Failed to send reply",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return err
	}

	return nil
}
