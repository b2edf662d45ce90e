package consumers_test

import (
	"context"
	"testing"

	"github.com/braddotcoffee/MinimalRoboBanana/internal/constants"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/consumers"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/mocks"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/model"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/publishers"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/repository"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/service"
	"github.com/braddotcoffee/MinimalRoboBanana/pkg/chatgateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type commandFixture struct {
	points    *mocks.PointsService
	rewards   *mocks.RewardService
	announcer *mocks.AnnouncementPublisher
	gateway   *mocks.ChatGateway
	consumer  *mocks.Consumer
	cc        consumers.CommandConsumer
}

func newCommandFixture() *commandFixture {
	f := &commandFixture{
		points:    &mocks.PointsService{},
		rewards:   &mocks.RewardService{},
		announcer: &mocks.AnnouncementPublisher{},
		gateway:   &mocks.ChatGateway{},
		consumer:  &mocks.Consumer{},
	}
	f.cc = consumers.NewCommandConsumer(f.points, f.rewards, f.announcer, f.gateway,
		f.consumer, zap.NewNop())
	return f
}

func (f *commandFixture) expectReply(userID int64, text string) {
	f.gateway.On("Reply", mock.Anything, userID, text).Return(chatgateway.Response{}, nil)
}

func TestCommandConsumer_Redeem(t *testing.T) {
	userID := int64(123456789)

	t.Run("successful redemption publishes announcement", func(t *testing.T) {
		f := newCommandFixture()

		f.rewards.On("Redeem", mock.Anything, "Shoutout", userID).
			Return(service.RedeemResult{Name: "Shoutout", Cost: 30, NewBalance: 20}, nil)
		f.announcer.On("PublishRedemption", mock.Anything,
			publishers.RedemptionAnnouncement{UserID: userID, RewardName: "Shoutout"}).Return(nil)

		deliver(f.consumer, constants.QueueChatCommand,
			consumers.CommandEvent{Command: "redeem", UserID: userID, Reward: "Shoutout"})

		err := f.cc.Consume(context.Background())

		assert.NoError(t, err)
		f.rewards.AssertExpectations(t)
		f.announcer.AssertExpectations(t)
		f.gateway.AssertNotCalled(t, "Reply", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("insufficient points replies with balance and cost", func(t *testing.T) {
		f := newCommandFixture()

		redeemErr := service.NewServiceError(constants.ErrCodeInsufficientPoints,
			&service.InsufficientPointsError{Balance: 20, Cost: 30})
		f.rewards.On("Redeem", mock.Anything, "Shoutout", userID).
			Return(service.RedeemResult{}, redeemErr)
		f.expectReply(userID, "You do not have enough points for Shoutout. Point Balance: 20, Cost: 30")

		deliver(f.consumer, constants.QueueChatCommand,
			consumers.CommandEvent{Command: "redeem", UserID: userID, Reward: "Shoutout"})

		err := f.cc.Consume(context.Background())

		assert.NoError(t, err)
		f.gateway.AssertExpectations(t)
		f.announcer.AssertNotCalled(t, "PublishRedemption", mock.Anything, mock.Anything)
	})

	t.Run("unknown reward replies with not found", func(t *testing.T) {
		f := newCommandFixture()

		redeemErr := service.NewServiceError(constants.ErrCodeRewardNotFound, repository.ErrRewardNotFound)
		f.rewards.On("Redeem", mock.Anything, "Missing", userID).
			Return(service.RedeemResult{}, redeemErr)
		f.expectReply(userID, `Could not find reward "Missing"`)

		deliver(f.consumer, constants.QueueChatCommand,
			consumers.CommandEvent{Command: "redeem", UserID: userID, Reward: "Missing"})

		err := f.cc.Consume(context.Background())

		assert.NoError(t, err)
		f.gateway.AssertExpectations(t)
	})

	t.Run("announcement failure does not undo the redemption", func(t *testing.T) {
		f := newCommandFixture()

		f.rewards.On("Redeem", mock.Anything, "Shoutout", userID).
			Return(service.RedeemResult{Name: "Shoutout", Cost: 30, NewBalance: 20}, nil)
		f.announcer.On("PublishRedemption", mock.Anything, mock.Anything).
			Return(assert.AnError)

		deliver(f.consumer, constants.QueueChatCommand,
			consumers.CommandEvent{Command: "redeem", UserID: userID, Reward: "Shoutout"})

		err := f.cc.Consume(context.Background())

		assert.NoError(t, err)
		f.rewards.AssertExpectations(t)
	})

	t.Run("redeem without reward shows balance and catalog", func(t *testing.T) {
		f := newCommandFixture()

		f.points.On("GetBalance", mock.Anything, userID).Return(int64(80), nil)
		f.rewards.On("ListRewards", mock.Anything).Return([]model.Reward{
			{ID: 1, Name: "Shoutout", PointCost: 30},
			{ID: 2, Name: "Song Request", PointCost: 100},
		}, nil)
		f.expectReply(userID, "You currently have 80 points\n\n(30) Shoutout\n(100) Song Request\n")

		deliver(f.consumer, constants.QueueChatCommand,
			consumers.CommandEvent{Command: "redeem", UserID: userID})

		err := f.cc.Consume(context.Background())

		assert.NoError(t, err)
		f.gateway.AssertExpectations(t)
	})
}

func TestCommandConsumer_Viewer(t *testing.T) {
	userID := int64(123456789)

	t.Run("point_balance replies with current balance", func(t *testing.T) {
		f := newCommandFixture()

		f.points.On("GetBalance", mock.Anything, userID).Return(int64(50), nil)
		f.expectReply(userID, "You currently have 50 points")

		deliver(f.consumer, constants.QueueChatCommand,
			consumers.CommandEvent{Command: "point_balance", UserID: userID})

		err := f.cc.Consume(context.Background())

		assert.NoError(t, err)
		f.gateway.AssertExpectations(t)
	})

	t.Run("list_rewards formats cost and name lines", func(t *testing.T) {
		f := newCommandFixture()

		f.rewards.On("ListRewards", mock.Anything).Return([]model.Reward{
			{ID: 1, Name: "Shoutout", PointCost: 30},
		}, nil)
		f.expectReply(userID, "The rewards currently available to redeem are:\n\n(30) Shoutout\n")

		deliver(f.consumer, constants.QueueChatCommand,
			consumers.CommandEvent{Command: "list_rewards", UserID: userID})

		err := f.cc.Consume(context.Background())

		assert.NoError(t, err)
		f.gateway.AssertExpectations(t)
	})

	t.Run("unknown command is dropped", func(t *testing.T) {
		f := newCommandFixture()

		deliver(f.consumer, constants.QueueChatCommand,
			consumers.CommandEvent{Command: "dance", UserID: userID})

		err := f.cc.Consume(context.Background())

		assert.NoError(t, err)
		f.gateway.AssertNotCalled(t, "Reply", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCommandConsumer_Mod(t *testing.T) {
	modID := int64(42)
	targetID := int64(123456789)

	t.Run("add_reward confirms name and cost", func(t *testing.T) {
		f := newCommandFixture()

		f.rewards.On("AddReward", mock.Anything, "Shoutout", int64(30)).
			Return(model.Reward{ID: 1, Name: "Shoutout", PointCost: 30}, nil)
		f.expectReply(modID, "Added reward Shoutout costing 30 points")

		deliver(f.consumer, constants.QueueChatCommand,
			consumers.CommandEvent{Command: "add_reward", UserID: modID, Reward: "Shoutout", Cost: 30})

		err := f.cc.Consume(context.Background())

		assert.NoError(t, err)
		f.rewards.AssertExpectations(t)
	})

	t.Run("add_reward with negative cost is rejected", func(t *testing.T) {
		f := newCommandFixture()

		f.rewards.On("AddReward", mock.Anything, "Shoutout", int64(-500)).
			Return(model.Reward{}, service.NewServiceError(constants.ErrCodeValidationFailed, assert.AnError))
		f.expectReply(modID, "Point cost must be zero or greater")

		deliver(f.consumer, constants.QueueChatCommand,
			consumers.CommandEvent{Command: "add_reward", UserID: modID, Reward: "Shoutout", Cost: -500})

		err := f.cc.Consume(context.Background())

		assert.NoError(t, err)
		f.gateway.AssertExpectations(t)
	})

	t.Run("remove_reward confirms removal", func(t *testing.T) {
		f := newCommandFixture()

		f.rewards.On("RemoveReward", mock.Anything, "Shoutout").Return(nil)
		f.expectReply(modID, "Removed reward Shoutout")

		deliver(f.consumer, constants.QueueChatCommand,
			consumers.CommandEvent{Command: "remove_reward", UserID: modID, Reward: "Shoutout"})

		err := f.cc.Consume(context.Background())

		assert.NoError(t, err)
		f.rewards.AssertExpectations(t)
	})

	t.Run("give_points reports the new balance", func(t *testing.T) {
		f := newCommandFixture()

		f.points.On("GivePoints", mock.Anything, targetID, int64(25)).Return(int64(75), nil)
		f.expectReply(modID, "Gave 25 points to <@123456789>. New balance: 75")

		deliver(f.consumer, constants.QueueChatCommand,
			consumers.CommandEvent{Command: "give_points", UserID: modID, TargetID: targetID, Amount: 25})

		err := f.cc.Consume(context.Background())

		assert.NoError(t, err)
		f.points.AssertExpectations(t)
	})

	t.Run("give_points with negative amount is rejected", func(t *testing.T) {
		f := newCommandFixture()

		f.points.On("GivePoints", mock.Anything, targetID, int64(-1000)).
			Return(int64(0), service.NewServiceError(constants.ErrCodeValidationFailed, assert.AnError))
		f.expectReply(modID, "Amount must be greater than zero")

		deliver(f.consumer, constants.QueueChatCommand,
			consumers.CommandEvent{Command: "give_points", UserID: modID, TargetID: targetID, Amount: -1000})

		err := f.cc.Consume(context.Background())

		assert.NoError(t, err)
		f.gateway.AssertExpectations(t)
	})
}
