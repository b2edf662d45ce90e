package consumers_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/braddotcoffee/MinimalRoboBanana/internal/constants"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/consumers"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/mocks"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/publishers"
	"github.com/braddotcoffee/MinimalRoboBanana/pkg/chatgateway"
	"github.com/braddotcoffee/MinimalRoboBanana/pkg/mq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// deliverCapture is like deliver but keeps the handler's verdict so tests can
// assert on the requeue decision.
func deliverCapture(mockConsumer *mocks.Consumer, queue string, event any, captured *error) {
	body, _ := json.Marshal(event)
	mockConsumer.On("Consume", mock.Anything, mock.Anything, queue, mock.Anything).
		Run(func(args mock.Arguments) {
			handler := args.Get(3).(mq.Handle)
			*captured = handler(context.Background(), body)
		}).Return(nil)
}

func TestAnnouncementConsumer(t *testing.T) {
	logger := zap.NewNop()

	t.Run("posts mention and reward name to the stream channel", func(t *testing.T) {
		mockGateway := &mocks.ChatGateway{}
		mockConsumer := &mocks.Consumer{}
		ac := consumers.NewAnnouncementConsumer(mockGateway, mockConsumer, botConfig(), logger)

		mockGateway.On("Announce", mock.Anything, streamChannel, "<@123456789> redeemed Shoutout!").
			Return(chatgateway.Response{}, nil)

		var handlerErr error
		deliverCapture(mockConsumer, constants.QueueAnnouncement,
			publishers.RedemptionAnnouncement{UserID: chatterID, RewardName: "Shoutout"}, &handlerErr)

		err := ac.Consume(context.Background())

		assert.NoError(t, err)
		assert.NoError(t, handlerErr)
		mockGateway.AssertExpectations(t)
	})

	t.Run("rate limited post is retried", func(t *testing.T) {
		mockGateway := &mocks.ChatGateway{}
		mockConsumer := &mocks.Consumer{}
		ac := consumers.NewAnnouncementConsumer(mockGateway, mockConsumer, botConfig(), logger)

		mockGateway.On("Announce", mock.Anything, streamChannel, mock.Anything).
			Return(chatgateway.Response{}, chatgateway.ErrRateLimited)

		var handlerErr error
		deliverCapture(mockConsumer, constants.QueueAnnouncement,
			publishers.RedemptionAnnouncement{UserID: chatterID, RewardName: "Shoutout"}, &handlerErr)

		err := ac.Consume(context.Background())

		assert.NoError(t, err)
		var tempErr mq.TempError
		assert.ErrorAs(t, handlerErr, &tempErr)
		assert.ErrorIs(t, handlerErr, chatgateway.ErrRateLimited)
	})

	t.Run("permanent gateway failure is not retried", func(t *testing.T) {
		mockGateway := &mocks.ChatGateway{}
		mockConsumer := &mocks.Consumer{}
		ac := consumers.NewAnnouncementConsumer(mockGateway, mockConsumer, botConfig(), logger)

		mockGateway.On("Announce", mock.Anything, streamChannel, mock.Anything).
			Return(chatgateway.Response{}, chatgateway.ErrUnauthorized)

		var handlerErr error
		deliverCapture(mockConsumer, constants.QueueAnnouncement,
			publishers.RedemptionAnnouncement{UserID: chatterID, RewardName: "Shoutout"}, &handlerErr)

		err := ac.Consume(context.Background())

		assert.NoError(t, err)
		assert.Error(t, handlerErr)
		var tempErr mq.TempError
		assert.False(t, errors.As(handlerErr, &tempErr),
			"permanent errors must not be marked temporary")
	})
}
