package consumers_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/braddotcoffee/MinimalRoboBanana/internal/config"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/constants"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/consumers"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/mocks"
	"github.com/braddotcoffee/MinimalRoboBanana/pkg/mq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

const (
	selfID        = int64(111)
	excludedBotID = int64(488164251249279037)
	streamChannel = int64(999)
	chatterID     = int64(123456789)
)

func botConfig() *config.Config {
	return &config.Config{
		Bot: config.Bot{
			SelfID:          selfID,
			ExcludedBotIDs:  []int64{excludedBotID},
			StreamChannelID: streamChannel,
		},
	}
}

// deliver wires the mock consumer so Consume feeds one event straight into
// the registered handler.
func deliver(mockConsumer *mocks.Consumer, queue string, event any) {
	body, _ := json.Marshal(event)
	mockConsumer.On("Consume", mock.Anything, mock.Anything, queue, mock.Anything).
		Run(func(args mock.Arguments) {
			handler := args.Get(3).(mq.Handle)
			_ = handler(context.Background(), body)
		}).Return(nil)
}

func TestMessageConsumer_Accrual(t *testing.T) {
	logger := zap.NewNop()

	t.Run("stream channel message accrues points", func(t *testing.T) {
		mockAccrual := &mocks.AccrualService{}
		mockConsumer := &mocks.Consumer{}
		mc := consumers.NewMessageConsumer(mockAccrual, mockConsumer, botConfig(), logger)

		deliver(mockConsumer, constants.QueueChatMessage,
			consumers.MessageEvent{UserID: chatterID, ChannelID: streamChannel})
		mockAccrual.On("Accrue", mock.Anything, chatterID).Return(nil)

		err := mc.Consume(context.Background())

		assert.NoError(t, err)
		mockAccrual.AssertExpectations(t)
		mockAccrual.AssertNumberOfCalls(t, "Accrue", 1)
	})

	t.Run("own message is ignored", func(t *testing.T) {
		mockAccrual := &mocks.AccrualService{}
		mockConsumer := &mocks.Consumer{}
		mc := consumers.NewMessageConsumer(mockAccrual, mockConsumer, botConfig(), logger)

		deliver(mockConsumer, constants.QueueChatMessage,
			consumers.MessageEvent{UserID: selfID, ChannelID: streamChannel})

		err := mc.Consume(context.Background())

		assert.NoError(t, err)
		mockAccrual.AssertNotCalled(t, "Accrue", mock.Anything, mock.Anything)
	})

	t.Run("excluded bot message is ignored", func(t *testing.T) {
		mockAccrual := &mocks.AccrualService{}
		mockConsumer := &mocks.Consumer{}
		mc := consumers.NewMessageConsumer(mockAccrual, mockConsumer, botConfig(), logger)

		deliver(mockConsumer, constants.QueueChatMessage,
			consumers.MessageEvent{UserID: excludedBotID, ChannelID: streamChannel})

		err := mc.Consume(context.Background())

		assert.NoError(t, err)
		mockAccrual.AssertNotCalled(t, "Accrue", mock.Anything, mock.Anything)
	})

	t.Run("message outside stream channel is ignored", func(t *testing.T) {
		mockAccrual := &mocks.AccrualService{}
		mockConsumer := &mocks.Consumer{}
		mc := consumers.NewMessageConsumer(mockAccrual, mockConsumer, botConfig(), logger)

		deliver(mockConsumer, constants.QueueChatMessage,
			consumers.MessageEvent{UserID: chatterID, ChannelID: int64(42)})

		err := mc.Consume(context.Background())

		assert.NoError(t, err)
		mockAccrual.AssertNotCalled(t, "Accrue", mock.Anything, mock.Anything)
	})
}
