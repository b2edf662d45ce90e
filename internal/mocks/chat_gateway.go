package mocks

import (
	"context"

	"github.com/braddotcoffee/MinimalRoboBanana/pkg/chatgateway"
	"github.com/stretchr/testify/mock"
)

type ChatGateway struct {
	mock.Mock
}

func (m *ChatGateway) Reply(ctx context.Context, userID int64, text string) (chatgateway.Response, error) {
	args := m.Called(ctx, userID, text)
	return args.Get(0).(chatgateway.Response), args.Error(1)
}

func (m *ChatGateway) Announce(ctx context.Context, channelID int64, text string) (chatgateway.Response, error) {
	args := m.Called(ctx, channelID, text)
	return args.Get(0).(chatgateway.Response), args.Error(1)
}
