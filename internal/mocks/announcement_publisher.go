package mocks

import (
	"context"

	"github.com/braddotcoffee/MinimalRoboBanana/internal/publishers"
	"github.com/stretchr/testify/mock"
)

type AnnouncementPublisher struct {
	mock.Mock
}

func (m *AnnouncementPublisher) PublishRedemption(ctx context.Context, announcement publishers.RedemptionAnnouncement) error {
	args := m.Called(ctx, announcement)
	return args.Error(0)
}
