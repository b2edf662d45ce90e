package mocks

import (
	"context"

	"github.com/braddotcoffee/MinimalRoboBanana/internal/model"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/service"
	"github.com/stretchr/testify/mock"
)

type AccrualService struct {
	mock.Mock
}

func (m *AccrualService) Accrue(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type PointsService struct {
	mock.Mock
}

func (m *PointsService) GetBalance(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PointsService) GivePoints(ctx context.Context, userID int64, amount int64) (int64, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(int64), args.Error(1)
}

type RewardService struct {
	mock.Mock
}

func (m *RewardService) Redeem(ctx context.Context, name string, userID int64) (service.RedeemResult, error) {
	args := m.Called(ctx, name, userID)
	return args.Get(0).(service.RedeemResult), args.Error(1)
}

func (m *RewardService) ListRewards(ctx context.Context) ([]model.Reward, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Reward), args.Error(1)
}

func (m *RewardService) AddReward(ctx context.Context, name string, pointCost int64) (model.Reward, error) {
	args := m.Called(ctx, name, pointCost)
	return args.Get(0).(model.Reward), args.Error(1)
}

func (m *RewardService) RemoveReward(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}
