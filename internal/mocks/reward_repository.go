package mocks

import (
	"context"

	"github.com/braddotcoffee/MinimalRoboBanana/internal/model"
	"github.com/stretchr/testify/mock"
)

type RewardRepository struct {
	mock.Mock
}

func (m *RewardRepository) Create(ctx context.Context, reward *model.Reward) error {
	args := m.Called(ctx, reward)
	return args.Error(0)
}

func (m *RewardRepository) DeleteByName(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RewardRepository) FindAll(ctx context.Context) ([]model.Reward, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Reward), args.Error(1)
}

func (m *RewardRepository) GetCost(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}
