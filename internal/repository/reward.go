package repository

import (
	"context"
	"errors"

	"github.com/braddotcoffee/MinimalRoboBanana/internal/model"
	"gorm.io/gorm"
)

var ErrRewardNotFound = errors.New("REWARD_NOT_FOUND")

type RewardRepository interface {
	Create(ctx context.Context, reward *model.Reward) error
	DeleteByName(ctx context.Context, name string) (int64, error)
	FindAll(ctx context.Context) ([]model.Reward, error)
	GetCost(ctx context.Context, name string) (int64, error)
}

type reward struct {
	db *gorm.DB
}

func NewRewardRepository(db *gorm.DB) RewardRepository {
	return &reward{db: db}
}

func (r *reward) Create(ctx context.Context, reward *model.Reward) error {
	db := GetTx(ctx, r.db)
	return db.Create(reward).Error
}

// DeleteByName removes every reward with the given name. Names are not
// structurally unique, so duplicates go together.
func (r *reward) DeleteByName(ctx context.Context, name string) (int64, error) {
	db := GetTx(ctx, r.db)

	res := db.Where("name = ?", name).Delete(&model.Reward{})
	if res.Error != nil {
		return 0, res.Error
	}

	return res.RowsAffected, nil
}

func (r *reward) FindAll(ctx context.Context) ([]model.Reward, error) {
	db := GetTx(ctx, r.db)

	var rewards []model.Reward
	if err := db.Find(&rewards).Error; err != nil {
		return nil, err
	}

	return rewards, nil
}

// GetCost returns the cost of the first reward matching name.
func (r *reward) GetCost(ctx context.Context, name string) (int64, error) {
	db := GetTx(ctx, r.db)

	var rw model.Reward
	err := db.Where("name = ?", name).First(&rw).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrRewardNotFound
	}
	if err != nil {
		return 0, err
	}

	return rw.PointCost, nil
}
