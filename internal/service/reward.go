package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/braddotcoffee/MinimalRoboBanana/internal/constants"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/metrics"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/model"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/repository"
	"go.uber.org/zap"
)

// InsufficientPointsError carries the balance and cost that the user-facing
// reply reports.
type InsufficientPointsError struct {
	Balance int64
	Cost    int64
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("insufficient points: balance %d, cost %d", e.Balance, e.Cost)
}

type RedeemResult struct {
	Name       string
	Cost       int64
	NewBalance int64
}

// RewardService is the redemption engine plus the catalog admin surface.
type RewardService interface {
	Redeem(ctx context.Context, name string, userID int64) (RedeemResult, error)
	ListRewards(ctx context.Context) ([]model.Reward, error)
	AddReward(ctx context.Context, name string, pointCost int64) (model.Reward, error)
	RemoveReward(ctx context.Context, name string) error
}

type rewardService struct {
	ledgerRepo repository.LedgerRepository
	rewardRepo repository.RewardRepository
	txManager  repository.TxManager
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

func NewRewardService(ledgerRepo repository.LedgerRepository, rewardRepo repository.RewardRepository,
	txManager repository.TxManager, logger *zap.Logger, metrics *metrics.Metrics) RewardService {
	return &rewardService{
		ledgerRepo: ledgerRepo,
		rewardRepo: rewardRepo,
		txManager:  txManager,
		logger:     logger,
		metrics:    metrics,
	}
}

// Redeem exchanges points for the named reward. Sufficiency is enforced by
// the ledger's conditional debit, not by a prior balance read, so two
// concurrent redemptions can never both spend the same points.
func (s *rewardService) Redeem(ctx context.Context, name string, userID int64) (RedeemResult, error) {
	cost, err := s.rewardRepo.GetCost(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrRewardNotFound) {
			s.metrics.RecordRedemption("reward_not_found")
			return RedeemResult{}, NewServiceError(constants.ErrCodeRewardNotFound, err)
		}

		s.logger.Error("Failed to look up reward cost",
			zap.String("reward", name),
			zap.Error(err),
		)
		s.metrics.RecordRedemption("error")
		return RedeemResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	var newBalance int64

	err = s.txManager.WithTx(ctx, func(ctx context.Context) error {
		newBalance, err = s.ledgerRepo.Debit(ctx, userID, cost)
		return err
	})

	if err != nil {
		if errors.Is(err, repository.ErrInsufficientPoints) || errors.Is(err, repository.ErrUserNotFound) {
			// A user with no ledger row can never afford a reward; report
			// the same outcome with a zero balance.
			balance := int64(0)
			if !errors.Is(err, repository.ErrUserNotFound) {
				var balanceErr error
				balance, balanceErr = s.ledgerRepo.GetBalance(ctx, userID)
				if balanceErr != nil {
					s.logger.Error("Failed to read balance after rejected debit",
						zap.Int64("user_id", userID),
						zap.Error(balanceErr),
					)
				}
			}

			s.metrics.RecordRedemption("insufficient_points")
			return RedeemResult{}, NewServiceError(constants.ErrCodeInsufficientPoints,
				&InsufficientPointsError{Balance: balance, Cost: cost})
		}

		s.logger.Error("Failed to debit points",
			zap.Int64("user_id", userID),
			zap.String("reward", name),
			zap.Int64("cost", cost),
			zap.Error(err),
		)
		s.metrics.RecordRedemption("error")
		return RedeemResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	s.metrics.RecordRedemption("redeemed")
	s.logger.Info("Reward redeemed",
		zap.Int64("user_id", userID),
		zap.String("reward", name),
		zap.Int64("cost", cost),
		zap.Int64("new_balance", newBalance),
	)

	return RedeemResult{Name: name, Cost: cost, NewBalance: newBalance}, nil
}

func (s *rewardService) ListRewards(ctx context.Context) ([]model.Reward, error) {
	start := time.Now()

	rewards, err := s.rewardRepo.FindAll(ctx)
	if err != nil {
		s.metrics.RecordDBQuery("select", "channel_rewards", "error", time.Since(start))
		return nil, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	s.metrics.RecordDBQuery("select", "channel_rewards", "success", time.Since(start))

	return rewards, nil
}

func (s *rewardService) AddReward(ctx context.Context, name string, pointCost int64) (model.Reward, error) {
	// A negative cost would turn redemption into a free credit: the debit
	// guard points >= cost always holds and points - cost grows the balance.
	if pointCost < 0 {
		return model.Reward{}, NewServiceError(constants.ErrCodeValidationFailed,
			fmt.Errorf("point cost must not be negative, got %d", pointCost))
	}

	reward := model.Reward{Name: name, PointCost: pointCost}

	if err := s.rewardRepo.Create(ctx, &reward); err != nil {
		s.logger.Error("Failed to create reward",
			zap.String("reward", name),
			zap.Int64("point_cost", pointCost),
			zap.Error(err),
		)
		return model.Reward{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	s.logger.Info("Reward created",
		zap.String("reward", name),
		zap.Int64("point_cost", pointCost),
	)

	return reward, nil
}

func (s *rewardService) RemoveReward(ctx context.Context, name string) error {
	deleted, err := s.rewardRepo.DeleteByName(ctx, name)
	if err != nil {
		s.logger.Error("Failed to remove reward",
			zap.String("reward", name),
			zap.Error(err),
		)
		return NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	if deleted == 0 {
		return NewServiceError(constants.ErrCodeRewardNotFound, repository.ErrRewardNotFound)
	}

	s.logger.Info("Reward removed",
		zap.String("reward", name),
		zap.Int64("deleted", deleted),
	)

	return nil
}
