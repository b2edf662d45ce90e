package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/braddotcoffee/MinimalRoboBanana/internal/constants"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/metrics"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/repository"
	"go.uber.org/zap"
)

// PointsService exposes ledger reads and the admin grant path.
type PointsService interface {
	GetBalance(ctx context.Context, userID int64) (int64, error)
	GivePoints(ctx context.Context, userID int64, amount int64) (int64, error)
}

type pointsService struct {
	ledgerRepo repository.LedgerRepository
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

func NewPointsService(ledgerRepo repository.LedgerRepository, logger *zap.Logger,
	metrics *metrics.Metrics) PointsService {
	return &pointsService{ledgerRepo: ledgerRepo, logger: logger, metrics: metrics}
}

// GetBalance is a pure read; unknown users report a zero balance.
func (s *pointsService) GetBalance(ctx context.Context, userID int64) (int64, error) {
	start := time.Now()

	balance, err := s.ledgerRepo.GetBalance(ctx, userID)
	duration := time.Since(start)

	if err != nil {
		s.logger.Error("Failed to get point balance",
			zap.Int64("user_id", userID),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		s.metrics.RecordDBQuery("select", "channel_points", "error", duration)
		return 0, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	s.metrics.RecordDBQuery("select", "channel_points", "success", duration)
	s.metrics.UpdatePointBalance(strconv.FormatInt(userID, 10), balance)

	return balance, nil
}

// GivePoints is the moderator grant. It deposits into an existing row without
// advancing the accrual timestamp, so it never resets the chat cooldown.
func (s *pointsService) GivePoints(ctx context.Context, userID int64, amount int64) (int64, error) {
	// The unconditional points + ? deposit would drive a balance negative.
	if amount <= 0 {
		return 0, NewServiceError(constants.ErrCodeValidationFailed,
			fmt.Errorf("amount must be positive, got %d", amount))
	}

	newBalance, err := s.ledgerRepo.Deposit(ctx, userID, amount)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return 0, NewServiceError(constants.ErrCodeUserNotFound, err)
		}

		s.logger.Error("Failed to deposit points",
			zap.Int64("user_id", userID),
			zap.Int64("amount", amount),
			zap.Error(err),
		)
		return 0, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	s.logger.Info("Points deposited",
		zap.Int64("user_id", userID),
		zap.Int64("amount", amount),
		zap.Int64("new_balance", newBalance),
	)

	return newBalance, nil
}
