package service

import (
	"context"
	"time"

	"github.com/braddotcoffee/MinimalRoboBanana/internal/config"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/constants"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/metrics"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/repository"
	"go.uber.org/zap"
)

// AccrualService turns chat activity into point grants, subject to the
// per-user cooldown window.
type AccrualService interface {
	Accrue(ctx context.Context, userID int64) error
}

type accrualService struct {
	ledgerRepo repository.LedgerRepository
	cfg        *config.Config
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

func NewAccrualService(ledgerRepo repository.LedgerRepository, cfg *config.Config,
	logger *zap.Logger, metrics *metrics.Metrics) AccrualService {
	return &accrualService{ledgerRepo: ledgerRepo, cfg: cfg, logger: logger, metrics: metrics}
}

// Accrue grants a flat BasePoints when the user has never accrued before, or
// when at least the cooldown has elapsed since their last grant. Messages
// inside the window are a no-op.
//
// Role multipliers exist in config but are deliberately not applied here.
func (s *accrualService) Accrue(ctx context.Context, userID int64) error {
	start := time.Now()

	last, err := s.ledgerRepo.GetLastAccrual(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to read last accrual",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		s.metrics.RecordDBQuery("select", "channel_points", "error", time.Since(start))
		return NewServiceError(constants.ErrCodeOperationFailed, err)
	}
	s.metrics.RecordDBQuery("select", "channel_points", "success", time.Since(start))

	now := time.Now()

	if last != nil && now.Sub(*last) < s.cfg.Accrual.Cooldown {
		s.metrics.RecordAccrualSkipped()
		return nil
	}

	if err := s.ledgerRepo.Credit(ctx, userID, s.cfg.Accrual.BasePoints, now); err != nil {
		s.logger.Error("Failed to credit points",
			zap.Int64("user_id", userID),
			zap.Int64("amount", s.cfg.Accrual.BasePoints),
			zap.Error(err),
		)
		return NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	s.metrics.RecordAccrualGranted()
	s.logger.Info("Points accrued",
		zap.Int64("user_id", userID),
		zap.Int64("amount", s.cfg.Accrual.BasePoints),
	)

	return nil
}
