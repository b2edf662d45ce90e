package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/braddotcoffee/MinimalRoboBanana/internal/config"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/constants"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/metrics"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/mocks"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

var testMetrics = metrics.NewMetrics()

func accrualConfig() *config.Config {
	return &config.Config{
		Accrual: config.Accrual{
			BasePoints: 50,
			Cooldown:   15 * time.Minute,
		},
	}
}

func TestAccrual_Accrue(t *testing.T) {
	logger := zap.NewNop()
	userID := int64(404997012046357)

	t.Run("first message grants base points", func(t *testing.T) {
		mockLedger := &mocks.LedgerRepository{}
		svc := service.NewAccrualService(mockLedger, accrualConfig(), logger, testMetrics)

		mockLedger.On("GetLastAccrual", context.Background(), userID).Return(nil, nil)
		mockLedger.On("Credit", context.Background(), userID, int64(50),
			mock.MatchedBy(func(at time.Time) bool {
				return time.Since(at) < time.Second
			})).Return(nil)

		err := svc.Accrue(context.Background(), userID)

		assert.NoError(t, err)
		mockLedger.AssertExpectations(t)
		mockLedger.AssertNumberOfCalls(t, "Credit", 1)
	})

	t.Run("message inside cooldown is a no-op", func(t *testing.T) {
		mockLedger := &mocks.LedgerRepository{}
		svc := service.NewAccrualService(mockLedger, accrualConfig(), logger, testMetrics)

		last := time.Now().Add(-14*time.Minute - 59*time.Second)
		mockLedger.On("GetLastAccrual", context.Background(), userID).Return(&last, nil)

		err := svc.Accrue(context.Background(), userID)

		assert.NoError(t, err)
		mockLedger.AssertExpectations(t)
		mockLedger.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("message after cooldown grants base points", func(t *testing.T) {
		mockLedger := &mocks.LedgerRepository{}
		svc := service.NewAccrualService(mockLedger, accrualConfig(), logger, testMetrics)

		last := time.Now().Add(-15 * time.Minute)
		mockLedger.On("GetLastAccrual", context.Background(), userID).Return(&last, nil)
		mockLedger.On("Credit", context.Background(), userID, int64(50), mock.Anything).Return(nil)

		err := svc.Accrue(context.Background(), userID)

		assert.NoError(t, err)
		mockLedger.AssertExpectations(t)
		mockLedger.AssertNumberOfCalls(t, "Credit", 1)
	})

	t.Run("last accrual read failure surfaces operation failed", func(t *testing.T) {
		mockLedger := &mocks.LedgerRepository{}
		svc := service.NewAccrualService(mockLedger, accrualConfig(), logger, testMetrics)

		dbErr := errors.New("connection lost")
		mockLedger.On("GetLastAccrual", context.Background(), userID).Return(nil, dbErr)

		err := svc.Accrue(context.Background(), userID)

		assert.Error(t, err)

		var serviceErr service.Error
		assert.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeOperationFailed, serviceErr.Code)
		mockLedger.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("credit failure surfaces operation failed", func(t *testing.T) {
		mockLedger := &mocks.LedgerRepository{}
		svc := service.NewAccrualService(mockLedger, accrualConfig(), logger, testMetrics)

		dbErr := errors.New("connection lost")
		mockLedger.On("GetLastAccrual", context.Background(), userID).Return(nil, nil)
		mockLedger.On("Credit", context.Background(), userID, int64(50), mock.Anything).Return(dbErr)

		err := svc.Accrue(context.Background(), userID)

		assert.Error(t, err)

		var serviceErr service.Error
		assert.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeOperationFailed, serviceErr.Code)
	})
}
