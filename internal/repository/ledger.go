package repository

import (
	"context"
	"errors"
	"time"

	"github.com/braddotcoffee/MinimalRoboBanana/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrUserNotFound       = errors.New("USER_NOT_FOUND")
	ErrInsufficientPoints = errors.New("INSUFFICIENT_POINTS")
)

// LedgerRepository owns the per-user points rows. Every mutation is a single
// atomic statement so concurrent accruals and redemptions for the same user
// cannot lose updates.
type LedgerRepository interface {
	GetBalance(ctx context.Context, userID int64) (int64, error)
	GetLastAccrual(ctx context.Context, userID int64) (*time.Time, error)
	Credit(ctx context.Context, userID int64, amount int64, at time.Time) error
	Deposit(ctx context.Context, userID int64, amount int64) (int64, error)
	Debit(ctx context.Context, userID int64, amount int64) (int64, error)
}

type ledger struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledger{db: db}
}

func (r *ledger) GetBalance(ctx context.Context, userID int64) (int64, error) {
	db := GetTx(ctx, r.db)

	var cp model.ChannelPoints
	err := db.Where("user_id = ?", userID).First(&cp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return cp.Points, nil
}

func (r *ledger) GetLastAccrual(ctx context.Context, userID int64) (*time.Time, error) {
	db := GetTx(ctx, r.db)

	var cp model.ChannelPoints
	err := db.Where("user_id = ?", userID).First(&cp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return cp.LastAccrualAt, nil
}

// Credit adds points and advances the accrual timestamp, creating the row for
// first-time chatters. Runs as one upsert statement.
func (r *ledger) Credit(ctx context.Context, userID int64, amount int64, at time.Time) error {
	db := GetTx(ctx, r.db)

	cp := model.ChannelPoints{UserID: userID, Points: amount, LastAccrualAt: &at}

	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"points":          gorm.Expr("points + ?", amount),
			"last_accrual_at": at,
		}),
	}).Create(&cp).Error
}

// Deposit adds points without touching the accrual timestamp, so an admin
// grant does not reset the chat cooldown. The row must already exist.
func (r *ledger) Deposit(ctx context.Context, userID int64, amount int64) (int64, error) {
	db := GetTx(ctx, r.db)

	res := db.Model(&model.ChannelPoints{}).
		Where("user_id = ?", userID).
		Update("points", gorm.Expr("points + ?", amount))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrUserNotFound
	}

	return r.GetBalance(ctx, userID)
}

// Debit withdraws points only when the balance covers the amount. The guard
// lives in the UPDATE itself, so two concurrent redemptions cannot both
// succeed on a balance that covers only one of them.
func (r *ledger) Debit(ctx context.Context, userID int64, amount int64) (int64, error) {
	db := GetTx(ctx, r.db)

	res := db.Model(&model.ChannelPoints{}).
		Where("user_id = ? AND points >= ?", userID, amount).
		Update("points", gorm.Expr("points - ?", amount))
	if res.Error != nil {
		return 0, res.Error
	}

	if res.RowsAffected == 0 {
		var cp model.ChannelPoints
		err := db.Where("user_id = ?", userID).First(&cp).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		if err != nil {
			return 0, err
		}

		// A zero-cost debit leaves the row unchanged, which MySQL reports
		// as zero affected rows.
		if amount == 0 {
			return cp.Points, nil
		}

		return 0, ErrInsufficientPoints
	}

	return r.GetBalance(ctx, userID)
}
