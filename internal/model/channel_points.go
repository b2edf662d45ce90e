package model

import "time"

type ChannelPoints struct {
	UserID        int64      `gorm:"column:user_id;primaryKey"`
	Points        int64      `gorm:"column:points;not null;default:0"`
	LastAccrualAt *time.Time `gorm:"column:last_accrual_at"`
}

func (ChannelPoints) TableName() string {
	return "channel_points"
}
