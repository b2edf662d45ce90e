package model

type Reward struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string `gorm:"column:name;type:varchar(100);not null"`
	PointCost int64  `gorm:"column:point_cost;not null"`
}

func (Reward) TableName() string {
	return "channel_rewards"
}
