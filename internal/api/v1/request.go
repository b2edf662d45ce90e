package v1

type CreateRewardRequest struct {
	Name      string `json:"name" validate:"required,reward_name"`
	PointCost int64  `json:"point_cost" validate:"min=0"`
}

type GivePointsRequest struct {
	Amount int64 `json:"amount" validate:"required,min=1"`
}
