package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

const RewardNameTag = "reward_name"

var valid = map[string]func(fl validator.FieldLevel) bool{
	RewardNameTag: ValidateRewardName,
}

// Reward names are display strings capped by the storage column; leading or
// trailing whitespace would break name lookups at redemption time.
func ValidateRewardName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if name == "" || len(name) > 100 {
		return false
	}
	return name == strings.TrimSpace(name)
}
