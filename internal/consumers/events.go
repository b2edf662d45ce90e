package consumers

// MessageEvent is one chat message observed by the platform connection.
type MessageEvent struct {
	UserID    int64 `json:"user_id"`
	ChannelID int64 `json:"channel_id"`
}

// CommandEvent is one slash-command invocation. Fields beyond Command and
// UserID are populated per command.
type CommandEvent struct {
	Command  string `json:"command"`
	UserID   int64  `json:"user_id"`
	Reward   string `json:"reward,omitempty"`
	Cost     int64  `json:"cost,omitempty"`
	TargetID int64  `json:"target_id,omitempty"`
	Amount   int64  `json:"amount,omitempty"`
}

const (
	CommandRedeem       = "redeem"
	CommandListRewards  = "list_rewards"
	CommandPointBalance = "point_balance"
	CommandAddReward    = "add_reward"
	CommandRemoveReward = "remove_reward"
	CommandGivePoints   = "give_points"
)
