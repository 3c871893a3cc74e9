package models

// RewardCategory groups catalog entries on the shop page.
type RewardCategory string

const (
	RewardCategoryEdu  RewardCategory = "EDU"
	RewardCategoryTech RewardCategory = "TECH"
)

// Reward is a static catalog entry purchasable with coins.
type Reward struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Cost        int            `json:"cost"`
	Icon        string         `json:"icon"`
	Category    RewardCategory `json:"category"`
}
