package model

import "time"

type Reward struct {
	ID        int64
	Name      string
	PointCost int
}

type RedeemedReward struct {
	RewardName   string
	RedeemedDate time.Time
	PointsSpent  int
}
