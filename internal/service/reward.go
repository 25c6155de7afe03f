package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LenaDzi1/TimeManager-sub001/internal/model"
	"github.com/LenaDzi1/TimeManager-sub001/internal/repository"
)

type RewardService struct {
	repo RewardRepository
	now  func() time.Time
}

func NewRewardService(repo RewardRepository) *RewardService {
	return &RewardService{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *RewardService) Redeem(ctx context.Context, rewardID int64) (*model.RedeemedReward, error) {
	redeemed, err := s.repo.RedeemReward(ctx, rewardID, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to redeem reward %d: %w", rewardID, err)
	}

	return redeemed, nil
}
