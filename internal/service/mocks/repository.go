package mocks

import (
	"context"
	"time"

	"github.com/LenaDzi1/TimeManager-sub001/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) ListQuickTasks(ctx context.Context) ([]*model.Event, error) {
	args := m.Called(ctx)
	events, _ := args.Get(0).([]*model.Event)
	return events, args.Error(1)
}

func (m *MockReportRepository) ListRedeemedRewards(ctx context.Context) ([]*model.RedeemedReward, error) {
	args := m.Called(ctx)
	rewards, _ := args.Get(0).([]*model.RedeemedReward)
	return rewards, args.Error(1)
}

func (m *MockReportRepository) CountEventsDueBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) CreateEvent(ctx context.Context, event *model.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) MarkEventDone(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockRewardRepository struct {
	mock.Mock
}

func (m *MockRewardRepository) RedeemReward(ctx context.Context, rewardID int64, at time.Time) (*model.RedeemedReward, error) {
	args := m.Called(ctx, rewardID, at)
	redeemed, _ := args.Get(0).(*model.RedeemedReward)
	return redeemed, args.Error(1)
}
