package api

import (
	"context"
	"time"

	"github.com/LenaDzi1/TimeManager-sub001/internal/model"
	"github.com/LenaDzi1/TimeManager-sub001/internal/report"

	"github.com/stretchr/testify/mock"
)

type mockReportService struct {
	mock.Mock
}

func (m *mockReportService) QuickTasks(ctx context.Context) (*report.Dialog, error) {
	args := m.Called(ctx)
	dialog, _ := args.Get(0).(*report.Dialog)
	return dialog, args.Error(1)
}

func (m *mockReportService) RedeemedRewards(ctx context.Context) (*report.Dialog, error) {
	args := m.Called(ctx)
	dialog, _ := args.Get(0).(*report.Dialog)
	return dialog, args.Error(1)
}

func (m *mockReportService) DueCount(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type mockEventService struct {
	mock.Mock
}

func (m *mockEventService) Create(ctx context.Context, event *model.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockEventService) Complete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockRewardService struct {
	mock.Mock
}

func (m *mockRewardService) Redeem(ctx context.Context, rewardID int64) (*model.RedeemedReward, error) {
	args := m.Called(ctx, rewardID)
	redeemed, _ := args.Get(0).(*model.RedeemedReward)
	return redeemed, args.Error(1)
}

type mockPinger struct {
	err error
}

func (p mockPinger) Ping(context.Context) error { return p.err }
