package service

import (
	"context"
	"errors"
	"time"

	"github.com/LenaDzi1/TimeManager-sub001/internal/model"
	"github.com/LenaDzi1/TimeManager-sub001/internal/report"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidEvent = errors.New("invalid event")
)

type Service struct {
	*ReportService
	*EventService
	*RewardService
}

func NewService(reportService *ReportService, eventService *EventService, rewardService *RewardService) *Service {
	return &Service{
		ReportService: reportService,
		EventService:  eventService,
		RewardService: rewardService,
	}
}

type ReportServiceI interface {
	QuickTasks(ctx context.Context) (*report.Dialog, error)
	RedeemedRewards(ctx context.Context) (*report.Dialog, error)
	DueCount(ctx context.Context, cutoff time.Time) (int64, error)
}

type ReportRepository interface {
	ListQuickTasks(ctx context.Context) ([]*model.Event, error)
	ListRedeemedRewards(ctx context.Context) ([]*model.RedeemedReward, error)
	CountEventsDueBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type EventServiceI interface {
	Create(ctx context.Context, event *model.Event) error
	Complete(ctx context.Context, id int64) error
}

type EventRepository interface {
	CreateEvent(ctx context.Context, event *model.Event) error
	MarkEventDone(ctx context.Context, id int64) error
}

type RewardServiceI interface {
	Redeem(ctx context.Context, rewardID int64) (*model.RedeemedReward, error)
}

type RewardRepository interface {
	RedeemReward(ctx context.Context, rewardID int64, at time.Time) (*model.RedeemedReward, error)
}
