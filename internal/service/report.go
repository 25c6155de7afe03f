package service

import (
	"context"
	"fmt"
	"time"

	"github.com/LenaDzi1/TimeManager-sub001/internal/report"
)

type ReportService struct {
	repo ReportRepository
}

func NewReportService(repo ReportRepository) *ReportService {
	return &ReportService{
		repo: repo,
	}
}

func (s *ReportService) QuickTasks(ctx context.Context) (*report.Dialog, error) {
	events, err := s.repo.ListQuickTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get quick tasks: %w", err)
	}

	return report.QuickTasksDialog(events), nil
}

func (s *ReportService) RedeemedRewards(ctx context.Context) (*report.Dialog, error) {
	rewards, err := s.repo.ListRedeemedRewards(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get redeemed rewards: %w", err)
	}

	return report.RedeemedRewardsDialog(rewards), nil
}

func (s *ReportService) DueCount(ctx context.Context, cutoff time.Time) (int64, error) {
	count, err := s.repo.CountEventsDueBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to count due events: %w", err)
	}

	return count, nil
}
