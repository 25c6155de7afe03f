package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/LenaDzi1/TimeManager-sub001/internal/model"
	"github.com/LenaDzi1/TimeManager-sub001/internal/repository"
)

type EventService struct {
	repo EventRepository
}

func NewEventService(repo EventRepository) *EventService {
	return &EventService{
		repo: repo,
	}
}

func (s *EventService) Create(ctx context.Context, event *model.Event) error {
	if event.Duration < 0 {
		return fmt.Errorf("%w: negative duration %d", ErrInvalidEvent, event.Duration)
	}
	if event.Due.IsZero() {
		return fmt.Errorf("%w: due date is required", ErrInvalidEvent)
	}

	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	return nil
}

func (s *EventService) Complete(ctx context.Context, id int64) error {
	err := s.repo.MarkEventDone(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to complete event %d: %w", id, err)
	}

	return nil
}
