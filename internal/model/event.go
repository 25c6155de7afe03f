package model

import (
	"fmt"
	"strings"
	"time"
)

// QuickTaskMaxDuration is the longest duration, in minutes, of a quick task.
const QuickTaskMaxDuration = 30

type Priority int

const (
	PriorityLow Priority = iota
	PriorityNormal
	PriorityHigh
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityNormal:
		return "normal"
	case PriorityHigh:
		return "high"
	default:
		return fmt.Sprintf("priority(%d)", int(p))
	}
}

func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return PriorityLow, nil
	case "", "normal":
		return PriorityNormal, nil
	case "high":
		return PriorityHigh, nil
	default:
		return 0, fmt.Errorf("unknown priority %q", s)
	}
}

type Event struct {
	ID       int64
	Title    *string
	Duration int
	Priority Priority
	Due      time.Time
	Done     bool
}

// IsQuickTask reports whether e is an open, low-priority task short enough to be done quickly.
func (e *Event) IsQuickTask() bool {
	return !e.Done && e.Priority == PriorityLow && e.Duration <= QuickTaskMaxDuration
}
