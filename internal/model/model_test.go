package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvent_IsQuickTask(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  bool
	}{
		{"low and short", Event{Priority: PriorityLow, Duration: 15}, true},
		{"low at the limit", Event{Priority: PriorityLow, Duration: QuickTaskMaxDuration}, true},
		{"low but long", Event{Priority: PriorityLow, Duration: QuickTaskMaxDuration + 1}, false},
		{"normal priority", Event{Priority: PriorityNormal, Duration: 5}, false},
		{"already done", Event{Priority: PriorityLow, Duration: 5, Done: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.event.IsQuickTask())
		})
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in      string
		want    Priority
		wantErr bool
	}{
		{in: "low", want: PriorityLow},
		{in: " HIGH ", want: PriorityHigh},
		{in: "", want: PriorityNormal},
		{in: "urgent", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePriority(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPriority_String(t *testing.T) {
	assert.Equal(t, "low", PriorityLow.String())
	assert.Equal(t, "normal", PriorityNormal.String())
	assert.Equal(t, "high", PriorityHigh.String())
	assert.Equal(t, "priority(7)", Priority(7).String())
}
