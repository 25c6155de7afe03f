package report

import (
	"fmt"
	"strconv"

	"github.com/LenaDzi1/TimeManager-sub001/internal/model"

	"github.com/goccy/go-json"
)

type State int

const (
	StateOpen State = iota
	StatePopulated
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StatePopulated:
		return "populated"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Dialog is a read-only list report. It never touches the database; rows are
// mapped from a collection fetched by the caller.
type Dialog struct {
	Title   string
	Columns []string
	Rows    [][]string
	State   State
}

// NewDialog maps items into rows. A nil collection is treated as empty.
func NewDialog[T any](title string, columns []string, items []T, mapRow func(T) []string) *Dialog {
	d := &Dialog{
		Title:   title,
		Columns: columns,
		Rows:    make([][]string, 0, len(items)),
		State:   StateOpen,
	}
	for _, item := range items {
		d.Rows = append(d.Rows, mapRow(item))
	}
	d.State = StatePopulated
	return d
}

// Close marks the dialog closed. Closing twice has no effect.
func (d *Dialog) Close() {
	d.State = StateClosed
}

func (d *Dialog) Len() int {
	return len(d.Rows)
}

func (d *Dialog) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Title   string     `json:"title"`
		Columns []string   `json:"columns"`
		Rows    [][]string `json:"rows"`
		State   string     `json:"state"`
	}{
		Title:   d.Title,
		Columns: d.Columns,
		Rows:    d.Rows,
		State:   d.State.String(),
	})
}

const (
	untitled        = "(untitled)"
	redeemedLayout  = "2006-01-02 15:04"
	quickTasksTitle = "Quick tasks"
	redeemedTitle   = "Redeemed rewards"
)

func QuickTasksDialog(events []*model.Event) *Dialog {
	return NewDialog(quickTasksTitle, []string{"Title", "Duration"}, events, func(e *model.Event) []string {
		title := untitled
		if e.Title != nil {
			title = *e.Title
		}
		return []string{title, strconv.Itoa(e.Duration) + " min"}
	})
}

func RedeemedRewardsDialog(rewards []*model.RedeemedReward) *Dialog {
	return NewDialog(redeemedTitle, []string{"Reward", "Redeemed", "Points"}, rewards, func(r *model.RedeemedReward) []string {
		return []string{r.RewardName, r.RedeemedDate.Format(redeemedLayout), strconv.Itoa(r.PointsSpent)}
	})
}
