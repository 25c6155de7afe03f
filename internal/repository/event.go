package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/LenaDzi1/TimeManager-sub001/internal/model"

	"github.com/Masterminds/squirrel"
)

var eventColumns = []string{"Id", "Title", "Duration", "Priority", "Due", "Done"}

// CreateEvent inserts event and sets its ID. Due is stored in UTC, truncated to the second.
func (r *Repository) CreateEvent(ctx context.Context, event *model.Event) error {
	due := SanitizeValue(event.Due.UTC()).(time.Time)

	query, args, err := r.builder().
		Insert("Events").
		Columns("Title", "Duration", "Priority", "Due", "Done").
		Values(event.Title, event.Duration, int(event.Priority), due, event.Done).
		Suffix(r.returningID()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build event insert query: %w", err)
	}

	id, ok, err := r.ExecuteScalar(ctx, query, Positional(args...))
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	if !ok {
		return fmt.Errorf("failed to insert event: no identity returned")
	}

	event.ID, err = asInt64(id)
	if err != nil {
		return fmt.Errorf("failed to read event id: %w", err)
	}
	event.Due = due

	return nil
}

// ListQuickTasks returns open low-priority events no longer than model.QuickTaskMaxDuration.
func (r *Repository) ListQuickTasks(ctx context.Context) ([]*model.Event, error) {
	query, args, err := r.builder().
		Select(eventColumns...).
		From("Events").
		Where(squirrel.Eq{"Done": false, "Priority": int(model.PriorityLow)}).
		Where(squirrel.LtOrEq{"Duration": model.QuickTaskMaxDuration}).
		OrderBy("Due", "Title").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build quick tasks query: %w", err)
	}

	table, err := r.ExecuteQuery(ctx, query, Positional(args...))
	if err != nil {
		return nil, fmt.Errorf("failed to list quick tasks: %w", err)
	}

	events := make([]*model.Event, 0, table.Len())
	for i, row := range table.Maps() {
		event, err := eventFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("failed to read event row %d: %w", i, err)
		}
		events = append(events, event)
	}

	return events, nil
}

// CountEventsDueBefore compares in UTC, whatever the location of cutoff.
func (r *Repository) CountEventsDueBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := r.builder().
		Select("COUNT(*)").
		From("Events").
		Where(squirrel.Lt{"Due": cutoff.UTC()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build due count query: %w", err)
	}

	value, ok, err := r.ExecuteScalar(ctx, query, Positional(args...))
	if err != nil {
		return 0, fmt.Errorf("failed to count due events: %w", err)
	}
	if !ok {
		return 0, nil
	}

	return asInt64(value)
}

func (r *Repository) MarkEventDone(ctx context.Context, id int64) error {
	query, args, err := r.builder().
		Update("Events").
		Set("Done", true).
		Where(squirrel.Eq{"Id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build event update query: %w", err)
	}

	rows, err := r.ExecuteNonQuery(ctx, query, Positional(args...))
	if err != nil {
		return fmt.Errorf("failed to mark event done: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// eventFromRow decodes one row from Table.Maps. Postgres folds unquoted
// identifiers to lower case, so column names are matched case-insensitively.
func eventFromRow(row map[string]any) (*model.Event, error) {
	values := make(map[string]any, len(eventColumns))
	for _, column := range eventColumns {
		v, ok := lookupFold(row, column)
		if !ok {
			return nil, fmt.Errorf("column %q not in result", column)
		}
		values[column] = v
	}

	id, err := asInt64(values["Id"])
	if err != nil {
		return nil, err
	}
	duration, err := asInt64(values["Duration"])
	if err != nil {
		return nil, err
	}
	priority, err := asInt64(values["Priority"])
	if err != nil {
		return nil, err
	}
	due, err := asTime(values["Due"])
	if err != nil {
		return nil, err
	}
	done, err := asBool(values["Done"])
	if err != nil {
		return nil, err
	}

	return &model.Event{
		ID:       id,
		Title:    asNullString(values["Title"]),
		Duration: int(duration),
		Priority: model.Priority(priority),
		Due:      due,
		Done:     done,
	}, nil
}

func lookupFold(row map[string]any, column string) (any, bool) {
	if v, ok := row[column]; ok {
		return v, true
	}
	for name, v := range row {
		if strings.EqualFold(name, column) {
			return v, true
		}
	}
	return nil, false
}
