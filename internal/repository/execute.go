package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/LenaDzi1/TimeManager-sub001/internal/metrics"

	"github.com/jmoiron/sqlx"
)

const (
	opNonQuery = "nonquery"
	opScalar   = "scalar"
	opQuery    = "query"
)

// ExecuteNonQuery runs a statement that yields no result set and returns the rows affected.
func (r *Repository) ExecuteNonQuery(ctx context.Context, statement string, params Params) (int64, error) {
	var affected int64
	err := r.execute(ctx, opNonQuery, statement, func(ctx context.Context, conn *Conn) error {
		result, err := conn.ExecContext(ctx, statement, params.Args()...)
		if err != nil {
			return err
		}
		affected, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// ExecuteScalar returns the first column of the first row. ok is false when no row matched.
func (r *Repository) ExecuteScalar(ctx context.Context, statement string, params Params) (value any, ok bool, err error) {
	err = r.execute(ctx, opScalar, statement, func(ctx context.Context, conn *Conn) error {
		rows, err := conn.QueryxContext(ctx, statement, params.Args()...)
		if err != nil {
			return err
		}
		defer rows.Close()

		columns, err := readColumns(rows)
		if err != nil {
			return err
		}
		if len(columns) == 0 || !rows.Next() {
			return rows.Err()
		}
		row, err := readRow(rows, columns)
		if err != nil {
			return err
		}
		value, ok = row[0], true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return value, ok, nil
}

// ExecuteQuery materializes the full result set of statement.
func (r *Repository) ExecuteQuery(ctx context.Context, statement string, params Params) (*Table, error) {
	var table *Table
	err := r.execute(ctx, opQuery, statement, func(ctx context.Context, conn *Conn) error {
		rows, err := conn.QueryxContext(ctx, statement, params.Args()...)
		if err != nil {
			return err
		}
		defer rows.Close()

		table, err = readTable(rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}

// execute owns the connection for one call: it is opened here and released on
// every return path. Failures are never retried.
func (r *Repository) execute(ctx context.Context, op, statement string, run func(ctx context.Context, conn *Conn) error) (err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveStatement(op, time.Since(start), err)
	}()

	if r.cfg.CommandTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.CommandTimeout)
		defer cancel()
	}

	conn, err := r.OpenConnection(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := run(ctx, conn); err != nil {
		return &StatementError{Statement: statement, Err: err}
	}
	return nil
}

// txScan reads one row inside a transaction into dest. sql.ErrNoRows is returned
// as is; any other failure is a *StatementError.
func txScan(ctx context.Context, tx *sqlx.Tx, statement string, params Params, dest ...any) error {
	start := time.Now()
	err := tx.QueryRowxContext(ctx, statement, params.Args()...).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		metrics.ObserveStatement(opScalar, time.Since(start), nil)
		return err
	}
	metrics.ObserveStatement(opScalar, time.Since(start), err)
	if err != nil {
		return &StatementError{Statement: statement, Err: err}
	}
	return nil
}

func txExec(ctx context.Context, tx *sqlx.Tx, statement string, params Params) (int64, error) {
	start := time.Now()
	result, err := tx.ExecContext(ctx, statement, params.Args()...)
	if err == nil {
		var affected int64
		affected, err = result.RowsAffected()
		if err == nil {
			metrics.ObserveStatement(opNonQuery, time.Since(start), nil)
			return affected, nil
		}
	}
	metrics.ObserveStatement(opNonQuery, time.Since(start), err)
	return 0, &StatementError{Statement: statement, Err: err}
}
