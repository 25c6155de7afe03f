package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/LenaDzi1/TimeManager-sub001/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

func (r *Repository) CreateReward(ctx context.Context, reward *model.Reward) error {
	query, args, err := r.builder().
		Insert("Rewards").
		Columns("Name", "PointCost").
		Values(reward.Name, reward.PointCost).
		Suffix(r.returningID()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build reward insert query: %w", err)
	}

	id, ok, err := r.ExecuteScalar(ctx, query, Positional(args...))
	if err != nil {
		return fmt.Errorf("failed to insert reward: %w", err)
	}
	if !ok {
		return fmt.Errorf("failed to insert reward: no identity returned")
	}

	reward.ID, err = asInt64(id)
	if err != nil {
		return fmt.Errorf("failed to read reward id: %w", err)
	}

	return nil
}

// ListRedeemedRewards returns the redemption history, newest first.
func (r *Repository) ListRedeemedRewards(ctx context.Context) ([]*model.RedeemedReward, error) {
	query, args, err := r.builder().
		Select("r.Name AS RewardName", "rr.RedeemedDate AS RedeemedDate", "rr.PointsSpent AS PointsSpent").
		From("RedeemedRewards rr").
		Join("Rewards r ON r.Id = rr.RewardId").
		OrderBy("rr.RedeemedDate DESC", "rr.Id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build redeemed rewards query: %w", err)
	}

	table, err := r.ExecuteQuery(ctx, query, Positional(args...))
	if err != nil {
		return nil, fmt.Errorf("failed to list redeemed rewards: %w", err)
	}

	rewards := make([]*model.RedeemedReward, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		reward, err := redeemedRewardFromRow(table, i)
		if err != nil {
			return nil, fmt.Errorf("failed to read redeemed reward row %d: %w", i, err)
		}
		rewards = append(rewards, reward)
	}

	return rewards, nil
}

// RedeemReward records a redemption of rewardID at the reward's current point cost.
// The redemption time is stored in UTC.
func (r *Repository) RedeemReward(ctx context.Context, rewardID int64, at time.Time) (*model.RedeemedReward, error) {
	var redeemed *model.RedeemedReward

	err := r.Transaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		query, args, err := r.builder().
			Select("Name", "PointCost").
			From("Rewards").
			Where(squirrel.Eq{"Id": rewardID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build reward select query: %w", err)
		}

		var name string
		var cost int
		err = txScan(ctx, tx, query, Positional(args...), &name, &cost)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}

		redeemedAt := SanitizeValue(at.UTC()).(time.Time)
		insertQuery, insertArgs, err := r.builder().
			Insert("RedeemedRewards").
			Columns("RewardId", "PointsSpent", "RedeemedDate").
			Values(rewardID, cost, redeemedAt).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build redemption insert query: %w", err)
		}

		if _, err := txExec(ctx, tx, insertQuery, Positional(insertArgs...)); err != nil {
			return err
		}

		redeemed = &model.RedeemedReward{
			RewardName:   name,
			RedeemedDate: redeemedAt,
			PointsSpent:  cost,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return redeemed, nil
}

func redeemedRewardFromRow(t *Table, i int) (*model.RedeemedReward, error) {
	name, err := cell(t, i, "RewardName")
	if err != nil {
		return nil, err
	}
	date, err := cell(t, i, "RedeemedDate")
	if err != nil {
		return nil, err
	}
	points, err := cell(t, i, "PointsSpent")
	if err != nil {
		return nil, err
	}

	redeemedDate, err := asTime(date)
	if err != nil {
		return nil, err
	}
	pointsSpent, err := asInt64(points)
	if err != nil {
		return nil, err
	}

	var rewardName string
	if s := asNullString(name); s != nil {
		rewardName = *s
	}

	return &model.RedeemedReward{
		RewardName:   rewardName,
		RedeemedDate: redeemedDate,
		PointsSpent:  int(pointsSpent),
	}, nil
}
