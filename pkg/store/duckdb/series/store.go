package series

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/rate-atlas/pkg/models/store"
)

// Store persists fetched series snapshots keyed by (series id, observation start).
type Store interface {
	Get(ctx context.Context, seriesID string, start time.Time) (*store.SeriesSnapshot, error)
	Put(ctx context.Context, snapshot store.SeriesSnapshot) error
}

type seriesStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &seriesStore{db: db}, nil
}

// Get returns nil without error when no snapshot exists.
func (s *seriesStore) Get(ctx context.Context, seriesID string, start time.Time) (*store.SeriesSnapshot, error) {
	var fetchedAt time.Time
	err := s.db.QueryRowContext(ctx,
		`SELECT fetched_at FROM series_snapshots WHERE series_id = ? AND observation_start = ?`,
		seriesID, start,
	).Scan(&fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT observed_at, value
		FROM series_observations
		WHERE series_id = ? AND observation_start = ?
		ORDER BY observed_at ASC
	`, seriesID, start)
	if err != nil {
		return nil, fmt.Errorf("query observations: %w", err)
	}
	defer rows.Close()

	points, err := scanPoints(rows)
	if err != nil {
		return nil, fmt.Errorf("scan observations: %w", err)
	}

	return &store.SeriesSnapshot{
		SeriesID:  seriesID,
		Start:     start,
		FetchedAt: fetchedAt,
		Points:    points,
	}, nil
}

// Put replaces the snapshot for its key in a single transaction.
func (s *seriesStore) Put(ctx context.Context, snapshot store.SeriesSnapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := deleteSnapshot(ctx, tx, snapshot.SeriesID, snapshot.Start); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO series_snapshots (series_id, observation_start, fetched_at) VALUES (?, ?, ?)`,
		snapshot.SeriesID, snapshot.Start, snapshot.FetchedAt,
	)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	if len(snapshot.Points) > 0 {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO series_observations (
				series_id, observation_start, observed_at, value
			) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, p := range snapshot.Points {
			var value sql.NullFloat64
			if p.Value != nil {
				value = sql.NullFloat64{Float64: *p.Value, Valid: true}
			}
			if _, err := stmt.ExecContext(ctx, snapshot.SeriesID, snapshot.Start, p.Date, value); err != nil {
				return fmt.Errorf("insert observation: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

func deleteSnapshot(ctx context.Context, tx *sql.Tx, seriesID string, start time.Time) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM series_observations WHERE series_id = ? AND observation_start = ?`,
		seriesID, start,
	); err != nil {
		return fmt.Errorf("delete observations: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM series_snapshots WHERE series_id = ? AND observation_start = ?`,
		seriesID, start,
	); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

func scanPoints(rows *sql.Rows) ([]store.SeriesPoint, error) {
	points := make([]store.SeriesPoint, 0)
	for rows.Next() {
		var (
			date  time.Time
			value sql.NullFloat64
		)
		if err := rows.Scan(&date, &value); err != nil {
			return nil, err
		}
		p := store.SeriesPoint{Date: date}
		if value.Valid {
			v := value.Float64
			p.Value = &v
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
