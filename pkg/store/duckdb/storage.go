package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const SeriesSnapshotsSchema = `
	CREATE TABLE IF NOT EXISTS series_snapshots (
		series_id VARCHAR NOT NULL,
		observation_start DATE NOT NULL,
		fetched_at TIMESTAMP NOT NULL,
		PRIMARY KEY (series_id, observation_start)
	);
`
const SeriesObservationsSchema = `
	CREATE TABLE IF NOT EXISTS series_observations (
		series_id VARCHAR NOT NULL,
		observation_start DATE NOT NULL,
		observed_at DATE NOT NULL,
		value DOUBLE,
		PRIMARY KEY (series_id, observation_start, observed_at)
	);
`

var bootQueries = []string{
	SeriesSnapshotsSchema,
	SeriesObservationsSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
