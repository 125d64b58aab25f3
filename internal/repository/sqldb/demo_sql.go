package sqldb

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"hellodemo/internal/repository"
)

// countByUIDQuery is rebound to the driver's placeholder style ($1 or ?).
const countByUIDQuery = `SELECT COUNT(*) FROM temp_table WHERE uid = ?`

// DemoSQL is a database/sql implementation of repository.DemoRepository.
// It works against Postgres and MySQL; the driver name decides the bind style.
type DemoSQL struct {
	db          *sqlx.DB
	countByUIDQ string
}

// NewDemoSQL creates a new DemoSQL repository. driver is the dialect name
// ("postgres" or "mysql"), not the registered (possibly wrapped) driver.
func NewDemoSQL(db *sql.DB, driver string) *DemoSQL {
	x := sqlx.NewDb(db, driver)
	return &DemoSQL{
		db:          x,
		countByUIDQ: x.Rebind(countByUIDQuery),
	}
}

var _ repository.DemoRepository = (*DemoSQL)(nil)

// CountByUID executes the count with uid as a bound argument.
func (r *DemoSQL) CountByUID(ctx context.Context, uid int64) (*int64, error) {
	var n sql.NullInt64
	if err := r.db.GetContext(ctx, &n, r.countByUIDQ, uid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if !n.Valid {
		return nil, nil
	}
	return &n.Int64, nil
}
