package repository

import "context"

// DemoRepository defines data access for temp_table using SQL queries only.
// No business logic here, strictly persistence operations.
type DemoRepository interface {
	// CountByUID returns the number of temp_table rows whose uid matches.
	// A nil count with a nil error means the query produced no row.
	CountByUID(ctx context.Context, uid int64) (*int64, error)
}
