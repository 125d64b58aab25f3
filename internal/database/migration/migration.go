package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"hellodemo/internal/config"
)

type migrationStep struct {
	Name string
	SQL  string
}

type dialect struct {
	sentinel string
	steps    []migrationStep
}

var dialects = map[string]dialect{
	config.DriverPostgres: {
		sentinel: "SELECT to_regclass('public.temp_table') IS NOT NULL",
		steps: []migrationStep{
			{
				Name: "create_table_temp_table",
				SQL: `CREATE TABLE IF NOT EXISTS temp_table (
  id  BIGSERIAL PRIMARY KEY,
  uid INTEGER   NOT NULL
);`,
			},
			{
				Name: "create_index_temp_table_uid",
				SQL:  `CREATE INDEX IF NOT EXISTS idx_temp_table_uid ON temp_table (uid);`,
			},
		},
	},
	config.DriverMySQL: {
		sentinel: "SELECT COUNT(*) > 0 FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = 'temp_table'",
		steps: []migrationStep{
			{
				Name: "create_table_temp_table",
				SQL: `CREATE TABLE IF NOT EXISTS temp_table (
  id  BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
  uid INT    NOT NULL,
  INDEX idx_temp_table_uid (uid)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,
			},
		},
	},
}

// EnsureMigrated checks if the 'temp_table' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, driver string, log logrus.FieldLogger, dbHost string) error {
	start := time.Now()

	d, ok := dialects[driver]
	if !ok {
		return fmt.Errorf("no migrations for driver %q", driver)
	}

	log = log.WithFields(logrus.Fields{
		"component": "database",
		"db_host":   dbHost,
		"db_driver": driver,
	})
	log.WithField("status", "starting").Info("db_migration_check")

	var exists bool
	if err := db.QueryRowContext(ctx, d.sentinel).Scan(&exists); err != nil {
		log.WithFields(logrus.Fields{
			"status":      "error",
			"error":       err.Error(),
			"duration_ms": time.Since(start).Milliseconds(),
		}).Error("db_migration_failed")
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.WithFields(logrus.Fields{
			"status":      "success",
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("db_migration_skip")
		return nil
	}

	log.WithField("status", "in_progress").Info("db_migration_start")

	for _, step := range d.steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.WithFields(logrus.Fields{
				"status":           "error",
				"migration_step":   step.Name,
				"error":            err.Error(),
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			}).Error("db_migration_failed")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.WithFields(logrus.Fields{
			"status":           "success",
			"migration_step":   step.Name,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		}).Info("db_migration_step")
	}

	log.WithFields(logrus.Fields{
		"status":      "success",
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("db_migration_success")

	return nil
}
