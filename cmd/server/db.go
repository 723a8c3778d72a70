package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/restaurant-seat-reservation/internal/config"
	"github.com/iliyamo/restaurant-seat-reservation/internal/database"
)

var errNeedsMySQL = errors.New("this command needs STORAGE=mysql")

// openDB opens the MySQL pool described by cfg and, when migrate is set,
// applies pending schema migrations.
func openDB(ctx context.Context, cfg config.Config, migrate bool) (*sql.DB, error) {
	if cfg.Storage != config.StorageMySQL {
		return nil, errNeedsMySQL
	}
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if migrate {
		if _, err := database.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return db, nil
}
