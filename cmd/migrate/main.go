package main

import (
	"database/sql"
	"time"

	"blackjack-server/internal/config"
	"blackjack-server/pkg/db"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Instance()
	if cfg.PGDSN == "" {
		logrus.Fatal("pgDsn is not configured")
	}

	dbh := waitForDB(cfg.PGDSN)
	defer dbh.Close()

	if err := db.Migrate(dbh, cfg.MigrationsPath); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}

	logrus.Info("migrations complete")
}

func waitForDB(dsn string) *sql.DB {
	timeout := time.NewTimer(time.Second * 10)
	for {
		select {
		case <-timeout.C:
			logrus.Fatal("could not connect to database")
		default:
			dbh, err := db.Open(dsn)
			if err == nil {
				return dbh
			}

			logrus.WithError(err).Debug("database not ready")
			time.Sleep(time.Millisecond * 500)
		}
	}
}
