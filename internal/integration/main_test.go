//go:build integration

package integration

import (
	"context"
	"database/sql"
	"testing"

	"go.uber.org/zap"

	"ratehistory/internal/repository"
	"ratehistory/internal/testkit"
)

func TestMain(m *testing.M) {
	testkit.Run(m, func() error {
		var err error
		testDB, err = testkit.Global().Postgres().OpenDB(context.Background(), func(db *sql.DB) error {
			return repository.RunMigrations(db, zap.NewNop().Sugar())
		})
		if err != nil {
			return err
		}

		testRDB = testkit.Global().Redis().Client(0)
		if err := testRDB.Ping(context.Background()).Err(); err != nil {
			return err
		}
		testQueueRDB = testkit.Global().Redis().Client(1)
		return testQueueRDB.Ping(context.Background()).Err()
	})
}
