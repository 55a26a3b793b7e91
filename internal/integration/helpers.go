//go:build integration

package integration

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"ratehistory/internal/testkit"
)

var (
	testDB       *sql.DB
	testRDB      *redis.Client // source cache
	testQueueRDB *redis.Client // asynq
)

// resetTestData truncates the sheet tables and flushes both Redis databases.
func resetTestData(t *testing.T) {
	t.Helper()

	_, err := testDB.ExecContext(context.Background(), "TRUNCATE TABLE rate_sheets CASCADE")
	if err != nil {
		t.Fatalf("failed to truncate rate_sheets: %v", err)
	}

	if err := testkit.Global().Redis().FlushAll(context.Background()); err != nil {
		t.Fatalf("failed to flush redis: %v", err)
	}
}

// testContext returns a context with a 30-second deadline tied to the test's cleanup.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// julySheets is the three-sheet document used across the suite.
var julySheets = []testkit.Sheet{
	{Date: "2018-07-10", Rates: map[string]string{"USD": "1.1720", "GBP": "0.8873"}},
	{Date: "2018-07-12", Rates: map[string]string{"USD": "1.1681"}},
	{Date: "2018-07-16", Rates: map[string]string{"USD": "1.1712", "GBP": "0.8862"}},
}

// newBSIServer starts a stand-in upstream serving julySheets.
func newBSIServer(t *testing.T) *testkit.BSIServer {
	t.Helper()
	srv := testkit.NewBSIServer(testkit.RateDocumentXML(julySheets...))
	t.Cleanup(srv.Close)
	return srv
}
