package api

import (
	"context"

	"ratehistory/internal/service"
)

// mockRateService implements service.RateServiceInterface for testing.
type mockRateService struct {
	currenciesFunc     func(ctx context.Context) ([]string, error)
	seriesFunc         func(ctx context.Context, q service.SeriesQuery) (*service.SeriesResult, error)
	snapshotFunc       func(ctx context.Context, q service.SnapshotQuery) (*service.SnapshotResult, error)
	requestRefreshFunc func(ctx context.Context) (string, error)
	status             service.StatusResult
}

func (m *mockRateService) Currencies(ctx context.Context) ([]string, error) {
	return m.currenciesFunc(ctx)
}

func (m *mockRateService) Series(ctx context.Context, q service.SeriesQuery) (*service.SeriesResult, error) {
	return m.seriesFunc(ctx, q)
}

func (m *mockRateService) Snapshot(ctx context.Context, q service.SnapshotQuery) (*service.SnapshotResult, error) {
	return m.snapshotFunc(ctx, q)
}

func (m *mockRateService) Status(_ context.Context) service.StatusResult {
	return m.status
}

func (m *mockRateService) Refresh(_ context.Context) (*service.RefreshResult, error) {
	return nil, nil // Not used in handler tests
}

func (m *mockRateService) RequestRefresh(ctx context.Context) (string, error) {
	return m.requestRefreshFunc(ctx)
}
