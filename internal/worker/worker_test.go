package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ratehistory/internal/service"
)

type MockRefresher struct {
	mock.Mock
}

func (m *MockRefresher) Refresh(ctx context.Context) (*service.RefreshResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RefreshResult), args.Error(1)
}

func TestRefreshHandler(t *testing.T) {
	logger := zap.NewNop().Sugar()

	t.Run("success", func(t *testing.T) {
		svc := new(MockRefresher)
		svc.On("Refresh", mock.Anything).Return(&service.RefreshResult{Sheets: 3}, nil)

		err := NewRefreshHandler(svc, logger)(context.Background(), asynq.NewTask(TaskTypeRefreshRates, nil))

		assert.NoError(t, err)
		svc.AssertExpectations(t)
	})

	t.Run("refresh error is retried", func(t *testing.T) {
		svc := new(MockRefresher)
		svc.On("Refresh", mock.Anything).Return(nil, errors.New("source down"))

		err := NewRefreshHandler(svc, logger)(context.Background(), asynq.NewTask(TaskTypeRefreshRates, nil))

		assert.EqualError(t, err, "source down")
		assert.False(t, errors.Is(err, asynq.SkipRetry))
	})

	t.Run("bad payload skips retry", func(t *testing.T) {
		svc := new(MockRefresher)

		err := NewRefreshHandler(svc, logger)(context.Background(), asynq.NewTask(TaskTypeRefreshRates, []byte("{")))

		assert.ErrorIs(t, err, asynq.SkipRetry)
		svc.AssertNotCalled(t, "Refresh", mock.Anything)
	})
}

func TestAsynqEnqueuer(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := asynq.NewClient(asynq.RedisClientOpt{Addr: mr.Addr()})
	defer client.Close() //nolint:errcheck // test cleanup

	enq := NewAsynqEnqueuer(client, 3, time.Minute)

	require.NoError(t, enq.EnqueueRefreshTask(context.Background(), "9a1f0c52-8c1e-4b7e-9a57-1d0c4a3f2e11"))

	err = enq.EnqueueRefreshTask(context.Background(), "4c2d7e90-3b6a-4f1e-8d2c-6e5f1a0b9c33")
	assert.ErrorIs(t, err, service.ErrRefreshPending)
}

func TestNewRefreshTask(t *testing.T) {
	task := NewRefreshTask("req-1", 3, time.Minute)
	assert.Equal(t, TaskTypeRefreshRates, task.Type())
	assert.Empty(t, task.Payload())
}

func TestNewScheduler_Disabled(t *testing.T) {
	s, err := NewScheduler(asynq.RedisClientOpt{Addr: "localhost:0"}, "", 3, time.Minute, zap.NewNop().Sugar())
	assert.NoError(t, err)
	assert.Nil(t, s)
}
